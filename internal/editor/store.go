package editor

import (
	"sort"
	"sync"
)

// Releaser frees the resource behind a media handle
type Releaser interface {
	Release(url string)
}

// Store owns the current State and serializes dispatches
type Store struct {
	mu          sync.Mutex
	state       State
	reducer     *Reducer
	releaser    Releaser
	subscribers map[int]func(State)
	nextSub     int
}

// NewStore creates a store with an empty state. releaser may be nil.
func NewStore(releaser Releaser, historyLimit int) *Store {
	return &Store{
		state:       NewState(),
		reducer:     NewReducer(historyLimit),
		releaser:    releaser,
		subscribers: make(map[int]func(State)),
	}
}

// State returns the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every dispatch and returns a function
// that removes it
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Dispatch applies actions in order as one transition. Subscribers see the
// new state first, then handles referenced before but not after are
// released once.
func (s *Store) Dispatch(actions ...Action) State {
	s.mu.Lock()
	prev := s.state
	next := prev
	for _, a := range actions {
		next = s.reducer.Reduce(next, a)
	}
	s.state = next

	stale := staleHandles(prev, next)
	subs := make([]func(State), 0, len(s.subscribers))
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		subs = append(subs, s.subscribers[id])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	if s.releaser != nil {
		for _, url := range stale {
			s.releaser.Release(url)
		}
	}
	return next
}

// staleHandles lists handles reachable from prev but not from next, sorted
func staleHandles(prev, next State) []string {
	after := References(next)
	var stale []string
	for url := range References(prev) {
		if _, ok := after[url]; !ok {
			stale = append(stale, url)
		}
	}
	sort.Strings(stale)
	return stale
}

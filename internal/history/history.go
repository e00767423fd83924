package history

import (
	"reflect"
)

// DefaultLimit is the number of past snapshots kept when no limit is set
const DefaultLimit = 10

// History is a bounded undo/redo stack around a present state
type History[S any] struct {
	Past    []S // oldest first
	Present S
	Future  []S // next redo first
}

// New returns a history with an empty past and future
func New[S any](present S) History[S] {
	return History[S]{Present: present}
}

// Options configures a wrapped reducer
type Options[S, A any] struct {
	// Limit caps the past stack, the oldest snapshot is dropped first.
	// Zero or less means DefaultLimit.
	Limit int

	// Neutral reports actions that update the present without recording
	// a snapshot.
	Neutral func(A) bool

	// Equal detects no-op transitions, which are never recorded.
	// Defaults to reflect.DeepEqual.
	Equal func(a, b S) bool
}

// Wrap lifts reduce to operate on a History
func Wrap[S, A any](reduce func(S, A) S, opts Options[S, A]) func(History[S], A) History[S] {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	equal := opts.Equal
	if equal == nil {
		equal = func(a, b S) bool { return reflect.DeepEqual(a, b) }
	}

	return func(h History[S], action A) History[S] {
		next := reduce(h.Present, action)
		if opts.Neutral != nil && opts.Neutral(action) {
			return History[S]{Past: h.Past, Present: next, Future: h.Future}
		}
		if equal(h.Present, next) {
			return h
		}
		return h.Record(next, limit)
	}
}

// Record makes next the present, pushing the old present onto the past
// and discarding the future
func (h History[S]) Record(next S, limit int) History[S] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	past := append(append(make([]S, 0, len(h.Past)+1), h.Past...), h.Present)
	if len(past) > limit {
		past = past[len(past)-limit:]
	}
	return History[S]{Past: past, Present: next}
}

// Undo restores the most recent past snapshot. No-op when the past is empty.
func (h History[S]) Undo() History[S] {
	if len(h.Past) == 0 {
		return h
	}
	last := len(h.Past) - 1
	future := append([]S{h.Present}, h.Future...)
	return History[S]{
		Past:    append([]S(nil), h.Past[:last]...),
		Present: h.Past[last],
		Future:  future,
	}
}

// Redo re-applies the next future snapshot. No-op when the future is empty.
func (h History[S]) Redo() History[S] {
	if len(h.Future) == 0 {
		return h
	}
	past := append(append(make([]S, 0, len(h.Past)+1), h.Past...), h.Present)
	return History[S]{
		Past:    past,
		Present: h.Future[0],
		Future:  append([]S(nil), h.Future[1:]...),
	}
}

// Clear drops past and future, keeping the present
func (h History[S]) Clear() History[S] {
	return History[S]{Present: h.Present}
}

func (h History[S]) CanUndo() bool { return len(h.Past) > 0 }
func (h History[S]) CanRedo() bool { return len(h.Future) > 0 }
func (h History[S]) UndoSize() int { return len(h.Past) }
func (h History[S]) RedoSize() int { return len(h.Future) }

// Snapshots returns every state the history can reach: past, present, future
func (h History[S]) Snapshots() []S {
	all := make([]S, 0, len(h.Past)+1+len(h.Future))
	all = append(all, h.Past...)
	all = append(all, h.Present)
	return append(all, h.Future...)
}

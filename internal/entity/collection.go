package entity

import (
	"github.com/ytget/reel/internal/model"
)

// Entity is an object stored in a Collection
type Entity[T any] interface {
	EntityID() string
	Layer() int
	WithLayer(z int) T
	WithPosition(p model.Position) T
}

// Collection is an insertion-ordered list of entities
type Collection[T Entity[T]] struct {
	items []T
}

// New builds a collection from items, in the given order
func New[T Entity[T]](items ...T) Collection[T] {
	return Collection[T]{items: append([]T(nil), items...)}
}

// Len returns the number of entities
func (c Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the entities in insertion order
func (c Collection[T]) Items() []T {
	return append([]T(nil), c.items...)
}

// Get returns the entity with the given id
func (c Collection[T]) Get(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Has reports whether an entity with the given id exists
func (c Collection[T]) Has(id string) bool {
	return c.index(id) >= 0
}

// MaxLayer returns the highest z-index, 0 when empty
func (c Collection[T]) MaxLayer() int {
	max := 0
	for _, it := range c.items {
		if it.Layer() > max {
			max = it.Layer()
		}
	}
	return max
}

// Add appends item with z-index z. Existing entries keep their z-index.
func (c Collection[T]) Add(item T, z int) Collection[T] {
	next := make([]T, len(c.items), len(c.items)+1)
	copy(next, c.items)
	return Collection[T]{items: append(next, item.WithLayer(z))}
}

// Delete removes the entity. Remaining z-indices are not renumbered.
func (c Collection[T]) Delete(id string) Collection[T] {
	i := c.index(id)
	if i < 0 {
		return c
	}
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return Collection[T]{items: next}
}

// Update replaces the entity with fn(entity)
func (c Collection[T]) Update(id string, fn func(T) T) Collection[T] {
	i := c.index(id)
	if i < 0 {
		return c
	}
	next := c.Items()
	next[i] = fn(next[i])
	return Collection[T]{items: next}
}

// UpdatePosition moves the entity to p
func (c Collection[T]) UpdatePosition(id string, p model.Position) Collection[T] {
	return c.Update(id, func(it T) T { return it.WithPosition(p) })
}

// BringToFront sets the entity's z-index to z
func (c Collection[T]) BringToFront(id string, z int) Collection[T] {
	return c.Update(id, func(it T) T { return it.WithLayer(z) })
}

// IDs returns the entity ids in insertion order
func (c Collection[T]) IDs() []string {
	ids := make([]string, len(c.items))
	for i, it := range c.items {
		ids[i] = it.EntityID()
	}
	return ids
}

func (c Collection[T]) index(id string) int {
	for i, it := range c.items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}

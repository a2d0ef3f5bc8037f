// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package arena provides a generational slot arena.
//
// An arena hands out stable keys for inserted values. Removing a value
// bumps its slot's generation, so keys held across a removal observe
// "gone" instead of aliasing a later occupant of the same slot. The
// zero Key never names a live value.
package arena

import "iter"

// Key names one value in an arena. The zero Key is null: it is never
// returned by Insert and never resolves.
type Key struct {
	index      uint32
	generation uint32
}

// IsNull reports whether the key is the null key.
func (k Key) IsNull() bool {
	return k.generation == 0
}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Arena is a generational slot arena. The zero value is an empty arena.
//
// Arena is not safe for concurrent use.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.count
}

// Insert stores a value and returns its key.
func (a *Arena[T]) Insert(value T) Key {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = value
		s.occupied = true
		return Key{index: idx, generation: s.generation}
	}
	// Generations start at 1 so the zero Key stays dead forever.
	a.slots = append(a.slots, slot[T]{value: value, generation: 1, occupied: true})
	return Key{index: uint32(len(a.slots) - 1), generation: 1}
}

// Get returns a pointer to the value named by key, or nil if the key
// does not name a live value (null, removed, or stale generation).
func (a *Arena[T]) Get(key Key) *T {
	if key.IsNull() || int(key.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[key.index]
	if !s.occupied || s.generation != key.generation {
		return nil
	}
	return &s.value
}

// Remove deletes the value named by key and returns it. It reports
// false when the key does not name a live value; the arena is unchanged
// in that case.
func (a *Arena[T]) Remove(key Key) (T, bool) {
	var zero T
	p := a.Get(key)
	if p == nil {
		return zero, false
	}
	value := *p
	s := &a.slots[key.index]
	s.value = zero
	s.occupied = false
	// Invalidate every outstanding key to this slot before it can be
	// reoccupied.
	s.generation++
	a.free = append(a.free, key.index)
	a.count--
	return value, true
}

// All iterates over the live entries in slot order.
func (a *Arena[T]) All() iter.Seq2[Key, *T] {
	return func(yield func(Key, *T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Key{index: uint32(i), generation: s.generation}, &s.value) {
				return
			}
		}
	}
}

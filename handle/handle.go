// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package handle provides generation-validated handles into a slot arena.
//
// A Handle is a {index, generation} pair. Slots are reused after removal,
// but each reuse bumps the slot's generation, so a handle held past its
// resource's lifetime fails validation instead of silently aliasing the
// slot's new occupant. This is the standard defence for cross-system
// resource references (render targets, transforms, textures).
package handle

// Handle identifies one arena slot. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// Index returns the dense slot index. Only meaningful while the handle is
// valid; use Arena.Get for validated access.
func (h Handle) Index() uint32 { return h.index }

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Arena is a slot arena issuing generation-validated handles.
//
// Arena is not safe for concurrent use; callers that share an arena across
// goroutines must synchronize externally.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) Handle {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.live = true
		a.live++
		return Handle{index: idx, gen: s.gen}
	}

	// Generations start at 1 so the zero Handle never validates.
	a.slots = append(a.slots, slot[T]{value: v, gen: 1, live: true})
	a.live++
	//nolint:gosec // G115: slot count stays far below uint32 range
	return Handle{index: uint32(len(a.slots) - 1), gen: 1}
}

// Get returns the value for h. The second result is false when h is stale,
// zero, or out of range.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	if s := a.lookup(h); s != nil {
		return s.value, true
	}
	var zero T
	return zero, false
}

// Remove frees the slot for h and returns its value. Removing through a
// stale or zero handle is rejected and returns false.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	s := a.lookup(h)
	if s == nil {
		var zero T
		return zero, false
	}

	v := s.value
	var zero T
	s.value = zero
	s.live = false
	s.gen++
	a.live--
	a.free = append(a.free, h.index)
	return v, true
}

// Valid reports whether h currently refers to a live slot.
func (a *Arena[T]) Valid(h Handle) bool {
	return a.lookup(h) != nil
}

// Len returns the number of live slots.
func (a *Arena[T]) Len() int { return a.live }

// lookup returns the slot for h if the index is in range, the slot is live,
// and the generation matches.
func (a *Arena[T]) lookup(h Handle) *slot[T] {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil
	}
	return s
}

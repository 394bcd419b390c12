// Package db implements the fixed-capacity entry store behind the cache:
// a key index over a preallocated arena of entries, linked into a recency ring.
// Nothing here allocates after construction except the index map itself.
package db

import (
	"fmt"
	"github.com/Borislavv/go-lfu-cache/internal/cache/db/model"
)

// Store owns the entries. Slot indices handed out by Store stay valid until
// the slot is deleted; entry pointers are stable because the arena never grows.
//
// Not safe for concurrent use.
type Store[K comparable, V any] struct {
	index map[K]int32
	arena []model.Entry[K, V]
	ring  *Ring
	free  []int32 // stack of unused arena slots
}

// NewStore preallocates room for exactly capacity entries.
func NewStore[K comparable, V any](capacity int) *Store[K, V] {
	s := &Store[K, V]{
		index: make(map[K]int32, capacity),
		arena: make([]model.Entry[K, V], capacity),
		ring:  NewRing(capacity),
		free:  make([]int32, 0, capacity),
	}
	s.resetFree()
	return s
}

func (s *Store[K, V]) Len() int      { return len(s.index) }
func (s *Store[K, V]) Capacity() int { return len(s.arena) }
func (s *Store[K, V]) RoomLeft() int { return len(s.free) }
func (s *Store[K, V]) IsFull() bool  { return len(s.free) == 0 }

// Lookup returns the slot of key.
func (s *Store[K, V]) Lookup(key K) (int32, bool) {
	i, ok := s.index[key]
	return i, ok
}

// At returns the entry stored in slot i.
func (s *Store[K, V]) At(i int32) *model.Entry[K, V] {
	return &s.arena[i]
}

// Touch marks slot i as most recently used.
func (s *Store[K, V]) Touch(i int32) {
	s.ring.MoveToFront(i)
}

// Insert places a new key into a free slot at the MRU end.
// The caller must ensure the key is absent and the store is not full.
func (s *Store[K, V]) Insert(key K, value V, hash uint64, expiresAt int64) int32 {
	n := len(s.free)
	if n == 0 {
		panic("db: insert into a full store")
	}
	i := s.free[n-1]
	s.free = s.free[:n-1]

	s.arena[i] = model.Entry[K, V]{Key: key, Value: value, Hash: hash, ExpiresAt: expiresAt}
	s.index[key] = i
	s.ring.PushFront(i)

	s.checkInvariants()
	return i
}

// Delete unlinks slot i and returns what it held. The slot goes back to the free list.
func (s *Store[K, V]) Delete(i int32) model.Entry[K, V] {
	e := s.arena[i]
	delete(s.index, e.Key)
	s.ring.Remove(i)
	s.arena[i].Release()
	s.free = append(s.free, i)

	s.checkInvariants()
	return e
}

// Victim returns the least recently used slot.
func (s *Store[K, V]) Victim() (int32, bool) {
	return s.ring.Back()
}

// Walk visits entries from most to least recently used until fn returns false.
// fn must not mutate the store.
func (s *Store[K, V]) Walk(fn func(i int32, e *model.Entry[K, V]) bool) {
	for i, ok := s.ring.Front(); ok; i, ok = s.ring.Next(i) {
		if !fn(i, &s.arena[i]) {
			return
		}
	}
}

// WalkOldest visits entries from least to most recently used until fn returns false.
// fn may delete the slot it was given.
func (s *Store[K, V]) WalkOldest(fn func(i int32, e *model.Entry[K, V]) bool) {
	i, ok := s.ring.Back()
	for ok {
		prev, hasPrev := s.ring.Prev(i)
		if !fn(i, &s.arena[i]) {
			return
		}
		i, ok = prev, hasPrev
	}
}

// Clear drops every entry without reporting them.
func (s *Store[K, V]) Clear() {
	clear(s.index)
	clear(s.arena)
	s.ring.Init()
	s.resetFree()

	s.checkInvariants()
}

func (s *Store[K, V]) resetFree() {
	s.free = s.free[:0]
	// pop order hands out slot 0 first
	for i := len(s.arena) - 1; i >= 0; i-- {
		s.free = append(s.free, int32(i))
	}
}

// checkInvariants panics on a corrupted store in lfudebug builds and compiles to nothing otherwise.
func (s *Store[K, V]) checkInvariants() {
	if !invariantsEnabled {
		return
	}
	if err := s.verify(); err != nil {
		panic(err)
	}
}

// verify walks the whole structure: O(capacity).
func (s *Store[K, V]) verify() error {
	if n := len(s.index); n != s.ring.Len() {
		return fmt.Errorf("db: index holds %d keys, ring links %d", n, s.ring.Len())
	}
	if n := len(s.index) + len(s.free); n != len(s.arena) {
		return fmt.Errorf("db: %d live + %d free slots != capacity %d", len(s.index), len(s.free), len(s.arena))
	}
	seen := 0
	for i, ok := s.ring.Front(); ok; i, ok = s.ring.Next(i) {
		if seen++; seen > len(s.arena) {
			return fmt.Errorf("db: ring cycle detected")
		}
		e := &s.arena[i]
		if j, found := s.index[e.Key]; !found || j != i {
			return fmt.Errorf("db: slot %d is linked but not indexed", i)
		}
	}
	if seen != len(s.index) {
		return fmt.Errorf("db: ring walk saw %d of %d entries", seen, len(s.index))
	}
	return nil
}

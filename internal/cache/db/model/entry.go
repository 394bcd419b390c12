package model

import "time"

// Entry is a single cache slot. Entries live in a fixed arena owned by the store,
// so a pointer to Value stays valid until the slot is released.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
	// Hash is the admission hash of Key, computed once on insert.
	Hash uint64
	// ExpiresAt is an absolute unix nano deadline, 0 means the entry never expires.
	ExpiresAt int64
}

// SetTTL sets the deadline relative to now. A non-positive ttl clears it.
func (e *Entry[K, V]) SetTTL(now int64, ttl time.Duration) {
	if ttl <= 0 {
		e.ExpiresAt = 0
		return
	}
	e.ExpiresAt = now + ttl.Nanoseconds()
}

// IsExpired reports whether the deadline is strictly in the past.
func (e *Entry[K, V]) IsExpired(now int64) bool {
	return e.ExpiresAt != 0 && now > e.ExpiresAt
}

// Release drops references held by the slot so the arena does not pin evicted values.
func (e *Entry[K, V]) Release() {
	*e = Entry[K, V]{}
}

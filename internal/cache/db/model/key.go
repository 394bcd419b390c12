package model

import (
	"encoding/binary"
	"fmt"
	"github.com/zeebo/xxh3"
	"sync"
	"unsafe"
)

// KeyHasher maps a key onto the 64-bit hash consumed by the admission sketch.
// Lookups never rely on it: two keys with the same hash are still distinct entries.
type KeyHasher[K comparable] func(key K) uint64

var hasherPool = sync.Pool{New: func() any { return xxh3.New() }}

// NewKeyHasher returns the default xxh3 based hasher for K.
// The hash function is chosen once from the dynamic type of K. Strings and the
// built-in integer kinds are read in place and hashed without allocations.
// Stringers are hashed by their String() form and anything else by its
// Go-syntax representation; both of those box the key on every call.
func NewKeyHasher[K comparable]() KeyHasher[K] {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(key K) uint64 {
			s := *(*string)(unsafe.Pointer(&key))
			return xxh3.Hash(unsafe.Slice(unsafe.StringData(s), len(s)))
		}
	case int:
		return func(key K) uint64 { return hashUint64(uint64(*(*int)(unsafe.Pointer(&key)))) }
	case int64:
		return func(key K) uint64 { return hashUint64(uint64(*(*int64)(unsafe.Pointer(&key)))) }
	case int32:
		return func(key K) uint64 { return hashUint64(uint64(*(*int32)(unsafe.Pointer(&key)))) }
	case uint:
		return func(key K) uint64 { return hashUint64(uint64(*(*uint)(unsafe.Pointer(&key)))) }
	case uint64:
		return func(key K) uint64 { return hashUint64(*(*uint64)(unsafe.Pointer(&key))) }
	case uint32:
		return func(key K) uint64 { return hashUint64(uint64(*(*uint32)(unsafe.Pointer(&key)))) }
	case fmt.Stringer:
		return func(key K) uint64 { return xxh3.HashString(any(key).(fmt.Stringer).String()) }
	default:
		return func(key K) uint64 { return hashFormatted(key) }
	}
}

func hashUint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxh3.Hash(buf[:])
}

func hashFormatted(v any) uint64 {
	// acquire reusable hasher
	hasher := hasherPool.Get().(*xxh3.Hasher)
	hasher.Reset()

	_, _ = fmt.Fprintf(hasher, "%#v", v)
	sum := hasher.Sum64()

	// release hasher after use
	hasherPool.Put(hasher)

	return sum
}

package db

// nilIdx marks the absence of a neighbour in the ring.
const nilIdx int32 = -1

type link struct {
	prev, next int32
}

// Ring is an intrusive doubly linked recency list over arena slot indices.
// Front is the most recently used slot, Back is the eviction candidate.
// Links are stored by index, so the ring never allocates after construction.
//
// Not safe for concurrent use.
type Ring struct {
	links []link
	head  int32 // MRU
	tail  int32 // LRU
	len   int
}

// NewRing creates a ring able to link slots [0, capacity).
func NewRing(capacity int) *Ring {
	r := &Ring{links: make([]link, capacity)}
	r.Init()
	return r
}

// Init unlinks every slot.
func (r *Ring) Init() {
	for i := range r.links {
		r.links[i] = link{prev: nilIdx, next: nilIdx}
	}
	r.head, r.tail, r.len = nilIdx, nilIdx, 0
}

func (r *Ring) Len() int { return r.len }

// Front returns the most recently used slot.
func (r *Ring) Front() (int32, bool) { return r.head, r.head != nilIdx }

// Back returns the least recently used slot.
func (r *Ring) Back() (int32, bool) { return r.tail, r.tail != nilIdx }

// Next returns the neighbour of i towards the LRU end.
func (r *Ring) Next(i int32) (int32, bool) {
	n := r.links[i].next
	return n, n != nilIdx
}

// Prev returns the neighbour of i towards the MRU end.
func (r *Ring) Prev(i int32) (int32, bool) {
	p := r.links[i].prev
	return p, p != nilIdx
}

// PushFront links a detached slot as the most recently used one.
func (r *Ring) PushFront(i int32) {
	l := &r.links[i]
	l.prev = nilIdx
	l.next = r.head
	if r.head != nilIdx {
		r.links[r.head].prev = i
	} else {
		r.tail = i
	}
	r.head = i
	r.len++
}

// Remove unlinks slot i.
func (r *Ring) Remove(i int32) {
	l := &r.links[i]
	if l.prev != nilIdx {
		r.links[l.prev].next = l.next
	} else {
		r.head = l.next
	}
	if l.next != nilIdx {
		r.links[l.next].prev = l.prev
	} else {
		r.tail = l.prev
	}
	l.prev, l.next = nilIdx, nilIdx
	r.len--
}

// MoveToFront marks slot i as most recently used.
func (r *Ring) MoveToFront(i int32) {
	if r.head == i {
		return
	}
	r.Remove(i)
	r.PushFront(i)
}

package cache

// EvictReason tells why an entry left the cache.
type EvictReason uint8

const (
	// EvictPolicy means the entry lost an admission contest to a more frequent candidate.
	EvictPolicy EvictReason = iota
	// EvictTTL means the entry was found expired.
	EvictTTL
)

func (r EvictReason) String() string {
	switch r {
	case EvictPolicy:
		return "policy"
	case EvictTTL:
		return "ttl"
	default:
		return "unknown"
	}
}

// Recorder receives a call for every accounted cache event.
// Implementations run on the hot path and must be cheap.
type Recorder interface {
	Hit()
	Miss()
	Insert()
	Update()
	Evict(reason EvictReason)
	Remove()
	Reject()
	// Size reports the number of live entries after a mutation.
	Size(n int)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) Hit()              {}
func (NoopRecorder) Miss()             {}
func (NoopRecorder) Insert()           {}
func (NoopRecorder) Update()           {}
func (NoopRecorder) Evict(EvictReason) {}
func (NoopRecorder) Remove()           {}
func (NoopRecorder) Reject()           {}
func (NoopRecorder) Size(int)          {}

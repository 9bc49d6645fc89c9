package genasset

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The handler calls them on hot paths.
type Hooks interface {
	// A cache entry was deleted by the handler on read.
	// reason ∈ {"corrupt", "value_decode"}
	SelfHeal(storageKey, reason string)

	// Provider read failed; the lookup was treated as a miss.
	ReadError(storageKey string, err error)

	// Provider write failed; the tuple stays uncached until the next write.
	WriteError(storageKey string, err error)

	// Provider returned ok=false on Set (backpressure/eviction).
	WriteRejected(storageKey string)

	// A resolved tuple failed store verification. The caller got a hard error.
	Inconsistent(filename string)

	// The regeneration callback produced content that was stored and cached.
	Regenerated(filename string, size int)

	// The cache namespace was cleared.
	Flushed(namespace string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)  {}
func (NopHooks) ReadError(string, error)  {}
func (NopHooks) WriteError(string, error) {}
func (NopHooks) WriteRejected(string)     {}
func (NopHooks) Inconsistent(string)      {}
func (NopHooks) Regenerated(string, int)  {}
func (NopHooks) Flushed(string)           {}

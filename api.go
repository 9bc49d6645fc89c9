package genasset

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/genasset/codec"
	pr "github.com/unkn0wn-root/genasset/provider"
	"github.com/unkn0wn-root/genasset/store"
)

// DefaultNamespace scopes cache keys when Options.Namespace is empty.
const DefaultNamespace = "genasset"

// RegenerateFunc produces the content bytes for an artifact that has no
// usable cache entry. Returning (nil, nil) means "nothing to generate" and
// yields an empty result, not an error. Any error is handed back to the
// caller unchanged - the handler adds no wrapping, so upstream errors.Is/As
// checks keep working.
type RegenerateFunc func(ctx context.Context) ([]byte, error)

// Handler resolves logical (filename, entropy) pairs to stored artifacts
// through a verifying cache. Every tuple it returns has been confirmed
// against the asset store; a cache entry pointing at a missing object is a
// hard *InconsistentError, never a silent regeneration.
type Handler interface {
	Enabled() bool
	Close(context.Context) error

	// Lookups. ok=false with nil error means "nothing available" (no cache
	// entry and no regen callback, or the callback produced nothing).
	URL(ctx context.Context, filename, entropy string, regen RegenerateFunc) (url string, ok bool, err error)
	Content(ctx context.Context, filename, entropy string, regen RegenerateFunc) (content []byte, ok bool, err error)

	// Update writes content to the asset store, refreshes the cache entry
	// and returns the verified tuple.
	Update(ctx context.Context, filename, entropy string, content []byte) (store.Tuple, error)

	// Flush clears this handler's cache namespace. Stored objects survive;
	// subsequent lookups fall back to their regen callbacks.
	Flush(ctx context.Context) error

	// Store exposes the backing asset store; SetStore swaps it (tests,
	// staged migrations). Swapping is not synchronized with in-flight calls.
	Store() store.Store
	SetStore(s store.Store)
}

// Options tune the behavior of the handler.
// Only Store and Provider are required; others have sensible defaults.
type Options struct {
	// Required
	Store    store.Store
	Provider pr.Provider

	Namespace string        // cache key namespace; "" => DefaultNamespace
	Codec     c.Codec       // tuple serialization; nil => codec.JSONCodec
	Logger    Logger        // if nil, NopLogger is used
	Hooks     Hooks         // if nil, NopHooks is used
	Lifetime  time.Duration // cache entry TTL; 0 => entries never expire
	Disabled  bool          // default false (enabled); lookups bypass the cache entirely
}

func New(opts Options) (Handler, error) {
	return newHandler(opts)
}

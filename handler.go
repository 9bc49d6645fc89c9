package genasset

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/genasset/codec"
	"github.com/unkn0wn-root/genasset/internal/util"
	"github.com/unkn0wn-root/genasset/internal/wire"
	pr "github.com/unkn0wn-root/genasset/provider"
	"github.com/unkn0wn-root/genasset/store"
)

type handler struct {
	ns       string
	store    store.Store
	provider pr.Provider
	codec    c.Codec
	log      Logger
	hooks    Hooks
	enabled  bool
	lifetime time.Duration
}

func newHandler(opts Options) (*handler, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("genasset: store is required")
	}
	if opts.Provider == nil {
		return nil, fmt.Errorf("genasset: provider is required")
	}

	h := &handler{
		ns:       coalesce(opts.Namespace, DefaultNamespace),
		store:    opts.Store,
		provider: opts.Provider,
		enabled:  !opts.Disabled,
		lifetime: opts.Lifetime,
	}

	// defaults
	h.codec = coalesce[c.Codec](opts.Codec, c.JSONCodec{})
	h.log = coalesce[Logger](opts.Logger, NopLogger{})
	h.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	return h, nil
}

func (h *handler) Enabled() bool { return h.enabled }

func (h *handler) Close(ctx context.Context) error {
	if h.provider != nil {
		return h.provider.Close(ctx)
	}
	return nil
}

func (h *handler) Store() store.Store     { return h.store }
func (h *handler) SetStore(s store.Store) { h.store = s }

func (h *handler) URL(ctx context.Context, filename, entropy string, regen RegenerateFunc) (string, bool, error) {
	t, ok, err := h.resolve(ctx, filename, entropy, regen)
	if err != nil || !ok {
		return "", false, err
	}
	u, err := h.store.URL(ctx, t)
	if err != nil {
		return "", false, fmt.Errorf("genasset: url for %q: %w", filename, err)
	}
	return u, true, nil
}

func (h *handler) Content(ctx context.Context, filename, entropy string, regen RegenerateFunc) ([]byte, bool, error) {
	t, ok, err := h.resolve(ctx, filename, entropy, regen)
	if err != nil || !ok {
		return nil, false, err
	}
	b, err := h.store.Get(ctx, t)
	if err != nil {
		return nil, false, fmt.Errorf("genasset: content for %q: %w", filename, err)
	}
	return b, true, nil
}

func (h *handler) Update(ctx context.Context, filename, entropy string, content []byte) (store.Tuple, error) {
	t, err := h.store.Put(ctx, filename, content)
	if err != nil {
		return store.Tuple{}, fmt.Errorf("genasset: store %q: %w", filename, err)
	}
	h.save(ctx, h.storageKey(filename, entropy), t)
	return h.validate(ctx, t, filename)
}

func (h *handler) Flush(ctx context.Context) error {
	if !h.enabled {
		return nil
	}
	if err := h.provider.DelPrefix(ctx, h.ns+":"); err != nil {
		return fmt.Errorf("genasset: flush namespace %q: %w", h.ns, err)
	}
	h.log.Debug("flushed namespace", Fields{"ns": h.ns})
	h.hooks.Flushed(h.ns)
	return nil
}

// resolve is the shared lookup pipeline behind URL and Content: cache read,
// verification, and regeneration on miss. Cache hits never fall through to
// the callback - a hit that fails verification is a hard error, because
// regenerating would hide that the cache and store disagree.
func (h *handler) resolve(ctx context.Context, filename, entropy string, regen RegenerateFunc) (store.Tuple, bool, error) {
	var zero store.Tuple

	if h.enabled {
		k := h.storageKey(filename, entropy)
		raw, ok, err := h.provider.Get(ctx, k)
		if err != nil {
			// lookups have no error channel for the cache itself; a broken
			// provider degrades to a miss
			h.log.Warn("cache read failed; treating as miss", Fields{"key": k, "err": err})
			h.hooks.ReadError(k, err)
		} else if ok {
			if t, ok := h.open(ctx, k, raw); ok {
				v, err := h.validate(ctx, t, filename)
				if err != nil {
					return zero, false, err
				}
				return v, true, nil
			}
			// corrupt entry was self-healed; continue as a miss
		}
	}

	if regen == nil {
		return zero, false, nil
	}
	content, err := regen(ctx)
	if err != nil {
		// callback errors pass through unchanged
		return zero, false, err
	}
	if content == nil {
		return zero, false, nil
	}

	t, err := h.Update(ctx, filename, entropy, content)
	if err != nil {
		return zero, false, err
	}
	h.log.Debug("regenerated artifact", Fields{"filename": filename, "size": len(content)})
	h.hooks.Regenerated(filename, len(content))
	return t, true, nil
}

// open unwraps and decodes a cache entry. Undecodable entries are deleted
// (self-heal) and reported as absent.
func (h *handler) open(ctx context.Context, k string, raw []byte) (store.Tuple, bool) {
	payload, err := wire.Decode(raw)
	if err != nil {
		_ = h.provider.Del(ctx, k) // self-heal corrupt
		h.hooks.SelfHeal(k, "corrupt")
		return store.Tuple{}, false
	}
	t, err := h.codec.Decode(payload)
	if err != nil {
		_ = h.provider.Del(ctx, k) // self-heal
		h.hooks.SelfHeal(k, "value_decode")
		return store.Tuple{}, false
	}
	return t, true
}

// validate confirms the store actually holds the object the tuple points at.
func (h *handler) validate(ctx context.Context, t store.Tuple, filename string) (store.Tuple, error) {
	ok, err := h.store.Exists(ctx, t)
	if err != nil {
		return store.Tuple{}, fmt.Errorf("genasset: exists %q: %w", filename, err)
	}
	if !ok {
		h.hooks.Inconsistent(filename)
		return store.Tuple{}, &InconsistentError{Filename: filename}
	}
	return t, nil
}

// save writes the tuple into the cache, best effort: cache trouble must not
// fail an update whose store write already succeeded.
func (h *handler) save(ctx context.Context, k string, t store.Tuple) {
	if !h.enabled {
		return
	}
	payload, err := h.codec.Encode(t)
	if err != nil {
		h.log.Warn("tuple encode failed", Fields{"key": k, "err": err})
		h.hooks.WriteError(k, err)
		return
	}
	ok, err := h.provider.Set(ctx, k, wire.Encode(payload), h.lifetime)
	if err != nil {
		h.log.Warn("cache write failed", Fields{"key": k, "err": err})
		h.hooks.WriteError(k, err)
		return
	}
	if !ok {
		h.log.Debug("cache write rejected by provider (pressure)", Fields{"key": k})
		h.hooks.WriteRejected(k)
	}
}

func (h *handler) storageKey(filename, entropy string) string {
	// isolate by namespace
	return h.ns + ":" + util.CacheKey(filename, entropy)
}

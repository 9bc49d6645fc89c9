// Package genasset resolves logical filenames to generated file artifacts
// (compiled CSS bundles, thumbnails, minified JS) through a verifying
// cache-aside lookup. The cache holds only small location records (tuples);
// the bytes live in a content-addressed asset store.
//
// Components:
//   - provider.Provider: byte store with TTL (e.g. Redis, Ristretto, BigCache).
//   - store.Store: asset store holding the artifact bytes (local FS, S3).
//   - codec.Codec: (de)serializes the tuple record <-> []byte.
//
// Keys:
//
//	<ns>:<sha1(filename)>                  - artifact without entropy
//	<ns>:<sha1(filename)>_<sha1(entropy)>  - entropy-scoped variants
//
// Lookup pattern:
//
//	url, ok, err := h.URL(ctx, "css/site.css", entropy, func(ctx context.Context) ([]byte, error) {
//	    return compileCSS(ctx) // only runs when no verified cache entry exists
//	})
//
// Every tuple served from the cache is verified against the store before use.
// A cache entry whose object is gone is a hard *InconsistentError: the
// handler refuses to quietly regenerate over a cache/store disagreement, so
// operators see the inconsistency instead of paying for silent rebuild loops.
package genasset

package util

import (
	"crypto/sha1"
	"encoding/hex"
)

// CacheKey derives the cache key for a logical filename and its entropy.
// Both parts are hashed so arbitrary filenames (any length, any characters)
// map onto a fixed, provider-safe keyspace:
//
//	sha1hex(filename)                      - no entropy
//	sha1hex(filename) + "_" + sha1hex(entropy) - entropy variants
//
// Distinct entropy values therefore occupy distinct cache slots and never
// overwrite each other. The derivation is part of the cache format; changing
// it orphans every live entry.
func CacheKey(filename, entropy string) string {
	k := sha1hex(filename)
	if entropy == "" {
		return k
	}
	return k + "_" + sha1hex(entropy)
}

func sha1hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

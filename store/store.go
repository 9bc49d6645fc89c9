// Package store defines the asset store abstraction used by genasset, plus
// the canonical object layout shared by its implementations.
//
// A Store keeps generated file content addressed by a Tuple of
// (Filename, Hash, Variant). Content is immutable once written: the Hash is
// derived from the bytes, so writing the same content twice lands on the same
// object. Implementations MUST be safe for concurrent use and MUST report
// existence truthfully - the handler's consistency guarantee (no dangling
// tuples handed to callers) relies on Exists agreeing with Get and URL.
package store

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
)

// hashDirLen is the number of hash characters folded into the object path.
// Enough to keep distinct generations apart; the full hash stays in the Tuple.
const hashDirLen = 10

var (
	// ErrNotFound is returned by Get when the addressed object does not exist.
	ErrNotFound = errors.New("genasset/store: object not found")

	// ErrInvalidFilename rejects logical filenames that are empty, absolute,
	// or escape the store root ("../").
	ErrInvalidFilename = errors.New("genasset/store: invalid filename")

	// ErrInvalidTuple rejects tuples whose hash or variant cannot form a path.
	ErrInvalidTuple = errors.New("genasset/store: invalid tuple")
)

// Tuple addresses one stored artifact. Filename is the logical,
// slash-separated relative name callers resolve by; Hash is the hex SHA-1 of
// the content; Variant distinguishes derived renditions ("thumb", "webp")
// of the same source and is empty for the primary artifact.
type Tuple struct {
	Filename string `json:"filename" msgpack:"filename"`
	Hash     string `json:"hash" msgpack:"hash"`
	Variant  string `json:"variant,omitempty" msgpack:"variant,omitempty"`
}

// String renders a compact human-readable form for logs:
// "css/site.css@1a2b3c4d5e" or "logo.png@1a2b3c4d5e+thumb".
func (t Tuple) String() string {
	h := t.Hash
	if len(h) > hashDirLen {
		h = h[:hashDirLen]
	}
	if t.Variant == "" {
		return t.Filename + "@" + h
	}
	return t.Filename + "@" + h + "+" + t.Variant
}

// Store persists generated artifacts and serves them back by tuple.
type Store interface {
	// Put writes content under filename, deriving the tuple's Hash from the
	// bytes. Writing identical content for the same filename is idempotent.
	Put(ctx context.Context, filename string, content []byte) (Tuple, error)

	// Exists reports whether the object addressed by t is present.
	// A false return with nil error means "definitely absent"; IO trouble
	// must surface as a non-nil error, never as a silent false.
	Exists(ctx context.Context, t Tuple) (bool, error)

	// URL returns a URL under which the object addressed by t is served.
	URL(ctx context.Context, t Tuple) (string, error)

	// Get returns the object's bytes, or an error wrapping ErrNotFound.
	Get(ctx context.Context, t Tuple) ([]byte, error)
}

// ContentHash returns the hex SHA-1 of content - the Hash half of a tuple.
// SHA-1 is an addressing scheme here, not an integrity guarantee.
func ContentHash(content []byte) string {
	sum := sha1.Sum(content)
	return hex.EncodeToString(sum[:])
}

// ObjectPath returns the canonical store-relative path for a tuple:
// the filename's directory, a hash segment, then the base name with the
// variant folded in before the extension.
//
//	{Filename: "css/site.css", Hash: "1a2b3c4d5e..."}                 -> "css/1a2b3c4d5e/site.css"
//	{Filename: "logo.png", Hash: "1a2b3c4d5e...", Variant: "thumb"}   -> "1a2b3c4d5e/logo__thumb.png"
//
// The hash segment keeps every generation at its own path, so stale URLs keep
// serving old content instead of silently changing under the caller.
func ObjectPath(t Tuple) (string, error) {
	name, err := CleanFilename(t.Filename)
	if err != nil {
		return "", err
	}
	if len(t.Hash) < hashDirLen {
		return "", fmt.Errorf("%w: hash %q too short", ErrInvalidTuple, t.Hash)
	}
	if strings.ContainsAny(t.Variant, "/\\") {
		return "", fmt.Errorf("%w: variant %q contains a path separator", ErrInvalidTuple, t.Variant)
	}

	base := path.Base(name)
	if t.Variant != "" {
		ext := path.Ext(base)
		base = strings.TrimSuffix(base, ext) + "__" + t.Variant + ext
	}
	return path.Join(path.Dir(name), t.Hash[:hashDirLen], base), nil
}

// CleanFilename normalizes a logical filename and rejects anything that is
// empty, absolute, or escapes the store root after cleaning.
func CleanFilename(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidFilename)
	}
	name := path.Clean(filename)
	if path.IsAbs(name) || name == "." || name == ".." || strings.HasPrefix(name, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return name, nil
}

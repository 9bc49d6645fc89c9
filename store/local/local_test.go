package local

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/unkn0wn-root/genasset/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{FS: memfs.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// ============================================================
// Construction
// ============================================================

func TestNew_RequiresFilesystem(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for nil filesystem")
	}
}

// ============================================================
// Put / Get / Exists round trip
// ============================================================

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	content := []byte("body { color: red }")
	tu, err := s.Put(ctx, "css/site.css", content)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if tu.Filename != "css/site.css" {
		t.Fatalf("tuple filename = %q", tu.Filename)
	}
	if want := store.ContentHash(content); tu.Hash != want {
		t.Fatalf("tuple hash = %q, want %q", tu.Hash, want)
	}

	ok, err := s.Exists(ctx, tu)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Fatal("Exists = false after Put")
	}

	got, err := s.Get(ctx, tu)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("Get = %q, want %q", got, content)
	}
}

func TestPut_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	content := []byte("same bytes")
	first, err := s.Put(ctx, "logo.png", content)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	second, err := s.Put(ctx, "logo.png", content)
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if first != second {
		t.Fatalf("tuples differ: %v vs %v", first, second)
	}
}

func TestPut_RejectsEscapingFilename(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Put(ctx, "../outside.txt", []byte("x")); !errors.Is(err, store.ErrInvalidFilename) {
		t.Fatalf("Put err = %v, want ErrInvalidFilename", err)
	}
	if _, err := s.Put(ctx, "/abs.txt", []byte("x")); !errors.Is(err, store.ErrInvalidFilename) {
		t.Fatalf("Put err = %v, want ErrInvalidFilename", err)
	}
}

// ============================================================
// Missing objects
// ============================================================

func TestMissingObject(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tu := store.Tuple{Filename: "gone.txt", Hash: "0123456789abcdef0123456789abcdef01234567"}

	ok, err := s.Exists(ctx, tu)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("Exists = true for unknown tuple")
	}

	if _, err := s.Get(ctx, tu); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get err = %v, want ErrNotFound", err)
	}
}

// ============================================================
// Variants
// ============================================================

func TestVariantObjects(t *testing.T) {
	ctx := context.Background()
	fs := memfs.New()
	s, err := New(Config{FS: fs})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	content := []byte("full size")
	tu, err := s.Put(ctx, "img/logo.png", content)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// A variant is a sibling object in the same hash dir; write it directly.
	variant := tu
	variant.Variant = "thumb"
	rel, err := store.ObjectPath(variant)
	if err != nil {
		t.Fatalf("ObjectPath: %v", err)
	}
	if err := util.WriteFile(fs, rel, []byte("small"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ok, err := s.Exists(ctx, variant)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Fatal("Exists = false for variant object")
	}
	got, err := s.Get(ctx, variant)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "small" {
		t.Fatalf("variant content = %q", got)
	}
}

// ============================================================
// URLs
// ============================================================

func TestURL(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tu, err := s.Put(ctx, "css/site.css", []byte("a"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	rel, err := store.ObjectPath(tu)
	if err != nil {
		t.Fatalf("ObjectPath: %v", err)
	}

	u, err := s.URL(ctx, tu)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if want := DefaultBaseURL + "/" + rel; u != want {
		t.Fatalf("URL = %q, want %q", u, want)
	}
}

func TestURL_CustomBase(t *testing.T) {
	ctx := context.Background()
	s, err := New(Config{FS: memfs.New(), BaseURL: "https://cdn.example.com/files"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tu, err := s.Put(ctx, "logo.png", []byte("a"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	rel, err := store.ObjectPath(tu)
	if err != nil {
		t.Fatalf("ObjectPath: %v", err)
	}

	u, err := s.URL(ctx, tu)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if want := "https://cdn.example.com/files/" + rel; u != want {
		t.Fatalf("URL = %q, want %q", u, want)
	}
}

// ============================================================
// Atomicity plumbing
// ============================================================

func TestPut_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	fs := memfs.New()
	s, err := New(Config{FS: fs})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tu, err := s.Put(ctx, "a/b/c.txt", []byte("content"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	rel, err := store.ObjectPath(tu)
	if err != nil {
		t.Fatalf("ObjectPath: %v", err)
	}

	dir := rel[:len(rel)-len("/c.txt")]
	entries, err := fs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "c.txt" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("hash dir entries = %v, want [c.txt]", names)
	}
}

// Package local implements a filesystem-backed asset store on top of a
// billy.Filesystem. Use osfs.New for production and memfs.New in tests.
package local

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/unkn0wn-root/genasset/store"
)

// DefaultBaseURL prefixes served object paths when Config.BaseURL is empty.
const DefaultBaseURL = "/assets"

// Store writes artifacts under the filesystem root using the canonical
// store.ObjectPath layout. Writes are atomic: content lands in a temp file in
// the destination directory and is renamed into place, so readers never see a
// partially written object.
type Store struct {
	fs      billy.Filesystem
	baseURL string
}

type Config struct {
	// FS is the filesystem root the store writes into. Required.
	FS billy.Filesystem

	// BaseURL prefixes object paths in URL results.
	// Defaults to DefaultBaseURL.
	BaseURL string
}

var _ store.Store = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	if cfg.FS == nil {
		return nil, errors.New("genasset/store: local: filesystem is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Store{fs: cfg.FS, baseURL: base}, nil
}

func (s *Store) Put(_ context.Context, filename string, content []byte) (store.Tuple, error) {
	t := store.Tuple{Filename: filename, Hash: store.ContentHash(content)}
	rel, err := store.ObjectPath(t)
	if err != nil {
		return store.Tuple{}, err
	}
	if err := s.writeAtomic(rel, content); err != nil {
		return store.Tuple{}, fmt.Errorf("genasset/store: local: write %q: %w", rel, err)
	}
	return t, nil
}

func (s *Store) Exists(_ context.Context, t store.Tuple) (bool, error) {
	rel, err := store.ObjectPath(t)
	if err != nil {
		return false, err
	}
	if _, err := s.fs.Stat(rel); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("genasset/store: local: stat %q: %w", rel, err)
	}
	return true, nil
}

func (s *Store) URL(_ context.Context, t store.Tuple) (string, error) {
	rel, err := store.ObjectPath(t)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("genasset/store: local: base url %q: %w", s.baseURL, err)
	}
	u.Path = path.Join(u.Path, rel)
	return u.String(), nil
}

func (s *Store) Get(_ context.Context, t store.Tuple) ([]byte, error) {
	rel, err := store.ObjectPath(t)
	if err != nil {
		return nil, err
	}
	b, err := util.ReadFile(s.fs, rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, rel)
		}
		return nil, fmt.Errorf("genasset/store: local: read %q: %w", rel, err)
	}
	return b, nil
}

// writeAtomic writes content to a temp file in rel's directory and renames it
// into place. Concurrent writers of the same object race harmlessly: the
// content is hash-addressed, so every rename installs identical bytes.
func (s *Store) writeAtomic(rel string, content []byte) error {
	dir := path.Dir(rel)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := s.fs.TempFile(dir, ".tmp-")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	if err := s.fs.Rename(tmp, rel); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}

package bigcache

import (
	"context"
	"errors"
	"strings"
	"time"

	bc "github.com/allegro/bigcache/v3"
)

// Provider adapts a bigcache instance. BigCache has no per-entry TTL: every
// entry ages out after the global LifeWindow, so a zero handler lifetime
// ("never expire") cannot be honored here. Pick this provider for large,
// GC-friendly caches where bounded staleness is acceptable.
type Provider struct {
	c *bc.BigCache
}

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Provider, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	return b, err == nil, err
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ time.Duration) (bool, error) {
	// BigCache does not support per-entry TTL; uses global LifeWindow.
	return true, p.c.Set(key, value)
}

func (p *Provider) Del(_ context.Context, key string) error {
	if err := p.c.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		return err
	}
	return nil
}

// DelPrefix walks the cache and deletes matching keys. The iterator snapshots
// entries, so keys written during the walk may survive; a flush only promises
// to remove what existed when it started.
func (p *Provider) DelPrefix(_ context.Context, prefix string) error {
	var keys []string
	it := p.c.Iterator()
	for it.SetNext() {
		e, err := it.Value()
		if err != nil {
			continue // entry evicted mid-walk
		}
		if strings.HasPrefix(e.Key(), prefix) {
			keys = append(keys, e.Key())
		}
	}
	for _, k := range keys {
		if err := p.c.Delete(k); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
			return err
		}
	}
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	return p.c.Close()
}

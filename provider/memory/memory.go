// Package memory implements an in-process map-backed provider.
// Useful for single-node deployments and as the reference implementation
// in tests. Expiry is lazy: entries are dropped on the read that finds
// them expired, not by a background sweeper.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/unkn0wn-root/genasset/provider"
)

type entry struct {
	value []byte
	// zero expiresAt means the entry never expires
	expiresAt time.Time
}

type Provider struct {
	mu      sync.RWMutex
	entries map[string]entry
}

var _ provider.Provider = (*Provider)(nil)

func New() *Provider {
	return &Provider{entries: make(map[string]entry)}
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.RLock()
	e, ok := p.entries[key]
	p.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		p.mu.Lock()
		// re-check under the write lock; another goroutine may have replaced it
		if cur, ok := p.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(p.entries, key)
		}
		p.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	p.mu.Lock()
	p.entries[key] = e
	p.mu.Unlock()
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.entries, key)
	p.mu.Unlock()
	return nil
}

func (p *Provider) DelPrefix(_ context.Context, prefix string) error {
	p.mu.Lock()
	for k := range p.entries {
		if strings.HasPrefix(k, prefix) {
			delete(p.entries, k)
		}
	}
	p.mu.Unlock()
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.mu.Lock()
	p.entries = make(map[string]entry)
	p.mu.Unlock()
	return nil
}

// Len reports the number of live entries. Test helper.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

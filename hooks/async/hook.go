// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/genasset"
//	"github.com/unkn0wn-root/genasset/hooks/async"
//	"github.com/unkn0wn-root/genasset/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    SelfHealEvery:  10, // sample logs: ~every 10th self-heal
//	    ReadErrorEvery: 50, // a provider outage fires one per lookup
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	h, _ := genasset.New(genasset.Options{
//	    Store:    assets,
//	    Provider: provider,
//	    Hooks:    hooks, // or `raw` if you don’t want async
//	})
//
// Events are dropped, not queued, when the buffer is full; the handler's hot
// path never blocks on observability. Close only after the handler stopped
// producing events.
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/genasset"
)

type Hooks struct {
	inner genasset.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ genasset.Hooks = (*Hooks)(nil)

func New(inner genasset.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) SelfHeal(k, r string)          { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) ReadError(k string, err error) { h.try(func() { h.inner.ReadError(k, err) }) }
func (h *Hooks) WriteError(k string, err error) {
	h.try(func() { h.inner.WriteError(k, err) })
}
func (h *Hooks) WriteRejected(k string)       { h.try(func() { h.inner.WriteRejected(k) }) }
func (h *Hooks) Inconsistent(filename string) { h.try(func() { h.inner.Inconsistent(filename) }) }
func (h *Hooks) Regenerated(f string, size int) {
	h.try(func() { h.inner.Regenerated(f, size) })
}
func (h *Hooks) Flushed(ns string) { h.try(func() { h.inner.Flushed(ns) }) }

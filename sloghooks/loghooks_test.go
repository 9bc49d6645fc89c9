package sloghooks

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestHooks(opts Options) (*Hooks, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(l, opts), &buf
}

func TestEventsLogged(t *testing.T) {
	h, buf := newTestHooks(Options{})

	h.SelfHeal("assets:abc", "corrupt")
	h.ReadError("assets:abc", errors.New("boom"))
	h.WriteError("assets:abc", errors.New("boom"))
	h.WriteRejected("assets:abc")
	h.Inconsistent("css/site.css")
	h.Regenerated("css/site.css", 128)
	h.Flushed("assets")

	out := buf.String()
	for _, want := range []string{
		"genasset.self_heal",
		"reason=corrupt",
		"genasset.read_error",
		"genasset.write_error",
		"genasset.write_rejected",
		"genasset.inconsistent",
		"filename=css/site.css",
		"genasset.regenerated",
		"size=128",
		"genasset.flushed",
		"ns=assets",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

// TestKeysRedacted: storage keys are derived from filenames, so raw keys never
// reach the log; only a short digest does.
func TestKeysRedacted(t *testing.T) {
	h, buf := newTestHooks(Options{})

	h.SelfHeal("assets:secret-key", "corrupt")

	sum := sha256.Sum256([]byte("assets:secret-key"))
	want := hex.EncodeToString(sum[:8])
	out := buf.String()
	if !strings.Contains(out, want) {
		t.Fatalf("output missing digest %q:\n%s", want, out)
	}
	if strings.Contains(out, "secret-key") {
		t.Fatalf("raw key leaked into log:\n%s", out)
	}
}

func TestCustomRedact(t *testing.T) {
	h, buf := newTestHooks(Options{Redact: func(string) string { return "xxx" }})

	h.WriteRejected("assets:abc")
	if !strings.Contains(buf.String(), "key=xxx") {
		t.Fatalf("custom redactor not applied:\n%s", buf.String())
	}
}

// TestSelfHealSampled: every Nth event logs; a flood of heals must not become
// a flood of log lines.
func TestSelfHealSampled(t *testing.T) {
	h, buf := newTestHooks(Options{SelfHealEvery: 3})

	for i := 0; i < 6; i++ {
		h.SelfHeal("assets:abc", "corrupt")
	}
	if got := strings.Count(buf.String(), "genasset.self_heal"); got != 2 {
		t.Fatalf("logged %d of 6 sampled events, want 2", got)
	}
}

func TestReadErrorSampled(t *testing.T) {
	h, buf := newTestHooks(Options{ReadErrorEvery: 2})

	for i := 0; i < 4; i++ {
		h.ReadError("assets:abc", errors.New("down"))
	}
	if got := strings.Count(buf.String(), "genasset.read_error"); got != 2 {
		t.Fatalf("logged %d of 4 sampled events, want 2", got)
	}
}

func TestNilLoggerSafe(t *testing.T) {
	h := New(nil, Options{})

	h.SelfHeal("k", "corrupt")
	h.ReadError("k", errors.New("x"))
	h.WriteError("k", errors.New("x"))
	h.WriteRejected("k")
	h.Inconsistent("f")
	h.Regenerated("f", 1)
	h.Flushed("ns")
}

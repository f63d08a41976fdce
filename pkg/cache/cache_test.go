package cache

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNullCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	key := NewDefaultKeyer().ArtifactKey(Hash([]byte("scene")), ArtifactKeyOpts{Format: "svg", CellSize: 32})
	if err := c.Set(ctx, key, []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = %v, %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("png bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "png bytes" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = %v, %v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}

	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	if n, err := c.Clear(ctx); err != nil || n != 0 {
		t.Errorf("Clear of missing dir = %d, %v", n, err)
	}
}

func TestFileCachePrune(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for key, ttl := range map[string]time.Duration{"short": time.Minute, "long": time.Hour, "forever": 0} {
		if err := c.Set(ctx, key, []byte(key), ttl); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(filepath.Dir(c.path("short")), "zz.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	now = now.Add(30 * time.Minute)
	n, err := c.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 2 {
		t.Errorf("Prune removed %d, want 2 (expired + unreadable)", n)
	}
	for key, want := range map[string]bool{"short": false, "long": true, "forever": true} {
		if _, hit, _ := c.Get(ctx, key); hit != want {
			t.Errorf("Get(%s) hit = %v, want %v", key, hit, want)
		}
	}
}

func TestFileCacheConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	payloads := [][]byte{
		bytes.Repeat([]byte("a"), 64<<10),
		bytes.Repeat([]byte("b"), 64<<10),
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 20 {
				if (i+j)%2 == 0 {
					_ = c.Set(ctx, "svg", payloads[(i+j)%4/2], time.Hour)
					continue
				}
				data, hit, err := c.Get(ctx, "svg")
				if err != nil {
					t.Errorf("Get: %v", err)
					return
				}
				if hit && !bytes.Equal(data, payloads[0]) && !bytes.Equal(data, payloads[1]) {
					t.Error("read a partial entry")
					return
				}
			}
		}()
	}
	wg.Wait()

	entries, err := filepath.Glob(filepath.Join(c.Dir(), "*", ".tmp-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashJSON(t *testing.T) {
	type doc struct {
		Side   int     `json:"side"`
		Weight float64 `json:"weight"`
	}
	a, err := HashJSON(doc{Side: 5, Weight: 7})
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	if a != Hash([]byte(`{"side":5,"weight":7}`)) {
		t.Error("HashJSON does not hash the JSON encoding")
	}

	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if h, err := HashJSON(doc{Side: 5, Weight: w}); err == nil {
			t.Errorf("HashJSON(weight=%v) = %s, want error", w, h)
		}
	}
}

func TestArtifactKeySeparatesFields(t *testing.T) {
	k := NewDefaultKeyer()
	a := k.ArtifactKey("ab", ArtifactKeyOpts{Format: "c"})
	b := k.ArtifactKey("a", ArtifactKeyOpts{Format: "bc"})
	if a == b {
		t.Error("shifting bytes between scene hash and format gave the same key")
	}
	if k.ArtifactKey("h", ArtifactKeyOpts{Format: "txt"}) == k.ArtifactKey("h", ArtifactKeyOpts{Format: "txt", Color: true}) {
		t.Error("colour flag not part of the key")
	}
	if k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", CellSize: 8}) == k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", CellSize: 64}) {
		t.Error("cell size not part of the key")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png"})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", CellSize: 16})
	ak4 := k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "svg"})
	seen := map[string]bool{}
	for _, key := range []string{ak1, ak2, ak3, ak4} {
		if seen[key] {
			t.Errorf("duplicate key %s", key)
		}
		seen[key] = true
		if !strings.HasPrefix(key, "artifact:") {
			t.Errorf("key %s missing prefix", key)
		}
	}
	if ak1 != k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey not deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "v1:")
	opts := ArtifactKeyOpts{Format: "png"}
	want := "v1:" + NewDefaultKeyer().ArtifactKey("h", opts)
	if got := scoped.ArtifactKey("h", opts); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}

	// Should use DefaultKeyer when inner is nil
	if got := NewScopedKeyer(nil, "v1:").ArtifactKey("h", opts); got != want {
		t.Errorf("nil inner ArtifactKey = %s, want %s", got, want)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(ErrUnavailable)
	if !IsRetryable(err) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("Retryable(ErrUnavailable) = %v, lost its marking or cause", err)
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("message = %q", err.Error())
	}
	if IsRetryable(errors.New("redis: WRONGTYPE")) {
		t.Error("plain error reported retryable")
	}
}

func TestBackoffRetry(t *testing.T) {
	b := Backoff{Attempts: 3, Delay: time.Millisecond}
	wrongType := errors.New("redis: WRONGTYPE")
	down := Retryable(ErrUnavailable)

	tests := []struct {
		name      string
		backoff   Backoff
		fail      int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"first try", b, 0, nil, 1, nil},
		{"command error not retried", b, 5, wrongType, 1, wrongType},
		{"recovers after outage", b, 2, down, 3, nil},
		{"outage outlasts attempts", b, 5, down, 3, ErrUnavailable},
		{"zero attempts still calls once", Backoff{}, 5, down, 1, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tt.backoff.Retry(context.Background(), func() error {
				calls++
				if calls <= tt.fail {
					return tt.err
				}
				return nil
			})
			if !errors.Is(err, tt.wantErr) || (err == nil) != (tt.wantErr == nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestBackoffRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Backoff{Attempts: 3, Delay: time.Hour}.Retry(ctx, func() error {
		calls++
		return Retryable(ErrUnavailable)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

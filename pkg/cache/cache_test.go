package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "graph"); hit {
		t.Error("expected miss on empty cache")
	}
	if err := c.Set(ctx, "graph", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "graph")
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("expected <svg/>, got %s", data)
	}

	if err := c.Delete(ctx, "graph"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "graph"); hit {
		t.Error("expected miss after Delete")
	}
	if err := c.Delete(ctx, "graph"); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte{0xc1}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry should be a silent miss, got hit=%v err=%v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 entries removed, got %d", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("expected miss after Clear")
	}
	st, err := c.Stats()
	if err != nil || st.Entries != 0 {
		t.Errorf("expected an empty cache, got %+v (err %v)", st, err)
	}
	subdirs, _ := os.ReadDir(c.Dir())
	if len(subdirs) != 0 {
		t.Errorf("expected fan-out directories to be removed, %d left", len(subdirs))
	}
}

func TestFileCacheStats(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(c.Dir(), "README"), []byte("not an entry"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"svg", "png"} {
		if err := c.Set(ctx, k, []byte("0123456789"), 0); err != nil {
			t.Fatal(err)
		}
	}
	st, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Entries != 2 {
		t.Errorf("expected 2 entries, got %d", st.Entries)
	}
	if st.Bytes <= 20 {
		t.Errorf("expected entry files larger than their payload, got %d bytes", st.Bytes)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	gk1 := k.GraphKey("abc", GraphKeyOpts{Format: "svg"})
	gk2 := k.GraphKey("abc", GraphKeyOpts{Format: "svg", Detailed: true})
	if gk1 == gk2 {
		t.Error("Different GraphKeyOpts should produce different keys")
	}
	if gk1 != k.GraphKey("abc", GraphKeyOpts{Format: "svg"}) {
		t.Error("GraphKey should be deterministic")
	}
	if k.GraphKey("abc", GraphKeyOpts{Format: "png", Scale: 2}) == k.GraphKey("abc", GraphKeyOpts{Format: "png", Scale: 3}) {
		t.Error("PNG scale should be part of the key")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "project:pump:")
	inner := NewDefaultKeyer()

	got := scoped.GraphKey("abc", GraphKeyOpts{})
	if got != "project:pump:"+inner.GraphKey("abc", GraphKeyOpts{}) {
		t.Errorf("ScopedKeyer GraphKey should be prefixed: %s", got)
	}
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	build := func() ([]byte, error) {
		calls++
		return []byte("svg"), nil
	}
	if _, hit, err := Fetch(ctx, c, "k", 0, build); hit || err != nil {
		t.Fatalf("first Fetch: hit=%v err=%v", hit, err)
	}
	data, hit, err := Fetch(ctx, c, "k", 0, build)
	if !hit || err != nil || string(data) != "svg" {
		t.Fatalf("second Fetch: data=%s hit=%v err=%v", data, hit, err)
	}
	if calls != 1 {
		t.Errorf("build should run once, ran %d times", calls)
	}

	boom := errors.New("boom")
	if _, _, err := Fetch(ctx, NewNullCache(), "k", 0, func() ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Errorf("expected build error, got %v", err)
	}
}

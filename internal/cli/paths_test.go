package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/schemaforge/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join("/tmp/xdg", appName); dir != want {
			t.Errorf("expected %q, got %q", want, dir)
		}
	})

	t.Run("user cache dir", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		base, err := os.UserCacheDir()
		if err != nil {
			t.Skipf("no user cache dir: %v", err)
		}
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(base, appName); dir != want {
			t.Errorf("expected %q, got %q", want, dir)
		}
	})
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("--no-cache should give a NullCache, got %T", c)
	}

	c, err = newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("expected a FileCache, got %T", c)
	}
}

func TestNewRunnerScope(t *testing.T) {
	cli := New(io.Discard, LogInfo)

	r, err := cli.newRunner(true, "/work/plant/project.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, ok := r.Keyer.(*cache.ScopedKeyer); !ok {
		t.Errorf("a scoped runner should use ScopedKeyer, got %T", r.Keyer)
	}

	r, err = cli.newRunner(true, "")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, ok := r.Keyer.(*cache.ScopedKeyer); ok {
		t.Error("an unscoped runner should not use ScopedKeyer")
	}
}

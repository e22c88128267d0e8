package cache

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const entryExt = ".mp"

// FileCache stores entries as msgpack files below a directory, fanned out
// into subdirectories by the first two hex characters of the hashed key.
// Rendered PNG and PDF bytes are stored as they are.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// DefaultDir returns the schemaforge directory below the user cache
// directory.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "schemaforge"), nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Stats is a summary of the entries on disk.
type Stats struct {
	Entries int
	Bytes   int64
}

// Stats walks the cache directory. Files that are not cache entries are
// ignored.
func (c *FileCache) Stats() (Stats, error) {
	var st Stats
	err := c.walk(func(path string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return nil
		}
		st.Entries++
		st.Bytes += info.Size()
		return nil
	})
	return st, err
}

// Clear removes every entry and returns how many were removed. Emptied
// fan-out directories are removed too.
func (c *FileCache) Clear() (int, error) {
	n := 0
	err := c.walk(func(path string, _ fs.DirEntry) error {
		if err := os.Remove(path); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}
	subdirs, _ := os.ReadDir(c.dir)
	for _, d := range subdirs {
		if d.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, d.Name())) // fails unless empty
		}
	}
	return n, nil
}

func (c *FileCache) walk(fn func(path string, d fs.DirEntry) error) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, entryExt) {
			return nil
		}
		return fn(path, d)
	})
}

type cacheEntry struct {
	Key       string    `msgpack:"key"`
	Data      []byte    `msgpack:"data"`
	CreatedAt time.Time `msgpack:"created_at"`
	ExpiresAt time.Time `msgpack:"expires_at,omitempty"`
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get implements Cache. Corrupt and expired entries are removed and reported
// as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry cacheEntry
	if err := msgpack.Unmarshal(raw, &entry); err != nil || entry.Key != key || entry.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set implements Cache.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{Key: key, Data: data, CreatedAt: time.Now().UTC()}
	if ttl > 0 {
		entry.ExpiresAt = entry.CreatedAt.Add(ttl)
	}
	raw, err := msgpack.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Delete implements Cache. Deleting a missing key is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

var _ Cache = (*FileCache)(nil)

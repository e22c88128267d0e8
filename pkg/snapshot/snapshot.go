// Package snapshot persists allocation state between builder runs.
//
// A [Snapshot] captures the counters and connections of an [alloc.State] so
// a later invocation can continue numbering where an earlier one stopped.
// Snapshots are msgpack-encoded and carry their own id, the lineage id of the
// State they were taken from, and a creation time.
//
// Persistence is explicit: nothing in the engine saves state on its own.
// Loading an older snapshot after the State has moved on is allowed; compare
// lineage ids to notice it.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/registry"
)

// FormatVersion is the snapshot encoding version written by this package.
const FormatVersion = 1

// Snapshot is a serialisable copy of an allocation State.
type Snapshot struct {
	Version     int                   `msgpack:"version"`
	ID          string                `msgpack:"id"`
	Lineage     string                `msgpack:"lineage"`
	CreatedAt   time.Time             `msgpack:"created_at"`
	Counters    alloc.Counters        `msgpack:"counters"`
	Connections []registry.Connection `msgpack:"connections"`
}

// Take captures s.
func Take(s alloc.State) Snapshot {
	return Snapshot{
		Version:     FormatVersion,
		ID:          uuid.NewString(),
		Lineage:     s.Lineage(),
		CreatedAt:   time.Now().UTC(),
		Counters:    s.Counters(),
		Connections: s.Registry().Connections(),
	}
}

// State rebuilds the allocation State the snapshot was taken from.
func (sn Snapshot) State() alloc.State {
	return alloc.Restore(sn.Lineage, sn.Counters, registry.New(sn.Connections...))
}

// Encode writes a snapshot of s to w and returns it.
func Encode(w io.Writer, s alloc.State) (Snapshot, error) {
	sn := Take(s)
	if err := msgpack.NewEncoder(w).Encode(&sn); err != nil {
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	return sn, nil
}

// Decode reads a snapshot from r.
func Decode(r io.Reader) (Snapshot, error) {
	var sn Snapshot
	if err := msgpack.NewDecoder(r).Decode(&sn); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot")
	}
	if sn.Version != FormatVersion {
		return Snapshot{}, errors.New(errors.ErrCodeInvalidSnapshot,
			"unsupported snapshot version %d (want %d)", sn.Version, FormatVersion)
	}
	if _, err := uuid.Parse(sn.ID); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "snapshot id %q", sn.ID)
	}
	return sn, nil
}

// Save writes a snapshot of s to path, creating parent directories. The file
// is replaced atomically, so a failed save leaves the previous snapshot intact.
func Save(path string, s alloc.State) (Snapshot, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Snapshot{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return Snapshot{}, fmt.Errorf("create %s: %w", tmp, err)
	}
	sn, err := Encode(f, s)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return Snapshot{}, err
	}
	if err := os.Rename(tmp, path); err != nil {
		return Snapshot{}, fmt.Errorf("replace %s: %w", path, err)
	}
	return sn, nil
}

// Load reads the snapshot at path.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", path)
		}
		return Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

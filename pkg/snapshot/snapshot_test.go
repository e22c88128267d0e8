package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/schemaforge/pkg/alloc"
	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/registry"
)

func sampleState() alloc.State {
	s := alloc.New()
	s, _ = s.NextTag("F")
	s, _ = s.NextTag("F")
	s, _ = s.NextTerminalPins("X1", 3)
	s, _ = s.NextTerminalPins("X2", 2, "L1", "N")
	s, _ = s.NextContactPins("K1")
	return s.Connect("X1", "1", "F1", "2", registry.SideTop)
}

func TestSaveLoad_ContinuesNumbering(t *testing.T) {
	s := sampleState()
	path := filepath.Join(t.TempDir(), "state", "build.snap")

	saved, err := Save(path, s)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ID != saved.ID {
		t.Errorf("expected id %s, got %s", saved.ID, loaded.ID)
	}

	restored := loaded.State()
	if restored.Lineage() != s.Lineage() {
		t.Errorf("expected lineage %s, got %s", s.Lineage(), restored.Lineage())
	}

	_, want := s.NextTag("F")
	_, got := restored.NextTag("F")
	if got != want {
		t.Errorf("expected next tag %s, got %s", want, got)
	}

	_, wantPins := s.NextTerminalPins("X2", 2, "L1", "N")
	_, gotPins := restored.NextTerminalPins("X2", 2, "L1", "N")
	if gotPins[0] != wantPins[0] || gotPins[1] != wantPins[1] {
		t.Errorf("expected pins %v, got %v", wantPins, gotPins)
	}

	if restored.Registry().Len() != 1 {
		t.Errorf("expected 1 connection, got %d", restored.Registry().Len())
	}
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	sn, err := Encode(&buf, sampleState())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Counters.Terminals["X1"] != 3 {
		t.Errorf("expected X1 counter 3, got %d", got.Counters.Terminals["X1"])
	}
	if got.Counters.ContactChannels["K1"] != sn.Counters.ContactChannels["K1"] {
		t.Errorf("contact channel mismatch")
	}
	if !got.CreatedAt.Equal(sn.CreatedAt) {
		t.Errorf("expected created %v, got %v", sn.CreatedAt, got.CreatedAt)
	}
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a snapshot")))
	if !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("expected INVALID_SNAPSHOT, got %v", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.snap"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestSave_ReplacesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.snap")
	if _, err := Save(path, alloc.New()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := Save(path, sampleState())
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ID != second.ID {
		t.Errorf("expected the second snapshot %s, got %s", second.ID, loaded.ID)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected no temporary file after Save")
	}
}

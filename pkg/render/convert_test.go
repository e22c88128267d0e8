package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/schemaforge/pkg/errors"
)

const svg = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestMissingConverter(t *testing.T) {
	old := converter
	converter = "rsvg-convert-missing"
	defer func() { converter = old }()

	if Available() {
		t.Fatal("expected the converter to be unavailable")
	}
	_, err := ToPDF(context.Background(), []byte(svg))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("expected UNSUPPORTED, got %v", err)
	}
}

func TestToPNGRejectsScale(t *testing.T) {
	_, err := ToPNG(context.Background(), []byte(svg), 0)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(svg), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("expected PNG magic, got %q", png[:min(len(png), 8)])
	}
}

package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/schemaforge/pkg/errors"
)

// converter is the librsvg command line tool.
var converter = "rsvg-convert"

// ToPDF converts a rendered wiring graph to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts a rendered wiring graph to PNG. A scale of 2 doubles the
// resolution of the SVG.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	return convert(ctx, svg, "png", "--zoom", fmt.Sprintf("%.2f", scale))
}

// Available reports whether the converter is on PATH.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s output needs %s (apt install librsvg2-bin, brew install librsvg)", format, converter)
	}

	cmd := exec.CommandContext(ctx, converter, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &out, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", converter, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}

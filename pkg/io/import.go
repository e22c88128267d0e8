package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/schemaforge/pkg/errors"
	"github.com/matzehuels/schemaforge/pkg/geom"
)

// ReadJSON decodes a JSON drawing from r.
//
// The input must be a JSON object with an "elements" array; see the package
// documentation for the element fields. Missing vectors decode as the origin.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - An element has an unknown type
//   - A symbol declares the same port id twice
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]geom.Element, error) {
	var data drawing
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDrawing, err, "decode")
	}
	return decodeAll(data.Elements, "")
}

func decodeAll(in []element, path string) ([]geom.Element, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]geom.Element, 0, len(in))
	for i, el := range in {
		e, err := decode(el, fmt.Sprintf("%s%d", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func at(v *vec) geom.Vec {
	if v == nil {
		return geom.Vec{}
	}
	return v.geom()
}

func decode(el element, path string) (geom.Element, error) {
	switch el.Type {
	case "point":
		return geom.Point{At: at(el.At)}, nil
	case "line":
		return geom.Line{Start: at(el.Start), End: at(el.End)}, nil
	case "circle":
		return geom.Circle{Center: at(el.Center), Radius: el.Radius, Filled: el.Filled}, nil
	case "text":
		return geom.Text{At: at(el.At), Content: el.Content, Size: el.Size, Anchor: el.Anchor}, nil
	case "polygon":
		pts := make([]geom.Vec, len(el.Points))
		for i, p := range el.Points {
			pts[i] = p.geom()
		}
		return geom.Polygon{Points: pts}, nil
	case "group":
		children, err := decodeAll(el.Elements, path+".")
		if err != nil {
			return nil, err
		}
		return geom.Group{Elements: children}, nil
	case "port":
		return geom.Port{ID: el.Label, Position: at(el.At), Direction: at(el.End)}, nil
	case "symbol":
		children, err := decodeAll(el.Elements, path+".")
		if err != nil {
			return nil, err
		}
		sym := geom.Symbol{
			Label:          el.Label,
			Kind:           geom.SymbolKind(el.Kind),
			TerminalNumber: el.TerminalNumber,
			Description:    el.Description,
			MPN:            el.MPN,
			Elements:       children,
		}
		if len(el.Ports) > 0 {
			sym.Ports = make(map[string]geom.Port, len(el.Ports))
		}
		for _, p := range el.Ports {
			if _, dup := sym.Ports[p.ID]; dup {
				return nil, errors.New(errors.ErrCodeInvalidDrawing,
					"element %s: symbol %q declares port %q twice", path, el.Label, p.ID)
			}
			sym.Ports[p.ID] = geom.Port{ID: p.ID, Position: p.Position.geom(), Direction: p.Direction.geom()}
		}
		return sym, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidDrawing, "element %s: unknown type %q", path, el.Type)
}

// ImportJSON reads a JSON drawing file at path.
//
// ImportJSON returns the same validation errors as [ReadJSON], wrapped with
// the file path.
func ImportJSON(path string) ([]geom.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	elems, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return elems, nil
}

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/schemaforge/pkg/geom"
)

type vec [2]float64

func fromVec(v geom.Vec) vec { return vec{v.X, v.Y} }
func (v vec) geom() geom.Vec { return geom.Vec{X: v[0], Y: v[1]} }

type drawing struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type string `json:"type"`

	At     *vec  `json:"at,omitempty"`
	Start  *vec  `json:"start,omitempty"`
	End    *vec  `json:"end,omitempty"`
	Center *vec  `json:"center,omitempty"`
	Points []vec `json:"points,omitempty"`

	Radius  float64 `json:"radius,omitempty"`
	Filled  bool    `json:"filled,omitempty"`
	Content string  `json:"content,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Anchor  string  `json:"anchor,omitempty"`

	Label          string    `json:"label,omitempty"`
	Kind           string    `json:"kind,omitempty"`
	TerminalNumber string    `json:"terminal_number,omitempty"`
	Description    string    `json:"description,omitempty"`
	MPN            string    `json:"mpn,omitempty"`
	Elements       []element `json:"elements,omitempty"`
	Ports          []port    `json:"ports,omitempty"`
}

type port struct {
	ID        string `json:"id"`
	Position  vec    `json:"position"`
	Direction vec    `json:"direction"`
}

func ptr(v geom.Vec) *vec {
	out := fromVec(v)
	return &out
}

func encodeAll(elems []geom.Element) []element {
	out := make([]element, 0, len(elems))
	for _, e := range elems {
		out = append(out, encode(e))
	}
	return out
}

func encode(e geom.Element) element {
	switch e := e.(type) {
	case geom.Point:
		return element{Type: "point", At: ptr(e.At)}
	case geom.Line:
		return element{Type: "line", Start: ptr(e.Start), End: ptr(e.End)}
	case geom.Circle:
		return element{Type: "circle", Center: ptr(e.Center), Radius: e.Radius, Filled: e.Filled}
	case geom.Text:
		return element{Type: "text", At: ptr(e.At), Content: e.Content, Size: e.Size, Anchor: e.Anchor}
	case geom.Polygon:
		pts := make([]vec, len(e.Points))
		for i, p := range e.Points {
			pts[i] = fromVec(p)
		}
		return element{Type: "polygon", Points: pts}
	case geom.Group:
		return element{Type: "group", Elements: encodeAll(e.Elements)}
	case geom.Symbol:
		ids := e.PortIDs()
		slices.Sort(ids)
		ports := make([]port, len(ids))
		for i, id := range ids {
			p := e.Ports[id]
			ports[i] = port{ID: id, Position: fromVec(p.Position), Direction: fromVec(p.Direction)}
		}
		return element{
			Type:           "symbol",
			Label:          e.Label,
			Kind:           string(e.Kind),
			TerminalNumber: e.TerminalNumber,
			Description:    e.Description,
			MPN:            e.MPN,
			Elements:       encodeAll(e.Elements),
			Ports:          ports,
		}
	case geom.Port:
		return element{Type: "port", Label: e.ID, At: ptr(e.Position), End: ptr(e.Direction)}
	}
	return element{}
}

// WriteJSON encodes a drawing as JSON and writes it to w.
// This format can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(elems []geom.Element, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(drawing{Elements: encodeAll(elems)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a drawing to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(elems []geom.Element, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(elems, f)
}

package vision

import (
	"encoding/json"
	"fmt"
)

// TextAnnotation is one recognized text span. The service returns the
// whole-image span first, followed by one entry per detected word.
type TextAnnotation struct {
	// Locale is only set on the whole-image span.
	Locale       *string      `json:"locale,omitempty" yaml:"locale,omitempty"`
	Description  string       `json:"description" yaml:"description"`
	BoundingPoly BoundingPoly `json:"boundingPoly" yaml:"boundingPoly"`
}

// BoundingPoly is the polygon of a flat annotation. Unlike BoundingBox
// in the document tree, every coordinate must be present.
type BoundingPoly struct {
	Vertices Quad `json:"vertices" yaml:"vertices"`
}

func (a *TextAnnotation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Locale       *string       `json:"locale"`
		Description  *string       `json:"description"`
		BoundingPoly *BoundingPoly `json:"boundingPoly"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Description == nil:
		return missingField("textAnnotation", "description")
	case raw.BoundingPoly == nil:
		return missingField("textAnnotation", "boundingPoly")
	}
	*a = TextAnnotation{
		Locale:       raw.Locale,
		Description:  *raw.Description,
		BoundingPoly: *raw.BoundingPoly,
	}
	return nil
}

func (p *BoundingPoly) UnmarshalJSON(data []byte) error {
	var raw struct {
		Vertices *Quad `json:"vertices"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Vertices == nil {
		return missingField("boundingPoly", "vertices")
	}
	p.Vertices = *raw.Vertices
	return nil
}

func (q *Quad) UnmarshalJSON(data []byte) error {
	var points []Point
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}
	if len(points) != len(q) {
		return &SchemaError{
			Path: "boundingPoly.vertices",
			Msg:  fmt.Sprintf("expected %d vertices, got %d", len(q), len(points)),
		}
	}
	copy(q[:], points)
	return nil
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var raw struct {
		X *int `json:"x"`
		Y *int `json:"y"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.X == nil:
		return missingField("vertex", "x")
	case raw.Y == nil:
		return missingField("vertex", "y")
	}
	*p = Point{X: *raw.X, Y: *raw.Y}
	return nil
}

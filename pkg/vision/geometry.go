package vision

import (
	"image"
)

// Point is a pixel coordinate in image space.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Quad is a four-vertex polygon in the order the service emits:
// top-left, top-right, bottom-right, bottom-left.
type Quad [4]Point

// LeftTop returns vertex 1.
func (q Quad) LeftTop() Point {
	return q[1]
}

// Width is vertex[3].X - vertex[1].X. It is negative when the service
// returns a rotated or reordered polygon; the value is not clamped.
func (q Quad) Width() int {
	return q[3].X - q[1].X
}

// Height is vertex[3].Y - vertex[1].Y. Like Width it may be negative.
func (q Quad) Height() int {
	return q[3].Y - q[1].Y
}

// Bounds returns the axis-aligned rectangle enclosing all four vertices.
func (q Quad) Bounds() image.Rectangle {
	r := image.Rectangle{Min: image.Pt(q[0].X, q[0].Y), Max: image.Pt(q[0].X, q[0].Y)}
	for _, p := range q[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

package render

import (
	"math"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

// Edge is one oriented side of a trapezoid, from v1 (top) to v2 (bottom).
type Edge struct {
	V1, V2 Vertex
}

// Trapezoid is a quadrilateral with two horizontal edges (top, bottom) and
// two general edges (Left, Right), the unit of scanline iteration. The
// invariant left.x <= right.x holds at every y in [Top, Bottom].
type Trapezoid struct {
	Top, Bottom float64
	Left, Right Edge
}

// lerpVertex linearly interpolates both position and attributes of a
// vertex pair by t.
func lerpVertex(a, b Vertex, t float64) Vertex {
	return Vertex{
		Position:   a.Position.Lerp(b.Position, t),
		Attributes: lerpAttributes(a.Attributes, b.Attributes, t),
	}
}

// sortVerticesByY returns v0, v1, v2 reordered so that position.Y is
// non-decreasing.
func sortVerticesByY(v0, v1, v2 Vertex) (a, b, c Vertex) {
	verts := [3]Vertex{v0, v1, v2}
	if verts[0].Position.Y > verts[1].Position.Y {
		verts[0], verts[1] = verts[1], verts[0]
	}
	if verts[1].Position.Y > verts[2].Position.Y {
		verts[1], verts[2] = verts[2], verts[1]
	}
	if verts[0].Position.Y > verts[1].Position.Y {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return verts[0], verts[1], verts[2]
}

// TrapezoidsFromTriangle decomposes a post-viewport-mapped triangle into 0,
// 1, or 2 trapezoids. Degenerate triangles — every vertex shares an x, or
// every vertex shares a y — yield no trapezoids.
func TrapezoidsFromTriangle(v0, v1, v2 Vertex) []Trapezoid {
	a, b, c := sortVerticesByY(v0, v1, v2)

	if (a.Position.X == b.Position.X && b.Position.X == c.Position.X) ||
		(a.Position.Y == b.Position.Y && b.Position.Y == c.Position.Y) {
		return nil
	}

	switch {
	case a.Position.Y == b.Position.Y:
		// Flat top: ensure a.x <= b.x.
		if a.Position.X > b.Position.X {
			a, b = b, a
		}
		return []Trapezoid{{
			Top:    a.Position.Y,
			Bottom: c.Position.Y,
			Left:   Edge{a, c},
			Right:  Edge{b, c},
		}}
	case b.Position.Y == c.Position.Y:
		// Flat bottom: ensure b.x <= c.x.
		if b.Position.X > c.Position.X {
			b, c = c, b
		}
		return []Trapezoid{{
			Top:    a.Position.Y,
			Bottom: b.Position.Y,
			Left:   Edge{a, b},
			Right:  Edge{a, c},
		}}
	default:
		t := (b.Position.Y - a.Position.Y) / (c.Position.Y - a.Position.Y)
		xLongEdge := math3d.Lerp(a.Position.X, c.Position.X, t)

		if xLongEdge < b.Position.X {
			// b sits on the right of the long edge a->c.
			return []Trapezoid{
				{Top: a.Position.Y, Bottom: b.Position.Y, Left: Edge{a, c}, Right: Edge{a, b}},
				{Top: b.Position.Y, Bottom: c.Position.Y, Left: Edge{a, c}, Right: Edge{b, c}},
			}
		}
		// b sits on the left of the long edge a->c.
		return []Trapezoid{
			{Top: a.Position.Y, Bottom: b.Position.Y, Left: Edge{a, b}, Right: Edge{a, c}},
			{Top: b.Position.Y, Bottom: c.Position.Y, Left: Edge{b, c}, Right: Edge{a, c}},
		}
	}
}

// Scanline is the interpolated starting vertex, per-pixel step, and
// remaining pixel count at one integer y within a trapezoid.
type Scanline struct {
	Y      int
	Vertex Vertex
	Step   Vertex
	Width  int
}

// NewScanline builds the scanline at row y within trap.
func NewScanline(trap Trapezoid, y int) Scanline {
	fy := float64(y)
	tL := (fy - trap.Left.V1.Position.Y) / (trap.Left.V2.Position.Y - trap.Left.V1.Position.Y)
	tR := (fy - trap.Right.V1.Position.Y) / (trap.Right.V2.Position.Y - trap.Right.V1.Position.Y)

	left := lerpVertex(trap.Left.V1, trap.Left.V2, tL)
	right := lerpVertex(trap.Right.V1, trap.Right.V2, tR)

	span := right.Position.X - left.Position.X
	width := int(math.Ceil(span))
	sl := Scanline{Y: y, Vertex: left, Width: width}
	if span <= 0 {
		return sl
	}

	invWidth := 1.0 / span
	sl.Step = Vertex{
		Position: right.Position.Sub(left.Position).Scale(invWidth),
		Attributes: InterpAttributes(left.Attributes, right.Attributes,
			func(x, y, t float64) float64 { return (y - x) * t }, invWidth),
	}
	return sl
}

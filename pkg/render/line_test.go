package render

import "testing"

func TestCohenSutherlandClipTrivialAccept(t *testing.T) {
	x0, y0, x1, y1, ok := CohenSutherlandClip(2, 2, 8, 8, 0, 0, 10, 10)
	if !ok || x0 != 2 || y0 != 2 || x1 != 8 || y1 != 8 {
		t.Errorf("got (%d,%d)-(%d,%d) ok=%v, want unchanged segment", x0, y0, x1, y1, ok)
	}
}

func TestCohenSutherlandClipTrivialReject(t *testing.T) {
	_, _, _, _, ok := CohenSutherlandClip(-10, -10, -5, -5, 0, 0, 10, 10)
	if ok {
		t.Error("segment entirely outside the rectangle should be rejected")
	}
}

func TestCohenSutherlandClipPartial(t *testing.T) {
	x0, y0, x1, y1, ok := CohenSutherlandClip(-5, 5, 15, 5, 0, 0, 10, 10)
	if !ok {
		t.Fatal("segment crossing the rectangle should be accepted")
	}
	if x0 != 0 || y0 != 5 || x1 != 10 || y1 != 5 {
		t.Errorf("clipped segment = (%d,%d)-(%d,%d), want (0,5)-(10,5)", x0, y0, x1, y1)
	}
}

func TestCohenSutherlandClipIdempotent(t *testing.T) {
	x0, y0, x1, y1, ok := CohenSutherlandClip(-5, 5, 15, 5, 0, 0, 10, 10)
	if !ok {
		t.Fatal("first clip should accept")
	}
	rx0, ry0, rx1, ry1, ok2 := CohenSutherlandClip(x0, y0, x1, y1, 0, 0, 10, 10)
	if !ok2 || rx0 != x0 || ry0 != y0 || rx1 != x1 || ry1 != y1 {
		t.Errorf("re-clipping an already-inside segment changed it: (%d,%d)-(%d,%d)", rx0, ry0, rx1, ry1)
	}
}

func TestBresenhamEndpointsIncluded(t *testing.T) {
	pts := Bresenham(0, 0, 4, 0, 0, 0, 10, 10)
	if len(pts) != 5 {
		t.Fatalf("len(pts) = %d, want 5", len(pts))
	}
	if pts[0] != (IPoint{0, 0}) {
		t.Errorf("first point = %v, want (0,0)", pts[0])
	}
	if pts[len(pts)-1] != (IPoint{4, 0}) {
		t.Errorf("last point = %v, want (4,0)", pts[len(pts)-1])
	}
}

func TestBresenhamSymmetric(t *testing.T) {
	forward := Bresenham(0, 0, 6, 3, 0, 0, 20, 20)
	backward := Bresenham(6, 3, 0, 0, 0, 0, 20, 20)

	if len(forward) != len(backward) {
		t.Fatalf("len(forward)=%d len(backward)=%d, want equal", len(forward), len(backward))
	}
	n := len(forward)
	for i := range forward {
		if forward[i] != backward[n-1-i] {
			t.Errorf("point %d: forward=%v, reversed backward=%v", i, forward[i], backward[n-1-i])
		}
	}
}

func TestBresenhamAllPointsWithinBounds(t *testing.T) {
	pts := Bresenham(-5, -5, 25, 15, 0, 0, 20, 10)
	for _, p := range pts {
		if p.X < 0 || p.X > 20 || p.Y < 0 || p.Y > 10 {
			t.Errorf("point %v outside bounds [0,20]x[0,10]", p)
		}
	}
}

func TestBresenhamHorizontalOverhangClipsToEdges(t *testing.T) {
	// A horizontal line overhanging both sides of a [0,10] box yields every
	// column from 0 through 10 inclusive, at the line's y.
	pts := Bresenham(-5, 2, 20, 2, 0, 0, 10, 10)
	if len(pts) != 11 {
		t.Fatalf("len(pts) = %d, want 11", len(pts))
	}
	for i, p := range pts {
		if p.X != i || p.Y != 2 {
			t.Errorf("pts[%d] = %v, want (%d,2)", i, p, i)
		}
	}
}

func TestBresenhamOutOfBoundsReturnsNil(t *testing.T) {
	pts := Bresenham(-10, -10, -1, -1, 0, 0, 10, 10)
	if pts != nil {
		t.Errorf("expected nil for a fully out-of-bounds segment, got %v", pts)
	}
}

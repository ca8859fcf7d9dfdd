package render

// insideNear reports whether v sits on the valid side of the near plane
// (z <= -near). The invalid side (z > -near) is too close to the camera to
// be kept; it must be clipped away before projection.
func insideNear(v Vertex, near float64) bool {
	return v.Position.Z <= -near
}

// ClipNearPlane splits a triangle straddling the near plane z = -near into
// 1 or 2 new triangles via Sutherland-Hodgman clipping against the single
// half-space z <= -near, returning a flat list of 0, 3, or 6 vertices (the
// fan-triangulation of the clipped polygon). It must only be called on a
// triangle with at least one, but not all three, vertices failing
// insideNear — a fully-outside triangle is already discarded by the
// frustum test, and a fully-inside triangle needs no clipping. Calling it
// on an already-clipped triangle is a programming error (the renderer
// guards against this; see renderer.go's clip-once assertion).
func ClipNearPlane(near float64, v0, v1, v2 Vertex) []Vertex {
	verts := [3]Vertex{v0, v1, v2}

	var poly []Vertex
	for i := range 3 {
		a := verts[i]
		b := verts[(i+1)%3]
		aIn := insideNear(a, near)
		bIn := insideNear(b, near)

		switch {
		case aIn && bIn:
			poly = append(poly, b)
		case aIn && !bIn:
			poly = append(poly, intersectNear(a, b, near))
		case !aIn && bIn:
			poly = append(poly, intersectNear(a, b, near), b)
		default:
			// both outside: contributes nothing
		}
	}

	switch len(poly) {
	case 3:
		return poly
	case 4:
		return []Vertex{poly[0], poly[1], poly[2], poly[0], poly[2], poly[3]}
	default:
		return nil
	}
}

// intersectNear computes the point where segment a->b crosses z = -near,
// interpolating both position and attributes by t = (-near - a.z)/(b.z - a.z).
func intersectNear(a, b Vertex, near float64) Vertex {
	t := (-near - a.Position.Z) / (b.Position.Z - a.Position.Z)
	return lerpVertex(a, b, t)
}

package render

import "math"

// depthClear is the sentinel written by Clear: the engine keeps a fragment
// when z_new <= depth[x,y], so "empty" must compare as farther than any
// real (positive) linear depth.
const depthClear = math.MaxFloat32

// DepthAttachment is a width*height grid of linear view-space depth values.
// A cell holds depthClear when nothing has been written to it this frame;
// otherwise it holds the positive linear z of the nearest-drawn fragment
// under the "keep if z_new <= depth[x,y]" convention (see renderer.go).
type DepthAttachment struct {
	Width, Height int
	Values        []float64
}

// NewDepthAttachment allocates a depth attachment cleared to depthClear.
func NewDepthAttachment(width, height int) *DepthAttachment {
	da := &DepthAttachment{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
	da.Clear()
	return da
}

// Clear resets every cell to depthClear.
func (da *DepthAttachment) Clear() {
	for i := range da.Values {
		da.Values[i] = depthClear
	}
}

// Test reports whether z passes the depth test at (x, y): z <= depth[x,y].
func (da *DepthAttachment) Test(x, y int, z float64) bool {
	return z <= da.Values[y*da.Width+x]
}

// Set writes z to (x, y).
func (da *DepthAttachment) Set(x, y int, z float64) {
	da.Values[y*da.Width+x] = z
}

// At returns the stored depth at (x, y).
func (da *DepthAttachment) At(x, y int) float64 {
	return da.Values[y*da.Width+x]
}

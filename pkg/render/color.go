// Package render implements the CPU rasterization pipeline: framebuffers,
// camera/frustum, texture registry, shader interface, and the two
// interchangeable rasterizer back-ends.
package render

import "math"

// Color is a linear RGBA color in [0,1] per channel (A is carried through
// the shader pipeline but ColorAttachment.Set discards it, matching the
// engine's opaque-overwrite-only blending).
type Color struct {
	R, G, B, A float64
}

// quantize clamps c to [0,1] and truncates to an 8-bit channel via floor(c*255).
func quantize(c float64) byte {
	if c < 0 {
		c = 0
	} else if c > 1 {
		c = 1
	}
	return byte(math.Floor(c * 255))
}

// ColorAttachment is a width*height*3 byte RGB framebuffer, row-major,
// top-left origin, no alpha channel and no row padding.
type ColorAttachment struct {
	Width, Height int
	Pixels        []byte // len == Width*Height*3
}

// NewColorAttachment allocates a cleared-to-black color attachment.
func NewColorAttachment(width, height int) *ColorAttachment {
	return &ColorAttachment{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*3),
	}
}

// Clear writes the clamped 8-bit quantization of c to every pixel.
func (ca *ColorAttachment) Clear(c Color) {
	r, g, b := quantize(c.R), quantize(c.G), quantize(c.B)
	for i := 0; i < len(ca.Pixels); i += 3 {
		ca.Pixels[i] = r
		ca.Pixels[i+1] = g
		ca.Pixels[i+2] = b
	}
}

// Set writes c at (x, y). No bounds checking: callers (the rasterizer
// back-ends) already guard with 0 <= x < W and 0 <= y < H.
func (ca *ColorAttachment) Set(x, y int, c Color) {
	i := (y*ca.Width + x) * 3
	ca.Pixels[i] = quantize(c.R)
	ca.Pixels[i+1] = quantize(c.G)
	ca.Pixels[i+2] = quantize(c.B)
}

// At returns the color at (x, y) as [0,1] floats reconstructed from the
// stored bytes.
func (ca *ColorAttachment) At(x, y int) Color {
	i := (y*ca.Width + x) * 3
	return Color{
		R: float64(ca.Pixels[i]) / 255,
		G: float64(ca.Pixels[i+1]) / 255,
		B: float64(ca.Pixels[i+2]) / 255,
		A: 1,
	}
}

// Bytes returns the packed RGB byte buffer backing the attachment, length
// 3*Width*Height, row-major, no stride padding — ready for blit.
func (ca *ColorAttachment) Bytes() []byte {
	return ca.Pixels
}

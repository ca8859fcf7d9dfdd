package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw blits a ColorAttachment into a terminal screen using the upper-half-
// block trick: each terminal cell covers two framebuffer rows, the top row
// painted as the cell's foreground and the bottom row as its background.
// The attachment's height should be 2x the terminal area's height.
func (ca *ColorAttachment) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1
		if botY >= ca.Height {
			botY = topY
		}

		for col := area.Min.X; col < area.Max.X && col < ca.Width; col++ {
			top := ca.At(col, topY)
			bot := ca.At(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: colorToRGBA(top),
					Bg: colorToRGBA(bot),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// colorToRGBA quantizes a linear [0,1] Color down to an 8-bit color.RGBA.
func colorToRGBA(c Color) color.Color {
	return color.RGBA{R: quantize(c.R), G: quantize(c.G), B: quantize(c.B), A: 255}
}

// TerminalRenderer adapts the rasterizer's pixel-addressable ColorAttachment
// to an ultraviolet terminal display. Terminal cells cover two framebuffer
// rows apiece (the half-block trick ColorAttachment.Draw implements), so
// FramebufferSize reports double the cell height a caller should size its
// Renderer's color/depth attachments to.
type TerminalRenderer struct {
	term          *uv.Terminal
	width, height int // terminal size, in cells
}

// NewTerminalRenderer wraps term, sized to width x height terminal cells.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel dimensions a ColorAttachment must have
// to exactly cover the wrapped terminal.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.width, t.height * 2
}

// Render blits ca onto the terminal's screen buffer.
func (t *TerminalRenderer) Render(ca *ColorAttachment) {
	ca.Draw(t.term, uv.Rect(0, 0, t.width, t.height))
}

// Flush pushes the screen buffer built up by Render to the real terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}

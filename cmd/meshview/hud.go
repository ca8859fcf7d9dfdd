package main

import (
	"fmt"
	"time"

	"github.com/kestrelcg/raster3d/pkg/render"
)

// hud paints the overlay rows (FPS, filename, triangle count, mode
// checkboxes) directly with ANSI sequences, on top of whatever the terminal
// renderer last blitted.
type hud struct {
	filename  string
	polyCount int

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(filename string, polyCount int) *hud {
	return &hud{filename: filename, polyCount: polyCount, fpsTime: time.Now()}
}

// updateFPS is called once per frame; it folds the frame count into an FPS
// reading every second.
func (h *hud) updateFPS() {
	h.fpsFrames++
	if elapsed := time.Since(h.fpsTime); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func (h *hud) render(width, height int, view *viewState, backend render.RasterBackend) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Clear the overlay rows first so toggling the HUD off leaves no stale text.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if view.lightMode {
		msg := fmt.Sprintf("%s%s%s ◉ LIGHT MODE - move mouse to position, click to set, Esc to cancel %s",
			bgBlack, bold, fgYellow, reset)
		col := max((width-60)/2, 1)
		fmt.Print(moveTo(height, col) + msg)
		return
	}
	if !view.showHUD {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	polyCol := max(width-12, 1)
	fmt.Printf("%s%s%s%s %d tris %s", moveTo(1, polyCol), bgBlack, fgCyan, bold, h.polyCount, reset)

	checkTex := "[ ]"
	if view.textureEnabled && !view.wireframe {
		checkTex = "[✓]"
	}
	checkWire := "[ ]"
	if view.wireframe {
		checkWire = "[✓]"
	}
	backendName := "scanline"
	if backend == render.BackendBarycentric {
		backendName = "barycentric"
	}

	modeStr := fmt.Sprintf("%s%s %s Texture  %s Wireframe  B: %s %s",
		bgBlack, fgWhite, checkTex, checkWire, backendName, reset)
	fmt.Print(moveTo(height, 1) + modeStr)

	hintCol := max(width-18, 1)
	fmt.Printf("%s%s%s%s L: position light %s", moveTo(height, hintCol), bgBlack, dim, fgYellow, reset)
}

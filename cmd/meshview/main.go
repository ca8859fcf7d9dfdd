// meshview renders OBJ and GLTF/GLB models in the terminal on top of the
// raster3d software pipeline.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S, A/D    - Pitch and yaw
//	Q/E         - Roll
//	Space       - Apply a random impulse
//	R           - Reset rotation and zoom
//	T           - Toggle texture
//	X           - Toggle wireframe
//	B           - Switch rasterizer back-end (scanline/barycentric)
//	L           - Light positioning mode (move mouse, click to set, Esc to cancel)
//	?           - Toggle the HUD overlay
//	+/-         - Zoom
//	Esc         - Quit (or cancel light mode)
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/kestrelcg/raster3d/pkg/math3d"
	"github.com/kestrelcg/raster3d/pkg/models"
	"github.com/kestrelcg/raster3d/pkg/render"
)

var (
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG/WebP/TGA)")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	barycentric = flag.Bool("barycentric", false, "Start with the barycentric rasterizer back-end")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "meshview - terminal 3D model viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: meshview [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Rotate model\n")
		fmt.Fprintf(os.Stderr, "  Scroll, +/- - Zoom\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle texture\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  B           - Switch rasterizer back-end\n")
		fmt.Fprintf(os.Stderr, "  L           - Position light\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "meshview: %v\n", err)
		os.Exit(1)
	}
}

// loadModel dispatches on the file extension between the OBJ and GLTF
// loaders, returning the mesh plus any texture image embedded in the asset.
func loadModel(path string) (*models.Mesh, image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return models.LoadGLBWithTexture(path)
	case ".obj":
		mesh, err := models.LoadOBJ(path)
		return mesh, nil, err
	default:
		return nil, nil, fmt.Errorf("unsupported format %q (use .obj or .glb)", filepath.Ext(path))
	}
}

// normalizeMesh centers the mesh on the origin and scales its longest axis
// to 2 world units so every model fills a similar share of the frustum.
func normalizeMesh(mesh *models.Mesh) {
	mesh.CalculateBounds()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim <= 0 {
		return
	}
	scale := 2.0 / maxDim
	mesh.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(mesh.Center().Negate())))
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	background := math3d.V4(float64(bgR)/255, float64(bgG)/255, float64(bgB)/255, 1)

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Any-event mouse tracking plus SGR extended reporting.
	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")

	screen := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := screen.FramebufferSize()

	backend := render.BackendScanline
	projection := render.ProjectionScanline
	if *barycentric {
		backend = render.BackendBarycentric
		projection = render.ProjectionBarycentric
	}

	aspect := float64(fbWidth) / float64(fbHeight)
	camera := render.NewCamera(0.1, 100, aspect, math.Pi/3, projection)
	cameraZ := 5.0
	camera.SetPosition(math3d.V3(0, 0, cameraZ))

	renderer := render.NewRenderer(fbWidth, fbHeight, camera, backend)

	textures := render.NewTextureRegistry()
	haveTexture := false
	if *texturePath != "" {
		if _, err := textures.Load(*texturePath, "diffuse"); err != nil {
			fmt.Fprintf(os.Stderr, "meshview: texture: %v\n", err)
		} else {
			haveTexture = true
		}
	}

	mesh, embedded, err := loadModel(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	if !haveTexture && embedded != nil {
		textures.RegisterImage("diffuse", embedded)
		haveTexture = true
	}
	diffuseID, _ := textures.ID("diffuse")

	normalizeMesh(mesh)

	// Flatten once; the per-frame rotation goes in as DrawTriangles' model
	// matrix, never baked into the vertex stream.
	vertices := mesh.ToVertices(render.AttrUV, render.AttrNormal)
	flatColor := math3d.V4(200.0/255, 200.0/255, 200.0/255, 1)
	for i := range vertices {
		vertices[i].Attributes.Vec4s[render.AttrColor] = flatColor
	}

	wireShader := render.Shader{
		Vertex: func(v render.Vertex, _ *render.Uniforms, _ *render.TextureRegistry) render.Vertex { return v },
		Fragment: func(_ render.Attributes, _ *render.Uniforms, _ *render.TextureRegistry) math3d.Vec4 {
			return math3d.V4(0, 1, 128.0/255, 1)
		},
	}

	spin := newSpinState(*targetFPS)
	view := newViewState()
	overlay := newHUD(filepath.Base(modelPath), mesh.TriangleCount())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Held-key torque; decayed every frame because terminal key-release
	// events are unreliable.
	var torque struct{ pitch, yaw, roll float64 }
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				screen = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = screen.FramebufferSize()
				renderer = render.NewRenderer(fbWidth, fbHeight, camera, renderer.Backend)
				camera.Frustum.Aspect = float64(fbWidth) / float64(fbHeight)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"):
					if view.lightMode {
						view.lightMode = false
					} else {
						cancel()
						return
					}
				case ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					torque.roll = -torqueStrength
				case ev.MatchString("e"):
					torque.roll = torqueStrength
				case ev.MatchString("w", "up"):
					torque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					torque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					torque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					torque.yaw = torqueStrength
				case ev.MatchString("r"):
					spin.reset()
					cameraZ = 5.0
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("space"):
					spin.applyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("t"):
					view.textureEnabled = !view.textureEnabled
				case ev.MatchString("x"):
					view.wireframe = !view.wireframe
				case ev.MatchString("b"):
					// The projection variant travels with the back-end: the
					// scanline rhw convention needs its matching matrix.
					if renderer.Backend == render.BackendScanline {
						renderer.Backend = render.BackendBarycentric
						camera.Frustum.Projection = render.ProjectionBarycentric
					} else {
						renderer.Backend = render.BackendScanline
						camera.Frustum.Projection = render.ProjectionScanline
					}
				case ev.MatchString("l"):
					view.lightMode = true
					view.pendingLight = view.lightDir
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					view.showHUD = !view.showHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					torque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					torque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					torque.roll = 0
				}

			case uv.MouseClickEvent:
				if view.lightMode {
					view.lightDir = view.pendingLight
					view.lightMode = false
				} else {
					mouseDown = true
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseReleaseEvent:
				if !view.lightMode {
					mouseDown = false
				}

			case uv.MouseMotionEvent:
				if view.lightMode {
					view.pendingLight = screenToLightDir(ev.X, ev.Y, width, height)
				} else if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					spin.applyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
				camera.SetPosition(math3d.V3(0, 0, cameraZ))
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := math.Min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		spin.applyImpulse(torque.pitch*dt, torque.yaw*dt, torque.roll*dt)
		torque.pitch *= 0.9
		torque.yaw *= 0.9
		torque.roll *= 0.9
		spin.update()

		model := math3d.RotateX(spin.pitch.position).
			Mul(math3d.RotateY(spin.yaw.position)).
			Mul(math3d.RotateZ(spin.roll.position))

		renderer.Clear(background)
		renderer.ClearDepth()

		lightDir := view.lightDir
		if view.lightMode {
			lightDir = view.pendingLight
		}

		if view.wireframe {
			renderer.EnableWireframe()
			*renderer.Shader() = wireShader
			renderer.DrawTriangles(model, vertices, textures)
			renderer.DisableWireframe()
		} else {
			*renderer.Shader() = render.LambertShader()
			uniforms := renderer.Uniforms()
			uniforms.Vec3s[render.UniformLightDir] = lightDir.Negate()
			if haveTexture && view.textureEnabled {
				uniforms.Textures[render.UniformTexture] = diffuseID
			} else {
				delete(uniforms.Textures, render.UniformTexture)
			}
			renderer.DrawTriangles(model, vertices, textures)
		}

		screen.Render(renderer.Color)
		if err := screen.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		overlay.updateFPS()
		overlay.render(width, height, view, renderer.Backend)

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

package render

import (
	"math"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

// Camera owns the view frustum plus position and Euler orientation.
// ViewMatrix, ViewProjectionMatrix and ViewDir are cached and only
// recomputed when position or rotation actually changes.
type Camera struct {
	Frustum Frustum

	Position math3d.Vec3
	Rotation math3d.Vec3 // Euler angles (X=pitch, Y=yaw, Z=roll), radians

	viewMat        math3d.Mat4
	viewDir        math3d.Vec3
	viewProjMat    math3d.Mat4
	viewDirty      bool
	viewProjStaleP bool // projection component of the cache needs a rebuild
}

// NewCamera builds a camera at the world origin looking down -Z.
func NewCamera(near, far, aspect, fovy float64, projection ProjectionKind) *Camera {
	c := &Camera{
		Frustum:        Frustum{Near: near, Far: far, Aspect: aspect, Fovy: fovy, Projection: projection},
		viewDirty:      true,
		viewProjStaleP: true,
	}
	c.ViewMatrix()
	return c
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetRotation sets the camera's Euler orientation (radians).
func (c *Camera) SetRotation(rotation math3d.Vec3) {
	c.Rotation = rotation
	c.viewDirty = true
}

// Translate moves the camera by delta in world space.
func (c *Camera) Translate(delta math3d.Vec3) {
	c.Position = c.Position.Add(delta)
	c.viewDirty = true
}

// Rotate adds delta to the camera's Euler orientation, clamping pitch away
// from the poles to avoid gimbal-lock flips.
func (c *Camera) Rotate(delta math3d.Vec3) {
	c.Rotation = c.Rotation.Add(delta)
	const maxPitch = math.Pi/2 - 0.01
	if c.Rotation.X > maxPitch {
		c.Rotation.X = maxPitch
	}
	if c.Rotation.X < -maxPitch {
		c.Rotation.X = -maxPitch
	}
	c.viewDirty = true
}

// Forward returns the world-space unit vector the camera looks along.
func (c *Camera) Forward() math3d.Vec3 {
	return c.ViewDir()
}

// Right returns the camera's world-space right vector.
func (c *Camera) Right() math3d.Vec3 {
	yaw := c.Rotation.Y
	return math3d.V3(math.Cos(yaw), 0, -math.Sin(yaw))
}

// ViewMatrix returns the view matrix: a rotation about the world origin by
// -Rotation (Rz*Ry*Rx of the negated Euler angles) composed with a
// translation of -Position.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		neg := c.Rotation.Negate()
		rot := math3d.RotateZ(neg.Z).Mul(math3d.RotateY(neg.Y)).Mul(math3d.RotateX(neg.X))
		trans := math3d.Translate(c.Position.Negate())
		c.viewMat = rot.Mul(trans)
		c.viewDir = rot.MulVec4(math3d.V4(0, 0, -1, 1)).Vec3()
		c.viewDirty = false
		c.viewProjStaleP = true
	}
	return c.viewMat
}

// ViewDir returns the current unit view direction, used by face culling.
func (c *Camera) ViewDir() math3d.Vec3 {
	c.ViewMatrix()
	return c.viewDir
}

// ProjectionMatrix builds the camera's projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return c.Frustum.Matrix()
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	view := c.ViewMatrix()
	if c.viewProjStaleP {
		c.viewProjMat = c.ProjectionMatrix().Mul(view)
		c.viewProjStaleP = false
	}
	return c.viewProjMat
}

// GetFrustum returns the AABB-culling MeshFrustum extracted from the
// camera's current view-projection matrix, for whole-mesh bounding-volume
// culling ahead of the per-triangle pipeline.
func (c *Camera) GetFrustum() MeshFrustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// WorldToScreen transforms a world point to screen coordinates via the
// camera's full view-projection pipeline, for demo hosts that need to
// place 2D overlays (HUD markers, debug labels) over 3D geometry.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}
	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight)
	depth = ndc.Z
	return x, y, depth, true
}

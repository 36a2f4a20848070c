package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	nearPlaneZ  = 0.01
	minDistance = 0.5
	maxDistance = 50
)

// Camera orbits the origin. Camera space looks down +Z with +Y up and +X to
// the left.
type Camera struct {
	camMatrixRev *Matrix
	cameraAngle  mgl64.Vec3
	distance     float64
	fov          float64
}

// NewCamera places the camera distance away from the origin, pitched by xa
// and turned by ya.
func NewCamera(distance, xa, ya, fov float64) *Camera {
	c := &Camera{
		cameraAngle: mgl64.Vec3{xa, ya, 0},
		distance:    distance,
		fov:         fov,
	}
	c.update()
	return c
}

func (c *Camera) update() {
	x := NewRotationMatrix(ROTX, -c.cameraAngle[0])
	y := NewRotationMatrix(ROTY, -c.cameraAngle[1])
	c.camMatrixRev = TransMatrix(0, 0, c.distance).MultiplyBy(x).MultiplyBy(y)
}

// AddAngle turns the orbit; pitch stays short of the poles.
func (c *Camera) AddAngle(x, y float64) {
	c.cameraAngle[0] = mgl64.Clamp(c.cameraAngle[0]+x, -math.Pi/2+0.01, math.Pi/2-0.01)
	c.cameraAngle[1] += y
	c.update()
}

// Zoom scales the orbit distance by f.
func (c *Camera) Zoom(f float64) {
	c.distance = mgl64.Clamp(c.distance*f, minDistance, maxDistance)
	c.update()
}

func (c *Camera) GetMatrix() *Matrix {
	return c.camMatrixRev
}

// GetPosition is the camera's location in world space.
func (c *Camera) GetPosition() mgl64.Vec3 {
	inv := c.camMatrixRev.Mat4().Inv()
	return inv.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
}

func (c *Camera) focal(height int) float64 {
	return float64(height) / (2 * math.Tan(c.fov/2))
}

// ToScreen projects a camera space point. ok is false behind the near plane.
func (c *Camera) ToScreen(p mgl64.Vec3, width, height int) (x, y float32, ok bool) {
	if p[2] < nearPlaneZ {
		return 0, 0, false
	}
	f := c.focal(height)
	x = float32(-f*p[0]/p[2] + float64(width)/2)
	y = float32(-f*p[1]/p[2] + float64(height)/2)
	return x, y, true
}

// Ray returns the world space ray through pixel (sx, sy).
func (c *Camera) Ray(sx, sy, width, height int) (origin, dir mgl64.Vec3) {
	f := c.focal(height)
	dx := -(float64(sx) - float64(width)/2) / f
	dy := -(float64(sy) - float64(height)/2) / f

	inv := c.camMatrixRev.Mat4().Inv()
	origin = inv.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
	through := inv.Mul4x1(mgl64.Vec4{dx, dy, 1, 1}).Vec3()
	return origin, through.Sub(origin).Normalize()
}

// OrthoCamera is the fixed view used for the base space inset.
type OrthoCamera struct {
	view *Matrix
}

// NewOrthoCameraLookAt looks from eye at the origin.
func NewOrthoCameraLookAt(eye mgl64.Vec3) *OrthoCamera {
	lookAtMat := mgl64.LookAtV(eye, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
	return &OrthoCamera{view: ToMatrix(lookAtMat)}
}

// ToScreen maps p into a disc of the given radius around (cx, cy). depth is
// positive for points on the far side of the sphere.
func (o *OrthoCamera) ToScreen(p mgl64.Vec3, cx, cy, radius float32) (x, y float32, depth float64) {
	v := o.view.TransformPoint(p)
	eyeDist := o.view.TransformPoint(mgl64.Vec3{})[2]
	return cx + radius*float32(v[0]), cy - radius*float32(v[1]), eyeDist - v[2]
}

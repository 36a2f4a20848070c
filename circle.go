package hopf3d

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	MinDistanceToCenter = -1.0
	MaxDistanceToCenter = 0.999
	MaxCircumference    = 2 * math.Pi

	// rotationAxisThreshold is the smallest axis component that still rotates.
	rotationAxisThreshold = 0.001
)

var (
	ErrInvalidParameter = errors.New("invalid circle parameter")
	ErrCircleDestroyed  = errors.New("circle destroyed")
)

// DefaultRotation turns the generating circle a quarter turn about Z.
func DefaultRotation() mgl64.Quat {
	return mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
}

type CircleParams struct {
	DistanceToCenter float64
	Circumference    float64
	PointCount       int
	DefaultRotation  mgl64.Quat
	RotationAxis     mgl64.Vec3
	RotationAngle    float64
}

func DefaultCircleParams() CircleParams {
	return CircleParams{
		DistanceToCenter: 0,
		Circumference:    2 * math.Pi,
		PointCount:       10,
		DefaultRotation:  DefaultRotation(),
	}
}

func (p CircleParams) Validate() error {
	if p.PointCount < 1 {
		return fmt.Errorf("%w: point count %d < 1", ErrInvalidParameter, p.PointCount)
	}
	if p.DistanceToCenter < MinDistanceToCenter || p.DistanceToCenter > MaxDistanceToCenter || math.IsNaN(p.DistanceToCenter) {
		return fmt.Errorf("%w: distance to center %v not in [%v, %v]", ErrInvalidParameter, p.DistanceToCenter, MinDistanceToCenter, MaxDistanceToCenter)
	}
	if p.Circumference < 0 || p.Circumference > MaxCircumference+1e-9 || math.IsNaN(p.Circumference) {
		return fmt.Errorf("%w: circumference %v not in [0, 2π]", ErrInvalidParameter, p.Circumference)
	}
	if p.RotationAngle < 0 || math.IsNaN(p.RotationAngle) {
		return fmt.Errorf("%w: rotation angle %v < 0", ErrInvalidParameter, p.RotationAngle)
	}
	return nil
}

type CircleState int

const (
	StateConstructing CircleState = iota
	StateRendered
	StateRotating
	StateDestroyed
)

func (s CircleState) String() string {
	switch s {
	case StateConstructing:
		return "constructing"
	case StateRendered:
		return "rendered"
	case StateRotating:
		return "rotating"
	case StateDestroyed:
		return "destroyed"
	}
	return fmt.Sprintf("CircleState(%d)", int(s))
}

// BaseSpaceCircle is a circle of base points and the fibers drawn over them.
// Its shape is fixed at construction; changing it means Destroy and a new
// circle with the remaining parameters carried over.
type BaseSpaceCircle struct {
	params   CircleParams
	theta    float64
	rotation mgl64.Quat
	state    CircleState

	points []mgl64.Vec3
	colors []Color
	cloud  *PointCloud
	curves []*Curve

	fiberScene Registrar
	baseScene  Registrar
}

// NewBaseSpaceCircle lays out the base points, registers them in baseScene
// and builds one fiber curve per point into fiberScene.
func NewBaseSpaceCircle(params CircleParams, settings Settings, fiberScene, baseScene Registrar) (*BaseSpaceCircle, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if params.DefaultRotation == (mgl64.Quat{}) {
		params.DefaultRotation = mgl64.QuatIdent()
	}

	c := &BaseSpaceCircle{
		params:     params,
		theta:      params.DistanceToCenter * math.Pi / 2,
		state:      StateConstructing,
		fiberScene: fiberScene,
		baseScene:  baseScene,
	}
	c.updateRotation()

	c.points = make([]mgl64.Vec3, params.PointCount)
	c.colors = make([]Color, params.PointCount)
	for i := range c.points {
		c.points[i] = params.DefaultRotation.Rotate(c.PointCoordinate(i))
		c.colors[i] = Rainbow(i, params.PointCount)
	}

	c.cloud = NewPointCloud(c.points, c.colors)
	if baseScene != nil {
		baseScene.Add(c.cloud)
	}

	if err := c.RebuildFibers(settings); err != nil {
		c.Destroy()
		return nil, err
	}
	c.state = StateRendered
	return c, nil
}

// PointCoordinate is the i-th base point before the default orientation.
func (c *BaseSpaceCircle) PointCoordinate(i int) mgl64.Vec3 {
	phi := c.params.Circumference * float64(i) / float64(c.params.PointCount)
	return mgl64.Vec3{
		math.Cos(c.theta) * math.Sin(phi),
		math.Sin(c.theta),
		math.Cos(c.theta) * math.Cos(phi),
	}
}

func (c *BaseSpaceCircle) SetRotationAxis(axis mgl64.Vec3) {
	c.params.RotationAxis = axis
	c.updateRotation()
}

// SetRotationAngle sets the per tick angle; negative values are rejected.
func (c *BaseSpaceCircle) SetRotationAngle(angle float64) error {
	if angle < 0 || math.IsNaN(angle) {
		return fmt.Errorf("%w: rotation angle %v < 0", ErrInvalidParameter, angle)
	}
	c.params.RotationAngle = angle
	c.updateRotation()
	return nil
}

func (c *BaseSpaceCircle) updateRotation() {
	axis := c.params.RotationAxis
	if axis.Len() == 0 {
		c.rotation = mgl64.QuatIdent()
		return
	}
	c.rotation = mgl64.QuatRotate(c.params.RotationAngle, axis.Normalize())
}

func (c *BaseSpaceCircle) axisActive() bool {
	for _, v := range c.params.RotationAxis {
		if math.Abs(v) > rotationAxisThreshold {
			return true
		}
	}
	return false
}

// RotateStep applies one tick of the applied rotation to the base points.
// It reports whether anything moved.
func (c *BaseSpaceCircle) RotateStep() bool {
	if c.state == StateDestroyed || !c.axisActive() {
		return false
	}
	for i, p := range c.points {
		c.points[i] = c.rotation.Rotate(p)
	}
	c.state = StateRotating
	return true
}

// Tick is one animation frame: rotate, then rebuild every fiber whenever the
// applied angle is non zero.
func (c *BaseSpaceCircle) Tick(settings Settings) error {
	if c.state == StateDestroyed {
		return ErrCircleDestroyed
	}
	c.RotateStep()
	if c.params.RotationAngle > 0 {
		return c.RebuildFibers(settings)
	}
	return nil
}

// RebuildFibers replaces every curve. On error the old curves stay in place.
func (c *BaseSpaceCircle) RebuildFibers(settings Settings) error {
	if c.state == StateDestroyed {
		return ErrCircleDestroyed
	}

	curves := make([]*Curve, 0, len(c.points))
	for i, p := range c.points {
		curve, err := AssembleFiber(BasePoint{Position: p, Color: c.colors[i]}, settings)
		if err != nil {
			for _, built := range curves {
				built.Dispose()
			}
			return fmt.Errorf("fiber %d: %w", i, err)
		}
		curve.BaseIndex = i
		curves = append(curves, curve)
	}

	c.releaseCurves()
	c.curves = curves
	if c.fiberScene != nil {
		for _, curve := range curves {
			c.fiberScene.Add(curve)
		}
	}
	return nil
}

func (c *BaseSpaceCircle) releaseCurves() {
	for _, curve := range c.curves {
		curve.Dispose()
		if c.fiberScene != nil {
			c.fiberScene.Remove(curve)
		}
	}
	c.curves = nil
}

// Destroy releases everything the circle created. Calling it again is a no-op.
func (c *BaseSpaceCircle) Destroy() {
	if c.state == StateDestroyed {
		return
	}
	c.releaseCurves()
	if c.cloud != nil {
		c.cloud.Dispose()
		if c.baseScene != nil {
			c.baseScene.Remove(c.cloud)
		}
		c.cloud = nil
	}
	c.state = StateDestroyed
}

func (c *BaseSpaceCircle) State() CircleState {
	return c.state
}

func (c *BaseSpaceCircle) Params() CircleParams {
	return c.params
}

func (c *BaseSpaceCircle) Rotation() mgl64.Quat {
	return c.rotation
}

// Curves returns the currently registered fiber curves.
func (c *BaseSpaceCircle) Curves() []*Curve {
	out := make([]*Curve, len(c.curves))
	copy(out, c.curves)
	return out
}

func (c *BaseSpaceCircle) BasePoints() []BasePoint {
	out := make([]BasePoint, len(c.points))
	for i, p := range c.points {
		out[i] = BasePoint{Position: p, Color: c.colors[i]}
	}
	return out
}

func (c *BaseSpaceCircle) PointCloud() *PointCloud {
	return c.cloud
}

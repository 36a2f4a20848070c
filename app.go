package hopf3d

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	MaxPointCount    = 250
	MaxAxisComponent = 1.0
	MaxRotationAngle = 0.1
)

var ErrNoCircle = errors.New("no circle")

// App is the whole visualisation state: shared settings, both scenes and the
// circles drawn into them. Only the last circle is editable.
type App struct {
	settings   Settings
	defaults   CircleParams
	circles    []*BaseSpaceCircle
	fiberScene *Scene
	baseScene  *Scene
}

func NewApp(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		settings:   cfg.Settings(),
		defaults:   DefaultCircleParams(),
		fiberScene: NewScene(),
		baseScene:  NewScene(),
	}

	log.Println("Creating circles...")
	circles := cfg.Circles
	if len(circles) == 0 {
		circles = []CircleConfig{DefaultCircleConfig()}
	}
	for i, cc := range circles {
		c, err := a.newCircle(cc.Params())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("circle %d: %w", i, err)
		}
		a.circles = append(a.circles, c)
	}
	log.Printf("Circles: %d, fibers: %d", len(a.circles), a.fiberScene.Len())

	return a, nil
}

func (a *App) newCircle(p CircleParams) (*BaseSpaceCircle, error) {
	return NewBaseSpaceCircle(p, a.settings, a.fiberScene, a.baseScene)
}

func (a *App) Settings() Settings {
	return a.settings
}

func (a *App) FiberScene() *Scene {
	return a.fiberScene
}

func (a *App) BaseScene() *Scene {
	return a.baseScene
}

func (a *App) Circles() []*BaseSpaceCircle {
	out := make([]*BaseSpaceCircle, len(a.circles))
	copy(out, a.circles)
	return out
}

// Last is the circle the controls edit.
func (a *App) Last() (*BaseSpaceCircle, error) {
	if len(a.circles) == 0 {
		return nil, ErrNoCircle
	}
	return a.circles[len(a.circles)-1], nil
}

func (a *App) SetFiberResolution(n int) error {
	s := a.settings
	s.FiberResolution = n
	return a.applySettings(s)
}

func (a *App) SetCompressToBall(on bool) error {
	s := a.settings
	s.CompressToBall = on
	return a.applySettings(s)
}

func (a *App) SetDashed(on bool) error {
	s := a.settings
	s.Dashed = on
	return a.applySettings(s)
}

// applySettings validates s, stores it and rebuilds every circle.
func (a *App) applySettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	a.settings = s
	log.Printf("Rebuilding %d circles at resolution %d (ball: %t)", len(a.circles), s.FiberResolution, s.CompressToBall)
	var errs []error
	for _, c := range a.circles {
		if err := c.RebuildFibers(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Detach leaves the current circle where it is and starts a fresh default one.
func (a *App) Detach() error {
	c, err := a.newCircle(a.defaults)
	if err != nil {
		return err
	}
	a.circles = append(a.circles, c)
	return nil
}

// ClearAll destroys every circle and starts over with one default circle.
func (a *App) ClearAll() error {
	for _, c := range a.circles {
		c.Destroy()
	}
	a.circles = nil
	return a.Detach()
}

func (a *App) SetCenterOffset(v float64) error {
	return a.replaceLast(func(p *CircleParams) { p.DistanceToCenter = v })
}

func (a *App) SetCircumference(v float64) error {
	return a.replaceLast(func(p *CircleParams) { p.Circumference = v })
}

func (a *App) SetPointCount(n int) error {
	if n > MaxPointCount {
		return fmt.Errorf("%w: point count %d > %d", ErrInvalidParameter, n, MaxPointCount)
	}
	return a.replaceLast(func(p *CircleParams) { p.PointCount = n })
}

// replaceLast recreates the last circle with one field changed. The rest of
// its parameters, including the applied rotation, carry over.
func (a *App) replaceLast(change func(p *CircleParams)) error {
	last, err := a.Last()
	if err != nil {
		return err
	}
	p := last.Params()
	change(&p)
	if err := p.Validate(); err != nil {
		return err
	}

	c, err := a.newCircle(p)
	if err != nil {
		return err
	}
	last.Destroy()
	a.circles[len(a.circles)-1] = c
	return nil
}

// SetRotationAxisComponent sets component i (0=x, 1=y, 2=z) of the applied
// rotation axis on the last circle.
func (a *App) SetRotationAxisComponent(i int, v float64) error {
	if i < 0 || i > 2 {
		return fmt.Errorf("%w: axis component %d", ErrInvalidParameter, i)
	}
	last, err := a.Last()
	if err != nil {
		return err
	}
	axis := last.Params().RotationAxis
	axis[i] = v
	return a.SetRotationAxis(axis)
}

// SetRotationAxis replaces the whole axis. Nothing changes unless every
// component is in [0, MaxAxisComponent].
func (a *App) SetRotationAxis(axis mgl64.Vec3) error {
	for _, v := range axis {
		if v < 0 || v > MaxAxisComponent || math.IsNaN(v) {
			return fmt.Errorf("%w: axis component %v not in [0, %v]", ErrInvalidParameter, v, MaxAxisComponent)
		}
	}
	last, err := a.Last()
	if err != nil {
		return err
	}
	last.SetRotationAxis(axis)
	return nil
}

func (a *App) SetRotationAngle(v float64) error {
	if v > MaxRotationAngle {
		return fmt.Errorf("%w: rotation angle %v > %v", ErrInvalidParameter, v, MaxRotationAngle)
	}
	last, err := a.Last()
	if err != nil {
		return err
	}
	return last.SetRotationAngle(v)
}

// Tick advances every circle by one frame.
func (a *App) Tick() error {
	var errs []error
	for _, c := range a.circles {
		if err := c.Tick(a.settings); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close destroys every circle.
func (a *App) Close() {
	for _, c := range a.circles {
		c.Destroy()
	}
	a.circles = nil
}

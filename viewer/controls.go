package viewer

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/hopf3d"
)

const (
	resolutionStep    = 10
	centerOffsetStep  = 0.01
	circumferenceStep = math.Pi / 36
	axisStep          = 0.1
	angleStep         = 0.001
)

type binding struct {
	key    ebiten.Key
	label  string
	repeat bool
	apply  func(a *hopf3d.App) error
}

func (b binding) pressed() bool {
	if b.repeat {
		return repeatingKeyPressed(b.key)
	}
	return inpututil.IsKeyJustPressed(b.key)
}

// repeatingKeyPressed fires once on press and then at a steady rate while held.
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	if d >= delay && (d-delay)%interval == 0 {
		return true
	}
	return false
}

// Controls maps keys onto App operations.
type Controls struct {
	bindings []binding
}

func NewControls() *Controls {
	return &Controls{bindings: []binding{
		{key: ebiten.KeyR, label: "R/F  fiber resolution +/-", repeat: true, apply: stepResolution(resolutionStep)},
		{key: ebiten.KeyF, repeat: true, apply: stepResolution(-resolutionStep)},
		{key: ebiten.KeyB, label: "B    map R3 to B3", apply: func(a *hopf3d.App) error {
			return a.SetCompressToBall(!a.Settings().CompressToBall)
		}},
		{key: ebiten.KeyV, label: "V    dashed fibers", apply: func(a *hopf3d.App) error {
			return a.SetDashed(!a.Settings().Dashed)
		}},
		{key: ebiten.KeyD, label: "D    detach", apply: (*hopf3d.App).Detach},
		{key: ebiten.KeyC, label: "C    clear all", apply: (*hopf3d.App).ClearAll},
		{key: ebiten.KeyArrowUp, label: "Up/Down     center offset", repeat: true, apply: stepCenterOffset(centerOffsetStep)},
		{key: ebiten.KeyArrowDown, repeat: true, apply: stepCenterOffset(-centerOffsetStep)},
		{key: ebiten.KeyArrowRight, label: "Right/Left  circumference", repeat: true, apply: stepCircumference(circumferenceStep)},
		{key: ebiten.KeyArrowLeft, repeat: true, apply: stepCircumference(-circumferenceStep)},
		{key: ebiten.KeyEqual, label: "+/-  point count", repeat: true, apply: stepPointCount(1)},
		{key: ebiten.KeyMinus, repeat: true, apply: stepPointCount(-1)},
		{key: ebiten.KeyX, label: "X/Y/Z  rotation axis component", apply: cycleAxis(0)},
		{key: ebiten.KeyY, apply: cycleAxis(1)},
		{key: ebiten.KeyZ, apply: cycleAxis(2)},
		{key: ebiten.KeyQ, label: "Q/A  rotation angle +/-", repeat: true, apply: stepAngle(angleStep)},
		{key: ebiten.KeyA, repeat: true, apply: stepAngle(-angleStep)},
	}}
}

// Update runs every binding whose key fired this frame.
func (c *Controls) Update(a *hopf3d.App) {
	for _, b := range c.bindings {
		if !b.pressed() {
			continue
		}
		if err := b.apply(a); err != nil {
			log.Printf("%s: %v", b.key, err)
		}
	}
}

// Help lists the bindings that carry a label.
func (c *Controls) Help() []string {
	var lines []string
	for _, b := range c.bindings {
		if b.label != "" {
			lines = append(lines, b.label)
		}
	}
	return lines
}

func lastParams(a *hopf3d.App) (hopf3d.CircleParams, error) {
	c, err := a.Last()
	if err != nil {
		return hopf3d.CircleParams{}, err
	}
	return c.Params(), nil
}

func stepResolution(d int) func(a *hopf3d.App) error {
	return func(a *hopf3d.App) error {
		n := clampInt(a.Settings().FiberResolution+d, hopf3d.MinFiberResolution, hopf3d.MaxSelectableResolution)
		if n == a.Settings().FiberResolution {
			return nil
		}
		return a.SetFiberResolution(n)
	}
}

func stepCenterOffset(d float64) func(a *hopf3d.App) error {
	return func(a *hopf3d.App) error {
		p, err := lastParams(a)
		if err != nil {
			return err
		}
		v := clamp(p.DistanceToCenter+d, hopf3d.MinDistanceToCenter, hopf3d.MaxDistanceToCenter)
		if v == p.DistanceToCenter {
			return nil
		}
		return a.SetCenterOffset(v)
	}
}

func stepCircumference(d float64) func(a *hopf3d.App) error {
	return func(a *hopf3d.App) error {
		p, err := lastParams(a)
		if err != nil {
			return err
		}
		v := clamp(p.Circumference+d, 0, hopf3d.MaxCircumference)
		if v == p.Circumference {
			return nil
		}
		return a.SetCircumference(v)
	}
}

func stepPointCount(d int) func(a *hopf3d.App) error {
	return func(a *hopf3d.App) error {
		p, err := lastParams(a)
		if err != nil {
			return err
		}
		n := clampInt(p.PointCount+d, 1, hopf3d.MaxPointCount)
		if n == p.PointCount {
			return nil
		}
		return a.SetPointCount(n)
	}
}

// cycleAxis raises one axis component by axisStep, wrapping back to 0 past 1.
func cycleAxis(i int) func(a *hopf3d.App) error {
	return func(a *hopf3d.App) error {
		p, err := lastParams(a)
		if err != nil {
			return err
		}
		v := math.Round((p.RotationAxis[i]+axisStep)*10) / 10
		if v > hopf3d.MaxAxisComponent {
			v = 0
		}
		return a.SetRotationAxisComponent(i, v)
	}
}

func stepAngle(d float64) func(a *hopf3d.App) error {
	return func(a *hopf3d.App) error {
		p, err := lastParams(a)
		if err != nil {
			return err
		}
		return a.SetRotationAngle(clamp(p.RotationAngle+d, 0, hopf3d.MaxRotationAngle))
	}
}

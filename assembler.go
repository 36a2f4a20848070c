package hopf3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Settings are shared by every circle; changing them rebuilds all fibers.
type Settings struct {
	FiberResolution int
	CompressToBall  bool

	// Material template copied into every curve.
	LineWidth float64
	Dashed    bool
	DashSize  float64
	GapSize   float64
}

func DefaultSettings() Settings {
	return Settings{
		FiberResolution: DefaultFiberResolution,
		LineWidth:       0.003,
		DashSize:        0.1,
		GapSize:         0.05,
	}
}

func (s Settings) Validate() error {
	if s.FiberResolution < MinFiberResolution || s.FiberResolution > MaxSelectableResolution {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidResolution, s.FiberResolution, MinFiberResolution, MaxSelectableResolution)
	}
	return nil
}

func (s Settings) material() *LineMaterial {
	m := NewLineMaterial()
	if s.LineWidth > 0 {
		m.LineWidth = s.LineWidth
	}
	m.Dashed = s.Dashed
	if s.DashSize > 0 {
		m.DashSize = s.DashSize
	}
	if s.GapSize > 0 {
		m.GapSize = s.GapSize
	}
	return m
}

// BasePoint is a point on the base 2-sphere and its display colour.
type BasePoint struct {
	Position mgl64.Vec3
	Color    Color
}

// AssembleFiber turns a base point into a closed, coloured polyline of
// FiberResolution+1 vertices. The colour buffer is always sized for
// MaxFiberResolution+1 vertices so resolution changes never outgrow it.
func AssembleFiber(base BasePoint, settings Settings) (*Curve, error) {
	if settings.FiberResolution > MaxFiberResolution {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidResolution, settings.FiberResolution, MaxFiberResolution)
	}
	fiber, err := HopfFiber(base.Position, settings.FiberResolution)
	if err != nil {
		return nil, err
	}
	pts := ProjectFiber(fiber, settings.CompressToBall)

	positions := make([]float64, 0, 3*len(pts))
	for _, p := range pts {
		positions = append(positions, p[0], p[1], p[2])
	}

	colors := make([]float64, 0, 3*(MaxFiberResolution+1))
	for i := 0; i < MaxFiberResolution+1; i++ {
		colors = append(colors, base.Color.R, base.Color.G, base.Color.B)
	}

	return NewCurve(positions, colors, nil, settings.material()), nil
}

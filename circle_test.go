package hopf3d

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestCircle(t *testing.T, p CircleParams, fibers, base Registrar) *BaseSpaceCircle {
	t.Helper()
	c, err := NewBaseSpaceCircle(p, DefaultSettings(), fibers, base)
	if err != nil {
		t.Fatalf("NewBaseSpaceCircle: %v", err)
	}
	return c
}

func TestPointCoordinateEquator(t *testing.T) {
	p := DefaultCircleParams()
	p.PointCount = 4
	c := newTestCircle(t, p, NewScene(), NewScene())

	want := []mgl64.Vec3{{0, 0, 1}, {1, 0, 0}, {0, 0, -1}, {-1, 0, 0}}
	for i, w := range want {
		got := c.PointCoordinate(i)
		if !vecAlmostEqual(got, w) {
			t.Errorf("PointCoordinate(%d) = %v, want %v", i, got, w)
		}
		if !almostEqual(got[1], 0) {
			t.Errorf("PointCoordinate(%d) is off the equator: y = %v", i, got[1])
		}
	}

	// the default orientation is a quarter turn about Z
	pts := c.BasePoints()
	if !vecAlmostEqual(pts[0].Position, mgl64.Vec3{0, 0, 1}) {
		t.Errorf("base point 0 = %v", pts[0].Position)
	}
	if !vecAlmostEqual(pts[1].Position, mgl64.Vec3{0, 1, 0}) {
		t.Errorf("base point 1 = %v", pts[1].Position)
	}
	if pts[0].Color != Rainbow(0, 4) || pts[3].Color != Rainbow(3, 4) {
		t.Errorf("base colours not rainbow ordered")
	}
}

func TestPointCoordinateLatitude(t *testing.T) {
	p := DefaultCircleParams()
	p.DistanceToCenter = 0.5
	c := newTestCircle(t, p, nil, nil)
	want := math.Sin(math.Pi / 4)
	for i := 0; i < p.PointCount; i++ {
		got := c.PointCoordinate(i)
		if !almostEqual(got[1], want) || !almostEqual(got.Len(), 1) {
			t.Errorf("PointCoordinate(%d) = %v", i, got)
		}
	}
}

func TestNewBaseSpaceCircleRegisters(t *testing.T) {
	fibers, base := NewScene(), NewScene()
	c := newTestCircle(t, DefaultCircleParams(), fibers, base)

	if c.State() != StateRendered {
		t.Errorf("State() = %v, want rendered", c.State())
	}
	if fibers.Len() != 10 {
		t.Errorf("fiber scene holds %d renderables, want 10", fibers.Len())
	}
	if base.Len() != 1 || !base.Contains(c.PointCloud()) {
		t.Errorf("base scene does not hold the point cloud")
	}
	for i, curve := range c.Curves() {
		if curve.Geometry.VertexCount() != DefaultFiberResolution+1 {
			t.Errorf("curve %d has %d vertices", i, curve.Geometry.VertexCount())
		}
		if curve.BaseIndex != i {
			t.Errorf("curve %d has base index %d", i, curve.BaseIndex)
		}
	}
}

func TestNewBaseSpaceCircleRejects(t *testing.T) {
	testCases := []struct {
		name   string
		change func(p *CircleParams)
	}{
		{name: "no points", change: func(p *CircleParams) { p.PointCount = 0 }},
		{name: "center offset too high", change: func(p *CircleParams) { p.DistanceToCenter = 1 }},
		{name: "center offset too low", change: func(p *CircleParams) { p.DistanceToCenter = -1.5 }},
		{name: "negative circumference", change: func(p *CircleParams) { p.Circumference = -0.1 }},
		{name: "circumference over 2π", change: func(p *CircleParams) { p.Circumference = 7 }},
		{name: "negative angle", change: func(p *CircleParams) { p.RotationAngle = -0.01 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultCircleParams()
			tc.change(&p)
			fibers, base := NewScene(), NewScene()
			_, err := NewBaseSpaceCircle(p, DefaultSettings(), fibers, base)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
			if fibers.Len() != 0 || base.Len() != 0 {
				t.Errorf("rejected circle left renderables behind")
			}
		})
	}
}

func TestDestroyReleasesEverything(t *testing.T) {
	fibers, base := NewScene(), NewScene()
	keep := newTestCircle(t, DefaultCircleParams(), fibers, base)
	c := newTestCircle(t, DefaultCircleParams(), fibers, base)
	curves := c.Curves()
	cloud := c.PointCloud()

	c.Destroy()

	if c.State() != StateDestroyed {
		t.Errorf("State() = %v, want destroyed", c.State())
	}
	for i, curve := range curves {
		if !curve.Disposed() {
			t.Errorf("curve %d not disposed", i)
		}
		if fibers.Contains(curve) {
			t.Errorf("curve %d still in scene", i)
		}
	}
	if !cloud.Disposed() || base.Contains(cloud) {
		t.Errorf("point cloud not released")
	}
	if len(c.Curves()) != 0 {
		t.Errorf("destroyed circle still owns %d curves", len(c.Curves()))
	}
	if fibers.Len() != len(keep.Curves()) || base.Len() != 1 {
		t.Errorf("destroy touched another circle: fibers=%d base=%d", fibers.Len(), base.Len())
	}

	c.Destroy()
	if err := c.RebuildFibers(DefaultSettings()); !errors.Is(err, ErrCircleDestroyed) {
		t.Errorf("RebuildFibers after Destroy = %v", err)
	}
	if err := c.Tick(DefaultSettings()); !errors.Is(err, ErrCircleDestroyed) {
		t.Errorf("Tick after Destroy = %v", err)
	}
	if c.RotateStep() {
		t.Errorf("destroyed circle rotated")
	}
}

func TestRebuildFibersReplacesCurves(t *testing.T) {
	fibers := NewScene()
	c := newTestCircle(t, DefaultCircleParams(), fibers, nil)
	old := c.Curves()

	s := DefaultSettings()
	s.FiberResolution = 256
	if err := c.RebuildFibers(s); err != nil {
		t.Fatal(err)
	}
	for _, curve := range old {
		if !curve.Disposed() || fibers.Contains(curve) {
			t.Fatalf("old curve survived the rebuild")
		}
	}
	if fibers.Len() != 10 {
		t.Errorf("fiber scene holds %d, want 10", fibers.Len())
	}
	for _, curve := range c.Curves() {
		if curve.Geometry.VertexCount() != 257 {
			t.Errorf("curve has %d vertices, want 257", curve.Geometry.VertexCount())
		}
	}

	s.FiberResolution = MaxFiberResolution + 10
	if err := c.RebuildFibers(s); err == nil {
		t.Fatal("oversized resolution accepted")
	}
	for _, curve := range c.Curves() {
		if curve.Disposed() || curve.Geometry.VertexCount() != 257 {
			t.Fatalf("failed rebuild damaged existing curves")
		}
	}
}

func TestRotateStep(t *testing.T) {
	p := DefaultCircleParams()
	p.PointCount = 4
	c := newTestCircle(t, p, NewScene(), nil)
	before := c.BasePoints()

	if c.RotateStep() {
		t.Errorf("zero axis rotated")
	}

	c.SetRotationAxis(mgl64.Vec3{0, 1, 0})
	if err := c.SetRotationAngle(0.1); err != nil {
		t.Fatal(err)
	}
	if !c.RotateStep() {
		t.Fatal("RotateStep did nothing")
	}
	if c.State() != StateRotating {
		t.Errorf("State() = %v, want rotating", c.State())
	}

	got := c.BasePoints()[0].Position
	want := mgl64.Vec3{math.Sin(0.1), 0, math.Cos(0.1)}
	if !vecAlmostEqual(got, want) {
		t.Errorf("rotated point = %v, want %v (was %v)", got, want, before[0].Position)
	}
	if c.PointCloud().Points[0] != got {
		t.Errorf("point cloud did not follow the rotation")
	}

	if err := c.SetRotationAngle(-1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative angle accepted: %v", err)
	}
}

func TestTickRebuildsOnlyWithAngle(t *testing.T) {
	p := DefaultCircleParams()
	p.RotationAxis = mgl64.Vec3{0, 0, 1}
	c := newTestCircle(t, p, NewScene(), nil)
	first := c.Curves()[0]

	if err := c.Tick(DefaultSettings()); err != nil {
		t.Fatal(err)
	}
	if c.Curves()[0] != first {
		t.Errorf("zero angle tick rebuilt the fibers")
	}

	if err := c.SetRotationAngle(0.05); err != nil {
		t.Fatal(err)
	}
	if err := c.Tick(DefaultSettings()); err != nil {
		t.Fatal(err)
	}
	if c.Curves()[0] == first || !first.Disposed() {
		t.Errorf("non zero angle tick did not rebuild")
	}
}

func TestDegenerateBasePointStaysFinite(t *testing.T) {
	p := DefaultCircleParams()
	p.PointCount = 4
	p.DefaultRotation = mgl64.QuatIdent()
	c := newTestCircle(t, p, NewScene(), nil)

	for _, curve := range c.Curves() {
		for i, v := range curve.Geometry.Positions {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("curve %d position %d = %v", curve.BaseIndex, i, v)
			}
		}
	}
}

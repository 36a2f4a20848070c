package hopf3d

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLoadConfig(t *testing.T) {
	conf, err := LoadConfig("config.hjson")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if conf.FiberResolution != DefaultFiberResolution {
		t.Errorf("fiber-resolution = %d", conf.FiberResolution)
	}
	if len(conf.Circles) != 1 {
		t.Fatalf("%d circles, want 1", len(conf.Circles))
	}
	if !almostEqual(conf.Circles[0].Circumference, 2*math.Pi) || conf.Circles[0].PointCount != 10 {
		t.Errorf("circle = %+v", conf.Circles[0])
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig("does-not-exist.hjson"); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestReadConfigDefaults(t *testing.T) {
	src := `{
  # only override what matters
  fiber-resolution: 300
  compress-to-ball: true
  circles: [
    {center-offset: 0.5, rotation-axis: [0, 1, 0], rotation-angle: 0.01}
    {point-count: 3}
  ]
}`
	conf, err := ReadConfig(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if conf.FiberResolution != 300 || !conf.CompressToBall {
		t.Errorf("settings = %+v", conf.Settings())
	}
	if conf.WindowWidth != DefaultConfig().WindowWidth {
		t.Errorf("window width lost its default: %d", conf.WindowWidth)
	}
	if len(conf.Circles) != 2 {
		t.Fatalf("%d circles", len(conf.Circles))
	}

	p := conf.Circles[0].Params()
	if p.DistanceToCenter != 0.5 || p.PointCount != 10 || p.RotationAxis != (mgl64.Vec3{0, 1, 0}) || p.RotationAngle != 0.01 {
		t.Errorf("circle 0 = %+v", p)
	}
	if !almostEqual(p.Circumference, 2*math.Pi) {
		t.Errorf("circle 0 circumference = %v", p.Circumference)
	}
	if conf.Circles[1].PointCount != 3 || conf.Circles[1].CenterOffset != 0 {
		t.Errorf("circle 1 = %+v", conf.Circles[1])
	}

	a, err := NewApp(conf)
	if err != nil {
		t.Fatal(err)
	}
	if a.FiberScene().Len() != 13 {
		t.Errorf("app built %d fibers, want 13", a.FiberScene().Len())
	}
}

func TestReadConfigRejects(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want error
	}{
		{name: "resolution too low", src: `{fiber-resolution: 5}`, want: ErrInvalidResolution},
		{name: "resolution too high", src: `{fiber-resolution: 600}`, want: ErrInvalidResolution},
		{name: "bad circle", src: `{circles: [{point-count: 0}]}`, want: ErrInvalidParameter},
		{name: "fast rotation", src: `{circles: [{rotation-angle: 1}]}`, want: ErrInvalidParameter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadConfig(strings.NewReader(tc.src))
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := ReadConfig(strings.NewReader(`{circles: [1, 2]}`)); err == nil {
		t.Errorf("non object circles accepted")
	}
}

package hopf3d

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hjson/hjson-go"
)

type CircleConfig struct {
	CenterOffset  float64    `json:"center-offset"`
	Circumference float64    `json:"circumference"`
	PointCount    int        `json:"point-count"`
	RotationAxis  [3]float64 `json:"rotation-axis"`
	RotationAngle float64    `json:"rotation-angle"`
}

type Config struct {
	FiberResolution int            `json:"fiber-resolution"`
	CompressToBall  bool           `json:"compress-to-ball"`
	LineWidth       float64        `json:"line-width"`
	Dashed          bool           `json:"dashed"`
	DashSize        float64        `json:"dash-size"`
	GapSize         float64        `json:"gap-size"`
	WindowWidth     int            `json:"window-width"`
	WindowHeight    int            `json:"window-height"`
	Circles         []CircleConfig `json:"circles"`
}

func DefaultCircleConfig() CircleConfig {
	return CircleConfig{
		Circumference: 2 * math.Pi,
		PointCount:    10,
	}
}

func DefaultConfig() Config {
	s := DefaultSettings()
	return Config{
		FiberResolution: s.FiberResolution,
		LineWidth:       s.LineWidth,
		DashSize:        s.DashSize,
		GapSize:         s.GapSize,
		WindowWidth:     1280,
		WindowHeight:    720,
		Circles:         []CircleConfig{DefaultCircleConfig()},
	}
}

func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not open config %s: %w", path, err)
	}
	defer f.Close()

	conf, err := ReadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("error parsing config %s: %w", path, err)
	}
	return conf, nil
}

// ReadConfig decodes HJSON over the defaults. Circles that leave out a field
// take it from DefaultCircleConfig.
func ReadConfig(r io.Reader) (Config, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	var mdat map[string]interface{}
	if err := hjson.Unmarshal(bytes, &mdat); err != nil {
		return Config{}, err
	}

	var circles []map[string]interface{}
	if raw, ok := mdat["circles"].([]interface{}); ok {
		for _, c := range raw {
			m, ok := c.(map[string]interface{})
			if !ok {
				return Config{}, fmt.Errorf("circles entries must be objects, got %T", c)
			}
			circles = append(circles, m)
		}
		delete(mdat, "circles")
	}

	conf := DefaultConfig()
	if err := remarshal(mdat, &conf); err != nil {
		return Config{}, err
	}
	if circles != nil {
		conf.Circles = make([]CircleConfig, len(circles))
		for i, m := range circles {
			conf.Circles[i] = DefaultCircleConfig()
			if err := remarshal(m, &conf.Circles[i]); err != nil {
				return Config{}, fmt.Errorf("circle %d: %w", i, err)
			}
		}
	}

	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func remarshal(in interface{}, out interface{}) error {
	bytes, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, out)
}

func (c Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}
	for i, cc := range c.Circles {
		if err := cc.Params().Validate(); err != nil {
			return fmt.Errorf("circle %d: %w", i, err)
		}
		if cc.RotationAngle > MaxRotationAngle {
			return fmt.Errorf("circle %d: %w: rotation angle %v > %v", i, ErrInvalidParameter, cc.RotationAngle, MaxRotationAngle)
		}
	}
	return nil
}

func (c Config) Settings() Settings {
	return Settings{
		FiberResolution: c.FiberResolution,
		CompressToBall:  c.CompressToBall,
		LineWidth:       c.LineWidth,
		Dashed:          c.Dashed,
		DashSize:        c.DashSize,
		GapSize:         c.GapSize,
	}
}

func (cc CircleConfig) Params() CircleParams {
	return CircleParams{
		DistanceToCenter: cc.CenterOffset,
		Circumference:    cc.Circumference,
		PointCount:       cc.PointCount,
		DefaultRotation:  DefaultRotation(),
		RotationAxis:     mgl64.Vec3(cc.RotationAxis),
		RotationAngle:    cc.RotationAngle,
	}
}

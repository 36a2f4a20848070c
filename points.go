package hopf3d

import "github.com/go-gl/mathgl/mgl64"

// PointCloud draws a set of coloured points at a fixed pixel size. Positions
// are shared with the owning circle, so rotations show up without a rebuild.
type PointCloud struct {
	Points   []mgl64.Vec3
	Colors   []Color
	Size     float64
	disposed bool
}

func NewPointCloud(points []mgl64.Vec3, colors []Color) *PointCloud {
	return &PointCloud{
		Points: points,
		Colors: colors,
		Size:   5,
	}
}

func (p *PointCloud) Dispose() {
	p.Points = nil
	p.Colors = nil
	p.disposed = true
}

func (p *PointCloud) Disposed() bool {
	return p.disposed
}

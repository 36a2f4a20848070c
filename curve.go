package hopf3d

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Renderable is anything a Scene can hold.
type Renderable interface {
	Dispose()
	Disposed() bool
}

// LineRenderable is the capability set of drawable polylines.
type LineRenderable interface {
	Renderable
	ComputeLineDistances()
	Raycast(origin, dir mgl64.Vec3, threshold float64) []Intersection
}

// Intersection is a ray hit on a line segment.
type Intersection struct {
	Distance float64    // along the ray
	Point    mgl64.Vec3 // on the segment
	Segment  int
	Object   *Curve
}

// LineGeometry holds flat xyz positions, flat rgb colours and, once computed,
// start/end arc length pairs for every segment.
type LineGeometry struct {
	Positions     []float64
	Colors        []float64
	LineDistances []float64
	disposed      bool
}

func (g *LineGeometry) VertexCount() int {
	return len(g.Positions) / 3
}

func (g *LineGeometry) SegmentCount() int {
	if n := g.VertexCount(); n > 1 {
		return n - 1
	}
	return 0
}

func (g *LineGeometry) Vertex(i int) mgl64.Vec3 {
	return mgl64.Vec3{g.Positions[3*i], g.Positions[3*i+1], g.Positions[3*i+2]}
}

// VertexColor falls back to white when the colour buffer is short.
func (g *LineGeometry) VertexColor(i int) Color {
	if 3*i+2 >= len(g.Colors) {
		return Color{1, 1, 1}
	}
	return Color{g.Colors[3*i], g.Colors[3*i+1], g.Colors[3*i+2]}
}

func (g *LineGeometry) Dispose() {
	if g.disposed {
		return
	}
	g.Positions = nil
	g.Colors = nil
	g.LineDistances = nil
	g.disposed = true
}

type LineMaterial struct {
	Color        color.RGBA
	LineWidth    float64
	VertexColors bool
	Dashed       bool
	DashSize     float64
	GapSize      float64
	disposed     bool
}

func NewLineMaterial() *LineMaterial {
	return &LineMaterial{
		Color:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		LineWidth:    0.003,
		VertexColors: true,
		DashSize:     1,
		GapSize:      1,
	}
}

func (m *LineMaterial) Dispose() {
	m.disposed = true
}

// Visible reports whether a point at arc length d is drawn.
func (m *LineMaterial) Visible(d float64) bool {
	if !m.Dashed {
		return true
	}
	period := m.DashSize + m.GapSize
	if period <= 0 {
		return true
	}
	return math.Mod(d, period) < m.DashSize
}

// Curve is a polyline renderable made of a geometry and a material.
type Curve struct {
	Geometry *LineGeometry
	Material *LineMaterial

	// BaseIndex is the base point this curve was built from.
	BaseIndex int
}

// NewCurve builds a curve from flat buffers. distances may be nil, in which
// case they are computed from the positions.
func NewCurve(positions, colors, distances []float64, mat *LineMaterial) *Curve {
	if mat == nil {
		mat = NewLineMaterial()
	}
	c := &Curve{
		Geometry: &LineGeometry{
			Positions:     positions,
			Colors:        colors,
			LineDistances: distances,
		},
		Material: mat,
	}
	if distances == nil {
		c.ComputeLineDistances()
	}
	return c
}

// ComputeLineDistances fills start/end cumulative arc lengths per segment.
func (c *Curve) ComputeLineDistances() {
	g := c.Geometry
	n := g.SegmentCount()
	dist := make([]float64, 2*n)
	for i, j := 0, 0; i < n; i, j = i+1, j+2 {
		if j > 0 {
			dist[j] = dist[j-1]
		}
		dist[j+1] = dist[j] + g.Vertex(i).Sub(g.Vertex(i+1)).Len()
	}
	g.LineDistances = dist
}

// Length is the total arc length.
func (c *Curve) Length() float64 {
	d := c.Geometry.LineDistances
	if len(d) == 0 {
		return 0
	}
	return d[len(d)-1]
}

// Raycast returns every segment passing within threshold of the ray, nearest first.
func (c *Curve) Raycast(origin, dir mgl64.Vec3, threshold float64) []Intersection {
	if c.Disposed() || dir.Len() == 0 {
		return nil
	}
	dir = dir.Normalize()

	var hits []Intersection
	g := c.Geometry
	for i := 0; i < g.SegmentCount(); i++ {
		onRay, onSeg := closestRaySegment(origin, dir, g.Vertex(i), g.Vertex(i+1))
		if onRay.Sub(onSeg).Len() > threshold {
			continue
		}
		hit := Intersection{
			Distance: onRay.Sub(origin).Len(),
			Point:    onSeg,
			Segment:  i,
			Object:   c,
		}
		hits = insertByDistance(hits, hit)
	}
	return hits
}

func (c *Curve) Dispose() {
	c.Geometry.Dispose()
	c.Material.Dispose()
}

func (c *Curve) Disposed() bool {
	return c.Geometry.disposed && c.Material.disposed
}

// Centre is the mean vertex, used for back to front ordering.
func (c *Curve) Centre() mgl64.Vec3 {
	g := c.Geometry
	n := g.VertexCount()
	if n == 0 {
		return mgl64.Vec3{}
	}
	var sum mgl64.Vec3
	for i := 0; i < n; i++ {
		sum = sum.Add(g.Vertex(i))
	}
	return sum.Mul(1 / float64(n))
}

// closestRaySegment finds the closest pair of points between the ray
// origin+t·dir (t >= 0, dir unit) and the segment s..e.
func closestRaySegment(origin, dir, s, e mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	d2 := e.Sub(s)
	r := origin.Sub(s)
	segLen2 := d2.Dot(d2)
	c := dir.Dot(r)

	var t, u float64
	if segLen2 <= 1e-18 {
		t = math.Max(-c, 0)
	} else {
		b := dir.Dot(d2)
		f := d2.Dot(r)
		if denom := segLen2 - b*b; denom > 1e-18 {
			t = math.Max((b*f-c*segLen2)/denom, 0)
		}
		u = (b*t + f) / segLen2
		if u < 0 {
			u = 0
			t = math.Max(-c, 0)
		} else if u > 1 {
			u = 1
			t = math.Max(b-c, 0)
		}
	}
	return origin.Add(dir.Mul(t)), s.Add(d2.Mul(u))
}

func insertByDistance(hits []Intersection, hit Intersection) []Intersection {
	i := len(hits)
	for i > 0 && hits[i-1].Distance > hit.Distance {
		i--
	}
	hits = append(hits, Intersection{})
	copy(hits[i+1:], hits[i:])
	hits[i] = hit
	return hits
}

package hopf3d

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Registrar is the part of a scene a circle needs.
type Registrar interface {
	Add(r Renderable)
	Remove(r Renderable)
}

// Scene is an ordered set of renderables.
type Scene struct {
	objects []Renderable
}

func NewScene() *Scene {
	return &Scene{objects: make([]Renderable, 0, 16)}
}

// Add ignores renderables that are already registered.
func (s *Scene) Add(r Renderable) {
	if s.indexOf(r) >= 0 {
		return
	}
	s.objects = append(s.objects, r)
}

func (s *Scene) Remove(r Renderable) {
	i := s.indexOf(r)
	if i < 0 {
		return
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
}

func (s *Scene) Contains(r Renderable) bool {
	return s.indexOf(r) >= 0
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Renderables returns a copy of the registered objects in insertion order.
func (s *Scene) Renderables() []Renderable {
	out := make([]Renderable, len(s.objects))
	copy(out, s.objects)
	return out
}

// Curves returns the registered curves, farthest from pos first.
func (s *Scene) Curves(pos mgl64.Vec3) []*Curve {
	curves := make([]*Curve, 0, len(s.objects))
	for _, r := range s.objects {
		if c, ok := r.(*Curve); ok {
			curves = append(curves, c)
		}
	}
	sortCurvesByDistance(curves, pos)
	return curves
}

// PointClouds returns the registered point clouds in insertion order.
func (s *Scene) PointClouds() []*PointCloud {
	var clouds []*PointCloud
	for _, r := range s.objects {
		if p, ok := r.(*PointCloud); ok {
			clouds = append(clouds, p)
		}
	}
	return clouds
}

// Raycast collects hits from every curve, nearest first.
func (s *Scene) Raycast(origin, dir mgl64.Vec3, threshold float64) []Intersection {
	var hits []Intersection
	for _, r := range s.objects {
		lr, ok := r.(LineRenderable)
		if !ok {
			continue
		}
		for _, h := range lr.Raycast(origin, dir, threshold) {
			hits = insertByDistance(hits, h)
		}
	}
	return hits
}

func (s *Scene) indexOf(r Renderable) int {
	for i, o := range s.objects {
		if o == r {
			return i
		}
	}
	return -1
}

// sort the curves so that the ones farther away are at the start of the slice
func sortCurvesByDistance(curves []*Curve, pos mgl64.Vec3) {
	if len(curves) == 0 {
		return
	}
	dist := make(map[*Curve]float64, len(curves))
	for _, c := range curves {
		dist[c] = c.Centre().Sub(pos).Len()
	}
	sort.SliceStable(curves, func(i, j int) bool {
		return dist[curves[i]] > dist[curves[j]]
	})
}

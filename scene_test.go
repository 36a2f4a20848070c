package hopf3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func lineAt(z float64) *Curve {
	return NewCurve([]float64{-1, 0, z, 1, 0, z}, nil, nil, nil)
}

func TestSceneAddRemove(t *testing.T) {
	s := NewScene()
	a, b := lineAt(0), lineAt(1)
	cloud := NewPointCloud([]mgl64.Vec3{{0, 0, 1}}, []Color{{1, 0, 0}})

	s.Add(a)
	s.Add(a)
	s.Add(b)
	s.Add(cloud)
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if !s.Contains(a) || !s.Contains(cloud) {
		t.Errorf("Contains failed")
	}
	if len(s.PointClouds()) != 1 {
		t.Errorf("PointClouds() = %d, want 1", len(s.PointClouds()))
	}

	s.Remove(a)
	s.Remove(a)
	if s.Contains(a) || s.Len() != 2 {
		t.Errorf("after Remove: Len() = %d, Contains(a) = %t", s.Len(), s.Contains(a))
	}

	r := s.Renderables()
	r[0] = nil
	if s.Renderables()[0] == nil {
		t.Errorf("Renderables() exposed the backing slice")
	}
}

func TestSceneCurvesFarthestFirst(t *testing.T) {
	s := NewScene()
	near, mid, far := lineAt(1), lineAt(-2), lineAt(-6)
	s.Add(mid)
	s.Add(near)
	s.Add(far)

	got := s.Curves(mgl64.Vec3{0, 0, 3})
	want := []*Curve{far, mid, near}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("curve %d out of order", i)
		}
	}
}

func TestSceneRaycast(t *testing.T) {
	s := NewScene()
	near, far := lineAt(1), lineAt(-1)
	s.Add(far)
	s.Add(near)
	s.Add(NewPointCloud(nil, nil))

	hits := s.Raycast(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1}, 0.01)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Object != near || hits[1].Object != far {
		t.Errorf("hits not ordered nearest first")
	}
}

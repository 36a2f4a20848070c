package hopf3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// StereographicProject projects from the pole w=1 into R3. The loop is closed
// here only when the ball compressor is not going to run.
func StereographicProject(f Fiber, compressToBall bool) []mgl64.Vec3 {
	proj := make([]mgl64.Vec3, 0, len(f)+1)
	for _, p := range f {
		denom := math.Max(1-p.W, poleClamp)
		proj = append(proj, mgl64.Vec3{p.V[0] / denom, p.V[1] / denom, p.V[2] / denom})
	}
	if !compressToBall && len(proj) > 0 {
		proj = append(proj, proj[0])
	}
	return proj
}

// CompressToBall pulls every point into the open unit ball along its ray from
// the origin and, when active, closes the loop.
func CompressToBall(points []mgl64.Vec3, compressToBall bool) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(points), len(points)+1)
	for i, p := range points {
		out[i] = p.Mul(ballScale(p.Len()))
	}
	if compressToBall && len(out) > 0 {
		out = append(out, out[0])
	}
	return out
}

// ballScale is the factor taking distance d to d/sqrt(1+d²). The origin stays put.
func ballScale(d float64) float64 {
	if d == 0 {
		return 1
	}
	return (d / math.Sqrt(1+d*d)) / d
}

// ProjectFiber runs projection and, if requested, compression.
func ProjectFiber(f Fiber, compressToBall bool) []mgl64.Vec3 {
	pts := StereographicProject(f, compressToBall)
	if compressToBall {
		pts = CompressToBall(pts, compressToBall)
	}
	return pts
}

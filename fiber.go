package hopf3d

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultFiberResolution  = 128
	MinFiberResolution      = 10
	MaxSelectableResolution = 500

	// MaxFiberResolution sizes per-curve colour buffers.
	MaxFiberResolution = 512

	// poleClamp bounds the stereographic denominator away from zero.
	poleClamp = 0.001

	// antipodeEpsilon is the smallest 2+2x still treated as regular.
	antipodeEpsilon = 1e-12
)

var (
	ErrInvalidResolution = errors.New("invalid fiber resolution")
)

// Fiber is one traversal of the circle over a base point, as unit quaternions.
type Fiber []mgl64.Quat

// antipodeLift is the limit of the lift as the base point tends to (-1,0,0).
var antipodeLift = mgl64.Quat{W: 0, V: mgl64.Vec3{0, 1, 0}}

// HopfFiber samples n points of the fiber over the unit vector b.
//
// The base point (-1,0,0) makes the usual lift divide by zero; it is lifted
// to j instead, which is the continuous limit and still maps back to b.
func HopfFiber(b mgl64.Vec3, n int) (Fiber, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, n)
	}

	r1 := antipodeLift
	if d := 2 + 2*b[0]; d > antipodeEpsilon {
		r1 = mgl64.Quat{W: 0, V: mgl64.Vec3{1 + b[0], b[1], b[2]}}.Scale(1 / math.Sqrt(d))
	}

	fiber := make(Fiber, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		e := mgl64.Quat{W: math.Cos(angle), V: mgl64.Vec3{math.Sin(angle), 0, 0}}
		fiber[i] = r1.Mul(e)
	}
	return fiber, nil
}

// HopfMap sends a unit quaternion q to q·i·q̄ on the 2-sphere.
func HopfMap(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(mgl64.Vec3{1, 0, 0})
}

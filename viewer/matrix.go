package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a 4x4 transform stored column first: ThisMatrix[3] holds the
// translation.
type Matrix struct {
	ThisMatrix [][]float64
}

const (
	ROTX = 0
	ROTY = 1
	ROTZ = 2
)

func NewMatrixFromData(aMatrix [][]float64) *Matrix {
	m := &Matrix{
		ThisMatrix: make([][]float64, len(aMatrix)),
	}
	for i := range aMatrix {
		m.ThisMatrix[i] = make([]float64, len(aMatrix[i]))
		copy(m.ThisMatrix[i], aMatrix[i])
	}
	return m
}

func NewRotationMatrix(aRotation int, theta float64) *Matrix {
	m := IdentMatrix().ThisMatrix
	c, s := math.Cos(theta), math.Sin(theta)
	switch aRotation {
	case ROTX:
		m[1][1], m[2][1] = c, -s
		m[1][2], m[2][2] = s, c
	case ROTY:
		m[0][0], m[2][0] = c, s
		m[0][2], m[2][2] = -s, c
	case ROTZ:
		m[0][0], m[1][0] = c, -s
		m[0][1], m[1][1] = s, c
	}
	return &Matrix{ThisMatrix: m}
}

func IdentMatrix() *Matrix {
	m := make([][]float64, 4)
	for i := range m {
		m[i] = make([]float64, 4)
	}
	m[0][0], m[1][1], m[2][2], m[3][3] = 1.0, 1.0, 1.0, 1.0
	return &Matrix{ThisMatrix: m}
}

func TransMatrix(x, y, z float64) *Matrix {
	m := IdentMatrix()
	m.ThisMatrix[3][0] = x
	m.ThisMatrix[3][1] = y
	m.ThisMatrix[3][2] = z
	return m
}

// MultiplyBy returns m·aMatrix, so aMatrix is applied first.
func (m *Matrix) MultiplyBy(aMatrix *Matrix) *Matrix {
	out := IdentMatrix()
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.ThisMatrix[k][row] * aMatrix.ThisMatrix[col][k]
			}
			out.ThisMatrix[col][row] = sum
		}
	}
	return out
}

// TransformPoint applies rotation and translation to p.
func (m *Matrix) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	sx, sy, sz := p[0], p[1], p[2]
	return mgl64.Vec3{
		m.ThisMatrix[0][0]*sx + m.ThisMatrix[1][0]*sy + m.ThisMatrix[2][0]*sz + m.ThisMatrix[3][0],
		m.ThisMatrix[0][1]*sx + m.ThisMatrix[1][1]*sy + m.ThisMatrix[2][1]*sz + m.ThisMatrix[3][1],
		m.ThisMatrix[0][2]*sx + m.ThisMatrix[1][2]*sy + m.ThisMatrix[2][2]*sz + m.ThisMatrix[3][2],
	}
}

// TransformFlat transforms a flat xyz buffer into dest, which must be at
// least as long as src.
func (m *Matrix) TransformFlat(src, dest []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		p := m.TransformPoint(mgl64.Vec3{src[i], src[i+1], src[i+2]})
		dest[i], dest[i+1], dest[i+2] = p[0], p[1], p[2]
	}
}

func ToMatrix(m mgl64.Mat4) *Matrix {
	return NewMatrixFromData(
		[][]float64{
			{m[0], m[1], m[2], m[3]},
			{m[4], m[5], m[6], m[7]},
			{m[8], m[9], m[10], m[11]},
			{m[12], m[13], m[14], m[15]},
		},
	)
}

func (m *Matrix) Mat4() mgl64.Mat4 {
	var out mgl64.Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m.ThisMatrix[c][r]
		}
	}
	return out
}

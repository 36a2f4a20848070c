package viewer

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/smasonuk/hopf3d"
)

const (
	// pickThreshold is how close, in world units, a ray must pass to a fiber.
	pickThreshold = 0.03
	insetMargin   = 20
)

var (
	sphereColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	axisColor   = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// World paints the fiber scene through the orbit camera and the base scene
// into an inset in the bottom right corner.
type World struct {
	fibers     *hopf3d.Scene
	base       *hopf3d.Scene
	camera     *Camera
	baseCamera *OrthoCamera

	line   polyline
	camBuf []float64
}

func NewWorld(fibers, base *hopf3d.Scene) *World {
	return &World{
		fibers: fibers,
		base:   base,
		// roughly where a camera at (-3, 0, 2) looking at the origin sits
		camera:     NewCamera(math.Sqrt(13), 0, math.Atan2(3, -2), 75*math.Pi/180),
		baseCamera: NewOrthoCameraLookAt(mgl64.Vec3{5, 5, 10}),
	}
}

func (w *World) Camera() *Camera {
	return w.camera
}

func (w *World) PaintObjects(screen *ebiten.Image, xsize, ysize int) {
	m := w.camera.GetMatrix()
	for _, c := range w.fibers.Curves(w.camera.GetPosition()) {
		w.paintCurve(screen, c, m, xsize, ysize)
	}
	w.paintBaseSpace(screen, xsize, ysize)
}

func (w *World) paintCurve(screen *ebiten.Image, c *hopf3d.Curve, m *Matrix, xsize, ysize int) {
	g := c.Geometry
	n := g.VertexCount()
	if n < 2 {
		return
	}
	if cap(w.camBuf) < len(g.Positions) {
		w.camBuf = make([]float64, len(g.Positions))
	}
	buf := w.camBuf[:len(g.Positions)]
	m.TransformFlat(g.Positions, buf)

	strokeWidth := float32(math.Max(1, c.Material.LineWidth*float64(ysize)))
	w.line.reset(c.Material.Color)

	for i := 0; i < n-1; i++ {
		ax, ay, okA := w.camera.ToScreen(mgl64.Vec3{buf[3*i], buf[3*i+1], buf[3*i+2]}, xsize, ysize)
		bx, by, okB := w.camera.ToScreen(mgl64.Vec3{buf[3*i+3], buf[3*i+4], buf[3*i+5]}, xsize, ysize)
		visible := okA && okB
		if visible && 2*i < len(g.LineDistances) {
			visible = c.Material.Visible(g.LineDistances[2*i])
		}
		if !visible {
			w.line.flush(screen, strokeWidth)
			continue
		}

		clr := c.Material.Color
		if c.Material.VertexColors {
			clr = g.VertexColor(i).RGBA()
		}
		if len(w.line.xp) == 0 || clr != w.line.clr {
			w.line.flush(screen, strokeWidth)
			w.line.reset(clr)
			w.line.add(ax, ay)
		}
		w.line.add(bx, by)
	}
	w.line.flush(screen, strokeWidth)
}

// insetGeometry is the centre and radius of the base space sphere on screen.
func insetGeometry(xsize, ysize int) (cx, cy, r float32) {
	r = float32(ysize) / 8
	return float32(xsize) - r - insetMargin, float32(ysize) - r - insetMargin, r
}

func (w *World) paintBaseSpace(screen *ebiten.Image, xsize, ysize int) {
	cx, cy, r := insetGeometry(xsize, ysize)

	for _, axis := range []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		x0, y0, _ := w.baseCamera.ToScreen(axis.Mul(-1), cx, cy, r)
		x1, y1, _ := w.baseCamera.ToScreen(axis, cx, cy, r)
		DrawLine(screen, x0, y0, x1, y1, axisColor)
	}
	vector.StrokeCircle(screen, cx, cy, r, 1, sphereColor, true)

	for _, cloud := range w.base.PointClouds() {
		for i, p := range cloud.Points {
			x, y, depth := w.baseCamera.ToScreen(p, cx, cy, r)
			clr := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if i < len(cloud.Colors) {
				clr = cloud.Colors[i].RGBA()
			}
			if depth > 0 {
				clr = dim(clr, 0.45)
			}
			DrawDot(screen, x, y, float32(cloud.Size), clr)
		}
	}
}

// Pick returns the nearest fiber under pixel (sx, sy), if any.
func (w *World) Pick(sx, sy, xsize, ysize int) (hopf3d.Intersection, bool) {
	origin, dir := w.camera.Ray(sx, sy, xsize, ysize)
	hits := w.fibers.Raycast(origin, dir, pickThreshold)
	if len(hits) == 0 {
		return hopf3d.Intersection{}, false
	}
	return hits[0], true
}

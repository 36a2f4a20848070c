package viewer

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

func solidImage() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// polyline collects connected screen points of one colour.
type polyline struct {
	xp, yp []float32
	clr    color.RGBA
}

func (p *polyline) reset(clr color.RGBA) {
	p.xp = p.xp[:0]
	p.yp = p.yp[:0]
	p.clr = clr
}

func (p *polyline) add(x, y float32) {
	p.xp = append(p.xp, x)
	p.yp = append(p.yp, y)
}

// drawPolyline strokes the open path through the given points.
func drawPolyline(screen *ebiten.Image, xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	// We need at least 2 points to draw a line.
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}

	strokeOp := &vector.StrokeOptions{
		Width:    strokeWidth,
		LineJoin: vector.LineJoinRound,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	// SrcX/SrcY pick the solid pixel of the white sub image.
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	drawOp := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	}
	screen.DrawTriangles(vertices, indices, solidImage(), drawOp)
}

func (p *polyline) flush(screen *ebiten.Image, strokeWidth float32) {
	drawPolyline(screen, p.xp, p.yp, strokeWidth, p.clr)
	p.xp = p.xp[:0]
	p.yp = p.yp[:0]
}

package viewer

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/hopf3d"
)

const (
	dragScale = 200.0
	zoomBase  = 0.9
)

// Game drives an App from ebiten: input in Update, painting in Draw.
type Game struct {
	app      *hopf3d.App
	world    *World
	controls *Controls

	lastX, lastY int
	dragged      bool
	width        int
	height       int
	showHelp     bool

	hover    hopf3d.Intersection
	hovering bool
}

func NewGame(app *hopf3d.App, width, height int) *Game {
	log.Println("Initializing World...")
	g := &Game{
		app:      app,
		world:    NewWorld(app.FiberScene(), app.BaseScene()),
		controls: NewControls(),
		width:    width,
		height:   height,
	}
	log.Println("Initialization Complete.")
	return g
}

func (g *Game) Update() error {
	g.controls.Update(g.app)
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}

	// Mouse camera control
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragged = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragged {
		x, y := ebiten.CursorPosition()
		dx := float64(x-g.lastX) / dragScale
		dy := float64(y-g.lastY) / dragScale
		g.world.Camera().AddAngle(dy, dx)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragged = false
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.world.Camera().Zoom(math.Pow(zoomBase, wy))
	}

	if err := g.app.Tick(); err != nil {
		log.Printf("tick: %v", err)
	}

	if !g.dragged {
		x, y := ebiten.CursorPosition()
		g.hover, g.hovering = g.world.Pick(x, y, g.width, g.height)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.world.PaintObjects(screen, g.width, g.height)
	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) status() string {
	s := g.app.Settings()
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %0.2f\n", ebiten.ActualFPS())
	fmt.Fprintf(&b, "fibers: %d  ball: %v  dashed: %v\n", s.FiberResolution, s.CompressToBall, s.Dashed)
	if c, err := g.app.Last(); err == nil {
		p := c.Params()
		fmt.Fprintf(&b, "circles: %d  offset: %.3f  circumference: %.3f  points: %d\n",
			len(g.app.Circles()), p.DistanceToCenter, p.Circumference, p.PointCount)
		fmt.Fprintf(&b, "axis: (%.1f, %.1f, %.1f)  angle: %.3f\n",
			p.RotationAxis[0], p.RotationAxis[1], p.RotationAxis[2], p.RotationAngle)
	}
	if g.hovering && g.hover.Object != nil {
		base := g.hover.Object.BaseIndex
		fmt.Fprintf(&b, "fiber over point %d at %.3f\n", base, g.hover.Distance)
	}
	if g.showHelp {
		b.WriteString("\n")
		b.WriteString(strings.Join(g.controls.Help(), "\n"))
		b.WriteString("\nH    hide help\n")
	} else {
		b.WriteString("H for help\n")
	}
	return b.String()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

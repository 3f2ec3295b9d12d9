package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-drone-swarm/pkg/ui"
)

const (
	noseRadius   = 6.0
	wingAngle    = 2.5
	targetRadius = 10.0
)

var (
	whiteImage  = ebiten.NewImage(3, 3)
	background  = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	targetColor = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	visionColor = color.RGBA{R: 50, G: 100, B: 255, A: 60}

	// per motion state
	stateColors = map[simulation.MotionState][3]float32{
		simulation.Flight:  {0.4, 0.8, 1},
		simulation.Parking: {0.4, 1, 0.4},
		simulation.Stopped: {1, 0.8, 0.2},
	}
)

func init() {
	whiteImage.Fill(color.White)
}

// Game is the ebiten shell around the engine: it feeds the mouse position
// as target and draws whatever the last snapshot says.
type Game struct {
	engine *simulation.Engine
	logger *zap.Logger
	width  int
	height int

	target geometry.Vector2D
	paused bool
	last   simulation.Snapshot

	panel  *ui.Panel
	vision *ui.Checkbox
	pause  *ui.Button

	vertices []ebiten.Vertex
	indices  []uint16

	updateAvg   float64 // ms, exponential moving average
	lastLogTime time.Time
	lastLogged  uint64
}

func newGame(engine *simulation.Engine, logger *zap.Logger) *Game {
	cfg := engine.Config()
	g := &Game{
		engine:      engine,
		logger:      logger,
		width:       int(cfg.WorldWidth),
		height:      int(cfg.WorldHeight),
		target:      geometry.NewVector(cfg.WorldWidth/2, cfg.WorldHeight/2),
		lastLogTime: time.Now(),
	}

	g.panel = ui.NewPanel(10, 10, 190, "Drone swarm")
	g.vision = g.panel.AddCheckbox("Vision radius [V]", engine.ShowVisionRadius(), engine.ToggleVisionDisplay)
	g.pause = g.panel.AddButton("Pause [Space]", g.togglePause)
	g.last = engine.Snapshot()
	return g
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.pause.Label = "Resume [Space]"
	} else {
		g.pause.Label = "Pause [Space]"
	}
	g.logger.Info("pause toggled", zap.Bool("paused", g.paused), zap.Uint64("frame", g.engine.Frame()))
}

func (g *Game) Update() error {
	start := time.Now()

	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.engine.ToggleVisionDisplay()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	g.vision.Sync(g.engine.ShowVisionRadius())

	// the target follows the cursor while it is over the world
	mx, my := ebiten.CursorPosition()
	if mx >= 0 && my >= 0 && mx < g.width && my < g.height && !g.panel.Contains(mx, my) {
		g.target = geometry.NewVector(float64(mx), float64(my))
	}

	if !g.paused {
		g.engine.Update(g.target)
	}
	g.last = g.engine.Snapshot()

	g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	g.logTelemetry()
	return nil
}

func (g *Game) logTelemetry() {
	if time.Since(g.lastLogTime) < time.Second {
		return
	}
	g.logger.Info("telemetry",
		zap.Uint64("frame", g.last.Frame),
		zap.Uint64("framesPerSec", g.last.Frame-g.lastLogged),
		zap.Int("flying", g.last.Flying),
		zap.Int("parked", g.last.Parked),
		zap.Int("stopped", g.last.Stopped),
		zap.Float64("updateMs", g.updateAvg),
	)
	g.lastLogged = g.last.Frame
	g.lastLogTime = time.Now()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if g.last.ShowVisionRadius {
		for _, d := range g.last.Drones {
			vector.StrokeCircle(screen,
				float32(d.Position.X), float32(d.Position.Y),
				float32(g.last.NeighborRadius),
				1, visionColor, true)
		}
	}

	vector.StrokeCircle(screen,
		float32(g.target.X), float32(g.target.Y),
		targetRadius, 2, targetColor, true)

	g.drawDrones(screen)
	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f  Update: %.2fms\nFrame %d  flying %d  parked %d  stopped %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg,
		g.last.Frame, g.last.Flying, g.last.Parked, g.last.Stopped)
	ebitenutil.DebugPrintAt(screen, msg, 10, g.height-40)
}

// drawDrones batches every drone triangle into a single DrawTriangles call.
func (g *Game) drawDrones(screen *ebiten.Image) {
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]

	for _, d := range g.last.Drones {
		nose := geometry.NewVectorPolar(noseRadius, d.Heading())
		rgb := stateColors[d.State]
		base := uint16(len(g.vertices))
		for _, p := range [3]geometry.Vector2D{nose, nose.Rotate(wingAngle), nose.Rotate(-wingAngle)} {
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX:   float32(d.Position.X + p.X),
				DstY:   float32(d.Position.Y + p.Y),
				SrcX:   1,
				SrcY:   1,
				ColorR: rgb[0],
				ColorG: rgb[1],
				ColorB: rgb[2],
				ColorA: 1,
			})
		}
		g.indices = append(g.indices, base, base+1, base+2)

		// uint16 indices: flush before they overflow
		if len(g.vertices) > 65535-3 {
			screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
			g.vertices = g.vertices[:0]
			g.indices = g.indices[:0]
		}
	}
	if len(g.indices) > 0 {
		screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
	}
}

func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }

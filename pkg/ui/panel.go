package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything a Panel can stack.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
	moveTo(x, y float64)
}

const (
	panelMargin = 8.0
	titleHeight = 22.0
)

// Panel stacks widgets vertically under a title.
type Panel struct {
	Title   string
	X, Y    float64
	Width   float64
	widgets []Widget

	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates an empty panel.
func NewPanel(x, y, width float64, title string) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 200},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddCheckbox appends a checkbox wired to onToggle.
func (p *Panel) AddCheckbox(label string, value bool, onToggle func()) *Checkbox {
	c := NewCheckbox(0, 0, label, value, onToggle)
	p.add(c)
	return c
}

// AddButton appends a full-width button.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, p.Width-2*panelMargin, 20, label, onClick)
	p.add(b)
	return b
}

func (p *Panel) add(w Widget) {
	w.moveTo(p.X+panelMargin, p.Y+p.Height())
	p.widgets = append(p.widgets, w)
}

// Height is the current height of the panel including its title.
func (p *Panel) Height() float64 {
	h := titleHeight
	for _, w := range p.widgets {
		h += w.Height()
	}
	return h + panelMargin/2
}

// Update handles input for all widgets
func (p *Panel) Update() {
	for _, w := range p.widgets {
		w.Update()
	}
}

// Draw renders the panel and all widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	h := float32(p.Height())
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), h, p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), h, 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelMargin), int(p.Y+4))

	for _, w := range p.widgets {
		w.Draw(screen)
	}
}

// Contains reports whether (x, y) falls inside the panel, so clicks on it
// can be kept away from the simulation.
func (p *Panel) Contains(x, y int) bool {
	return hit(float64(x), float64(y), p.X, p.Y, p.Width, p.Height())
}

func hit(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox mirrors a boolean owned by someone else.
// Clicking it calls OnToggle; the owner is the source of truth and
// pushes the current value back with Sync.
type Checkbox struct {
	Label    string
	Value    bool
	X, Y     float64
	Size     float64
	OnToggle func()

	clicked bool // debounce: one toggle per press
}

// NewCheckbox creates a new checkbox instance
func NewCheckbox(x, y float64, label string, value bool, onToggle func()) *Checkbox {
	return &Checkbox{
		Label:    label,
		Value:    value,
		X:        x,
		Y:        y,
		Size:     16,
		OnToggle: onToggle,
	}
}

// Sync sets the displayed value without firing OnToggle.
func (c *Checkbox) Sync(value bool) {
	c.Value = value
}

// Update checks for mouse interaction
func (c *Checkbox) Update() {
	mx, my := ebiten.CursorPosition()
	if hit(float64(mx), float64(my), c.X, c.Y, c.Size, c.Size) && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !c.clicked {
			c.clicked = true
			if c.OnToggle != nil {
				c.OnToggle()
			} else {
				c.Value = !c.Value
			}
		}
	} else {
		c.clicked = false
	}
}

// Draw renders the checkbox and its label to the right of the box.
func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+2), float32(c.Y+2),
			float32(c.Size-4), float32(c.Size-4),
			color.RGBA{R: 100, G: 200, B: 100, A: 255},
			true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+6), int(c.Y))
}

// Height is the vertical room the checkbox needs in a panel.
func (c *Checkbox) Height() float64 {
	return c.Size + 6
}

func (c *Checkbox) moveTo(x, y float64) {
	c.X, c.Y = x, y
}

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a clickable UI button
type Button struct {
	Label   string
	X, Y    float64
	W       float64
	H       float64
	OnClick func()

	BGColor    color.RGBA
	HoverColor color.RGBA

	clicked bool
}

// NewButton creates a new button instance
func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:      label,
		X:          x,
		Y:          y,
		W:          width,
		H:          height,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

func (b *Button) hovered() bool {
	mx, my := ebiten.CursorPosition()
	return hit(float64(mx), float64(my), b.X, b.Y, b.W, b.H)
}

// Update fires OnClick once per press.
func (b *Button) Update() {
	if b.hovered() && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !b.clicked && b.OnClick != nil {
			b.OnClick()
		}
		b.clicked = true
	} else {
		b.clicked = false
	}
}

// Draw renders the button
func (b *Button) Draw(screen *ebiten.Image) {
	bgColor := b.BGColor
	if b.hovered() {
		bgColor = b.HoverColor
	}

	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.W), float32(b.H),
		bgColor, true)
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.W), float32(b.H),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	// DebugPrint glyphs are 6x16
	tx := b.X + (b.W-float64(len(b.Label)*6))/2
	ty := b.Y + (b.H-16)/2
	ebitenutil.DebugPrintAt(screen, b.Label, int(tx), int(ty))
}

// Height is the vertical room the button needs in a panel.
func (b *Button) Height() float64 {
	return b.H + 6
}

func (b *Button) moveTo(x, y float64) {
	b.X, b.Y = x, y
}

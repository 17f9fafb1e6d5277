package render

import (
	"math"
	"unicode/utf8"

	"CanvasBoard/internal/state"
)

// Rect is an axis-aligned box in canvas pixels.
type Rect struct {
	Min, Max state.Point
}

// Contains is inclusive on every edge.
func (r Rect) Contains(p state.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// TextHitBox approximates the tappable area of a text element. Without text
// measurement every glyph is taken to be half the font size wide, and the
// box is centred vertically on the element position.
func TextHitBox(e state.TextElement) Rect {
	width := float32(int(float32(utf8.RuneCountInString(e.Text)) * e.FontSize / 2))
	half := e.FontSize / 2
	return Rect{
		Min: state.Point{X: e.Position.X, Y: e.Position.Y - half},
		Max: state.Point{X: e.Position.X + width, Y: e.Position.Y + half},
	}
}

// HitText returns the id of the topmost element under p. Taps are snapped
// to whole pixels, as are element positions.
func HitText(elements []state.TextElement, p state.Point) (string, bool) {
	tap := state.Point{X: round(p.X), Y: round(p.Y)}
	for i := len(elements) - 1; i >= 0; i-- {
		e := elements[i]
		e.Position = state.Point{X: round(e.Position.X), Y: round(e.Position.Y)}
		if TextHitBox(e).Contains(tap) {
			return elements[i].ID, true
		}
	}
	return "", false
}

func round(v float32) float32 {
	return float32(math.Round(float64(v)))
}

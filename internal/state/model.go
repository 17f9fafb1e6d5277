package state

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Point is a canvas position in pixels.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Color is a straight-alpha RGBA color. It satisfies image/color.Color so
// toolkits can use it directly.
type Color struct {
	R, G, B, A uint8
}

var (
	Black   = Color{A: 255}
	Red     = Color{R: 255, A: 255}
	Blue    = Color{B: 255, A: 255}
	Green   = Color{G: 255, A: 255}
	Yellow  = Color{R: 255, G: 255, A: 255}
	Magenta = Color{R: 255, B: 255, A: 255}
	Cyan    = Color{G: 255, B: 255, A: 255}
)

// Palette lists the colors offered by the color picker, in display order.
var Palette = []Color{Black, Red, Blue, Green, Yellow, Magenta, Cyan}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R)
	r |= r << 8
	r = r * a / 0xffff
	g = uint32(c.G)
	g |= g << 8
	g = g * a / 0xffff
	b = uint32(c.B)
	b |= b << 8
	b = b * a / 0xffff
	return
}

// String returns #RRGGBB for opaque colors and #RRGGBBAA otherwise.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor accepts #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var c Color
	switch len(hex) {
	case 6:
		c.A = 255
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	default:
		return Color{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	return c, nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Stroke is one continuous freehand ink path.
type Stroke struct {
	ID     string  `json:"id"`
	Color  Color   `json:"color"`
	Points []Point `json:"points"`
}

// FontFamily selects the typeface of a text element.
type FontFamily int

const (
	FontDefault FontFamily = iota
	FontSerif
	FontSansSerif
	FontMonospace
	FontCursive
)

var fontFamilyNames = [...]string{"default", "serif", "sans-serif", "monospace", "cursive"}

// FontFamilies lists every family in display order.
func FontFamilies() []FontFamily {
	return []FontFamily{FontDefault, FontSerif, FontSansSerif, FontMonospace, FontCursive}
}

func (f FontFamily) Valid() bool {
	return f >= FontDefault && f <= FontCursive
}

func (f FontFamily) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FontFamily(%d)", int(f))
	}
	return fontFamilyNames[f]
}

// ParseFontFamily is case-insensitive and accepts "sansserif" as well as
// "sans-serif".
func ParseFontFamily(s string) (FontFamily, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "sansserif" || name == "sans serif" {
		name = "sans-serif"
	}
	for i, n := range fontFamilyNames {
		if n == name {
			return FontFamily(i), nil
		}
	}
	return FontDefault, fmt.Errorf("unknown font family %q", s)
}

func (f FontFamily) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid font family %d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *FontFamily) UnmarshalText(b []byte) error {
	parsed, err := ParseFontFamily(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Text element defaults and bounds.
const (
	DefaultText     = "New Text"
	DefaultFontSize = float32(16)
	MinFontSize     = float32(8)
	MaxFontSize     = float32(72)
)

// TextElement is a movable, editable text overlay.
type TextElement struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Position   Point      `json:"position"`
	Color      Color      `json:"color"`
	FontSize   float32    `json:"font_size"`
	Bold       bool       `json:"bold"`
	Italic     bool       `json:"italic"`
	Underline  bool       `json:"underline"`
	FontFamily FontFamily `json:"font_family"`
}

// NewTextElement returns an element with the default text and style.
func NewTextElement(id string, pos Point) TextElement {
	return TextElement{
		ID:         id,
		Text:       DefaultText,
		Position:   pos,
		Color:      Black,
		FontSize:   DefaultFontSize,
		FontFamily: FontDefault,
	}
}

// Valid reports whether the element may enter the document.
func (e TextElement) Valid() bool {
	return strings.TrimSpace(e.Text) != "" &&
		e.FontSize >= MinFontSize && e.FontSize <= MaxFontSize &&
		e.Position.X >= 0 && e.Position.Y >= 0 &&
		e.FontFamily.Valid()
}

// Selection is either no selection or the id of one text element.
// The zero value is NoSelection.
type Selection struct {
	ID    string
	Valid bool
}

// NoSelection is the empty selection.
var NoSelection = Selection{}

// Selected returns a selection holding id.
func Selected(id string) Selection {
	return Selection{ID: id, Valid: true}
}

// Get returns the selected id and whether there is one.
func (s Selection) Get() (string, bool) {
	return s.ID, s.Valid
}

// Is reports whether id is the selected element.
func (s Selection) Is(id string) bool {
	return s.Valid && s.ID == id
}

func (s Selection) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.ID)
}

func (s *Selection) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = NoSelection
		return nil
	}
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	*s = Selected(id)
	return nil
}

// DocumentState is the root aggregate. Values handed out by a Store are
// snapshots; mutating them has no effect on the document.
type DocumentState struct {
	SelectedColor Color         `json:"selected_color"`
	CurrentStroke *Stroke       `json:"current_stroke"`
	Strokes       []Stroke      `json:"strokes"`
	TextElements  []TextElement `json:"text_elements"`
	Selection     Selection     `json:"selection"`
	CanvasWidth   int           `json:"canvas_width"`
	CanvasHeight  int           `json:"canvas_height"`
	History       History       `json:"history"`
}

// NewDocument returns an empty document whose text history holds at most
// maxHistoryDepth snapshots. Non-positive depths use DefaultHistoryDepth.
func NewDocument(maxHistoryDepth int) DocumentState {
	return DocumentState{
		SelectedColor: Black,
		Strokes:       []Stroke{},
		TextElements:  []TextElement{},
		History:       NewHistory(maxHistoryDepth),
	}
}

// Drawing reports whether a stroke is in progress.
func (s DocumentState) Drawing() bool {
	return s.CurrentStroke != nil
}

func (s DocumentState) CanUndo() bool { return s.History.CanUndo() }
func (s DocumentState) CanRedo() bool { return s.History.CanRedo() }

// TextIndex returns the position of the element with id, or -1.
func (s DocumentState) TextIndex(id string) int {
	for i, e := range s.TextElements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// SelectedText returns the selected element, if any.
func (s DocumentState) SelectedText() (TextElement, bool) {
	id, ok := s.Selection.Get()
	if !ok {
		return TextElement{}, false
	}
	i := s.TextIndex(id)
	if i < 0 {
		return TextElement{}, false
	}
	return s.TextElements[i], true
}

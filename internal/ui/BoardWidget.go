package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"CanvasBoard/internal/render"
	"CanvasBoard/internal/state"
)

const (
	strokeWidth   = 3
	flattenSteps  = 6
	selectionPad  = 4
	dotRadius     = strokeWidth / 2.0
	minBoardWidth = 300
)

var selectionColor = color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}

// BoardWidget draws a document and feeds pointer input back into its store.
type BoardWidget struct {
	widget.BaseWidget
	store    *state.Store
	gestures *gestures
	cancel   func()

	mu  sync.RWMutex
	doc state.DocumentState
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Tappable = (*BoardWidget)(nil)

func NewBoardWidget(store *state.Store) *BoardWidget {
	b := &BoardWidget{
		store:    store,
		gestures: newGestures(store),
		doc:      store.Observe(),
	}
	b.ExtendBaseWidget(b)
	b.gestures.onPreview = b.Refresh
	b.cancel = store.Subscribe(b.update)
	return b
}

func (b *BoardWidget) update(doc state.DocumentState) {
	b.mu.Lock()
	b.doc = doc
	b.mu.Unlock()
	fyne.Do(b.Refresh)
}

// Document returns the last state the widget rendered.
func (b *BoardWidget) Document() state.DocumentState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc
}

// Detach stops following the store.
func (b *BoardWidget) Detach() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func toPoint(p fyne.Position) state.Point { return state.Point{X: p.X, Y: p.Y} }
func toPos(p state.Point) fyne.Position   { return fyne.NewPos(p.X, p.Y) }

func (b *BoardWidget) Tapped(e *fyne.PointEvent) {
	b.gestures.tap(toPoint(e.Position))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.gestures.drag(toPoint(e.Position), state.Point{X: e.Dragged.DX, Y: e.Dragged.DY})
}

func (b *BoardWidget) DragEnd() {
	b.gestures.dragEnd()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.rebuild()
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardWidgetRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) rebuild() {
	doc := r.board.Document()
	objects := []fyne.CanvasObject{r.background}

	for _, s := range doc.Strokes {
		objects = appendStroke(objects, s)
	}
	if doc.CurrentStroke != nil {
		objects = appendStroke(objects, *doc.CurrentStroke)
	}
	movingID, movingPos, moving := r.board.gestures.preview()
	for _, el := range doc.TextElements {
		if moving && el.ID == movingID {
			el.Position = movingPos
		}
		objects = appendText(objects, el, doc.Selection.Is(el.ID))
	}
	r.objects = objects
}

func appendStroke(objects []fyne.CanvasObject, s state.Stroke) []fyne.CanvasObject {
	pts := render.Flatten(render.Smooth(s.Points), flattenSteps)
	if len(pts) == 1 {
		dot := canvas.NewCircle(s.Color)
		dot.Move(fyne.NewPos(pts[0].X-dotRadius, pts[0].Y-dotRadius))
		dot.Resize(fyne.NewSize(strokeWidth, strokeWidth))
		return append(objects, dot)
	}
	for i := 0; i+1 < len(pts); i++ {
		segment := canvas.NewLine(s.Color)
		segment.StrokeWidth = strokeWidth
		segment.Position1 = toPos(pts[i])
		segment.Position2 = toPos(pts[i+1])
		objects = append(objects, segment)
	}
	return objects
}

func appendText(objects []fyne.CanvasObject, el state.TextElement, selected bool) []fyne.CanvasObject {
	txt := canvas.NewText(el.Text, el.Color)
	txt.TextSize = el.FontSize
	txt.TextStyle = fyne.TextStyle{
		Bold:      el.Bold,
		Italic:    el.Italic,
		Underline: el.Underline,
		Monospace: el.FontFamily == state.FontMonospace,
	}
	// Element positions are on the text's vertical center.
	txt.Move(fyne.NewPos(el.Position.X, el.Position.Y-el.FontSize/2))
	txt.Resize(txt.MinSize())
	objects = append(objects, txt)

	if selected {
		box := render.TextHitBox(el)
		frame := canvas.NewRectangle(color.Transparent)
		frame.StrokeColor = selectionColor
		frame.StrokeWidth = 1
		frame.Move(fyne.NewPos(box.Min.X-selectionPad, box.Min.Y-selectionPad))
		frame.Resize(fyne.NewSize(
			box.Max.X-box.Min.X+2*selectionPad,
			box.Max.Y-box.Min.Y+2*selectionPad))
		objects = append(objects, frame)
	}
	return objects
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	w, h := int(size.Width), int(size.Height)
	doc := r.board.Document()
	if w != doc.CanvasWidth || h != doc.CanvasHeight {
		r.board.store.Dispatch(state.CanvasResized{Width: w, Height: h})
	}
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(minBoardWidth, minBoardWidth)
}

package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"CanvasBoard/internal/confirm"
	"CanvasBoard/internal/logger"
	"CanvasBoard/internal/state"
)

const (
	clearLabel   = "Clear"
	confirmLabel = "Tap again to clear"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    state.Color
	OnTapped func(state.Color)

	border   *canvas.Rectangle
	selected bool
}

func newColorSwatch(c state.Color, tapped func(state.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	s.border = canvas.NewRectangle(color.Transparent)
	s.applyBorder()
	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) setSelected(selected bool) {
	if s.selected == selected {
		return
	}
	s.selected = selected
	if s.border != nil {
		s.applyBorder()
		s.border.Refresh()
	}
}

func (s *colorSwatch) applyBorder() {
	if s.selected {
		s.border.StrokeColor = selectionColor
		s.border.StrokeWidth = 3
		return
	}
	s.border.StrokeColor = color.Gray{Y: 150}
	s.border.StrokeWidth = 1
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the document-wide controls: ink color, add text,
// undo/redo and a clear button that needs a second tap.
type Toolbar struct {
	store     *state.Store
	swatches  []*colorSwatch
	undo      *widget.Button
	redo      *widget.Button
	clear     *widget.Button
	status    *widget.Label
	confirmer *confirm.Confirmer
	cancel    func()

	content fyne.CanvasObject
}

// NewToolbar builds the toolbar and keeps it in sync with store.
// window is how long Clear stays armed.
func NewToolbar(store *state.Store, window time.Duration) *Toolbar {
	t := &Toolbar{store: store, status: widget.NewLabel("Ready")}

	onColorTapped := func(c state.Color) {
		store.Dispatch(state.SelectColor{Color: c})
	}
	colorBox := container.NewHBox()
	for _, c := range state.Palette {
		sw := newColorSwatch(c, onColorTapped)
		t.swatches = append(t.swatches, sw)
		colorBox.Add(sw)
	}

	addText := widget.NewButtonWithIcon("Text", theme.ContentAddIcon(), func() {
		store.Dispatch(state.AddText{})
	})
	t.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() {
		store.Dispatch(state.Undo{})
	})
	t.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() {
		store.Dispatch(state.Redo{})
	})

	t.confirmer = confirm.New(window, func(armed bool) {
		fyne.Do(func() { t.showArmed(armed) })
	})
	t.clear = widget.NewButtonWithIcon(clearLabel, theme.DeleteIcon(), t.onClear)

	t.content = container.NewHBox(
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		addText,
		t.undo,
		t.redo,
		widget.NewSeparator(),
		t.clear,
		layout.NewSpacer(),
		t.status,
	)

	t.sync(store.Observe())
	t.cancel = store.Subscribe(func(doc state.DocumentState) {
		fyne.Do(func() { t.sync(doc) })
	})
	return t
}

// Content is the toolbar's canvas object.
func (t *Toolbar) Content() fyne.CanvasObject { return t.content }

// SetStatus shows text in the status label. Safe from any goroutine.
func (t *Toolbar) SetStatus(text string) {
	fyne.Do(func() { t.status.SetText(text) })
}

// Close stops following the store and disarms Clear.
func (t *Toolbar) Close() {
	t.confirmer.Reset()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Toolbar) onClear() {
	if !t.confirmer.Tap() {
		return
	}
	if t.store.Dispatch(state.ClearAll{}) {
		logger.InfoTagf("ui", "Cleared all strokes")
		t.SetStatus("Cleared")
	}
}

func (t *Toolbar) showArmed(armed bool) {
	if armed {
		t.clear.SetText(confirmLabel)
		t.clear.Importance = widget.DangerImportance
	} else {
		t.clear.SetText(clearLabel)
		t.clear.Importance = widget.MediumImportance
	}
	t.clear.Refresh()
}

func (t *Toolbar) sync(doc state.DocumentState) {
	for _, sw := range t.swatches {
		sw.setSelected(sw.Color == doc.SelectedColor)
	}
	setEnabled(t.undo, doc.CanUndo())
	setEnabled(t.redo, doc.CanRedo())
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"CanvasBoard/internal/state"
)

// TextControls edits the selected text element. It hides itself while
// nothing is selected.
type TextControls struct {
	store  *state.Store
	window fyne.Window
	cancel func()

	bold      *widget.Check
	italic    *widget.Check
	underline *widget.Check
	size      *widget.Label
	family    *widget.Select

	// syncing is set while widgets are updated from the document, so their
	// change callbacks don't dispatch the same values back.
	syncing bool
	current state.TextElement

	content *fyne.Container
}

func NewTextControls(store *state.Store, window fyne.Window) *TextControls {
	t := &TextControls{store: store, window: window}

	t.bold = widget.NewCheck("Bold", func(on bool) {
		t.style(state.UpdateStyle{Bold: &on})
	})
	t.italic = widget.NewCheck("Italic", func(on bool) {
		t.style(state.UpdateStyle{Italic: &on})
	})
	t.underline = widget.NewCheck("Underline", func(on bool) {
		t.style(state.UpdateStyle{Underline: &on})
	})

	families := state.FontFamilies()
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.String()
	}
	t.family = widget.NewSelect(names, func(name string) {
		f, err := state.ParseFontFamily(name)
		if err != nil {
			return
		}
		t.style(state.UpdateStyle{FontFamily: &f})
	})

	t.size = widget.NewLabel("")
	smaller := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), func() { t.stepSize(-state.FontSizeStep) })
	larger := widget.NewButtonWithIcon("", theme.ZoomInIcon(), func() { t.stepSize(state.FontSizeStep) })

	edit := widget.NewButtonWithIcon("Edit", theme.DocumentCreateIcon(), t.showEditDialog)
	ink := widget.NewButtonWithIcon("Ink color", theme.ColorPaletteIcon(), func() {
		c := t.store.Observe().SelectedColor
		t.style(state.UpdateStyle{Color: &c})
	})
	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if t.current.ID != "" {
			t.store.Dispatch(state.DeleteText{ID: t.current.ID})
		}
	})
	remove.Importance = widget.DangerImportance

	t.content = container.NewHBox(
		edit,
		widget.NewSeparator(),
		t.bold, t.italic, t.underline,
		widget.NewSeparator(),
		smaller, t.size, larger,
		t.family,
		ink,
		remove,
	)

	t.sync(store.Observe())
	t.cancel = store.Subscribe(func(doc state.DocumentState) {
		fyne.Do(func() { t.sync(doc) })
	})
	return t
}

// Content is the panel's canvas object.
func (t *TextControls) Content() fyne.CanvasObject { return t.content }

// Close stops following the store.
func (t *TextControls) Close() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *TextControls) style(a state.UpdateStyle) {
	if t.syncing || t.current.ID == "" {
		return
	}
	a.ID = t.current.ID
	t.store.Dispatch(a)
}

func (t *TextControls) stepSize(delta float32) {
	size := state.StepFontSize(t.current.FontSize, delta)
	t.style(state.UpdateStyle{FontSize: &size})
}

func (t *TextControls) showEditDialog() {
	if t.current.ID == "" {
		return
	}
	id := t.current.ID
	entry := widget.NewEntry()
	entry.SetText(t.current.Text)
	entry.Validator = state.ValidateText

	items := []*widget.FormItem{
		widget.NewFormItem("Text", entry),
	}
	d := dialog.NewForm("Edit text", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		commitText(t.store, id, entry.Text)
	}, t.window)
	d.Resize(fyne.NewSize(360, 160))
	d.Show()
}

// commitText stores the edited text without surrounding whitespace.
func commitText(store *state.Store, id, text string) bool {
	return store.Dispatch(state.UpdateText{ID: id, Text: strings.TrimSpace(text)})
}

func (t *TextControls) sync(doc state.DocumentState) {
	el, ok := doc.SelectedText()
	if !ok {
		t.current = state.TextElement{}
		t.content.Hide()
		return
	}

	t.syncing = true
	defer func() { t.syncing = false }()
	t.current = el
	t.bold.SetChecked(el.Bold)
	t.italic.SetChecked(el.Italic)
	t.underline.SetChecked(el.Underline)
	t.family.SetSelected(el.FontFamily.String())
	t.size.SetText(fmt.Sprintf("%.0f", el.FontSize))
	t.content.Show()
}

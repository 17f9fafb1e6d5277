package state

// Action is one user intent dispatched into the document. The set of
// actions is closed; see the Kind constants.
type Action interface {
	// Kind is the stable wire name of the action.
	Kind() string
	isAction()
}

// Wire names of every action.
const (
	KindStartStroke   = "start_stroke"
	KindAppendPoint   = "append_point"
	KindEndStroke     = "end_stroke"
	KindSelectColor   = "select_color"
	KindClearAll      = "clear_all"
	KindAddText       = "add_text"
	KindUpdateText    = "update_text"
	KindUpdateStyle   = "update_style"
	KindSelectText    = "select_text"
	KindMoveText      = "move_text"
	KindDeleteText    = "delete_text"
	KindCanvasResized = "canvas_resized"
	KindUndo          = "undo"
	KindRedo          = "redo"
)

// Kinds lists every action kind.
func Kinds() []string {
	return []string{
		KindStartStroke, KindAppendPoint, KindEndStroke, KindSelectColor,
		KindClearAll, KindAddText, KindUpdateText, KindUpdateStyle,
		KindSelectText, KindMoveText, KindDeleteText, KindCanvasResized,
		KindUndo, KindRedo,
	}
}

// StartStroke begins a new stroke in the selected color.
type StartStroke struct{}

// AppendPoint extends the stroke in progress.
type AppendPoint struct {
	Point Point `json:"point"`
}

// EndStroke commits the stroke in progress.
type EndStroke struct{}

// SelectColor changes the ink color for subsequent strokes.
type SelectColor struct {
	Color Color `json:"color"`
}

// ClearAll removes every stroke. Text elements are kept.
type ClearAll struct{}

// AddText places a default text element at the canvas center.
type AddText struct{}

// UpdateText replaces the text of an element.
type UpdateText struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// UpdateStyle merges the non-nil fields into an element's style.
type UpdateStyle struct {
	ID         string      `json:"id"`
	Color      *Color      `json:"color,omitempty"`
	FontSize   *float32    `json:"font_size,omitempty"`
	Bold       *bool       `json:"bold,omitempty"`
	Italic     *bool       `json:"italic,omitempty"`
	Underline  *bool       `json:"underline,omitempty"`
	FontFamily *FontFamily `json:"font_family,omitempty"`
}

// SelectText changes the selection. It is never checkpointed.
type SelectText struct {
	Selection Selection `json:"id"`
}

// MoveText repositions an element.
type MoveText struct {
	ID       string `json:"id"`
	Position Point  `json:"position"`
}

// DeleteText removes an element and clears the selection.
type DeleteText struct {
	ID string `json:"id"`
}

// CanvasResized records the canvas pixel size.
type CanvasResized struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Undo restores the previous text snapshot.
type Undo struct{}

// Redo restores the next text snapshot.
type Redo struct{}

func (StartStroke) Kind() string   { return KindStartStroke }
func (AppendPoint) Kind() string   { return KindAppendPoint }
func (EndStroke) Kind() string     { return KindEndStroke }
func (SelectColor) Kind() string   { return KindSelectColor }
func (ClearAll) Kind() string      { return KindClearAll }
func (AddText) Kind() string       { return KindAddText }
func (UpdateText) Kind() string    { return KindUpdateText }
func (UpdateStyle) Kind() string   { return KindUpdateStyle }
func (SelectText) Kind() string    { return KindSelectText }
func (MoveText) Kind() string      { return KindMoveText }
func (DeleteText) Kind() string    { return KindDeleteText }
func (CanvasResized) Kind() string { return KindCanvasResized }
func (Undo) Kind() string          { return KindUndo }
func (Redo) Kind() string          { return KindRedo }

func (StartStroke) isAction()   {}
func (AppendPoint) isAction()   {}
func (EndStroke) isAction()     {}
func (SelectColor) isAction()   {}
func (ClearAll) isAction()      {}
func (AddText) isAction()       {}
func (UpdateText) isAction()    {}
func (UpdateStyle) isAction()   {}
func (SelectText) isAction()    {}
func (MoveText) isAction()      {}
func (DeleteText) isAction()    {}
func (CanvasResized) isAction() {}
func (Undo) isAction()          {}
func (Redo) isAction()          {}

// NewAction returns the zero action for a wire name.
func NewAction(kind string) (Action, bool) {
	switch kind {
	case KindStartStroke:
		return &StartStroke{}, true
	case KindAppendPoint:
		return &AppendPoint{}, true
	case KindEndStroke:
		return &EndStroke{}, true
	case KindSelectColor:
		return &SelectColor{}, true
	case KindClearAll:
		return &ClearAll{}, true
	case KindAddText:
		return &AddText{}, true
	case KindUpdateText:
		return &UpdateText{}, true
	case KindUpdateStyle:
		return &UpdateStyle{}, true
	case KindSelectText:
		return &SelectText{}, true
	case KindMoveText:
		return &MoveText{}, true
	case KindDeleteText:
		return &DeleteText{}, true
	case KindCanvasResized:
		return &CanvasResized{}, true
	case KindUndo:
		return &Undo{}, true
	case KindRedo:
		return &Redo{}, true
	}
	return nil, false
}

// Deref turns a pointer action produced by NewAction back into its value
// form. Value actions are returned as is.
func Deref(a Action) Action {
	switch v := a.(type) {
	case *StartStroke:
		return *v
	case *AppendPoint:
		return *v
	case *EndStroke:
		return *v
	case *SelectColor:
		return *v
	case *ClearAll:
		return *v
	case *AddText:
		return *v
	case *UpdateText:
		return *v
	case *UpdateStyle:
		return *v
	case *SelectText:
		return *v
	case *MoveText:
		return *v
	case *DeleteText:
		return *v
	case *CanvasResized:
		return *v
	case *Undo:
		return *v
	case *Redo:
		return *v
	}
	return a
}

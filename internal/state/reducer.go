package state

// Reducer computes the next document state for an action. Reduce never
// mutates its input: slices that change are copied first, so any earlier
// state stays valid.
type Reducer struct {
	IDs IDGenerator
}

// NewReducer returns a reducer issuing ids from ids, or from a fresh
// Sequence when ids is nil.
func NewReducer(ids IDGenerator) Reducer {
	if ids == nil {
		ids = NewSequence()
	}
	return Reducer{IDs: ids}
}

// Reduce applies a to s. Invalid actions (unknown ids, stroke actions while
// idle, rejected text) return s unchanged.
func (r Reducer) Reduce(s DocumentState, a Action) DocumentState {
	switch a := Deref(a).(type) {
	case StartStroke:
		return r.startStroke(s)
	case AppendPoint:
		return appendPoint(s, a.Point)
	case EndStroke:
		return endStroke(s)
	case SelectColor:
		s.SelectedColor = a.Color
		return s
	case ClearAll:
		s.CurrentStroke = nil
		s.Strokes = []Stroke{}
		return s
	case AddText:
		return r.addText(s)
	case UpdateText:
		return updateText(s, a)
	case UpdateStyle:
		return updateStyle(s, a)
	case SelectText:
		return selectText(s, a.Selection)
	case MoveText:
		return moveText(s, a)
	case DeleteText:
		return deleteText(s, a.ID)
	case CanvasResized:
		s.CanvasWidth = a.Width
		s.CanvasHeight = a.Height
		return s
	case Undo:
		return undo(s)
	case Redo:
		return redo(s)
	}
	return s
}

func (r Reducer) nextID() string {
	if r.IDs == nil {
		return UUIDs{}.NextID()
	}
	return r.IDs.NextID()
}

// startStroke discards any stroke still in progress; drawing takes the
// input focus away from text.
func (r Reducer) startStroke(s DocumentState) DocumentState {
	s.CurrentStroke = &Stroke{
		ID:     r.nextID(),
		Color:  s.SelectedColor,
		Points: []Point{},
	}
	s.Selection = NoSelection
	return s
}

func appendPoint(s DocumentState, p Point) DocumentState {
	if s.CurrentStroke == nil {
		return s
	}
	cur := *s.CurrentStroke
	points := make([]Point, len(cur.Points), len(cur.Points)+1)
	copy(points, cur.Points)
	cur.Points = append(points, p)
	s.CurrentStroke = &cur
	return s
}

func endStroke(s DocumentState) DocumentState {
	if s.CurrentStroke == nil {
		return s
	}
	strokes := make([]Stroke, len(s.Strokes), len(s.Strokes)+1)
	copy(strokes, s.Strokes)
	s.Strokes = append(strokes, *s.CurrentStroke)
	s.CurrentStroke = nil
	return s
}

func (r Reducer) addText(s DocumentState) DocumentState {
	el := NewTextElement(r.nextID(), Point{
		X: float32(s.CanvasWidth) / 2,
		Y: float32(s.CanvasHeight) / 2,
	})
	if !el.Valid() {
		return s
	}
	texts := make([]TextElement, len(s.TextElements), len(s.TextElements)+1)
	copy(texts, s.TextElements)
	s.TextElements = append(texts, el)
	s.Selection = Selected(el.ID)
	return checkpoint(s)
}

func updateText(s DocumentState, a UpdateText) DocumentState {
	if ValidateText(a.Text) != nil {
		return s
	}
	return editText(s, a.ID, func(e *TextElement) {
		e.Text = a.Text
	})
}

func updateStyle(s DocumentState, a UpdateStyle) DocumentState {
	if a.FontSize != nil && (*a.FontSize < MinFontSize || *a.FontSize > MaxFontSize) {
		return s
	}
	if a.FontFamily != nil && !a.FontFamily.Valid() {
		return s
	}
	return editText(s, a.ID, func(e *TextElement) {
		if a.Color != nil {
			e.Color = *a.Color
		}
		if a.FontSize != nil {
			e.FontSize = *a.FontSize
		}
		if a.Bold != nil {
			e.Bold = *a.Bold
		}
		if a.Italic != nil {
			e.Italic = *a.Italic
		}
		if a.Underline != nil {
			e.Underline = *a.Underline
		}
		if a.FontFamily != nil {
			e.FontFamily = *a.FontFamily
		}
	})
}

func moveText(s DocumentState, a MoveText) DocumentState {
	return editText(s, a.ID, func(e *TextElement) {
		e.Position = a.Position
	})
}

// editText rewrites the element with id in place and checkpoints the
// result. Unknown ids leave s untouched.
func editText(s DocumentState, id string, edit func(*TextElement)) DocumentState {
	i := s.TextIndex(id)
	if i < 0 {
		return s
	}
	texts := cloneTexts(s.TextElements)
	edit(&texts[i])
	s.TextElements = texts
	return checkpoint(s)
}

func deleteText(s DocumentState, id string) DocumentState {
	i := s.TextIndex(id)
	if i < 0 {
		return s
	}
	texts := make([]TextElement, 0, len(s.TextElements)-1)
	texts = append(texts, s.TextElements[:i]...)
	texts = append(texts, s.TextElements[i+1:]...)
	s.TextElements = texts
	s.Selection = NoSelection
	return checkpoint(s)
}

func selectText(s DocumentState, sel Selection) DocumentState {
	if id, ok := sel.Get(); ok && s.TextIndex(id) < 0 {
		return s
	}
	s.Selection = sel
	return s
}

func checkpoint(s DocumentState) DocumentState {
	s.History = s.History.Checkpoint(s.TextElements)
	return s
}

func undo(s DocumentState) DocumentState {
	h, texts, ok := s.History.Undo()
	if !ok {
		return s
	}
	s.History = h
	s.TextElements = texts
	s.Selection = NoSelection
	return s
}

func redo(s DocumentState) DocumentState {
	h, texts, ok := s.History.Redo()
	if !ok {
		return s
	}
	s.History = h
	s.TextElements = texts
	s.Selection = NoSelection
	return s
}

package ui

import (
	"CanvasBoard/internal/render"
	"CanvasBoard/internal/state"
)

type dragMode int

const (
	dragNone dragMode = iota
	dragStroke
	dragText
)

// gestures turns taps and drags on the board into actions. A text drag is
// previewed locally and committed as one MoveText when it ends, so a drag is
// a single undo step.
type gestures struct {
	store *state.Store

	mode   dragMode
	moveID string
	origin state.Point
	moved  state.Point

	// onPreview is called while a text drag changes the previewed position.
	onPreview func()
}

func newGestures(store *state.Store) *gestures {
	return &gestures{store: store}
}

// tap selects the text under pos, or deselects and leaves a dot.
func (g *gestures) tap(pos state.Point) {
	doc := g.store.Observe()
	if id, ok := render.HitText(doc.TextElements, pos); ok {
		g.store.Dispatch(state.SelectText{Selection: state.Selected(id)})
		return
	}
	g.store.Dispatch(state.SelectText{Selection: state.NoSelection})
	g.store.Dispatch(state.StartStroke{})
	g.store.Dispatch(state.AppendPoint{Point: pos})
	g.store.Dispatch(state.EndStroke{})
}

// drag handles one drag event at pos that moved by delta since the last one.
func (g *gestures) drag(pos, delta state.Point) {
	switch g.mode {
	case dragNone:
		start := state.Point{X: pos.X - delta.X, Y: pos.Y - delta.Y}
		doc := g.store.Observe()
		if id, ok := render.HitText(doc.TextElements, start); ok {
			g.mode = dragText
			g.moveID = id
			g.origin = doc.TextElements[doc.TextIndex(id)].Position
			g.moved = state.Point{}
			g.store.Dispatch(state.SelectText{Selection: state.Selected(id)})
			g.moveBy(delta)
			return
		}
		g.mode = dragStroke
		g.store.Dispatch(state.StartStroke{})
		g.store.Dispatch(state.AppendPoint{Point: start})
		g.store.Dispatch(state.AppendPoint{Point: pos})
	case dragStroke:
		g.store.Dispatch(state.AppendPoint{Point: pos})
	case dragText:
		g.moveBy(delta)
	}
}

func (g *gestures) moveBy(delta state.Point) {
	g.moved.X += delta.X
	g.moved.Y += delta.Y
	if g.onPreview != nil {
		g.onPreview()
	}
}

// preview returns the element being dragged and where it is drawn.
func (g *gestures) preview() (string, state.Point, bool) {
	if g.mode != dragText {
		return "", state.Point{}, false
	}
	return g.moveID, state.Point{X: g.origin.X + g.moved.X, Y: g.origin.Y + g.moved.Y}, true
}

func (g *gestures) dragEnd() {
	switch g.mode {
	case dragStroke:
		g.store.Dispatch(state.EndStroke{})
	case dragText:
		id, pos, _ := g.preview()
		// Leave drag mode first so the redraw triggered by MoveText uses
		// the document position.
		g.mode = dragNone
		if g.moved != (state.Point{}) {
			g.store.Dispatch(state.MoveText{ID: id, Position: pos})
		}
	}
	g.mode = dragNone
	g.moveID = ""
}

package net

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CanvasBoard/internal/state"
)

func TestEncodeActionEnvelope(t *testing.T) {
	b, err := EncodeAction(state.AppendPoint{Point: state.Point{X: 3, Y: 4}})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))
	assert.Equal(t, "append_point", fields["type"])
	assert.Equal(t, map[string]any{"x": 3.0, "y": 4.0}, fields["point"])
}

func TestActionsSurviveTheWire(t *testing.T) {
	size := float32(20)
	bold := true
	family := state.FontCursive
	color := state.Red
	actions := []state.Action{
		state.StartStroke{},
		state.AppendPoint{Point: state.Point{X: 1.5, Y: 2}},
		state.EndStroke{},
		state.SelectColor{Color: state.Blue},
		state.ClearAll{},
		state.AddText{},
		state.UpdateText{ID: "t1", Text: "hi"},
		state.UpdateStyle{ID: "t1", Color: &color, FontSize: &size, Bold: &bold, FontFamily: &family},
		state.SelectText{Selection: state.Selected("t1")},
		state.SelectText{Selection: state.NoSelection},
		state.MoveText{ID: "t1", Position: state.Point{X: 9, Y: 8}},
		state.DeleteText{ID: "t1"},
		state.CanvasResized{Width: 640, Height: 480},
		state.Undo{},
		state.Redo{},
	}
	for _, a := range actions {
		b, err := EncodeAction(a)
		require.NoError(t, err, a.Kind())
		got, err := DecodeAction(b)
		require.NoError(t, err, a.Kind())
		assert.Equal(t, a, got, a.Kind())
	}
}

func TestEncodeActionAcceptsPointers(t *testing.T) {
	b, err := EncodeAction(&state.DeleteText{ID: "x"})
	require.NoError(t, err)
	got, err := DecodeAction(b)
	require.NoError(t, err)
	assert.Equal(t, state.DeleteText{ID: "x"}, got)
}

func TestDecodeRejectsBadMessages(t *testing.T) {
	for _, bad := range []string{
		`not json`,
		`{}`,
		`{"type":"paint_bucket"}`,
		`{"type":"select_color","color":"#nothex"}`,
		`{"type":"update_style","id":"a","font_family":"comic"}`,
	} {
		_, err := DecodeAction([]byte(bad))
		assert.Error(t, err, bad)
	}
}

func TestDecodeClientMessageObserve(t *testing.T) {
	a, observe, err := DecodeClientMessage([]byte(`{"type":"observe"}`))
	require.NoError(t, err)
	assert.True(t, observe)
	assert.Nil(t, a)

	a, observe, err = DecodeClientMessage([]byte(`{"type":"undo"}`))
	require.NoError(t, err)
	assert.False(t, observe)
	assert.Equal(t, state.Undo{}, a)
}

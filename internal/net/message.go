package net

import (
	"encoding/json"
	"fmt"

	"CanvasBoard/internal/state"
)

// Message types sent by the host. Clients send action kinds (see
// state.Kinds) or TypeObserve.
const (
	TypeState   = "state"
	TypeError   = "error"
	TypeObserve = "observe"
)

// ServerMessage is everything the host writes to a client.
type ServerMessage struct {
	Type    string               `json:"type"`
	Session string               `json:"session,omitempty"`
	Version uint64               `json:"version,omitempty"`
	State   *state.DocumentState `json:"state,omitempty"`
	Error   string               `json:"error,omitempty"`
}

type envelope struct {
	Type string `json:"type"`
}

// EncodeAction writes a as a JSON object with its kind in "type".
func EncodeAction(a state.Action) ([]byte, error) {
	a = state.Deref(a)
	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", a.Kind(), err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", a.Kind(), err)
	}
	kind, _ := json.Marshal(a.Kind())
	fields["type"] = kind
	return json.Marshal(fields)
}

// DecodeClientMessage parses one client message. observe is true for a
// bare state request, in which case a is nil.
func DecodeClientMessage(b []byte) (a state.Action, observe bool, err error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, false, fmt.Errorf("malformed message: %w", err)
	}
	if env.Type == TypeObserve {
		return nil, true, nil
	}
	a, err = DecodeAction(b)
	return a, false, err
}

// DecodeAction parses an action written by EncodeAction.
func DecodeAction(b []byte) (state.Action, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("malformed action: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("action has no type")
	}
	a, ok := state.NewAction(env.Type)
	if !ok {
		return nil, fmt.Errorf("unknown action type %q", env.Type)
	}
	if err := json.Unmarshal(b, a); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Type, err)
	}
	return state.Deref(a), nil
}

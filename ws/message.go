package ws

import (
	"encoding/json"

	"card-duel-server/duel"
)

// InboundEnvelope is the generic envelope for all client-to-server messages.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// --- Client-to-Server message payloads ---

// JoinMsg is sent by the client to enter a room. Token is only required when
// the server has auth configured; VsBot requests the built-in opponent for
// the room's free seat.
type JoinMsg struct {
	Type       string `json:"type"`
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	VsBot      bool   `json:"vsBot,omitempty"`
	Token      string `json:"token,omitempty"`
}

// ActionMsg carries one duel action from a seated player.
type ActionMsg struct {
	Type   string      `json:"type"`
	Action duel.Action `json:"action"`
}

// --- Server-to-Client messages ---
// Role and game-state messages are built by the rooms package, which owns
// the broadcast loop.

// ErrorMsg is sent when a client message is malformed. Illegal duel actions
// are not errors: they are silently dropped and the next broadcast simply
// shows no change.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

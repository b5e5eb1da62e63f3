package rooms

import "card-duel-server/duel"

// RoleMsg tells a joining connection which seat (or spectator role) it got.
type RoleMsg struct {
	Type string `json:"type"`
	Role string `json:"role"` // "player1", "player2" or "spectator"
}

// GameStateMsg is the full duel state broadcast to every room member after
// any accepted event. The state is always sent whole, never as a delta.
type GameStateMsg struct {
	Type   string          `json:"type"`
	RoomID string          `json:"roomId"`
	Status string          `json:"status"` // "waiting" or "playing"
	State  *duel.DuelState `json:"state"`
}

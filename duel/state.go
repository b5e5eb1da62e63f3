package duel

import (
	"encoding/json"
	"fmt"

	"card-duel-server/catalog"
)

// ZoneSize is the number of monster and spell slots per player.
const ZoneSize = 5

// StartingLifePoints is each player's initial life total.
const StartingLifePoints = 8000

// Seat identifies one of the two authoritative participants. SeatNone is
// the zero value, used for "no winner yet".
type Seat int

const (
	SeatNone Seat = iota
	Player1
	Player2
)

// String returns the protocol string for a Seat.
func (s Seat) String() string {
	switch s {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return "none"
	}
}

// Label returns the human-readable name used in log lines.
func (s Seat) Label() string {
	switch s {
	case Player1:
		return "Jogador 1"
	case Player2:
		return "Jogador 2"
	default:
		return "?"
	}
}

// Opponent returns the other seat.
func (s Seat) Opponent() Seat {
	switch s {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return SeatNone
	}
}

// MarshalJSON writes a Seat as "player1"/"player2", or null for SeatNone.
func (s Seat) MarshalJSON() ([]byte, error) {
	if s == SeatNone {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON reads a Seat from its protocol string or null.
func (s *Seat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = SeatNone
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "player1":
		*s = Player1
	case "player2":
		*s = Player2
	default:
		return fmt.Errorf("unknown seat %q", str)
	}
	return nil
}

// Phase is one of the five ordered stages of a turn.
type Phase int

const (
	PhaseDraw Phase = iota
	PhaseMain1
	PhaseBattle
	PhaseMain2
	PhaseEnd
)

// String returns the protocol string for a Phase.
func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "DRAW"
	case PhaseMain1:
		return "MAIN_1"
	case PhaseBattle:
		return "BATTLE"
	case PhaseMain2:
		return "MAIN_2"
	case PhaseEnd:
		return "END"
	default:
		return "unknown"
	}
}

// MarshalJSON writes a Phase as its protocol string.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON reads a Phase from its protocol string.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "DRAW":
		*p = PhaseDraw
	case "MAIN_1":
		*p = PhaseMain1
	case "BATTLE":
		*p = PhaseBattle
	case "MAIN_2":
		*p = PhaseMain2
	case "END":
		*p = PhaseEnd
	default:
		return fmt.Errorf("unknown phase %q", s)
	}
	return nil
}

// Position is a monster's battle orientation. Spells have no position.
type Position int

const (
	PositionNone Position = iota
	Attack
	Defense
	Facedown
)

// String returns the protocol string for a Position.
func (p Position) String() string {
	switch p {
	case Attack:
		return "ATTACK"
	case Defense:
		return "DEFENSE"
	case Facedown:
		return "FACEDOWN"
	default:
		return "none"
	}
}

// Label returns the human-readable position name used in log lines.
func (p Position) Label() string {
	if p == Attack {
		return "Ataque"
	}
	return "Defesa"
}

// MarshalJSON writes a Position as its protocol string, or null when unset.
func (p Position) MarshalJSON() ([]byte, error) {
	if p == PositionNone {
		return []byte("null"), nil
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON reads a Position from its protocol string or null.
func (p *Position) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = PositionNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "ATTACK":
		*p = Attack
	case "DEFENSE":
		*p = Defense
	case "FACEDOWN", "SET":
		*p = Facedown
	default:
		return fmt.Errorf("unknown position %q", s)
	}
	return nil
}

// CardInstance is one physical card in a duel: an immutable template copy
// stamped with a unique instance id plus mutable per-duel battle flags.
// An instance lives in exactly one zone at a time (deck, hand, field or
// graveyard); the graveyard is terminal.
type CardInstance struct {
	catalog.Template

	InstanceID  string   `json:"id"`
	Position    Position `json:"position,omitempty"`
	CanAttack   bool     `json:"canAttack,omitempty"`
	HasAttacked bool     `json:"hasAttacked,omitempty"`
}

// PlayerState is one seat's side of the duel.
type PlayerState struct {
	Name              string                  `json:"name"`
	LifePoints        int                     `json:"lp"`
	Deck              []*CardInstance         `json:"deck"`
	Hand              []*CardInstance         `json:"hand"`
	MonsterZone       [ZoneSize]*CardInstance `json:"monsterZone"`
	SpellZone         [ZoneSize]*CardInstance `json:"spellZone"`
	Graveyard         []*CardInstance         `json:"graveyard"`
	HasNormalSummoned bool                    `json:"hasNormalSummoned"`
}

// DuelState is the complete authoritative state of one duel. Values returned
// by Apply are fresh snapshots; callers must treat prior states as immutable.
type DuelState struct {
	Player1    PlayerState `json:"player1"`
	Player2    PlayerState `json:"player2"`
	ActiveSeat Seat        `json:"turn"`
	Phase      Phase       `json:"phase"`
	TurnNumber int         `json:"turnCount"`
	Log        []string    `json:"log"` // newest first
	Winner     Seat        `json:"winner"`
}

// Player returns the state for the given seat. The seat must be Player1 or
// Player2.
func (s *DuelState) Player(seat Seat) *PlayerState {
	switch seat {
	case Player1:
		return &s.Player1
	case Player2:
		return &s.Player2
	default:
		panic(fmt.Sprintf("duel: no player state for seat %v", seat))
	}
}

// Active returns the active player's state.
func (s *DuelState) Active() *PlayerState {
	return s.Player(s.ActiveSeat)
}

// logf prepends a formatted line to the duel log (newest first).
func (s *DuelState) logf(format string, args ...interface{}) {
	s.Log = append([]string{fmt.Sprintf(format, args...)}, s.Log...)
}

// cloneCards copies a card slice, duplicating every instance so mutations on
// the clone never reach the source.
func cloneCards(cards []*CardInstance) []*CardInstance {
	if cards == nil {
		return nil
	}
	out := make([]*CardInstance, len(cards))
	for i, c := range cards {
		if c != nil {
			cc := *c
			out[i] = &cc
		}
	}
	return out
}

// cloneZone copies a fixed zone array, duplicating occupied slots.
func cloneZone(zone [ZoneSize]*CardInstance) [ZoneSize]*CardInstance {
	var out [ZoneSize]*CardInstance
	for i, c := range zone {
		if c != nil {
			cc := *c
			out[i] = &cc
		}
	}
	return out
}

// clonePlayer returns a deep copy of a player's state.
func clonePlayer(p *PlayerState) PlayerState {
	return PlayerState{
		Name:              p.Name,
		LifePoints:        p.LifePoints,
		Deck:              cloneCards(p.Deck),
		Hand:              cloneCards(p.Hand),
		MonsterZone:       cloneZone(p.MonsterZone),
		SpellZone:         cloneZone(p.SpellZone),
		Graveyard:         cloneCards(p.Graveyard),
		HasNormalSummoned: p.HasNormalSummoned,
	}
}

// Clone returns a deep copy of the duel state. Apply works on a clone so the
// input snapshot stays valid for concurrent readers.
func (s *DuelState) Clone() *DuelState {
	log := make([]string, len(s.Log))
	copy(log, s.Log)
	return &DuelState{
		Player1:    clonePlayer(&s.Player1),
		Player2:    clonePlayer(&s.Player2),
		ActiveSeat: s.ActiveSeat,
		Phase:      s.Phase,
		TurnNumber: s.TurnNumber,
		Log:        log,
		Winner:     s.Winner,
	}
}

package duel

import (
	"encoding/json"
	"fmt"
)

// ActionType enumerates the kinds of actions a duel can process.
type ActionType int

const (
	ActionNextPhase ActionType = iota
	ActionDrawCard
	ActionSummonMonster
	ActionChangePosition
	ActionActivateSpell
	ActionAttack
)

// String returns the protocol string for an ActionType.
func (t ActionType) String() string {
	switch t {
	case ActionNextPhase:
		return "NEXT_PHASE"
	case ActionDrawCard:
		return "DRAW_CARD"
	case ActionSummonMonster:
		return "SUMMON_MONSTER"
	case ActionChangePosition:
		return "CHANGE_POSITION"
	case ActionActivateSpell:
		return "ACTIVATE_SPELL"
	case ActionAttack:
		return "ATTACK"
	default:
		return "unknown"
	}
}

// Action is one player request against the duel state. Which fields are
// meaningful depends on Type:
//
//   - SummonMonster: CardID (instance id in hand), ZoneIndex, Position
//   - ChangePosition: ZoneIndex, Position
//   - ActivateSpell: CardID (instance id in hand)
//   - Attack: AttackerIndex, TargetIndex (nil = direct attack)
type Action struct {
	Type          ActionType
	CardID        string
	ZoneIndex     int
	Position      Position
	AttackerIndex int
	TargetIndex   *int
}

type actionWire struct {
	Type          string   `json:"type"`
	CardID        string   `json:"cardId,omitempty"`
	ZoneIndex     int      `json:"zoneIndex"`
	Position      Position `json:"position,omitempty"`
	AttackerIndex int      `json:"attackerIndex"`
	TargetIndex   *int     `json:"targetIndex"`
}

// MarshalJSON writes the action in its wire form.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(actionWire{
		Type:          a.Type.String(),
		CardID:        a.CardID,
		ZoneIndex:     a.ZoneIndex,
		Position:      a.Position,
		AttackerIndex: a.AttackerIndex,
		TargetIndex:   a.TargetIndex,
	})
}

// UnmarshalJSON reads an action from its wire form.
func (a *Action) UnmarshalJSON(data []byte) error {
	var w actionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case "NEXT_PHASE":
		a.Type = ActionNextPhase
	case "DRAW_CARD":
		a.Type = ActionDrawCard
	case "SUMMON_MONSTER":
		a.Type = ActionSummonMonster
	case "CHANGE_POSITION":
		a.Type = ActionChangePosition
	case "ACTIVATE_SPELL":
		a.Type = ActionActivateSpell
	case "ATTACK":
		a.Type = ActionAttack
	default:
		return fmt.Errorf("unknown action type %q", w.Type)
	}
	a.CardID = w.CardID
	a.ZoneIndex = w.ZoneIndex
	a.Position = w.Position
	a.AttackerIndex = w.AttackerIndex
	a.TargetIndex = w.TargetIndex
	return nil
}

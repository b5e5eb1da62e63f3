// Package ai implements the built-in opponent: a deterministic heuristic
// that derives exactly one action from the current duel state. No search,
// no memory between invocations; the room loop re-invokes it after each
// resulting state until the bot's turn ends.
package ai

import (
	"card-duel-server/catalog"
	"card-duel-server/duel"
)

// ChooseAction returns the bot's next action for the given seat, or nil when
// the bot has nothing to do (not its turn, or the duel is over).
func ChooseAction(state *duel.DuelState, seat duel.Seat) *duel.Action {
	if state.ActiveSeat != seat || state.Winner != duel.SeatNone {
		return nil
	}

	switch state.Phase {
	case duel.PhaseDraw:
		return &duel.Action{Type: duel.ActionDrawCard}
	case duel.PhaseMain1:
		return chooseMainAction(state, seat)
	case duel.PhaseBattle:
		return chooseBattleAction(state, seat)
	default:
		// MAIN_2 and END: nothing worth doing, pass.
		return &duel.Action{Type: duel.ActionNextPhase}
	}
}

// chooseMainAction plays the first spell in hand, then normal-summons the
// strongest monster face-up in attack position, then passes.
func chooseMainAction(state *duel.DuelState, seat duel.Seat) *duel.Action {
	p := state.Player(seat)

	for _, c := range p.Hand {
		if c.Kind == catalog.Spell {
			return &duel.Action{Type: duel.ActionActivateSpell, CardID: c.InstanceID}
		}
	}

	if !p.HasNormalSummoned {
		var best *duel.CardInstance
		for _, c := range p.Hand {
			if c.Kind != catalog.Monster {
				continue
			}
			if best == nil || c.Atk > best.Atk {
				best = c
			}
		}
		if best != nil {
			for i := 0; i < duel.ZoneSize; i++ {
				if p.MonsterZone[i] == nil {
					return &duel.Action{
						Type:      duel.ActionSummonMonster,
						CardID:    best.InstanceID,
						ZoneIndex: i,
						Position:  duel.Attack,
					}
				}
			}
		}
	}

	return &duel.Action{Type: duel.ActionNextPhase}
}

// chooseBattleAction picks the first spent-free attacker that has a
// favorable attack: direct when the opponent's field is empty, otherwise
// into the weakest defender by its battle-relevant stat, and only when the
// attacker's ATK at least matches it. Passes when no attack is favorable.
func chooseBattleAction(state *duel.DuelState, seat duel.Seat) *duel.Action {
	p := state.Player(seat)
	opp := state.Player(seat.Opponent())

	fieldEmpty := true
	for _, m := range opp.MonsterZone {
		if m != nil {
			fieldEmpty = false
			break
		}
	}

	for i, attacker := range p.MonsterZone {
		if attacker == nil || attacker.Position != duel.Attack || !attacker.CanAttack || attacker.HasAttacked {
			continue
		}

		if fieldEmpty {
			return &duel.Action{Type: duel.ActionAttack, AttackerIndex: i, TargetIndex: nil}
		}

		targetIdx, targetStat := weakestDefender(opp)
		if targetIdx >= 0 && attacker.Atk >= targetStat {
			ti := targetIdx
			return &duel.Action{Type: duel.ActionAttack, AttackerIndex: i, TargetIndex: &ti}
		}
	}

	return &duel.Action{Type: duel.ActionNextPhase}
}

// weakestDefender returns the index and battle-relevant stat (ATK when in
// attack position, DEF otherwise) of the opponent's weakest monster, or
// (-1, 0) on an empty field.
func weakestDefender(opp *duel.PlayerState) (int, int) {
	idx, stat := -1, 0
	for i, m := range opp.MonsterZone {
		if m == nil {
			continue
		}
		s := m.Def
		if m.Position == duel.Attack {
			s = m.Atk
		}
		if idx == -1 || s < stat {
			idx, stat = i, s
		}
	}
	return idx, stat
}

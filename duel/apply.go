package duel

import "card-duel-server/catalog"

// Spell effect magnitudes, keyed off the catalog effect ids in resolveSpell.
const (
	damageOpponentAmount = 200
	gainLifeAmount       = 1000
)

// Apply is the duel transition function: it validates the action against the
// current state and returns the resulting state. The input is never mutated;
// illegal actions return an equivalent state unchanged in content. Once a
// winner is set the state is terminal and Apply returns its input as-is.
func Apply(state *DuelState, action Action) *DuelState {
	if state.Winner != SeatNone {
		return state
	}

	s := state.Clone()

	switch action.Type {
	case ActionNextPhase:
		applyNextPhase(s)
	case ActionDrawCard:
		applyDrawCard(s)
	case ActionSummonMonster:
		applySummonMonster(s, action)
	case ActionChangePosition:
		applyChangePosition(s, action)
	case ActionActivateSpell:
		applyActivateSpell(s, action)
	case ActionAttack:
		applyAttack(s, action)
	}

	// Life totals never go below zero; reaching zero ends the duel. The
	// player2 check runs last, so player1 wins the (currently unreachable)
	// case where both totals hit zero at once.
	if s.Player1.LifePoints < 0 {
		s.Player1.LifePoints = 0
	}
	if s.Player2.LifePoints < 0 {
		s.Player2.LifePoints = 0
	}
	if s.Player1.LifePoints <= 0 {
		s.Winner = Player2
	}
	if s.Player2.LifePoints <= 0 {
		s.Winner = Player1
	}

	return s
}

// applyNextPhase advances along DRAW → MAIN_1 → BATTLE → MAIN_2 → END, then
// wraps to the opponent's DRAW. On turn 1 the battle and second main phases
// are skipped: the first player may not attack. The END wrap flips the seat,
// bumps the turn counter and refreshes the new active player's field.
func applyNextPhase(s *DuelState) {
	if s.Phase == PhaseEnd {
		s.ActiveSeat = s.ActiveSeat.Opponent()
		s.TurnNumber++
		s.Phase = PhaseDraw

		p := s.Active()
		p.HasNormalSummoned = false
		for _, m := range p.MonsterZone {
			if m != nil {
				m.CanAttack = true
				m.HasAttacked = false
			}
		}

		s.logf("--- Turno %d: %s ---", s.TurnNumber, s.ActiveSeat.Label())
		s.logf("%s entrou na fase %s.", s.ActiveSeat.Label(), s.Phase)
		return
	}

	next := s.Phase + 1
	if s.TurnNumber == 1 && next == PhaseBattle {
		next = PhaseEnd
	}
	s.Phase = next
	s.logf("%s entrou na fase %s.", s.ActiveSeat.Label(), s.Phase)
}

// applyDrawCard moves the top card of the active player's deck to their
// hand. An empty deck is logged but is not a loss; either way the turn
// advances to MAIN_1.
func applyDrawCard(s *DuelState) {
	if s.Phase != PhaseDraw {
		return
	}

	p := s.Active()
	if n := len(p.Deck); n > 0 {
		card := p.Deck[n-1]
		p.Deck = p.Deck[:n-1]
		p.Hand = append(p.Hand, card)
		s.logf("%s comprou uma carta.", s.ActiveSeat.Label())
	} else {
		s.logf("%s não tem mais cartas no deck para comprar!", s.ActiveSeat.Label())
	}

	s.Phase = PhaseMain1
	s.logf("%s entrou na fase %s.", s.ActiveSeat.Label(), s.Phase)
}

// applySummonMonster places a monster from hand into an empty zone slot.
// One normal summon per turn.
func applySummonMonster(s *DuelState, a Action) {
	if s.Phase != PhaseMain1 && s.Phase != PhaseMain2 {
		return
	}
	p := s.Active()
	if p.HasNormalSummoned {
		return
	}
	if a.ZoneIndex < 0 || a.ZoneIndex >= ZoneSize || p.MonsterZone[a.ZoneIndex] != nil {
		return
	}
	if a.Position != Attack && a.Position != Defense && a.Position != Facedown {
		return
	}

	idx := handIndex(p.Hand, a.CardID)
	if idx < 0 {
		return
	}
	card := p.Hand[idx]
	if card.Kind != catalog.Monster {
		return
	}

	p.Hand = removeFromHand(p.Hand, idx)
	card.Position = a.Position
	card.CanAttack = true
	card.HasAttacked = false
	p.MonsterZone[a.ZoneIndex] = card
	p.HasNormalSummoned = true

	s.logf("%s invocou %s em modo de %s.", s.ActiveSeat.Label(), card.Name, a.Position.Label())
}

// applyChangePosition flips a fielded monster between positions. There is no
// once-per-turn lock on this.
func applyChangePosition(s *DuelState, a Action) {
	if s.Phase != PhaseMain1 && s.Phase != PhaseMain2 {
		return
	}
	if a.ZoneIndex < 0 || a.ZoneIndex >= ZoneSize {
		return
	}
	if a.Position != Attack && a.Position != Defense && a.Position != Facedown {
		return
	}
	monster := s.Active().MonsterZone[a.ZoneIndex]
	if monster == nil {
		return
	}
	monster.Position = a.Position
	s.logf("%s mudou %s para modo de %s.", s.ActiveSeat.Label(), monster.Name, a.Position.Label())
}

// applyActivateSpell resolves a spell from hand by its effect id, then sends
// the spell to its owner's graveyard.
func applyActivateSpell(s *DuelState, a Action) {
	if s.Phase != PhaseMain1 && s.Phase != PhaseMain2 {
		return
	}
	p := s.Active()

	idx := handIndex(p.Hand, a.CardID)
	if idx < 0 {
		return
	}
	card := p.Hand[idx]
	if card.Kind != catalog.Spell {
		return
	}

	s.logf("%s ativou %s!", s.ActiveSeat.Label(), card.Name)
	resolveSpell(s, card.Effect)

	p.Hand = removeFromHand(p.Hand, idx)
	p.Graveyard = append(p.Graveyard, card)
}

func resolveSpell(s *DuelState, effect catalog.Effect) {
	switch effect {
	case catalog.EffectDestroyAllMonsters:
		for _, seat := range []Seat{Player1, Player2} {
			p := s.Player(seat)
			for i, m := range p.MonsterZone {
				if m != nil {
					p.Graveyard = append(p.Graveyard, m)
					p.MonsterZone[i] = nil
				}
			}
		}
	case catalog.EffectDamageOpponent:
		s.Player(s.ActiveSeat.Opponent()).LifePoints -= damageOpponentAmount
	case catalog.EffectGainLife:
		s.Active().LifePoints += gainLifeAmount
	}
}

// applyAttack resolves one battle-phase attack. A nil target is a direct
// attack, legal only against an empty field. Every resolved attack spends
// the attacker regardless of outcome.
func applyAttack(s *DuelState, a Action) {
	if s.Phase != PhaseBattle {
		return
	}

	attackerSeat := s.ActiveSeat
	defenderSeat := attackerSeat.Opponent()
	ap := s.Player(attackerSeat)
	dp := s.Player(defenderSeat)

	if a.AttackerIndex < 0 || a.AttackerIndex >= ZoneSize {
		return
	}
	attacker := ap.MonsterZone[a.AttackerIndex]
	if attacker == nil || !attacker.CanAttack || attacker.HasAttacked || attacker.Position != Attack {
		return
	}

	if a.TargetIndex == nil {
		for _, m := range dp.MonsterZone {
			if m != nil {
				return
			}
		}
		dp.LifePoints -= attacker.Atk
		attacker.HasAttacked = true
		s.logf("%s ataca diretamente causando %d de dano!", attacker.Name, attacker.Atk)
		return
	}

	ti := *a.TargetIndex
	if ti < 0 || ti >= ZoneSize {
		return
	}
	defender := dp.MonsterZone[ti]
	if defender == nil {
		return
	}

	attacker.HasAttacked = true

	if defender.Position == Attack {
		diff := attacker.Atk - defender.Atk
		switch {
		case diff > 0:
			dp.LifePoints -= diff
			dp.Graveyard = append(dp.Graveyard, defender)
			dp.MonsterZone[ti] = nil
			s.logf("%s destruiu %s. %s recebe %d de dano.", attacker.Name, defender.Name, defenderSeat.Label(), diff)
		case diff < 0:
			ap.LifePoints -= -diff
			ap.Graveyard = append(ap.Graveyard, attacker)
			ap.MonsterZone[a.AttackerIndex] = nil
			s.logf("%s foi destruído por %s. %s recebe %d de dano.", attacker.Name, defender.Name, attackerSeat.Label(), -diff)
		default:
			ap.Graveyard = append(ap.Graveyard, attacker)
			ap.MonsterZone[a.AttackerIndex] = nil
			dp.Graveyard = append(dp.Graveyard, defender)
			dp.MonsterZone[ti] = nil
			s.logf("%s e %s destruíram um ao outro.", attacker.Name, defender.Name)
		}
		return
	}

	// Defense (or facedown) target: compare ATK to DEF. No battle damage to
	// the defender's controller either way.
	diff := attacker.Atk - defender.Def
	switch {
	case diff > 0:
		dp.Graveyard = append(dp.Graveyard, defender)
		dp.MonsterZone[ti] = nil
		s.logf("%s destruiu %s.", attacker.Name, defender.Name)
	case diff < 0:
		ap.LifePoints -= -diff
		s.logf("%s falhou em destruir %s. %s recebe %d de dano.", attacker.Name, defender.Name, attackerSeat.Label(), -diff)
	default:
		s.logf("%s atacou %s mas nenhum foi destruído.", attacker.Name, defender.Name)
	}
}

// handIndex returns the position of the instance id in the hand, or -1.
func handIndex(hand []*CardInstance, instanceID string) int {
	for i, c := range hand {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

func removeFromHand(hand []*CardInstance, idx int) []*CardInstance {
	out := make([]*CardInstance, 0, len(hand)-1)
	out = append(out, hand[:idx]...)
	return append(out, hand[idx+1:]...)
}

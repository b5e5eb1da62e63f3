package duel

import (
	"strings"
	"testing"
)

func TestBuildDeck(t *testing.T) {
	deck := BuildDeck()

	if len(deck) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(deck))
	}
	seen := make(map[string]bool, len(deck))
	for _, c := range deck {
		if c.InstanceID == "" {
			t.Fatal("card without instance id")
		}
		if seen[c.InstanceID] {
			t.Fatalf("duplicate instance id %s", c.InstanceID)
		}
		seen[c.InstanceID] = true
		if c.CardID == "" || c.Name == "" {
			t.Fatalf("card without a template: %+v", c)
		}
	}
}

func TestDecksAreIndependent(t *testing.T) {
	a := BuildDeck()
	b := BuildDeck()
	ids := make(map[string]bool, len(a))
	for _, c := range a {
		ids[c.InstanceID] = true
	}
	for _, c := range b {
		if ids[c.InstanceID] {
			t.Fatalf("instance id %s shared between decks", c.InstanceID)
		}
	}
}

func TestNewDuelState(t *testing.T) {
	s := NewDuelState()

	for _, seat := range []Seat{Player1, Player2} {
		p := s.Player(seat)
		if p.LifePoints != StartingLifePoints {
			t.Errorf("%v: expected %d lp, got %d", seat, StartingLifePoints, p.LifePoints)
		}
		if len(p.Hand) != StartingHandSize {
			t.Errorf("%v: expected hand of %d, got %d", seat, StartingHandSize, len(p.Hand))
		}
		if len(p.Deck) != DeckSize-StartingHandSize {
			t.Errorf("%v: expected deck of %d, got %d", seat, DeckSize-StartingHandSize, len(p.Deck))
		}
		for i := 0; i < ZoneSize; i++ {
			if p.MonsterZone[i] != nil || p.SpellZone[i] != nil {
				t.Errorf("%v: zone slot %d not empty", seat, i)
			}
		}
		if len(p.Graveyard) != 0 {
			t.Errorf("%v: graveyard not empty", seat)
		}
		if p.HasNormalSummoned {
			t.Errorf("%v: hasNormalSummoned set at duel start", seat)
		}
	}

	if s.ActiveSeat != Player1 {
		t.Errorf("expected player1 to start, got %v", s.ActiveSeat)
	}
	if s.Phase != PhaseDraw {
		t.Errorf("expected DRAW, got %v", s.Phase)
	}
	if s.TurnNumber != 1 {
		t.Errorf("expected turn 1, got %d", s.TurnNumber)
	}
	if s.Winner != SeatNone {
		t.Errorf("winner set at duel start: %v", s.Winner)
	}
	if len(s.Log) != 2 {
		t.Fatalf("expected 2 seeded log lines, got %d", len(s.Log))
	}
	if !strings.Contains(s.Log[0], "Duelo começou") {
		t.Errorf("unexpected first log line: %q", s.Log[0])
	}
	if !strings.Contains(s.Log[1], "fase DRAW") {
		t.Errorf("unexpected second log line: %q", s.Log[1])
	}
}

package duel

import (
	"math/rand"

	"github.com/google/uuid"

	"card-duel-server/catalog"
)

// DeckSize is the number of cards in each player's starting deck.
const DeckSize = 40

// StartingHandSize is how many cards are dealt off the deck at duel start.
const StartingHandSize = 5

// BuildDeck returns a fresh deck of DeckSize instances, each drawn uniformly
// (with replacement) from the catalog and stamped with a unique instance id.
// The end of the slice is the top of the deck.
func BuildDeck() []*CardInstance {
	all := catalog.All()
	deck := make([]*CardInstance, 0, DeckSize)
	for i := 0; i < DeckSize; i++ {
		tmpl := all[rand.Intn(len(all))]
		deck = append(deck, &CardInstance{
			Template:   tmpl,
			InstanceID: uuid.NewString(),
		})
	}
	return deck
}

// NewDuelState builds the initial state for a duel: two freshly shuffled
// decks, five-card starting hands, player1 to act in the DRAW phase of
// turn 1.
func NewDuelState() *DuelState {
	s := &DuelState{
		Player1:    newPlayerState(),
		Player2:    newPlayerState(),
		ActiveSeat: Player1,
		Phase:      PhaseDraw,
		TurnNumber: 1,
	}
	s.logf("%s entrou na fase %s.", Player1.Label(), PhaseDraw)
	s.logf("Duelo começou! Turno do %s.", Player1.Label())
	return s
}

func newPlayerState() PlayerState {
	deck := BuildDeck()
	// Deal the starting hand off the top.
	hand := make([]*CardInstance, StartingHandSize)
	for i := 0; i < StartingHandSize; i++ {
		hand[i] = deck[len(deck)-1]
		deck = deck[:len(deck)-1]
	}
	return PlayerState{
		LifePoints: StartingLifePoints,
		Deck:       deck,
		Hand:       hand,
		Graveyard:  []*CardInstance{},
	}
}

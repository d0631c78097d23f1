package deduce

import (
	"testing"

	"github.com/bran/durak/internal/engine"
)

// buildState constructs a minimal 2-player manual-mode state directly (no
// stock left to draw from), so the only candidate location for any hidden
// card is P1 — making the propagation result easy to pin down by hand.
func buildState(p1HandSize int) *engine.State {
	return &engine.State{
		Config:    engine.Config{DeckSize: 36, NumPlayers: 2, Reflecting: true, TrumpReflecting: true},
		TrumpCard: engine.Card{Suit: engine.Spades, Rank: engine.Six},
		TrumpSuit: engine.Spades,
		Stock:     nil,
		Hands: [][]engine.VisCard{
			{
				{Card: engine.Card{Suit: engine.Hearts, Rank: engine.Seven}, Vis: engine.VisPrivate},
				{Card: engine.Card{Suit: engine.Hearts, Rank: engine.Eight}, Vis: engine.VisPrivate},
			},
			make([]engine.VisCard, p1HandSize),
		},
		NegativeKnowledge: []map[engine.Card]bool{{}, {}},
		Viewer:            0,
		Manual:            true,
	}
}

func TestAllCardsDeducibleFalseWithManyUnknownSlots(t *testing.T) {
	// 36-card deck, viewer holds 2 known cards + trump known, leaves 33
	// hidden cards for only 4 opponent slots: infeasible (too few slots),
	// so nothing can be forced and the state is in fact inconsistent —
	// AllCardsDeducible must report false rather than fabricate an
	// assignment.
	s := buildState(4)
	for i := range s.Hands[1] {
		s.Hands[1][i] = engine.VisCard{Vis: engine.VisUnknown}
	}
	if AllCardsDeducible(s) {
		t.Fatal("expected false: far more hidden cards than P1 has slots for")
	}
}

func TestDeduceForcesSoleCandidateHand(t *testing.T) {
	deck, err := engine.NewDeck(36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	known := map[engine.Card]bool{{Suit: engine.Spades, Rank: engine.Six}: true}
	for _, vc := range buildState(0).Hands[0] {
		known[vc.Card] = true
	}
	var hidden []engine.Card
	for _, c := range deck {
		if !known[c] {
			hidden = append(hidden, c)
		}
	}

	s := buildState(len(hidden))
	for i := range s.Hands[1] {
		s.Hands[1][i] = engine.VisCard{Vis: engine.VisUnknown}
	}

	if !AllCardsDeducible(s) {
		t.Fatal("expected all cards deducible: P1's hand size exactly matches the hidden-card count, no other location is possible")
	}

	next, err := DeduceCards(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make(map[engine.Card]bool)
	for _, vc := range next.Hands[1] {
		if vc.Vis != engine.VisPublic {
			t.Errorf("P1 slot not retagged public: %+v", vc)
		}
		got[vc.Card] = true
	}
	for _, c := range hidden {
		if !got[c] {
			t.Errorf("deduced P1 hand missing %s", c)
		}
	}
}

// buildStockCollisionState builds a 52-card-deck state where exactly one
// card is hidden — the Two of Clubs, which is also engine.Card{}'s zero
// value — and its only candidate location is a single unfilled stock
// placeholder slot. Two of Clubs is a legitimate in-play rank at this
// deck size (internal/config's full-deck-4p/six-player-52 presets both
// use it), so a sentinel that can't tell "unfilled" apart from "really is
// the zero-valued card" would misreport this slot as forever hidden.
func buildStockCollisionState(t *testing.T) *engine.State {
	t.Helper()
	deck, err := engine.NewDeck(52)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twoOfClubs := engine.Card{Suit: engine.Clubs, Rank: engine.Two}
	trump := engine.Card{Suit: engine.Clubs, Rank: engine.Ace}

	var discard []engine.Card
	for _, c := range deck {
		if c == twoOfClubs || c == trump {
			continue
		}
		discard = append(discard, c)
	}

	return &engine.State{
		Config:            engine.Config{DeckSize: 52, NumPlayers: 2, Reflecting: true, TrumpReflecting: true},
		TrumpCard:         trump,
		TrumpSuit:         engine.Clubs,
		Discard:           discard,
		Stock:             []engine.Card{trump, {}},
		StockKnown:        []bool{true, false},
		Hands:             [][]engine.VisCard{{}, {}},
		NegativeKnowledge: []map[engine.Card]bool{{}, {}},
		Viewer:            0,
		Manual:            true,
	}
}

func TestDeduceStockZeroValueCardDoesNotCollideWithPlaceholder(t *testing.T) {
	s := buildStockCollisionState(t)
	if !AllCardsDeducible(s) {
		t.Fatal("expected the sole hidden card (Two of Clubs) to be forced into the sole hidden stock slot")
	}

	next, err := DeduceCards(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twoOfClubs := engine.Card{Suit: engine.Clubs, Rank: engine.Two}
	if next.Stock[1] != twoOfClubs {
		t.Fatalf("Stock[1] = %s, want %s", next.Stock[1], twoOfClubs)
	}
	if !next.StockKnown[1] {
		t.Fatal("expected StockKnown[1] to flip true once Two of Clubs is deduced into it")
	}

	// Idempotence: once the slot genuinely holds the zero-valued Two of
	// Clubs, a second DeduceCards pass must not treat it as hidden again.
	again, err := DeduceCards(next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Stock[1] != twoOfClubs || !again.StockKnown[1] {
		t.Errorf("second DeduceCards pass changed a settled slot: %+v", again.Stock[1])
	}
}

func TestDeduceIdempotent(t *testing.T) {
	deck, _ := engine.NewDeck(36)
	known := map[engine.Card]bool{{Suit: engine.Spades, Rank: engine.Six}: true}
	for _, vc := range buildState(0).Hands[0] {
		known[vc.Card] = true
	}
	var hiddenCount int
	for _, c := range deck {
		if !known[c] {
			hiddenCount++
		}
	}

	s := buildState(hiddenCount)
	for i := range s.Hands[1] {
		s.Hands[1][i] = engine.VisCard{Vis: engine.VisUnknown}
	}

	once, err := DeduceCards(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := DeduceCards(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range once.Hands[1] {
		if once.Hands[1][i] != twice.Hands[1][i] {
			t.Errorf("deduce_cards is not idempotent at P1[%d]: %+v != %+v", i, once.Hands[1][i], twice.Hands[1][i])
		}
	}
}

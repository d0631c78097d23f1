package determinize

import (
	"math/rand"
	"testing"

	"github.com/bran/durak/internal/engine"
)

func buildManualState(t *testing.T) *engine.State {
	t.Helper()
	cfg := engine.Config{DeckSize: 36, NumPlayers: 2, Reflecting: true, TrumpReflecting: true}
	setup := engine.ManualSetup{
		TrumpCard: engine.Card{Suit: engine.Spades, Rank: engine.Six},
		PlayerHand: [6]engine.Card{
			{Suit: engine.Hearts, Rank: engine.Seven}, {Suit: engine.Hearts, Rank: engine.Eight},
			{Suit: engine.Clubs, Rank: engine.Nine}, {Suit: engine.Diamonds, Rank: engine.Ten},
			{Suit: engine.Spades, Rank: engine.Jack}, {Suit: engine.Hearts, Rank: engine.Ace},
		},
		StartingPlayer: 0,
		OpponentTrumps: []engine.OpponentTrump{{Player: 1, Rank: engine.Seven}},
	}
	s, err := engine.NewManualGame(setup, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// P1's lowest trump is known to be 7S: record the negative
	// constraint that they hold no lower trump.
	for _, r := range []engine.Rank{engine.Six} {
		s.NegativeKnowledge[1][engine.Card{Suit: engine.Spades, Rank: r}] = true
	}
	return s
}

func TestDeterminizeRespectsKnownTrumpAndNegativeKnowledge(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s := buildManualState(t)
		rng := rand.New(rand.NewSource(seed))
		out, err := Determinize(s, 0, rng)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}

		found7S := false
		for _, vc := range out.Hands[1] {
			if vc.Card == (engine.Card{Suit: engine.Spades, Rank: engine.Seven}) {
				found7S = true
			}
			if vc.Card.Suit == engine.Spades && vc.Card.Rank < engine.Seven {
				t.Errorf("seed %d: P1 was dealt a spade below 7S: %s", seed, vc.Card)
			}
		}
		if !found7S {
			t.Errorf("seed %d: P1 should always hold 7S", seed)
		}

		seen := make(map[engine.Card]bool)
		total := 0
		for _, h := range out.Hands {
			for _, vc := range h {
				if seen[vc.Card] {
					t.Errorf("seed %d: duplicate card %s across hands", seed, vc.Card)
				}
				seen[vc.Card] = true
				total++
			}
		}
		for _, c := range out.Stock {
			if seen[c] {
				t.Errorf("seed %d: duplicate card %s between hand and stock", seed, c)
			}
			seen[c] = true
			total++
		}
		if total != out.Config.DeckSize {
			t.Errorf("seed %d: total cards = %d, want %d", seed, total, out.Config.DeckSize)
		}
		if out.Stock[0] != out.TrumpCard {
			t.Errorf("seed %d: stock[0] = %s, want trump card %s", seed, out.Stock[0], out.TrumpCard)
		}
	}
}

package rule_based

import (
	"testing"

	"github.com/bran/durak/internal/engine"
)

func TestOpenAttackPrefersLowestNonTrump(t *testing.T) {
	hand := []engine.Card{
		{Suit: engine.Spades, Rank: engine.Ten}, // trump
		{Suit: engine.Hearts, Rank: engine.Six},
		{Suit: engine.Clubs, Rank: engine.Queen},
	}
	legal := []engine.Action{
		engine.AttackAction{Actor: 0, Card: hand[0]},
		engine.AttackAction{Actor: 0, Card: hand[1]},
		engine.AttackAction{Actor: 0, Card: hand[2]},
	}

	s := NewAttackStrategy(0)
	got := s.Select(legal, hand, engine.Spades)
	attack, ok := got.(engine.AttackAction)
	if !ok {
		t.Fatalf("expected AttackAction, got %T", got)
	}
	want := engine.Card{Suit: engine.Hearts, Rank: engine.Six}
	if attack.Card != want {
		t.Errorf("opened with %s, want lowest non-trump %s", attack.Card, want)
	}
}

func TestOpenAttackFallsBackToTrumpWhenHandIsAllTrump(t *testing.T) {
	hand := []engine.Card{
		{Suit: engine.Spades, Rank: engine.Ten},
		{Suit: engine.Spades, Rank: engine.Six},
	}
	legal := []engine.Action{
		engine.AttackAction{Actor: 0, Card: hand[0]},
		engine.AttackAction{Actor: 0, Card: hand[1]},
	}

	s := NewAttackStrategy(0)
	got := s.Select(legal, hand, engine.Spades)
	attack := got.(engine.AttackAction)
	want := engine.Card{Suit: engine.Spades, Rank: engine.Six}
	if attack.Card != want {
		t.Errorf("opened with %s, want lowest trump %s", attack.Card, want)
	}
}

func TestHardAIRefusesToThrowInTrumpOnly(t *testing.T) {
	hand := []engine.Card{{Suit: engine.Spades, Rank: engine.Six}}
	legal := []engine.Action{
		engine.ThrowAction{Actor: 0, Card: hand[0]},
		engine.PassAttackAction{Actor: 0},
	}

	s := NewAttackStrategy(1) // hard
	got := s.Select(legal, hand, engine.Spades)
	if _, ok := got.(engine.PassAttackAction); !ok {
		t.Errorf("hard AI should pass rather than throw its only trump, got %T", got)
	}
}

func TestEasyAIAlwaysThrowsInWhenPossible(t *testing.T) {
	hand := []engine.Card{{Suit: engine.Spades, Rank: engine.Six}}
	legal := []engine.Action{
		engine.ThrowAction{Actor: 0, Card: hand[0]},
		engine.PassAttackAction{Actor: 0},
	}

	s := NewAttackStrategy(-1) // easy
	got := s.Select(legal, hand, engine.Spades)
	if _, ok := got.(engine.ThrowAction); !ok {
		t.Errorf("easy AI should throw in eagerly, got %T", got)
	}
}

package rule_based

import (
	"testing"

	"github.com/bran/durak/internal/engine"
)

func TestDefendPrefersCheapestBeater(t *testing.T) {
	pile := engine.Card{Suit: engine.Hearts, Rank: engine.Eight}
	hand := []engine.Card{
		{Suit: engine.Hearts, Rank: engine.Ten},
		{Suit: engine.Hearts, Rank: engine.Nine},
	}
	table := []engine.Pile{{Attack: pile}}
	legal := []engine.Action{
		engine.DefendAction{Actor: 1, Pile: 0, Card: hand[0]},
		engine.DefendAction{Actor: 1, Pile: 0, Card: hand[1]},
		engine.TakeAction{Actor: 1},
	}

	d := NewDefenseStrategy(0)
	got := d.Select(legal, hand, table, engine.Spades)
	defend, ok := got.(engine.DefendAction)
	if !ok {
		t.Fatalf("expected DefendAction, got %T", got)
	}
	want := engine.Card{Suit: engine.Hearts, Rank: engine.Nine}
	if defend.Card != want {
		t.Errorf("defended with %s, want cheapest beater %s", defend.Card, want)
	}
}

func TestDefendTakesWhenOnlyBeaterIsLastTrump(t *testing.T) {
	pile := engine.Card{Suit: engine.Hearts, Rank: engine.Ace}
	hand := []engine.Card{{Suit: engine.Spades, Rank: engine.Six}} // sole trump
	table := []engine.Pile{{Attack: pile}}
	legal := []engine.Action{
		engine.DefendAction{Actor: 1, Pile: 0, Card: hand[0]},
		engine.TakeAction{Actor: 1},
	}

	d := NewDefenseStrategy(0)
	got := d.Select(legal, hand, table, engine.Spades)
	if _, ok := got.(engine.TakeAction); !ok {
		t.Errorf("expected Take to preserve the last trump, got %T", got)
	}
}

func TestDefendTakesWhenCannotCoverEveryPile(t *testing.T) {
	table := []engine.Pile{
		{Attack: engine.Card{Suit: engine.Hearts, Rank: engine.Eight}},
		{Attack: engine.Card{Suit: engine.Clubs, Rank: engine.Eight}},
	}
	hand := []engine.Card{{Suit: engine.Hearts, Rank: engine.Nine}}
	legal := []engine.Action{
		engine.DefendAction{Actor: 1, Pile: 0, Card: hand[0]},
		engine.TakeAction{Actor: 1},
	}

	d := NewDefenseStrategy(0)
	got := d.Select(legal, hand, table, engine.Spades)
	if _, ok := got.(engine.TakeAction); !ok {
		t.Errorf("expected Take when one undefended pile has no beater, got %T", got)
	}
}

package engine

import "testing"

// newTestState builds a minimal, directly-constructed numPlayers-seat state so
// each scenario can pin down exactly the table/hand/phase it needs without
// going through a full deal.
func newTestState(numPlayers int, defender PlayerID, attackers []PlayerID, trump Suit, phase Phase) *State {
	hands := make([][]VisCard, numPlayers)
	neg := make([]map[Card]bool, numPlayers)
	for i := range hands {
		neg[i] = make(map[Card]bool)
	}
	return &State{
		Config:             Config{DeckSize: 36, NumPlayers: numPlayers, Reflecting: true, TrumpReflecting: true},
		TrumpSuit:          trump,
		Hands:              hands,
		Phase:              phase,
		Attackers:          attackers,
		CurrentAttackerIdx: 0,
		Defender:           defender,
		TrumpReflectBudget: make(map[Rank]bool),
		NegativeKnowledge:  neg,
		Stock:              []Card{{trump, Six}}, // non-empty so IsOver doesn't trip mid-scenario
	}
}

func containsAction(actions []Action, want Action) bool {
	for _, a := range actions {
		if actionsEqual(a, want) {
			return true
		}
	}
	return false
}

// Scenario 2: simple beat.
func TestScenarioSimpleBeat(t *testing.T) {
	s := newTestState(2, 0, []PlayerID{1}, Spades, PhaseDefending)
	s.Table = []Pile{{Attack: Card{Hearts, Seven}}}
	s.Hands[0] = []VisCard{{Card: Card{Hearts, Eight}, Vis: VisPrivate}, {Card: Card{Clubs, Two}, Vis: VisPrivate}}

	legal := LegalActions(s)
	if !containsAction(legal, DefendAction{Actor: 0, Pile: 0, Card: Card{Hearts, Eight}}) {
		t.Errorf("expected Defend(0, 8H) to be legal, got %v", legal)
	}
	if !containsAction(legal, TakeAction{Actor: 0}) {
		t.Errorf("expected Take to be legal, got %v", legal)
	}
	if len(legal) != 2 {
		t.Errorf("expected exactly 2 legal actions, got %d: %v", len(legal), legal)
	}

	next, err := Apply(s, DefendAction{Actor: 0, Pile: 0, Card: Card{Hearts, Eight}})
	if err != nil {
		t.Fatalf("Apply(Defend) unexpected error: %v", err)
	}
	if next.Phase != PhaseThrowing {
		t.Errorf("phase = %s, want Throwing", next.Phase)
	}
	if next.Table[0].Defense == nil || *next.Table[0].Defense != (Card{Hearts, Eight}) {
		t.Errorf("table[0].Defense = %v, want 8H", next.Table[0].Defense)
	}
	if next.Attackers[next.CurrentAttackerIdx] != 1 {
		t.Errorf("current attacker = %s, want P1", next.Attackers[next.CurrentAttackerIdx])
	}
}

// Scenario 3: rank-reflect and trump-reflect.
func TestScenarioRankReflect(t *testing.T) {
	s := newTestState(2, 0, []PlayerID{1}, Spades, PhaseDefending)
	s.Table = []Pile{{Attack: Card{Diamonds, Nine}}}
	s.Hands[0] = []VisCard{{Card: Card{Clubs, Nine}, Vis: VisPrivate}, {Card: Card{Spades, Nine}, Vis: VisPrivate}}

	legal := LegalActions(s)
	if !containsAction(legal, ReflectAction{Actor: 0, Card: Card{Clubs, Nine}}) {
		t.Errorf("expected Reflect(9C) to be legal, got %v", legal)
	}
	if !containsAction(legal, ShowTrumpAction{Actor: 0, Card: Card{Spades, Nine}}) {
		t.Errorf("expected ShowTrump(9S) to be legal, got %v", legal)
	}
	if containsAction(legal, ReflectAction{Actor: 0, Card: Card{Spades, Nine}}) {
		t.Errorf("Reflect with a trump card must not be legal (use ShowTrump instead)")
	}

	next, err := Apply(s, ReflectAction{Actor: 0, Card: Card{Clubs, Nine}})
	if err != nil {
		t.Fatalf("Apply(Reflect) unexpected error: %v", err)
	}
	if next.Defender != 1 {
		t.Errorf("defender after reflect = %s, want P1", next.Defender)
	}
	if len(next.Table) != 2 || next.Table[1].Attack != (Card{Clubs, Nine}) {
		t.Errorf("table after reflect = %v, want two piles ending in 9C", next.Table)
	}
	if next.Attackers[len(next.Attackers)-1] != 0 {
		t.Errorf("former defender P0 should join the attacker rotation, got %v", next.Attackers)
	}
}

// Scenario 4: throw cap.
func TestScenarioThrowCap(t *testing.T) {
	s := newTestState(2, 0, []PlayerID{1}, Spades, PhaseThrowing)
	s.TrickNumber = 0 // first trick of the game, cap 5
	for i := 0; i < 6; i++ {
		s.Table = append(s.Table, Pile{Attack: Card{Clubs, Rank(i)}, Defense: nil})
	}
	s.Hands[0] = []VisCard{{Card: Card{Clubs, Seven}, Vis: VisPrivate}}
	s.Hands[1] = []VisCard{{Card: Card{Clubs, Eight}, Vis: VisPrivate}}

	legal := LegalActions(s)
	for _, a := range legal {
		if a.Kind() == KindThrow {
			t.Errorf("Throw must never be legal once the trick cap is reached, got %v", a)
		}
	}
	if !containsAction(legal, PassAttackAction{Actor: 1}) {
		t.Errorf("PassAttack should remain legal, got %v", legal)
	}
}

// Scenario 5: take with public retag.
func TestScenarioTakePublicRetag(t *testing.T) {
	s := newTestState(3, 1, []PlayerID{0, 2}, Spades, PhaseDefending)
	qh := Card{Hearts, Queen}
	s.Table = []Pile{
		{Attack: Card{Hearts, King}},
		{Attack: Card{Spades, Queen}, Defense: &qh},
	}
	s.Hands[1] = []VisCard{{Card: Card{Clubs, Two}, Vis: VisPrivate}}
	s.Hands[0] = []VisCard{{Card: Card{Diamonds, Three}, Vis: VisPrivate}}
	s.Hands[2] = []VisCard{{Card: Card{Diamonds, Four}, Vis: VisPrivate}}
	before := len(s.Hands[1])

	next, err := Apply(s, TakeAction{Actor: 1})
	if err != nil {
		t.Fatalf("Apply(Take) unexpected error: %v", err)
	}
	if len(next.Hands[1]) != before+3 {
		t.Errorf("defender hand size = %d, want %d", len(next.Hands[1]), before+3)
	}
	for _, vc := range next.Hands[1] {
		if vc.Card == (Card{Hearts, King}) || vc.Card == (Card{Spades, Queen}) || vc.Card == qh {
			if vc.Vis != VisPublic {
				t.Errorf("taken card %s should be tagged public, got %s", vc.Card, vc.Vis)
			}
		}
	}
	if len(next.Table) != 0 {
		t.Errorf("table should be empty after take, got %v", next.Table)
	}
	if len(next.Discard) != 0 {
		t.Errorf("discard should be untouched by a take, got %v", next.Discard)
	}
	// Per §4.1: "skip them and the next clockwise player attacks" — one
	// seat clockwise from the taker (P1), i.e. P2.
	if next.Attackers[0] != 2 {
		t.Errorf("next main attacker = %s, want P2 (one seat clockwise from the taker)", next.Attackers[0])
	}
}

func TestApplyRejectsIllegalAction(t *testing.T) {
	s := newTestState(2, 0, []PlayerID{1}, Spades, PhaseDefending)
	s.Table = []Pile{{Attack: Card{Hearts, Seven}}}
	s.Hands[0] = []VisCard{{Card: Card{Clubs, Two}, Vis: VisPrivate}}

	_, err := Apply(s, DefendAction{Actor: 0, Pile: 0, Card: Card{Clubs, Two}})
	if err == nil {
		t.Fatal("expected IllegalActionError, got nil")
	}
	if _, ok := err.(IllegalActionError); !ok {
		t.Errorf("error type = %T, want IllegalActionError", err)
	}
}

package rule_based

import "github.com/bran/durak/internal/engine"

// AttackStrategy handles attacking/throwing-in decisions.
type AttackStrategy struct {
	aggression int // -1 easy (throws in eagerly), 0 medium, 1 hard (holds back)
}

// NewAttackStrategy creates a new attack strategy.
func NewAttackStrategy(aggression int) *AttackStrategy {
	return &AttackStrategy{aggression: aggression}
}

// Select chooses the attacking action: open a trick with the lowest
// non-trump card, throw in another matching rank when the hand can spare
// it, or pass once throwing in further would cost too much.
func (s *AttackStrategy) Select(legal []engine.Action, hand []engine.Card, trump engine.Suit) engine.Action {
	attacks := attackActions(legal)
	throws := throwActions(legal)
	pass, hasPass := findPassAttack(legal)

	if len(attacks) > 0 {
		return s.openAttack(attacks, hand, trump)
	}

	if len(throws) == 0 {
		if hasPass {
			return pass
		}
		return legal[0]
	}

	if s.shouldThrowIn(throws, hand, trump) {
		return cheapestThrow(throws, trump)
	}
	if hasPass {
		return pass
	}
	return cheapestThrow(throws, trump)
}

// openAttack leads with the lowest non-trump card, preserving trumps for
// defense; if the hand holds only trumps, it leads the lowest of those.
func (s *AttackStrategy) openAttack(attacks []engine.AttackAction, hand []engine.Card, trump engine.Suit) engine.Action {
	_, offSuit := splitByTrump(cardsFromAttacks(attacks), trump)
	pick := func(options []engine.Card) engine.Card { return lowestCard(options, trump) }
	var chosen engine.Card
	if len(offSuit) > 0 {
		chosen = pick(offSuit)
	} else {
		chosen = pick(cardsFromAttacks(attacks))
	}
	for _, a := range attacks {
		if a.Card == chosen {
			return a
		}
	}
	return attacks[0]
}

// shouldThrowIn decides whether spending another card on this trick is
// worth it: easy AI always does; medium and hard AI throw in whenever the
// cheapest option is a non-trump; when every option is a trump, medium AI
// still throws one in and hard AI passes.
func (s *AttackStrategy) shouldThrowIn(throws []engine.ThrowAction, hand []engine.Card, trump engine.Suit) bool {
	if s.aggression <= -1 {
		return true
	}
	cheapest := cheapestThrowCard(throws, trump)
	if cheapest.Suit != trump {
		return true
	}
	// Every throwable option is trump; hard AI refuses to spend it.
	return s.aggression <= 0
}

func attackActions(legal []engine.Action) []engine.AttackAction {
	var out []engine.AttackAction
	for _, a := range legal {
		if at, ok := a.(engine.AttackAction); ok {
			out = append(out, at)
		}
	}
	return out
}

func throwActions(legal []engine.Action) []engine.ThrowAction {
	var out []engine.ThrowAction
	for _, a := range legal {
		if t, ok := a.(engine.ThrowAction); ok {
			out = append(out, t)
		}
	}
	return out
}

func findPassAttack(legal []engine.Action) (engine.Action, bool) {
	for _, a := range legal {
		if _, ok := a.(engine.PassAttackAction); ok {
			return a, true
		}
	}
	return nil, false
}

func cardsFromAttacks(attacks []engine.AttackAction) []engine.Card {
	out := make([]engine.Card, len(attacks))
	for i, a := range attacks {
		out[i] = a.Card
	}
	return out
}

func cheapestThrow(throws []engine.ThrowAction, trump engine.Suit) engine.Action {
	best := throws[0]
	bestValue := cardValue(best.Card, trump)
	for _, t := range throws[1:] {
		if v := cardValue(t.Card, trump); v < bestValue {
			best, bestValue = t, v
		}
	}
	return best
}

func cheapestThrowCard(throws []engine.ThrowAction, trump engine.Suit) engine.Card {
	t, _ := cheapestThrow(throws, trump).(engine.ThrowAction)
	return t.Card
}

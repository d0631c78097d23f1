package rule_based

import "github.com/bran/durak/internal/engine"

// DefenseStrategy handles defending decisions: beat every undefended pile
// as cheaply as possible, or decide the hand is better off taking instead.
type DefenseStrategy struct {
	aggression int // -1 easy, 0 medium, 1 hard
}

// NewDefenseStrategy creates a new defense strategy.
func NewDefenseStrategy(aggression int) *DefenseStrategy {
	return &DefenseStrategy{aggression: aggression}
}

// Select picks the defending action: beat every undefended pile with the
// cheapest card that covers it if that leaves the hand in reasonable
// shape, reflect the attack onward when that is clearly better, or take.
func (e *DefenseStrategy) Select(legal []engine.Action, hand []engine.Card, table []engine.Pile, trump engine.Suit) engine.Action {
	defends := defendActions(legal)
	takeAction, hasTake := findTake(legal)

	// If reflecting is both legal and the hand is weak in trumps, pushing
	// the attack onward is usually better than spending a defense card.
	if reflect, ok := findReflect(legal); ok {
		if trumpCount(hand, trump) <= 1 && e.aggression <= 0 {
			return reflect
		}
	}

	undefended := undefendedRanks(table)
	if len(defends) < len(undefended) {
		// Cannot cover every pile; take rather than leave one hanging.
		if hasTake {
			return takeAction
		}
	}

	if len(defends) == 0 {
		if hasTake {
			return takeAction
		}
		if showTrump, ok := findShowTrump(legal); ok {
			return showTrump
		}
	}

	// Defend with the cheapest beater available, but bail to Take if the
	// only beater left would be this hand's last trump (better to give up
	// the trick than burn it).
	analysis := analyzeHand(hand, trump)
	if analysis.trumpCount == 1 && onlyTrumpBeaters(defends, trump) && e.aggression >= 0 && hasTake {
		return takeAction
	}

	return cheapestDefend(defends, trump)
}

// cheapestDefend returns the lowest-value defend among options.
func cheapestDefend(defends []engine.DefendAction, trump engine.Suit) engine.Action {
	best := defends[0]
	bestValue := cardValue(best.Card, trump)
	for _, d := range defends[1:] {
		if v := cardValue(d.Card, trump); v < bestValue {
			best, bestValue = d, v
		}
	}
	return best
}

func defendActions(legal []engine.Action) []engine.DefendAction {
	var out []engine.DefendAction
	for _, a := range legal {
		if d, ok := a.(engine.DefendAction); ok {
			out = append(out, d)
		}
	}
	return out
}

func findTake(legal []engine.Action) (engine.Action, bool) {
	for _, a := range legal {
		if _, ok := a.(engine.TakeAction); ok {
			return a, true
		}
	}
	return nil, false
}

func findReflect(legal []engine.Action) (engine.Action, bool) {
	for _, a := range legal {
		if _, ok := a.(engine.ReflectAction); ok {
			return a, true
		}
	}
	return nil, false
}

func findShowTrump(legal []engine.Action) (engine.Action, bool) {
	for _, a := range legal {
		if _, ok := a.(engine.ShowTrumpAction); ok {
			return a, true
		}
	}
	return nil, false
}

func undefendedRanks(table []engine.Pile) []engine.Rank {
	var out []engine.Rank
	for _, p := range table {
		if p.Undefended() {
			out = append(out, p.Attack.Rank)
		}
	}
	return out
}

func trumpCount(hand []engine.Card, trump engine.Suit) int {
	n := 0
	for _, c := range hand {
		if c.Suit == trump {
			n++
		}
	}
	return n
}

// onlyTrumpBeaters reports whether every defend option plays a trump.
func onlyTrumpBeaters(defends []engine.DefendAction, trump engine.Suit) bool {
	for _, d := range defends {
		if d.Card.Suit != trump {
			return false
		}
	}
	return len(defends) > 0
}

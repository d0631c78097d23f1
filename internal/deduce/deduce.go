// Package deduce implements spec.md §4.2's negative-knowledge propagation
// and the "all cards deducible" unit-propagation test over the set of
// cards whose holder is not yet publicly known.
package deduce

import (
	"github.com/bran/durak/internal/engine"
)

// location names a candidate holder for an as-yet-unassigned card: either
// a specific opponent's hand or the stock (cards still to be drawn).
type location struct {
	player engine.PlayerID
	stock  bool
}

// AllCardsDeducible reports whether every card whose holder is not
// publicly known can be pinned to a single remaining candidate location by
// iterated unit propagation over the negative-knowledge constraints.
func AllCardsDeducible(s *engine.State) bool {
	_, ok := solve(s)
	return ok
}

// DeduceCards returns a new state in which every forced card (whether or
// not the whole state is all-deducible) has been retagged public, filling
// in previously-unfilled manual-mode slots. It is the identity if nothing
// is newly deducible.
func DeduceCards(s *engine.State) (*engine.State, error) {
	assignment, _ := solve(s)
	if len(assignment) == 0 {
		return s.Clone(), nil
	}
	next := s.Clone()
	for card, loc := range assignment {
		if loc.stock {
			applyToStock(next, card)
			continue
		}
		applyToHand(next, loc.player, card)
	}
	return next, nil
}

// solve runs the unit-propagation fixpoint and returns the forced
// card->location assignment it could derive, plus whether every
// not-yet-public card was resolved (the all-deducible condition).
func solve(s *engine.State) (map[engine.Card]location, bool) {
	universe, known := hiddenUniverse(s)
	capacity := make(map[location]int)
	var locations []location
	for p := 0; p < s.NumPlayers(); p++ {
		if engine.PlayerID(p) == s.Viewer {
			continue
		}
		n := hiddenHandCount(s, engine.PlayerID(p))
		if n == 0 {
			continue
		}
		loc := location{player: engine.PlayerID(p)}
		capacity[loc] = n
		locations = append(locations, loc)
	}
	if n := hiddenStockCount(s); n > 0 {
		loc := location{stock: true}
		capacity[loc] = n
		locations = append(locations, loc)
	}

	candidates := make(map[engine.Card]map[location]bool, len(universe))
	for _, c := range universe {
		if known[c] {
			continue
		}
		set := make(map[location]bool)
		for _, loc := range locations {
			if loc.stock {
				set[loc] = true
				continue
			}
			if s.NegativeKnowledge[loc.player][c] {
				continue
			}
			set[loc] = true
		}
		candidates[c] = set
	}

	assignment := make(map[engine.Card]location)
	for {
		progress := false
		for c, set := range candidates {
			if _, done := assignment[c]; done {
				continue
			}
			if len(set) != 1 {
				continue
			}
			var only location
			for loc := range set {
				only = loc
			}
			if capacity[only] <= 0 {
				continue
			}
			assignment[c] = only
			capacity[only]--
			progress = true
			if capacity[only] == 0 {
				for other, oset := range candidates {
					if other == c {
						continue
					}
					delete(oset, only)
				}
			}
		}
		if !progress {
			break
		}
	}

	for c := range candidates {
		if _, done := assignment[c]; !done {
			return assignment, false
		}
	}
	return assignment, true
}

// hiddenUniverse returns the full deck plus the set of cards already
// known with certainty (to the viewer): everything public, and every card
// in the viewer's own hand regardless of tag.
func hiddenUniverse(s *engine.State) ([]engine.Card, map[engine.Card]bool) {
	deck, _ := engine.NewDeck(s.Config.DeckSize)
	known := make(map[engine.Card]bool)
	for _, p := range s.Table {
		known[p.Attack] = true
		if p.Defense != nil {
			known[*p.Defense] = true
		}
	}
	for _, c := range s.Discard {
		known[c] = true
	}
	known[s.TrumpCard] = true
	for p, hand := range s.Hands {
		for _, vc := range hand {
			if vc.Vis == engine.VisPublic {
				known[vc.Card] = true
				continue
			}
			if engine.PlayerID(p) == s.Viewer {
				known[vc.Card] = true
			}
		}
	}
	for i := 1; i < len(s.Stock); i++ {
		// A StockKnown slot has already been dealt (computer games) or
		// already deduced (a prior DeduceCards pass); either way its
		// identity is settled and it drops out of the universe still
		// being solved for. Checking the Card against the zero value
		// would be wrong: the zero Card (Two of Clubs) is a real,
		// legitimate card in the 52-card deck.
		if s.StockKnown[i] {
			known[s.Stock[i]] = true
		}
	}
	return deck, known
}

func hiddenHandCount(s *engine.State, p engine.PlayerID) int {
	n := 0
	for _, vc := range s.Hands[p] {
		if vc.Vis != engine.VisPublic {
			n++
		}
	}
	return n
}

func hiddenStockCount(s *engine.State) int {
	if len(s.Stock) == 0 {
		return 0
	}
	n := 0
	for i := 1; i < len(s.Stock); i++ { // stock[0] is always the known, face-up trump card
		if !s.StockKnown[i] {
			n++
		}
	}
	return n
}

func applyToHand(s *engine.State, p engine.PlayerID, card engine.Card) {
	// Computer-dealt games already hold the concrete card in a private
	// slot; a deducible slot is simply the one that already matches.
	for i, vc := range s.Hands[p] {
		if vc.Vis != engine.VisPublic && vc.Card == card {
			s.Hands[p][i] = engine.VisCard{Card: card, Vis: engine.VisPublic}
			return
		}
	}
	// Manual-mode slots are unfilled placeholders (Vis == VisUnknown)
	// until deduced; Vis, not the Card field, is what marks a slot
	// unfilled, since the zero Card is itself a legitimate card.
	for i, vc := range s.Hands[p] {
		if vc.Vis == engine.VisUnknown {
			s.Hands[p][i] = engine.VisCard{Card: card, Vis: engine.VisPublic}
			return
		}
	}
}

func applyToStock(s *engine.State, card engine.Card) {
	for i := 1; i < len(s.Stock); i++ {
		if s.StockKnown[i] && s.Stock[i] == card {
			return
		}
		if !s.StockKnown[i] {
			s.Stock[i] = card
			s.StockKnown[i] = true
			return
		}
	}
}

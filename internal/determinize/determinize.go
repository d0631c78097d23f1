// Package determinize implements spec.md §4.3: given a state viewed by a
// specific root player, sample a complete, concrete deal consistent with
// everything publicly known, the root's own hand, and every player's
// recorded negative-knowledge constraints.
package determinize

import (
	"math/rand"

	"github.com/bran/durak/internal/engine"
)

// maxAttemptsPerSlot bounds the rejection-sampling retries before a slot
// is declared infeasible; this is a rejection sampler, not a full
// backtracking constraint solver, so a pathologically constrained (but
// technically satisfiable) negative-knowledge set could in principle be
// misreported as infeasible — acceptable here since InfeasibleDeterminization
// is explicitly a per-sample, non-fatal outcome at the aggregator (spec.md §7).
const maxAttemptsPerSlot = 200

// Determinize returns a new state, identical to s in every publicly known
// respect, with every card hidden from root concretely (re)assigned by
// uniform sampling without replacement from the pool of cards consistent
// with root's own hand, the public facts, and the negative-knowledge
// constraints. The stock order is randomized subject to the trump card
// staying at the bottom.
func Determinize(s *engine.State, root engine.PlayerID, rng *rand.Rand) (*engine.State, error) {
	next := s.Clone()
	next.Viewer = root

	pool, err := buildPool(next, root)
	if err != nil {
		return nil, err
	}

	for p := 0; p < next.NumPlayers(); p++ {
		if engine.PlayerID(p) == root {
			continue
		}
		for i, vc := range next.Hands[p] {
			if vc.Vis == engine.VisPublic || engine.PlayerID(p) == root {
				continue
			}
			card, rest, err := drawConsistent(pool, next.NegativeKnowledge[engine.PlayerID(p)], rng)
			if err != nil {
				return nil, err
			}
			pool = rest
			next.Hands[p][i] = engine.VisCard{Card: card, Vis: vc.Vis}
		}
	}

	// Whatever remains in the pool restocks the stock, in random order,
	// below the fixed trump card at index 0.
	shuffled := append([]engine.Card(nil), pool...)
	engine.Shuffle(shuffled, rng)
	newStock := make([]engine.Card, len(next.Stock))
	if len(newStock) > 0 {
		newStock[0] = next.TrumpCard
	}
	for i := 1; i < len(newStock); i++ {
		if i-1 < len(shuffled) {
			newStock[i] = shuffled[i-1]
		}
	}
	next.Stock = newStock
	stockKnown := make([]bool, len(newStock))
	for i := range stockKnown {
		stockKnown[i] = true
	}
	next.StockKnown = stockKnown
	return next, nil
}

// buildPool returns every card not already pinned down: not on the table,
// not in discard, not the trump card, not in root's own hand, and not any
// VisPublic card sitting in another hand.
func buildPool(s *engine.State, root engine.PlayerID) ([]engine.Card, error) {
	deck, err := engine.NewDeck(s.Config.DeckSize)
	if err != nil {
		return nil, err
	}
	pinned := make(map[engine.Card]bool)
	for _, p := range s.Table {
		pinned[p.Attack] = true
		if p.Defense != nil {
			pinned[*p.Defense] = true
		}
	}
	for _, c := range s.Discard {
		pinned[c] = true
	}
	pinned[s.TrumpCard] = true
	for p, hand := range s.Hands {
		for _, vc := range hand {
			if engine.PlayerID(p) == root || vc.Vis == engine.VisPublic {
				pinned[vc.Card] = true
			}
		}
	}

	var pool []engine.Card
	for _, c := range deck {
		if !pinned[c] {
			pool = append(pool, c)
		}
	}
	return pool, nil
}

// drawConsistent removes and returns one card from pool that is not
// forbidden by neg, chosen uniformly among the cards actually tried
// (rejection sampling with bounded retries — see maxAttemptsPerSlot).
func drawConsistent(pool []engine.Card, neg map[engine.Card]bool, rng *rand.Rand) (engine.Card, []engine.Card, error) {
	if len(pool) == 0 {
		return engine.Card{}, pool, engine.InfeasibleDeterminizationError{Reason: "no cards remain in the sampling pool"}
	}
	for attempt := 0; attempt < maxAttemptsPerSlot; attempt++ {
		idx := rng.Intn(len(pool))
		if neg[pool[idx]] {
			continue
		}
		card := pool[idx]
		rest := append(append([]engine.Card(nil), pool[:idx]...), pool[idx+1:]...)
		return card, rest, nil
	}
	// Every remaining pool card may still be forbidden; fall back to an
	// exhaustive scan before declaring infeasibility, so a merely
	// unlucky run of rejections isn't mistaken for a truly infeasible
	// constraint system.
	for idx, c := range pool {
		if !neg[c] {
			rest := append(append([]engine.Card(nil), pool[:idx]...), pool[idx+1:]...)
			return c, rest, nil
		}
	}
	return engine.Card{}, pool, engine.InfeasibleDeterminizationError{Reason: "every remaining card is excluded by negative knowledge"}
}

package ai

import "github.com/bran/durak/internal/engine"

// Strategy defines the interface for AI decision-making strategies over a
// player's own visible hand.
type Strategy interface {
	// SelectOpeningAttack chooses the card to lead a fresh trick with.
	SelectOpeningAttack(hand []engine.Card, trump engine.Suit) (engine.Card, bool)

	// SelectThrowIn chooses an additional card to throw in from options
	// (already filtered to on-table ranks), or false to pass instead.
	SelectThrowIn(options []engine.Card, trump engine.Suit) (engine.Card, bool)

	// SelectDefense chooses the cheapest card from options that beats
	// pile, or false if the hand should take instead.
	SelectDefense(options []engine.Card, pile engine.Card, trump engine.Suit) (engine.Card, bool)
}

// handAnalysis summarizes a hand's defensive/offensive posture.
type handAnalysis struct {
	trumpCount  int
	lowestTrump engine.Card
	hasTrump    bool
	strength    int // overall strength rating, 0-100
}

// analyzeHand summarizes a hand's trumps: how many it holds, the lowest
// one, and a strength of 15 points per trump capped at 100. Off-suit cards
// do not count toward strength.
func analyzeHand(hand []engine.Card, trump engine.Suit) handAnalysis {
	a := handAnalysis{lowestTrump: engine.Card{Rank: 1 << 30}}
	for _, c := range hand {
		if c.Suit == trump {
			a.trumpCount++
			a.hasTrump = true
			if c.Rank < a.lowestTrump.Rank {
				a.lowestTrump = c
			}
		}
	}
	a.strength = a.trumpCount * 15
	if a.strength > 100 {
		a.strength = 100
	}
	return a
}

// lowestCard returns the card with the lowest cardValue: any non-trump
// before any trump, then the lower rank; on a tie the earlier card in cards
// is kept.
func lowestCard(cards []engine.Card, trump engine.Suit) engine.Card {
	best := cards[0]
	bestValue := cardValue(best, trump)
	for _, c := range cards[1:] {
		if v := cardValue(c, trump); v < bestValue {
			best, bestValue = c, v
		}
	}
	return best
}

// highestCard returns the highest-ranked card among cards.
func highestCard(cards []engine.Card, trump engine.Suit) engine.Card {
	best := cards[0]
	bestValue := cardValue(best, trump)
	for _, c := range cards[1:] {
		if v := cardValue(c, trump); v > bestValue {
			best, bestValue = c, v
		}
	}
	return best
}

// cardValue gives trump cards a flat 100-point head start over non-trumps
// of any rank, so lowest/highest selection never confuses the two.
func cardValue(c engine.Card, trump engine.Suit) int {
	if c.Suit == trump {
		return 100 + int(c.Rank)
	}
	return int(c.Rank)
}

// splitByTrump partitions cards into trump and non-trump groups.
func splitByTrump(cards []engine.Card, trump engine.Suit) (trumps, offSuit []engine.Card) {
	for _, c := range cards {
		if c.Suit == trump {
			trumps = append(trumps, c)
		} else {
			offSuit = append(offSuit, c)
		}
	}
	return trumps, offSuit
}

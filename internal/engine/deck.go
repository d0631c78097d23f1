package engine

import "math/rand"

// NewDeck builds an ordered, unshuffled deck of size D (a multiple of 4 in
// {32,36,40,44,48,52}): every suit crossed with the top D/4 ranks.
func NewDeck(deckSize int) ([]Card, error) {
	ranks, err := RanksForDeckSize(deckSize)
	if err != nil {
		return nil, err
	}
	cards := make([]Card, 0, deckSize)
	for _, s := range allSuits {
		for _, r := range ranks {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return cards, nil
}

// Shuffle permutes cards in place using the Fisher-Yates algorithm driven
// by rng, so callers control reproducibility by supplying a seeded
// *rand.Rand rather than relying on the package-level generator.
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// DealAndStock shuffles a fresh deck of deckSize cards and splits it into
// numPlayers hands of six cards each plus a stock, with the trump card
// (the last card of the shuffled deck) placed at the bottom of the stock —
// i.e. stock[0]. Draws pop from the end of stock, so the trump card is
// drawn last.
func DealAndStock(deckSize, numPlayers int, rng *rand.Rand) (hands [][]Card, stock []Card, trump Card, err error) {
	cards, err := NewDeck(deckSize)
	if err != nil {
		return nil, nil, Card{}, err
	}
	Shuffle(cards, rng)

	hands = make([][]Card, numPlayers)
	idx := 0
	for p := 0; p < numPlayers; p++ {
		hands[p] = append([]Card(nil), cards[idx:idx+6]...)
		idx += 6
	}
	rest := cards[idx:]

	// Stock is bottom-first; the trump card (the last undealt card) goes
	// to the bottom (index 0) and is drawn last. The other undealt cards
	// are stacked above it in reverse, so the natural "pop from the end"
	// draw order hands them out in their shuffled order.
	trumpPos := len(rest) - 1
	trump = rest[trumpPos]
	remainder := append([]Card(nil), rest[:trumpPos]...)
	stock = make([]Card, 0, len(rest))
	stock = append(stock, trump)
	for i := len(remainder) - 1; i >= 0; i-- {
		stock = append(stock, remainder[i])
	}
	return hands, stock, trump, nil
}

// Draw removes and returns the top card of stock (the end of the slice,
// since stock is bottom-first and the trump sits at index 0). Reports ok =
// false if stock is empty.
func Draw(stock []Card) (card Card, rest []Card, ok bool) {
	if len(stock) == 0 {
		return Card{}, stock, false
	}
	last := len(stock) - 1
	return stock[last], stock[:last], true
}

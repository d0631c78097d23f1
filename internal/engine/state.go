package engine

import (
	"fmt"
	"math/rand"
)

// Config enumerates the tunable rules of a game, validated at construction.
type Config struct {
	DeckSize        int  `json:"deck_size"`
	NumPlayers      int  `json:"num_players"`
	Reflecting      bool `json:"reflecting"`
	TrumpReflecting bool `json:"trump_reflecting"`
}

// DefaultConfig mirrors the most common Durak table: a 36-card deck, two
// players, both optional defensive rules enabled.
func DefaultConfig() Config {
	return Config{DeckSize: 36, NumPlayers: 2, Reflecting: true, TrumpReflecting: true}
}

// Validate rejects a Config that cannot build a legal game.
func (c Config) Validate() error {
	if _, err := RanksForDeckSize(c.DeckSize); err != nil {
		return err
	}
	if c.NumPlayers < 2 || c.NumPlayers > 6 {
		return InvalidConfigError{Reason: fmt.Sprintf("num_players %d out of range [2,6]", c.NumPlayers)}
	}
	if c.NumPlayers*6 >= c.DeckSize {
		return InvalidConfigError{Reason: fmt.Sprintf("deck_size %d too small to deal 6 cards to %d players", c.DeckSize, c.NumPlayers)}
	}
	return nil
}

// Phase names the three stages of a trick.
type Phase int

const (
	PhaseAttacking Phase = iota
	PhaseDefending
	PhaseThrowing
)

func (p Phase) String() string {
	switch p {
	case PhaseAttacking:
		return "Attacking"
	case PhaseDefending:
		return "Defending"
	case PhaseThrowing:
		return "Throwing"
	default:
		return "?"
	}
}

// Pile is one attack, optionally beaten by a defense.
type Pile struct {
	Attack  Card
	Defense *Card
}

// Undefended reports whether this pile still needs a defense card.
func (p Pile) Undefended() bool { return p.Defense == nil }

// State is the full, mutable-by-copy game state described in §3 of the
// engine's data model. Hands hold VisCard slots (the stock holds plain
// Cards, flagged by StockKnown): a hand slot's Card field is meaningful whenever Vis != VisUnknown, or whenever the state
// was produced by NewComputerGame or by the determinizer (both of which
// populate every slot concretely regardless of tag).
type State struct {
	Config Config

	TrumpCard Card
	TrumpSuit Suit

	Stock []Card // bottom-first; trump card sits at index 0, drawn last
	// StockKnown reports, per Stock index, whether that slot's Card is
	// settled rather than an unfilled manual-mode placeholder. Always
	// all-true outside manual mode. A placeholder slot's Card field holds
	// the zero Card — which is itself a legitimate card in the 52-card
	// deck, so StockKnown (not a zero-value check) is what distinguishes
	// "not yet deduced" from "genuinely holds this card".
	StockKnown []bool
	Hands      [][]VisCard
	Discard    []Card
	Table      []Pile

	Phase              Phase
	Attackers          []PlayerID
	CurrentAttackerIdx int
	Defender           PlayerID

	TrumpReflectBudget map[Rank]bool
	NegativeKnowledge  []map[Card]bool // indexed by PlayerID

	StartingPlayer    PlayerID
	ConsecutivePasses int
	TrickNumber       int // 0 for the first trick of the game (cap 5), else cap 6

	// Viewer is the root / advice-receiving player: P0 in every state
	// NewComputerGame and NewManualGame build, and the root player in a
	// state Determinize returns. Manual is true for states built by NewManualGame, where
	// Unknown-tagged slots may carry no concrete Card until Determinize
	// fills them in.
	Viewer PlayerID
	Manual bool
}

// MaxAttacks returns the attack-count cap for the current trick: five on
// the very first trick of the game, six thereafter.
func (s *State) MaxAttacks() int {
	if s.TrickNumber == 0 {
		return 5
	}
	return 6
}

// NumPlayers is shorthand for s.Config.NumPlayers.
func (s *State) NumPlayers() int { return s.Config.NumPlayers }

// Clone deep-copies the state so Apply can mutate the copy and leave the
// receiver untouched, matching the spec's "apply never mutates in place
// from the caller's viewpoint" lifecycle rule.
func (s *State) Clone() *State {
	c := *s
	c.Stock = append([]Card(nil), s.Stock...)
	c.StockKnown = append([]bool(nil), s.StockKnown...)
	c.Discard = append([]Card(nil), s.Discard...)
	c.Table = append([]Pile(nil), s.Table...)
	for i, p := range s.Table {
		if p.Defense != nil {
			d := *p.Defense
			c.Table[i].Defense = &d
		}
	}
	c.Hands = make([][]VisCard, len(s.Hands))
	for i, h := range s.Hands {
		c.Hands[i] = append([]VisCard(nil), h...)
	}
	c.Attackers = append([]PlayerID(nil), s.Attackers...)
	c.TrumpReflectBudget = make(map[Rank]bool, len(s.TrumpReflectBudget))
	for r := range s.TrumpReflectBudget {
		c.TrumpReflectBudget[r] = true
	}
	c.NegativeKnowledge = make([]map[Card]bool, len(s.NegativeKnowledge))
	for i, m := range s.NegativeKnowledge {
		nm := make(map[Card]bool, len(m))
		for card := range m {
			nm[card] = true
		}
		c.NegativeKnowledge[i] = nm
	}
	return &c
}

// determineStartingPlayer finds the holder of the lowest-rank trump across
// all hands, ties broken by lowest player index. Returns P0 if nobody
// holds a trump.
func determineStartingPlayer(hands [][]VisCard, trump Suit) PlayerID {
	best := -1
	bestRank := Rank(1 << 30)
	for p, hand := range hands {
		for _, vc := range hand {
			if vc.Card.Suit == trump && vc.Card.Rank < bestRank {
				bestRank = vc.Card.Rank
				best = p
			}
		}
	}
	if best == -1 {
		return PlayerID(0)
	}
	return PlayerID(best)
}

// buildAttackers assembles the clockwise attacker rotation for a fresh
// trick starting at mainAttacker, excluding defender and any player with
// neither cards nor stock left to draw from.
func buildAttackers(numPlayers int, mainAttacker, defender PlayerID, hands [][]VisCard, stockEmpty bool) []PlayerID {
	var out []PlayerID
	for i := 0; i < numPlayers; i++ {
		p := PlayerID((int(mainAttacker) + i) % numPlayers)
		if p == defender {
			continue
		}
		if len(hands[p]) == 0 && stockEmpty {
			continue
		}
		out = append(out, p)
	}
	return out
}

// NewComputerGame builds and shuffles a deckSize-card deck, deals six
// cards to each player, and forms the stock with the trump card at the
// bottom. All hand cards are tagged VisPrivate: private to their owner
// (who is thus fully informed of their own hand) and hidden from every
// other player, including the viewer P0 when P0 is not the owner.
func NewComputerGame(seed int64, cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	hands, stock, trump, err := DealAndStock(cfg.DeckSize, cfg.NumPlayers, rng)
	if err != nil {
		return nil, err
	}

	visHands := make([][]VisCard, cfg.NumPlayers)
	for p, h := range hands {
		vh := make([]VisCard, len(h))
		for i, c := range h {
			vh[i] = VisCard{Card: c, Vis: VisPrivate}
		}
		visHands[p] = vh
	}

	start := determineStartingPlayer(visHands, trump.Suit)
	defender := PlayerID((int(start) + 1) % cfg.NumPlayers)
	attackers := buildAttackers(cfg.NumPlayers, start, defender, visHands, len(stock) == 1)

	negKnowledge := make([]map[Card]bool, cfg.NumPlayers)
	for i := range negKnowledge {
		negKnowledge[i] = make(map[Card]bool)
	}

	stockKnown := make([]bool, len(stock))
	for i := range stockKnown {
		stockKnown[i] = true
	}

	return &State{
		Config:             cfg,
		TrumpCard:          trump,
		TrumpSuit:          trump.Suit,
		Stock:              stock,
		StockKnown:         stockKnown,
		Hands:              visHands,
		Discard:            nil,
		Table:              nil,
		Phase:              PhaseAttacking,
		Attackers:          attackers,
		CurrentAttackerIdx: 0,
		Defender:           defender,
		TrumpReflectBudget: make(map[Rank]bool),
		NegativeKnowledge:  negKnowledge,
		StartingPlayer:     start,
		ConsecutivePasses:  0,
		TrickNumber:        0,
		Viewer:             PlayerID(0),
		Manual:             false,
	}, nil
}

// ManualSetup is the user-reported observation used to build a manual-mode
// state: the viewer's own hand, the card turned for trump, who starts, and
// whichever single opponent trumps the viewer has been shown.
type ManualSetup struct {
	TrumpCard      Card
	PlayerHand     [6]Card
	StartingPlayer PlayerID
	OpponentTrumps []OpponentTrump
}

// OpponentTrump records a single known trump rank held by an opponent,
// reported by the viewer (e.g. shown during a trump-reflect).
type OpponentTrump struct {
	Player PlayerID
	Rank   Rank
}

// NewManualGame constructs a state from a physical-table observation: P0's
// six cards are public-to-owner (VisPrivate, since P0 is their own owner),
// any reported opponent trump is VisPublic, every other opponent slot is
// VisUnknown and every stock slot above the trump is unfilled (StockKnown
// false), with no concrete Card until Determinize fills it in.
func NewManualGame(setup ManualSetup, cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if int(setup.StartingPlayer) < 0 || int(setup.StartingPlayer) >= cfg.NumPlayers {
		return nil, InvalidConfigError{Reason: fmt.Sprintf("starting_player %d out of range", setup.StartingPlayer)}
	}

	hands := make([][]VisCard, cfg.NumPlayers)
	hands[0] = make([]VisCard, 6)
	for i, c := range setup.PlayerHand {
		hands[0][i] = VisCard{Card: c, Vis: VisPrivate}
	}

	knownTrump := make(map[PlayerID]Rank, len(setup.OpponentTrumps))
	for _, ot := range setup.OpponentTrumps {
		knownTrump[ot.Player] = ot.Rank
	}
	for p := 1; p < cfg.NumPlayers; p++ {
		hand := make([]VisCard, 6)
		filled := false
		if rank, ok := knownTrump[PlayerID(p)]; ok {
			hand[0] = VisCard{Card: Card{Suit: setup.TrumpCard.Suit, Rank: rank}, Vis: VisPublic}
			filled = true
		}
		for i := range hand {
			if filled && i == 0 {
				continue
			}
			hand[i] = VisCard{Vis: VisUnknown}
		}
		hands[p] = hand
	}

	stockSize := cfg.DeckSize - 6*cfg.NumPlayers
	stock := make([]Card, stockSize)
	stock[0] = setup.TrumpCard
	// index 0 carries the trump card; the rest are unfilled placeholders.
	// Their Card fields stay zero-valued, but StockKnown (not the zero
	// value, which is a legitimate card in the 52-card deck) is what marks
	// them unfilled — Determinize must populate these before
	// legal_actions/apply run.
	stockKnown := make([]bool, stockSize)
	if stockSize > 0 {
		stockKnown[0] = true
	}

	negKnowledge := make([]map[Card]bool, cfg.NumPlayers)
	for i := range negKnowledge {
		negKnowledge[i] = make(map[Card]bool)
	}

	defender := PlayerID((int(setup.StartingPlayer) + 1) % cfg.NumPlayers)
	attackers := buildAttackers(cfg.NumPlayers, setup.StartingPlayer, defender, hands, false)

	return &State{
		Config:             cfg,
		TrumpCard:          setup.TrumpCard,
		TrumpSuit:          setup.TrumpCard.Suit,
		Stock:              stock,
		StockKnown:         stockKnown,
		Hands:              hands,
		Phase:              PhaseAttacking,
		Attackers:          attackers,
		CurrentAttackerIdx: 0,
		Defender:           defender,
		TrumpReflectBudget: make(map[Rank]bool),
		NegativeKnowledge:  negKnowledge,
		StartingPlayer:     setup.StartingPlayer,
		ConsecutivePasses:  0,
		TrickNumber:        0,
		Viewer:             PlayerID(0),
		Manual:             true,
	}, nil
}

// GetDurak returns the loser of a terminal state: the sole remaining
// cardholder once the stock is empty and every other player is out of
// cards. Returns (0, false) both when the state is not yet terminal and
// when it is terminal but drawn (every hand emptied on the same trick,
// so there is no sole loser) — callers that must tell those two apart
// should check IsOver/IsDraw first; see IsDraw's doc comment.
func GetDurak(s *State) (PlayerID, bool) {
	if len(s.Stock) > 0 {
		return 0, false
	}
	holders := make([]PlayerID, 0, 1)
	for p, h := range s.Hands {
		if len(h) > 0 {
			holders = append(holders, PlayerID(p))
		}
	}
	if len(holders) == 1 {
		return holders[0], true
	}
	return 0, false
}

// IsDraw reports whether a terminal state ended with every hand emptied
// simultaneously: the stock is empty and nobody holds a card, so there is
// no durak. IsOver(s) is true in this case too, but GetDurak(s) returns
// (0, false) exactly as it does for a non-terminal state — IsDraw is how
// a caller distinguishes "drawn" from "still in progress".
func IsDraw(s *State) bool {
	return len(s.Stock) == 0 && countWithCards(s.Hands) == 0
}

// IsTerminal reports whether the state has concluded, win or draw.
func IsTerminal(s *State) bool {
	_, hasDurak := GetDurak(s)
	return hasDurak || IsDraw(s)
}

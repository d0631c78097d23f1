package engine

import "encoding/json"

func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return SerializationError{Reason: "suit", Err: err}
	}
	for _, candidate := range allSuits {
		if candidate.String() == str {
			*s = candidate
			return nil
		}
	}
	return SerializationError{Reason: "unrecognized suit " + str}
}

func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return SerializationError{Reason: "rank", Err: err}
	}
	for i, name := range rankNames {
		if name == str {
			*r = Rank(i)
			return nil
		}
	}
	return SerializationError{Reason: "unrecognized rank " + str}
}

// actionEnvelope is the tagged-record form every Action serializes to: a
// Kind discriminator plus a kind-specific payload, mirroring the
// { type, payload } shape used elsewhere in the pack for polymorphic
// messages.
type actionEnvelope struct {
	Kind   ActionKind `json:"kind"`
	Player PlayerID   `json:"player"`
	Pile   *int       `json:"pile,omitempty"`
	Card   *Card      `json:"card,omitempty"`
}

// MarshalAction renders any Action as its tagged-record wire form.
func MarshalAction(a Action) ([]byte, error) {
	env := actionEnvelope{Kind: a.Kind(), Player: a.Player()}
	switch v := a.(type) {
	case AttackAction:
		env.Card = &v.Card
	case DefendAction:
		env.Pile = &v.Pile
		env.Card = &v.Card
	case ThrowAction:
		env.Card = &v.Card
	case PassAttackAction:
	case TakeAction:
	case ReflectAction:
		env.Card = &v.Card
	case ShowTrumpAction:
		env.Card = &v.Card
	default:
		return nil, SerializationError{Reason: "unrecognized action type for marshal"}
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, SerializationError{Reason: "marshal action", Err: err}
	}
	return b, nil
}

// UnmarshalAction parses the tagged-record wire form produced by
// MarshalAction back into a concrete Action.
func UnmarshalAction(data []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, SerializationError{Reason: "unmarshal action envelope", Err: err}
	}
	switch env.Kind {
	case KindAttack:
		if env.Card == nil {
			return nil, SerializationError{Reason: "Attack missing card"}
		}
		return AttackAction{Actor: env.Player, Card: *env.Card}, nil
	case KindDefend:
		if env.Card == nil || env.Pile == nil {
			return nil, SerializationError{Reason: "Defend missing card/pile"}
		}
		return DefendAction{Actor: env.Player, Pile: *env.Pile, Card: *env.Card}, nil
	case KindThrow:
		if env.Card == nil {
			return nil, SerializationError{Reason: "Throw missing card"}
		}
		return ThrowAction{Actor: env.Player, Card: *env.Card}, nil
	case KindPassAttack:
		return PassAttackAction{Actor: env.Player}, nil
	case KindTake:
		return TakeAction{Actor: env.Player}, nil
	case KindReflect:
		if env.Card == nil {
			return nil, SerializationError{Reason: "Reflect missing card"}
		}
		return ReflectAction{Actor: env.Player, Card: *env.Card}, nil
	case KindShowTrump:
		if env.Card == nil {
			return nil, SerializationError{Reason: "ShowTrump missing card"}
		}
		return ShowTrumpAction{Actor: env.Player, Card: *env.Card}, nil
	default:
		return nil, SerializationError{Reason: "unrecognized action kind " + string(env.Kind)}
	}
}

// stateWire is the JSON projection of State used for round-tripping a
// state the engine itself produced (spec §6's serialization guarantee).
type stateWire struct {
	Config             Config            `json:"config"`
	TrumpCard          Card              `json:"trump_card"`
	Stock              []Card            `json:"stock"`
	StockKnown         []bool            `json:"stock_known"`
	Hands              [][]VisCard       `json:"hands"`
	Discard            []Card            `json:"discard"`
	Table              []pileWire        `json:"table"`
	Phase              string            `json:"phase"`
	Attackers          []PlayerID        `json:"attackers"`
	CurrentAttackerIdx int               `json:"current_attacker_idx"`
	Defender           PlayerID          `json:"defender"`
	TrumpReflectBudget []Rank            `json:"trump_reflect_budget"`
	NegativeKnowledge  []map[string]bool `json:"negative_knowledge"`
	StartingPlayer     PlayerID          `json:"starting_player"`
	ConsecutivePasses  int               `json:"consecutive_passes"`
	TrickNumber        int               `json:"trick_number"`
	Viewer             PlayerID          `json:"viewer"`
	Manual             bool              `json:"manual"`
}

type pileWire struct {
	Attack  Card  `json:"attack"`
	Defense *Card `json:"defense,omitempty"`
}

func phaseFromString(s string) (Phase, error) {
	switch s {
	case "Attacking":
		return PhaseAttacking, nil
	case "Defending":
		return PhaseDefending, nil
	case "Throwing":
		return PhaseThrowing, nil
	default:
		return 0, SerializationError{Reason: "unrecognized phase " + s}
	}
}

// cardKey renders a card as the stable string key negative-knowledge sets
// serialize under; cardFromKey is its inverse.
func cardKey(c Card) string { return c.String() }

func cardFromKey(key string) (Card, error) {
	runes := []rune(key)
	if len(runes) < 2 {
		return Card{}, SerializationError{Reason: "malformed card key " + key}
	}
	suitSymbol := string(runes[len(runes)-1])
	rankStr := string(runes[:len(runes)-1])

	var suit Suit
	found := false
	for _, s := range allSuits {
		if s.Symbol() == suitSymbol {
			suit, found = s, true
			break
		}
	}
	if !found {
		return Card{}, SerializationError{Reason: "unrecognized suit in card key " + key}
	}
	for i, name := range rankNames {
		if name == rankStr {
			return Card{Suit: suit, Rank: Rank(i)}, nil
		}
	}
	return Card{}, SerializationError{Reason: "unrecognized rank in card key " + key}
}

// MarshalJSON renders the full engine state as a self-describing record.
// NegativeKnowledge round-trips too: it is deduced game state (spec.md
// §3's negative_knowledge field), not throwaway advisor scratch space, and
// the CLI commands chain a multi-turn game through exactly this encoding.
func (s *State) MarshalJSON() ([]byte, error) {
	w := stateWire{
		Config:             s.Config,
		TrumpCard:          s.TrumpCard,
		Stock:              s.Stock,
		StockKnown:         s.StockKnown,
		Hands:              s.Hands,
		Discard:            s.Discard,
		Phase:              s.Phase.String(),
		Attackers:          s.Attackers,
		CurrentAttackerIdx: s.CurrentAttackerIdx,
		Defender:           s.Defender,
		StartingPlayer:     s.StartingPlayer,
		ConsecutivePasses:  s.ConsecutivePasses,
		TrickNumber:        s.TrickNumber,
		Viewer:             s.Viewer,
		Manual:             s.Manual,
	}
	for _, p := range s.Table {
		w.Table = append(w.Table, pileWire{Attack: p.Attack, Defense: p.Defense})
	}
	for r := range s.TrumpReflectBudget {
		w.TrumpReflectBudget = append(w.TrumpReflectBudget, r)
	}
	w.NegativeKnowledge = make([]map[string]bool, len(s.NegativeKnowledge))
	for i, m := range s.NegativeKnowledge {
		mm := make(map[string]bool, len(m))
		for c := range m {
			mm[cardKey(c)] = true
		}
		w.NegativeKnowledge[i] = mm
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, SerializationError{Reason: "marshal state", Err: err}
	}
	return b, nil
}

func (s *State) UnmarshalJSON(data []byte) error {
	var w stateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return SerializationError{Reason: "unmarshal state", Err: err}
	}
	phase, err := phaseFromString(w.Phase)
	if err != nil {
		return err
	}
	s.Config = w.Config
	s.TrumpCard = w.TrumpCard
	s.TrumpSuit = w.TrumpCard.Suit
	s.Stock = w.Stock
	if len(w.StockKnown) == len(w.Stock) {
		s.StockKnown = w.StockKnown
	} else {
		// Absent or mismatched StockKnown (e.g. hand-authored JSON):
		// default to "fully settled", matching every computer-dealt
		// state and every post-Determinize state.
		s.StockKnown = make([]bool, len(w.Stock))
		for i := range s.StockKnown {
			s.StockKnown[i] = true
		}
	}
	s.Hands = w.Hands
	s.Discard = w.Discard
	s.Phase = phase
	s.Attackers = w.Attackers
	s.CurrentAttackerIdx = w.CurrentAttackerIdx
	s.Defender = w.Defender
	s.StartingPlayer = w.StartingPlayer
	s.ConsecutivePasses = w.ConsecutivePasses
	s.TrickNumber = w.TrickNumber
	s.Viewer = w.Viewer
	s.Manual = w.Manual

	s.Table = make([]Pile, len(w.Table))
	for i, p := range w.Table {
		s.Table[i] = Pile{Attack: p.Attack, Defense: p.Defense}
	}
	s.TrumpReflectBudget = make(map[Rank]bool, len(w.TrumpReflectBudget))
	for _, r := range w.TrumpReflectBudget {
		s.TrumpReflectBudget[r] = true
	}
	s.NegativeKnowledge = make([]map[Card]bool, s.Config.NumPlayers)
	for i := range s.NegativeKnowledge {
		s.NegativeKnowledge[i] = make(map[Card]bool)
	}
	for i, mm := range w.NegativeKnowledge {
		if i >= len(s.NegativeKnowledge) {
			break
		}
		for key := range mm {
			c, err := cardFromKey(key)
			if err != nil {
				return err
			}
			s.NegativeKnowledge[i][c] = true
		}
	}
	return nil
}

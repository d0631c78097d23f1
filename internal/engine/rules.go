package engine

// findCard returns the index of the first VisCard in hand whose concrete
// Card equals card, or -1 if none (VisUnknown slots with no populated
// Card never match).
func findCard(hand []VisCard, card Card) int {
	for i, vc := range hand {
		if vc.Vis != VisUnknown && vc.Card == card {
			return i
		}
	}
	return -1
}

func removeAt(hand []VisCard, idx int) []VisCard {
	out := make([]VisCard, 0, len(hand)-1)
	out = append(out, hand[:idx]...)
	out = append(out, hand[idx+1:]...)
	return out
}

// tableRanks collects every rank currently present on the table, attack or
// defense side, used to validate Throw and initial non-empty Attack moves.
func tableRanks(table []Pile) map[Rank]bool {
	ranks := make(map[Rank]bool)
	for _, p := range table {
		ranks[p.Attack.Rank] = true
		if p.Defense != nil {
			ranks[p.Defense.Rank] = true
		}
	}
	return ranks
}

func undefendedPiles(table []Pile) []int {
	var out []int
	for i, p := range table {
		if p.Undefended() {
			out = append(out, i)
		}
	}
	return out
}

// commonUndefendedRank returns (r, true) if every pile on the table is
// undefended and they all share one rank — the shared precondition for
// Reflect and ShowTrump.
func commonUndefendedRank(table []Pile) (Rank, bool) {
	if len(table) == 0 {
		return 0, false
	}
	r := table[0].Attack.Rank
	for _, p := range table {
		if !p.Undefended() || p.Attack.Rank != r {
			return 0, false
		}
	}
	return r, true
}

func countWithCards(hands [][]VisCard) int {
	n := 0
	for _, h := range hands {
		if len(h) > 0 {
			n++
		}
	}
	return n
}

// IsOver reports whether the game has concluded: the stock is empty and
// at most one player still holds cards.
func IsOver(s *State) bool {
	return len(s.Stock) == 0 && countWithCards(s.Hands) <= 1
}

// LegalActions returns the complete, duplicate-free, deterministically
// ordered list of actions available to whichever player the current phase
// assigns.
func LegalActions(s *State) []Action {
	if IsOver(s) {
		return nil
	}
	switch s.Phase {
	case PhaseAttacking:
		return legalAttacking(s)
	case PhaseDefending:
		return legalDefending(s)
	case PhaseThrowing:
		return legalThrowing(s)
	default:
		return nil
	}
}

func legalAttacking(s *State) []Action {
	actor := s.Attackers[s.CurrentAttackerIdx]
	hand := s.Hands[actor]
	ranks := tableRanks(s.Table)
	var out []Action
	for _, vc := range hand {
		if vc.Vis == VisUnknown {
			continue
		}
		if len(s.Table) == 0 || ranks[vc.Card.Rank] {
			out = append(out, AttackAction{Actor: actor, Card: vc.Card})
		}
	}
	return out
}

func legalDefending(s *State) []Action {
	defender := s.Defender
	hand := s.Hands[defender]
	var out []Action

	undefended := undefendedPiles(s.Table)
	for _, pileIdx := range undefended {
		pile := s.Table[pileIdx]
		for _, vc := range hand {
			if vc.Vis == VisUnknown {
				continue
			}
			if vc.Card.Beats(pile.Attack, s.TrumpSuit) {
				out = append(out, DefendAction{Actor: defender, Pile: pileIdx, Card: vc.Card})
			}
		}
	}

	out = append(out, TakeAction{Actor: defender})

	if r, ok := commonUndefendedRank(s.Table); ok {
		if s.Config.Reflecting {
			for _, vc := range hand {
				if vc.Vis == VisUnknown || vc.Card.Rank != r || vc.Card.Suit == s.TrumpSuit {
					continue
				}
				out = append(out, ReflectAction{Actor: defender, Card: vc.Card})
			}
		}
		if s.Config.TrumpReflecting && !s.TrumpReflectBudget[r] {
			for _, vc := range hand {
				if vc.Vis == VisUnknown || vc.Card.Rank != r || vc.Card.Suit != s.TrumpSuit {
					continue
				}
				out = append(out, ShowTrumpAction{Actor: defender, Card: vc.Card})
			}
		}
	}
	return out
}

func legalThrowing(s *State) []Action {
	actor := s.Attackers[s.CurrentAttackerIdx]
	hand := s.Hands[actor]
	ranks := tableRanks(s.Table)
	defenderHandSize := len(s.Hands[s.Defender])
	out := []Action{PassAttackAction{Actor: actor}}

	if len(s.Table) >= s.MaxAttacks() {
		return out
	}
	if len(undefendedPiles(s.Table))+1 > defenderHandSize {
		return out
	}
	for _, vc := range hand {
		if vc.Vis == VisUnknown || !ranks[vc.Card.Rank] {
			continue
		}
		out = append(out, ThrowAction{Actor: actor, Card: vc.Card})
	}
	return out
}

// Apply validates action against LegalActions(s) and returns the resulting
// state, leaving s untouched. Returns IllegalActionError if action is not
// currently legal.
func Apply(s *State, action Action) (*State, error) {
	legal := LegalActions(s)
	found := false
	for _, a := range legal {
		if actionsEqual(a, action) {
			found = true
			break
		}
	}
	if !found {
		return nil, IllegalActionError{Action: action, Reason: "not in legal_actions(state)"}
	}

	next := s.Clone()
	switch a := action.(type) {
	case AttackAction:
		applyAttack(next, a)
	case DefendAction:
		applyDefend(next, a)
	case ThrowAction:
		applyThrow(next, a)
	case PassAttackAction:
		applyPassAttack(next, a)
	case TakeAction:
		applyTake(next, a)
	case ReflectAction:
		applyReflect(next, a)
	case ShowTrumpAction:
		applyShowTrump(next, a)
	default:
		return nil, IllegalActionError{Action: action, Reason: "unrecognized action type"}
	}
	return next, nil
}

func actionsEqual(a, b Action) bool {
	return a.Kind() == b.Kind() && a.Player() == b.Player() && a.Key() == b.Key()
}

func applyAttack(s *State, a AttackAction) {
	idx := findCard(s.Hands[a.Actor], a.Card)
	s.Hands[a.Actor] = removeAt(s.Hands[a.Actor], idx)
	s.Table = append(s.Table, Pile{Attack: a.Card})

	mainAttacker := s.Attackers[0]
	if a.Actor == mainAttacker {
		s.Phase = PhaseDefending
		return
	}
	s.CurrentAttackerIdx = (s.CurrentAttackerIdx + 1) % len(s.Attackers)
}

func applyDefend(s *State, a DefendAction) {
	idx := findCard(s.Hands[a.Actor], a.Card)
	s.Hands[a.Actor] = removeAt(s.Hands[a.Actor], idx)
	defense := a.Card
	s.Table[a.Pile].Defense = &defense
	s.Phase = PhaseThrowing
	s.ConsecutivePasses = 0
}

func applyThrow(s *State, a ThrowAction) {
	idx := findCard(s.Hands[a.Actor], a.Card)
	s.Hands[a.Actor] = removeAt(s.Hands[a.Actor], idx)
	s.Table = append(s.Table, Pile{Attack: a.Card})
	s.Phase = PhaseDefending
	s.ConsecutivePasses = 0
}

func applyPassAttack(s *State, a PassAttackAction) {
	// A pass while a throwable rank remains on the table is itself
	// evidence the actor holds none of those ranks.
	ranks := tableRanks(s.Table)
	throwAllowed := len(s.Table) < s.MaxAttacks() && len(undefendedPiles(s.Table))+1 <= len(s.Hands[s.Defender])
	if len(ranks) > 0 && throwAllowed {
		neg := s.NegativeKnowledge[a.Actor]
		for r := range ranks {
			for _, suit := range allSuits {
				neg[Card{Suit: suit, Rank: r}] = true
			}
		}
	}

	s.ConsecutivePasses++
	s.CurrentAttackerIdx = (s.CurrentAttackerIdx + 1) % len(s.Attackers)
	if s.ConsecutivePasses >= len(s.Attackers) {
		resolveTrick(s, false)
	}
}

func applyTake(s *State, a TakeAction) {
	taker := a.Actor
	for _, p := range s.Table {
		recordKnownHolder(s, taker, p.Attack)
		s.Hands[taker] = append(s.Hands[taker], VisCard{Card: p.Attack, Vis: VisPublic})
		if p.Defense != nil {
			recordKnownHolder(s, taker, *p.Defense)
			s.Hands[taker] = append(s.Hands[taker], VisCard{Card: *p.Defense, Vis: VisPublic})
		}
	}
	s.Table = nil
	resolveTrick(s, true)
}

// recordKnownHolder marks a card as known-not-held by everyone except its
// actual new holder, keeping NegativeKnowledge consistent with the fact
// the card is now public in holder's hand.
func recordKnownHolder(s *State, holder PlayerID, c Card) {
	for p := range s.NegativeKnowledge {
		if PlayerID(p) == holder {
			continue
		}
		s.NegativeKnowledge[p][c] = true
	}
}

func applyReflect(s *State, a ReflectAction) {
	idx := findCard(s.Hands[a.Actor], a.Card)
	s.Hands[a.Actor] = removeAt(s.Hands[a.Actor], idx)
	s.Table = append(s.Table, Pile{Attack: a.Card})
	rotateDefender(s, a.Actor)
}

func applyShowTrump(s *State, a ShowTrumpAction) {
	hand := s.Hands[a.Actor]
	idx := findCard(hand, a.Card)
	hand[idx].Vis = VisPublic
	s.TrumpReflectBudget[a.Card.Rank] = true
	rotateDefender(s, a.Actor)
}

// rotateDefender hands the defender role to the next clockwise player;
// the former defender (oldDefender) joins the attacker rotation.
func rotateDefender(s *State, oldDefender PlayerID) {
	n := s.NumPlayers()
	newDefender := PlayerID((int(oldDefender) + 1) % n)
	s.Defender = newDefender

	filtered := s.Attackers[:0:0]
	for _, p := range s.Attackers {
		if p == newDefender {
			continue
		}
		filtered = append(filtered, p)
	}
	filtered = append(filtered, oldDefender)
	s.Attackers = filtered
	if s.CurrentAttackerIdx >= len(s.Attackers) {
		s.CurrentAttackerIdx = 0
	}
	s.Phase = PhaseDefending
}

// resolveTrick ends the current trick: table cards go to discard (or to
// the taker's hand, already moved by applyTake when taken is true), then
// players refill from the stock in attacker-turn order (defender last),
// then the next trick's roles and rotation are assembled.
func resolveTrick(s *State, taken bool) {
	if !taken {
		for _, p := range s.Table {
			s.Discard = append(s.Discard, p.Attack)
			if p.Defense != nil {
				s.Discard = append(s.Discard, *p.Defense)
			}
		}
	}
	s.Table = nil

	refillOrder := append([]PlayerID(nil), s.Attackers...)
	refillOrder = append(refillOrder, s.Defender)
	for _, p := range refillOrder {
		for len(s.Hands[p]) < 6 && len(s.Stock) > 0 {
			card, rest, ok := Draw(s.Stock)
			if !ok {
				break
			}
			s.Stock = rest
			vis := VisPrivate
			if s.Manual && p != s.Viewer {
				vis = VisUnknown
			}
			s.Hands[p] = append(s.Hands[p], VisCard{Card: card, Vis: vis})
		}
	}

	s.TrumpReflectBudget = make(map[Rank]bool)
	s.ConsecutivePasses = 0
	s.CurrentAttackerIdx = 0
	s.TrickNumber++
	s.Phase = PhaseAttacking

	if IsOver(s) {
		return
	}

	var mainAttacker, defender PlayerID
	if taken {
		mainAttacker = nextActivePlayer(s, s.Defender)
	} else {
		mainAttacker = s.Defender
	}
	defender = nextActivePlayer(s, mainAttacker)
	s.Defender = defender
	s.Attackers = buildAttackers(s.NumPlayers(), mainAttacker, defender, s.Hands, len(s.Stock) == 0)
}

// nextActivePlayer finds the next clockwise player (after from) who still
// holds cards.
func nextActivePlayer(s *State, from PlayerID) PlayerID {
	n := s.NumPlayers()
	for i := 1; i <= n; i++ {
		p := PlayerID((int(from) + i) % n)
		if len(s.Hands[p]) > 0 {
			return p
		}
	}
	return from
}

// Package rule_based implements a heuristic AI player: no search, just
// hand-strength rules tuned by difficulty, the kind of quick opponent a
// solver-backed game still wants available for instant local play.
package rule_based

import (
	"github.com/bran/durak/internal/ai"
	"github.com/bran/durak/internal/engine"
)

// AI implements a rule-based Durak AI player.
type AI struct {
	name       string
	playerIdx  engine.PlayerID
	difficulty ai.Difficulty
	attacker   *AttackStrategy
	defender   *DefenseStrategy
}

// New creates a new rule-based AI for the given seat.
func New(name string, playerIdx engine.PlayerID, difficulty ai.Difficulty) *AI {
	// Aggression controls how readily the AI throws in extra cards versus
	// holding them back for its own future attacks.
	aggression := 0 // Medium default
	switch difficulty {
	case ai.DifficultyEasy:
		aggression = -1 // throws in eagerly, easy to read and counter
	case ai.DifficultyMedium:
		aggression = 0
	case ai.DifficultyHard:
		aggression = 1 // holds trumps back
	}

	return &AI{
		name:       name,
		playerIdx:  playerIdx,
		difficulty: difficulty,
		attacker:   NewAttackStrategy(aggression),
		defender:   NewDefenseStrategy(aggression),
	}
}

// Name returns the AI's display name.
func (a *AI) Name() string { return a.name }

// DecideAttack chooses an action while attacking or throwing in.
func (a *AI) DecideAttack(s *engine.State) engine.Action {
	legal := engine.LegalActions(s)
	hand := ownHand(s, a.playerIdx)
	return a.attacker.Select(legal, hand, s.TrumpSuit)
}

// DecideDefense chooses an action while defending.
func (a *AI) DecideDefense(s *engine.State) engine.Action {
	legal := engine.LegalActions(s)
	hand := ownHand(s, a.playerIdx)
	return a.defender.Select(legal, hand, s.Table, s.TrumpSuit)
}

// ownHand extracts the concrete cards of a player's own hand, skipping any
// VisUnknown placeholder slot (only ever present for an opponent viewed
// before determinization, which a seated AI never is).
func ownHand(s *engine.State, p engine.PlayerID) []engine.Card {
	vis := s.Hands[p]
	hand := make([]engine.Card, 0, len(vis))
	for _, vc := range vis {
		if vc.Vis != engine.VisUnknown {
			hand = append(hand, vc.Card)
		}
	}
	return hand
}

// CreatePlayers creates one rule-based AI per seat other than humanPlayer,
// which is left nil for the human's slot.
func CreatePlayers(numPlayers int, humanPlayer engine.PlayerID, difficulty ai.Difficulty) []ai.Player {
	players := make([]ai.Player, numPlayers)
	for i := 0; i < numPlayers; i++ {
		if engine.PlayerID(i) == humanPlayer {
			continue
		}
		name := ai.PlayerNames[i%len(ai.PlayerNames)]
		players[i] = New(name, engine.PlayerID(i), difficulty)
	}
	return players
}

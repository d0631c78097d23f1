// Package ai declares the decision-point interface AI-controlled players
// implement, generalized from a bidding/trick-taking game's bid/play/
// discard decision points to Durak's attack/defend rotation.
package ai

import "github.com/bran/durak/internal/engine"

// Player represents an AI-controlled player, queried once per decision
// point the trick state machine exposes to the player on turn.
type Player interface {
	// DecideAttack chooses an action while the player is attacking or
	// throwing in (engine.PhaseAttacking or engine.PhaseThrowing): an
	// AttackAction, a ThrowAction, or PassAttackAction.
	DecideAttack(s *engine.State) engine.Action

	// DecideDefense chooses an action while the player is defending
	// (engine.PhaseDefending): DefendAction, TakeAction, ReflectAction,
	// or ShowTrumpAction.
	DecideDefense(s *engine.State) engine.Action

	// Name returns a display name for this AI.
	Name() string
}

// Difficulty represents AI skill level.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// PlayerNames provides default names for AI players.
var PlayerNames = []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank"}

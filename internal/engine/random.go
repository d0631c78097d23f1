package engine

import "math/rand"

// PickRandomAction chooses uniformly among LegalActions(s), used by random
// opponents and by MCTS rollouts. Returns false if the state is terminal.
func PickRandomAction(s *State, rng *rand.Rand) (Action, bool) {
	legal := LegalActions(s)
	if len(legal) == 0 {
		return nil, false
	}
	return legal[rng.Intn(len(legal))], true
}

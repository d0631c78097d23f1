package mcts

import (
	"math/rand"

	"github.com/bran/durak/internal/engine"
)

// DefaultMaxDepth is the ply cutoff spec.md §4.4 names: a rollout that
// reaches it without a terminal state scores as a draw (0.5).
const DefaultMaxDepth = 500

// drawScore is the score assigned to a rollout cut off by DefaultMaxDepth,
// or to a terminal state with no single durak (every hand empties at once).
const drawScore = 0.5

// ActionStat accumulates one root action's visit count and total score
// (from the root player's perspective), keyed by Action.Key() so the
// solver's aggregator can merge statistics across determinizations and
// workers.
type ActionStat struct {
	Action engine.Action
	Visits int
	Wins   float64
}

// Run grows a fresh UCT tree over det — an already fully observable,
// determinized state — for iterations simulations, and returns the root's
// per-action statistics. det is never mutated; every action produces a new
// state via engine.Apply.
//
// Scoring is always relative to rootPlayer, never to whichever player is
// "to move" at a given node: a terminal state scores 1 if rootPlayer is not
// the durak, 0 if they are, and drawScore if depth maxDepth is reached
// first.
func Run(det *engine.State, rootPlayer engine.PlayerID, iterations, maxDepth int, rng *rand.Rand) map[string]*ActionStat {
	root := GetNode(det, nil, nil, engine.LegalActions(det))
	defer PutNode(root)

	for i := 0; i < iterations; i++ {
		node := root
		depth := 0

		// Selection: descend while fully expanded and non-terminal.
		for node.IsFullyExpanded() && len(node.Children) > 0 {
			node = node.BestChild()
			depth++
		}

		// Expansion: try one untried action from the frontier node.
		if len(node.Untried) > 0 {
			idx := rng.Intn(len(node.Untried))
			action := node.Untried[idx]
			node.Untried = append(node.Untried[:idx], node.Untried[idx+1:]...)

			next, err := engine.Apply(node.State, action)
			if err == nil {
				child := GetNode(next, node, action, engine.LegalActions(next))
				node.Children = append(node.Children, child)
				node = child
				depth++
			}
		}

		score := rollout(node.State, rootPlayer, maxDepth-depth, rng)

		for n := node; n != nil; n = n.Parent {
			n.Visits++
			n.Wins += score
		}
	}

	stats := make(map[string]*ActionStat, len(root.Children))
	for _, c := range root.Children {
		stats[c.ActionFromParent.Key()] = &ActionStat{
			Action: c.ActionFromParent,
			Visits: c.Visits,
			Wins:   c.Wins,
		}
	}
	return stats
}

// rollout plays uniformly random legal actions from s until a terminal
// state or the remaining depth budget is exhausted, scoring the outcome
// relative to rootPlayer.
func rollout(s *engine.State, rootPlayer engine.PlayerID, remainingDepth int, rng *rand.Rand) float64 {
	state := s
	for depth := 0; depth < remainingDepth; depth++ {
		if engine.IsOver(state) {
			durak, ok := engine.GetDurak(state)
			if !ok {
				return drawScore
			}
			if durak == rootPlayer {
				return 0
			}
			return 1
		}
		action, ok := engine.PickRandomAction(state, rng)
		if !ok {
			return drawScore
		}
		next, err := engine.Apply(state, action)
		if err != nil {
			return drawScore
		}
		state = next
	}
	if engine.IsOver(state) {
		durak, ok := engine.GetDurak(state)
		if ok {
			if durak == rootPlayer {
				return 0
			}
			return 1
		}
	}
	return drawScore
}

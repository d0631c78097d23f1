// Package mcts implements spec.md §4.4: a single-tree UCT search over one
// already-determinized, fully observable state, restricted to a fixed
// root player's perspective.
package mcts

import (
	"math"
	"sync"

	"github.com/bran/durak/internal/engine"
)

// explorationConstant is the UCB1 constant c = √2 fixed by spec.md §4.4.
const explorationConstant = math.Sqrt2

// Node is one UCT tree node, carrying visit/win statistics accumulated
// from the root player's perspective — never the node's own
// current-player-to-move perspective.
type Node struct {
	State            *engine.State
	ActionFromParent engine.Action
	Parent           *Node
	Children         []*Node
	Visits           int
	Wins             float64
	Untried          []engine.Action
}

// nodePool recycles tree nodes across determinizations within a worker's
// chunk, grounded on the sync.Pool-based node reuse in
// signalnine-darwindeck's mcts/node.go — the solver never retains a tree
// across moves (spec.md §4.4), so every finished chunk's nodes return
// here for the next determinization to reuse.
var nodePool = sync.Pool{New: func() any { return new(Node) }}

// GetNode retrieves a (possibly recycled) Node initialized for state,
// reached from parent via actionFromParent, with legal as its untried
// frontier.
func GetNode(state *engine.State, parent *Node, actionFromParent engine.Action, legal []engine.Action) *Node {
	n, _ := nodePool.Get().(*Node)
	n.State = state
	n.Parent = parent
	n.ActionFromParent = actionFromParent
	n.Children = n.Children[:0]
	n.Visits = 0
	n.Wins = 0
	n.Untried = append(n.Untried[:0], legal...)
	return n
}

// PutNode returns n and its whole subtree to the pool.
func PutNode(n *Node) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		PutNode(c)
	}
	n.State = nil
	n.Parent = nil
	n.ActionFromParent = nil
	n.Children = nil
	n.Untried = nil
	nodePool.Put(n)
}

// IsFullyExpanded reports whether every legal action from this node
// already has a corresponding child.
func (n *Node) IsFullyExpanded() bool { return len(n.Untried) == 0 }

// IsTerminal reports whether this node's state has no legal actions at
// all (as opposed to merely being fully expanded).
func (n *Node) IsTerminal() bool { return len(n.Untried) == 0 && len(n.Children) == 0 }

// ucb1 computes the upper-confidence bound used for selection. Unvisited
// nodes return +Inf so they are always picked before any explored child,
// per spec.md §4.4.
func (n *Node) ucb1() float64 {
	if n.Visits == 0 {
		return math.Inf(1)
	}
	exploitation := n.Wins / float64(n.Visits)
	exploration := explorationConstant * math.Sqrt(math.Log(float64(n.Parent.Visits))/float64(n.Visits))
	return exploitation + exploration
}

// BestChild returns the child maximizing ucb1, ties broken deterministically
// by the action key that produced each child.
func (n *Node) BestChild() *Node {
	var best *Node
	bestScore := math.Inf(-1)
	for _, c := range n.Children {
		score := c.ucb1()
		if score > bestScore {
			best, bestScore = c, score
			continue
		}
		if score == bestScore && best != nil && c.ActionFromParent.Key() < best.ActionFromParent.Key() {
			best = c
		}
	}
	return best
}

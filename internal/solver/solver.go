// Package solver implements spec.md §4.5's root-parallel aggregator: split
// a batch of determinizations across worker goroutines, run an independent
// MCTS search per determinization, and merge every root action's statistics
// into one ranked result.
package solver

import (
	"context"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bran/durak/internal/determinize"
	"github.com/bran/durak/internal/engine"
	"github.com/bran/durak/internal/mcts"
)

// Request configures one solve.
type Request struct {
	State            *engine.State
	RootPlayer       engine.PlayerID
	Determinizations int
	Workers          int
	Iterations       int // MCTS iterations run per determinization
	MaxDepth         int // rollout depth bound, spec.md §4.4 (DefaultMaxDepth if zero)
	Seed             int64
}

// ActionResult is one root action's merged standing across every
// determinization and worker that reached it.
type ActionResult struct {
	Action engine.Action
	Visits int
	Score  *float64 // nil if Visits == 0

	wins float64
}

// Result is a completed solve.
type Result struct {
	ID      string
	Actions []ActionResult
}

// Solve runs req.Determinizations independent determinize+MCTS passes,
// split across req.Workers goroutines (remainder distributed to the first
// workers, per spec.md §4.5), and returns the merged, ranked root actions.
// An infeasible determinization is dropped and its worker moves on; if more
// than two thirds of them are infeasible, Solve returns an
// InfeasibleDeterminizationError instead of a result.
// A canceled ctx is returned promptly as ctx.Err() — the caller's signal
// that a newer solve has superseded this one and this result should be
// discarded rather than applied (spec.md §5's stale-result suppression is
// the caller's responsibility; Solve only needs to stop promptly).
func Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Determinizations <= 0 {
		return nil, engine.InvalidConfigError{Reason: "determinizations must be positive"}
	}
	maxDepth := req.MaxDepth
	if maxDepth <= 0 {
		maxDepth = mcts.DefaultMaxDepth
	}
	workers := req.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > req.Determinizations {
		workers = req.Determinizations
	}

	counts := splitCount(req.Determinizations, workers)

	g, gctx := errgroup.WithContext(ctx)
	partials := make([]map[string]*ActionResult, workers)
	infeasible := make([]int, workers)

	assigned := 0
	for w := 0; w < workers; w++ {
		w := w
		n := counts[w]
		seed := req.Seed + int64(assigned)
		assigned += n

		g.Go(func() error {
			local := make(map[string]*ActionResult)
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < n; i++ {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				det, err := determinize.Determinize(req.State, req.RootPlayer, rng)
				if err != nil {
					if _, ok := err.(engine.InfeasibleDeterminizationError); ok {
						infeasible[w]++
						continue
					}
					return err
				}
				mergeStats(local, mcts.Run(det, req.RootPlayer, req.Iterations, maxDepth, rng))
			}
			partials[w] = local
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	dropped := 0
	for _, n := range infeasible {
		dropped += n
	}
	if dropped*3 > req.Determinizations*2 {
		return nil, engine.InfeasibleDeterminizationError{Reason: "more than two thirds of the determinizations were infeasible"}
	}

	merged := make(map[string]*ActionResult)
	for _, local := range partials {
		for key, acc := range local {
			dst, ok := merged[key]
			if !ok {
				dst = &ActionResult{Action: acc.Action}
				merged[key] = dst
			}
			dst.Visits += acc.Visits
			dst.wins += acc.wins
		}
	}

	out := make([]ActionResult, 0, len(merged))
	for _, acc := range merged {
		if acc.Visits > 0 {
			score := acc.wins / float64(acc.Visits)
			acc.Score = &score
		}
		out = append(out, *acc)
	}
	rankActions(out)

	return &Result{ID: uuid.NewString(), Actions: out}, nil
}

func mergeStats(local map[string]*ActionResult, stats map[string]*mcts.ActionStat) {
	for key, st := range stats {
		acc, ok := local[key]
		if !ok {
			acc = &ActionResult{Action: st.Action}
			local[key] = acc
		}
		acc.Visits += st.Visits
		acc.wins += st.Wins
	}
}

// rankActions sorts descending by score, nulls last, ties broken by action
// key for a stable, reproducible ordering (spec.md §4.5).
func rankActions(out []ActionResult) {
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].Score, out[j].Score
		switch {
		case si == nil && sj == nil:
			return out[i].Action.Key() < out[j].Action.Key()
		case si == nil:
			return false
		case sj == nil:
			return true
		case *si != *sj:
			return *si > *sj
		default:
			return out[i].Action.Key() < out[j].Action.Key()
		}
	})
}

// splitCount divides total into n nearly-equal parts, giving the remainder
// to the first workers (spec.md §4.5).
func splitCount(total, n int) []int {
	base, rem := total/n, total%n
	out := make([]int, n)
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}

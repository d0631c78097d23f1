package mcts

import (
	"math/rand"
	"testing"

	"github.com/bran/durak/internal/engine"
)

func newHeadsUpState(t *testing.T) *engine.State {
	t.Helper()
	s, err := engine.NewComputerGame(11, engine.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestRunProducesStatsForEveryRootAction(t *testing.T) {
	s := newHeadsUpState(t)
	legal := engine.LegalActions(s)
	if len(legal) == 0 {
		t.Fatal("expected at least one legal action from a fresh deal")
	}

	rng := rand.New(rand.NewSource(1))
	stats := Run(s, s.Attackers[0], 200, DefaultMaxDepth, rng)

	if len(stats) != len(legal) {
		t.Fatalf("got stats for %d actions, want %d", len(stats), len(legal))
	}
	totalVisits := 0
	for _, a := range legal {
		st, ok := stats[a.Key()]
		if !ok {
			t.Errorf("missing stats for legal action %s", a.Key())
			continue
		}
		if st.Visits <= 0 {
			t.Errorf("action %s has non-positive visit count %d", a.Key(), st.Visits)
		}
		if st.Wins < 0 || st.Wins > float64(st.Visits) {
			t.Errorf("action %s has out-of-range wins %f over %d visits", a.Key(), st.Wins, st.Visits)
		}
		totalVisits += st.Visits
	}
	if totalVisits != 200 {
		t.Errorf("total root visits = %d, want 200", totalVisits)
	}
}

func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	s := newHeadsUpState(t)

	rng1 := rand.New(rand.NewSource(42))
	stats1 := Run(s, s.Attackers[0], 100, DefaultMaxDepth, rng1)

	rng2 := rand.New(rand.NewSource(42))
	stats2 := Run(s, s.Attackers[0], 100, DefaultMaxDepth, rng2)

	for key, st1 := range stats1 {
		st2, ok := stats2[key]
		if !ok {
			t.Fatalf("second run missing action %s", key)
		}
		if st1.Visits != st2.Visits || st1.Wins != st2.Wins {
			t.Errorf("action %s: run1={%d,%f} run2={%d,%f}, want identical for same seed",
				key, st1.Visits, st1.Wins, st2.Visits, st2.Wins)
		}
	}
}

func TestNodePoolRecyclesWithoutAliasingState(t *testing.T) {
	s := newHeadsUpState(t)
	n1 := GetNode(s, nil, nil, engine.LegalActions(s))
	PutNode(n1)
	n2 := GetNode(s, nil, nil, engine.LegalActions(s))
	if n2.Visits != 0 || n2.Wins != 0 || len(n2.Children) != 0 {
		t.Fatalf("recycled node not reset: visits=%d wins=%f children=%d", n2.Visits, n2.Wins, len(n2.Children))
	}
}

package clarify

import (
	"fmt"
	"io"
	"log"
	"testing"

	"shopping-assistant-be/pkg/store"
)

func newPolicy() *Policy {
	return NewPolicy(DefaultConfig(), log.New(io.Discard, "", 0))
}

func candidatesWithScores(scores ...float64) []store.Candidate {
	out := make([]store.Candidate, len(scores))
	for i, s := range scores {
		out[i] = store.Candidate{ProductID: fmt.Sprintf("p%d", i), FusedScore: s}
	}
	return out
}

func uniformCandidates(n int, score float64) []store.Candidate {
	out := make([]store.Candidate, n)
	for i := range out {
		out[i] = store.Candidate{ProductID: fmt.Sprintf("p%d", i), FusedScore: score}
	}
	return out
}

func TestDecideAsksWhenTooManyHighConfidenceMatches(t *testing.T) {
	p := newPolicy()
	session := store.NewSession("s1", "u1")
	session.Facts = store.FactSet{"product_type": "t-shirt"}

	d := p.Decide(session, uniformCandidates(9, 0.85))

	if d.Outcome != OutcomeAsk {
		t.Fatalf("Outcome = %s, want ask", d.Outcome)
	}
	if d.Slot != "size" {
		t.Errorf("Slot = %q, want size (first unfilled priority slot)", d.Slot)
	}
	if session.ClarificationCount != 1 {
		t.Errorf("ClarificationCount = %d, want 1", session.ClarificationCount)
	}
}

func TestDecideSlotSkipsFilledAttributes(t *testing.T) {
	p := newPolicy()
	session := store.NewSession("s1", "u1")
	session.Facts = store.FactSet{"size": "medium", "pattern": "solid"}

	d := p.Decide(session, uniformCandidates(9, 0.85))

	if d.Slot != "graphic_type" {
		t.Errorf("Slot = %q, want graphic_type", d.Slot)
	}
}

func TestDecideFinalizesAtExactBound(t *testing.T) {
	// Exactly AmbiguityBound high-confidence matches is acceptable.
	p := newPolicy()
	session := store.NewSession("s1", "u1")

	d := p.Decide(session, uniformCandidates(8, 0.85))

	if d.Outcome != OutcomeFinalize {
		t.Fatalf("Outcome = %s, want finalize", d.Outcome)
	}
	if len(d.Filtered) != 8 {
		t.Errorf("Filtered = %d, want 8", len(d.Filtered))
	}
	if session.ClarificationCount != 0 {
		t.Errorf("finalize must not consume budget, count = %d", session.ClarificationCount)
	}
}

func TestDecideForcesFinalizeWhenBudgetSpent(t *testing.T) {
	p := newPolicy()
	session := store.NewSession("s1", "u1")
	session.ClarificationCount = 3

	d := p.Decide(session, uniformCandidates(20, 0.9))

	if d.Outcome != OutcomeFinalize {
		t.Fatalf("Outcome = %s, want finalize at spent budget", d.Outcome)
	}
	if session.ClarificationCount != 3 {
		t.Errorf("ClarificationCount = %d, want unchanged 3", session.ClarificationCount)
	}
}

func TestDecideBudgetTerminates(t *testing.T) {
	// Repeatedly ambiguous retrievals must drain the budget and then finalize.
	p := newPolicy()
	session := store.NewSession("s1", "u1")

	asks := 0
	for i := 0; i < 10; i++ {
		d := p.Decide(session, uniformCandidates(20, 0.9))
		if d.Outcome == OutcomeAsk {
			asks++
		}
	}

	if asks != 3 {
		t.Errorf("asked %d times, want exactly 3", asks)
	}
}

func TestDecideFiltersBelowFloor(t *testing.T) {
	p := newPolicy()
	session := store.NewSession("s1", "u1")

	d := p.Decide(session, candidatesWithScores(0.9, 0.65, 0.6, 0.3))

	if d.Outcome != OutcomeFinalize {
		t.Fatalf("Outcome = %s, want finalize", d.Outcome)
	}
	if len(d.Filtered) != 2 {
		t.Fatalf("Filtered = %d, want 2 (floor is exclusive)", len(d.Filtered))
	}
	if d.Filtered[0].FusedScore != 0.9 || d.Filtered[1].FusedScore != 0.65 {
		t.Errorf("ranking order lost: %v", d.Filtered)
	}
}

func TestDecideEmptyResultFinalizesEmpty(t *testing.T) {
	p := newPolicy()
	session := store.NewSession("s1", "u1")

	d := p.Decide(session, nil)

	if d.Outcome != OutcomeFinalize {
		t.Fatalf("Outcome = %s, want finalize", d.Outcome)
	}
	if len(d.Filtered) != 0 {
		t.Errorf("Filtered = %d, want 0", len(d.Filtered))
	}
	if session.ClarificationCount != 0 {
		t.Errorf("empty result must not consume budget")
	}
}

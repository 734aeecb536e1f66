package clarify

import (
	"log"

	"shopping-assistant-be/pkg/store"
)

// Outcome is what the policy tells the flow to do next.
type Outcome string

const (
	// OutcomeAsk means the result set is too ambiguous: ask one clarifying
	// question and keep the fact set for the next turn.
	OutcomeAsk Outcome = "ask"
	// OutcomeFinalize means present the filtered results, empty or not.
	OutcomeFinalize Outcome = "finalize"
)

// Config carries the policy thresholds. THigh bounds what counts as a
// high-confidence match, TMin is the floor for anything shown to the user,
// AmbiguityBound is how many high-confidence matches force a question, and
// MaxRounds caps questions per session.
type Config struct {
	THigh          float64
	TMin           float64
	AmbiguityBound int
	MaxRounds      int
	SlotPriority   []string
}

func DefaultConfig() Config {
	return Config{
		THigh:          0.7,
		TMin:           0.6,
		AmbiguityBound: 8,
		MaxRounds:      3,
		SlotPriority:   []string{"size", "pattern", "graphic_type", "fit", "brand", "color"},
	}
}

// Decision is the policy verdict for one retrieval pass.
type Decision struct {
	Outcome Outcome
	// Slot is the attribute to ask about when Outcome is ask.
	Slot string
	// Filtered holds candidates above TMin, in ranking order. Only
	// meaningful on finalize; an empty slice is a valid outcome.
	Filtered []store.Candidate
}

// Policy decides between asking a clarifying question and finalizing.
type Policy struct {
	config Config
	logger *log.Logger
}

func NewPolicy(config Config, logger *log.Logger) *Policy {
	return &Policy{
		config: config,
		logger: logger,
	}
}

// Decide inspects the fused scores and the session's question budget. An ask
// consumes one round of the budget (the session counter is incremented
// here); once the budget is spent every pass finalizes. Zero survivors after
// the TMin filter finalize as an empty result, not an error.
func (p *Policy) Decide(session *store.Session, candidates []store.Candidate) Decision {
	high := 0
	for _, c := range candidates {
		if c.FusedScore > p.config.THigh {
			high++
		}
	}

	if high > p.config.AmbiguityBound && session.ClarificationCount < p.config.MaxRounds {
		slot := p.nextSlot(session.Facts)
		session.ClarificationCount++
		p.logger.Printf("[CLARIFY] %d high-confidence matches, asking about %q (round %d/%d)",
			high, slot, session.ClarificationCount, p.config.MaxRounds)
		return Decision{Outcome: OutcomeAsk, Slot: slot}
	}

	filtered := make([]store.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.FusedScore > p.config.TMin {
			filtered = append(filtered, c)
		}
	}
	p.logger.Printf("[CLARIFY] finalizing with %d of %d candidates above floor", len(filtered), len(candidates))
	return Decision{Outcome: OutcomeFinalize, Filtered: filtered}
}

// nextSlot picks the first priority attribute the user has not pinned down
// yet. With every slot filled the question falls back to the first slot; the
// responder phrases it as a preference check.
func (p *Policy) nextSlot(facts store.FactSet) string {
	for _, slot := range p.config.SlotPriority {
		if !facts.Has(slot) {
			return slot
		}
	}
	if len(p.config.SlotPriority) > 0 {
		return p.config.SlotPriority[0]
	}
	return "brand"
}

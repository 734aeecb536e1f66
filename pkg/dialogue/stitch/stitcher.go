package stitch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"shopping-assistant-be/pkg/llm"
	"shopping-assistant-be/pkg/store"
)

// Stitch merges the facts extracted this turn into the accumulated fact set.
// New values win on key collision, untouched accumulated facts carry over,
// and both inputs are left unmodified. Stitching the same extraction twice
// yields the same result.
func Stitch(accumulated, extracted store.FactSet) store.FactSet {
	merged := accumulated.Clone()
	for k, v := range extracted {
		if v == "" {
			continue
		}
		merged[k] = v
	}
	return merged
}

// Remove drops the named keys from the fact set, returning a new set.
// Unknown keys are ignored.
func Remove(facts store.FactSet, keys ...string) store.FactSet {
	out := facts.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// LLMStitcher resolves pronouns and modification intent with a chat model,
// degrading to the deterministic merge when the model fails or returns
// garbage. The conversation never stalls on a stitching error.
type LLMStitcher struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewLLMStitcher(provider llm.LLMProvider, logger *log.Logger) *LLMStitcher {
	return &LLMStitcher{
		provider: provider,
		logger:   logger,
	}
}

// StitchTurn merges this turn's extraction into the accumulated context.
// The first turn short-circuits: there is nothing to stitch.
func (s *LLMStitcher) StitchTurn(ctx context.Context, userInput string, accumulated, extracted store.FactSet, turnCount int) store.FactSet {
	if turnCount <= 1 || accumulated.IsEmpty() {
		return Stitch(store.NewFactSet(), extracted)
	}

	merged, err := s.stitchWithModel(ctx, userInput, accumulated, extracted)
	if err != nil {
		s.logger.Printf("[STITCH] model merge failed, using deterministic merge: %v", err)
		return Stitch(accumulated, extracted)
	}
	return merged
}

func (s *LLMStitcher) stitchWithModel(ctx context.Context, userInput string, accumulated, extracted store.FactSet) (store.FactSet, error) {
	prevJSON, _ := json.Marshal(accumulated)
	currJSON, _ := json.Marshal(extracted)

	prompt := fmt.Sprintf(`Merge user intent context.

Previous context: %s
Current user input: %q
Extracted entities: %s

Rules:
- If the user modifies an attribute, override that field in the previous context.
- If the user adds new constraints, add new fields to the previous context.
- If the user uses pronouns ("this", "that", "it"), resolve from previous context.
- Keep everything valid and minimal.

Return only merged JSON.`, prevJSON, userInput, currJSON)

	history := []llm.Message{
		{Role: "system", Content: "Return only merged JSON of stitched context."},
		{Role: "user", Content: prompt},
	}
	raw, err := s.provider.Chat(ctx, history, llm.WithTemperature(0), llm.WithMaxTokens(400))
	if err != nil {
		return nil, err
	}

	var merged store.FactSet
	if err := json.Unmarshal([]byte(llm.StripJSONFence(raw)), &merged); err != nil {
		return nil, fmt.Errorf("stitched context is not valid JSON: %w", err)
	}
	// The model must never lose this turn's explicit facts.
	return Stitch(merged, extracted), nil
}

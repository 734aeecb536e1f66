package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"shopping-assistant-be/pkg/llm"
)

// Classifier produces a raw routing decision from the user turn and its
// session context. The Router applies deterministic post-rules on top.
type Classifier interface {
	Classify(ctx context.Context, rc Context) (*Decision, error)
}

// LLMClassifier asks a chat model for a routing decision as strict JSON.
type LLMClassifier struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewLLMClassifier(provider llm.LLMProvider, logger *log.Logger) *LLMClassifier {
	return &LLMClassifier{
		provider: provider,
		logger:   logger,
	}
}

type classifierResponse struct {
	Action     string  `json:"action"`
	Reasoning  string  `json:"reasoning"`
	IsSafe     bool    `json:"is_safe"`
	IsInDomain bool    `json:"is_in_domain"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

func (c *LLMClassifier) Classify(ctx context.Context, rc Context) (*Decision, error) {
	prompt := buildRoutingPrompt(rc)

	history := []llm.Message{
		{Role: "system", Content: "You are a supervisor that makes routing decisions for a retail shopping assistant. Return valid JSON only."},
		{Role: "user", Content: prompt},
	}

	raw, err := c.provider.Chat(ctx, history, llm.WithTemperature(0.1), llm.WithMaxTokens(300))
	if err != nil {
		return nil, fmt.Errorf("routing classification failed: %w", err)
	}

	var resp classifierResponse
	if err := json.Unmarshal([]byte(llm.StripJSONFence(raw)), &resp); err != nil {
		return nil, fmt.Errorf("routing response is not valid JSON: %w", err)
	}

	decision := &Decision{
		Route:      Route(resp.Action),
		Intent:     Intent(resp.Intent),
		Reasoning:  resp.Reasoning,
		IsSafe:     resp.IsSafe,
		IsInDomain: resp.IsInDomain,
		Confidence: resp.Confidence,
	}
	if !validRoute(decision.Route) {
		return nil, fmt.Errorf("routing response has unknown action %q", resp.Action)
	}
	if decision.Intent == "" {
		decision.Intent = IntentProductSearch
	}
	c.logger.Printf("[ROUTER] LLM decision: %s (intent=%s, confidence=%.2f)", decision.Route, decision.Intent, decision.Confidence)
	return decision, nil
}

func validRoute(r Route) bool {
	switch r {
	case RouteGuardrails, RouteCartManager, RouteSmallTalk, RouteOutOfDomain, RouteSearch:
		return true
	}
	return false
}

func buildRoutingPrompt(rc Context) string {
	return fmt.Sprintf(`Analyze the user input and decide the next action.

User Input: %q
Image attached: %t
Turn Count: %d
Known Preferences: %s
Cart Items: %d

SEARCH RESULTS CONTEXT:
- Current search results available: %t (%d items)
- Historical search results available: %t
- Can add to cart: %t

DECISION CRITERIA (in priority order):

1. SAFETY CHECK (Priority 1):
   - Toxic language, harassment, inappropriate content
   - If unsafe -> "guardrails"

2. CART ACTIONS (Priority 2):
   - EXPLICIT cart commands: "add to cart", "buy this", "I want this", "remove from cart", "show cart", "checkout"
   - For ADD actions: route to cart_manager only if ANY search results are available (current OR historical)
   - For VIEW/REMOVE/CHECKOUT: always route to cart_manager
   - An ADD action with no search results at all -> "search" (the user must search first)

3. SMALL TALK (Priority 3):
   - Greetings: "hi", "hello", "good morning"
   - Thanks: "thank you", "thanks"
   - If small talk -> "small_talk"

4. OUT OF DOMAIN (Priority 4):
   - Non-shopping topics: weather, politics, general knowledge
   - If out of domain -> "out_of_domain"

5. ALL OTHER QUERIES (Priority 5):
   - FAQ/Analytics: "price", "how many", "average", "cheapest"
   - Product search: "red t-shirt", "Nike shoes"
   - Clarification responses: "medium", "large", "red"
   - ALL of these go to -> "search"

Return JSON only:
{
    "action": "guardrails | cart_manager | out_of_domain | small_talk | search",
    "reasoning": "Brief explanation including search results context",
    "is_safe": true,
    "is_in_domain": true,
    "intent": "faq | clarification_response | product_search | cart_action",
    "confidence": 0.85
}`,
		rc.UserInput,
		rc.HasImage,
		rc.TurnCount,
		rc.ActiveFacts,
		rc.CartItemCount,
		rc.HasCurrentResults,
		rc.CurrentResultCount,
		rc.HasHistoricalResults,
		rc.CanAddToCart(),
	)
}

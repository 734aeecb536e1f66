package response

import (
	"context"
	"fmt"
	"log"
	"strings"

	"shopping-assistant-be/pkg/llm"
	"shopping-assistant-be/pkg/store"
)

// maxShown caps the product list rendered into a reply; anything past it is
// summarized as a count of further matches.
const maxShown = 8

// slotQuestions phrases the clarifying question per attribute. The LLM can
// do better, but the canned form always exists.
var slotQuestions = map[string]string{
	"size":         "What size are you looking for?",
	"pattern":      "Do you prefer solid, striped or graphic?",
	"graphic_type": "Any particular print or graphic in mind?",
	"fit":          "Regular, slim or loose fit?",
	"brand":        "What's your preferred brand?",
	"color":        "Do you have a color in mind?",
}

// Generator turns dialogue outcomes into user-facing text. Presentation of
// results is deterministic formatting; small talk and out-of-domain replies
// use the chat model with canned fallbacks so the turn always answers.
type Generator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewGenerator(provider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger,
	}
}

// PresentResults renders the finalized candidate list.
func (g *Generator) PresentResults(candidates []store.Candidate, facts store.FactSet) string {
	if len(candidates) == 0 {
		return g.presentEmpty(facts)
	}

	shown := candidates
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Perfect! I found %d excellent matches for your search:\n\n", len(shown))
	for i, c := range shown {
		m := c.Metadata
		fmt.Fprintf(&b, "%d. %s %s (%s)\n", i+1, orNA(m.Brand), orNA(m.ProductType), orNA(m.Color))
		fmt.Fprintf(&b, "   ₹%.0f | %s | %s Fit\n", m.PriceINR, orNA(m.Material), orNA(m.Fit))
		fmt.Fprintf(&b, "   ID: %s | Quality Score: %.3f\n\n", m.ImageID, c.FusedScore)
	}
	if len(candidates) > len(shown) {
		fmt.Fprintf(&b, "(%d more similar items available)", len(candidates)-len(shown))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (g *Generator) presentEmpty(facts store.FactSet) string {
	criteria := facts.SearchText()
	if criteria == "" {
		criteria = "your search"
	}
	return fmt.Sprintf(`I couldn't find any high-quality matches for: %s

Would you like me to:
- Try with relaxed criteria
- Search for similar products
- Start a new search with different requirements`, criteria)
}

// ClarificationQuestion asks about the given slot. The model may sharpen the
// phrasing using the known facts; a model failure falls back to the template.
func (g *Generator) ClarificationQuestion(ctx context.Context, slot string, facts store.FactSet, matchCount int) string {
	canned, ok := slotQuestions[slot]
	if !ok {
		canned = "Would you like to narrow by brand, price, or color?"
	}

	prompt := fmt.Sprintf(`Given the context: %s
And %d matching products found.

Ask ONE brief clarifying question about the user's preferred %s to help narrow the search.
Return the question only.`, facts.SearchText(), matchCount, slot)

	history := []llm.Message{
		{Role: "system", Content: "Generate a short clarification question."},
		{Role: "user", Content: prompt},
	}
	q, err := g.provider.Chat(ctx, history, llm.WithTemperature(0.3), llm.WithMaxTokens(50))
	if err != nil || strings.TrimSpace(q) == "" {
		if err != nil {
			g.logger.Printf("[RESPONSE] clarification phrasing failed, using template: %v", err)
		}
		return canned
	}
	return strings.TrimSpace(q)
}

// SmallTalk answers a greeting or thanks, steering back to shopping.
func (g *Generator) SmallTalk(ctx context.Context, userInput string) string {
	prompt := fmt.Sprintf(`The user said: %q

This is small talk (greeting, thanks, casual chat). Respond:
- In a friendly, conversational tone
- Briefly acknowledge what they said
- Gently shift back to shopping
- Keep the tone warm, not robotic`, userInput)

	history := []llm.Message{
		{Role: "system", Content: "Generate friendly small talk replies with gentle redirection to shopping."},
		{Role: "user", Content: prompt},
	}
	reply, err := g.provider.Chat(ctx, history, llm.WithTemperature(0.7), llm.WithMaxTokens(80))
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			g.logger.Printf("[RESPONSE] small talk generation failed, using fallback: %v", err)
		}
		return "Hi there! I'm here to help you shop. What are you looking for today?"
	}
	return strings.TrimSpace(reply)
}

// OutOfDomain declines a non-shopping question and redirects.
func (g *Generator) OutOfDomain(ctx context.Context, userInput string) string {
	prompt := fmt.Sprintf(`The user asked: %q

This question is outside a retail shopping assistant's domain.
Return a friendly one-or-two sentence message that:
- Acknowledges the question
- Explains you're focused on helping users shop
- Invites them to ask about products instead

Return the message only.`, userInput)

	history := []llm.Message{
		{Role: "system", Content: "Return a helpful out-of-domain redirect. Plain text only."},
		{Role: "user", Content: prompt},
	}
	reply, err := g.provider.Chat(ctx, history, llm.WithTemperature(0.6), llm.WithMaxTokens(150))
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			g.logger.Printf("[RESPONSE] out-of-domain generation failed, using fallback: %v", err)
		}
		return "I'm specialized in helping you find great products. What would you like to shop for today?"
	}
	return strings.TrimSpace(reply)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

package response

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"shopping-assistant-be/pkg/llm"
	"shopping-assistant-be/pkg/store"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

func newGenerator(p llm.LLMProvider) *Generator {
	return NewGenerator(p, log.New(io.Discard, "", 0))
}

func candidates(n int) []store.Candidate {
	out := make([]store.Candidate, n)
	for i := range out {
		out[i] = store.Candidate{
			ProductID:  fmt.Sprintf("p%d", i),
			FusedScore: 0.9,
			Metadata: store.ProductMetadata{
				ProductType: "t-shirt",
				Brand:       "nike",
				Color:       "red",
				PriceINR:    999,
				ImageID:     fmt.Sprintf("img%d", i),
			},
		}
	}
	return out
}

func TestPresentResultsCapsAtEight(t *testing.T) {
	g := newGenerator(&stubProvider{})

	reply := g.PresentResults(candidates(12), nil)

	if !strings.Contains(reply, "I found 8 excellent matches") {
		t.Errorf("reply does not cap at 8:\n%s", reply)
	}
	if !strings.Contains(reply, "(4 more similar items available)") {
		t.Errorf("reply missing overflow note:\n%s", reply)
	}
	if strings.Contains(reply, "9.") {
		t.Error("ninth item rendered")
	}
}

func TestPresentResultsEmptyListsOptions(t *testing.T) {
	g := newGenerator(&stubProvider{})
	facts := store.FactSet{"color": "purple", "product_type": "kurta"}

	reply := g.PresentResults(nil, facts)

	if !strings.Contains(reply, "couldn't find any high-quality matches") {
		t.Errorf("unexpected empty reply:\n%s", reply)
	}
	if !strings.Contains(reply, "color: purple") {
		t.Errorf("criteria missing from empty reply:\n%s", reply)
	}
}

func TestPresentResultsFillsMissingFields(t *testing.T) {
	g := newGenerator(&stubProvider{})
	cs := []store.Candidate{{ProductID: "p0", FusedScore: 0.8, Metadata: store.ProductMetadata{ImageID: "img0"}}}

	reply := g.PresentResults(cs, nil)

	if !strings.Contains(reply, "N/A") {
		t.Errorf("missing metadata not rendered as N/A:\n%s", reply)
	}
}

func TestClarificationQuestionUsesModel(t *testing.T) {
	g := newGenerator(&stubProvider{reply: "What size do you usually wear?"})

	q := g.ClarificationQuestion(context.Background(), "size", nil, 12)

	if q != "What size do you usually wear?" {
		t.Errorf("q = %q", q)
	}
}

func TestClarificationQuestionFallsBackToTemplate(t *testing.T) {
	g := newGenerator(&stubProvider{err: errors.New("model unavailable")})

	q := g.ClarificationQuestion(context.Background(), "size", nil, 12)

	if q != "What size are you looking for?" {
		t.Errorf("q = %q, want size template", q)
	}
}

func TestClarificationQuestionUnknownSlot(t *testing.T) {
	g := newGenerator(&stubProvider{err: errors.New("model unavailable")})

	q := g.ClarificationQuestion(context.Background(), "mystery_slot", nil, 12)

	if !strings.Contains(q, "narrow by brand, price, or color") {
		t.Errorf("q = %q, want generic template", q)
	}
}

func TestSmallTalkFallback(t *testing.T) {
	g := newGenerator(&stubProvider{err: errors.New("model unavailable")})

	reply := g.SmallTalk(context.Background(), "hi")

	if !strings.Contains(reply, "help you shop") {
		t.Errorf("reply = %q", reply)
	}
}

func TestOutOfDomainFallback(t *testing.T) {
	g := newGenerator(&stubProvider{reply: "   "})

	reply := g.OutOfDomain(context.Background(), "what's the weather?")

	if !strings.Contains(reply, "find great products") {
		t.Errorf("reply = %q", reply)
	}
}

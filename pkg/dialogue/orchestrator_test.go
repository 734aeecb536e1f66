package dialogue

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"shopping-assistant-be/pkg/ai/router"
	"shopping-assistant-be/pkg/dialogue/clarify"
	"shopping-assistant-be/pkg/guardrails"
	"shopping-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// Stub collaborators. Each records calls so tests can assert flow shape.

type stubRouter struct{ decision *router.Decision }

func (s *stubRouter) Route(ctx context.Context, rc router.Context) *router.Decision {
	return s.decision
}

type stubGuard struct{ verdict guardrails.Verdict }

func (s *stubGuard) Check(ctx context.Context, userInput string) guardrails.Verdict {
	return s.verdict
}

type stubExtractor struct {
	facts store.FactSet
	err   error
}

func (s *stubExtractor) Extract(ctx context.Context, userInput, imagePath string) (store.FactSet, error) {
	return s.facts, s.err
}

type stubStitcher struct{}

func (s *stubStitcher) StitchTurn(ctx context.Context, userInput string, accumulated, extracted store.FactSet, turnCount int) store.FactSet {
	merged := accumulated.Clone()
	for k, v := range extracted {
		merged[k] = v
	}
	return merged
}

type stubRetriever struct {
	candidates []store.Candidate
	err        error
}

func (s *stubRetriever) Search(ctx context.Context, facts store.FactSet, rawInput, imagePath string) ([]store.Candidate, error) {
	return s.candidates, s.err
}

type stubPolicy struct{ decision clarify.Decision }

func (s *stubPolicy) Decide(session *store.Session, candidates []store.Candidate) clarify.Decision {
	return s.decision
}

type stubResponder struct{}

func (s *stubResponder) PresentResults(candidates []store.Candidate, facts store.FactSet) string {
	if len(candidates) == 0 {
		return "no matches"
	}
	return "here are your matches"
}

func (s *stubResponder) ClarificationQuestion(ctx context.Context, slot string, facts store.FactSet, matchCount int) string {
	return "what " + slot + "?"
}

func (s *stubResponder) SmallTalk(ctx context.Context, userInput string) string {
	return "hello!"
}

func (s *stubResponder) OutOfDomain(ctx context.Context, userInput string) string {
	return "let's talk shopping"
}

type stubCart struct {
	reply string
	err   error
	got   []store.Candidate
}

func (s *stubCart) Handle(ctx context.Context, userID uuid.UUID, userInput string, results []store.Candidate) (string, error) {
	s.got = results
	return s.reply, s.err
}

type stubFAQ struct {
	answer string
	err    error
}

func (s *stubFAQ) Answer(ctx context.Context, question string, facts store.FactSet) (string, error) {
	return s.answer, s.err
}

type fixture struct {
	router    *stubRouter
	guard     *stubGuard
	extractor *stubExtractor
	retriever *stubRetriever
	policy    *stubPolicy
	cart      *stubCart
	faq       *stubFAQ
}

func newFixture() *fixture {
	return &fixture{
		router:    &stubRouter{decision: &router.Decision{Route: router.RouteSearch, Intent: router.IntentProductSearch, IsSafe: true}},
		guard:     &stubGuard{verdict: guardrails.Verdict{IsSafe: false, Severity: guardrails.SeverityHigh}},
		extractor: &stubExtractor{facts: store.FactSet{"color": "red"}},
		retriever: &stubRetriever{candidates: []store.Candidate{{ProductID: "p1", FusedScore: 0.9}}},
		policy:    &stubPolicy{decision: clarify.Decision{Outcome: clarify.OutcomeFinalize, Filtered: []store.Candidate{{ProductID: "p1", FusedScore: 0.9}}}},
		cart:      &stubCart{reply: "added"},
		faq:       &stubFAQ{answer: "42 products"},
	}
}

func (f *fixture) orchestrator() *Orchestrator {
	return NewOrchestrator(
		f.router, f.guard, f.extractor, &stubStitcher{}, f.retriever,
		f.policy, &stubResponder{}, f.cart, f.faq,
		log.New(io.Discard, "", 0),
	)
}

func TestProcessTurnSearchHappyPath(t *testing.T) {
	f := newFixture()
	session := store.NewSession("s1", "u1")

	result := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "red t-shirt"})

	if result.Reply != "here are your matches" {
		t.Errorf("Reply = %q", result.Reply)
	}
	if len(result.Results) != 1 {
		t.Errorf("Results = %d, want 1", len(result.Results))
	}
	if session.Facts["color"] != "red" {
		t.Errorf("facts not stitched into session: %v", session.Facts)
	}
	if len(session.Turns) != 1 {
		t.Fatalf("turn not recorded")
	}
	if session.Turns[0].Route != string(router.RouteSearch) {
		t.Errorf("recorded route = %q", session.Turns[0].Route)
	}
}

func TestProcessTurnClarificationLoop(t *testing.T) {
	f := newFixture()
	f.policy.decision = clarify.Decision{Outcome: clarify.OutcomeAsk, Slot: "size"}
	session := store.NewSession("s1", "u1")

	result := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "t-shirt"})

	if result.Reply != "what size?" {
		t.Errorf("Reply = %q", result.Reply)
	}
	if result.ClarificationAsked == "" {
		t.Error("clarification not flagged on result")
	}
	if session.Turns[0].ClarificationAsked == "" {
		t.Error("clarification not recorded on turn")
	}
	if len(result.Results) != 0 {
		t.Error("ask must not present results")
	}
}

func TestProcessTurnExtractionFailureCarriesContext(t *testing.T) {
	f := newFixture()
	f.extractor.err = errors.New("model unavailable")
	session := store.NewSession("s1", "u1")
	session.Facts = store.FactSet{"product_type": "t-shirt"}

	result := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "something"})

	if session.Facts["product_type"] != "t-shirt" {
		t.Errorf("prior facts lost on extraction failure: %v", session.Facts)
	}
	if result.Reply == "" {
		t.Error("turn must still answer")
	}
}

func TestProcessTurnRetrievalFailureFinalizesEmpty(t *testing.T) {
	f := newFixture()
	f.retriever.err = errors.New("db down")
	f.policy.decision = clarify.Decision{Outcome: clarify.OutcomeFinalize}
	session := store.NewSession("s1", "u1")

	result := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "red t-shirt"})

	if result.Reply != "no matches" {
		t.Errorf("Reply = %q, want empty presentation", result.Reply)
	}
	if len(session.Turns) != 1 {
		t.Error("failed retrieval must still record the turn")
	}
}

func TestProcessTurnFAQGoesThroughStitching(t *testing.T) {
	f := newFixture()
	f.router.decision = &router.Decision{Route: router.RouteSearch, Intent: router.IntentFAQ, IsSafe: true}
	f.extractor.facts = store.FactSet{"brand": "wrangler"}
	session := store.NewSession("s1", "u1")

	result := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "how many wrangler t-shirts?"})

	if result.Reply != "42 products" {
		t.Errorf("Reply = %q", result.Reply)
	}
	if session.Facts["brand"] != "wrangler" {
		t.Errorf("FAQ must stitch context first: %v", session.Facts)
	}
}

func TestProcessTurnFAQFailureIsUserVisible(t *testing.T) {
	f := newFixture()
	f.router.decision = &router.Decision{Route: router.RouteSearch, Intent: router.IntentFAQ, IsSafe: true}
	f.faq.err = errors.New("bad sql")
	session := store.NewSession("s1", "u1")

	result := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "average price?"})

	if !strings.Contains(result.Reply, "couldn't answer") {
		t.Errorf("Reply = %q", result.Reply)
	}
}

func TestProcessTurnCartUsesHistoricalResults(t *testing.T) {
	f := newFixture()
	f.router.decision = &router.Decision{Route: router.RouteCartManager, Intent: router.IntentCartAction, IsSafe: true}
	session := store.NewSession("s1", "u1")
	session.AppendTurn(store.TurnRecord{Results: []store.Candidate{{ProductID: "older"}}})
	session.AppendTurn(store.TurnRecord{Reply: "asked something"}) // latest turn has no results

	result := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "add the first one"})

	if result.Reply != "added" {
		t.Errorf("Reply = %q", result.Reply)
	}
	if len(f.cart.got) != 1 || f.cart.got[0].ProductID != "older" {
		t.Errorf("cart did not receive historical results: %v", f.cart.got)
	}
}

func TestProcessTurnCartFailureIsUserVisible(t *testing.T) {
	f := newFixture()
	f.router.decision = &router.Decision{Route: router.RouteCartManager, Intent: router.IntentCartAction, IsSafe: true}
	f.cart.err = errors.New("db down")
	session := store.NewSession("s1", "u1")

	result := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "show cart"})

	if !strings.Contains(result.Reply, "Couldn't update your cart") {
		t.Errorf("Reply = %q", result.Reply)
	}
}

func TestProcessTurnGuardrailRejection(t *testing.T) {
	f := newFixture()
	f.router.decision = &router.Decision{Route: router.RouteGuardrails, IsSafe: false}
	session := store.NewSession("s1", "u1")

	result := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "something vile"})

	if !strings.Contains(result.Reply, "can't help with that") {
		t.Errorf("Reply = %q", result.Reply)
	}
	if len(session.Turns) != 1 {
		t.Error("blocked turn must still be recorded")
	}
	if !session.Facts.IsEmpty() {
		t.Error("blocked turn must not touch facts")
	}
}

func TestProcessTurnSmallTalkAndOutOfDomain(t *testing.T) {
	f := newFixture()
	session := store.NewSession("s1", "u1")

	f.router.decision = &router.Decision{Route: router.RouteSmallTalk, IsSafe: true}
	if got := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "hi"}); got.Reply != "hello!" {
		t.Errorf("small talk Reply = %q", got.Reply)
	}

	f.router.decision = &router.Decision{Route: router.RouteOutOfDomain, IsSafe: true}
	if got := f.orchestrator().ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "weather?"}); got.Reply != "let's talk shopping" {
		t.Errorf("out of domain Reply = %q", got.Reply)
	}
}

func TestProcessTurnAppendsSequentialTurns(t *testing.T) {
	f := newFixture()
	session := store.NewSession("s1", "u1")
	o := f.orchestrator()

	o.ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "red t-shirt"})
	o.ProcessTurn(context.Background(), session, uuid.New(), Input{Text: "in medium"})

	if len(session.Turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(session.Turns))
	}
	if session.Turns[0].Seq != 1 || session.Turns[1].Seq != 2 {
		t.Errorf("sequence numbers wrong: %d, %d", session.Turns[0].Seq, session.Turns[1].Seq)
	}
	if session.LastQuery != "in medium" {
		t.Errorf("LastQuery = %q", session.LastQuery)
	}
}

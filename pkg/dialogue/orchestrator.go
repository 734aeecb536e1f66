package dialogue

import (
	"context"
	"log"

	"shopping-assistant-be/pkg/ai/router"
	"shopping-assistant-be/pkg/dialogue/clarify"
	"shopping-assistant-be/pkg/guardrails"
	"shopping-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// Input is one user turn.
type Input struct {
	Text      string
	ImagePath string
}

// Result is the orchestrator's outcome for one turn.
type Result struct {
	Reply              string
	Route              router.Route
	Results            []store.Candidate
	ClarificationAsked string
}

// Collaborator contracts. The orchestrator only depends on behavior so each
// branch can be exercised in isolation.

type Router interface {
	Route(ctx context.Context, rc router.Context) *router.Decision
}

type Guard interface {
	Check(ctx context.Context, userInput string) guardrails.Verdict
}

type Extractor interface {
	Extract(ctx context.Context, userInput, imagePath string) (store.FactSet, error)
}

type Stitcher interface {
	StitchTurn(ctx context.Context, userInput string, accumulated, extracted store.FactSet, turnCount int) store.FactSet
}

type Retriever interface {
	Search(ctx context.Context, facts store.FactSet, rawInput, imagePath string) ([]store.Candidate, error)
}

type ClarifyPolicy interface {
	Decide(session *store.Session, candidates []store.Candidate) clarify.Decision
}

type Responder interface {
	PresentResults(candidates []store.Candidate, facts store.FactSet) string
	ClarificationQuestion(ctx context.Context, slot string, facts store.FactSet, matchCount int) string
	SmallTalk(ctx context.Context, userInput string) string
	OutOfDomain(ctx context.Context, userInput string) string
}

type CartHandler interface {
	Handle(ctx context.Context, userID uuid.UUID, userInput string, results []store.Candidate) (string, error)
}

type FAQAgent interface {
	Answer(ctx context.Context, question string, facts store.FactSet) (string, error)
}

// Orchestrator runs the per-turn state machine: route the input, execute the
// branch, append the turn record. Collaborator failures are absorbed at the
// branch boundary; a turn always produces a reply and never corrupts state
// accumulated by earlier turns.
type Orchestrator struct {
	router    Router
	guard     Guard
	extractor Extractor
	stitcher  Stitcher
	retriever Retriever
	policy    ClarifyPolicy
	responder Responder
	cart      CartHandler
	faq       FAQAgent
	logger    *log.Logger
}

func NewOrchestrator(
	r Router,
	guard Guard,
	extractor Extractor,
	stitcher Stitcher,
	retriever Retriever,
	policy ClarifyPolicy,
	responder Responder,
	cartHandler CartHandler,
	faq FAQAgent,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		router:    r,
		guard:     guard,
		extractor: extractor,
		stitcher:  stitcher,
		retriever: retriever,
		policy:    policy,
		responder: responder,
		cart:      cartHandler,
		faq:       faq,
		logger:    logger,
	}
}

// ProcessTurn handles one exchange. userID identifies the cart owner; the
// session carries all conversational state.
func (o *Orchestrator) ProcessTurn(ctx context.Context, session *store.Session, userID uuid.UUID, input Input) *Result {
	rc := o.routerContext(session, input)
	decision := o.router.Route(ctx, rc)
	o.logger.Printf("[DIALOGUE] session=%s turn=%d route=%s intent=%s",
		session.ID, len(session.Turns)+1, decision.Route, decision.Intent)

	turn := store.TurnRecord{
		UserInput: input.Text,
		ImagePath: input.ImagePath,
		Route:     string(decision.Route),
	}
	result := &Result{Route: decision.Route}

	switch decision.Route {
	case router.RouteGuardrails:
		verdict := o.guard.Check(ctx, input.Text)
		result.Reply = verdict.RejectionReply()

	case router.RouteSmallTalk:
		result.Reply = o.responder.SmallTalk(ctx, input.Text)

	case router.RouteOutOfDomain:
		result.Reply = o.responder.OutOfDomain(ctx, input.Text)

	case router.RouteCartManager:
		o.runCartFlow(ctx, session, userID, input, result)

	default:
		o.runSearchFlow(ctx, session, decision.Intent, input, &turn, result)
	}

	turn.Reply = result.Reply
	turn.Results = result.Results
	turn.ClarificationAsked = result.ClarificationAsked
	session.AppendTurn(turn)
	session.LastQuery = input.Text
	return result
}

func (o *Orchestrator) routerContext(session *store.Session, input Input) router.Context {
	awaiting := false
	if n := len(session.Turns); n > 0 {
		awaiting = session.Turns[n-1].ClarificationAsked != ""
	}
	return router.Context{
		UserInput:             input.Text,
		HasImage:              input.ImagePath != "",
		TurnCount:             len(session.Turns) + 1,
		ActiveFacts:           session.Facts.SearchText(),
		HasCurrentResults:     len(session.CurrentResults()) > 0,
		CurrentResultCount:    len(session.CurrentResults()),
		HasHistoricalResults:  session.HasHistoricalResults(),
		AwaitingClarification: awaiting,
	}
}

func (o *Orchestrator) runCartFlow(ctx context.Context, session *store.Session, userID uuid.UUID, input Input, result *Result) {
	results := session.CurrentResults()
	if len(results) == 0 {
		results = session.LastResults()
	}
	reply, err := o.cart.Handle(ctx, userID, input.Text, results)
	if err != nil {
		o.logger.Printf("[DIALOGUE] cart operation failed: %v", err)
		result.Reply = "Couldn't update your cart right now. Please try again."
		return
	}
	result.Reply = reply
}

// runSearchFlow covers product search, clarification answers and FAQ: every
// one of them goes through extraction and stitching so follow-up questions
// ("average price of them?") see the accumulated context.
func (o *Orchestrator) runSearchFlow(ctx context.Context, session *store.Session, intent router.Intent, input Input, turn *store.TurnRecord, result *Result) {
	turnCount := len(session.Turns) + 1

	extracted, err := o.extractor.Extract(ctx, input.Text, input.ImagePath)
	if err != nil {
		o.logger.Printf("[DIALOGUE] extraction failed, carrying prior context: %v", err)
		extracted = store.NewFactSet()
	}
	turn.Extracted = extracted

	stitched := o.stitcher.StitchTurn(ctx, input.Text, session.Facts, extracted, turnCount)
	session.Facts = stitched
	turn.Stitched = stitched.Clone()

	if intent == router.IntentFAQ {
		answer, err := o.faq.Answer(ctx, input.Text, stitched)
		if err != nil {
			o.logger.Printf("[DIALOGUE] analytics failed: %v", err)
			result.Reply = "I couldn't answer that from the catalog right now. Please try rephrasing."
			return
		}
		result.Reply = answer
		return
	}

	candidates, err := o.retriever.Search(ctx, stitched, input.Text, input.ImagePath)
	if err != nil {
		o.logger.Printf("[DIALOGUE] retrieval failed, finalizing empty: %v", err)
		candidates = nil
	}

	decision := o.policy.Decide(session, candidates)
	if decision.Outcome == clarify.OutcomeAsk {
		question := o.responder.ClarificationQuestion(ctx, decision.Slot, session.Facts, len(candidates))
		result.Reply = question
		result.ClarificationAsked = question
		return
	}

	result.Results = decision.Filtered
	result.Reply = o.responder.PresentResults(decision.Filtered, session.Facts)
}

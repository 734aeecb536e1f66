package router

import (
	"context"
	"log"
	"strings"

	"shopping-assistant-be/pkg/cart"
)

// shortReplyWordLimit bounds what counts as a bare fragment like "medium"
// or "the red one" for the continuation bias.
const shortReplyWordLimit = 3

// Router turns a classifier decision into the final route for the turn.
// Deterministic post-rules run after the model so cart gating and short-reply
// handling never depend on model compliance, and a heuristic fallback keeps
// the turn alive when classification fails outright.
type Router struct {
	classifier Classifier
	logger     *log.Logger
}

func NewRouter(classifier Classifier, logger *log.Logger) *Router {
	return &Router{
		classifier: classifier,
		logger:     logger,
	}
}

// Route decides where the turn goes. Never returns an error: a classifier
// failure degrades to the heuristic fallback.
func (r *Router) Route(ctx context.Context, rc Context) *Decision {
	decision, err := r.classifier.Classify(ctx, rc)
	if err != nil {
		r.logger.Printf("[ROUTER] classification failed, using heuristic fallback: %v", err)
		return r.fallback(rc)
	}
	return r.applyPostRules(rc, decision)
}

// applyPostRules enforces the routing invariants the model is only asked to
// follow.
func (r *Router) applyPostRules(rc Context, d *Decision) *Decision {
	if !d.IsSafe {
		d.Route = RouteGuardrails
		return d
	}

	// Cart-add gating: an add with nothing retrieved yet must search first.
	if d.Route == RouteCartManager && cart.DetectAction(rc.UserInput) == cart.ActionAdd && !rc.CanAddToCart() {
		r.logger.Printf("[ROUTER] cart add with no results, rerouting to search")
		d.Route = RouteSearch
		d.Intent = IntentProductSearch
		return d
	}

	// Short-reply continuation bias: a bare fragment mid-conversation is a
	// clarification answer or a refinement, not small talk or noise.
	if isShortReply(rc.UserInput) && (rc.AwaitingClarification || rc.HasHistoricalResults) {
		if d.Route == RouteSmallTalk || d.Route == RouteOutOfDomain {
			r.logger.Printf("[ROUTER] short reply mid-conversation, rerouting %s to search", d.Route)
			d.Route = RouteSearch
			d.Intent = IntentClarificationResponse
		}
	}
	return d
}

// fallback routes without the model. Explicit cart words win, short replies
// continue the active search, everything else is treated as out of domain
// rather than guessed at.
func (r *Router) fallback(rc Context) *Decision {
	d := &Decision{
		Reasoning:  "heuristic fallback after classification failure",
		IsSafe:     true,
		IsInDomain: true,
		Confidence: 0,
	}

	switch {
	case cart.IsCartUtterance(rc.UserInput):
		if cart.DetectAction(rc.UserInput) == cart.ActionAdd && !rc.CanAddToCart() {
			d.Route = RouteSearch
			d.Intent = IntentProductSearch
		} else {
			d.Route = RouteCartManager
			d.Intent = IntentCartAction
		}
	case isShortReply(rc.UserInput) && (rc.AwaitingClarification || rc.HasHistoricalResults):
		d.Route = RouteSearch
		d.Intent = IntentClarificationResponse
	case rc.HasImage:
		// An image upload is always a search attempt.
		d.Route = RouteSearch
		d.Intent = IntentProductSearch
	default:
		d.Route = RouteOutOfDomain
		d.IsInDomain = false
	}
	return d
}

func isShortReply(input string) bool {
	words := strings.Fields(strings.TrimSpace(input))
	return len(words) > 0 && len(words) <= shortReplyWordLimit
}

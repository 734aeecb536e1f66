package router

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
)

type stubClassifier struct {
	decision *Decision
	err      error
}

func (s *stubClassifier) Classify(ctx context.Context, rc Context) (*Decision, error) {
	return s.decision, s.err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRoutePostRules(t *testing.T) {
	tests := []struct {
		name       string
		rc         Context
		decision   *Decision
		wantRoute  Route
		wantIntent Intent
	}{
		{
			name:       "unsafe input forced to guardrails",
			rc:         Context{UserInput: "some toxic input"},
			decision:   &Decision{Route: RouteSearch, Intent: IntentProductSearch, IsSafe: false},
			wantRoute:  RouteGuardrails,
			wantIntent: IntentProductSearch,
		},
		{
			name:       "cart add with no results reroutes to search",
			rc:         Context{UserInput: "add to cart"},
			decision:   &Decision{Route: RouteCartManager, Intent: IntentCartAction, IsSafe: true},
			wantRoute:  RouteSearch,
			wantIntent: IntentProductSearch,
		},
		{
			name:       "cart add with historical results stays on cart",
			rc:         Context{UserInput: "add to cart", HasHistoricalResults: true},
			decision:   &Decision{Route: RouteCartManager, Intent: IntentCartAction, IsSafe: true},
			wantRoute:  RouteCartManager,
			wantIntent: IntentCartAction,
		},
		{
			name:       "cart view with no results stays on cart",
			rc:         Context{UserInput: "show my cart"},
			decision:   &Decision{Route: RouteCartManager, Intent: IntentCartAction, IsSafe: true},
			wantRoute:  RouteCartManager,
			wantIntent: IntentCartAction,
		},
		{
			name:       "short reply misrouted to small talk becomes continuation",
			rc:         Context{UserInput: "medium", AwaitingClarification: true},
			decision:   &Decision{Route: RouteSmallTalk, Intent: IntentProductSearch, IsSafe: true},
			wantRoute:  RouteSearch,
			wantIntent: IntentClarificationResponse,
		},
		{
			name:       "short reply misrouted to out of domain becomes continuation",
			rc:         Context{UserInput: "the red one", HasHistoricalResults: true},
			decision:   &Decision{Route: RouteOutOfDomain, Intent: IntentProductSearch, IsSafe: true},
			wantRoute:  RouteSearch,
			wantIntent: IntentClarificationResponse,
		},
		{
			name:       "short greeting with no active conversation keeps small talk",
			rc:         Context{UserInput: "hello"},
			decision:   &Decision{Route: RouteSmallTalk, Intent: IntentProductSearch, IsSafe: true},
			wantRoute:  RouteSmallTalk,
			wantIntent: IntentProductSearch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(&stubClassifier{decision: tt.decision}, discardLogger())
			got := r.Route(context.Background(), tt.rc)
			if got.Route != tt.wantRoute {
				t.Errorf("Route = %s, want %s", got.Route, tt.wantRoute)
			}
			if got.Intent != tt.wantIntent {
				t.Errorf("Intent = %s, want %s", got.Intent, tt.wantIntent)
			}
		})
	}
}

func TestRouteFallback(t *testing.T) {
	tests := []struct {
		name      string
		rc        Context
		wantRoute Route
		wantIntent Intent
	}{
		{
			name:       "cart utterance with results goes to cart",
			rc:         Context{UserInput: "add it to my cart", HasCurrentResults: true},
			wantRoute:  RouteCartManager,
			wantIntent: IntentCartAction,
		},
		{
			name:       "cart add with nothing retrieved goes to search",
			rc:         Context{UserInput: "add to cart"},
			wantRoute:  RouteSearch,
			wantIntent: IntentProductSearch,
		},
		{
			name:       "checkout always goes to cart",
			rc:         Context{UserInput: "checkout please"},
			wantRoute:  RouteCartManager,
			wantIntent: IntentCartAction,
		},
		{
			name:       "short reply with history continues the search",
			rc:         Context{UserInput: "large", HasHistoricalResults: true},
			wantRoute:  RouteSearch,
			wantIntent: IntentClarificationResponse,
		},
		{
			name:      "image upload is a search attempt",
			rc:        Context{UserInput: "find something like this", HasImage: true},
			wantRoute: RouteSearch,
			wantIntent: IntentProductSearch,
		},
		{
			name:      "anything else is out of domain",
			rc:        Context{UserInput: "what is the weather like in Paris today"},
			wantRoute: RouteOutOfDomain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(&stubClassifier{err: errors.New("model unavailable")}, discardLogger())
			got := r.Route(context.Background(), tt.rc)
			if got.Route != tt.wantRoute {
				t.Errorf("Route = %s, want %s", got.Route, tt.wantRoute)
			}
			if tt.wantIntent != "" && got.Intent != tt.wantIntent {
				t.Errorf("Intent = %s, want %s", got.Intent, tt.wantIntent)
			}
			if got.Confidence != 0 {
				t.Errorf("fallback Confidence = %f, want 0", got.Confidence)
			}
		})
	}
}

func TestIsShortReply(t *testing.T) {
	if !isShortReply("medium") {
		t.Error("single word should be a short reply")
	}
	if !isShortReply("the red one") {
		t.Error("three words should be a short reply")
	}
	if isShortReply("show me red t-shirts from nike") {
		t.Error("full sentence should not be a short reply")
	}
	if isShortReply("   ") {
		t.Error("blank input should not be a short reply")
	}
}

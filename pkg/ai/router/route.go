package router

// Route is the closed set of dispatch targets for one turn.
type Route string

const (
	RouteGuardrails  Route = "guardrails"
	RouteCartManager Route = "cart_manager"
	RouteSmallTalk   Route = "small_talk"
	RouteOutOfDomain Route = "out_of_domain"
	RouteSearch      Route = "search"
)

// Intent is the secondary classification carried alongside the route.
type Intent string

const (
	IntentFAQ                   Intent = "faq"
	IntentClarificationResponse Intent = "clarification_response"
	IntentProductSearch         Intent = "product_search"
	IntentCartAction            Intent = "cart_action"
)

// Decision is the routing outcome for a single user turn.
type Decision struct {
	Route      Route
	Intent     Intent
	Reasoning  string
	IsSafe     bool
	IsInDomain bool
	Confidence float64
}

// Context is the session-derived signal set the router needs to gate cart
// actions and bias short replies.
type Context struct {
	UserInput             string
	HasImage              bool
	TurnCount             int
	ActiveFacts           string // serialized fact set, display only
	CartItemCount         int
	HasCurrentResults     bool
	CurrentResultCount    int
	HasHistoricalResults  bool
	AwaitingClarification bool
}

// CanAddToCart reports whether an add action has anything to act on.
func (c Context) CanAddToCart() bool {
	return c.HasCurrentResults || c.HasHistoricalResults
}

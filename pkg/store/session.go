package store

import "time"

// ProductMetadata is the display payload carried by a retrieved candidate.
type ProductMetadata struct {
	ProductType string  `json:"product_type"`
	Brand       string  `json:"brand"`
	Color       string  `json:"color"`
	Material    string  `json:"material"`
	Gender      string  `json:"gender"`
	Size        string  `json:"size"`
	Pattern     string  `json:"pattern"`
	Fit         string  `json:"fit"`
	PriceINR    float64 `json:"price_inr"`
	ImageID     string  `json:"image_id"`
}

// Candidate is one retrieved product with its per-modality similarity
// scores and the fused ranking score. Candidates are held for the current
// turn only; the orchestrator keeps the last non-empty result set reachable
// through the turn history for cart lookups.
type Candidate struct {
	ProductID  string          `json:"product_id"`
	TextScore  float64         `json:"text_score"`
	ImageScore float64         `json:"image_score"`
	FusedScore float64         `json:"fused_score"`
	Metadata   ProductMetadata `json:"metadata"`
}

// TurnRecord captures one user/agent exchange. Records are append-only and
// owned exclusively by the dialogue orchestrator; later turns read but never
// mutate them.
type TurnRecord struct {
	Seq                int         `json:"seq"`
	UserInput          string      `json:"user_input"`
	ImagePath          string      `json:"image_path,omitempty"`
	Route              string      `json:"route"`
	Extracted          FactSet     `json:"extracted,omitempty"`
	Stitched           FactSet     `json:"stitched,omitempty"`
	Results            []Candidate `json:"results,omitempty"`
	ClarificationAsked string      `json:"clarification_asked,omitempty"`
	Reply              string      `json:"reply"`
	CreatedAt          time.Time   `json:"created_at"`
}

// Session is the explicit conversation-scoped context object passed into
// every component call. Created on session start, cleared only by an
// explicit reset, destroyed on session end.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Facts              FactSet      `json:"facts"`
	Turns              []TurnRecord `json:"turns"`
	ClarificationCount int          `json:"clarification_count"`

	LastQuery string `json:"last_query"`
}

// NewSession creates a fresh session with an empty fact set.
func NewSession(id, userID string) *Session {
	return &Session{
		ID:     id,
		UserID: userID,
		Facts:  NewFactSet(),
	}
}

// Reset clears the fact set, turn history and clarification counter.
// This is the only way conversation state is dropped mid-session.
func (s *Session) Reset() {
	s.Facts = NewFactSet()
	s.Turns = nil
	s.ClarificationCount = 0
	s.LastQuery = ""
}

// CurrentResults returns the most recent turn's result set, or nil when the
// session has no turns yet.
func (s *Session) CurrentResults() []Candidate {
	if len(s.Turns) == 0 {
		return nil
	}
	return s.Turns[len(s.Turns)-1].Results
}

// LastResults walks the history backwards and returns the newest non-empty
// result set. Used for "add the second one" style cart references.
func (s *Session) LastResults() []Candidate {
	for i := len(s.Turns) - 1; i >= 0; i-- {
		if len(s.Turns[i].Results) > 0 {
			return s.Turns[i].Results
		}
	}
	return nil
}

// HasHistoricalResults reports whether any prior turn produced results.
func (s *Session) HasHistoricalResults() bool {
	return s.LastResults() != nil
}

// AppendTurn records a completed exchange.
func (s *Session) AppendTurn(turn TurnRecord) {
	turn.Seq = len(s.Turns) + 1
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	s.Turns = append(s.Turns, turn)
}

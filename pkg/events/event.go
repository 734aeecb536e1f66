package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CART_ITEM_ADDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields; the constructors below are the only
// places event payloads are shaped.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeTurnCompleted  = "ASSISTANT_TURN_COMPLETED"
	TypeCartItemAdded  = "CART_ITEM_ADDED"
	TypeProductIndexed = "PRODUCT_INDEXED"
	TypeSessionReset   = "SESSION_RESET"
)

// NewTurnCompleted records one finished assistant exchange for analytics.
func NewTurnCompleted(sessionID, userID, route string, resultCount, clarificationCount int) Event {
	return BaseEvent{
		Type: TypeTurnCompleted,
		Data: map[string]interface{}{
			"session_id":          sessionID,
			"user_id":             userID,
			"route":               route,
			"result_count":        resultCount,
			"clarification_count": clarificationCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewCartItemAdded records a successful cart add.
func NewCartItemAdded(userID, productRef string, price float64) Event {
	return BaseEvent{
		Type: TypeCartItemAdded,
		Data: map[string]interface{}{
			"user_id":     userID,
			"product_ref": productRef,
			"price":       price,
		},
		OccurredAt: time.Now(),
	}
}

// NewProductIndexed records that a catalog item got its embeddings stored.
func NewProductIndexed(productID string, hasImageVector bool) Event {
	return BaseEvent{
		Type: TypeProductIndexed,
		Data: map[string]interface{}{
			"product_id":       productID,
			"has_image_vector": hasImageVector,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionReset records an explicit conversation reset.
func NewSessionReset(sessionID, userID string) Event {
	return BaseEvent{
		Type: TypeSessionReset,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		},
		OccurredAt: time.Now(),
	}
}

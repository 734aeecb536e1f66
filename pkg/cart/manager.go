package cart

import (
	"context"
	"fmt"
	"log"
	"strings"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/contract"
	"shopping-assistant-be/internal/repository/specification"
	"shopping-assistant-be/pkg/events"
	"shopping-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// EventSink receives the domain events emitted by cart mutations.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// Manager executes cart operations against the persistent cart. Adds merge
// quantity when the same product (name, brand, color) is already in the
// cart; removes drop the most recent line when no ordinal is given.
type Manager struct {
	repo   contract.CartRepository
	events EventSink
	logger *log.Logger
}

func NewManager(repo contract.CartRepository, logger *log.Logger) *Manager {
	return &Manager{
		repo:   repo,
		logger: logger,
	}
}

// WithEvents attaches an event sink. Publish failures are logged, never
// surfaced to the user.
func (m *Manager) WithEvents(sink EventSink) *Manager {
	m.events = sink
	return m
}

// Handle dispatches the cart utterance and returns the user-facing reply.
// results is the candidate list the ordinal references resolve against; for
// an add with an empty list the caller should have rerouted to search, but a
// stale call still degrades to a helpful message rather than an error.
func (m *Manager) Handle(ctx context.Context, userID uuid.UUID, userInput string, results []store.Candidate) (string, error) {
	action := DetectAction(userInput)
	m.logger.Printf("[CART] action=%s user=%s", action, userID)

	switch action {
	case ActionAdd:
		return m.add(ctx, userID, userInput, results)
	case ActionRemove:
		return m.remove(ctx, userID)
	case ActionCheckout:
		return m.checkout(ctx, userID)
	default:
		return m.view(ctx, userID)
	}
}

func (m *Manager) add(ctx context.Context, userID uuid.UUID, userInput string, results []store.Candidate) (string, error) {
	if len(results) == 0 {
		return "I couldn't find any products to add. Please search for items first.", nil
	}

	index := ParseOrdinal(userInput, len(results))
	chosen := results[index]
	meta := chosen.Metadata

	item := &entity.CartItem{
		Id:          uuid.New(),
		UserId:      userID,
		ProductRef:  meta.ImageID,
		ProductName: orDefault(meta.ProductType, "Product"),
		Brand:       orDefault(meta.Brand, "Unknown"),
		Color:       orDefault(meta.Color, "N/A"),
		Price:       meta.PriceINR,
		Quantity:    1,
	}

	merged, err := m.mergeExisting(ctx, userID, item)
	if err != nil {
		return "", err
	}
	if !merged {
		if err := m.repo.Create(ctx, item); err != nil {
			return "", fmt.Errorf("adding cart item: %w", err)
		}
	}

	if m.events != nil {
		if err := m.events.Publish(ctx, events.NewCartItemAdded(userID.String(), item.ProductRef, item.Price)); err != nil {
			m.logger.Printf("[CART] publish add event failed: %v", err)
		}
	}

	summary, err := m.summary(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Added %s %s (%s) - ₹%.0f to your cart!\n\n%s",
		item.Brand, item.ProductName, item.Color, item.Price, summary), nil
}

// mergeExisting bumps the quantity of a matching line instead of duplicating
// it. Match is on name, brand and color, the user-visible identity.
func (m *Manager) mergeExisting(ctx context.Context, userID uuid.UUID, item *entity.CartItem) (bool, error) {
	existing, err := m.repo.FindAll(ctx, specification.UserOwnedBy{UserID: userID})
	if err != nil {
		return false, fmt.Errorf("loading cart: %w", err)
	}
	for _, line := range existing {
		if line.ProductName == item.ProductName && line.Brand == item.Brand && line.Color == item.Color {
			line.Quantity += item.Quantity
			if err := m.repo.Update(ctx, line); err != nil {
				return false, fmt.Errorf("merging cart item: %w", err)
			}
			return true, nil
		}
	}
	return false, nil
}

func (m *Manager) remove(ctx context.Context, userID uuid.UUID) (string, error) {
	items, err := m.repo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return "", fmt.Errorf("loading cart: %w", err)
	}
	if len(items) == 0 {
		return "Your cart is already empty.", nil
	}

	last := items[len(items)-1]
	if err := m.repo.Delete(ctx, last.Id); err != nil {
		return "", fmt.Errorf("removing cart item: %w", err)
	}

	summary, err := m.summary(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Removed %s from your cart.\n\n%s", last.ProductName, summary), nil
}

func (m *Manager) view(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.summary(ctx, userID)
}

func (m *Manager) checkout(ctx context.Context, userID uuid.UUID) (string, error) {
	items, err := m.repo.FindAll(ctx, specification.UserOwnedBy{UserID: userID})
	if err != nil {
		return "", fmt.Errorf("loading cart: %w", err)
	}
	if len(items) == 0 {
		return "Your cart is empty. Add something before checking out!", nil
	}
	return fmt.Sprintf(`You're ready to checkout!

%s

To complete your order:
1. Confirm items
2. Enter shipping info
3. Proceed to payment`, Summary(items)), nil
}

func (m *Manager) summary(ctx context.Context, userID uuid.UUID) (string, error) {
	items, err := m.repo.FindAll(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return "", fmt.Errorf("loading cart: %w", err)
	}
	return Summary(items), nil
}

// Summary renders the cart lines with a running total.
func Summary(items []*entity.CartItem) string {
	if len(items) == 0 {
		return "Your cart is empty"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cart Summary (%d items):\n\n", len(items))
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s %s - %s\n", i+1, item.Brand, item.ProductName, item.Color)
		fmt.Fprintf(&b, "   ₹%.0f x %d = ₹%.0f\n\n", item.Price, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "Total: ₹%.2f", Total(items))
	return b.String()
}

// Total is the sum of price times quantity over all lines.
func Total(items []*entity.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

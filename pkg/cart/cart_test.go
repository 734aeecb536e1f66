package cart

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/specification"
	"shopping-assistant-be/pkg/store"

	"github.com/google/uuid"
)

func TestDetectAction(t *testing.T) {
	tests := []struct {
		input string
		want  Action
	}{
		{"add to cart", ActionAdd},
		{"buy the second one", ActionAdd},
		{"I want this", ActionAdd},
		{"remove the last item", ActionRemove},
		{"delete it", ActionRemove},
		{"checkout please", ActionCheckout},
		{"proceed to payment", ActionCheckout},
		{"show cart", ActionView},
		{"what's in my cart", ActionView},
		{"cart", ActionView},
	}
	for _, tt := range tests {
		if got := DetectAction(tt.input); got != tt.want {
			t.Errorf("DetectAction(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDetectActionWordBoundaries(t *testing.T) {
	// "madder" contains "add" but is not an add command.
	if got := DetectAction("madder about this"); got == ActionAdd {
		t.Error("substring match leaked through word boundary")
	}
}

func TestIsCartUtterance(t *testing.T) {
	if !IsCartUtterance("add to cart") {
		t.Error("explicit cart command not detected")
	}
	if IsCartUtterance("medium") {
		t.Error("clarification reply misread as cart command")
	}
	if IsCartUtterance("red t-shirt from nike") {
		t.Error("search query misread as cart command")
	}
}

func TestParseOrdinal(t *testing.T) {
	tests := []struct {
		input string
		count int
		want  int
	}{
		{"add the first one", 5, 0},
		{"add the 2nd one", 5, 1},
		{"buy the third", 5, 2},
		{"take the 4th", 5, 3},
		{"the fifth please", 5, 4},
		{"add the last one", 5, 4},
		{"add the last one", 3, 2},
		{"add it", 5, 0},
		{"the fifth please", 2, 1}, // clamped to result count
	}
	for _, tt := range tests {
		if got := ParseOrdinal(tt.input, tt.count); got != tt.want {
			t.Errorf("ParseOrdinal(%q, %d) = %d, want %d", tt.input, tt.count, got, tt.want)
		}
	}
}

// stubCartRepo is an in-memory CartRepository for manager tests.
type stubCartRepo struct {
	items []*entity.CartItem
}

func (s *stubCartRepo) Create(ctx context.Context, item *entity.CartItem) error {
	item.Id = uuid.New()
	copied := *item
	s.items = append(s.items, &copied)
	return nil
}

func (s *stubCartRepo) Update(ctx context.Context, item *entity.CartItem) error {
	for i, existing := range s.items {
		if existing.Id == item.Id {
			copied := *item
			s.items[i] = &copied
			return nil
		}
	}
	return nil
}

func (s *stubCartRepo) Delete(ctx context.Context, id uuid.UUID) error {
	out := s.items[:0]
	for _, item := range s.items {
		if item.Id != id {
			out = append(out, item)
		}
	}
	s.items = out
	return nil
}

func (s *stubCartRepo) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	s.items = nil
	return nil
}

func (s *stubCartRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CartItem, error) {
	if len(s.items) == 0 {
		return nil, nil
	}
	return s.items[0], nil
}

func (s *stubCartRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CartItem, error) {
	out := make([]*entity.CartItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *stubCartRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(s.items)), nil
}

func newManager(repo *stubCartRepo) *Manager {
	return NewManager(repo, log.New(io.Discard, "", 0))
}

func resultSet() []store.Candidate {
	return []store.Candidate{
		{ProductID: "a", Metadata: store.ProductMetadata{ProductType: "t-shirt", Brand: "nike", Color: "red", PriceINR: 999, ImageID: "img-a"}},
		{ProductID: "b", Metadata: store.ProductMetadata{ProductType: "t-shirt", Brand: "puma", Color: "blue", PriceINR: 799, ImageID: "img-b"}},
		{ProductID: "c", Metadata: store.ProductMetadata{ProductType: "polo", Brand: "levis", Color: "white", PriceINR: 1299, ImageID: "img-c"}},
	}
}

func TestManagerAddByOrdinal(t *testing.T) {
	repo := &stubCartRepo{}
	m := newManager(repo)
	userID := uuid.New()

	reply, err := m.Handle(context.Background(), userID, "add the second one to cart", resultSet())
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("cart has %d items, want 1", len(repo.items))
	}
	if repo.items[0].Brand != "puma" || repo.items[0].ProductRef != "img-b" {
		t.Errorf("wrong item added: %+v", repo.items[0])
	}
	if !strings.Contains(reply, "Added puma t-shirt (blue)") {
		t.Errorf("reply = %q", reply)
	}
}

func TestManagerAddMergesQuantity(t *testing.T) {
	repo := &stubCartRepo{}
	m := newManager(repo)
	userID := uuid.New()

	if _, err := m.Handle(context.Background(), userID, "add the first one", resultSet()); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Handle(context.Background(), userID, "add the first one", resultSet()); err != nil {
		t.Fatal(err)
	}

	if len(repo.items) != 1 {
		t.Fatalf("cart has %d lines, want 1 merged line", len(repo.items))
	}
	if repo.items[0].Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", repo.items[0].Quantity)
	}
}

func TestManagerAddWithNoResults(t *testing.T) {
	m := newManager(&stubCartRepo{})

	reply, err := m.Handle(context.Background(), uuid.New(), "add to cart", nil)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(reply, "search for items first") {
		t.Errorf("reply = %q", reply)
	}
}

func TestManagerRemoveLatest(t *testing.T) {
	repo := &stubCartRepo{}
	m := newManager(repo)
	userID := uuid.New()

	if _, err := m.Handle(context.Background(), userID, "add the first one", resultSet()); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Handle(context.Background(), userID, "add the third one", resultSet()); err != nil {
		t.Fatal(err)
	}

	reply, err := m.Handle(context.Background(), userID, "remove it", nil)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(repo.items))
	}
	if !strings.Contains(reply, "Removed polo") {
		t.Errorf("reply = %q", reply)
	}
}

func TestManagerRemoveEmptyCart(t *testing.T) {
	m := newManager(&stubCartRepo{})

	reply, err := m.Handle(context.Background(), uuid.New(), "remove it", nil)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if reply != "Your cart is already empty." {
		t.Errorf("reply = %q", reply)
	}
}

func TestManagerCheckoutEmptyCart(t *testing.T) {
	m := newManager(&stubCartRepo{})

	reply, err := m.Handle(context.Background(), uuid.New(), "checkout", nil)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(reply, "cart is empty") {
		t.Errorf("reply = %q", reply)
	}
}

func TestSummaryAndTotal(t *testing.T) {
	items := []*entity.CartItem{
		{ProductName: "t-shirt", Brand: "nike", Color: "red", Price: 999, Quantity: 2},
		{ProductName: "polo", Brand: "levis", Color: "white", Price: 1299, Quantity: 1},
	}

	if got := Total(items); got != 999*2+1299 {
		t.Errorf("Total = %f", got)
	}

	summary := Summary(items)
	if !strings.Contains(summary, "Cart Summary (2 items)") {
		t.Errorf("summary = %q", summary)
	}
	if !strings.Contains(summary, "₹999 x 2 = ₹1998") {
		t.Errorf("summary = %q", summary)
	}
	if !strings.Contains(summary, "Total: ₹3297.00") {
		t.Errorf("summary = %q", summary)
	}
}

func TestSummaryEmpty(t *testing.T) {
	if got := Summary(nil); got != "Your cart is empty" {
		t.Errorf("Summary(nil) = %q", got)
	}
}

package service

import (
	"context"
	"fmt"
	"log"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/repository/specification"
	"shopping-assistant-be/internal/repository/unitofwork"
	"shopping-assistant-be/pkg/cart"

	"github.com/google/uuid"
)

type ICartService interface {
	GetCart(ctx context.Context, userId uuid.UUID) (*dto.GetCartResponse, error)
	RemoveItem(ctx context.Context, userId uuid.UUID, itemId uuid.UUID) error
	ClearCart(ctx context.Context, userId uuid.UUID) error
}

// cartService is the direct REST surface of the cart. Conversational cart
// actions go through the dialogue engine instead.
type cartService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     *log.Logger
}

func NewCartService(
	uowFactory unitofwork.RepositoryFactory,
	logger *log.Logger,
) ICartService {
	return &cartService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (cs *cartService) GetCart(ctx context.Context, userId uuid.UUID) (*dto.GetCartResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.CartRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := &dto.GetCartResponse{
		Items:   make([]dto.CartItemResponse, 0, len(items)),
		Total:   cart.Total(items),
		Summary: cart.Summary(items),
	}
	for _, item := range items {
		response.Items = append(response.Items, dto.CartItemResponse{
			Id:          item.Id,
			ProductRef:  item.ProductRef,
			ProductName: item.ProductName,
			Brand:       item.Brand,
			Color:       item.Color,
			Price:       item.Price,
			Quantity:    item.Quantity,
			CreatedAt:   item.CreatedAt,
		})
	}

	return response, nil
}

func (cs *cartService) RemoveItem(ctx context.Context, userId uuid.UUID, itemId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.CartRepository().FindOne(ctx,
		specification.ByID{ID: itemId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("cart item not found")
	}

	return uow.CartRepository().Delete(ctx, itemId)
}

func (cs *cartService) ClearCart(ctx context.Context, userId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	return uow.CartRepository().DeleteAllByUserId(ctx, userId)
}

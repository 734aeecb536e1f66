package contract

import (
	"context"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CartRepository interface {
	Create(ctx context.Context, item *entity.CartItem) error
	Update(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CartItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CartItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

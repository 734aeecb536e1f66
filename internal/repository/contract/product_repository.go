package contract

import (
	"context"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBulk(ctx context.Context, products []*entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindByImageIDs resolves catalog image ids to products, preserving input order
	FindByImageIDs(ctx context.Context, imageIDs []string) ([]*entity.Product, error)
}

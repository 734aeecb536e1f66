package contract

import (
	"context"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredProduct wraps a product with its per-modality cosine similarities.
// A modality that was not queried has a score of 0.
type ScoredProduct struct {
	Product    *entity.Product
	TextScore  float64 // 0.0 to 1.0 against context_embedding
	ImageScore float64 // 0.0 to 1.0 against content_embedding
}

type ProductEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.ProductEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.ProductEmbedding) error
	Update(ctx context.Context, embedding *entity.ProductEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProductId(ctx context.Context, productId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProductEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProductEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// Advanced
	// SearchHybridWithScores ranks products against the text and/or image query
	// vectors. Either vector may be nil; the skipped modality scores 0 for every
	// row and ordering falls back to the remaining modality.
	SearchHybridWithScores(ctx context.Context, textVector, imageVector []float32, limit int) ([]*ScoredProduct, error)
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductEmbedding holds the two retrieval vectors for one product:
// ContentValues is derived from the product image, ContextValues from the
// serialized attribute text. Both live in the same vector space.
type ProductEmbedding struct {
	Id            uuid.UUID
	ProductId     uuid.UUID
	Document      string
	ContentValues []float32
	ContextValues []float32
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

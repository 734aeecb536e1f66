package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// ProductEmbedding stores the two modality vectors for a product.
// content_embedding is derived from the catalog image, context_embedding
// from the serialized attribute text. jina-clip-v2 uses 1024 dimensions.
type ProductEmbedding struct {
	Id               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductId        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Document         string          `gorm:"type:text"`
	ContentEmbedding pgvector.Vector `gorm:"type:vector(1024)"`
	ContextEmbedding pgvector.Vector `gorm:"type:vector(1024)"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt  `gorm:"index"`
}

func (ProductEmbedding) TableName() string {
	return "product_embeddings"
}

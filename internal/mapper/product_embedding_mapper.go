package mapper

import (
	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ProductEmbeddingMapper struct{}

func NewProductEmbeddingMapper() *ProductEmbeddingMapper {
	return &ProductEmbeddingMapper{}
}

func (m *ProductEmbeddingMapper) ToEntity(e *model.ProductEmbedding) *entity.ProductEmbedding {
	if e == nil {
		return nil
	}

	return &entity.ProductEmbedding{
		Id:            e.Id,
		ProductId:     e.ProductId,
		Document:      e.Document,
		ContentValues: e.ContentEmbedding.Slice(),
		ContextValues: e.ContextEmbedding.Slice(),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (m *ProductEmbeddingMapper) ToModel(e *entity.ProductEmbedding) *model.ProductEmbedding {
	if e == nil {
		return nil
	}

	return &model.ProductEmbedding{
		Id:               e.Id,
		ProductId:        e.ProductId,
		Document:         e.Document,
		ContentEmbedding: pgvector.NewVector(e.ContentValues),
		ContextEmbedding: pgvector.NewVector(e.ContextValues),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

package mapper

import (
	"time"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/model"

	"gorm.io/gorm"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Product{
		Id:          p.Id,
		ProductType: p.ProductType,
		Brand:       p.Brand,
		Color:       p.Color,
		Material:    p.Material,
		Gender:      p.Gender,
		Size:        p.Size,
		Pattern:     p.Pattern,
		Theme:       p.Theme,
		Fit:         p.Fit,
		SleeveType:  p.SleeveType,
		NeckType:    p.NeckType,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		PriceINR:    p.PriceINR,
		ImageID:     p.ImageID,
		ImagePath:   p.ImagePath,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Product{
		Id:          p.Id,
		ProductType: p.ProductType,
		Brand:       p.Brand,
		Color:       p.Color,
		Material:    p.Material,
		Gender:      p.Gender,
		Size:        p.Size,
		Pattern:     p.Pattern,
		Theme:       p.Theme,
		Fit:         p.Fit,
		SleeveType:  p.SleeveType,
		NeckType:    p.NeckType,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		PriceINR:    p.PriceINR,
		ImageID:     p.ImageID,
		ImagePath:   p.ImagePath,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

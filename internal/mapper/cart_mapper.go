package mapper

import (
	"time"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/model"
)

type CartMapper struct{}

func NewCartMapper() *CartMapper {
	return &CartMapper{}
}

func (m *CartMapper) ToEntity(c *model.CartItem) *entity.CartItem {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.CartItem{
		Id:          c.Id,
		UserId:      c.UserId,
		ProductRef:  c.ProductRef,
		ProductName: c.ProductName,
		Brand:       c.Brand,
		Color:       c.Color,
		Price:       c.Price,
		Quantity:    c.Quantity,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *CartMapper) ToModel(c *entity.CartItem) *model.CartItem {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.CartItem{
		Id:          c.Id,
		UserId:      c.UserId,
		ProductRef:  c.ProductRef,
		ProductName: c.ProductName,
		Brand:       c.Brand,
		Color:       c.Color,
		Price:       c.Price,
		Quantity:    c.Quantity,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *CartMapper) ToEntities(items []*model.CartItem) []*entity.CartItem {
	entities := make([]*entity.CartItem, len(items))
	for i, c := range items {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductType string
	Brand       string
	Color       string
	Material    string
	Gender      string
	Size        string
	Pattern     string
	Theme       string
	Fit         string
	SleeveType  string
	NeckType    string
	Category    string
	Subcategory string
	PriceINR    float64
	ImageID     string
	ImagePath   string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

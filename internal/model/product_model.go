package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductType string         `gorm:"type:varchar(100);not null;index"`
	Brand       string         `gorm:"type:varchar(100);index"`
	Color       string         `gorm:"type:varchar(50)"`
	Material    string         `gorm:"type:varchar(50)"`
	Gender      string         `gorm:"type:varchar(20)"`
	Size        string         `gorm:"type:varchar(20)"`
	Pattern     string         `gorm:"type:varchar(50)"`
	Theme       string         `gorm:"type:varchar(50)"`
	Fit         string         `gorm:"type:varchar(50)"`
	SleeveType  string         `gorm:"type:varchar(50)"`
	NeckType    string         `gorm:"type:varchar(50)"`
	Category    string         `gorm:"type:varchar(100)"`
	Subcategory string         `gorm:"type:varchar(100)"`
	PriceINR    float64        `gorm:"type:numeric(12,2)"`
	ImageID     string         `gorm:"type:varchar(100);uniqueIndex"`
	ImagePath   string         `gorm:"type:text"`
	Description string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

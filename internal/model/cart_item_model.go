package model

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductRef  string    `gorm:"type:varchar(100);not null"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	Brand       string    `gorm:"type:varchar(100)"`
	Color       string    `gorm:"type:varchar(50)"`
	Price       float64   `gorm:"type:numeric(12,2)"`
	Quantity    int       `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

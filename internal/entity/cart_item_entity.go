package entity

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId      uuid.UUID `gorm:"type:uuid;index"`
	ProductRef  string    // catalog image id of the added product
	ProductName string
	Brand       string
	Color       string
	Price       float64
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

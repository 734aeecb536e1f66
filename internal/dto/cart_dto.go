package dto

import (
	"time"

	"github.com/google/uuid"
)

type CartItemResponse struct {
	Id          uuid.UUID `json:"id"`
	ProductRef  string    `json:"product_ref"`
	ProductName string    `json:"product_name"`
	Brand       string    `json:"brand"`
	Color       string    `json:"color"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

type GetCartResponse struct {
	Items   []CartItemResponse `json:"items"`
	Total   float64            `json:"total"`
	Summary string             `json:"summary"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	ProductType string  `json:"product_type" validate:"required"`
	Brand       string  `json:"brand"`
	Color       string  `json:"color"`
	Material    string  `json:"material"`
	Gender      string  `json:"gender"`
	Size        string  `json:"size"`
	Pattern     string  `json:"pattern"`
	Theme       string  `json:"theme"`
	Fit         string  `json:"fit"`
	SleeveType  string  `json:"sleeve_type"`
	NeckType    string  `json:"neck_type"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	PriceINR    float64 `json:"price_inr" validate:"gte=0"`
	ImageID     string  `json:"image_id" validate:"required"`
	ImagePath   string  `json:"image_path"`
	Description string  `json:"description"`
}

type CreateProductResponse struct {
	Id uuid.UUID `json:"id"`
}

type ProductResponse struct {
	Id          uuid.UUID `json:"id"`
	ProductType string    `json:"product_type"`
	Brand       string    `json:"brand"`
	Color       string    `json:"color"`
	Material    string    `json:"material"`
	Gender      string    `json:"gender"`
	Size        string    `json:"size"`
	Pattern     string    `json:"pattern"`
	Theme       string    `json:"theme"`
	Fit         string    `json:"fit"`
	SleeveType  string    `json:"sleeve_type"`
	NeckType    string    `json:"neck_type"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	PriceINR    float64   `json:"price_inr"`
	ImageID     string    `json:"image_id"`
	ImagePath   string    `json:"image_path"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchResultResponse exposes the per-modality scores alongside the fused
// rank, so retrieval quality can be inspected directly.
type SearchResultResponse struct {
	ProductId   string  `json:"product_id"`
	ImageId     string  `json:"image_id"`
	ProductType string  `json:"product_type"`
	Brand       string  `json:"brand"`
	Color       string  `json:"color"`
	PriceINR    float64 `json:"price_inr"`
	TextScore   float64 `json:"text_score"`
	ImageScore  float64 `json:"image_score"`
	FusedScore  float64 `json:"fused_score"`
}

// PublishEmbedProductMessage is the payload sent on the embedding topic when
// a product is created or updated.
type PublishEmbedProductMessage struct {
	ProductId uuid.UUID `json:"product_id"`
}

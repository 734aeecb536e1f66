package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	Route     string    `json:"route,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat          string    `json:"chat"`
	// ImagePath is set server-side after the multipart upload is stored.
	ImagePath string `json:"-"`
}

// CandidateDTO is one ranked product as returned to the client.
type CandidateDTO struct {
	ProductId   string  `json:"product_id"`
	ImageId     string  `json:"image_id"`
	ProductType string  `json:"product_type"`
	Brand       string  `json:"brand"`
	Color       string  `json:"color"`
	Size        string  `json:"size"`
	PriceINR    float64 `json:"price_inr"`
	Score       float64 `json:"score"`
}

type SendChatResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ChatSessionId      uuid.UUID             `json:"chat_session_id"`
	ChatSessionTitle   string                `json:"title"`
	Route              string                `json:"route"`
	Results            []CandidateDTO        `json:"results,omitempty"`
	ClarificationAsked string                `json:"clarification_asked,omitempty"`
	Sent               *SendChatResponseChat `json:"sent"`
	Reply              *SendChatResponseChat `json:"reply"`
}

type ResetSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}

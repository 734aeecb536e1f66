package unitofwork

import (
	"context"

	"shopping-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProductRepository() contract.ProductRepository
	ProductEmbeddingRepository() contract.ProductEmbeddingRepository
	CartRepository() contract.CartRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}

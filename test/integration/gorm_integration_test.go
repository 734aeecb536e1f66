package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"shopping-assistant-be/internal/repository/unitofwork"
	"shopping-assistant-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ProductRepository())
	assert.NotNil(t, uow.ProductEmbeddingRepository())
	assert.NotNil(t, uow.CartRepository())

	// Basic ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	// Count implies the table and its columns exist
	t.Run("Check Product Repository", func(t *testing.T) {
		count, err := uow.ProductRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Product count: %d", count)
	})

	t.Run("Check Product Embedding Repository", func(t *testing.T) {
		count, err := uow.ProductEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ProductEmbedding count: %d", count)
	})

	t.Run("Check Chat Session Repository", func(t *testing.T) {
		count, err := uow.ChatSessionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ChatSession count: %d", count)
	})
}

package embedding

import (
	"context"
	"errors"
)

// ErrImageNotSupported is returned by text-only providers when an image
// embedding is requested. Callers fall back to the text modality.
var ErrImageNotSupported = errors.New("embedding provider does not support images")

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// EmbeddingProvider generates retrieval embeddings. Text and image share one
// vector space so per-modality similarities are directly comparable.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)

	// GenerateImage embeds the image at the given local path. Providers
	// without a vision model return ErrImageNotSupported.
	GenerateImage(ctx context.Context, imagePath string) (*EmbeddingResponse, error)
}

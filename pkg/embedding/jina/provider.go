package jina

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"shopping-assistant-be/pkg/embedding"
)

// JinaProvider uses jina-clip-v2, which embeds text and images into the
// same vector space. That property is what makes per-modality similarity
// scores comparable during hybrid retrieval.
type JinaProvider struct {
	apiKey  string
	baseURL string
	model   string
}

type embeddingInput struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"` // base64
}

type embeddingRequest struct {
	Model string           `json:"model"`
	Input []embeddingInput `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewJinaProvider(apiKey string) *JinaProvider {
	return &JinaProvider{
		apiKey:  apiKey,
		baseURL: "https://api.jina.ai/v1/embeddings",
		model:   "jina-clip-v2",
	}
}

var _ embedding.EmbeddingProvider = &JinaProvider{}

func (p *JinaProvider) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return p.embed(ctx, embeddingInput{Text: text})
}

func (p *JinaProvider) GenerateImage(ctx context.Context, imagePath string) (*embedding.EmbeddingResponse, error) {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return p.embed(ctx, embeddingInput{Image: base64.StdEncoding.EncodeToString(raw)})
}

func (p *JinaProvider) embed(ctx context.Context, input embeddingInput) (*embedding.EmbeddingResponse, error) {
	reqBody := embeddingRequest{
		Model: p.model,
		Input: []embeddingInput{input},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jina api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var jinaResp embeddingResponse
	if err := json.Unmarshal(bodyBytes, &jinaResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if jinaResp.Error != nil {
		return nil, fmt.Errorf("jina api returned error: %s", jinaResp.Error.Message)
	}

	if len(jinaResp.Data) == 0 {
		return nil, fmt.Errorf("empty embeddings from jina api")
	}

	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{
			Values: embedding.NormalizeVector(jinaResp.Data[0].Embedding),
		},
	}, nil
}

package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"shopping-assistant-be/pkg/llm"
	"shopping-assistant-be/pkg/store"
)

// Extractor pulls product attributes out of a user turn. Text-only turns go
// to the chat model as-is; turns with an image attach the base64 payload so
// a vision-capable model can extract visual attributes too.
type Extractor struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewExtractor(provider llm.LLMProvider, logger *log.Logger) *Extractor {
	return &Extractor{
		provider: provider,
		logger:   logger,
	}
}

// Extract returns the fact set mentioned or visible in this turn. An empty
// fact set is a normal outcome for inputs with no product signal. On an
// unreadable image the extraction degrades to text-only rather than failing
// the turn.
func (e *Extractor) Extract(ctx context.Context, userInput, imagePath string) (store.FactSet, error) {
	prompt := buildExtractionPrompt(userInput, imagePath != "")

	msg := llm.Message{Role: "user", Content: prompt}
	if imagePath != "" {
		encoded, err := encodeImage(imagePath)
		if err != nil {
			e.logger.Printf("[EXTRACT] image encoding failed, text-only extraction: %v", err)
		} else {
			msg.Images = []string{encoded}
		}
	}

	history := []llm.Message{
		{Role: "system", Content: "You are an expert at extracting product entities from text and images. Return valid JSON only."},
		msg,
	}

	raw, err := e.provider.Chat(ctx, history, llm.WithTemperature(0), llm.WithMaxTokens(400))
	if err != nil {
		return nil, fmt.Errorf("entity extraction failed: %w", err)
	}

	var facts store.FactSet
	if err := json.Unmarshal([]byte(llm.StripJSONFence(raw)), &facts); err != nil {
		return nil, fmt.Errorf("extraction response is not valid JSON: %w", err)
	}

	// Drop blank values so they never mask prior facts during stitching.
	for k, v := range facts {
		if v == "" {
			delete(facts, k)
		}
	}
	e.logger.Printf("[EXTRACT] %d facts extracted", len(facts))
	return facts, nil
}

func encodeImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func buildExtractionPrompt(userInput string, hasImage bool) string {
	return fmt.Sprintf(`Extract product-related entities from the user input: %q

Image provided: %t

Extract these entities if mentioned:
- product_type (shirt, jeans, shoes, etc.)
- brand (nike, adidas, levis, etc.)
- color (red, blue, black, etc.)
- material (cotton, denim, leather, etc.)
- gender (male, female, unisex)
- size (S, M, L, XL, etc.)
- pattern (solid, striped, graphic, etc.)
- theme (casual, formal, sports, etc.)
- price_range (under 2000, between 1000-3000, etc.)

IMPORTANT: If an image is provided, analyze the image first and extract visual entities (product type, color, style, pattern, etc.) from the image. Then combine with any text entities.

Return as JSON object with only the entities that are clearly visible or mentioned.
If nothing is found, return empty JSON {}.`, userInput, hasImage)
}

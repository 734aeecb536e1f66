package search

import (
	"context"
	"fmt"
	"log"
	"sort"

	"shopping-assistant-be/internal/repository/contract"
	"shopping-assistant-be/pkg/embedding"
	"shopping-assistant-be/pkg/store"
)

// Config holds the fusion weights and result cap. Weights apply only when
// both modalities produced a score; a single-modality search passes its
// score through unweighted.
type Config struct {
	ImageWeight float64
	TextWeight  float64
	TopK        int
}

// DefaultConfig favors the image signal heavily: a photo pins down far more
// attributes than the few words that usually accompany it.
func DefaultConfig() Config {
	return Config{
		ImageWeight: 0.8,
		TextWeight:  0.2,
		TopK:        20,
	}
}

// Retriever runs the hybrid product search: serialize facts to query text,
// embed each available modality, score against the catalog and fuse.
type Retriever struct {
	embedder embedding.EmbeddingProvider
	repo     contract.ProductEmbeddingRepository
	config   Config
	logger   *log.Logger
}

func NewRetriever(embedder embedding.EmbeddingProvider, repo contract.ProductEmbeddingRepository, config Config, logger *log.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		repo:     repo,
		config:   config,
		logger:   logger,
	}
}

// Search retrieves ranked candidates for the stitched fact set. When the
// fact set is empty the raw user input is embedded instead, so an
// extraction failure still produces a best-effort search. imagePath may be
// empty for text-only turns.
func (r *Retriever) Search(ctx context.Context, facts store.FactSet, rawInput, imagePath string) ([]store.Candidate, error) {
	queryText := facts.SearchText()
	if queryText == "" {
		queryText = rawInput
	}
	r.logger.Printf("[SEARCH] query text: %s", queryText)

	var textVector, imageVector []float32

	if queryText != "" {
		resp, err := r.embedder.Generate(ctx, queryText, "RETRIEVAL_QUERY")
		if err != nil {
			r.logger.Printf("[SEARCH] text embedding failed: %v", err)
		} else {
			textVector = resp.Embedding.Values
		}
	}

	if imagePath != "" {
		resp, err := r.embedder.GenerateImage(ctx, imagePath)
		if err != nil {
			r.logger.Printf("[SEARCH] image embedding failed: %v", err)
		} else {
			imageVector = resp.Embedding.Values
		}
	}

	if textVector == nil && imageVector == nil {
		return nil, fmt.Errorf("no query modality could be embedded")
	}

	scored, err := r.repo.SearchHybridWithScores(ctx, textVector, imageVector, r.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("hybrid search failed: %w", err)
	}

	candidates := Fuse(scored, textVector != nil, imageVector != nil, r.config)
	r.logger.Printf("[SEARCH] %d candidates after fusion", len(candidates))
	return candidates, nil
}

// Fuse converts repository scores into ranked candidates. With both
// modalities present the fused score is ImageWeight*image + TextWeight*text;
// with one, that modality's score passes through. Output is sorted by fused
// score descending (stable, so database order breaks ties), deduplicated by
// product keeping the first occurrence, and capped at TopK.
func Fuse(scored []*contract.ScoredProduct, hasText, hasImage bool, cfg Config) []store.Candidate {
	candidates := make([]store.Candidate, 0, len(scored))
	for _, s := range scored {
		if s.Product == nil {
			continue
		}
		var fused float64
		switch {
		case hasText && hasImage:
			fused = cfg.ImageWeight*s.ImageScore + cfg.TextWeight*s.TextScore
		case hasImage:
			fused = s.ImageScore
		default:
			fused = s.TextScore
		}
		candidates = append(candidates, store.Candidate{
			ProductID:  s.Product.Id.String(),
			TextScore:  s.TextScore,
			ImageScore: s.ImageScore,
			FusedScore: fused,
			Metadata: store.ProductMetadata{
				ProductType: s.Product.ProductType,
				Brand:       s.Product.Brand,
				Color:       s.Product.Color,
				Material:    s.Product.Material,
				Gender:      s.Product.Gender,
				Size:        s.Product.Size,
				Pattern:     s.Product.Pattern,
				Fit:         s.Product.Fit,
				PriceINR:    s.Product.PriceINR,
				ImageID:     s.Product.ImageID,
			},
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FusedScore > candidates[j].FusedScore
	})

	seen := make(map[string]bool, len(candidates))
	deduped := candidates[:0]
	for _, c := range candidates {
		if seen[c.ProductID] {
			continue
		}
		seen[c.ProductID] = true
		deduped = append(deduped, c)
	}

	if cfg.TopK > 0 && len(deduped) > cfg.TopK {
		deduped = deduped[:cfg.TopK]
	}
	return deduped
}

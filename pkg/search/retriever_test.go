package search

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"testing"

	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/contract"
	"shopping-assistant-be/pkg/embedding"
	"shopping-assistant-be/pkg/store"

	"github.com/google/uuid"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func scoredProduct(id uuid.UUID, textScore, imageScore float64) *contract.ScoredProduct {
	return &contract.ScoredProduct{
		Product:    &entity.Product{Id: id, ProductType: "t-shirt"},
		TextScore:  textScore,
		ImageScore: imageScore,
	}
}

func TestFuseBothModalities(t *testing.T) {
	id := uuid.New()
	got := Fuse([]*contract.ScoredProduct{scoredProduct(id, 0.5, 1.0)}, true, true, DefaultConfig())

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	want := 0.8*1.0 + 0.2*0.5
	if math.Abs(got[0].FusedScore-want) > 1e-9 {
		t.Errorf("FusedScore = %f, want %f", got[0].FusedScore, want)
	}
}

func TestFuseSingleModalityPassthrough(t *testing.T) {
	id := uuid.New()

	textOnly := Fuse([]*contract.ScoredProduct{scoredProduct(id, 0.7, 0)}, true, false, DefaultConfig())
	if textOnly[0].FusedScore != 0.7 {
		t.Errorf("text-only FusedScore = %f, want 0.7 unweighted", textOnly[0].FusedScore)
	}

	imageOnly := Fuse([]*contract.ScoredProduct{scoredProduct(id, 0, 0.9)}, false, true, DefaultConfig())
	if imageOnly[0].FusedScore != 0.9 {
		t.Errorf("image-only FusedScore = %f, want 0.9 unweighted", imageOnly[0].FusedScore)
	}
}

func TestFuseRankingOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	scored := []*contract.ScoredProduct{
		scoredProduct(a, 0.2, 0.2),
		scoredProduct(b, 0.9, 0.9),
		scoredProduct(c, 0.5, 0.5),
	}

	got := Fuse(scored, true, true, DefaultConfig())

	wantOrder := []string{b.String(), c.String(), a.String()}
	for i, want := range wantOrder {
		if got[i].ProductID != want {
			t.Errorf("position %d = %s, want %s", i, got[i].ProductID, want)
		}
	}
}

func TestFuseBoundsPreserved(t *testing.T) {
	// Fusing two scores in [0,1] with weights summing to 1 stays in [0,1].
	id := uuid.New()
	got := Fuse([]*contract.ScoredProduct{scoredProduct(id, 1.0, 1.0)}, true, true, DefaultConfig())
	if got[0].FusedScore < 0 || got[0].FusedScore > 1 {
		t.Errorf("FusedScore %f out of [0,1]", got[0].FusedScore)
	}
}

func TestFuseDeduplicatesKeepingFirst(t *testing.T) {
	id := uuid.New()
	scored := []*contract.ScoredProduct{
		scoredProduct(id, 0.9, 0.9),
		scoredProduct(id, 0.1, 0.1),
	}

	got := Fuse(scored, true, true, DefaultConfig())

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1 after dedup", len(got))
	}
	if got[0].TextScore != 0.9 {
		t.Errorf("kept the wrong duplicate: TextScore = %f", got[0].TextScore)
	}
}

func TestFuseTruncatesToTopK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopK = 3
	scored := make([]*contract.ScoredProduct, 10)
	for i := range scored {
		scored[i] = scoredProduct(uuid.New(), float64(i)/10, float64(i)/10)
	}

	got := Fuse(scored, true, true, cfg)

	if len(got) != 3 {
		t.Errorf("got %d candidates, want 3", len(got))
	}
}

func TestFuseEmptyInput(t *testing.T) {
	got := Fuse(nil, true, true, DefaultConfig())
	if len(got) != 0 {
		t.Errorf("got %d candidates from empty input", len(got))
	}
}

func TestFuseSkipsNilProducts(t *testing.T) {
	got := Fuse([]*contract.ScoredProduct{{Product: nil, TextScore: 0.9}}, true, false, DefaultConfig())
	if len(got) != 0 {
		t.Errorf("nil product row should be skipped")
	}
}

type stubEmbedder struct {
	textVec  []float32
	imageVec []float32
	textErr  error
	imageErr error
}

func (s *stubEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if s.textErr != nil {
		return nil, s.textErr
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: s.textVec}}, nil
}

func (s *stubEmbedder) GenerateImage(ctx context.Context, imagePath string) (*embedding.EmbeddingResponse, error) {
	if s.imageErr != nil {
		return nil, s.imageErr
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: s.imageVec}}, nil
}

type stubEmbeddingRepo struct {
	contract.ProductEmbeddingRepository
	scored   []*contract.ScoredProduct
	gotText  []float32
	gotImage []float32
}

func (s *stubEmbeddingRepo) SearchHybridWithScores(ctx context.Context, textVector, imageVector []float32, limit int) ([]*contract.ScoredProduct, error) {
	s.gotText = textVector
	s.gotImage = imageVector
	return s.scored, nil
}

func TestSearchTextOnly(t *testing.T) {
	id := uuid.New()
	repo := &stubEmbeddingRepo{scored: []*contract.ScoredProduct{scoredProduct(id, 0.7, 0)}}
	embedder := &stubEmbedder{textVec: []float32{0.1, 0.2}, imageErr: embedding.ErrImageNotSupported}
	r := NewRetriever(embedder, repo, DefaultConfig(), discardLogger())

	got, err := r.Search(context.Background(), nil, "red cotton shirt", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ProductID != id.String() {
		t.Fatalf("got %v, want single candidate %s", got, id)
	}
	if got[0].FusedScore != 0.7 {
		t.Errorf("FusedScore = %f, want text score passed through", got[0].FusedScore)
	}
	if repo.gotText == nil || repo.gotImage != nil {
		t.Errorf("repo queried with text=%v image=%v, want text only", repo.gotText, repo.gotImage)
	}
}

func TestSearchBothModalities(t *testing.T) {
	id := uuid.New()
	repo := &stubEmbeddingRepo{scored: []*contract.ScoredProduct{scoredProduct(id, 0.5, 1.0)}}
	embedder := &stubEmbedder{textVec: []float32{0.1}, imageVec: []float32{0.9}}
	r := NewRetriever(embedder, repo, DefaultConfig(), discardLogger())

	got, err := r.Search(context.Background(), store.FactSet{"color": "red"}, "", "uploads/shirt.jpg")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := 0.8*1.0 + 0.2*0.5
	if math.Abs(got[0].FusedScore-want) > 1e-9 {
		t.Errorf("FusedScore = %f, want %f", got[0].FusedScore, want)
	}
	if repo.gotText == nil || repo.gotImage == nil {
		t.Errorf("repo queried with text=%v image=%v, want both modalities", repo.gotText, repo.gotImage)
	}
}

func TestSearchNoModalityEmbeddable(t *testing.T) {
	repo := &stubEmbeddingRepo{}
	embedder := &stubEmbedder{textErr: errors.New("provider down"), imageErr: errors.New("provider down")}
	r := NewRetriever(embedder, repo, DefaultConfig(), discardLogger())

	if _, err := r.Search(context.Background(), nil, "red shirt", "uploads/shirt.jpg"); err == nil {
		t.Fatal("want error when no modality could be embedded")
	}
}

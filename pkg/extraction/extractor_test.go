package extraction

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"shopping-assistant-be/pkg/llm"
)

type stubProvider struct {
	reply       string
	err         error
	lastHistory []llm.Message
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.lastHistory = history
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

func newExtractor(p llm.LLMProvider) *Extractor {
	return NewExtractor(p, log.New(io.Discard, "", 0))
}

func TestExtractParsesFencedJSON(t *testing.T) {
	p := &stubProvider{reply: "```json\n{\"product_type\": \"t-shirt\", \"color\": \"red\"}\n```"}

	facts, err := newExtractor(p).Extract(context.Background(), "red t-shirt", "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if facts["product_type"] != "t-shirt" || facts["color"] != "red" {
		t.Errorf("facts = %v", facts)
	}
}

func TestExtractEmptyObjectIsNotAnError(t *testing.T) {
	p := &stubProvider{reply: "{}"}

	facts, err := newExtractor(p).Extract(context.Background(), "hmm", "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !facts.IsEmpty() {
		t.Errorf("facts = %v, want empty", facts)
	}
}

func TestExtractDropsBlankValues(t *testing.T) {
	p := &stubProvider{reply: `{"color": "blue", "brand": ""}`}

	facts, err := newExtractor(p).Extract(context.Background(), "blue one", "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if facts.Has("brand") {
		t.Error("blank brand should be dropped")
	}
	if facts["color"] != "blue" {
		t.Errorf("color = %q", facts["color"])
	}
}

func TestExtractProviderErrorPropagates(t *testing.T) {
	p := &stubProvider{err: errors.New("model unavailable")}

	if _, err := newExtractor(p).Extract(context.Background(), "x", ""); err == nil {
		t.Fatal("want error")
	}
}

func TestExtractGarbageResponseIsAnError(t *testing.T) {
	p := &stubProvider{reply: "I found a nice shirt for you!"}

	if _, err := newExtractor(p).Extract(context.Background(), "x", ""); err == nil {
		t.Fatal("want error for non-JSON response")
	}
}

func TestExtractMissingImageDegradesToTextOnly(t *testing.T) {
	p := &stubProvider{reply: `{"color": "red"}`}

	facts, err := newExtractor(p).Extract(context.Background(), "like this", "/nonexistent/image.jpg")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if facts["color"] != "red" {
		t.Errorf("facts = %v", facts)
	}
	if len(p.lastHistory) != 2 || len(p.lastHistory[1].Images) != 0 {
		t.Error("unreadable image must not be attached")
	}
}

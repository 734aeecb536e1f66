package guardrails

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"shopping-assistant-be/pkg/llm"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

func newChecker(p llm.LLMProvider) *Checker {
	return NewChecker(p, log.New(io.Discard, "", 0))
}

func TestCheckSafeInput(t *testing.T) {
	c := newChecker(&stubProvider{reply: `{"is_safe": true, "issues": [], "severity": "low"}`})

	v := c.Check(context.Background(), "red t-shirt")

	if !v.IsSafe {
		t.Error("safe input flagged")
	}
}

func TestCheckUnsafeInput(t *testing.T) {
	c := newChecker(&stubProvider{reply: `{"is_safe": false, "issues": ["harassment"], "severity": "high"}`})

	v := c.Check(context.Background(), "something nasty")

	if v.IsSafe {
		t.Fatal("unsafe input allowed")
	}
	if v.Severity != SeverityHigh {
		t.Errorf("Severity = %s, want high", v.Severity)
	}
	if len(v.Issues) != 1 {
		t.Errorf("Issues = %v", v.Issues)
	}
}

func TestCheckFailsOpenOnProviderError(t *testing.T) {
	c := newChecker(&stubProvider{err: errors.New("model unavailable")})

	v := c.Check(context.Background(), "anything")

	if !v.IsSafe {
		t.Error("moderation failure must not block the turn")
	}
}

func TestCheckFailsOpenOnGarbageResponse(t *testing.T) {
	c := newChecker(&stubProvider{reply: "cannot comply"})

	v := c.Check(context.Background(), "anything")

	if !v.IsSafe {
		t.Error("unparseable moderation must not block the turn")
	}
}

func TestRejectionReplyBySeverity(t *testing.T) {
	tests := []struct {
		severity Severity
		contains string
	}{
		{SeverityHigh, "can't help with that"},
		{SeverityMedium, "stay focused on shopping"},
		{SeverityLow, "What are you shopping for"},
	}
	for _, tt := range tests {
		v := Verdict{Severity: tt.severity}
		got := v.RejectionReply()
		if !strings.Contains(got, tt.contains) {
			t.Errorf("rejection for %s = %q, want substring %q", tt.severity, got, tt.contains)
		}
	}
}

package quiz

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/scentdex/internal/domain"
)

func TestNewAnswerNormalizesValue(t *testing.T) {
	a := NewAnswer(" style ", "  Fresh_Clean  ", " loves the sea ")

	if a.QuestionID() != "style" {
		t.Errorf("QuestionID = %q, want %q", a.QuestionID(), "style")
	}
	if a.Value() != "fresh_clean" {
		t.Errorf("Value = %q, want %q", a.Value(), "fresh_clean")
	}
	if a.Context() != "loves the sea" {
		t.Errorf("Context = %q, want %q", a.Context(), "loves the sea")
	}
}

func TestNewResponseSetEmpty(t *testing.T) {
	_, err := NewResponseSet(nil)
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestValueFor(t *testing.T) {
	rs, err := NewResponseSet([]Answer{
		NewAnswer("style", "fresh_clean", ""),
		NewAnswer("occasion", "everyday_casual", ""),
	})
	if err != nil {
		t.Fatalf("NewResponseSet: %v", err)
	}

	v, ok := rs.ValueFor("occasion")
	if !ok || v != "everyday_casual" {
		t.Errorf("ValueFor(occasion) = %q, %v", v, ok)
	}
	if _, ok := rs.ValueFor("missing"); ok {
		t.Error("ValueFor(missing) should report not found")
	}
}

func TestNormalizedKeyIsOrderIndependent(t *testing.T) {
	a, err := NewResponseSet([]Answer{
		NewAnswer("style", "fresh_clean", ""),
		NewAnswer("occasion", "everyday_casual", ""),
	})
	if err != nil {
		t.Fatalf("NewResponseSet: %v", err)
	}
	b, err := NewResponseSet([]Answer{
		NewAnswer("occasion", "everyday_casual", ""),
		NewAnswer("style", "fresh_clean", ""),
	})
	if err != nil {
		t.Fatalf("NewResponseSet: %v", err)
	}

	if a.NormalizedKey() != b.NormalizedKey() {
		t.Errorf("keys differ: %q vs %q", a.NormalizedKey(), b.NormalizedKey())
	}
}

func TestNormalizedKeyIgnoresContext(t *testing.T) {
	a, _ := NewResponseSet([]Answer{NewAnswer("style", "fresh_clean", "some context")})
	b, _ := NewResponseSet([]Answer{NewAnswer("style", "fresh_clean", "other context")})

	if a.NormalizedKey() != b.NormalizedKey() {
		t.Errorf("context must not affect the key: %q vs %q", a.NormalizedKey(), b.NormalizedKey())
	}
}

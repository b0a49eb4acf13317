package personality

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/quiz"
)

func responseSet(t *testing.T, answers ...quiz.Answer) *quiz.ResponseSet {
	t.Helper()
	rs, err := quiz.NewResponseSet(answers)
	if err != nil {
		t.Fatalf("NewResponseSet: %v", err)
	}
	return &rs
}

func TestAnalyzeEmptyInput(t *testing.T) {
	svc := New(quiz.DefaultMapping())

	_, err := svc.Analyze(context.Background(), nil)
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAnalyzeProducesNormalizedProfile(t *testing.T) {
	svc := New(quiz.DefaultMapping())
	rs := responseSet(t,
		quiz.NewAnswer("style", "fresh_clean", ""),
		quiz.NewAnswer("occasion", "everyday_casual", ""),
	)

	p, err := svc.Analyze(context.Background(), rs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	var sumSq float64
	for _, v := range p.Scores() {
		sumSq += v * v
	}
	if math.Abs(sumSq-1) > 1e-9 {
		t.Errorf("profile norm^2 = %v, want 1", sumSq)
	}

	// Both answers favor fresh, so it must dominate.
	if dom := p.DominantFamilies(); len(dom) == 0 || dom[0] != "fresh" {
		t.Errorf("DominantFamilies = %v, want fresh first", dom)
	}
}

func TestAnalyzeConfidenceScalesWithAnswers(t *testing.T) {
	svc := New(quiz.DefaultMapping())

	one := responseSet(t, quiz.NewAnswer("style", "fresh_clean", ""))
	p, err := svc.Analyze(context.Background(), one)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Confidence() != 0.25 {
		t.Errorf("one answer: Confidence = %v, want 0.25", p.Confidence())
	}

	five := responseSet(t,
		quiz.NewAnswer("q1", "fresh_clean", ""),
		quiz.NewAnswer("q2", "everyday_casual", ""),
		quiz.NewAnswer("q3", "summer", ""),
		quiz.NewAnswer("q4", "light_subtle", ""),
		quiz.NewAnswer("q5", "spring", ""),
	)
	p, err = svc.Analyze(context.Background(), five)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Confidence() != 1 {
		t.Errorf("five answers: Confidence = %v, want capped at 1", p.Confidence())
	}
}

func TestAnalyzeSkipsUnmappedValues(t *testing.T) {
	svc := New(quiz.DefaultMapping())
	rs := responseSet(t,
		quiz.NewAnswer("style", "no_such_value", ""),
		quiz.NewAnswer("occasion", "everyday_casual", ""),
	)

	p, err := svc.Analyze(context.Background(), rs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// Only the mapped answer counts toward confidence.
	if p.Confidence() != 0.25 {
		t.Errorf("Confidence = %v, want 0.25", p.Confidence())
	}
}

func TestAnalyzeAllUnmapped(t *testing.T) {
	svc := New(quiz.DefaultMapping())
	rs := responseSet(t, quiz.NewAnswer("style", "no_such_value", ""))

	p, err := svc.Analyze(context.Background(), rs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if p.Confidence() != 0 {
		t.Errorf("Confidence = %v, want 0", p.Confidence())
	}
	if len(p.DominantFamilies()) != 0 {
		t.Errorf("DominantFamilies = %v, want empty", p.DominantFamilies())
	}
}

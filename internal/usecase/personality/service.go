// Package personality converts quiz answers into a personality profile.
package personality

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/profile"
	"github.com/kailas-cloud/scentdex/internal/domain/quiz"
	"github.com/kailas-cloud/scentdex/internal/logger"
)

// confidencePerAnswer is the confidence contributed by each answer that
// produced a non-zero family contribution, capped at 1.0 overall.
const confidencePerAnswer = 0.25

// Service is the personality analyzer.
type Service struct {
	mapping *quiz.Mapping
}

// New creates a personality analyzer over a validated answer mapping.
func New(mapping *quiz.Mapping) *Service {
	return &Service{mapping: mapping}
}

// Analyze derives a profile from an ordered answer sequence: each mapped
// answer contributes a sparse family vector, contributions are summed and
// L2-normalized. Unmapped answer values contribute zero and are logged, not
// rejected; the profile is always produced, possibly with confidence 0.
// Fails only with domain.ErrEmptyInput on an empty sequence.
func (s *Service) Analyze(ctx context.Context, responses *quiz.ResponseSet) (profile.Profile, error) {
	if responses == nil || responses.Len() == 0 {
		return profile.Profile{}, domain.ErrEmptyInput
	}

	log := logger.FromContext(ctx)

	scores := make(map[string]float64)
	mapped := 0
	for _, a := range responses.Answers() {
		contrib, ok := s.mapping.Lookup(a.Value())
		if !ok {
			log.Warn("unmapped quiz answer value",
				zap.String("question_id", a.QuestionID()),
				zap.String("value", a.Value()),
			)
			continue
		}
		for family, weight := range contrib {
			scores[family] += weight
		}
		mapped++
	}

	normalize(scores)

	confidence := float64(mapped) * confidencePerAnswer
	if confidence > 1 {
		confidence = 1
	}

	return profile.New(scores, confidence), nil
}

// normalize scales the score map to unit L2 norm in place.
func normalize(scores map[string]float64) {
	var sumSq float64
	for _, v := range scores {
		sumSq += v * v
	}
	if sumSq == 0 {
		return
	}
	norm := math.Sqrt(sumSq)
	for k, v := range scores {
		scores[k] = v / norm
	}
}

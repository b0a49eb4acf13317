// Package experience infers the requester's fragrance-domain expertise.
package experience

import (
	"context"
	"strings"

	"github.com/kailas-cloud/scentdex/internal/domain/experience"
	"github.com/kailas-cloud/scentdex/internal/domain/quiz"
	"github.com/kailas-cloud/scentdex/internal/domain/recommend"
)

// Config holds the classifier's swappable signal configuration. The keyword
// indicator lists are heuristic and tuned per quiz question set, so they live
// in configuration rather than code.
type Config struct {
	ExplicitQuestionID string
	BeginnerIndicators []string
	AdvancedIndicators []string
	// History thresholds on interaction count.
	HistoryIntermediateMin int
	HistoryAdvancedMin     int
}

// DefaultConfig returns the built-in classifier configuration.
func DefaultConfig() Config {
	return Config{
		ExplicitQuestionID: "experience_level",
		BeginnerIndicators: []string{
			"first", "new", "beginner", "never", "starting", "not sure", "help me",
		},
		AdvancedIndicators: []string{
			"collection", "niche", "sillage", "longevity", "projection",
			"top notes", "dry down", "drydown", "batch", "flanker",
		},
		HistoryIntermediateMin: 10,
		HistoryAdvancedMin:     50,
	}
}

// Service classifies the requester's expertise level. It never fails; every
// path returns a level plus the source that produced it.
type Service struct {
	cfg Config
}

// New creates an experience classifier.
func New(cfg Config) *Service {
	if cfg.ExplicitQuestionID == "" {
		cfg.ExplicitQuestionID = DefaultConfig().ExplicitQuestionID
	}
	if cfg.HistoryIntermediateMin <= 0 {
		cfg.HistoryIntermediateMin = DefaultConfig().HistoryIntermediateMin
	}
	if cfg.HistoryAdvancedMin <= 0 {
		cfg.HistoryAdvancedMin = DefaultConfig().HistoryAdvancedMin
	}
	return &Service{cfg: cfg}
}

// Classify applies the decision policy in priority order: explicit question,
// keyword indicators, interaction history, then the context default.
//
// The default is beginner for guests and intermediate for authenticated
// users. Unauthenticated quiz takers are assumed to be novices unless they
// signal otherwise; a higher default silently skips the beginner explanation
// path and produces jargon-heavy output.
func (s *Service) Classify(
	_ context.Context, responses *quiz.ResponseSet, req *recommend.Request,
) experience.Classification {
	if responses != nil {
		if c, ok := s.fromExplicitAnswer(responses); ok {
			return c
		}
		if c, ok := s.fromKeywords(responses); ok {
			return c
		}
	}

	if h := req.History(); h != nil && h.InteractionCount > 0 {
		return s.fromHistory(h)
	}

	if req.IsGuest() {
		return experience.NewClassification(experience.Beginner, experience.SourceDefault, 0.5)
	}
	return experience.NewClassification(experience.Intermediate, experience.SourceDefault, 0.5)
}

// fromExplicitAnswer honors a direct experience-level question, which is
// authoritative when present.
func (s *Service) fromExplicitAnswer(responses *quiz.ResponseSet) (experience.Classification, bool) {
	value, ok := responses.ValueFor(s.cfg.ExplicitQuestionID)
	if !ok {
		return experience.Classification{}, false
	}

	level := experience.Level(value)
	if !level.IsValid() {
		return experience.Classification{}, false
	}
	return experience.NewClassification(level, experience.SourceExplicit, 1.0), true
}

// fromKeywords scores beginner and advanced indicator matches across answer
// values and free-form context. The side with more matches wins; an even
// non-zero split reads as intermediate.
func (s *Service) fromKeywords(responses *quiz.ResponseSet) (experience.Classification, bool) {
	var beginnerHits, advancedHits int
	for _, a := range responses.Answers() {
		text := a.Value()
		if a.Context() != "" {
			text += " " + strings.ToLower(a.Context())
		}
		beginnerHits += countMatches(text, s.cfg.BeginnerIndicators)
		advancedHits += countMatches(text, s.cfg.AdvancedIndicators)
	}

	total := beginnerHits + advancedHits
	if total == 0 {
		return experience.Classification{}, false
	}

	confidence := 0.6 + 0.1*float64(total)
	switch {
	case advancedHits > beginnerHits:
		return experience.NewClassification(experience.Advanced, experience.SourceKeyword, confidence), true
	case beginnerHits > advancedHits:
		return experience.NewClassification(experience.Beginner, experience.SourceKeyword, confidence), true
	default:
		return experience.NewClassification(experience.Intermediate, experience.SourceKeyword, confidence), true
	}
}

func (s *Service) fromHistory(h *recommend.History) experience.Classification {
	switch {
	case h.InteractionCount >= s.cfg.HistoryAdvancedMin:
		return experience.NewClassification(experience.Advanced, experience.SourceHistory, 0.7)
	case h.InteractionCount >= s.cfg.HistoryIntermediateMin:
		return experience.NewClassification(experience.Intermediate, experience.SourceHistory, 0.7)
	default:
		return experience.NewClassification(experience.Beginner, experience.SourceHistory, 0.7)
	}
}

func countMatches(text string, indicators []string) int {
	n := 0
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			n++
		}
	}
	return n
}

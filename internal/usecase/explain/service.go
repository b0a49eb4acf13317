// Package explain produces natural-language explanations for scored
// candidates through a three-tier generation fallback chain.
package explain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/experience"
	"github.com/kailas-cloud/scentdex/internal/domain/recommend"
	"github.com/kailas-cloud/scentdex/internal/logger"
	"github.com/kailas-cloud/scentdex/internal/metrics"
)

// Input carries everything one explanation needs: the candidate, the
// request's experience classification, the profile's stated preferences,
// and the word budgets in force.
type Input struct {
	Candidate   recommend.ScoredCandidate
	Level       experience.Classification
	Preferences []string
	Budgets     Budgets
}

// Service drives the generation chain: specialized, then adaptive, then
// template. First success wins; the template tier cannot fail.
type Service struct {
	provider    Generator
	budgets     Budgets
	tierTimeout time.Duration
}

// New creates an explanation service. provider may be nil, in which case
// every explanation comes from the template tier.
func New(provider Generator, budgets Budgets, tierTimeout time.Duration) *Service {
	if budgets.BeginnerMax <= 0 {
		budgets = DefaultBudgets()
	}
	if tierTimeout <= 0 {
		tierTimeout = 5 * time.Second
	}
	return &Service{provider: provider, budgets: budgets, tierTimeout: tierTimeout}
}

// Budgets returns the word budgets in force.
func (s *Service) Budgets() Budgets { return s.budgets }

// Explain runs the fallback chain for one candidate. The returned outcomes
// record every tier attempted, in order, so the chain's behavior is
// observable; the final outcome is always a success.
func (s *Service) Explain(ctx context.Context, in Input) (recommend.Explanation, []recommend.TierOutcome) {
	in.Budgets = s.budgets
	outcomes := make([]recommend.TierOutcome, 0, 3)

	if s.provider != nil {
		maxWords := s.budgets.MaxWords(in.Level.Level())

		exp, err := s.generate(ctx, recommend.TierSpecialized, specializedPrompt(in, maxWords), in)
		if err == nil {
			outcomes = append(outcomes, recommend.TierSuccess(recommend.TierSpecialized, exp))
			return exp, outcomes
		}
		outcomes = append(outcomes, recommend.TierFailure(recommend.TierSpecialized, err))
		s.logFallback(ctx, recommend.TierSpecialized, err)

		exp, err = s.generate(ctx, recommend.TierAdaptive, adaptivePrompt(in, maxWords), in)
		if err == nil {
			outcomes = append(outcomes, recommend.TierSuccess(recommend.TierAdaptive, exp))
			return exp, outcomes
		}
		outcomes = append(outcomes, recommend.TierFailure(recommend.TierAdaptive, err))
		s.logFallback(ctx, recommend.TierAdaptive, err)
	}

	exp := s.Template(in)
	outcomes = append(outcomes, recommend.TierSuccess(recommend.TierTemplate, exp))
	return exp, outcomes
}

// Template renders the tier-3 explanation directly, bypassing the generative
// tiers. Used for the catalog-only strategy and when the orchestrator's
// aggregate explanation budget is exhausted.
func (s *Service) Template(in Input) recommend.Explanation {
	in.Budgets = s.budgets
	metrics.GenerationRequestsTotal.WithLabelValues(string(recommend.TierTemplate), "success").Inc()
	return buildTemplate(in)
}

// generate runs one generative tier with a bounded timeout. A timed-out call
// is not retried; the caller falls through to the next tier.
func (s *Service) generate(
	ctx context.Context, tier recommend.Tier, prompt string, in Input,
) (recommend.Explanation, error) {
	tierCtx, cancel := context.WithTimeout(ctx, s.tierTimeout)
	defer cancel()

	maxWords := s.budgets.MaxWords(in.Level.Level())

	start := time.Now()
	// Rough words-to-tokens ratio; the budget enforcement below is the
	// actual contract.
	text, err := s.provider.Generate(tierCtx, prompt, maxWords*3)
	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(string(tier), "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return recommend.Explanation{}, fmt.Errorf("%s tier: %w", tier, domain.ErrGenerationTimeout)
		}
		if errors.Is(err, domain.ErrGenerationTimeout) || errors.Is(err, domain.ErrGenerationProvider) {
			return recommend.Explanation{}, fmt.Errorf("%s tier: %w", tier, err)
		}
		return recommend.Explanation{}, fmt.Errorf("%s tier: %w: %w", tier, domain.ErrGenerationProvider, err)
	}
	if text == "" {
		metrics.GenerationRequestsTotal.WithLabelValues(string(tier), "error").Inc()
		return recommend.Explanation{}, fmt.Errorf("%s tier: empty response: %w", tier, domain.ErrGenerationProvider)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(string(tier), "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(string(tier)).Observe(duration.Seconds())

	summary := s.budgets.Enforce(text, in.Level.Level())

	var terms map[string]string
	if tier == recommend.TierSpecialized && in.Level.Level() == experience.Beginner {
		term, definition := termFor(in.Candidate.Item().ID)
		terms = map[string]string{term: definition}
	}

	return recommend.NewExplanation(summary, "", terms, tier), nil
}

func (s *Service) logFallback(ctx context.Context, tier recommend.Tier, err error) {
	reason := "provider_error"
	if errors.Is(err, domain.ErrGenerationTimeout) {
		reason = "timeout"
	}
	metrics.GenerationFallbacksTotal.WithLabelValues(string(tier), reason).Inc()
	logger.FromContext(ctx).Warn("generation tier failed, falling back",
		zap.String("tier", string(tier)),
		zap.Error(err),
	)
}

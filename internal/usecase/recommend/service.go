// Package recommend orchestrates the full recommendation pipeline.
package recommend

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/experience"
	"github.com/kailas-cloud/scentdex/internal/domain/profile"
	"github.com/kailas-cloud/scentdex/internal/domain/quiz"
	domrec "github.com/kailas-cloud/scentdex/internal/domain/recommend"
	"github.com/kailas-cloud/scentdex/internal/logger"
	"github.com/kailas-cloud/scentdex/internal/metrics"
	"github.com/kailas-cloud/scentdex/internal/usecase/explain"
	"github.com/kailas-cloud/scentdex/internal/usecase/similarity"
)

// overFetchFactor is how many times the requested count the similarity
// search retrieves, leaving room for post-filtering.
const overFetchFactor = 2

// Config holds orchestrator tunables.
type Config struct {
	// MinCandidates is the floor below which the request fails with
	// ErrInsufficientCandidates.
	MinCandidates int
	// ExplainBudget is the aggregate wall-clock limit for the explanation
	// fan-out; candidates still pending when it expires get template-tier
	// explanations instead of blocking the response.
	ExplainBudget time.Duration
	// GuestTTL caches anonymous quiz sessions, which iterate rapidly.
	GuestTTL time.Duration
	// UserTTL caches authenticated personalized recommendations.
	UserTTL time.Duration
}

// DefaultConfig returns the standard orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		MinCandidates: 1,
		ExplainBudget: 10 * time.Second,
		GuestTTL:      5 * time.Minute,
		UserTTL:       time.Hour,
	}
}

// Service is the recommendation orchestrator, the engine's public entry point.
type Service struct {
	analyzer   Analyzer
	searcher   Searcher
	scorer     Scorer
	classifier Classifier
	explainer  Explainer
	cache      Cache
	cfg        Config
}

// New creates the orchestrator.
func New(
	analyzer Analyzer,
	searcher Searcher,
	scorer Scorer,
	classifier Classifier,
	explainer Explainer,
	cache Cache,
	cfg Config,
) *Service {
	if cfg.MinCandidates <= 0 {
		cfg.MinCandidates = DefaultConfig().MinCandidates
	}
	if cfg.ExplainBudget <= 0 {
		cfg.ExplainBudget = DefaultConfig().ExplainBudget
	}
	if cfg.GuestTTL <= 0 {
		cfg.GuestTTL = DefaultConfig().GuestTTL
	}
	if cfg.UserTTL <= 0 {
		cfg.UserTTL = DefaultConfig().UserTTL
	}
	return &Service{
		analyzer:   analyzer,
		searcher:   searcher,
		scorer:     scorer,
		classifier: classifier,
		explainer:  explainer,
		cache:      cache,
		cfg:        cfg,
	}
}

// Generate runs the pipeline: cache lookup, profile analysis, candidate
// retrieval, hybrid scoring, expertise classification, explanation fan-out,
// and cache write-through.
//
// The only errors surfaced to the caller are ErrEmptyInput,
// ErrNoEmbeddingData, and ErrInsufficientCandidates; every generation
// failure is absorbed into the Degraded flag and per-item tiers. Partial
// degradation is preferred to total failure.
func (s *Service) Generate(ctx context.Context, req *domrec.Request) (domrec.Result, error) {
	log := logger.FromContext(ctx)

	key := s.cache.Key(req)
	if cached, ok := s.cache.Get(ctx, key); ok {
		log.Debug("recommendation cache hit", zap.String("key", key))
		return cached, nil
	}

	prof, err := s.buildProfile(ctx, req)
	if err != nil {
		return domrec.Result{}, err
	}

	matches, err := s.fetchCandidates(ctx, req, &prof)
	if err != nil {
		return domrec.Result{}, err
	}

	candidates := s.scorer.Score(matches, &prof, req.PreferredBrands())
	if len(candidates) > req.Limit() {
		candidates = candidates[:req.Limit()]
	}
	if len(candidates) < s.cfg.MinCandidates {
		return domrec.Result{}, fmt.Errorf(
			"%w: %d scored, need %d", domain.ErrInsufficientCandidates,
			len(candidates), s.cfg.MinCandidates,
		)
	}

	classification := s.classifier.Classify(ctx, req.Responses(), req)

	recs, degraded := s.explainAll(ctx, req.Strategy(), candidates, classification, &prof)

	ttl := s.cfg.GuestTTL
	if !req.IsGuest() {
		ttl = s.cfg.UserTTL
	}

	result := domrec.Result{
		Recommendations: recs,
		ExperienceLevel: classification,
		StrategyUsed:    req.Strategy(),
		Degraded:        degraded,
		Cache:           domrec.CacheInfo{Hit: false, ExpiresAt: time.Now().Add(ttl)},
	}

	if err := s.cache.Put(ctx, key, &result, ttl); err != nil {
		// A cache write failure costs recomputation, not correctness.
		log.Warn("failed to write recommendation cache", zap.String("key", key), zap.Error(err))
	}

	metrics.RecommendationsServedTotal.
		WithLabelValues(string(req.Strategy()), strconv.FormatBool(degraded)).Inc()

	return result, nil
}

// buildProfile analyzes quiz answers when present. Identity-only requests
// get an empty profile; ranking then rests on popularity and rule signals.
func (s *Service) buildProfile(ctx context.Context, req *domrec.Request) (profile.Profile, error) {
	if req.Responses() == nil {
		return profile.New(nil, 0), nil
	}
	prof, err := s.analyzer.Analyze(ctx, req.Responses())
	if err != nil {
		return profile.Profile{}, fmt.Errorf("analyze personality: %w", err)
	}
	return prof, nil
}

// fetchCandidates over-fetches so post-filtering still fills the requested count.
func (s *Service) fetchCandidates(
	ctx context.Context, req *domrec.Request, prof *profile.Profile,
) ([]similarity.Match, error) {
	k := req.Limit() * overFetchFactor

	if req.Strategy() == domrec.GenerationOnly {
		return s.searcher.ByPopularity(ctx, k, req.ExcludeIDs())
	}
	return s.searcher.TopK(ctx, prof.Vector(quiz.Families), k, req.ExcludeIDs())
}

// explainAll fans explanation generation out across candidates, bounded by
// the aggregate explanation budget. Each candidate's chain bottoms out at
// the template tier, so the fan-out never fails; a budget overrun merely
// degrades stragglers to templates via context cancellation.
func (s *Service) explainAll(
	ctx context.Context,
	strategy domrec.Strategy,
	candidates []domrec.ScoredCandidate,
	classification experience.Classification,
	prof *profile.Profile,
) ([]domrec.Recommendation, bool) {
	prefs := prof.TopFamilies(3)
	if len(prefs) == 0 {
		prefs = []string{quiz.FamilyFresh}
	}

	recs := make([]domrec.Recommendation, len(candidates))

	// Catalog-only never calls the generation provider; the template tier
	// is its topmost tier, so these responses are not degraded.
	if strategy == domrec.CatalogOnly {
		for i, c := range candidates {
			in := explain.Input{Candidate: c, Level: classification, Preferences: prefs}
			recs[i] = domrec.Recommendation{Candidate: c, Explanation: s.explainer.Template(in)}
		}
		return recs, false
	}

	explainCtx, cancel := context.WithTimeout(ctx, s.cfg.ExplainBudget)
	defer cancel()

	var wg sync.WaitGroup
	degradedFlags := make([]bool, len(candidates))
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c domrec.ScoredCandidate) {
			defer wg.Done()
			in := explain.Input{Candidate: c, Level: classification, Preferences: prefs}
			exp, outcomes := s.explainer.Explain(explainCtx, in)
			recs[i] = domrec.Recommendation{Candidate: c, Explanation: exp}
			degradedFlags[i] = len(outcomes) > 1 || exp.Tier() != domrec.TierSpecialized
		}(i, c)
	}
	wg.Wait()

	degraded := false
	for _, d := range degradedFlags {
		if d {
			degraded = true
			break
		}
	}
	return recs, degraded
}

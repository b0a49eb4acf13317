package reccache

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/scentdex/internal/db/memory"
	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/experience"
	"github.com/kailas-cloud/scentdex/internal/domain/quiz"
	"github.com/kailas-cloud/scentdex/internal/domain/recommend"
)

func testResult() recommend.Result {
	item := domain.FragranceItem{
		ID: "frag-1", Name: "Aqua Test", Brand: "Testbrand",
		Accords: []string{"citrus", "aquatic"}, RatingValue: 4.2, RatingCount: 120,
	}
	candidate := recommend.NewScoredCandidate(item, 0.8,
		recommend.SubScores{AccordOverlap: 0.5}, 0.7).WithRank(1)
	explanation := recommend.NewExplanation("A fresh pick.", "", nil, recommend.TierTemplate)

	return recommend.Result{
		Recommendations: []recommend.Recommendation{{Candidate: candidate, Explanation: explanation}},
		ExperienceLevel: experience.NewClassification(
			experience.Beginner, experience.SourceDefault, 0.5),
		StrategyUsed: recommend.Hybrid,
		Degraded:     false,
	}
}

func guestRequest(t *testing.T) *recommend.Request {
	t.Helper()
	rs, err := quiz.NewResponseSet([]quiz.Answer{
		quiz.NewAnswer("style", "fresh_clean", ""),
	})
	if err != nil {
		t.Fatalf("NewResponseSet: %v", err)
	}
	req, err := recommend.New("", &rs, "", 5, nil, nil, nil)
	if err != nil {
		t.Fatalf("recommend.New: %v", err)
	}
	return &req
}

func TestKeyIsStable(t *testing.T) {
	c := New(memory.NewStore(), nil)

	a := c.Key(guestRequest(t))
	b := c.Key(guestRequest(t))
	if a != b {
		t.Errorf("keys differ for identical requests: %q vs %q", a, b)
	}
}

func TestKeyVariesByStrategyAndLimit(t *testing.T) {
	c := New(memory.NewStore(), nil)
	rs, _ := quiz.NewResponseSet([]quiz.Answer{quiz.NewAnswer("style", "fresh_clean", "")})

	base, _ := recommend.New(recommend.Hybrid, &rs, "", 5, nil, nil, nil)
	other, _ := recommend.New(recommend.CatalogOnly, &rs, "", 5, nil, nil, nil)
	bigger, _ := recommend.New(recommend.Hybrid, &rs, "", 10, nil, nil, nil)

	if c.Key(&base) == c.Key(&other) {
		t.Error("strategy must be part of the key")
	}
	if c.Key(&base) == c.Key(&bigger) {
		t.Error("limit must be part of the key")
	}
}

func TestKeyForIdentityOnlyRequest(t *testing.T) {
	c := New(memory.NewStore(), nil)

	req, err := recommend.New("", nil, "user-1", 5, nil, nil, nil)
	if err != nil {
		t.Fatalf("recommend.New: %v", err)
	}
	if c.Key(&req) == "" {
		t.Error("identity-only request must still produce a key")
	}
}

func TestPutGetRoundtrip(t *testing.T) {
	c := New(memory.NewStore(), nil)
	ctx := context.Background()
	key := c.Key(guestRequest(t))

	res := testResult()
	if err := c.Put(ctx, key, &res, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !got.Cache.Hit {
		t.Error("Cache.Hit must be true on a cached read")
	}
	if got.Cache.ExpiresAt.IsZero() {
		t.Error("Cache.ExpiresAt must be set on a cached read")
	}
	if len(got.Recommendations) != 1 {
		t.Fatalf("len(Recommendations) = %d, want 1", len(got.Recommendations))
	}

	rec := got.Recommendations[0]
	if rec.Candidate.Item().ID != "frag-1" {
		t.Errorf("item id = %q", rec.Candidate.Item().ID)
	}
	if rec.Candidate.Rank() != 1 || rec.Candidate.Fused() != 0.7 {
		t.Errorf("rank = %d, fused = %v", rec.Candidate.Rank(), rec.Candidate.Fused())
	}
	if rec.Explanation.Tier() != recommend.TierTemplate {
		t.Errorf("tier = %s", rec.Explanation.Tier())
	}
	if got.ExperienceLevel.Level() != experience.Beginner {
		t.Errorf("level = %s", got.ExperienceLevel.Level())
	}
}

func TestGetMissOnUnknownKey(t *testing.T) {
	c := New(memory.NewStore(), nil)

	if _, ok := c.Get(context.Background(), keyPrefix+"nope"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestGetStaleEntryIsEvicted(t *testing.T) {
	now := time.Now()
	clock := now
	store := memory.NewStore()
	c := New(store, nil).WithClock(func() time.Time { return clock })
	ctx := context.Background()
	key := c.Key(guestRequest(t))

	res := testResult()
	if err := c.Put(ctx, key, &res, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Advance past expiry. The store-level TTL uses the real clock, so the
	// raw entry still exists; the cache's own expiry check must catch it.
	clock = now.Add(2 * time.Minute)

	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("expected stale entry to read as a miss")
	}

	// The stale entry must have been evicted.
	if _, err := store.Get(ctx, key); err == nil {
		t.Error("stale entry still present after eviction")
	}
}

func TestPutOverwritesExisting(t *testing.T) {
	c := New(memory.NewStore(), nil)
	ctx := context.Background()
	key := c.Key(guestRequest(t))

	first := testResult()
	if err := c.Put(ctx, key, &first, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	second := testResult()
	second.Degraded = true
	if err := c.Put(ctx, key, &second, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !got.Degraded {
		t.Error("second write did not replace the first")
	}
}

func TestInvalidate(t *testing.T) {
	c := New(memory.NewStore(), nil)
	ctx := context.Background()

	res := testResult()
	for _, key := range []string{keyPrefix + "a", keyPrefix + "b"} {
		if err := c.Put(ctx, key, &res, time.Minute); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	n, err := c.Invalidate(ctx)
	if err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if n != 2 {
		t.Errorf("Invalidate removed %d entries, want 2", n)
	}

	if _, ok := c.Get(ctx, keyPrefix+"a"); ok {
		t.Error("entry survived invalidation")
	}
}

package recommend

import (
	"fmt"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/quiz"
)

// Request limits.
const (
	DefaultLimit = 8
	MaxLimit     = 20
)

// History summarizes a requester's prior interactions, when known.
type History struct {
	InteractionCount int
	PurchaseCount    int
}

// Request is a validated recommendation request.
type Request struct {
	strategy        Strategy
	responses       *quiz.ResponseSet
	userID          string
	limit           int
	excludeIDs      map[string]struct{}
	preferredBrands []string
	history         *History
}

// New validates and normalizes request parameters.
// Defaults: strategy=hybrid, limit=8 (clamped to 20). Quiz responses are
// required unless a user identity is present.
func New(
	strategy Strategy,
	responses *quiz.ResponseSet,
	userID string,
	limit int,
	excludeIDs []string,
	preferredBrands []string,
	history *History,
) (Request, error) {
	if strategy == "" {
		strategy = Hybrid
	}
	if !strategy.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, strategy)
	}
	if responses == nil && userID == "" {
		return Request{}, fmt.Errorf("%w: quiz responses or user identity required", domain.ErrEmptyInput)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		if id != "" {
			excluded[id] = struct{}{}
		}
	}

	return Request{
		strategy:        strategy,
		responses:       responses,
		userID:          userID,
		limit:           limit,
		excludeIDs:      excluded,
		preferredBrands: preferredBrands,
		history:         history,
	}, nil
}

// Strategy returns the selected strategy.
func (r *Request) Strategy() Strategy { return r.strategy }

// Responses returns the quiz response set (nil for identity-only requests).
func (r *Request) Responses() *quiz.ResponseSet { return r.responses }

// UserID returns the authenticated user identity ("" for guests).
func (r *Request) UserID() string { return r.userID }

// IsGuest reports whether the request has no authenticated identity.
func (r *Request) IsGuest() bool { return r.userID == "" }

// Limit returns the requested result count.
func (r *Request) Limit() int { return r.limit }

// ExcludeIDs returns the set of item ids the requester already owns or has seen.
func (r *Request) ExcludeIDs() map[string]struct{} { return r.excludeIDs }

// IsExcluded reports whether an item id is in the exclusion set.
func (r *Request) IsExcluded(id string) bool {
	_, ok := r.excludeIDs[id]
	return ok
}

// PreferredBrands returns brands from the requester's prior collection.
func (r *Request) PreferredBrands() []string { return r.preferredBrands }

// History returns the historical interaction summary (nil when unknown).
func (r *Request) History() *History { return r.history }

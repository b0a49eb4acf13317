package domain

import "errors"

var (
	// ErrEmptyInput signals a request with no quiz answers where the strategy requires them.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoEmbeddingData signals a catalog with zero embedded items.
	ErrNoEmbeddingData = errors.New("no embedding data")
	// ErrInsufficientCandidates signals too few scored candidates after filtering.
	ErrInsufficientCandidates = errors.New("insufficient candidates")
	// ErrUnknownStrategy signals an unsupported recommendation strategy.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrGenerationTimeout signals a generation provider call exceeding its deadline.
	// Always recovered locally via the fallback chain, never surfaced to the caller.
	ErrGenerationTimeout = errors.New("generation timeout")
	// ErrGenerationProvider signals a generation provider failure.
	// Always recovered locally via the fallback chain, never surfaced to the caller.
	ErrGenerationProvider = errors.New("generation provider error")
)

package explain

import "context"

// Generator is the external generation provider contract. Implementations
// must honor context cancellation; the tier chain treats a deadline as an
// immediate fallback, never a synchronous retry.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

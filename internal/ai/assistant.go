package ai

import "context"

// Generator is the narrow contract the pipeline has with the external
// text-generation collaborator: one instruction in, generated text out.
// Providers decide their own transport, retries and quotas behind it.
type Generator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

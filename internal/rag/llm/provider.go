package llm

import (
	"context"
	"errors"
)

// ErrGenerationFailed is the single failure category for the external
// generation collaborator: network errors, non-2xx responses and
// malformed payloads all wrap it so callers can branch on one signal.
var ErrGenerationFailed = errors.New("generation failed")

// Provider generates an answer for an already assembled prompt. Prompt
// assembly (memory + retrieved context + question ordering) belongs to
// the orchestrator, not the provider.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

package sitekb

import "context"

// Generator produces a completion from a language model.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

package mock

import (
	"context"

	"github.com/sitekb/sitekb"
)

var _ sitekb.Generator = (*Generator)(nil)

// Generator is a mock implementation of sitekb.Generator.
type Generator struct {
	CompleteFn func(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

func (g *Generator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return g.CompleteFn(ctx, systemPrompt, userPrompt)
}

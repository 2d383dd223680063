package gemini

import (
	"context"

	"github.com/sitekb/sitekb"
	"google.golang.org/genai"
)

// DefaultGenerationModel is used when no generation model is configured.
const DefaultGenerationModel = "gemini-2.5-flash"

// generationTemperature keeps answers factual rather than creative.
const generationTemperature = float32(0.3)

// Ensure Generator implements sitekb.Generator at compile time.
var _ sitekb.Generator = (*Generator)(nil)

// Generator produces completions using the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects
// DefaultGenerationModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultGenerationModel
	}
	return &Generator{client: client, model: model}
}

// BuildConfig creates the generation config: a low temperature and the
// system prompt as system instruction, when present.
func BuildConfig(systemPrompt string) *genai.GenerateContentConfig {
	temp := generationTemperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	return config
}

// Complete sends the prompts to the model and returns the generated text.
func (g *Generator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: userPrompt}},
		}},
		BuildConfig(systemPrompt),
	)
	if err != nil {
		return "", sitekb.Errorf(sitekb.EUNAVAILABLE, "generation request failed: %v", err)
	}
	if result == nil {
		return "", sitekb.Errorf(sitekb.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

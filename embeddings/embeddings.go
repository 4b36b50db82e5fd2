// Package embeddings wraps the Gemini embedding model used for topic
// similarity between post bodies and viewer interest vectors.
package embeddings

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/config"
)

const defaultModel = "gemini-embedding-001"

// maxInputRunes keeps embedding requests under the model's input limit.
const maxInputRunes = 8000

// ModelName returns the configured embedding model name.
func ModelName() string {
	model := config.GetConfig().EmbeddingModel
	if model == "" {
		model = defaultModel
	}
	return model
}

// EmbedText returns the embedding vector of the given text.
func EmbedText(ctx context.Context, text string) ([]float64, error) {
	if rs := []rune(text); len(rs) > maxInputRunes {
		text = string(rs[:maxInputRunes])
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.GetConfig().GeminiApiKey,
	})
	if err != nil {
		return nil, err
	}

	result, err := client.Models.EmbedContent(
		ctx,
		ModelName(),
		genai.Text(text),
		nil,
	)
	if err != nil {
		return nil, err
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embedding model returned no values")
	}

	values := result.Embeddings[0].Values
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out, nil
}

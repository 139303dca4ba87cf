package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiService is the generative-text capability shared by the content
// generator and the transcript analyzer. Calls are single attempt.
type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	log        *zap.Logger
}

func NewGeminiService(apiKey, modelName, embedModel string, log *zap.Logger) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: embedModel,
		log:        log,
	}, nil
}

// maxEmbedInputRunes keeps embedding input well under the model's token limit.
const maxEmbedInputRunes = 30000

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if utf8.RuneCountInString(text) > maxEmbedInputRunes {
		text = string([]rune(text)[:maxEmbedInputRunes])
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to embed reference text: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("model %s returned no embedding", g.embedModel)
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	})
	if err != nil {
		g.log.Error("❌ Gemini API error", zap.String("model", g.modelName), zap.Error(err))
		return "", fmt.Errorf("model call failed: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("model %s returned no response", g.modelName)
	}

	if text := resp.Text(); text != "" {
		return text, nil
	}

	g.log.Warn("⚠️ No text content in Gemini response", zap.Int("candidates", len(resp.Candidates)))
	if text := candidateText(resp); text != "" {
		return text, nil
	}
	return "", fmt.Errorf("model %s returned an empty answer", g.modelName)
}

// candidateText joins the text parts of every candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	var parts []string
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

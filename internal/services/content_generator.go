package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/metrics"
)

// QuestionsParseFailed is the single question returned when the model's
// answer is not a JSON array of strings.
const QuestionsParseFailed = "Error: Could not parse questions."

const DefaultQuestionCount = 5

var errNotAnArray = errors.New("response is not a JSON array")

type ContentGenerator interface {
	GenerateQuestions(ctx context.Context, jobText, resumeText string, count int) ([]string, error)
	GenerateCheatsheet(ctx context.Context, jobText, resumeText string) (*GeneratedCheatsheet, error)
}

// GeneratedCheatsheet carries the generated text and the name of the prompt
// it came from, which is stored alongside it.
type GeneratedCheatsheet struct {
	Text   string
	Prompt string
}

type contentGenerator struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	retriever     ContextRetriever
	metrics       *metrics.Metrics
	log           *zap.Logger
}

// NewContentGenerator builds the content generator. retriever may be nil, in
// which case prompts carry no reference material.
func NewContentGenerator(
	gemini GeminiService,
	promptBuilder *PromptBuilder,
	retriever ContextRetriever,
	m *metrics.Metrics,
	log *zap.Logger,
) ContentGenerator {
	return &contentGenerator{
		gemini:        gemini,
		promptBuilder: promptBuilder,
		retriever:     retriever,
		metrics:       m,
		log:           log,
	}
}

// GenerateQuestions implements ContentGenerator. A model call failure is an
// error; an unparsable answer degrades to a single placeholder question.
func (g *contentGenerator) GenerateQuestions(ctx context.Context, jobText, resumeText string, count int) ([]string, error) {
	if count <= 0 {
		count = DefaultQuestionCount
	}

	prompt, err := g.promptBuilder.BuildQuestionsPrompt(jobText, resumeText, count, g.reference(ctx, jobText))
	if err != nil {
		return nil, ServiceError("generate_questions", "failed to build prompt", err)
	}

	done := g.metrics.Time("gemini", "generate_questions")
	response, err := g.gemini.GenerateText(ctx, prompt.Text, prompt.Temperature)
	done()
	if err != nil {
		return nil, ServiceError("generate_questions", upstreamMessage("failed to generate interview questions", err), err)
	}

	var questions []string
	err = parseJSONResponse(response, &questions, "[", "]")
	if err == nil && questions == nil {
		err = errNotAnArray
	}
	if err != nil {
		g.log.Warn("⚠️ Degrading interview questions",
			zap.Error(ErrParseDegraded),
			zap.NamedError("cause", err),
			zap.Int("response_length", len(response)),
		)
		return []string{QuestionsParseFailed}, nil
	}

	return questions, nil
}

// GenerateCheatsheet implements ContentGenerator.
func (g *contentGenerator) GenerateCheatsheet(ctx context.Context, jobText, resumeText string) (*GeneratedCheatsheet, error) {
	prompt, err := g.promptBuilder.BuildCheatsheetPrompt(jobText, resumeText, g.reference(ctx, jobText))
	if err != nil {
		return nil, ServiceError("generate_cheatsheet", "failed to build prompt", err)
	}

	done := g.metrics.Time("gemini", "generate_cheatsheet")
	response, err := g.gemini.GenerateText(ctx, prompt.Text, prompt.Temperature)
	done()
	if err != nil {
		return nil, ServiceError("generate_cheatsheet", upstreamMessage("failed to generate cheatsheet", err), err)
	}

	return &GeneratedCheatsheet{
		Text:   strings.TrimSpace(response),
		Prompt: prompt.Name,
	}, nil
}

// reference fetches interview-guide passages for the job. Retrieval is best
// effort: failures yield no reference material.
func (g *contentGenerator) reference(ctx context.Context, jobText string) string {
	if g.retriever == nil {
		return ""
	}

	reference, err := g.retriever.Retrieve(ctx, jobText)
	if err != nil {
		g.log.Warn("⚠️ Failed to retrieve reference material", zap.Error(err))
		return ""
	}

	return reference
}

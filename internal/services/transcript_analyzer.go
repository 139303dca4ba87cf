package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/metrics"
)

var errNotAnObject = errors.New("response is not a JSON object")

const (
	AnalysisFailedSummary = "Analysis failed."
	NoFeedbackSummary     = "No feedback available"
)

// TranscriptAnalysis is the scored outcome of an interview transcript.
type TranscriptAnalysis struct {
	Score               int
	FeedbackSummary     string
	Strengths           []string
	AreasForImprovement []string
}

type TranscriptAnalyzer interface {
	Analyze(ctx context.Context, transcript, jobText, resumeText string) (*TranscriptAnalysis, error)
}

type transcriptAnalyzer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	metrics       *metrics.Metrics
	log           *zap.Logger
}

func NewTranscriptAnalyzer(gemini GeminiService, promptBuilder *PromptBuilder, m *metrics.Metrics, log *zap.Logger) TranscriptAnalyzer {
	return &transcriptAnalyzer{
		gemini:        gemini,
		promptBuilder: promptBuilder,
		metrics:       m,
		log:           log,
	}
}

type analysisPayload struct {
	Score               *float64 `json:"score"`
	FeedbackSummary     *string  `json:"feedback_summary"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Strengths           []string `json:"strengths"`
}

// Analyze implements TranscriptAnalyzer. A model call failure is an error;
// an unparsable answer degrades to a zero score.
func (a *transcriptAnalyzer) Analyze(ctx context.Context, transcript, jobText, resumeText string) (*TranscriptAnalysis, error) {
	prompt, err := a.promptBuilder.BuildTranscriptAnalysisPrompt(transcript, jobText, resumeText)
	if err != nil {
		return nil, ServiceError("analyze_transcript", "failed to build prompt", err)
	}

	done := a.metrics.Time("gemini", "analyze_transcript")
	response, err := a.gemini.GenerateText(ctx, prompt.Text, prompt.Temperature)
	done()
	if err != nil {
		return nil, ServiceError("analyze_transcript", upstreamMessage("failed to analyze transcript", err), err)
	}

	var payload analysisPayload
	err = parseJSONResponse(response, &payload, "{", "}")
	if err == nil && !strings.HasPrefix(extractJSON(response, "{", "}"), "{") {
		err = errNotAnObject
	}
	if err != nil {
		a.log.Warn("⚠️ Degrading transcript analysis",
			zap.Error(ErrParseDegraded),
			zap.NamedError("cause", err),
			zap.Int("response_length", len(response)),
		)
		return failedAnalysis(), nil
	}

	return payload.toAnalysis(), nil
}

func failedAnalysis() *TranscriptAnalysis {
	return &TranscriptAnalysis{
		Score:               0,
		FeedbackSummary:     AnalysisFailedSummary,
		Strengths:           []string{},
		AreasForImprovement: []string{},
	}
}

func (p *analysisPayload) toAnalysis() *TranscriptAnalysis {
	analysis := &TranscriptAnalysis{
		FeedbackSummary:     NoFeedbackSummary,
		Strengths:           p.Strengths,
		AreasForImprovement: p.AreasForImprovement,
	}

	if p.Score != nil {
		analysis.Score = clampScore(*p.Score)
	}
	if p.FeedbackSummary != nil && strings.TrimSpace(*p.FeedbackSummary) != "" {
		analysis.FeedbackSummary = *p.FeedbackSummary
	}
	if analysis.Strengths == nil {
		analysis.Strengths = []string{}
	}
	if analysis.AreasForImprovement == nil {
		analysis.AreasForImprovement = []string{}
	}

	return analysis
}

func clampScore(score float64) int {
	s := int(math.Round(score))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

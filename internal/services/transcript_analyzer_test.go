package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     *TranscriptAnalysis
	}{
		{
			name: "fenced object",
			response: "```json\n" + `{"score": 75, "feedback_summary": "Good", ` +
				`"areas_for_improvement": ["STAR"], "strengths": ["clarity"]}` + "\n```",
			want: &TranscriptAnalysis{
				Score:               75,
				FeedbackSummary:     "Good",
				Strengths:           []string{"clarity"},
				AreasForImprovement: []string{"STAR"},
			},
		},
		{
			name:     "missing fields",
			response: `{"score": 40}`,
			want: &TranscriptAnalysis{
				Score:               40,
				FeedbackSummary:     NoFeedbackSummary,
				Strengths:           []string{},
				AreasForImprovement: []string{},
			},
		},
		{
			name:     "fractional and out of range score",
			response: `{"score": 130.6, "feedback_summary": "Great"}`,
			want: &TranscriptAnalysis{
				Score:               100,
				FeedbackSummary:     "Great",
				Strengths:           []string{},
				AreasForImprovement: []string{},
			},
		},
		{
			name:     "negative score",
			response: `{"score": -5, "feedback_summary": "Poor"}`,
			want: &TranscriptAnalysis{
				Score:               0,
				FeedbackSummary:     "Poor",
				Strengths:           []string{},
				AreasForImprovement: []string{},
			},
		},
		{
			name:     "not json",
			response: "The candidate did fine.",
			want:     failedAnalysis(),
		},
		{
			name:     "array instead of object",
			response: `["good"]`,
			want:     failedAnalysis(),
		},
		{
			name:     "wrong field type",
			response: `{"score": "high"}`,
			want:     failedAnalysis(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb, err := NewPromptBuilder()
			require.NoError(t, err)
			a := NewTranscriptAnalyzer(&fakeGemini{responses: []string{tt.response}}, pb, nil, zap.NewNop())

			got, err := a.Analyze(context.Background(), "transcript", "job", "resume")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzeFailedPlaceholder(t *testing.T) {
	got := failedAnalysis()
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, "Analysis failed.", got.FeedbackSummary)
	assert.Empty(t, got.Strengths)
	assert.Empty(t, got.AreasForImprovement)
}

func TestAnalyzeModelFailure(t *testing.T) {
	pb, err := NewPromptBuilder()
	require.NoError(t, err)
	gemini := &fakeGemini{err: errors.New("safety block")}
	a := NewTranscriptAnalyzer(gemini, pb, nil, zap.NewNop())

	_, err = a.Analyze(context.Background(), "transcript", "job", "resume")
	e := assertKind(t, err, KindService)
	assert.Contains(t, e.Message, "safety block")
}

func TestAnalyzePromptEmbedsTranscript(t *testing.T) {
	pb, err := NewPromptBuilder()
	require.NoError(t, err)
	gemini := &fakeGemini{responses: []string{`{"score": 50}`}}
	a := NewTranscriptAnalyzer(gemini, pb, nil, zap.NewNop())

	_, err = a.Analyze(context.Background(), "candidate: I love Go", "Go role", "Go résumé")
	require.NoError(t, err)

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "candidate: I love Go")
	assert.Contains(t, gemini.prompts[0], "Go role")
	assert.Contains(t, gemini.prompts[0], "Go résumé")
	assert.InDelta(t, 0.3, gemini.temperatures[0], 0.001)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGenerator(t *testing.T, gemini *fakeGemini, retriever ContextRetriever) ContentGenerator {
	t.Helper()
	pb, err := NewPromptBuilder()
	require.NoError(t, err)
	return NewContentGenerator(gemini, pb, retriever, nil, zap.NewNop())
}

func TestGenerateQuestions(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name:     "plain array",
			response: `["Q1?","Q2?"]`,
			want:     []string{"Q1?", "Q2?"},
		},
		{
			name:     "fenced array",
			response: "```json\n[\"Tell me about yourself?\", \"Why Go?\"]\n```",
			want:     []string{"Tell me about yourself?", "Why Go?"},
		},
		{
			name:     "array with chatter",
			response: "Here you go:\n[\"Q1?\"]\nGood luck!",
			want:     []string{"Q1?"},
		},
		{
			name:     "not json",
			response: "I cannot help with that.",
			want:     []string{QuestionsParseFailed},
		},
		{
			name:     "object instead of array",
			response: `{"question": "Q1?"}`,
			want:     []string{QuestionsParseFailed},
		},
		{
			name:     "null",
			response: "null",
			want:     []string{QuestionsParseFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(t, &fakeGemini{responses: []string{tt.response}}, nil)

			got, err := g.GenerateQuestions(context.Background(), "job", "resume", 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateQuestionsPromptEmbedsTexts(t *testing.T) {
	gemini := &fakeGemini{responses: []string{`["Q1?"]`}}
	g := newTestGenerator(t, gemini, nil)

	_, err := g.GenerateQuestions(context.Background(), "Staff SRE at Acme", "Ran Kubernetes at scale", 0)
	require.NoError(t, err)

	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "Staff SRE at Acme")
	assert.Contains(t, gemini.prompts[0], "Ran Kubernetes at scale")
	assert.Contains(t, gemini.prompts[0], "Generate 5 mock interview questions")
	assert.NotContains(t, gemini.prompts[0], "Reference material")
	assert.InDelta(t, 0.7, gemini.temperatures[0], 0.001)
}

func TestGenerateQuestionsModelFailure(t *testing.T) {
	g := newTestGenerator(t, &fakeGemini{err: errors.New("quota exceeded")}, nil)

	_, err := g.GenerateQuestions(context.Background(), "job", "resume", 5)
	e := assertKind(t, err, KindService)
	assert.Contains(t, e.Message, "quota exceeded")
}

func TestGenerateCheatsheet(t *testing.T) {
	gemini := &fakeGemini{responses: []string{"\n# Key Talking Points\n- Go\n"}}
	g := newTestGenerator(t, gemini, nil)

	sheet, err := g.GenerateCheatsheet(context.Background(), "job", "resume")
	require.NoError(t, err)
	assert.Equal(t, "# Key Talking Points\n- Go", sheet.Text)
	assert.Equal(t, "cheatsheet", sheet.Prompt)
}

func TestGenerateCheatsheetModelFailure(t *testing.T) {
	g := newTestGenerator(t, &fakeGemini{err: errors.New("timeout")}, nil)

	_, err := g.GenerateCheatsheet(context.Background(), "job", "resume")
	assertKind(t, err, KindService)
}

func TestReferenceMaterialIsAddedToPrompts(t *testing.T) {
	gemini := &fakeGemini{responses: []string{`["Q1?"]`}}
	retriever := &fakeRetriever{reference: "--- Context 1 (Score: 0.91) ---\nUse the STAR method."}
	g := newTestGenerator(t, gemini, retriever)

	_, err := g.GenerateQuestions(context.Background(), "job text", "resume", 1)
	require.NoError(t, err)
	_, err = g.GenerateCheatsheet(context.Background(), "job text", "resume")
	require.NoError(t, err)

	assert.Equal(t, []string{"job text", "job text"}, retriever.queries)
	for _, prompt := range gemini.prompts {
		assert.Contains(t, prompt, "Use the STAR method.")
	}
}

func TestReferenceFailureDegradesToNoReference(t *testing.T) {
	gemini := &fakeGemini{responses: []string{`["Q1?"]`}}
	g := newTestGenerator(t, gemini, &fakeRetriever{err: errors.New("qdrant down")})

	got, err := g.GenerateQuestions(context.Background(), "job", "resume", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1?"}, got)
	assert.NotContains(t, gemini.prompts[0], "Reference material")
}

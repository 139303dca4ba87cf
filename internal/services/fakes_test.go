package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type fakeGemini struct {
	responses    []string
	err          error
	embedErr     error
	prompts      []string
	temperatures []float32
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.temperatures = append(f.temperatures, temperature)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

type fakeContent struct {
	questions     []string
	questionsErr  error
	cheatsheet    string
	cheatsheetErr error
}

func (f *fakeContent) GenerateQuestions(ctx context.Context, jobText, resumeText string, count int) ([]string, error) {
	if f.questionsErr != nil {
		return nil, f.questionsErr
	}
	return f.questions, nil
}

func (f *fakeContent) GenerateCheatsheet(ctx context.Context, jobText, resumeText string) (*GeneratedCheatsheet, error) {
	if f.cheatsheetErr != nil {
		return nil, f.cheatsheetErr
	}
	return &GeneratedCheatsheet{Text: f.cheatsheet, Prompt: promptCheatsheet}, nil
}

type fakeRemote struct {
	createErr     error
	transcript    string
	transcriptErr error
	status        string
	statusErr     error
	onCreate      func()

	created []RemoteSessionRequest
}

func (f *fakeRemote) CreateSession(ctx context.Context, req RemoteSessionRequest) (*RemoteSession, error) {
	f.created = append(f.created, req)
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &RemoteSession{
		CallID:          "call-123",
		RoomName:        "room-123",
		ConnectionURL:   "wss://livekit.example.com",
		ConnectionToken: "lk-token",
	}, nil
}

func (f *fakeRemote) GetTranscript(ctx context.Context, callID string) (string, error) {
	if f.transcriptErr != nil {
		return "", f.transcriptErr
	}
	return f.transcript, nil
}

func (f *fakeRemote) CheckStatus(ctx context.Context, callID string) (string, error) {
	if f.statusErr != nil {
		return "", f.statusErr
	}
	return f.status, nil
}

func (f *fakeRemote) ProcessResume(ctx context.Context, filename string, content []byte) (*ResumeInsights, error) {
	return &ResumeInsights{}, nil
}

type fakeAnalyzer struct {
	analysis *TranscriptAnalysis
	err      error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, transcript, jobText, resumeText string) (*TranscriptAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

type failingRenderer struct{}

func (failingRenderer) Render(ownerID uuid.UUID, filename, text string) (string, error) {
	return "", errors.New("disk full")
}

type fakeRetriever struct {
	reference string
	err       error
	queries   []string
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	return f.reference, f.err
}

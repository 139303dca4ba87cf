package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
	"alfredoptarigan/interview-coach/internal/testhelpers"
)

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	tokens    services.TokenService
	orch      *fakeOrchestrator
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	log := zap.NewNop()

	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	jobRepo := repositories.NewJobDescriptionRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)

	tokens := services.NewTokenService("test-secret", time.Hour, 24*time.Hour)
	uploadDir := t.TempDir()
	storage := services.NewStorageService(uploadDir, 1<<20)
	orch := &fakeOrchestrator{}

	h := Handlers{
		Auth:            NewAuthHandler(services.NewAuthService(userRepo, tokens, log)),
		Resumes:         NewResumeHandler(resumeRepo, storage, services.NewPDFParserService(), nil, log),
		JobDescriptions: NewJobDescriptionHandler(jobRepo),
		Interviews:      NewInterviewHandler(orch),
		Results:         NewResultHandler(sessionRepo, resumeRepo, jobRepo, log),
	}

	app := fiber.New()
	RegisterRoutes(app.Group("/api/v1"), h, RequireAuth(tokens))

	return &testEnv{app: app, db: db, tokens: tokens, orch: orch, uploadDir: uploadDir}
}

// newUser stores a user directly and returns an access token for it.
func (e *testEnv) newUser(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "unused"}
	require.NoError(t, e.db.Create(user).Error)

	token, err := e.tokens.Issue(user.ID, services.TokenAccess)
	require.NoError(t, err)
	return user.ID, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp.StatusCode, payload
}

type fakeOrchestrator struct {
	setupRes *services.SetupResult
	startRes *services.StartResult
	result   *models.InterviewResult
	session  *models.InterviewSession
	status   string
	err      error
	lastUser uuid.UUID
	lastIDs  []uuid.UUID
}

func (f *fakeOrchestrator) record(userID uuid.UUID, ids ...uuid.UUID) {
	f.lastUser = userID
	f.lastIDs = ids
}

func (f *fakeOrchestrator) Create(ctx context.Context, userID, resumeID, jobID uuid.UUID) (*services.SessionDraft, error) {
	f.record(userID, resumeID, jobID)
	return nil, f.err
}

func (f *fakeOrchestrator) Setup(ctx context.Context, draft *services.SessionDraft) (*services.SetupResult, error) {
	return f.setupRes, f.err
}

func (f *fakeOrchestrator) SetupInterview(ctx context.Context, userID, resumeID, jobID uuid.UUID) (*services.SetupResult, error) {
	f.record(userID, resumeID, jobID)
	if f.err != nil {
		return nil, f.err
	}
	return f.setupRes, nil
}

func (f *fakeOrchestrator) Start(ctx context.Context, userID, sessionID uuid.UUID) (*services.StartResult, error) {
	f.record(userID, sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return f.startRes, nil
}

func (f *fakeOrchestrator) Finish(ctx context.Context, userID, sessionID uuid.UUID) (*models.InterviewResult, error) {
	f.record(userID, sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeOrchestrator) Abort(ctx context.Context, userID, sessionID uuid.UUID) (*models.InterviewSession, error) {
	f.record(userID, sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeOrchestrator) RemoteStatus(ctx context.Context, userID, sessionID uuid.UUID) (string, error) {
	f.record(userID, sessionID)
	if f.err != nil {
		return "", f.err
	}
	return f.status, nil
}

package handlers

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"alfredoptarigan/interview-coach/internal/models"
)

type completedInterview struct {
	session    *models.InterviewSession
	cheatsheet *models.Cheatsheet
}

func seedCompletedInterview(t *testing.T, env *testEnv, userID uuid.UUID, transcript string) completedInterview {
	t.Helper()

	resume := &models.Resume{UserID: userID, FilePath: "r.pdf", OriginalFilename: "cv.pdf"}
	job := &models.JobDescription{UserID: userID, Title: "Backend Engineer", DescriptionText: "Go"}
	require.NoError(t, env.db.Create(resume).Error)
	require.NoError(t, env.db.Create(job).Error)

	end := time.Now()
	session := &models.InterviewSession{
		UserID:           userID,
		ResumeID:         resume.ID,
		JobDescriptionID: job.ID,
		Status:           models.StatusCompleted,
		StartTime:        end.Add(-30 * time.Minute),
		EndTime:          &end,
	}
	require.NoError(t, env.db.Create(session).Error)

	pdfPath := filepath.Join(t.TempDir(), "cheatsheet.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4\n"), 0644))

	cheatsheet := &models.Cheatsheet{InterviewSessionID: session.ID, GeneratedText: "# Prep", PDFFilePath: pdfPath}
	require.NoError(t, env.db.Create(cheatsheet).Error)

	result := &models.InterviewResult{
		InterviewSessionID: session.ID,
		Score:              75,
		FeedbackSummary:    "Good.",
		FullTranscript:     transcript,
		DetailedFeedback: datatypes.NewJSONType(models.DetailedFeedback{
			Score:     75,
			Strengths: []string{"clarity"},
		}),
	}
	require.NoError(t, env.db.Create(result).Error)

	return completedInterview{session: session, cheatsheet: cheatsheet}
}

func TestHandleGetResultAndTranscript(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.newUser(t, "ada@example.com")
	seeded := seedCompletedInterview(t, env, userID, "user: hi\nassistant: hello")
	id := seeded.session.ID.String()

	status, body := env.do(t, "GET", "/api/v1/interview/results/"+id, token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, float64(75), body["score"])
	assert.Equal(t, "Backend Engineer", body["job_title"])
	assert.Equal(t, "cv.pdf", body["resume_filename"])
	assert.Equal(t, true, body["has_transcript"])
	feedback := body["detailed_feedback"].(map[string]interface{})
	assert.Equal(t, []interface{}{"clarity"}, feedback["strengths"])

	status, body = env.do(t, "GET", "/api/v1/interview/results/"+id+"/transcript", token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "user: hi\nassistant: hello", body["transcript"])
}

func TestHandleGetTranscriptEmpty(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.newUser(t, "ada@example.com")
	seeded := seedCompletedInterview(t, env, userID, "")

	status, body := env.do(t, "GET", "/api/v1/interview/results/"+seeded.session.ID.String()+"/transcript", token, nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Transcript not available", body["error"])
}

func TestHandleGetResultMissing(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.newUser(t, "ada@example.com")

	session := &models.InterviewSession{UserID: userID, ResumeID: uuid.New(), JobDescriptionID: uuid.New(), Status: models.StatusPending}
	require.NoError(t, env.db.Create(session).Error)

	status, body := env.do(t, "GET", "/api/v1/interview/results/"+session.ID.String(), token, nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Interview result not found", body["error"])
}

func TestResultsAreScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ownerID, _ := env.newUser(t, "ada@example.com")
	_, otherToken := env.newUser(t, "grace@example.com")
	id := seedCompletedInterview(t, env, ownerID, "t").session.ID.String()

	for _, path := range []string{
		"/api/v1/interview/results/" + id,
		"/api/v1/interview/results/" + id + "/transcript",
		"/api/v1/interview/" + id + "/cheatsheet",
		"/api/v1/interview/" + id + "/cheatsheet/pdf",
	} {
		status, body := env.do(t, "GET", path, otherToken, nil)
		assert.Equal(t, 404, status, path)
		assert.Equal(t, "Interview session not found", body["error"], path)
	}

	status, body := env.do(t, "GET", "/api/v1/interview/history", otherToken, nil)
	require.Equal(t, 200, status)
	assert.Empty(t, body["history"])
}

func TestHandleHistory(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.newUser(t, "ada@example.com")
	seeded := seedCompletedInterview(t, env, userID, "t")

	status, body := env.do(t, "GET", "/api/v1/interview/history", token, nil)
	require.Equal(t, 200, status)

	history := body["history"].([]interface{})
	require.Len(t, history, 1)
	entry := history[0].(map[string]interface{})
	assert.Equal(t, seeded.session.ID.String(), entry["interview_id"])
	assert.Equal(t, "Backend Engineer", entry["job_title"])
	assert.Equal(t, "completed", entry["status"])
	assert.Equal(t, float64(75), entry["score"])
}

func TestHandleCheatsheet(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.newUser(t, "ada@example.com")
	seeded := seedCompletedInterview(t, env, userID, "t")
	id := seeded.session.ID.String()

	status, body := env.do(t, "GET", "/api/v1/interview/"+id+"/cheatsheet", token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "# Prep", body["cheatsheet_text"])

	req := httptest.NewRequest("GET", "/api/v1/interview/"+id+"/cheatsheet/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "interview_cheatsheet_"+id+".pdf")

	require.NoError(t, os.Remove(seeded.cheatsheet.PDFFilePath))
	status, body = env.do(t, "GET", "/api/v1/interview/"+id+"/cheatsheet/pdf", token, nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Cheatsheet PDF not found", body["error"])
}

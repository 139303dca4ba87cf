package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/models"
)

func TestJobDescriptionCRUD(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "ada@example.com")

	status, body := env.do(t, "POST", "/api/v1/job-descriptions", token, map[string]interface{}{
		"title":            "  Backend Engineer ",
		"description_text": "Build APIs in Go.",
		"skills_keywords":  []string{"go", "postgres"},
	})
	require.Equal(t, 201, status)
	assert.Equal(t, "Backend Engineer", body["title"])
	assert.Equal(t, []interface{}{"go", "postgres"}, body["skills_keywords"])
	id := body["id"].(string)

	status, body = env.do(t, "GET", "/api/v1/job-descriptions/"+id, token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "Build APIs in Go.", body["description_text"])

	status, body = env.do(t, "PUT", "/api/v1/job-descriptions/"+id, token, map[string]interface{}{
		"title":           "Senior Backend Engineer",
		"skills_keywords": "not a list",
	})
	require.Equal(t, 200, status)
	assert.Equal(t, "Senior Backend Engineer", body["title"])
	assert.Equal(t, "Build APIs in Go.", body["description_text"])
	assert.Equal(t, []interface{}{"go", "postgres"}, body["skills_keywords"])

	status, body = env.do(t, "GET", "/api/v1/job-descriptions", token, nil)
	require.Equal(t, 200, status)
	assert.Len(t, body["job_descriptions"], 1)

	status, _ = env.do(t, "DELETE", "/api/v1/job-descriptions/"+id, token, nil)
	assert.Equal(t, 200, status)

	status, _ = env.do(t, "GET", "/api/v1/job-descriptions/"+id, token, nil)
	assert.Equal(t, 404, status)
}

func TestJobDescriptionValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "ada@example.com")

	status, body := env.do(t, "POST", "/api/v1/job-descriptions", token, map[string]interface{}{
		"title": "Backend Engineer",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "title and description_text are required", body["error"])

	status, body = env.do(t, "POST", "/api/v1/job-descriptions", token, map[string]interface{}{
		"title":            "Backend Engineer",
		"description_text": "Go",
		"skills_keywords":  map[string]string{"a": "b"},
	})
	require.Equal(t, 201, status)
	assert.Empty(t, body["skills_keywords"])

	status, body = env.do(t, "PUT", "/api/v1/job-descriptions/"+body["id"].(string), token, map[string]interface{}{
		"title": "  ",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "title cannot be empty", body["error"])
}

func TestJobDescriptionOwnership(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.newUser(t, "ada@example.com")
	_, otherToken := env.newUser(t, "grace@example.com")

	status, body := env.do(t, "POST", "/api/v1/job-descriptions", ownerToken, map[string]interface{}{
		"title":            "Backend Engineer",
		"description_text": "Go",
	})
	require.Equal(t, 201, status)
	id := body["id"].(string)

	for _, method := range []string{"GET", "PUT", "DELETE"} {
		status, body = env.do(t, method, "/api/v1/job-descriptions/"+id, otherToken, map[string]interface{}{})
		assert.Equal(t, 404, status, method)
		assert.Equal(t, "Job description not found", body["error"], method)
	}

	status, _ = env.do(t, "GET", "/api/v1/job-descriptions/not-a-uuid", ownerToken, nil)
	assert.Equal(t, 404, status)
}

func TestJobDescriptionDeleteInUse(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.newUser(t, "ada@example.com")

	job := &models.JobDescription{UserID: userID, Title: "Backend Engineer", DescriptionText: "Go"}
	require.NoError(t, env.db.Create(job).Error)
	require.NoError(t, env.db.Create(&models.InterviewSession{
		UserID: userID, ResumeID: uuid.New(), JobDescriptionID: job.ID, Status: models.StatusPending,
	}).Error)

	status, body := env.do(t, "DELETE", "/api/v1/job-descriptions/"+job.ID.String(), token, nil)
	assert.Equal(t, 409, status)
	assert.Equal(t, "Record is used by an interview session", body["error"])
}

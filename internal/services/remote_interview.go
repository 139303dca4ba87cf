package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/metrics"
	"alfredoptarigan/interview-coach/internal/models"
)

type RemoteSessionRequest struct {
	JobTitle       string
	JobDescription string
	ResumeSummary  string
	UserID         uuid.UUID
}

// RemoteSession is the live video room provisioned for an interview.
type RemoteSession struct {
	CallID          string
	RoomName        string
	ConnectionURL   string
	ConnectionToken string
}

// ResumeInsights is what the provider extracted from an uploaded résumé.
// HasSkills is false when the provider sent no usable skills list.
type ResumeInsights struct {
	JobTitle  string
	Skills    []string
	HasSkills bool
}

// RemoteInterviewClient wraps the AI video-agent provider. Every call is a
// single attempt; any failure is a *Error of kind service.
type RemoteInterviewClient interface {
	CreateSession(ctx context.Context, req RemoteSessionRequest) (*RemoteSession, error)
	GetTranscript(ctx context.Context, callID string) (string, error)
	CheckStatus(ctx context.Context, callID string) (string, error)
	ProcessResume(ctx context.Context, filename string, content []byte) (*ResumeInsights, error)
}

type tavusClient struct {
	apiURL  string
	apiKey  string
	client  *http.Client
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewTavusClient(apiURL, apiKey string, m *metrics.Metrics, log *zap.Logger) RemoteInterviewClient {
	return &tavusClient{
		apiURL:  strings.TrimRight(apiURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{},
		metrics: m,
		log:     log,
	}
}

type createSessionPayload struct {
	InterviewType          string            `json:"interview_type"`
	JobTitle               string            `json:"job_title"`
	JobDescription         string            `json:"job_description"`
	CandidateResumeSummary string            `json:"candidate_resume_summary"`
	Metadata               map[string]string `json:"metadata"`
}

type createSessionResponse struct {
	CallID       string `json:"call_id"`
	RoomName     string `json:"room_name"`
	LivekitURL   string `json:"livekit_url"`
	LivekitToken string `json:"livekit_token"`
}

type transcriptTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CreateSession implements RemoteInterviewClient.
func (t *tavusClient) CreateSession(ctx context.Context, req RemoteSessionRequest) (*RemoteSession, error) {
	const op = "create_session"

	body, err := json.Marshal(createSessionPayload{
		InterviewType:          "job_mock",
		JobTitle:               req.JobTitle,
		JobDescription:         req.JobDescription,
		CandidateResumeSummary: req.ResumeSummary,
		Metadata:               map[string]string{"user_id": req.UserID.String()},
	})
	if err != nil {
		return nil, ServiceError(op, "failed to encode session request", err)
	}

	var resp createSessionResponse
	if err := t.makeRequest(ctx, op, http.MethodPost, "agent/livekit_session", bytes.NewReader(body), "application/json", &resp); err != nil {
		return nil, err
	}

	if resp.CallID == "" {
		return nil, ServiceError(op, "remote provider returned no call id", nil)
	}

	return &RemoteSession{
		CallID:          resp.CallID,
		RoomName:        resp.RoomName,
		ConnectionURL:   resp.LivekitURL,
		ConnectionToken: resp.LivekitToken,
	}, nil
}

// GetTranscript implements RemoteInterviewClient. The provider may send the
// transcript as plain text or as a list of role/content turns.
func (t *tavusClient) GetTranscript(ctx context.Context, callID string) (string, error) {
	const op = "get_transcript"

	var resp struct {
		Transcript json.RawMessage `json:"transcript"`
	}
	if err := t.makeRequest(ctx, op, http.MethodGet, "calls/"+url.PathEscape(callID)+"/transcript", nil, "", &resp); err != nil {
		return "", err
	}

	raw := bytes.TrimSpace(resp.Transcript)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var turns []transcriptTurn
	if err := json.Unmarshal(raw, &turns); err != nil {
		return "", ServiceError(op, "remote provider returned an unreadable transcript", err)
	}

	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, strings.TrimSpace(turn.Content)))
	}

	return strings.Join(lines, "\n"), nil
}

// CheckStatus implements RemoteInterviewClient.
func (t *tavusClient) CheckStatus(ctx context.Context, callID string) (string, error) {
	const op = "check_status"

	var resp struct {
		Status string `json:"status"`
	}
	if err := t.makeRequest(ctx, op, http.MethodGet, "calls/"+url.PathEscape(callID), nil, "", &resp); err != nil {
		return "", err
	}

	return resp.Status, nil
}

// ProcessResume implements RemoteInterviewClient.
func (t *tavusClient) ProcessResume(ctx context.Context, filename string, content []byte) (*ResumeInsights, error) {
	const op = "process_resume"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, ServiceError(op, "failed to build upload", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, ServiceError(op, "failed to build upload", err)
	}
	if err := writer.Close(); err != nil {
		return nil, ServiceError(op, "failed to build upload", err)
	}

	var resp struct {
		JobTitle string      `json:"job_title"`
		Skills   interface{} `json:"skills"`
	}
	if err := t.makeRequest(ctx, op, http.MethodPost, "resumes", &buf, writer.FormDataContentType(), &resp); err != nil {
		return nil, err
	}

	insights := &ResumeInsights{JobTitle: resp.JobTitle}
	insights.Skills, insights.HasSkills = models.DecodeStringListValue(resp.Skills)

	return insights, nil
}

// makeRequest sends one authorised request and decodes a 2xx JSON body into
// out. contentType is left unset for bodiless requests.
func (t *tavusClient) makeRequest(ctx context.Context, op, method, endpoint string, body io.Reader, contentType string, out interface{}) error {
	defer t.metrics.Time("remote_interview", op)()

	req, err := http.NewRequestWithContext(ctx, method, t.apiURL+"/"+endpoint, body)
	if err != nil {
		return ServiceError(op, "failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		t.log.Error("❌ Remote interview request failed", zap.String("operation", op), zap.Error(err))
		return ServiceError(op, fmt.Sprintf("remote provider unreachable: %v", err), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ServiceError(op, "failed to read remote provider response", err)
	}

	if !isHTTPSuccessStatus(resp.StatusCode) {
		t.log.Error("❌ Remote interview provider returned an error status",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
		)
		return &Error{
			Kind:       KindService,
			Op:         op,
			Message:    fmt.Sprintf("remote provider returned status %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(data)), 200)),
			StatusCode: resp.StatusCode,
		}
	}

	var envelope struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ServiceError(op, "remote provider returned invalid JSON", err)
	}
	if envelope.Status == "error" {
		message := envelope.Message
		if message == "" {
			message = "remote provider reported an error"
		}
		return &Error{Kind: KindService, Op: op, Message: message, StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return ServiceError(op, "remote provider returned an unexpected payload", err)
	}

	return nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

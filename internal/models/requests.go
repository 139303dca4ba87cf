package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

type UploadResponse struct {
	Message  string `json:"message"`
	ResumeID string `json:"resume_id"`
	Filename string `json:"filename"`
}

// JobDescriptionRequest is used for both create and partial update.
// SkillsKeywords is kept raw so that a value of the wrong shape can be
// ignored instead of rejected.
type JobDescriptionRequest struct {
	Title           *string         `json:"title"`
	DescriptionText *string         `json:"description_text"`
	SourceURL       *string         `json:"source_url"`
	SkillsKeywords  json.RawMessage `json:"skills_keywords"`
}

type SetupInterviewRequest struct {
	ResumeID         string `json:"resume_id"`
	JobDescriptionID string `json:"job_description_id"`
}

type SetupInterviewResponse struct {
	Message            string   `json:"message"`
	InterviewSessionID string   `json:"interview_session_id"`
	Questions          []string `json:"questions"`
	CheatsheetID       string   `json:"cheatsheet_id"`
}

type StartInterviewRequest struct {
	InterviewSessionID string `json:"interview_session_id"`
}

type StartInterviewResponse struct {
	Message      string `json:"message"`
	LivekitURL   string `json:"livekit_url"`
	LivekitToken string `json:"livekit_token"`
}

type FinishInterviewResponse struct {
	Message         string `json:"message"`
	ResultID        string `json:"result_id"`
	Score           int    `json:"score"`
	FeedbackSummary string `json:"feedback_summary"`
}

type ResultResponse struct {
	InterviewID      uuid.UUID        `json:"interview_id"`
	Score            int              `json:"score"`
	FeedbackSummary  string           `json:"feedback_summary"`
	DetailedFeedback DetailedFeedback `json:"detailed_feedback"`
	JobTitle         string           `json:"job_title"`
	ResumeFilename   string           `json:"resume_filename"`
	InterviewDate    time.Time        `json:"interview_date"`
	HasTranscript    bool             `json:"has_transcript"`
}

type TranscriptResponse struct {
	InterviewID uuid.UUID `json:"interview_id"`
	Transcript  string    `json:"transcript"`
}

type HistoryEntry struct {
	InterviewID uuid.UUID     `json:"interview_id"`
	JobTitle    string        `json:"job_title"`
	Date        time.Time     `json:"date"`
	Status      SessionStatus `json:"status"`
	Score       *int          `json:"score"`
	HasResult   bool          `json:"has_result"`
}

type CheatsheetResponse struct {
	InterviewID    uuid.UUID `json:"interview_id"`
	CheatsheetText string    `json:"cheatsheet_text"`
	GeneratedDate  time.Time `json:"generated_date"`
}

type RemoteStatusResponse struct {
	InterviewID  uuid.UUID `json:"interview_id"`
	RemoteStatus string    `json:"remote_status"`
}

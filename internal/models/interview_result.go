package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DetailedFeedback is the structured part of a transcript analysis.
type DetailedFeedback struct {
	Score               int      `json:"score"`
	FeedbackSummary     string   `json:"feedback_summary"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Strengths           []string `json:"strengths"`
}

// InterviewResult is written once, when a session finishes.
type InterviewResult struct {
	ID                 uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewSessionID uuid.UUID                            `gorm:"type:uuid;not null;uniqueIndex" json:"interview_session_id"`
	Score              int                                  `gorm:"not null;default:0" json:"score"`
	FeedbackSummary    string                               `gorm:"type:text" json:"feedback_summary"`
	FullTranscript     string                               `gorm:"type:text" json:"-"`
	DetailedFeedback   datatypes.JSONType[DetailedFeedback] `json:"detailed_feedback"`
	CreatedAt          time.Time                            `json:"created_at"`
}

func (InterviewResult) TableName() string {
	return "interview_results"
}

func (r *InterviewResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

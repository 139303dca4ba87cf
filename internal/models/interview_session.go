package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusFailed    SessionStatus = "failed"
)

// Ended reports whether a session in this status carries an end time.
func (s SessionStatus) Ended() bool {
	return s == StatusCompleted || s == StatusFailed
}

// InterviewSession is one run of the interview workflow.
//
// EndTime is set iff Status is completed or failed. RemoteCallID and
// RemoteRoomName are set once the session has been active.
type InterviewSession struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	ResumeID         uuid.UUID                   `gorm:"type:uuid;not null" json:"resume_id"`
	JobDescriptionID uuid.UUID                   `gorm:"type:uuid;not null" json:"job_description_id"`
	Status           SessionStatus               `gorm:"type:text;not null;default:'pending'" json:"status"`
	StartTime        time.Time                   `gorm:"index" json:"start_time"`
	EndTime          *time.Time                  `json:"end_time,omitempty"`
	RemoteCallID     *string                     `gorm:"type:text" json:"remote_call_id,omitempty"`
	RemoteRoomName   *string                     `gorm:"type:text" json:"remote_room_name,omitempty"`
	Questions        datatypes.JSONSlice[string] `json:"questions"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

func (s *InterviewSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

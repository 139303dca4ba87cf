package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resume is an uploaded PDF résumé together with the text extracted from it.
// Interview sessions only ever read RawTextContent.
type Resume struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	FilePath          string                      `gorm:"type:text;not null" json:"-"`
	OriginalFilename  string                      `gorm:"type:text;not null" json:"original_filename"`
	ExtractedJobTitle string                      `gorm:"type:text" json:"extracted_job_title"`
	ExtractedSkills   datatypes.JSONSlice[string] `json:"extracted_skills"`
	RawTextContent    string                      `gorm:"type:text" json:"-"`
	UploadDate        time.Time                   `gorm:"autoCreateTime" json:"upload_date"`
}

func (Resume) TableName() string {
	return "resumes"
}

func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

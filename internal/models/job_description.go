package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobDescription struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	Title           string                      `gorm:"type:text;not null" json:"title"`
	DescriptionText string                      `gorm:"type:text;not null" json:"description_text"`
	SkillsKeywords  datatypes.JSONSlice[string] `json:"skills_keywords"`
	SourceURL       string                      `gorm:"type:text" json:"source_url"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}

func (j *JobDescription) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cheatsheet struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"interview_session_id"`
	Prompt             string    `gorm:"type:text" json:"-"`
	GeneratedText      string    `gorm:"type:text;not null" json:"generated_text"`
	PDFFilePath        string    `gorm:"type:text" json:"pdf_file_path"`
	GeneratedDate      time.Time `gorm:"autoCreateTime" json:"generated_date"`
}

func (Cheatsheet) TableName() string {
	return "cheatsheets"
}

func (c *Cheatsheet) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

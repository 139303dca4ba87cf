package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByIDForUser(id, userID uuid.UUID) (*models.Resume, error)
	FindByIDs(ids []uuid.UUID) ([]models.Resume, error)
	ListByUser(userID uuid.UUID) ([]models.Resume, error)
	Delete(id, userID uuid.UUID) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	return nil
}

// FindByIDForUser implements ResumeRepository. Résumés owned by another user
// are reported as not found.
func (r *resumeRepository) FindByIDForUser(id, userID uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume not found: %w", ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}

// FindByIDs implements ResumeRepository.
func (r *resumeRepository) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	if len(ids) == 0 {
		return resumes, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}

	return resumes, nil
}

// ListByUser implements ResumeRepository.
func (r *resumeRepository) ListByUser(userID uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	return resumes, nil
}

// Delete implements ResumeRepository.
func (r *resumeRepository) Delete(id, userID uuid.UUID) error {
	var refs int64
	if err := r.db.Model(&models.InterviewSession{}).Where("resume_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to check resume references: %w", err)
	}
	if refs > 0 {
		return ErrInUse
	}

	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Resume{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not found: %w", ErrNotFound)
	}

	return nil
}

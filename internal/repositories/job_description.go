package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/models"
)

type JobDescriptionRepository interface {
	Create(job *models.JobDescription) error
	FindByIDForUser(id, userID uuid.UUID) (*models.JobDescription, error)
	FindByIDs(ids []uuid.UUID) ([]models.JobDescription, error)
	ListByUser(userID uuid.UUID) ([]models.JobDescription, error)
	Update(job *models.JobDescription) error
	Delete(id, userID uuid.UUID) error
}

type jobDescriptionRepository struct {
	db *gorm.DB
}

func NewJobDescriptionRepository(db *gorm.DB) JobDescriptionRepository {
	return &jobDescriptionRepository{db: db}
}

func (r *jobDescriptionRepository) Create(job *models.JobDescription) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job description: %w", err)
	}
	return nil
}

func (r *jobDescriptionRepository) FindByIDForUser(id, userID uuid.UUID) (*models.JobDescription, error) {
	var job models.JobDescription
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job description not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job description: %w", err)
	}
	return &job, nil
}

func (r *jobDescriptionRepository) FindByIDs(ids []uuid.UUID) ([]models.JobDescription, error) {
	var jobs []models.JobDescription
	if len(ids) == 0 {
		return jobs, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to find job descriptions: %w", err)
	}
	return jobs, nil
}

func (r *jobDescriptionRepository) ListByUser(userID uuid.UUID) ([]models.JobDescription, error) {
	var jobs []models.JobDescription
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	return jobs, nil
}

func (r *jobDescriptionRepository) Update(job *models.JobDescription) error {
	result := r.db.Model(&models.JobDescription{}).
		Where("id = ? AND user_id = ?", job.ID, job.UserID).
		Updates(map[string]interface{}{
			"title":            job.Title,
			"description_text": job.DescriptionText,
			"source_url":       job.SourceURL,
			"skills_keywords":  job.SkillsKeywords,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update job description: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job description not found: %w", ErrNotFound)
	}

	return nil
}

func (r *jobDescriptionRepository) Delete(id, userID uuid.UUID) error {
	var refs int64
	if err := r.db.Model(&models.InterviewSession{}).Where("job_description_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to check job description references: %w", err)
	}
	if refs > 0 {
		return ErrInUse
	}

	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.JobDescription{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job description: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job description not found: %w", ErrNotFound)
	}
	return nil
}

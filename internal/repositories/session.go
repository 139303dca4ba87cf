package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/models"
)

// SessionRepository is the persistence boundary for interview sessions and
// the records hanging off them. Every status write is conditional on the
// status the caller read, so a lost race surfaces as ErrStaleSession instead
// of a silent overwrite.
type SessionRepository interface {
	CreateWithCheatsheet(session *models.InterviewSession, cheatsheet *models.Cheatsheet) error
	FindByIDForUser(id, userID uuid.UUID) (*models.InterviewSession, error)
	UpdateTransition(session *models.InterviewSession, from models.SessionStatus) error
	CompleteWithResult(session *models.InterviewSession, from models.SessionStatus, result *models.InterviewResult) error
	FindResult(sessionID uuid.UUID) (*models.InterviewResult, error)
	FindCheatsheet(sessionID uuid.UUID) (*models.Cheatsheet, error)
	History(userID uuid.UUID) ([]models.HistoryEntry, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateWithCheatsheet(session *models.InterviewSession, cheatsheet *models.Cheatsheet) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return fmt.Errorf("failed to create interview session: %w", err)
		}

		cheatsheet.InterviewSessionID = session.ID
		if err := tx.Create(cheatsheet).Error; err != nil {
			return fmt.Errorf("failed to create cheatsheet: %w", err)
		}

		return nil
	})
}

func (r *sessionRepository) FindByIDForUser(id, userID uuid.UUID) (*models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview session not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find interview session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) UpdateTransition(session *models.InterviewSession, from models.SessionStatus) error {
	return transition(r.db, session, from)
}

func (r *sessionRepository) CompleteWithResult(session *models.InterviewSession, from models.SessionStatus, result *models.InterviewResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := transition(tx, session, from); err != nil {
			return err
		}

		result.InterviewSessionID = session.ID
		if err := tx.Create(result).Error; err != nil {
			return fmt.Errorf("failed to create interview result: %w", err)
		}

		return nil
	})
}

func transition(db *gorm.DB, session *models.InterviewSession, from models.SessionStatus) error {
	now := time.Now()
	result := db.Model(&models.InterviewSession{}).
		Where("id = ? AND status = ?", session.ID, from).
		Updates(map[string]interface{}{
			"status":           session.Status,
			"end_time":         session.EndTime,
			"remote_call_id":   session.RemoteCallID,
			"remote_room_name": session.RemoteRoomName,
			"updated_at":       now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update interview session: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrStaleSession
	}

	session.UpdatedAt = now
	return nil
}

func (r *sessionRepository) FindResult(sessionID uuid.UUID) (*models.InterviewResult, error) {
	var result models.InterviewResult
	if err := r.db.Where("interview_session_id = ?", sessionID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview result not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find interview result: %w", err)
	}
	return &result, nil
}

func (r *sessionRepository) FindCheatsheet(sessionID uuid.UUID) (*models.Cheatsheet, error) {
	var cheatsheet models.Cheatsheet
	if err := r.db.Where("interview_session_id = ?", sessionID).First(&cheatsheet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cheatsheet not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find cheatsheet: %w", err)
	}
	return &cheatsheet, nil
}

// History lists the user's sessions newest first, each joined with its job
// title and, when present, its score.
func (r *sessionRepository) History(userID uuid.UUID) ([]models.HistoryEntry, error) {
	var sessions []models.InterviewSession
	err := r.db.
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interview sessions: %w", err)
	}

	entries := make([]models.HistoryEntry, 0, len(sessions))
	if len(sessions) == 0 {
		return entries, nil
	}

	sessionIDs := make([]uuid.UUID, 0, len(sessions))
	jobIDs := make([]uuid.UUID, 0, len(sessions))
	for _, s := range sessions {
		sessionIDs = append(sessionIDs, s.ID)
		jobIDs = append(jobIDs, s.JobDescriptionID)
	}

	var results []models.InterviewResult
	if err := r.db.Where("interview_session_id IN ?", sessionIDs).Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to find interview results: %w", err)
	}
	scores := make(map[uuid.UUID]int, len(results))
	for _, res := range results {
		scores[res.InterviewSessionID] = res.Score
	}

	var jobs []models.JobDescription
	if err := r.db.Where("id IN ?", jobIDs).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to find job descriptions: %w", err)
	}
	titles := make(map[uuid.UUID]string, len(jobs))
	for _, job := range jobs {
		titles[job.ID] = job.Title
	}

	for _, s := range sessions {
		entry := models.HistoryEntry{
			InterviewID: s.ID,
			JobTitle:    titles[s.JobDescriptionID],
			Date:        s.StartTime,
			Status:      s.Status,
		}
		if score, ok := scores[s.ID]; ok {
			score := score
			entry.Score = &score
			entry.HasResult = true
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

package handlers

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

// ResultHandler serves the read side of interviews: results, transcripts,
// history and cheatsheets. Every read is scoped to the caller.
type ResultHandler struct {
	sessionRepo repositories.SessionRepository
	resumeRepo  repositories.ResumeRepository
	jobRepo     repositories.JobDescriptionRepository
	log         *zap.Logger
}

func NewResultHandler(
	sessionRepo repositories.SessionRepository,
	resumeRepo repositories.ResumeRepository,
	jobRepo repositories.JobDescriptionRepository,
	log *zap.Logger,
) *ResultHandler {
	return &ResultHandler{
		sessionRepo: sessionRepo,
		resumeRepo:  resumeRepo,
		jobRepo:     jobRepo,
		log:         log,
	}
}

// HandleGetResult handles GET /interview/results/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	session, result, err := h.findResult(c)
	if err != nil {
		return respondError(c, err)
	}

	response := models.ResultResponse{
		InterviewID:      session.ID,
		Score:            result.Score,
		FeedbackSummary:  result.FeedbackSummary,
		DetailedFeedback: result.DetailedFeedback.Data(),
		InterviewDate:    session.StartTime,
		HasTranscript:    result.FullTranscript != "",
	}

	if job, err := h.jobRepo.FindByIDForUser(session.JobDescriptionID, session.UserID); err == nil {
		response.JobTitle = job.Title
	}
	if resume, err := h.resumeRepo.FindByIDForUser(session.ResumeID, session.UserID); err == nil {
		response.ResumeFilename = resume.OriginalFilename
	}

	return c.JSON(response)
}

// HandleGetTranscript handles GET /interview/results/:id/transcript
func (h *ResultHandler) HandleGetTranscript(c *fiber.Ctx) error {
	session, result, err := h.findResult(c)
	if err != nil {
		return respondError(c, err)
	}

	if result.FullTranscript == "" {
		return respondError(c, services.NotFoundError("get_transcript", "Transcript not available", nil))
	}

	return c.JSON(models.TranscriptResponse{
		InterviewID: session.ID,
		Transcript:  result.FullTranscript,
	})
}

// HandleHistory handles GET /interview/history
func (h *ResultHandler) HandleHistory(c *fiber.Ctx) error {
	history, err := h.sessionRepo.History(currentUserID(c))
	if err != nil {
		h.log.Error("❌ Failed to load interview history", zap.Error(err))
		return respondError(c, recordError("history", "", err))
	}

	return c.JSON(fiber.Map{
		"history": history,
	})
}

// HandleGetCheatsheet handles GET /interview/:id/cheatsheet
func (h *ResultHandler) HandleGetCheatsheet(c *fiber.Ctx) error {
	session, cheatsheet, err := h.findCheatsheet(c)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.CheatsheetResponse{
		InterviewID:    session.ID,
		CheatsheetText: cheatsheet.GeneratedText,
		GeneratedDate:  cheatsheet.GeneratedDate,
	})
}

// HandleDownloadCheatsheet handles GET /interview/:id/cheatsheet/pdf
func (h *ResultHandler) HandleDownloadCheatsheet(c *fiber.Ctx) error {
	session, cheatsheet, err := h.findCheatsheet(c)
	if err != nil {
		return respondError(c, err)
	}

	if cheatsheet.PDFFilePath == "" {
		return respondError(c, services.NotFoundError("download_cheatsheet", "Cheatsheet PDF not found", nil))
	}
	if _, err := os.Stat(cheatsheet.PDFFilePath); err != nil {
		if os.IsNotExist(err) {
			return respondError(c, services.NotFoundError("download_cheatsheet", "Cheatsheet PDF not found", err))
		}
		return respondError(c, services.ServiceError("download_cheatsheet", "Failed to read cheatsheet PDF", err))
	}

	return c.Download(cheatsheet.PDFFilePath, fmt.Sprintf("interview_cheatsheet_%s.pdf", session.ID))
}

func (h *ResultHandler) findSession(c *fiber.Ctx) (*models.InterviewSession, error) {
	id, err := paramID(c, "id", "Interview session not found")
	if err != nil {
		return nil, err
	}

	session, err := h.sessionRepo.FindByIDForUser(id, currentUserID(c))
	if err != nil {
		return nil, recordError("get_session", "Interview session not found", err)
	}

	return session, nil
}

func (h *ResultHandler) findResult(c *fiber.Ctx) (*models.InterviewSession, *models.InterviewResult, error) {
	session, err := h.findSession(c)
	if err != nil {
		return nil, nil, err
	}

	result, err := h.sessionRepo.FindResult(session.ID)
	if err != nil {
		return nil, nil, recordError("get_result", "Interview result not found", err)
	}

	return session, result, nil
}

func (h *ResultHandler) findCheatsheet(c *fiber.Ctx) (*models.InterviewSession, *models.Cheatsheet, error) {
	session, err := h.findSession(c)
	if err != nil {
		return nil, nil, err
	}

	cheatsheet, err := h.sessionRepo.FindCheatsheet(session.ID)
	if err != nil {
		return nil, nil, recordError("get_cheatsheet", "Cheatsheet not found", err)
	}

	return session, cheatsheet, nil
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type InterviewHandler struct {
	orchestrator services.InterviewOrchestrator
}

func NewInterviewHandler(orchestrator services.InterviewOrchestrator) *InterviewHandler {
	return &InterviewHandler{orchestrator: orchestrator}
}

// HandleSetup handles POST /interview/setup
func (h *InterviewHandler) HandleSetup(c *fiber.Ctx) error {
	var req models.SetupInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	if req.ResumeID == "" || req.JobDescriptionID == "" {
		return badRequest(c, "resume_id and job_description_id are required")
	}

	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return badRequest(c, "Invalid resume_id format")
	}

	jobID, err := uuid.Parse(req.JobDescriptionID)
	if err != nil {
		return badRequest(c, "Invalid job_description_id format")
	}

	res, err := h.orchestrator.SetupInterview(c.UserContext(), currentUserID(c), resumeID, jobID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SetupInterviewResponse{
		Message:            "Interview setup successful",
		InterviewSessionID: res.Session.ID.String(),
		Questions:          []string(res.Session.Questions),
		CheatsheetID:       res.Cheatsheet.ID.String(),
	})
}

// HandleStart handles POST /interview/start
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	if req.InterviewSessionID == "" {
		return badRequest(c, "interview_session_id is required")
	}

	sessionID, err := uuid.Parse(req.InterviewSessionID)
	if err != nil {
		return respondError(c, services.NotFoundError("start", "Interview session not found", err))
	}

	res, err := h.orchestrator.Start(c.UserContext(), currentUserID(c), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.StartInterviewResponse{
		Message:      "Interview session started",
		LivekitURL:   res.Remote.ConnectionURL,
		LivekitToken: res.Remote.ConnectionToken,
	})
}

// HandleFinish handles POST /interview/:id/finish
func (h *InterviewHandler) HandleFinish(c *fiber.Ctx) error {
	sessionID, err := paramID(c, "id", "Interview session not found")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.orchestrator.Finish(c.UserContext(), currentUserID(c), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.FinishInterviewResponse{
		Message:         "Interview finished and analyzed",
		ResultID:        result.ID.String(),
		Score:           result.Score,
		FeedbackSummary: result.FeedbackSummary,
	})
}

// HandleAbort handles POST /interview/:id/abort
func (h *InterviewHandler) HandleAbort(c *fiber.Ctx) error {
	sessionID, err := paramID(c, "id", "Interview session not found")
	if err != nil {
		return respondError(c, err)
	}

	session, err := h.orchestrator.Abort(c.UserContext(), currentUserID(c), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":      "Interview aborted",
		"interview_id": session.ID,
		"status":       session.Status,
	})
}

// HandleStatus handles GET /interview/:id/status
func (h *InterviewHandler) HandleStatus(c *fiber.Ctx) error {
	sessionID, err := paramID(c, "id", "Interview session not found")
	if err != nil {
		return respondError(c, err)
	}

	status, err := h.orchestrator.RemoteStatus(c.UserContext(), currentUserID(c), sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.RemoteStatusResponse{
		InterviewID:  sessionID,
		RemoteStatus: status,
	})
}

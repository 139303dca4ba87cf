package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

type JobDescriptionHandler struct {
	jobRepo repositories.JobDescriptionRepository
}

func NewJobDescriptionHandler(jobRepo repositories.JobDescriptionRepository) *JobDescriptionHandler {
	return &JobDescriptionHandler{jobRepo: jobRepo}
}

// HandleCreate handles POST /job-descriptions
func (h *JobDescriptionHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.JobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" ||
		req.DescriptionText == nil || strings.TrimSpace(*req.DescriptionText) == "" {
		return badRequest(c, "title and description_text are required")
	}

	job := models.JobDescription{
		UserID:          currentUserID(c),
		Title:           strings.TrimSpace(*req.Title),
		DescriptionText: *req.DescriptionText,
	}
	if req.SourceURL != nil {
		job.SourceURL = *req.SourceURL
	}
	if skills, ok := models.DecodeStringList(req.SkillsKeywords); ok {
		job.SkillsKeywords = skills
	}

	if err := h.jobRepo.Create(&job); err != nil {
		return respondError(c, recordError("create_job_description", "", err))
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleList handles GET /job-descriptions
func (h *JobDescriptionHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.ListByUser(currentUserID(c))
	if err != nil {
		return respondError(c, recordError("list_job_descriptions", "", err))
	}

	return c.JSON(fiber.Map{
		"job_descriptions": jobs,
	})
}

// HandleGet handles GET /job-descriptions/:id
func (h *JobDescriptionHandler) HandleGet(c *fiber.Ctx) error {
	job, err := h.find(c)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(job)
}

// HandleUpdate handles PUT /job-descriptions/:id. Only fields present in the
// body change; a skills_keywords value that is not a list of strings is
// ignored.
func (h *JobDescriptionHandler) HandleUpdate(c *fiber.Ctx) error {
	job, err := h.find(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.JobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return badRequest(c, "title cannot be empty")
		}
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.DescriptionText != nil {
		if strings.TrimSpace(*req.DescriptionText) == "" {
			return badRequest(c, "description_text cannot be empty")
		}
		job.DescriptionText = *req.DescriptionText
	}
	if req.SourceURL != nil {
		job.SourceURL = *req.SourceURL
	}
	if skills, ok := models.DecodeStringList(req.SkillsKeywords); ok {
		job.SkillsKeywords = skills
	}

	if err := h.jobRepo.Update(job); err != nil {
		return respondError(c, recordError("update_job_description", "Job description not found", err))
	}

	return c.JSON(job)
}

// HandleDelete handles DELETE /job-descriptions/:id
func (h *JobDescriptionHandler) HandleDelete(c *fiber.Ctx) error {
	job, err := h.find(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.jobRepo.Delete(job.ID, job.UserID); err != nil {
		return respondError(c, recordError("delete_job_description", "Job description not found", err))
	}

	return c.JSON(fiber.Map{
		"message": "Job description deleted successfully",
	})
}

func (h *JobDescriptionHandler) find(c *fiber.Ctx) (*models.JobDescription, error) {
	id, err := paramID(c, "id", "Job description not found")
	if err != nil {
		return nil, err
	}

	job, err := h.jobRepo.FindByIDForUser(id, currentUserID(c))
	if err != nil {
		return nil, recordError("get_job_description", "Job description not found", err)
	}

	return job, nil
}

package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

type ResumeHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	pdfParser      services.PDFParserService
	// remote is nil unless résumés are synced to the interview provider.
	remote services.RemoteInterviewClient
	log    *zap.Logger
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	remote services.RemoteInterviewClient,
	log *zap.Logger,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		remote:         remote,
		log:            log,
	}
}

// HandleUpload handles POST /resumes
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	userID := currentUserID(c)

	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file part in the request. Upload the resume as 'file'.")
	}

	filePath, err := h.storageService.SaveFile(file, userID, "resume")
	if err != nil {
		if services.KindOf(err) == "" {
			h.log.Error("❌ Failed to save resume", zap.Error(err))
			err = services.ServiceError("upload_resume", "Failed to save resume file", err)
		}
		return respondError(c, err)
	}

	resume := models.Resume{
		UserID:           userID,
		FilePath:         filePath,
		OriginalFilename: filepath.Base(file.Filename),
	}

	// A résumé whose text cannot be extracted is still stored.
	text, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.log.Warn("⚠️ Failed to extract resume text", zap.String("file", resume.OriginalFilename), zap.Error(err))
	} else {
		resume.RawTextContent = services.CleanText(text)
	}

	h.syncWithProvider(c, &resume)

	if err := h.resumeRepo.Create(&resume); err != nil {
		_ = h.storageService.DeleteFile(filePath)
		h.log.Error("❌ Failed to save resume record", zap.Error(err))
		return respondError(c, services.ServiceError("upload_resume", "Failed to save resume record", err))
	}

	h.log.Info("📄 Resume uploaded", zap.String("resume_id", resume.ID.String()), zap.String("user_id", userID.String()))

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Message:  "Resume uploaded successfully",
		ResumeID: resume.ID.String(),
		Filename: resume.OriginalFilename,
	})
}

// syncWithProvider sends the résumé to the interview provider and keeps any
// title and skills it extracted. Failures only cost the extracted fields.
func (h *ResumeHandler) syncWithProvider(c *fiber.Ctx, resume *models.Resume) {
	if h.remote == nil {
		return
	}

	content, err := h.storageService.ReadFile(resume.FilePath)
	if err != nil {
		h.log.Warn("⚠️ Failed to read resume for provider sync", zap.Error(err))
		return
	}

	insights, err := h.remote.ProcessResume(c.UserContext(), resume.OriginalFilename, content)
	if err != nil {
		h.log.Warn("⚠️ Provider resume sync failed", zap.Error(err))
		return
	}

	resume.ExtractedJobTitle = insights.JobTitle
	if insights.HasSkills {
		resume.ExtractedSkills = insights.Skills
	}
}

// HandleList handles GET /resumes
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	resumes, err := h.resumeRepo.ListByUser(currentUserID(c))
	if err != nil {
		return respondError(c, recordError("list_resumes", "", err))
	}

	return c.JSON(fiber.Map{
		"resumes": resumes,
	})
}

// HandleGet handles GET /resumes/:id
func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	resume, err := h.find(c)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resume)
}

// HandleDownload handles GET /resumes/:id/download
func (h *ResumeHandler) HandleDownload(c *fiber.Ctx) error {
	resume, err := h.find(c)
	if err != nil {
		return respondError(c, err)
	}

	return c.Download(resume.FilePath, resume.OriginalFilename)
}

// HandleDelete handles DELETE /resumes/:id
func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	resume, err := h.find(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.resumeRepo.Delete(resume.ID, resume.UserID); err != nil {
		return respondError(c, recordError("delete_resume", "Resume not found", err))
	}

	if err := h.storageService.DeleteFile(resume.FilePath); err != nil {
		h.log.Warn("⚠️ Failed to delete resume file", zap.String("path", resume.FilePath), zap.Error(err))
	}

	return c.JSON(fiber.Map{
		"message": "Resume deleted successfully",
	})
}

func (h *ResumeHandler) find(c *fiber.Ctx) (*models.Resume, error) {
	id, err := paramID(c, "id", "Resume not found")
	if err != nil {
		return nil, err
	}

	resume, err := h.resumeRepo.FindByIDForUser(id, currentUserID(c))
	if err != nil {
		return nil, recordError("get_resume", "Resume not found", err)
	}

	return resume, nil
}

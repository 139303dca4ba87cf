package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth            *AuthHandler
	Resumes         *ResumeHandler
	JobDescriptions *JobDescriptionHandler
	Interviews      *InterviewHandler
	Results         *ResultHandler
}

// RegisterRoutes mounts the API on router. Everything except register,
// login and refresh sits behind requireAuth.
func RegisterRoutes(router fiber.Router, h Handlers, requireAuth fiber.Handler) {
	auth := router.Group("/auth")
	auth.Post("/register", h.Auth.HandleRegister)
	auth.Post("/login", h.Auth.HandleLogin)
	auth.Post("/refresh", h.Auth.HandleRefresh)
	auth.Get("/me", requireAuth, h.Auth.HandleMe)

	resumes := router.Group("/resumes", requireAuth)
	resumes.Post("/", h.Resumes.HandleUpload)
	resumes.Get("/", h.Resumes.HandleList)
	resumes.Get("/:id", h.Resumes.HandleGet)
	resumes.Get("/:id/download", h.Resumes.HandleDownload)
	resumes.Delete("/:id", h.Resumes.HandleDelete)

	jobs := router.Group("/job-descriptions", requireAuth)
	jobs.Post("/", h.JobDescriptions.HandleCreate)
	jobs.Get("/", h.JobDescriptions.HandleList)
	jobs.Get("/:id", h.JobDescriptions.HandleGet)
	jobs.Put("/:id", h.JobDescriptions.HandleUpdate)
	jobs.Delete("/:id", h.JobDescriptions.HandleDelete)

	interview := router.Group("/interview", requireAuth)
	interview.Post("/setup", h.Interviews.HandleSetup)
	interview.Post("/start", h.Interviews.HandleStart)
	interview.Get("/history", h.Results.HandleHistory)
	interview.Get("/results/:id", h.Results.HandleGetResult)
	interview.Get("/results/:id/transcript", h.Results.HandleGetTranscript)
	interview.Post("/:id/finish", h.Interviews.HandleFinish)
	interview.Post("/:id/abort", h.Interviews.HandleAbort)
	interview.Get("/:id/status", h.Interviews.HandleStatus)
	interview.Get("/:id/cheatsheet", h.Results.HandleGetCheatsheet)
	interview.Get("/:id/cheatsheet/pdf", h.Results.HandleDownloadCheatsheet)
}

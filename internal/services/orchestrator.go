package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"alfredoptarigan/interview-coach/internal/metrics"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
)

// SessionDraft is a session that has passed ownership checks but has not
// been persisted. It only becomes a stored session through Setup.
type SessionDraft struct {
	Session *models.InterviewSession
	Resume  *models.Resume
	Job     *models.JobDescription
}

type SetupResult struct {
	Session    *models.InterviewSession
	Cheatsheet *models.Cheatsheet
}

type StartResult struct {
	Session *models.InterviewSession
	Remote  *RemoteSession
}

// InterviewOrchestrator drives an interview session through
// pending -> active -> completed|failed. Every operation checks ownership
// first and reports sessions of other users as not found.
type InterviewOrchestrator interface {
	Create(ctx context.Context, userID, resumeID, jobID uuid.UUID) (*SessionDraft, error)
	Setup(ctx context.Context, draft *SessionDraft) (*SetupResult, error)
	SetupInterview(ctx context.Context, userID, resumeID, jobID uuid.UUID) (*SetupResult, error)
	Start(ctx context.Context, userID, sessionID uuid.UUID) (*StartResult, error)
	Finish(ctx context.Context, userID, sessionID uuid.UUID) (*models.InterviewResult, error)
	Abort(ctx context.Context, userID, sessionID uuid.UUID) (*models.InterviewSession, error)
	RemoteStatus(ctx context.Context, userID, sessionID uuid.UUID) (string, error)
}

type interviewOrchestrator struct {
	sessions      repositories.SessionRepository
	resumes       repositories.ResumeRepository
	jobs          repositories.JobDescriptionRepository
	content       ContentGenerator
	remote        RemoteInterviewClient
	analyzer      TranscriptAnalyzer
	renderer      CheatsheetRenderer
	questionCount int
	metrics       *metrics.Metrics
	log           *zap.Logger
	now           func() time.Time
}

type OrchestratorDeps struct {
	Sessions      repositories.SessionRepository
	Resumes       repositories.ResumeRepository
	Jobs          repositories.JobDescriptionRepository
	Content       ContentGenerator
	Remote        RemoteInterviewClient
	Analyzer      TranscriptAnalyzer
	Renderer      CheatsheetRenderer
	QuestionCount int
	Metrics       *metrics.Metrics
	Log           *zap.Logger
}

func NewInterviewOrchestrator(deps OrchestratorDeps) InterviewOrchestrator {
	count := deps.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}

	return &interviewOrchestrator{
		sessions:      deps.Sessions,
		resumes:       deps.Resumes,
		jobs:          deps.Jobs,
		content:       deps.Content,
		remote:        deps.Remote,
		analyzer:      deps.Analyzer,
		renderer:      deps.Renderer,
		questionCount: count,
		metrics:       deps.Metrics,
		log:           deps.Log,
		now:           time.Now,
	}
}

// Create implements InterviewOrchestrator.
func (o *interviewOrchestrator) Create(ctx context.Context, userID, resumeID, jobID uuid.UUID) (draft *SessionDraft, err error) {
	const op = "create"
	defer func() { o.finishOp(op, uuid.Nil, err) }()

	if resumeID == uuid.Nil || jobID == uuid.Nil {
		return nil, ValidationError(op, "resume_id and job_description_id are required")
	}

	resume, job, err := o.loadInputs(op, userID, resumeID, jobID)
	if err != nil {
		return nil, err
	}

	return &SessionDraft{
		Session: &models.InterviewSession{
			ID:               uuid.New(),
			UserID:           userID,
			ResumeID:         resume.ID,
			JobDescriptionID: job.ID,
			Status:           models.StatusPending,
			StartTime:        o.now(),
		},
		Resume: resume,
		Job:    job,
	}, nil
}

// Setup implements InterviewOrchestrator. Nothing is stored unless questions,
// cheatsheet and artifact are all produced.
func (o *interviewOrchestrator) Setup(ctx context.Context, draft *SessionDraft) (res *SetupResult, err error) {
	const op = "setup"
	session := draft.Session
	defer func() { o.finishOp(op, session.ID, err) }()

	if session.Status != models.StatusPending {
		return nil, StateConflictError(op, fmt.Sprintf("Interview is already %s", session.Status))
	}

	jobText := draft.Job.DescriptionText
	resumeText := draft.Resume.RawTextContent

	questions, err := o.content.GenerateQuestions(ctx, jobText, resumeText, o.questionCount)
	if err != nil {
		return nil, ServiceError(op, upstreamMessage("Failed to generate interview questions", err), err)
	}

	sheet, err := o.content.GenerateCheatsheet(ctx, jobText, resumeText)
	if err != nil {
		return nil, ServiceError(op, upstreamMessage("Failed to generate cheatsheet", err), err)
	}

	done := o.metrics.Time("renderer", "render_cheatsheet")
	path, err := o.renderer.Render(session.UserID, fmt.Sprintf("cheatsheet_%s.pdf", session.ID), sheet.Text)
	done()
	if err != nil {
		return nil, ServiceError(op, "Failed to render cheatsheet PDF", err)
	}

	session.Questions = questions
	cheatsheet := &models.Cheatsheet{
		Prompt:        sheet.Prompt,
		GeneratedText: sheet.Text,
		PDFFilePath:   path,
	}

	if err := o.sessions.CreateWithCheatsheet(session, cheatsheet); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			o.log.Warn("⚠️ Failed to remove orphaned cheatsheet", zap.String("path", path), zap.Error(rmErr))
		}
		return nil, ServiceError(op, "Failed to save interview session", err)
	}

	return &SetupResult{Session: session, Cheatsheet: cheatsheet}, nil
}

// SetupInterview implements InterviewOrchestrator.
func (o *interviewOrchestrator) SetupInterview(ctx context.Context, userID, resumeID, jobID uuid.UUID) (*SetupResult, error) {
	draft, err := o.Create(ctx, userID, resumeID, jobID)
	if err != nil {
		return nil, err
	}
	return o.Setup(ctx, draft)
}

// Start implements InterviewOrchestrator. A provider failure leaves the
// session as it was.
func (o *interviewOrchestrator) Start(ctx context.Context, userID, sessionID uuid.UUID) (res *StartResult, err error) {
	const op = "start"
	defer func() { o.finishOp(op, sessionID, err) }()

	session, err := o.loadSession(op, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.StatusPending && session.Status != models.StatusFailed {
		return nil, StateConflictError(op, fmt.Sprintf("Interview is already %s", session.Status))
	}

	resume, job, err := o.loadInputs(op, userID, session.ResumeID, session.JobDescriptionID)
	if err != nil {
		return nil, err
	}

	remote, err := o.remote.CreateSession(ctx, RemoteSessionRequest{
		JobTitle:       job.Title,
		JobDescription: job.DescriptionText,
		ResumeSummary:  resume.RawTextContent,
		UserID:         userID,
	})
	if err != nil {
		return nil, ServiceError(op, upstreamMessage("Failed to start interview session", err), err)
	}

	from := session.Status
	session.Status = models.StatusActive
	session.EndTime = nil
	session.RemoteCallID = &remote.CallID
	session.RemoteRoomName = &remote.RoomName

	if err := o.sessions.UpdateTransition(session, from); err != nil {
		return nil, o.transitionError(op, err)
	}

	return &StartResult{Session: session, Remote: remote}, nil
}

// Finish implements InterviewOrchestrator. A failed transcript fetch or
// analysis leaves the session active so that Finish can be retried.
func (o *interviewOrchestrator) Finish(ctx context.Context, userID, sessionID uuid.UUID) (result *models.InterviewResult, err error) {
	const op = "finish"
	defer func() { o.finishOp(op, sessionID, err) }()

	session, err := o.loadSession(op, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.StatusActive {
		return nil, StateConflictError(op, fmt.Sprintf("Interview is not active (current status: %s)", session.Status))
	}
	if session.RemoteCallID == nil || *session.RemoteCallID == "" {
		return nil, ServiceError(op, "Interview has no remote call", nil)
	}

	transcript, err := o.remote.GetTranscript(ctx, *session.RemoteCallID)
	if err != nil {
		return nil, ServiceError(op, upstreamMessage("Failed to retrieve transcript", err), err)
	}

	resume, job, err := o.loadInputs(op, userID, session.ResumeID, session.JobDescriptionID)
	if err != nil {
		return nil, err
	}

	analysis, err := o.analyzer.Analyze(ctx, transcript, job.DescriptionText, resume.RawTextContent)
	if err != nil {
		return nil, ServiceError(op, upstreamMessage("Failed to analyze transcript", err), err)
	}

	result = &models.InterviewResult{
		Score:           analysis.Score,
		FeedbackSummary: analysis.FeedbackSummary,
		FullTranscript:  transcript,
		DetailedFeedback: datatypes.NewJSONType(models.DetailedFeedback{
			Score:               analysis.Score,
			FeedbackSummary:     analysis.FeedbackSummary,
			AreasForImprovement: analysis.AreasForImprovement,
			Strengths:           analysis.Strengths,
		}),
	}

	end := o.now()
	session.Status = models.StatusCompleted
	session.EndTime = &end

	if err := o.sessions.CompleteWithResult(session, models.StatusActive, result); err != nil {
		return nil, o.transitionError(op, err)
	}

	return result, nil
}

// Abort implements InterviewOrchestrator.
func (o *interviewOrchestrator) Abort(ctx context.Context, userID, sessionID uuid.UUID) (session *models.InterviewSession, err error) {
	const op = "abort"
	defer func() { o.finishOp(op, sessionID, err) }()

	session, err = o.loadSession(op, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.StatusActive {
		return nil, StateConflictError(op, fmt.Sprintf("Interview is not active (current status: %s)", session.Status))
	}

	end := o.now()
	session.Status = models.StatusFailed
	session.EndTime = &end

	if err := o.sessions.UpdateTransition(session, models.StatusActive); err != nil {
		return nil, o.transitionError(op, err)
	}

	return session, nil
}

// RemoteStatus implements InterviewOrchestrator.
func (o *interviewOrchestrator) RemoteStatus(ctx context.Context, userID, sessionID uuid.UUID) (status string, err error) {
	const op = "remote_status"
	defer func() { o.finishOp(op, sessionID, err) }()

	session, err := o.loadSession(op, userID, sessionID)
	if err != nil {
		return "", err
	}

	if session.RemoteCallID == nil || *session.RemoteCallID == "" {
		return "", StateConflictError(op, fmt.Sprintf("Interview has not been started (current status: %s)", session.Status))
	}

	status, err = o.remote.CheckStatus(ctx, *session.RemoteCallID)
	if err != nil {
		return "", ServiceError(op, upstreamMessage("Failed to check interview status", err), err)
	}

	return status, nil
}

func (o *interviewOrchestrator) loadSession(op string, userID, sessionID uuid.UUID) (*models.InterviewSession, error) {
	session, err := o.sessions.FindByIDForUser(sessionID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFoundError(op, "Interview session not found", err)
		}
		return nil, ServiceError(op, "Failed to load interview session", err)
	}
	return session, nil
}

func (o *interviewOrchestrator) loadInputs(op string, userID, resumeID, jobID uuid.UUID) (*models.Resume, *models.JobDescription, error) {
	resume, err := o.resumes.FindByIDForUser(resumeID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, NotFoundError(op, "Resume not found or not owned by user", err)
		}
		return nil, nil, ServiceError(op, "Failed to load resume", err)
	}

	job, err := o.jobs.FindByIDForUser(jobID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, NotFoundError(op, "Job description not found or not owned by user", err)
		}
		return nil, nil, ServiceError(op, "Failed to load job description", err)
	}

	return resume, job, nil
}

func (o *interviewOrchestrator) transitionError(op string, err error) error {
	if errors.Is(err, repositories.ErrStaleSession) {
		return StateConflictError(op, "Interview status changed concurrently, please retry")
	}
	return ServiceError(op, "Failed to save interview session", err)
}

func (o *interviewOrchestrator) finishOp(op string, sessionID uuid.UUID, err error) {
	o.metrics.Observe(op, err)
	if err == nil {
		return
	}

	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("kind", string(KindOf(err))),
		zap.Error(err),
	}
	if sessionID != uuid.Nil {
		fields = append(fields, zap.String("session_id", sessionID.String()))
	}

	if KindOf(err) == KindService {
		o.log.Error("❌ Interview operation failed", fields...)
	} else {
		o.log.Warn("⚠️ Interview operation rejected", fields...)
	}
}

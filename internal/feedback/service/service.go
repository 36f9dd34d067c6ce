// Package service implements the feedback dispatch coordinator: deciding how
// a completed job's feedback request goes out, delivering it, and taking
// submissions in.
package service

import (
	"context"
	"fmt"
	"time"

	"fieldservice_backend/internal/events"
	"fieldservice_backend/internal/feedback/repository"
	"fieldservice_backend/internal/feedback/transport"
	"fieldservice_backend/internal/scheduler"
	"fieldservice_backend/platform/apperr"
	"fieldservice_backend/platform/config"
	"fieldservice_backend/platform/logger"
)

// DirectiveManualPending tells the caller that auto-send is off and a manual
// feedback-send decision should be presented once the triggering operation
// has settled.
const DirectiveManualPending = "manual_pending"

// Store is the persistence surface the service needs. Implemented by
// repository.Repository.
type Store interface {
	Get(ctx context.Context, jobID string) (*repository.FeedbackRecord, error)
	MarkRequested(ctx context.Context, jobID string) error
	SaveSubmission(ctx context.Context, jobID string, rating int, comment string, submittedAt time.Time) error
	JobFacts(ctx context.Context, jobID string) (*repository.JobFacts, error)
}

// EmailSender delivers the feedback request. Satisfied by the email sender.
type EmailSender interface {
	SendFeedbackRequestEmail(ctx context.Context, toEmail, customerName, jobTitle, feedbackURL string) error
}

// JobStatusWriter advances a completed job after feedback arrives. Wired via
// an adapter over the jobs service to break the construction cycle.
type JobStatusWriter interface {
	MarkFeedbackReceived(ctx context.Context, jobID string) error
}

// Service coordinates feedback requests and submissions.
type Service struct {
	store     Store
	sender    EmailSender
	enqueuer  scheduler.FeedbackEnqueuer
	jobWriter JobStatusWriter
	bus       events.Bus
	log       *logger.Logger
	autoSend  bool
	baseURL   string
	now       func() time.Time
}

// New creates the feedback service. enqueuer may be nil when no task queue is
// configured; dispatch then happens inline.
func New(store Store, sender EmailSender, enqueuer scheduler.FeedbackEnqueuer, bus events.Bus, cfg config.FeedbackConfig, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		sender:   sender,
		enqueuer: enqueuer,
		bus:      bus,
		log:      log,
		autoSend: cfg.GetFeedbackAutoSend(),
		baseURL:  cfg.GetPublicBaseURL(),
		now:      time.Now,
	}
}

// SetJobStatusWriter injects the jobs adapter after both modules exist.
func (s *Service) SetJobStatusWriter(writer JobStatusWriter) {
	s.jobWriter = writer
}

// SetClock overrides the time source. Only used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// OnJobCompleted decides what happens when a job reaches completed. With a
// feedback record already on file nothing happens. With auto-send enabled the
// request is dispatched in the background; otherwise the manual-pending
// directive is returned for the caller to act on later.
func (s *Service) OnJobCompleted(ctx context.Context, jobID string) (string, error) {
	record, err := s.store.Get(ctx, jobID)
	if err != nil {
		return "", err
	}
	if record != nil {
		return "", nil
	}

	if !s.autoSend {
		return DirectiveManualPending, nil
	}

	if s.enqueuer == nil {
		// no task queue configured; deliver inline rather than drop the request
		return "", s.Dispatch(ctx, jobID)
	}

	err = s.enqueuer.EnqueueFeedbackDispatch(ctx, scheduler.FeedbackDispatchPayload{JobID: jobID})
	if err != nil {
		return "", fmt.Errorf("failed to enqueue feedback dispatch: %w", err)
	}
	return "", nil
}

// SendFeedbackRequest is the manual send path, triggered by a user decision.
func (s *Service) SendFeedbackRequest(ctx context.Context, jobID string) error {
	return s.Dispatch(ctx, jobID)
}

// Dispatch delivers the feedback request email for a job. A customer without
// an email address is logged and skipped: no record is written and no error
// returned, so the triggering operation stays successful.
func (s *Service) Dispatch(ctx context.Context, jobID string) error {
	facts, err := s.store.JobFacts(ctx, jobID)
	if err != nil {
		return err
	}

	if facts.CustomerEmail == "" {
		s.log.DispatchSkipped(jobID, "customer has no email on file")
		return nil
	}

	feedbackURL := fmt.Sprintf("%s/feedback/%s", s.baseURL, jobID)
	if err := s.sender.SendFeedbackRequestEmail(ctx, facts.CustomerEmail, facts.CustomerName, facts.JobTitle, feedbackURL); err != nil {
		return fmt.Errorf("failed to send feedback request: %w", err)
	}

	if err := s.store.MarkRequested(ctx, jobID); err != nil {
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.FeedbackRequestSent{
			BaseEvent:     events.NewBaseEvent(),
			JobID:         jobID,
			CustomerEmail: facts.CustomerEmail,
			Mode:          s.mode(),
		})
	}

	return nil
}

func (s *Service) mode() string {
	if s.autoSend {
		return "auto"
	}
	return "manual"
}

// SubmitFeedback stores the customer's answer and, when the job is currently
// completed, advances it to feedback received. This is the only path into
// that status.
func (s *Service) SubmitFeedback(ctx context.Context, jobID string, req transport.SubmitFeedbackRequest) error {
	facts, err := s.store.JobFacts(ctx, jobID)
	if err != nil {
		return err
	}

	if req.Rating < 1 || req.Rating > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}

	if err := s.store.SaveSubmission(ctx, jobID, req.Rating, req.Comment, s.now()); err != nil {
		return err
	}

	if facts.JobStatus == "completed" && s.jobWriter != nil {
		if err := s.jobWriter.MarkFeedbackReceived(ctx, jobID); err != nil {
			return err
		}
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.FeedbackSubmitted{
			BaseEvent: events.NewBaseEvent(),
			JobID:     jobID,
			Rating:    req.Rating,
		})
	}

	return nil
}

// Get returns the feedback state for a job.
func (s *Service) Get(ctx context.Context, jobID string) (*transport.FeedbackResponse, error) {
	if _, err := s.store.JobFacts(ctx, jobID); err != nil {
		return nil, err
	}

	record, err := s.store.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &transport.FeedbackResponse{JobID: jobID, Exists: false}, nil
	}

	resp := &transport.FeedbackResponse{
		JobID:       record.JobID,
		Exists:      true,
		Received:    record.Received,
		RequestedAt: &record.RequestedAt,
	}
	if record.Received {
		resp.Rating = record.Rating
		resp.Comment = record.Comment
		resp.SubmittedAt = record.SubmittedAt
	}
	return resp, nil
}

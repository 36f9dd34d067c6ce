// Package service implements the job lifecycle engine: status transitions
// with their document cascade, reassignment and reschedule overrides, and
// route computation.
package service

import (
	"context"
	"time"

	"fieldservice_backend/internal/events"
	"fieldservice_backend/internal/jobs/domain"
	"fieldservice_backend/internal/jobs/repository"
	"fieldservice_backend/internal/jobs/transport"
	"fieldservice_backend/platform/apperr"
	"fieldservice_backend/platform/config"
	"fieldservice_backend/platform/logger"
)

const dateLayout = "2006-01-02"

// Store is the persistence surface the service needs. Implemented by
// repository.Repository.
type Store interface {
	NextJobID(ctx context.Context) (string, error)
	Create(ctx context.Context, job *repository.Job) error
	GetByID(ctx context.Context, id string) (*repository.Job, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	ListForTechnicianDate(ctx context.Context, technicianID string, date time.Time) ([]repository.Job, error)
	List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error)
	GetOverride(ctx context.Context, jobID string) (*repository.ScheduleOverride, error)
	UpsertOverride(ctx context.Context, override *repository.ScheduleOverride) error
	GetRouteOrder(ctx context.Context, technicianID string) ([]string, error)
	SaveRouteOrder(ctx context.Context, technicianID string, jobIDs []string) error
}

// DocumentCascader mirrors job cancellation into the originating document's
// deactivated set. Implemented by the documents module.
type DocumentCascader interface {
	Deactivate(ctx context.Context, kind domain.DocumentKind, id string) error
	Reactivate(ctx context.Context, kind domain.DocumentKind, id string) error
}

// FeedbackCoordinator decides what happens when a job completes. The returned
// directive is empty when nothing is pending, or "manual_pending" when the
// caller should offer a manual feedback-send decision. Implemented by the
// feedback module.
type FeedbackCoordinator interface {
	OnJobCompleted(ctx context.Context, jobID string) (string, error)
}

// EmployeeInfo is the slice of the employee directory this module reads.
type EmployeeInfo struct {
	ID     string
	Name   string
	Status string
}

// EmployeeDirectory looks up technicians for reassignment and route queries.
type EmployeeDirectory interface {
	EmployeeByID(ctx context.Context, id string) (*EmployeeInfo, error)
}

// CustomerInfo is the slice of the customer directory this module reads.
type CustomerInfo struct {
	ID    string
	Name  string
	Email string
}

// CustomerDirectory looks up customers for job creation and notifications.
type CustomerDirectory interface {
	CustomerByID(ctx context.Context, id string) (*CustomerInfo, error)
}

// ScheduleNotifier tells a customer their visit moved. Satisfied by the
// email sender.
type ScheduleNotifier interface {
	SendScheduleChangeEmail(ctx context.Context, toEmail, customerName, jobTitle, newDate, newTime string) error
}

// Service implements the job lifecycle operations.
type Service struct {
	store     Store
	cascader  DocumentCascader
	feedback  FeedbackCoordinator
	employees EmployeeDirectory
	customers CustomerDirectory
	notifier  ScheduleNotifier
	bus       events.Bus
	log       *logger.Logger
	grace     time.Duration
	now       func() time.Time
}

// New creates the jobs service.
func New(
	store Store,
	cascader DocumentCascader,
	feedback FeedbackCoordinator,
	employees EmployeeDirectory,
	customers CustomerDirectory,
	notifier ScheduleNotifier,
	bus events.Bus,
	routeCfg config.RouteConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		store:     store,
		cascader:  cascader,
		feedback:  feedback,
		employees: employees,
		customers: customers,
		notifier:  notifier,
		bus:       bus,
		log:       log,
		grace:     routeCfg.GetRouteGraceWindow(),
		now:       time.Now,
	}
}

// SetClock overrides the time source. Only used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func overrideToDomain(o *repository.ScheduleOverride) *domain.VisitOverride {
	if o == nil {
		return nil
	}
	return &domain.VisitOverride{
		TechnicianID:   o.TechnicianID,
		TechnicianName: o.TechnicianName,
		VisitDate:      o.VisitDate,
		VisitTime:      o.VisitTime,
		Location:       o.Location,
	}
}

// applyOverride folds the stored override into the job's visit details. The
// stored row is the accumulation of every reassign and reschedule so far, so
// reading it back after an upsert reflects earlier changes too.
func applyOverride(job *repository.Job, stored *repository.ScheduleOverride) {
	merged := domain.MergeOverride(domain.VisitDetails{
		TechnicianID:   job.TechnicianID,
		TechnicianName: job.TechnicianName,
		VisitDate:      job.VisitDate,
		VisitTime:      job.VisitTime,
		Location:       job.Location,
	}, overrideToDomain(stored))

	job.TechnicianID = merged.TechnicianID
	job.TechnicianName = merged.TechnicianName
	job.VisitDate = merged.VisitDate
	job.VisitTime = merged.VisitTime
	job.Location = merged.Location
}

func toResponse(job *repository.Job) transport.JobResponse {
	return transport.JobResponse{
		ID:             job.ID,
		Title:          job.Title,
		CustomerID:     job.CustomerID,
		CustomerName:   job.CustomerName,
		TechnicianID:   job.TechnicianID,
		TechnicianName: job.TechnicianName,
		VisitDate:      job.VisitDate.Format(dateLayout),
		VisitTime:      job.VisitTime,
		Status:         job.Status,
		Location:       job.Location,
		SourceType:     job.SourceType,
		SourceID:       job.SourceID,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}

// Create registers a new job. Jobs converted from a sales document reuse the
// document id as the job id so the cancellation cascade can target it; ad-hoc
// jobs get a generated JOB identifier.
func (s *Service) Create(ctx context.Context, req transport.CreateJobRequest) (*transport.JobResponse, error) {
	visitDate, err := time.Parse(dateLayout, req.VisitDate)
	if err != nil {
		return nil, apperr.BadRequest("invalid visit date")
	}

	customer, err := s.customers.CustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	employee, err := s.employees.EmployeeByID(ctx, req.TechnicianID)
	if err != nil {
		return nil, err
	}

	id := req.SourceID
	var sourceType, sourceID *string
	if id != "" {
		st := req.SourceType
		if st == "" {
			st = string(domain.ResolveDocumentKind("", req.SourceID))
		}
		sourceType = &st
		sourceID = &req.SourceID
	} else {
		id, err = s.store.NextJobID(ctx)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	job := &repository.Job{
		ID:             id,
		Title:          req.Title,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		TechnicianID:   employee.ID,
		TechnicianName: employee.Name,
		VisitDate:      visitDate,
		VisitTime:      req.VisitTime,
		Status:         string(domain.StatusScheduled),
		Location:       req.Location,
		SourceType:     sourceType,
		SourceID:       sourceID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Create(ctx, job); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.JobCreated{
			BaseEvent:    events.NewBaseEvent(),
			JobID:        job.ID,
			CustomerID:   job.CustomerID,
			TechnicianID: job.TechnicianID,
			Title:        job.Title,
			VisitDate:    job.VisitDate,
			VisitTime:    job.VisitTime,
		})
	}

	resp := toResponse(job)
	return &resp, nil
}

// Get retrieves a single job with overrides merged in.
func (s *Service) Get(ctx context.Context, id string) (*transport.JobResponse, error) {
	job, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(job)
	return &resp, nil
}

// List retrieves jobs with filtering and pagination.
func (s *Service) List(ctx context.Context, req transport.ListJobsRequest) (*transport.JobListResponse, error) {
	params := repository.ListParams{
		TechnicianID: req.TechnicianID,
		CustomerID:   req.CustomerID,
		Status:       req.Status,
		Search:       req.Search,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, apperr.BadRequest("invalid date filter")
		}
		params.Date = &date
	}

	result, err := s.store.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]transport.JobResponse, len(result.Items))
	for i := range result.Items {
		items[i] = toResponse(&result.Items[i])
	}

	return &transport.JobListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// cascadeTarget returns the document kind and id a job's cancellation state
// mirrors into, or KindUnknown for ad-hoc jobs.
func cascadeTarget(job *repository.Job) (domain.DocumentKind, string) {
	sourceType := ""
	if job.SourceType != nil {
		sourceType = *job.SourceType
	}
	kind := domain.ResolveDocumentKind(sourceType, job.ID)

	id := job.ID
	if job.SourceID != nil && *job.SourceID != "" {
		id = *job.SourceID
	}
	return kind, id
}

// Transition moves a job to a new status on behalf of an actor. The document
// cascade runs synchronously: it has completed (or explicitly failed) by the
// time this returns. Feedback dispatch is the only part applied afterward.
func (s *Service) Transition(ctx context.Context, jobID, newStatus string, role domain.Role) (*transport.TransitionResponse, error) {
	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(job.Status)
	to := domain.Status(newStatus)

	if err := domain.CheckTransition(from, to, role, false); err != nil {
		switch err {
		case domain.ErrUnknownStatus:
			return nil, apperr.BadRequest("unknown job status")
		case domain.ErrUnauthorizedReactivation:
			return nil, apperr.Forbidden(err.Error())
		default:
			return nil, apperr.Conflict("invalid status transition").
				WithDetails(map[string]string{"from": string(from), "to": string(to)})
		}
	}

	kind, cascadeID := cascadeTarget(job)
	if domain.ValidDocumentKind(kind) {
		// re-running the deactivation on a repeated cancel is harmless;
		// the deactivated set is idempotent
		if to == domain.StatusCancelled {
			if err := s.cascader.Deactivate(ctx, kind, cascadeID); err != nil {
				return nil, err
			}
		} else if from == domain.StatusCancelled {
			if err := s.cascader.Reactivate(ctx, kind, cascadeID); err != nil {
				return nil, err
			}
		}
	}

	if from != to {
		if err := s.store.UpdateStatus(ctx, job.ID, string(to)); err != nil {
			return nil, err
		}
	}
	job.Status = string(to)
	job.UpdatedAt = s.now()

	directive := ""
	if to == domain.StatusCompleted && from != domain.StatusCompleted && s.feedback != nil {
		directive, err = s.feedback.OnJobCompleted(ctx, job.ID)
		if err != nil {
			// the completion stands even when feedback coordination fails
			s.log.Warn("feedback coordination failed", "jobId", job.ID, "error", err)
			directive = ""
		}
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.JobStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			JobID:     job.ID,
			OldStatus: string(from),
			NewStatus: string(to),
			ActorRole: string(role),
		})
		if to == domain.StatusCancelled {
			s.bus.Publish(ctx, events.JobCancelled{
				BaseEvent:    events.NewBaseEvent(),
				JobID:        job.ID,
				DocumentKind: string(kind),
				DocumentID:   cascadeID,
				ActorRole:    string(role),
			})
		}
	}

	return &transport.TransitionResponse{
		Job:               toResponse(job),
		FeedbackDirective: directive,
	}, nil
}

// MarkFeedbackReceived advances a completed job to feedback received. It is
// only called on behalf of a feedback submission, which is the sole path into
// that status.
func (s *Service) MarkFeedbackReceived(ctx context.Context, jobID string) error {
	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	from := domain.Status(job.Status)
	if err := domain.CheckTransition(from, domain.StatusFeedbackReceived, domain.RoleMerchant, true); err != nil {
		return apperr.Conflict("job is not awaiting feedback")
	}

	if err := s.store.UpdateStatus(ctx, jobID, string(domain.StatusFeedbackReceived)); err != nil {
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.JobStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			JobID:     jobID,
			OldStatus: string(from),
			NewStatus: string(domain.StatusFeedbackReceived),
			ActorRole: "customer",
		})
	}

	return nil
}

// Reassign hands a job to a different technician by recording an override;
// the base job row keeps the original assignment for audit.
func (s *Service) Reassign(ctx context.Context, jobID, technicianID string) (*transport.JobResponse, error) {
	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	employee, err := s.employees.EmployeeByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}

	previous := job.TechnicianID
	override := &repository.ScheduleOverride{
		JobID:          job.ID,
		TechnicianID:   &employee.ID,
		TechnicianName: &employee.Name,
		UpdatedAt:      s.now(),
	}
	if err := s.store.UpsertOverride(ctx, override); err != nil {
		return nil, err
	}

	stored, err := s.store.GetOverride(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	applyOverride(job, stored)

	if s.bus != nil {
		s.bus.Publish(ctx, events.JobReassigned{
			BaseEvent:          events.NewBaseEvent(),
			JobID:              job.ID,
			PreviousTechnician: previous,
			NewTechnician:      employee.ID,
		})
	}

	resp := toResponse(job)
	return &resp, nil
}

// Reschedule moves a job to a new date/time via an override and notifies the
// customer when an email address is on file. Notification failures never fail
// the reschedule.
func (s *Service) Reschedule(ctx context.Context, jobID string, req transport.RescheduleJobRequest) (*transport.JobResponse, error) {
	visitDate, err := time.Parse(dateLayout, req.VisitDate)
	if err != nil {
		return nil, apperr.BadRequest("invalid visit date")
	}

	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	override := &repository.ScheduleOverride{
		JobID:     job.ID,
		VisitDate: &visitDate,
		VisitTime: &req.VisitTime,
		Location:  req.Location,
		UpdatedAt: s.now(),
	}
	if req.TechnicianID != nil {
		employee, err := s.employees.EmployeeByID(ctx, *req.TechnicianID)
		if err != nil {
			return nil, err
		}
		override.TechnicianID = &employee.ID
		override.TechnicianName = &employee.Name
	}

	if err := s.store.UpsertOverride(ctx, override); err != nil {
		return nil, err
	}

	oldDate := job.VisitDate
	stored, err := s.store.GetOverride(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	applyOverride(job, stored)

	if s.bus != nil {
		s.bus.Publish(ctx, events.JobRescheduled{
			BaseEvent:    events.NewBaseEvent(),
			JobID:        job.ID,
			OldVisitDate: oldDate,
			NewVisitDate: visitDate,
			NewVisitTime: req.VisitTime,
		})
	}

	s.notifyScheduleChange(ctx, job)

	resp := toResponse(job)
	return &resp, nil
}

func (s *Service) notifyScheduleChange(ctx context.Context, job *repository.Job) {
	if s.notifier == nil || s.customers == nil {
		return
	}

	customer, err := s.customers.CustomerByID(ctx, job.CustomerID)
	if err != nil {
		s.log.Warn("customer lookup failed for reschedule notice", "jobId", job.ID, "error", err)
		return
	}
	if customer.Email == "" {
		s.log.Warn("customer has no email, reschedule notice skipped", "jobId", job.ID)
		return
	}

	err = s.notifier.SendScheduleChangeEmail(ctx, customer.Email, customer.Name, job.Title,
		job.VisitDate.Format(dateLayout), job.VisitTime)
	if err != nil {
		s.log.Warn("reschedule notice failed", "jobId", job.ID, "error", err)
	}
}

// ComputeRoute sequences one technician's jobs for a day and marks the
// current and next stops. An empty date means today.
func (s *Service) ComputeRoute(ctx context.Context, employeeID, dateStr string) (*transport.RouteResponse, error) {
	if _, err := s.employees.EmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}

	now := s.now()
	date := now.Truncate(24 * time.Hour)
	if dateStr != "" {
		parsed, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, apperr.BadRequest("invalid date")
		}
		date = parsed
	}

	jobs, err := s.store.ListForTechnicianDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	persistedOrder, err := s.store.GetRouteOrder(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	visits := make([]domain.Visit, len(jobs))
	byID := make(map[string]*repository.Job, len(jobs))
	for i := range jobs {
		visits[i] = domain.Visit{
			ID:        jobs[i].ID,
			Status:    domain.Status(jobs[i].Status),
			TimeLabel: jobs[i].VisitTime,
		}
		byID[jobs[i].ID] = &jobs[i]
	}

	sequenced := domain.Sequence(visits, persistedOrder)

	nowMinutes := now.Hour()*60 + now.Minute()
	currentIndex, nextIndex := domain.LocateStops(sequenced, nowMinutes, int(s.grace.Minutes()))

	stops := make([]transport.RouteStopResponse, len(sequenced))
	for i, visit := range sequenced {
		stops[i] = transport.RouteStopResponse{
			Job:           toResponse(byID[visit.ID]),
			Order:         i + 1,
			IsCurrentStop: i == currentIndex,
			IsNextStop:    i == nextIndex,
		}
	}

	return &transport.RouteResponse{
		EmployeeID:   employeeID,
		Date:         date.Format(dateLayout),
		Stops:        stops,
		CurrentIndex: currentIndex,
		NextIndex:    nextIndex,
	}, nil
}

// SaveRouteOrder persists a technician's custom stop order.
func (s *Service) SaveRouteOrder(ctx context.Context, employeeID string, jobIDs []string) error {
	if _, err := s.employees.EmployeeByID(ctx, employeeID); err != nil {
		return err
	}
	return s.store.SaveRouteOrder(ctx, employeeID, jobIDs)
}

// Package feedback provides the feedback request and submission module.
package feedback

import (
	"fieldservice_backend/internal/events"
	"fieldservice_backend/internal/feedback/handler"
	"fieldservice_backend/internal/feedback/repository"
	"fieldservice_backend/internal/feedback/service"
	apphttp "fieldservice_backend/internal/http"
	"fieldservice_backend/internal/scheduler"
	"fieldservice_backend/platform/config"
	"fieldservice_backend/platform/logger"
	"fieldservice_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the feedback domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new feedback module with all dependencies wired.
// The job status writer is injected afterwards via SetJobStatusWriter.
func NewModule(
	pool *pgxpool.Pool,
	val *validator.Validator,
	sender service.EmailSender,
	enqueuer scheduler.FeedbackEnqueuer,
	bus events.Bus,
	cfg config.FeedbackConfig,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, sender, enqueuer, bus, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "feedback"
}

// SetJobStatusWriter injects the jobs adapter (breaks the construction cycle).
func (m *Module) SetJobStatusWriter(writer service.JobStatusWriter) {
	m.Service.SetJobStatusWriter(writer)
}

// RegisterRoutes registers the module's routes under /api/v1/jobs/:id
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	jobs := ctx.Protected.Group("/jobs")
	m.handler.RegisterRoutes(jobs)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Package jobs provides the job lifecycle and route sequencing module.
package jobs

import (
	"fieldservice_backend/internal/events"
	apphttp "fieldservice_backend/internal/http"
	"fieldservice_backend/internal/jobs/handler"
	"fieldservice_backend/internal/jobs/repository"
	"fieldservice_backend/internal/jobs/service"
	"fieldservice_backend/platform/config"
	"fieldservice_backend/platform/logger"
	"fieldservice_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the jobs domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new jobs module with all dependencies wired
func NewModule(
	pool *pgxpool.Pool,
	val *validator.Validator,
	cascader service.DocumentCascader,
	feedback service.FeedbackCoordinator,
	employees service.EmployeeDirectory,
	customers service.CustomerDirectory,
	notifier service.ScheduleNotifier,
	bus events.Bus,
	routeCfg config.RouteConfig,
	log *logger.Logger,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cascader, feedback, employees, customers, notifier, bus, routeCfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "jobs"
}

// RegisterRoutes registers the module's routes under /api/v1/jobs and /api/v1/routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterJobRoutes(ctx.Protected.Group("/jobs"))
	m.handler.RegisterRouteRoutes(ctx.Protected.Group("/routes"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

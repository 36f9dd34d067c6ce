// Package documents provides the sales document module. It owns the per-kind
// deactivated-id sets that mirror job cancellations.
package documents

import (
	"fieldservice_backend/internal/documents/handler"
	"fieldservice_backend/internal/documents/repository"
	"fieldservice_backend/internal/documents/service"
	apphttp "fieldservice_backend/internal/http"
	"fieldservice_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the documents domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new documents module with all dependencies wired
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "documents"
}

// RegisterRoutes registers the module's routes under /api/v1/documents
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	documents := ctx.Protected.Group("/documents")
	m.handler.RegisterRoutes(documents)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

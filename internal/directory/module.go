// Package directory provides read-only customer and employee lookups.
// Other modules consume it through adapters; the HTTP surface is lookup-only.
package directory

import (
	"net/http"

	"fieldservice_backend/internal/directory/repository"
	apphttp "fieldservice_backend/internal/http"
	"fieldservice_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the directory domain module
type Module struct {
	repo *repository.Repository
}

// NewModule creates a new directory module
func NewModule(pool *pgxpool.Pool) *Module {
	return &Module{repo: repository.New(pool)}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "directory"
}

// Repository exposes the underlying repository for adapter wiring.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the lookup routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/customers/:id", m.getCustomer)
	ctx.Protected.GET("/employees/:id", m.getEmployee)
}

func (m *Module) getCustomer(c *gin.Context) {
	cust, err := m.repo.CustomerByID(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusOK, gin.H{
		"id":      cust.ID,
		"name":    cust.Name,
		"email":   cust.Email,
		"phone":   cust.Phone,
		"address": cust.Address,
	})
}

func (m *Module) getEmployee(c *gin.Context) {
	emp, err := m.repo.EmployeeByID(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusOK, gin.H{
		"id":     emp.ID,
		"name":   emp.Name,
		"status": emp.Status,
	})
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

package handler

import (
	"net/http"

	"fieldservice_backend/internal/jobs/domain"
	"fieldservice_backend/internal/jobs/service"
	"fieldservice_backend/internal/jobs/transport"
	"fieldservice_backend/platform/httpkit"
	"fieldservice_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for jobs and routes
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new jobs handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterJobRoutes registers the job routes
func (h *Handler) RegisterJobRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.POST("/:id/reassign", h.Reassign)
	rg.POST("/:id/reschedule", h.Reschedule)
}

// RegisterRouteRoutes registers the per-technician route endpoints
func (h *Handler) RegisterRouteRoutes(rg *gin.RouterGroup) {
	rg.GET("/:employeeId", h.ComputeRoute)
	rg.PUT("/:employeeId/order", h.SaveRouteOrder)
}

// actorRole maps the caller's identity to a lifecycle role. Merchant
// authority comes from the identity; everyone else acts as an employee.
func actorRole(identity httpkit.Identity) domain.Role {
	if identity.IsMerchant() {
		return domain.RoleMerchant
	}
	return domain.RoleEmployee
}

// List handles GET /api/v1/jobs
func (h *Handler) List(c *gin.Context) {
	var req transport.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Create handles POST /api/v1/jobs
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}

// GetByID handles GET /api/v1/jobs/:id
func (h *Handler) GetByID(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// UpdateStatus handles PATCH /api/v1/jobs/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req transport.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Transition(c.Request.Context(), c.Param("id"), req.Status, actorRole(identity))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Reassign handles POST /api/v1/jobs/:id/reassign
func (h *Handler) Reassign(c *gin.Context) {
	var req transport.ReassignJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Reassign(c.Request.Context(), c.Param("id"), req.TechnicianID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Reschedule handles POST /api/v1/jobs/:id/reschedule
func (h *Handler) Reschedule(c *gin.Context) {
	var req transport.RescheduleJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Reschedule(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ComputeRoute handles GET /api/v1/routes/:employeeId
func (h *Handler) ComputeRoute(c *gin.Context) {
	result, err := h.svc.ComputeRoute(c.Request.Context(), c.Param("employeeId"), c.Query("date"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// SaveRouteOrder handles PUT /api/v1/routes/:employeeId/order
func (h *Handler) SaveRouteOrder(c *gin.Context) {
	var req transport.SaveRouteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.SaveRouteOrder(c.Request.Context(), c.Param("employeeId"), req.JobIDs)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"saved": true})
}

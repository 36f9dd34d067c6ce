package handler

import (
	"fieldservice_backend/internal/documents/service"
	"fieldservice_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for documents
type Handler struct {
	svc *service.Service
}

// New creates a new documents handler
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the document routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:kind", h.List)
	rg.GET("/:kind/deactivated-ids", h.DeactivatedIDs)
	rg.GET("/:kind/:id", h.GetByID)
}

// DeactivatedIDs handles GET /api/v1/documents/:kind/deactivated-ids
func (h *Handler) DeactivatedIDs(c *gin.Context) {
	result, err := h.svc.DeactivatedIDs(c.Request.Context(), c.Param("kind"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// List handles GET /api/v1/documents/:kind
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), c.Param("kind"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetByID handles GET /api/v1/documents/:kind/:id
func (h *Handler) GetByID(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), c.Param("kind"), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

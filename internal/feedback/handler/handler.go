package handler

import (
	"net/http"

	"fieldservice_backend/internal/feedback/service"
	"fieldservice_backend/internal/feedback/transport"
	"fieldservice_backend/platform/httpkit"
	"fieldservice_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for feedback
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new feedback handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the feedback routes under /jobs/:id
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/feedback", h.Get)
	rg.POST("/:id/feedback", h.Submit)
	rg.POST("/:id/feedback-request", h.SendRequest)
}

// Get handles GET /api/v1/jobs/:id/feedback
func (h *Handler) Get(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Submit handles POST /api/v1/jobs/:id/feedback
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.SubmitFeedback(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"submitted": true})
}

// SendRequest handles POST /api/v1/jobs/:id/feedback-request
func (h *Handler) SendRequest(c *gin.Context) {
	err := h.svc.SendFeedbackRequest(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"sent": true})
}

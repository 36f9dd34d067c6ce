package transport

import "time"

// CreateJobRequest is the request body for creating a job. Jobs converted
// from a sales document carry sourceType and sourceId; ad-hoc jobs get a
// generated JOB identifier.
type CreateJobRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	CustomerID   string `json:"customerId" validate:"required"`
	TechnicianID string `json:"technicianId" validate:"required"`
	VisitDate    string `json:"visitDate" validate:"required"` // YYYY-MM-DD
	VisitTime    string `json:"visitTime" validate:"required,max=20"`
	Location     string `json:"location,omitempty" validate:"max=500"`
	SourceType   string `json:"sourceType,omitempty" validate:"omitempty,oneof=invoice estimate agreement"`
	SourceID     string `json:"sourceId,omitempty" validate:"max=50"`
}

// UpdateJobStatusRequest is the request body for a status transition.
// feedback_received is deliberately absent: it is only reachable through
// feedback submission.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
}

// ReassignJobRequest hands a job to a different technician.
type ReassignJobRequest struct {
	TechnicianID string `json:"technicianId" validate:"required"`
}

// RescheduleJobRequest moves a job to a new date/time, optionally changing
// the technician or location at the same time.
type RescheduleJobRequest struct {
	VisitDate    string  `json:"visitDate" validate:"required"` // YYYY-MM-DD
	VisitTime    string  `json:"visitTime" validate:"required,max=20"`
	TechnicianID *string `json:"technicianId,omitempty"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=500"`
}

// SaveRouteOrderRequest persists a technician's custom stop order.
type SaveRouteOrderRequest struct {
	JobIDs []string `json:"jobIds" validate:"required,min=1,dive,required"`
}

// ListJobsRequest is the query parameters for listing jobs.
type ListJobsRequest struct {
	TechnicianID *string `form:"technicianId"`
	CustomerID   *string `form:"customerId"`
	Status       *string `form:"status" validate:"omitempty,oneof=scheduled in_progress completed feedback_received cancelled"`
	Date         string  `form:"date"` // YYYY-MM-DD
	Search       string  `form:"search"`
	SortBy       string  `form:"sortBy"`
	SortOrder    string  `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page         int     `form:"page,default=1" validate:"min=1"`
	PageSize     int     `form:"pageSize,default=25" validate:"min=1,max=100"`
}

// JobResponse is the read model for a job with any schedule override already
// merged in.
type JobResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	CustomerID     string    `json:"customerId"`
	CustomerName   string    `json:"customerName"`
	TechnicianID   string    `json:"technicianId"`
	TechnicianName string    `json:"technicianName"`
	VisitDate      string    `json:"visitDate"`
	VisitTime      string    `json:"visitTime"`
	Status         string    `json:"status"`
	Location       string    `json:"location,omitempty"`
	SourceType     *string   `json:"sourceType,omitempty"`
	SourceID       *string   `json:"sourceId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TransitionResponse is returned by the status endpoint. FeedbackDirective is
// set to "manual_pending" when the caller must offer a manual feedback-send
// decision after the transition settles.
type TransitionResponse struct {
	Job               JobResponse `json:"job"`
	FeedbackDirective string      `json:"feedbackDirective,omitempty"`
}

// RouteStopResponse is one stop in a technician's sequenced route.
type RouteStopResponse struct {
	Job           JobResponse `json:"job"`
	Order         int         `json:"order"`
	IsCurrentStop bool        `json:"isCurrentStop"`
	IsNextStop    bool        `json:"isNextStop"`
}

// RouteResponse is a technician's full route for a day.
type RouteResponse struct {
	EmployeeID   string              `json:"employeeId"`
	Date         string              `json:"date"`
	Stops        []RouteStopResponse `json:"stops"`
	CurrentIndex int                 `json:"currentIndex"`
	NextIndex    int                 `json:"nextIndex"`
}

// JobListResponse is the paginated response for listing jobs.
type JobListResponse struct {
	Items      []JobResponse `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

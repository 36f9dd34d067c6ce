// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"fieldservice_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Jobs Domain Events
// =============================================================================

// JobCreated is published when a new job is created.
type JobCreated struct {
	BaseEvent
	JobID        string    `json:"jobId"`
	CustomerID   string    `json:"customerId"`
	TechnicianID string    `json:"technicianId"`
	Title        string    `json:"title"`
	VisitDate    time.Time `json:"visitDate"`
	VisitTime    string    `json:"visitTime"`
}

func (e JobCreated) EventName() string { return "jobs.created" }

// JobStatusChanged is published when a job's lifecycle status changes.
type JobStatusChanged struct {
	BaseEvent
	JobID     string `json:"jobId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	ActorRole string `json:"actorRole"`
}

func (e JobStatusChanged) EventName() string { return "jobs.status.changed" }

// JobCancelled is published when a job is cancelled. The linked document is
// already deactivated by the time this event fires.
type JobCancelled struct {
	BaseEvent
	JobID        string `json:"jobId"`
	DocumentKind string `json:"documentKind"`
	DocumentID   string `json:"documentId"`
	ActorRole    string `json:"actorRole"`
}

func (e JobCancelled) EventName() string { return "jobs.cancelled" }

// JobReassigned is published when a job is handed to a different technician.
type JobReassigned struct {
	BaseEvent
	JobID              string `json:"jobId"`
	PreviousTechnician string `json:"previousTechnician"`
	NewTechnician      string `json:"newTechnician"`
}

func (e JobReassigned) EventName() string { return "jobs.reassigned" }

// JobRescheduled is published when a job's visit date or time changes.
type JobRescheduled struct {
	BaseEvent
	JobID        string    `json:"jobId"`
	OldVisitDate time.Time `json:"oldVisitDate"`
	NewVisitDate time.Time `json:"newVisitDate"`
	NewVisitTime string    `json:"newVisitTime"`
}

func (e JobRescheduled) EventName() string { return "jobs.rescheduled" }

// =============================================================================
// Feedback Domain Events
// =============================================================================

// FeedbackRequestSent is published after a feedback request email goes out.
type FeedbackRequestSent struct {
	BaseEvent
	JobID         string `json:"jobId"`
	CustomerEmail string `json:"customerEmail"`
	Mode          string `json:"mode"` // "auto" or "manual"
}

func (e FeedbackRequestSent) EventName() string { return "feedback.request.sent" }

// FeedbackSubmitted is published when a customer submits their feedback.
type FeedbackSubmitted struct {
	BaseEvent
	JobID  string `json:"jobId"`
	Rating int    `json:"rating"`
}

func (e FeedbackSubmitted) EventName() string { return "feedback.submitted" }

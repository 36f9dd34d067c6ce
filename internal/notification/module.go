// Package notification subscribes to domain events and writes the audit
// trail for them. Publishing modules stay unaware of who is listening.
package notification

import (
	"context"

	"fieldservice_backend/internal/events"
	"fieldservice_backend/platform/logger"
)

// Module handles the event subscriptions for the audit trail.
type Module struct {
	log *logger.Logger
}

// New creates a new notification module.
func New(log *logger.Logger) *Module {
	return &Module{log: log}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.JobCreated{}.EventName(), m)
	bus.Subscribe(events.JobStatusChanged{}.EventName(), m)
	bus.Subscribe(events.JobCancelled{}.EventName(), m)
	bus.Subscribe(events.JobReassigned{}.EventName(), m)
	bus.Subscribe(events.JobRescheduled{}.EventName(), m)
	bus.Subscribe(events.FeedbackRequestSent{}.EventName(), m)
	bus.Subscribe(events.FeedbackSubmitted{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.JobCreated:
		m.log.Info("job created",
			"jobId", e.JobID,
			"customerId", e.CustomerID,
			"technicianId", e.TechnicianID,
			"visitDate", e.VisitDate.Format("2006-01-02"),
			"visitTime", e.VisitTime,
		)
	case events.JobStatusChanged:
		m.log.Info("job status changed",
			"jobId", e.JobID,
			"from", e.OldStatus,
			"to", e.NewStatus,
			"actorRole", e.ActorRole,
		)
	case events.JobCancelled:
		m.log.Info("job cancelled",
			"jobId", e.JobID,
			"documentKind", e.DocumentKind,
			"documentId", e.DocumentID,
			"actorRole", e.ActorRole,
		)
	case events.JobReassigned:
		m.log.Info("job reassigned",
			"jobId", e.JobID,
			"previousTechnician", e.PreviousTechnician,
			"newTechnician", e.NewTechnician,
		)
	case events.JobRescheduled:
		m.log.Info("job rescheduled",
			"jobId", e.JobID,
			"oldVisitDate", e.OldVisitDate.Format("2006-01-02"),
			"newVisitDate", e.NewVisitDate.Format("2006-01-02"),
			"newVisitTime", e.NewVisitTime,
		)
	case events.FeedbackRequestSent:
		m.log.Info("feedback request sent",
			"jobId", e.JobID,
			"mode", e.Mode,
		)
	case events.FeedbackSubmitted:
		m.log.Info("feedback submitted",
			"jobId", e.JobID,
			"rating", e.Rating,
		)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
	}
	return nil
}

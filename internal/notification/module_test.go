package notification

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"fieldservice_backend/internal/events"
	"fieldservice_backend/platform/logger"
)

func captureLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	return log, &buf
}

func TestStatusChangeIsLogged(t *testing.T) {
	log, buf := captureLogger()
	bus := events.NewInMemoryBus(log)
	New(log).RegisterHandlers(bus)

	err := bus.PublishSync(context.Background(), events.JobStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		JobID:     "JOB-0001",
		OldStatus: "in_progress",
		NewStatus: "completed",
		ActorRole: "employee",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "job status changed") {
		t.Fatalf("expected audit line for status change, got: %s", out)
	}
	if !strings.Contains(out, "JOB-0001") || !strings.Contains(out, "completed") {
		t.Fatalf("audit line is missing the job details: %s", out)
	}
}

func TestCancellationIsLogged(t *testing.T) {
	log, buf := captureLogger()
	bus := events.NewInMemoryBus(log)
	New(log).RegisterHandlers(bus)

	err := bus.PublishSync(context.Background(), events.JobCancelled{
		BaseEvent:    events.NewBaseEvent(),
		JobID:        "INV-1001",
		DocumentKind: "invoice",
		DocumentID:   "INV-1001",
		ActorRole:    "merchant",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "job cancelled") || !strings.Contains(out, "invoice") {
		t.Fatalf("expected cancellation audit line, got: %s", out)
	}
}

func TestFeedbackSubmissionIsLogged(t *testing.T) {
	log, buf := captureLogger()
	bus := events.NewInMemoryBus(log)
	New(log).RegisterHandlers(bus)

	err := bus.PublishSync(context.Background(), events.FeedbackSubmitted{
		BaseEvent: events.NewBaseEvent(),
		JobID:     "JOB-0002",
		Rating:    4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "feedback submitted") {
		t.Fatalf("expected feedback audit line, got: %s", buf.String())
	}
}

func TestRescheduleIsLogged(t *testing.T) {
	log, buf := captureLogger()
	bus := events.NewInMemoryBus(log)
	New(log).RegisterHandlers(bus)

	err := bus.PublishSync(context.Background(), events.JobRescheduled{
		BaseEvent:    events.NewBaseEvent(),
		JobID:        "JOB-0003",
		OldVisitDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		NewVisitDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		NewVisitTime: "14:30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "job rescheduled") || !strings.Contains(out, "2026-03-12") {
		t.Fatalf("expected reschedule audit line, got: %s", out)
	}
}

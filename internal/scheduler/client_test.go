package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type fakeSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c fakeSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c fakeSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c fakeSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c fakeSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	_, err := NewClient(fakeSchedulerConfig{})
	if err == nil {
		t.Fatalf("expected error for missing redis url")
	}
}

func TestEnqueueFeedbackDispatch(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := fakeSchedulerConfig{redisURL: "redis://" + srv.Addr(), queue: "jobs"}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	err = client.EnqueueFeedbackDispatch(context.Background(), FeedbackDispatchPayload{JobID: "INV-007"})
	if err != nil {
		t.Fatalf("EnqueueFeedbackDispatch: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("jobs")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(pending))
	}
	if pending[0].Type != TaskFeedbackDispatch {
		t.Fatalf("unexpected task type %q", pending[0].Type)
	}

	payload, err := ParseFeedbackDispatchPayload(asynq.NewTask(pending[0].Type, pending[0].Payload))
	if err != nil {
		t.Fatalf("ParseFeedbackDispatchPayload: %v", err)
	}
	if payload.JobID != "INV-007" {
		t.Fatalf("unexpected job id %q", payload.JobID)
	}
}

package scheduler

import (
	"context"
	"fmt"

	"fieldservice_backend/platform/config"
	"fieldservice_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// DispatchHandler performs the actual feedback request delivery. Implemented
// by the feedback service.
type DispatchHandler interface {
	Dispatch(ctx context.Context, jobID string) error
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	dispatch DispatchHandler
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, dispatch DispatchHandler, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		dispatch: dispatch,
		log:      log,
	}

	mux.HandleFunc(TaskFeedbackDispatch, w.handleFeedbackDispatch)

	return w, nil
}

func (w *Worker) handleFeedbackDispatch(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFeedbackDispatchPayload(task)
	if err != nil {
		return err
	}

	if w.dispatch == nil {
		return nil
	}

	return w.dispatch.Dispatch(ctx, payload.JobID)
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

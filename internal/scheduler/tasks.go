package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskFeedbackDispatch = "feedback.request_dispatch"

type FeedbackDispatchPayload struct {
	JobID string `json:"jobId"`
}

func NewFeedbackDispatchTask(payload FeedbackDispatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFeedbackDispatch, data), nil
}

func ParseFeedbackDispatchPayload(task *asynq.Task) (FeedbackDispatchPayload, error) {
	var payload FeedbackDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return FeedbackDispatchPayload{}, err
	}
	return payload, nil
}

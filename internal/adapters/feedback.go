package adapters

import (
	"context"

	feedbacksvc "fieldservice_backend/internal/feedback/service"
	jobsvc "fieldservice_backend/internal/jobs/service"
)

// JobsFeedbackAdapter lets the feedback module advance a job's status without
// depending on the jobs module directly.
type JobsFeedbackAdapter struct {
	jobs *jobsvc.Service
}

// NewJobsFeedbackAdapter creates the adapter over the jobs service.
func NewJobsFeedbackAdapter(jobs *jobsvc.Service) *JobsFeedbackAdapter {
	return &JobsFeedbackAdapter{jobs: jobs}
}

func (a *JobsFeedbackAdapter) MarkFeedbackReceived(ctx context.Context, jobID string) error {
	return a.jobs.MarkFeedbackReceived(ctx, jobID)
}

// Compile-time interface check
var _ feedbacksvc.JobStatusWriter = (*JobsFeedbackAdapter)(nil)

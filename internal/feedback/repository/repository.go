package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fieldservice_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeedbackRecord tracks the feedback workflow per job. A row with
// received=false means a request went out and no answer has arrived yet.
type FeedbackRecord struct {
	JobID       string     `db:"job_id"`
	Received    bool       `db:"received"`
	Rating      *int       `db:"rating"`
	Comment     *string    `db:"comment"`
	RequestedAt time.Time  `db:"requested_at"`
	SubmittedAt *time.Time `db:"submitted_at"`
}

// JobFacts is the read model the dispatcher needs: job context plus the
// customer contact, joined from the jobs and customers tables.
type JobFacts struct {
	JobID         string
	JobTitle      string
	JobStatus     string
	CustomerName  string
	CustomerEmail string
}

// Repository provides database operations for feedback records
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new feedback repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get retrieves the feedback record for a job, nil when none exists.
func (r *Repository) Get(ctx context.Context, jobID string) (*FeedbackRecord, error) {
	var rec FeedbackRecord
	query := `SELECT job_id, received, rating, comment, requested_at, submitted_at
		FROM feedback_records WHERE job_id = $1`

	err := r.pool.QueryRow(ctx, query, jobID).Scan(
		&rec.JobID, &rec.Received, &rec.Rating, &rec.Comment, &rec.RequestedAt, &rec.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get feedback record: %w", err)
	}

	return &rec, nil
}

// MarkRequested records that a feedback request was sent. A later repeat send
// keeps the original request timestamp.
func (r *Repository) MarkRequested(ctx context.Context, jobID string) error {
	query := `INSERT INTO feedback_records (job_id, received, requested_at)
		VALUES ($1, FALSE, $2)
		ON CONFLICT (job_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, jobID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark feedback requested: %w", err)
	}

	return nil
}

// SaveSubmission stores the customer's answer, creating the record when the
// customer responds without a prior request (e.g. via a reused link).
func (r *Repository) SaveSubmission(ctx context.Context, jobID string, rating int, comment string, submittedAt time.Time) error {
	query := `INSERT INTO feedback_records (job_id, received, rating, comment, requested_at, submitted_at)
		VALUES ($1, TRUE, $2, $3, $4, $4)
		ON CONFLICT (job_id) DO UPDATE SET
			received = TRUE,
			rating = EXCLUDED.rating,
			comment = EXCLUDED.comment,
			submitted_at = EXCLUDED.submitted_at`

	_, err := r.pool.Exec(ctx, query, jobID, rating, comment, submittedAt)
	if err != nil {
		return fmt.Errorf("failed to save feedback submission: %w", err)
	}

	return nil
}

// JobFacts retrieves the dispatch context for a job.
func (r *Repository) JobFacts(ctx context.Context, jobID string) (*JobFacts, error) {
	var facts JobFacts
	query := `SELECT j.id, j.title, j.status, j.customer_name, COALESCE(c.email, '')
		FROM jobs j
		LEFT JOIN customers c ON c.id = j.customer_id
		WHERE j.id = $1`

	err := r.pool.QueryRow(ctx, query, jobID).Scan(
		&facts.JobID, &facts.JobTitle, &facts.JobStatus, &facts.CustomerName, &facts.CustomerEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, fmt.Errorf("failed to get job facts: %w", err)
	}

	return &facts, nil
}

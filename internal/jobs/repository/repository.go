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

// Job represents the job database model. Reads go through the override join,
// so technician, date, time and location already reflect any recorded
// reassignment or reschedule; the base row stays untouched for audit.
type Job struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	CustomerID     string    `db:"customer_id"`
	CustomerName   string    `db:"customer_name"`
	TechnicianID   string    `db:"technician_id"`
	TechnicianName string    `db:"technician_name"`
	VisitDate      time.Time `db:"visit_date"`
	VisitTime      string    `db:"visit_time"`
	Status         string    `db:"status"`
	Location       string    `db:"location"`
	SourceType     *string   `db:"source_type"`
	SourceID       *string   `db:"source_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Repository provides database operations for jobs
type Repository struct {
	pool *pgxpool.Pool
}

const jobNotFoundMsg = "job not found"

// mergedColumns selects job fields with schedule overrides applied at read time.
const mergedColumns = `j.id, j.title, j.customer_id, j.customer_name,
	COALESCE(o.technician_id, j.technician_id),
	COALESCE(o.technician_name, j.technician_name),
	COALESCE(o.visit_date, j.visit_date),
	COALESCE(o.visit_time, j.visit_time),
	j.status,
	COALESCE(o.location, j.location),
	j.source_type, j.source_id, j.created_at, j.updated_at`

const mergedFrom = `FROM jobs j LEFT JOIN schedule_overrides o ON o.job_id = j.id`

// New creates a new jobs repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NextJobID reserves the next ad-hoc job identifier.
func (r *Repository) NextJobID(ctx context.Context) (string, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('job_id_seq')`).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to reserve job id: %w", err)
	}
	return fmt.Sprintf("JOB-%04d", seq), nil
}

// Create inserts a new job
func (r *Repository) Create(ctx context.Context, job *Job) error {
	query := `
		INSERT INTO jobs (
			id, title, customer_id, customer_name, technician_id, technician_name,
			visit_date, visit_time, status, location, source_type, source_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`

	_, err := r.pool.Exec(ctx, query,
		job.ID, job.Title, job.CustomerID, job.CustomerName, job.TechnicianID, job.TechnicianName,
		job.VisitDate, job.VisitTime, job.Status, job.Location, job.SourceType, job.SourceID,
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func scanJob(row pgx.Row) (*Job, error) {
	var job Job
	err := row.Scan(
		&job.ID, &job.Title, &job.CustomerID, &job.CustomerName,
		&job.TechnicianID, &job.TechnicianName, &job.VisitDate, &job.VisitTime,
		&job.Status, &job.Location, &job.SourceType, &job.SourceID,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByID retrieves a job by its ID with overrides merged in.
func (r *Repository) GetByID(ctx context.Context, id string) (*Job, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE j.id = $1`, mergedColumns, mergedFrom)

	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(jobNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// UpdateStatus updates the lifecycle status of a job
func (r *Repository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMsg)
	}

	return nil
}

// ListForTechnicianDate retrieves the jobs that make up one technician's day,
// honoring overrides: a reassigned job shows up on the new technician's route
// and disappears from the old one.
func (r *Repository) ListForTechnicianDate(ctx context.Context, technicianID string, date time.Time) ([]Job, error) {
	query := fmt.Sprintf(`SELECT %s %s
		WHERE COALESCE(o.technician_id, j.technician_id) = $1
		AND COALESCE(o.visit_date, j.visit_date) = $2
		ORDER BY j.created_at ASC`, mergedColumns, mergedFrom)

	rows, err := r.pool.Query(ctx, query, technicianID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs for technician: %w", err)
	}
	defer rows.Close()

	var items []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		items = append(items, *job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return items, nil
}

// ListParams contains parameters for listing jobs
type ListParams struct {
	TechnicianID *string
	CustomerID   *string
	Status       *string
	Date         *time.Time
	Search       string
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}

// ListResult contains the result of listing jobs
type ListResult struct {
	Items      []Job
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// List retrieves jobs with optional filtering
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	baseQuery := mergedFrom + ` WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	addFilter(&baseQuery, &args, &argIndex, params.TechnicianID != nil,
		" AND COALESCE(o.technician_id, j.technician_id) = $%d", derefString(params.TechnicianID))
	addFilter(&baseQuery, &args, &argIndex, params.CustomerID != nil,
		" AND j.customer_id = $%d", derefString(params.CustomerID))
	addFilter(&baseQuery, &args, &argIndex, params.Status != nil,
		" AND j.status = $%d", derefString(params.Status))
	addFilter(&baseQuery, &args, &argIndex, params.Date != nil,
		" AND COALESCE(o.visit_date, j.visit_date) = $%d", derefTime(params.Date))
	if params.Search != "" {
		baseQuery += fmt.Sprintf(" AND (j.title ILIKE $%d OR j.customer_name ILIKE $%d)", argIndex, argIndex+1)
		pattern := "%" + params.Search + "%"
		args = append(args, pattern, pattern)
		argIndex += 2
	}

	var total int
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	orderBy := "COALESCE(o.visit_date, j.visit_date)"
	if params.SortBy != "" {
		columnMap := map[string]string{
			"title":        "j.title",
			"status":       "j.status",
			"customerName": "j.customer_name",
			"visitDate":    "COALESCE(o.visit_date, j.visit_date)",
			"createdAt":    "j.created_at",
		}
		col, ok := columnMap[params.SortBy]
		if !ok {
			return nil, apperr.BadRequest("invalid sort field")
		}
		orderBy = col
	}
	sortDir := "ASC"
	if params.SortOrder == "desc" {
		sortDir = "DESC"
	}

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY %s %s, j.created_at ASC LIMIT $%d OFFSET $%d`,
		mergedColumns, baseQuery, orderBy, sortDir, argIndex, argIndex+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var items []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		items = append(items, *job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func addFilter(baseQuery *string, args *[]interface{}, argIndex *int, apply bool, clause string, value interface{}) {
	if !apply {
		return
	}
	*baseQuery += fmt.Sprintf(clause, *argIndex)
	*args = append(*args, value)
	*argIndex++
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefTime(value *time.Time) time.Time {
	if value == nil {
		return time.Time{}
	}
	return *value
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ScheduleOverride records reassignment and reschedule changes keyed by job.
// Nil fields mean "keep the base value"; upserts merge field-wise so a
// reassignment does not wipe out an earlier reschedule.
type ScheduleOverride struct {
	JobID          string     `db:"job_id"`
	TechnicianID   *string    `db:"technician_id"`
	TechnicianName *string    `db:"technician_name"`
	VisitDate      *time.Time `db:"visit_date"`
	VisitTime      *string    `db:"visit_time"`
	Location       *string    `db:"location"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// GetOverride retrieves the override for a job, nil when none exists.
func (r *Repository) GetOverride(ctx context.Context, jobID string) (*ScheduleOverride, error) {
	var o ScheduleOverride
	query := `SELECT job_id, technician_id, technician_name, visit_date, visit_time, location, updated_at
		FROM schedule_overrides WHERE job_id = $1`

	err := r.pool.QueryRow(ctx, query, jobID).Scan(
		&o.JobID, &o.TechnicianID, &o.TechnicianName, &o.VisitDate, &o.VisitTime, &o.Location, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule override: %w", err)
	}

	return &o, nil
}

// UpsertOverride merges the given override into the stored one. Fields left
// nil keep whatever an earlier override recorded.
func (r *Repository) UpsertOverride(ctx context.Context, o *ScheduleOverride) error {
	query := `
		INSERT INTO schedule_overrides (job_id, technician_id, technician_name, visit_date, visit_time, location, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (job_id) DO UPDATE SET
			technician_id = COALESCE(EXCLUDED.technician_id, schedule_overrides.technician_id),
			technician_name = COALESCE(EXCLUDED.technician_name, schedule_overrides.technician_name),
			visit_date = COALESCE(EXCLUDED.visit_date, schedule_overrides.visit_date),
			visit_time = COALESCE(EXCLUDED.visit_time, schedule_overrides.visit_time),
			location = COALESCE(EXCLUDED.location, schedule_overrides.location),
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		o.JobID, o.TechnicianID, o.TechnicianName, o.VisitDate, o.VisitTime, o.Location, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule override: %w", err)
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// GetRouteOrder retrieves the persisted custom stop order for a technician.
// An empty slice means no custom order is saved.
func (r *Repository) GetRouteOrder(ctx context.Context, technicianID string) ([]string, error) {
	var jobIDs []string
	query := `SELECT job_ids FROM route_orders WHERE technician_id = $1`

	err := r.pool.QueryRow(ctx, query, technicianID).Scan(&jobIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get route order: %w", err)
	}

	return jobIDs, nil
}

// SaveRouteOrder persists a technician's custom stop order, replacing any
// previous one.
func (r *Repository) SaveRouteOrder(ctx context.Context, technicianID string, jobIDs []string) error {
	query := `
		INSERT INTO route_orders (technician_id, job_ids, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (technician_id) DO UPDATE SET
			job_ids = EXCLUDED.job_ids,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query, technicianID, jobIDs, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save route order: %w", err)
	}

	return nil
}

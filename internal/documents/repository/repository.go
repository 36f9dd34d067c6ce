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

// Document represents a sales document (invoice, estimate, agreement).
// Deactivation lives in a separate keyed set so cancelling a job never
// touches the document's own domain status.
type Document struct {
	ID          string    `db:"id"`
	Kind        string    `db:"kind"`
	CustomerID  string    `db:"customer_id"`
	Status      string    `db:"status"`
	AmountCents int64     `db:"amount_cents"`
	CreatedAt   time.Time `db:"created_at"`
	Deactivated bool      `db:"deactivated"`
}

// Repository provides database operations for documents
type Repository struct {
	pool *pgxpool.Pool
}

const documentNotFoundMsg = "document not found"

// New creates a new documents repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID retrieves a document with its deactivation flag.
func (r *Repository) GetByID(ctx context.Context, kind, id string) (*Document, error) {
	var doc Document
	query := `SELECT d.id, d.kind, d.customer_id, d.status, d.amount_cents, d.created_at,
		(x.document_id IS NOT NULL) AS deactivated
		FROM documents d
		LEFT JOIN document_deactivations x ON x.kind = d.kind AND x.document_id = d.id
		WHERE d.kind = $1 AND d.id = $2`

	err := r.pool.QueryRow(ctx, query, kind, id).Scan(
		&doc.ID, &doc.Kind, &doc.CustomerID, &doc.Status, &doc.AmountCents, &doc.CreatedAt, &doc.Deactivated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(documentNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &doc, nil
}

// List retrieves all documents of a kind with their deactivation flags.
func (r *Repository) List(ctx context.Context, kind string) ([]Document, error) {
	query := `SELECT d.id, d.kind, d.customer_id, d.status, d.amount_cents, d.created_at,
		(x.document_id IS NOT NULL) AS deactivated
		FROM documents d
		LEFT JOIN document_deactivations x ON x.kind = d.kind AND x.document_id = d.id
		WHERE d.kind = $1
		ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var items []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(
			&doc.ID, &doc.Kind, &doc.CustomerID, &doc.Status, &doc.AmountCents, &doc.CreatedAt, &doc.Deactivated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		items = append(items, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return items, nil
}

// MarkDeactivated adds a document id to its kind's deactivated set.
// ON CONFLICT DO NOTHING makes a repeated cancellation a no-op, so the set
// never holds duplicate entries.
func (r *Repository) MarkDeactivated(ctx context.Context, kind, id string) error {
	query := `INSERT INTO document_deactivations (kind, document_id, deactivated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, document_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, kind, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to deactivate document: %w", err)
	}

	return nil
}

// MarkReactivated removes a document id from its kind's deactivated set.
// Removing an absent entry is a no-op.
func (r *Repository) MarkReactivated(ctx context.Context, kind, id string) error {
	query := `DELETE FROM document_deactivations WHERE kind = $1 AND document_id = $2`

	_, err := r.pool.Exec(ctx, query, kind, id)
	if err != nil {
		return fmt.Errorf("failed to reactivate document: %w", err)
	}

	return nil
}

// DeactivatedIDs returns the deactivated-id set for a document kind.
func (r *Repository) DeactivatedIDs(ctx context.Context, kind string) ([]string, error) {
	query := `SELECT document_id FROM document_deactivations WHERE kind = $1 ORDER BY document_id`

	rows, err := r.pool.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list deactivated documents: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan deactivated id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deactivated ids: %w", err)
	}

	return ids, nil
}

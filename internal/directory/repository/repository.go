package repository

import (
	"context"
	"errors"
	"fmt"

	"fieldservice_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Customer represents a customer directory entry.
type Customer struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Phone   string `db:"phone"`
	Address string `db:"address"`
}

// Employee represents an employee directory entry.
type Employee struct {
	ID     string `db:"id"`
	Name   string `db:"name"`
	Status string `db:"status"`
}

// Repository provides read access to the customer and employee directories.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new directory repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CustomerByID retrieves a customer by ID.
func (r *Repository) CustomerByID(ctx context.Context, id string) (*Customer, error) {
	var cust Customer
	query := `SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, '')
		FROM customers WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&cust.ID, &cust.Name, &cust.Email, &cust.Phone, &cust.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("customer not found")
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &cust, nil
}

// EmployeeByID retrieves an employee by ID.
func (r *Repository) EmployeeByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	query := `SELECT id, name, status FROM employees WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(&emp.ID, &emp.Name, &emp.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("employee not found")
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return &emp, nil
}

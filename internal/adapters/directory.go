// Package adapters contains anti-corruption adapters for cross-module
// communication. Each consuming module defines the interface it needs; the
// adapters here satisfy those interfaces with another module's types.
package adapters

import (
	"context"

	"fieldservice_backend/internal/directory/repository"
	jobsvc "fieldservice_backend/internal/jobs/service"
)

// DirectoryEmployeeAdapter exposes the employee directory to the jobs module.
type DirectoryEmployeeAdapter struct {
	repo *repository.Repository
}

// NewDirectoryEmployeeAdapter creates an adapter for employee lookups.
func NewDirectoryEmployeeAdapter(repo *repository.Repository) *DirectoryEmployeeAdapter {
	return &DirectoryEmployeeAdapter{repo: repo}
}

func (a *DirectoryEmployeeAdapter) EmployeeByID(ctx context.Context, id string) (*jobsvc.EmployeeInfo, error) {
	emp, err := a.repo.EmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &jobsvc.EmployeeInfo{ID: emp.ID, Name: emp.Name, Status: emp.Status}, nil
}

// DirectoryCustomerAdapter exposes the customer directory to the jobs module.
type DirectoryCustomerAdapter struct {
	repo *repository.Repository
}

// NewDirectoryCustomerAdapter creates an adapter for customer lookups.
func NewDirectoryCustomerAdapter(repo *repository.Repository) *DirectoryCustomerAdapter {
	return &DirectoryCustomerAdapter{repo: repo}
}

func (a *DirectoryCustomerAdapter) CustomerByID(ctx context.Context, id string) (*jobsvc.CustomerInfo, error) {
	cust, err := a.repo.CustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &jobsvc.CustomerInfo{ID: cust.ID, Name: cust.Name, Email: cust.Email}, nil
}

// Compile-time interface checks
var (
	_ jobsvc.EmployeeDirectory = (*DirectoryEmployeeAdapter)(nil)
	_ jobsvc.CustomerDirectory = (*DirectoryCustomerAdapter)(nil)
)

// Package service exposes document reads and the deactivation cascade
// consumed by the jobs module.
package service

import (
	"context"

	"fieldservice_backend/internal/documents/repository"
	"fieldservice_backend/internal/documents/transport"
	"fieldservice_backend/internal/jobs/domain"
	"fieldservice_backend/platform/apperr"
	"fieldservice_backend/platform/logger"
)

// Store is the persistence surface the service needs. Implemented by
// repository.Repository.
type Store interface {
	GetByID(ctx context.Context, kind, id string) (*repository.Document, error)
	List(ctx context.Context, kind string) ([]repository.Document, error)
	MarkDeactivated(ctx context.Context, kind, id string) error
	MarkReactivated(ctx context.Context, kind, id string) error
	DeactivatedIDs(ctx context.Context, kind string) ([]string, error)
}

// Service implements document reads and the cancellation cascade.
type Service struct {
	store Store
	log   *logger.Logger
}

// New creates the documents service.
func New(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

func toResponse(doc *repository.Document) transport.DocumentResponse {
	return transport.DocumentResponse{
		ID:          doc.ID,
		Kind:        doc.Kind,
		CustomerID:  doc.CustomerID,
		Status:      doc.Status,
		AmountCents: doc.AmountCents,
		Deactivated: doc.Deactivated,
		CreatedAt:   doc.CreatedAt,
	}
}

// Get retrieves a single document with its deactivation flag.
func (s *Service) Get(ctx context.Context, kind, id string) (*transport.DocumentResponse, error) {
	if !domain.ValidDocumentKind(domain.DocumentKind(kind)) {
		return nil, apperr.BadRequest("unknown document kind")
	}

	doc, err := s.store.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(doc)
	return &resp, nil
}

// List retrieves all documents of a kind.
func (s *Service) List(ctx context.Context, kind string) (*transport.DocumentListResponse, error) {
	if !domain.ValidDocumentKind(domain.DocumentKind(kind)) {
		return nil, apperr.BadRequest("unknown document kind")
	}

	docs, err := s.store.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	items := make([]transport.DocumentResponse, len(docs))
	for i := range docs {
		items[i] = toResponse(&docs[i])
	}

	return &transport.DocumentListResponse{Items: items, Total: len(items)}, nil
}

// DeactivatedIDs lists the document ids of a kind whose linked job was
// cancelled. Frontends use it to grey out converted documents.
func (s *Service) DeactivatedIDs(ctx context.Context, kind string) (*transport.DeactivatedIDsResponse, error) {
	if !domain.ValidDocumentKind(domain.DocumentKind(kind)) {
		return nil, apperr.BadRequest("unknown document kind")
	}

	ids, err := s.store.DeactivatedIDs(ctx, kind)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}

	return &transport.DeactivatedIDsResponse{Kind: kind, IDs: ids}, nil
}

// Deactivate mirrors a job cancellation into the document's deactivated set.
// Idempotent: repeating it leaves exactly one entry.
func (s *Service) Deactivate(ctx context.Context, kind domain.DocumentKind, id string) error {
	if err := s.store.MarkDeactivated(ctx, string(kind), id); err != nil {
		return err
	}
	s.log.Info("document deactivated", "kind", string(kind), "documentId", id)
	return nil
}

// Reactivate removes a document from its deactivated set after a merchant
// reactivates the linked job. Idempotent.
func (s *Service) Reactivate(ctx context.Context, kind domain.DocumentKind, id string) error {
	if err := s.store.MarkReactivated(ctx, string(kind), id); err != nil {
		return err
	}
	s.log.Info("document reactivated", "kind", string(kind), "documentId", id)
	return nil
}

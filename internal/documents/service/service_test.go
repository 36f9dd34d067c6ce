package service

import (
	"context"
	"testing"

	"fieldservice_backend/internal/documents/repository"
	"fieldservice_backend/internal/jobs/domain"
	"fieldservice_backend/platform/apperr"
	"fieldservice_backend/platform/logger"
)

type fakeStore struct {
	docs        map[string]*repository.Document
	deactivated map[string][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:        map[string]*repository.Document{},
		deactivated: map[string][]string{},
	}
}

func (f *fakeStore) GetByID(_ context.Context, kind, id string) (*repository.Document, error) {
	doc, ok := f.docs[kind+"/"+id]
	if !ok {
		return nil, apperr.NotFound("document not found")
	}
	return doc, nil
}

func (f *fakeStore) List(_ context.Context, kind string) ([]repository.Document, error) {
	var docs []repository.Document
	for _, doc := range f.docs {
		if doc.Kind == kind {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (f *fakeStore) MarkDeactivated(_ context.Context, kind, id string) error {
	for _, existing := range f.deactivated[kind] {
		if existing == id {
			return nil
		}
	}
	f.deactivated[kind] = append(f.deactivated[kind], id)
	return nil
}

func (f *fakeStore) MarkReactivated(_ context.Context, kind, id string) error {
	ids := f.deactivated[kind]
	for i, existing := range ids {
		if existing == id {
			f.deactivated[kind] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) DeactivatedIDs(_ context.Context, kind string) ([]string, error) {
	return f.deactivated[kind], nil
}

func testService(store *fakeStore) *Service {
	return New(store, logger.New("development"))
}

func TestDeactivatedIDsListsCancelledDocuments(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	if err := svc.Deactivate(context.Background(), domain.KindInvoice, "INV-1001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Deactivate(context.Background(), domain.KindInvoice, "INV-1002"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := svc.DeactivatedIDs(context.Background(), "invoice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Kind != "invoice" {
		t.Fatalf("expected kind invoice, got %s", resp.Kind)
	}
	if len(resp.IDs) != 2 || resp.IDs[0] != "INV-1001" || resp.IDs[1] != "INV-1002" {
		t.Fatalf("unexpected deactivated ids: %v", resp.IDs)
	}
}

func TestDeactivatedIDsEmptyKind(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	resp, err := svc.DeactivatedIDs(context.Background(), "estimate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.IDs == nil || len(resp.IDs) != 0 {
		t.Fatalf("expected empty id list, got %v", resp.IDs)
	}
}

func TestDeactivatedIDsRejectsUnknownKind(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	_, err := svc.DeactivatedIDs(context.Background(), "receipt")
	if apperr.GetKind(err) != apperr.KindBadRequest {
		t.Fatalf("expected bad request for unknown kind, got %v", err)
	}
}

func TestDeactivateIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	for i := 0; i < 3; i++ {
		if err := svc.Deactivate(context.Background(), domain.KindEstimate, "EST-2001"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	resp, err := svc.DeactivatedIDs(context.Background(), "estimate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.IDs) != 1 {
		t.Fatalf("expected exactly one entry after repeated deactivation, got %v", resp.IDs)
	}
}

func TestReactivateRemovesFromDeactivatedSet(t *testing.T) {
	store := newFakeStore()
	svc := testService(store)

	if err := svc.Deactivate(context.Background(), domain.KindAgreement, "AG-3001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Reactivate(context.Background(), domain.KindAgreement, "AG-3001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := svc.DeactivatedIDs(context.Background(), "agreement")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.IDs) != 0 {
		t.Fatalf("expected empty set after reactivation, got %v", resp.IDs)
	}
}

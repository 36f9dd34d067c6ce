package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldservice_backend/internal/feedback/repository"
	"fieldservice_backend/internal/feedback/transport"
	"fieldservice_backend/internal/scheduler"
	"fieldservice_backend/platform/apperr"
	"fieldservice_backend/platform/logger"
)

type testFeedbackConfig struct {
	autoSend bool
}

func (c testFeedbackConfig) GetFeedbackAutoSend() bool { return c.autoSend }
func (c testFeedbackConfig) GetPublicBaseURL() string  { return "https://portal.example.com" }

type fakeStore struct {
	records map[string]*repository.FeedbackRecord
	facts   map[string]*repository.JobFacts

	requested   []string
	submissions []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: map[string]*repository.FeedbackRecord{},
		facts:   map[string]*repository.JobFacts{},
	}
}

func (f *fakeStore) Get(_ context.Context, jobID string) (*repository.FeedbackRecord, error) {
	return f.records[jobID], nil
}

func (f *fakeStore) MarkRequested(_ context.Context, jobID string) error {
	f.requested = append(f.requested, jobID)
	if _, ok := f.records[jobID]; !ok {
		f.records[jobID] = &repository.FeedbackRecord{JobID: jobID, RequestedAt: time.Now()}
	}
	return nil
}

func (f *fakeStore) SaveSubmission(_ context.Context, jobID string, rating int, comment string, submittedAt time.Time) error {
	f.submissions = append(f.submissions, jobID)
	f.records[jobID] = &repository.FeedbackRecord{
		JobID:       jobID,
		Received:    true,
		Rating:      &rating,
		Comment:     &comment,
		SubmittedAt: &submittedAt,
	}
	return nil
}

func (f *fakeStore) JobFacts(_ context.Context, jobID string) (*repository.JobFacts, error) {
	facts, ok := f.facts[jobID]
	if !ok {
		return nil, apperr.NotFound("job not found")
	}
	return facts, nil
}

type fakeSender struct {
	sent []string
	urls []string
	err  error
}

func (f *fakeSender) SendFeedbackRequestEmail(_ context.Context, toEmail, _, _, feedbackURL string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, toEmail)
	f.urls = append(f.urls, feedbackURL)
	return nil
}

type fakeEnqueuer struct {
	payloads []scheduler.FeedbackDispatchPayload
	err      error
}

func (f *fakeEnqueuer) EnqueueFeedbackDispatch(_ context.Context, payload scheduler.FeedbackDispatchPayload) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeJobWriter struct {
	marked []string
}

func (f *fakeJobWriter) MarkFeedbackReceived(_ context.Context, jobID string) error {
	f.marked = append(f.marked, jobID)
	return nil
}

func seedFacts(store *fakeStore, jobID, status, email string) {
	store.facts[jobID] = &repository.JobFacts{
		JobID:         jobID,
		JobTitle:      "Boiler maintenance",
		JobStatus:     status,
		CustomerName:  "Acme BV",
		CustomerEmail: email,
	}
}

func TestOnJobCompletedEnqueuesWhenAutoSend(t *testing.T) {
	store := newFakeStore()
	enqueuer := &fakeEnqueuer{}
	svc := New(store, &fakeSender{}, enqueuer, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	seedFacts(store, "JOB-0001", "completed", "info@acme.test")

	directive, err := svc.OnJobCompleted(context.Background(), "JOB-0001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if directive != "" {
		t.Fatalf("auto-send should return no directive, got %q", directive)
	}
	if len(enqueuer.payloads) != 1 || enqueuer.payloads[0].JobID != "JOB-0001" {
		t.Fatalf("expected one enqueued dispatch, got %v", enqueuer.payloads)
	}
}

func TestOnJobCompletedManualModeReturnsDirective(t *testing.T) {
	store := newFakeStore()
	enqueuer := &fakeEnqueuer{}
	svc := New(store, &fakeSender{}, enqueuer, nil, testFeedbackConfig{autoSend: false}, logger.New("development"))
	seedFacts(store, "JOB-0002", "completed", "info@acme.test")

	directive, err := svc.OnJobCompleted(context.Background(), "JOB-0002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if directive != DirectiveManualPending {
		t.Fatalf("expected %q, got %q", DirectiveManualPending, directive)
	}
	if len(enqueuer.payloads) != 0 {
		t.Fatalf("manual mode must not enqueue a dispatch")
	}
}

func TestOnJobCompletedSkipsWhenRecordExists(t *testing.T) {
	store := newFakeStore()
	enqueuer := &fakeEnqueuer{}
	svc := New(store, &fakeSender{}, enqueuer, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	store.records["JOB-0003"] = &repository.FeedbackRecord{JobID: "JOB-0003"}

	directive, err := svc.OnJobCompleted(context.Background(), "JOB-0003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if directive != "" || len(enqueuer.payloads) != 0 {
		t.Fatalf("existing record must short-circuit the coordinator")
	}
}

func TestOnJobCompletedDispatchesInlineWithoutQueue(t *testing.T) {
	store := newFakeStore()
	sender := &fakeSender{}
	svc := New(store, sender, nil, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	seedFacts(store, "JOB-0004", "completed", "info@acme.test")

	if _, err := svc.OnJobCompleted(context.Background(), "JOB-0004"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected inline dispatch without a queue, got %d sends", len(sender.sent))
	}
	if len(store.requested) != 1 {
		t.Fatalf("expected the request to be recorded")
	}
}

func TestDispatchSkipsCustomerWithoutEmail(t *testing.T) {
	store := newFakeStore()
	sender := &fakeSender{}
	svc := New(store, sender, nil, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	seedFacts(store, "JOB-0005", "completed", "")

	if err := svc.Dispatch(context.Background(), "JOB-0005"); err != nil {
		t.Fatalf("missing email must not fail the dispatch: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("no email should go out without an address")
	}
	if len(store.requested) != 0 {
		t.Fatalf("skipped dispatch must not record a request")
	}
}

func TestDispatchBuildsFeedbackURL(t *testing.T) {
	store := newFakeStore()
	sender := &fakeSender{}
	svc := New(store, sender, nil, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	seedFacts(store, "JOB-0006", "completed", "info@acme.test")

	if err := svc.Dispatch(context.Background(), "JOB-0006"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://portal.example.com/feedback/JOB-0006"
	if len(sender.urls) != 1 || sender.urls[0] != want {
		t.Fatalf("expected feedback url %q, got %v", want, sender.urls)
	}
}

func TestDispatchSendFailureDoesNotRecordRequest(t *testing.T) {
	store := newFakeStore()
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := New(store, sender, nil, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	seedFacts(store, "JOB-0007", "completed", "info@acme.test")

	if err := svc.Dispatch(context.Background(), "JOB-0007"); err == nil {
		t.Fatalf("expected send failure to propagate")
	}
	if len(store.requested) != 0 {
		t.Fatalf("failed send must not record a request")
	}
}

func TestSubmitFeedbackAdvancesCompletedJob(t *testing.T) {
	store := newFakeStore()
	writer := &fakeJobWriter{}
	svc := New(store, &fakeSender{}, nil, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	svc.SetJobStatusWriter(writer)
	seedFacts(store, "JOB-0008", "completed", "info@acme.test")

	err := svc.SubmitFeedback(context.Background(), "JOB-0008", transport.SubmitFeedbackRequest{Rating: 5, Comment: "great work"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.submissions) != 1 {
		t.Fatalf("expected the submission to be stored")
	}
	if len(writer.marked) != 1 || writer.marked[0] != "JOB-0008" {
		t.Fatalf("expected the job to advance to feedback received, got %v", writer.marked)
	}
}

func TestSubmitFeedbackDoesNotAdvanceNonCompletedJob(t *testing.T) {
	store := newFakeStore()
	writer := &fakeJobWriter{}
	svc := New(store, &fakeSender{}, nil, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	svc.SetJobStatusWriter(writer)
	seedFacts(store, "JOB-0009", "cancelled", "info@acme.test")

	err := svc.SubmitFeedback(context.Background(), "JOB-0009", transport.SubmitFeedbackRequest{Rating: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.marked) != 0 {
		t.Fatalf("only completed jobs may advance on submission")
	}
}

func TestSubmitFeedbackValidatesRating(t *testing.T) {
	store := newFakeStore()
	svc := New(store, &fakeSender{}, nil, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	seedFacts(store, "JOB-0010", "completed", "info@acme.test")

	err := svc.SubmitFeedback(context.Background(), "JOB-0010", transport.SubmitFeedbackRequest{Rating: 6})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.submissions) != 0 {
		t.Fatalf("invalid rating must not be stored")
	}
}

func TestGetReportsFeedbackState(t *testing.T) {
	store := newFakeStore()
	svc := New(store, &fakeSender{}, nil, nil, testFeedbackConfig{autoSend: true}, logger.New("development"))
	seedFacts(store, "JOB-0011", "completed", "info@acme.test")

	resp, err := svc.Get(context.Background(), "JOB-0011")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Exists {
		t.Fatalf("expected no record before a request goes out")
	}

	rating := 4
	now := time.Now()
	store.records["JOB-0011"] = &repository.FeedbackRecord{
		JobID:       "JOB-0011",
		Received:    true,
		Rating:      &rating,
		RequestedAt: now,
		SubmittedAt: &now,
	}

	resp, err = svc.Get(context.Background(), "JOB-0011")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Exists || !resp.Received || resp.Rating == nil || *resp.Rating != 4 {
		t.Fatalf("expected received feedback state, got %+v", resp)
	}
}

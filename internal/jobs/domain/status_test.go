package domain

import (
	"errors"
	"testing"
)

func TestCheckTransitionRules(t *testing.T) {
	cases := []struct {
		name        string
		from        Status
		to          Status
		role        Role
		viaFeedback bool
		wantErr     error
	}{
		{name: "start work", from: StatusScheduled, to: StatusInProgress, role: RoleEmployee},
		{name: "complete work", from: StatusInProgress, to: StatusCompleted, role: RoleEmployee},
		{name: "complete directly from scheduled", from: StatusScheduled, to: StatusCompleted, role: RoleEmployee},
		{name: "cancel scheduled", from: StatusScheduled, to: StatusCancelled, role: RoleEmployee},
		{name: "cancel in progress", from: StatusInProgress, to: StatusCancelled, role: RoleEmployee},
		{name: "cancel completed", from: StatusCompleted, to: StatusCancelled, role: RoleEmployee},
		{name: "cancel after feedback", from: StatusFeedbackReceived, to: StatusCancelled, role: RoleEmployee},
		{name: "repeat cancellation is a no-op", from: StatusCancelled, to: StatusCancelled, role: RoleEmployee},
		{
			name: "employee may not reactivate", from: StatusCancelled, to: StatusScheduled,
			role: RoleEmployee, wantErr: ErrUnauthorizedReactivation,
		},
		{name: "merchant may reactivate", from: StatusCancelled, to: StatusScheduled, role: RoleMerchant},
		{name: "merchant may reactivate to in progress", from: StatusCancelled, to: StatusInProgress, role: RoleMerchant},
		{
			name: "feedback received is never a direct target", from: StatusCompleted, to: StatusFeedbackReceived,
			role: RoleMerchant, wantErr: ErrInvalidTransition,
		},
		{
			name: "feedback submission path", from: StatusCompleted, to: StatusFeedbackReceived,
			role: RoleEmployee, viaFeedback: true,
		},
		{
			name: "feedback submission requires completed", from: StatusScheduled, to: StatusFeedbackReceived,
			role: RoleEmployee, viaFeedback: true, wantErr: ErrInvalidTransition,
		},
		{
			name: "feedback received cannot regress", from: StatusFeedbackReceived, to: StatusCompleted,
			role: RoleMerchant, wantErr: ErrInvalidTransition,
		},
		{
			name: "unknown source status", from: Status("archived"), to: StatusScheduled,
			role: RoleMerchant, wantErr: ErrUnknownStatus,
		},
		{
			name: "unknown target status", from: StatusScheduled, to: Status(""),
			role: RoleMerchant, wantErr: ErrUnknownStatus,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTransition(tc.from, tc.to, tc.role, tc.viaFeedback)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected transition to be allowed, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusFeedbackReceived, StatusCancelled} {
		if !s.Valid() {
			t.Fatalf("status %q should be valid", s)
		}
	}
	if Status("done").Valid() {
		t.Fatalf("unexpected valid status")
	}
}

func TestStatusIsSettled(t *testing.T) {
	if !StatusCompleted.IsSettled() || !StatusCancelled.IsSettled() || !StatusFeedbackReceived.IsSettled() {
		t.Fatalf("finished statuses should be settled")
	}
	if StatusScheduled.IsSettled() || StatusInProgress.IsSettled() {
		t.Fatalf("active statuses should not be settled")
	}
}

// Package domain contains the pure job lifecycle and route sequencing rules.
// It has no dependencies on storage, transport, or other modules so the rules
// can be tested in isolation.
package domain

import "errors"

// Status is the lifecycle state of a job.
type Status string

const (
	StatusScheduled        Status = "scheduled"
	StatusInProgress       Status = "in_progress"
	StatusCompleted        Status = "completed"
	StatusFeedbackReceived Status = "feedback_received"
	StatusCancelled        Status = "cancelled"
)

// Role identifies the kind of actor requesting a transition.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleMerchant Role = "merchant"
)

var (
	ErrUnknownStatus            = errors.New("unknown status")
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrUnauthorizedReactivation = errors.New("only merchants may reactivate a cancelled job")
)

// Valid reports whether s is one of the five defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusFeedbackReceived, StatusCancelled:
		return true
	}
	return false
}

// IsSettled reports whether the job no longer counts as active route work.
// Feedback received implies completion, so it settles too.
func (s Status) IsSettled() bool {
	return s == StatusCompleted || s == StatusFeedbackReceived || s == StatusCancelled
}

// ValidRole reports whether r is a recognized actor role.
func ValidRole(r Role) bool {
	return r == RoleEmployee || r == RoleMerchant
}

// CheckTransition decides whether a job may move from one status to another.
// viaFeedback marks the internal transition performed by feedback submission;
// it is the only way into StatusFeedbackReceived.
//
// Rules:
//   - Cancellation is allowed from every status. Repeating it is a no-op at
//     this layer so the document cascade can re-run idempotently.
//   - Leaving StatusCancelled requires the merchant role.
//   - StatusFeedbackReceived can only be left by cancelling.
//   - Transitioning to the current status is permitted (no-op).
func CheckTransition(from, to Status, role Role, viaFeedback bool) error {
	if !from.Valid() || !to.Valid() {
		return ErrUnknownStatus
	}

	if viaFeedback {
		if from != StatusCompleted || to != StatusFeedbackReceived {
			return ErrInvalidTransition
		}
		return nil
	}

	if to == StatusFeedbackReceived && from != StatusFeedbackReceived {
		return ErrInvalidTransition
	}

	if from == StatusCancelled && to != StatusCancelled {
		if role != RoleMerchant {
			return ErrUnauthorizedReactivation
		}
		return nil
	}

	if from == StatusFeedbackReceived && to != StatusFeedbackReceived && to != StatusCancelled {
		return ErrInvalidTransition
	}

	return nil
}

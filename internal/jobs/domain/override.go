package domain

import "time"

// VisitDetails is the schedulable slice of a job: who goes where, and when.
type VisitDetails struct {
	TechnicianID   string
	TechnicianName string
	VisitDate      time.Time
	VisitTime      string
	Location       string
}

// VisitOverride records a reassignment or reschedule without touching the
// base job record. Nil fields keep the base value.
type VisitOverride struct {
	TechnicianID   *string
	TechnicianName *string
	VisitDate      *time.Time
	VisitTime      *string
	Location       *string
}

// Empty reports whether the override changes nothing.
func (o *VisitOverride) Empty() bool {
	return o == nil ||
		(o.TechnicianID == nil && o.TechnicianName == nil &&
			o.VisitDate == nil && o.VisitTime == nil && o.Location == nil)
}

// MergeOverride applies an override on top of base details. The base value is
// never mutated; overrides win at read time so repeated reads always reflect
// the latest recorded change.
func MergeOverride(base VisitDetails, override *VisitOverride) VisitDetails {
	if override == nil {
		return base
	}

	merged := base
	if override.TechnicianID != nil {
		merged.TechnicianID = *override.TechnicianID
	}
	if override.TechnicianName != nil {
		merged.TechnicianName = *override.TechnicianName
	}
	if override.VisitDate != nil {
		merged.VisitDate = *override.VisitDate
	}
	if override.VisitTime != nil {
		merged.VisitTime = *override.VisitTime
	}
	if override.Location != nil {
		merged.Location = *override.Location
	}
	return merged
}

package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Visit is the slice of a job the route algorithms need.
type Visit struct {
	ID        string
	Status    Status
	TimeLabel string
}

// unparseable clock labels sort after everything else
const clockUnknown = -1

// ParseClock converts a visit time label to minutes since midnight.
// Both 24-hour ("14:30") and 12-hour ("02:30 PM") labels occur in the data.
func ParseClock(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false
	}

	for _, layout := range []string{"15:04", "03:04 PM", "3:04 PM"} {
		if t, err := time.Parse(layout, strings.ToUpper(label)); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}

	// tolerate labels like "9:5"
	parts := strings.SplitN(label, ":", 2)
	if len(parts) == 2 {
		hour, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		minute, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errH == nil && errM == nil && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
			return hour*60 + minute, true
		}
	}

	return 0, false
}

func clockMinutes(v Visit) int {
	minutes, ok := ParseClock(v.TimeLabel)
	if !ok {
		return clockUnknown
	}
	return minutes
}

// Sequence orders one technician's visits for a day. A persisted custom order
// wins: visits are emitted in that id order, silently dropping ids that no
// longer exist, and any visit missing from the persisted order is appended
// using the default sort. With no persisted order the default sort applies to
// everything.
//
// Default sort: active visits (scheduled, in progress) ascending by
// time-of-day, then settled visits (completed, cancelled) descending by
// time-of-day. The sort is stable, so equal times keep their input order.
func Sequence(visits []Visit, persistedOrder []string) []Visit {
	if len(persistedOrder) == 0 {
		return defaultSort(visits)
	}

	byID := make(map[string]Visit, len(visits))
	for _, v := range visits {
		byID[v.ID] = v
	}

	result := make([]Visit, 0, len(visits))
	placed := make(map[string]bool, len(persistedOrder))
	for _, id := range persistedOrder {
		if placed[id] {
			continue
		}
		if v, ok := byID[id]; ok {
			result = append(result, v)
			placed[id] = true
		}
	}

	remainder := make([]Visit, 0, len(visits)-len(result))
	for _, v := range visits {
		if !placed[v.ID] {
			remainder = append(remainder, v)
		}
	}

	return append(result, defaultSort(remainder)...)
}

func defaultSort(visits []Visit) []Visit {
	sorted := make([]Visit, len(visits))
	copy(sorted, visits)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		aSettled := a.Status.IsSettled()
		bSettled := b.Status.IsSettled()
		if aSettled != bSettled {
			return !aSettled
		}

		aMin := clockMinutes(a)
		bMin := clockMinutes(b)
		if aSettled {
			// most recently finished first; unknown times sink to the end
			return aMin > bMin
		}
		// unknown times sink to the end of the active block too
		if aMin == clockUnknown || bMin == clockUnknown {
			return bMin == clockUnknown && aMin != clockUnknown
		}
		return aMin < bMin
	})

	return sorted
}

// LocateStops derives the current and next stop indices from a sequenced
// visit list and the current time in minutes since midnight. graceMinutes is
// how long an overdue visit still counts as the current stop.
//
// Current stop: among non-settled visits no more than graceMinutes overdue,
// the one closest to now. If every candidate is further overdue than the
// grace window, the closest of those. If no visit has a usable time, the
// first in-progress visit. Otherwise -1.
//
// Next stop: the first scheduled visit after the current stop in sequence
// order, falling back to the first scheduled visit anywhere else in the list.
func LocateStops(visits []Visit, nowMinutes, graceMinutes int) (currentIndex, nextIndex int) {
	currentIndex = -1
	bestDelta := 0

	// pass 1: within the grace window
	for i, v := range visits {
		if v.Status.IsSettled() {
			continue
		}
		minutes, ok := ParseClock(v.TimeLabel)
		if !ok || minutes < nowMinutes-graceMinutes {
			continue
		}
		delta := abs(minutes - nowMinutes)
		if currentIndex == -1 || delta < bestDelta {
			currentIndex = i
			bestDelta = delta
		}
	}

	// pass 2: everything left is overdue; take the closest
	if currentIndex == -1 {
		for i, v := range visits {
			if v.Status.IsSettled() {
				continue
			}
			minutes, ok := ParseClock(v.TimeLabel)
			if !ok {
				continue
			}
			delta := abs(minutes - nowMinutes)
			if currentIndex == -1 || delta < bestDelta {
				currentIndex = i
				bestDelta = delta
			}
		}
	}

	// pass 3: no usable times at all
	if currentIndex == -1 {
		for i, v := range visits {
			if v.Status == StatusInProgress {
				currentIndex = i
				break
			}
		}
	}

	nextIndex = -1
	if currentIndex >= 0 {
		for i := currentIndex + 1; i < len(visits); i++ {
			if visits[i].Status == StatusScheduled {
				nextIndex = i
				break
			}
		}
	}
	if nextIndex == -1 {
		for i, v := range visits {
			if i != currentIndex && v.Status == StatusScheduled {
				nextIndex = i
				break
			}
		}
	}

	return currentIndex, nextIndex
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

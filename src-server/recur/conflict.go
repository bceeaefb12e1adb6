package recur

import (
	"time"

	"gridcal/src-server/caldate"
	"gridcal/src-server/model"
)

// Two timed events on the same day conflict when their clock times are
// less than this many minutes apart (strictly less).
const conflictWindowMinutes = 60

type Density string

const (
	DensityLow    Density = "low"
	DensityMedium Density = "medium"
	DensityHigh   Density = "high"
)

// Conflicts returns the events in existing that conflict with
// candidate: same calendar day, both carrying a parseable HH:MM time,
// and less than 60 minutes apart. excludeID removes one existing event
// (by id) from consideration; pass 0 to consider all. Used when
// re-checking an edited event against itself.
func Conflicts(candidate model.Event, existing []model.Event, excludeID int64) []model.Event {
	candidateMinutes, ok := clockMinutes(candidate.Time)
	if !ok {
		return nil
	}
	candidateDate, err := caldate.ParseDay(candidate.Date)
	if err != nil {
		return nil
	}

	conflicting := make([]model.Event, 0)
	for _, event := range existing {
		if excludeID != 0 && event.ID == excludeID {
			continue
		}
		eventMinutes, ok := clockMinutes(event.Time)
		if !ok {
			continue
		}
		eventDate, err := caldate.ParseDay(event.Date)
		if err != nil || !caldate.SameDay(candidateDate, eventDate) {
			continue
		}
		if minutesApart(candidateMinutes, eventMinutes) < conflictWindowMinutes {
			conflicting = append(conflicting, event)
		}
	}
	return conflicting
}

// HasConflicts reports whether any two timed events on the given day
// are less than 60 minutes apart. Every pair is checked; the input is
// not assumed sorted by time.
func HasConflicts(events []model.Event, date time.Time) bool {
	minutes := timedMinutesOn(events, date)
	for i := 0; i < len(minutes); i++ {
		for j := i + 1; j < len(minutes); j++ {
			if minutesApart(minutes[i], minutes[j]) < conflictWindowMinutes {
				return true
			}
		}
	}
	return false
}

// Density buckets the given day by raw occurrence count. A
// presentation hint only, but deterministic: >=4 high, >=2 medium,
// else low.
func DayDensity(events []model.Event, date time.Time) Density {
	count := 0
	for _, event := range events {
		if eventDate, err := caldate.ParseDay(event.Date); err == nil && caldate.SameDay(eventDate, date) {
			count++
		}
	}
	switch {
	case count >= 4:
		return DensityHigh
	case count >= 2:
		return DensityMedium
	default:
		return DensityLow
	}
}

// timedMinutesOn collects clock minutes of the day's events that carry
// a parseable time. Events without one never participate in conflict
// detection.
func timedMinutesOn(events []model.Event, date time.Time) []int {
	minutes := make([]int, 0, len(events))
	for _, event := range events {
		eventDate, err := caldate.ParseDay(event.Date)
		if err != nil || !caldate.SameDay(eventDate, date) {
			continue
		}
		if m, ok := clockMinutes(event.Time); ok {
			minutes = append(minutes, m)
		}
	}
	return minutes
}

func clockMinutes(clock string) (int, bool) {
	if clock == "" {
		return 0, false
	}
	minutes, err := caldate.ParseClock(clock)
	if err != nil {
		return 0, false
	}
	return minutes, true
}

func minutesApart(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

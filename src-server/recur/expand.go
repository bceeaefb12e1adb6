// Package recur is the pure core of the calendar: recurrence
// expansion, conflict detection, and day-density bucketing. Nothing in
// here touches storage or the clock; every function is deterministic
// over its inputs.
package recur

import (
	"sort"
	"time"

	"gridcal/src-server/caldate"
	"gridcal/src-server/model"
)

// MaxOccurrences bounds the expansion loop. It is a safety guard
// against non-advancing patterns, not a user-facing feature: the loop
// runs at most this many iterations, so no pattern can emit more.
const MaxOccurrences = 100

// Occurrence is one materialized instance of an event on a concrete
// date. Identity is the compound (BaseID, Index) key; Index counts
// loop iterations from the anchor date, so an occurrence suppressed by
// an exception date still consumes its index and later instances keep
// stable identities.
type Occurrence struct {
	Base   model.Event
	BaseID int64
	Index  int
	Date   time.Time
}

// Materialize returns an Event-shaped copy of the base record with the
// occurrence's concrete date. The record keeps the base event's ID;
// flattened per-instance ids are a presentation concern.
func (o Occurrence) Materialize() model.Event {
	event := o.Base
	event.Date = caldate.FormatDay(o.Date)
	return event
}

// Expand generates the ordered occurrence sequence of base within the
// inclusive [windowStart, windowEnd] day window.
//
// A non-recurring event (or one whose stored pattern cannot be
// decoded) degenerates to the base record itself when its date falls
// inside the window. For recurring events the cursor starts at the
// anchor date and advances per the pattern's frequency; dates listed
// in the event's exception set are skipped while still consuming their
// occurrence index. The pattern's EndDate and Count, when present, act
// as additional termination conditions.
func Expand(base model.Event, windowStart, windowEnd time.Time) []Occurrence {
	windowStart = caldate.Day(windowStart)
	windowEnd = caldate.Day(windowEnd)

	pattern, err := base.Pattern()
	if !base.IsRecurring || pattern == nil || err != nil {
		date, err := caldate.ParseDay(base.Date)
		if err != nil {
			return nil
		}
		if date.Before(windowStart) || date.After(windowEnd) {
			return nil
		}
		return []Occurrence{{Base: base, BaseID: base.ID, Index: 0, Date: date}}
	}
	pattern.Normalize()

	cursor, err := caldate.ParseDay(base.Date)
	if err != nil {
		return nil
	}

	exceptions := make([]time.Time, 0, len(base.Exceptions()))
	for _, day := range base.Exceptions() {
		if date, err := caldate.ParseDay(day); err == nil {
			exceptions = append(exceptions, date)
		}
	}

	var endDate time.Time
	hasEndDate := false
	if pattern.EndDate != "" {
		if date, err := caldate.ParseDay(pattern.EndDate); err == nil {
			endDate = date
			hasEndDate = true
		}
	}

	occurrences := make([]Occurrence, 0)
	for index := 0; index < MaxOccurrences && !cursor.After(windowEnd); index++ {
		if pattern.Count > 0 && index >= pattern.Count {
			break
		}
		if hasEndDate && cursor.After(endDate) {
			break
		}
		if !cursor.Before(windowStart) && !isException(exceptions, cursor) {
			occurrences = append(occurrences, Occurrence{
				Base:   base,
				BaseID: base.ID,
				Index:  index,
				Date:   cursor,
			})
		}
		cursor = nextOccurrence(cursor, pattern)
	}
	return occurrences
}

// ExpandForMonth expands every event against the month containing
// monthDate. Ordering within one event's occurrences is preserved; no
// ordering is guaranteed across different base events.
func ExpandForMonth(events []model.Event, monthDate time.Time) []Occurrence {
	first, last := caldate.MonthBounds(monthDate)
	occurrences := make([]Occurrence, 0)
	for _, event := range events {
		occurrences = append(occurrences, Expand(event, first, last)...)
	}
	return occurrences
}

func isException(exceptions []time.Time, date time.Time) bool {
	for _, exception := range exceptions {
		if caldate.SameDay(exception, date) {
			return true
		}
	}
	return false
}

func nextOccurrence(cursor time.Time, pattern *model.RecurrencePattern) time.Time {
	switch pattern.Frequency {
	case model.FreqDaily:
		return caldate.AddDays(cursor, pattern.Interval)
	case model.FreqWeekly:
		if len(pattern.DaysOfWeek) > 0 {
			return nextSelectedWeekday(cursor, pattern.DaysOfWeek, pattern.Interval)
		}
		return caldate.AddWeeks(cursor, pattern.Interval)
	case model.FreqMonthly:
		return caldate.AddMonths(cursor, pattern.Interval)
	case model.FreqCustom:
		// Custom repeats on an explicit weekday selection. Without
		// one there is nothing custom to follow, so it degrades to
		// plain interval-week stepping rather than looping in place.
		if len(pattern.DaysOfWeek) > 0 {
			return nextSelectedWeekday(cursor, pattern.DaysOfWeek, pattern.Interval)
		}
		return caldate.AddWeeks(cursor, pattern.Interval)
	default:
		return caldate.AddDays(cursor, 1)
	}
}

// nextSelectedWeekday advances the cursor to the next selected weekday.
// Within the current week the smallest selected weekday strictly after
// the cursor's weekday fires next; once the week is exhausted the
// cursor wraps to the first selected weekday, skipping (interval-1)
// full weeks. All selected weekdays fire inside an active week.
func nextSelectedWeekday(cursor time.Time, daysOfWeek []int, interval int) time.Time {
	days := make([]int, len(daysOfWeek))
	copy(days, daysOfWeek)
	sort.Ints(days)

	weekday := int(cursor.Weekday())
	for _, day := range days {
		if day > weekday {
			return caldate.AddDays(cursor, day-weekday)
		}
	}
	first := days[0]
	return caldate.AddDays(cursor, 7-weekday+first+(interval-1)*7)
}

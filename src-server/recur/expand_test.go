package recur_test

import (
	"reflect"
	"testing"
	"time"

	"gridcal/src-server/caldate"
	"gridcal/src-server/model"
	"gridcal/src-server/recur"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recurringEvent(t *testing.T, id int64, date string, pattern model.RecurrencePattern, exceptions ...string) model.Event {
	t.Helper()
	event := model.Event{
		ID:          id,
		Title:       "Test Event",
		Date:        date,
		Category:    model.CategoryWork,
		IsRecurring: true,
	}
	if err := event.SetPattern(&pattern); err != nil {
		t.Fatal(err)
	}
	if err := event.SetExceptions(exceptions); err != nil {
		t.Fatal(err)
	}
	return event
}

func dates(occurrences []recur.Occurrence) []string {
	out := make([]string, len(occurrences))
	for i, occurrence := range occurrences {
		out[i] = caldate.FormatDay(occurrence.Date)
	}
	return out
}

func indexes(occurrences []recur.Occurrence) []int {
	out := make([]int, len(occurrences))
	for i, occurrence := range occurrences {
		out[i] = occurrence.Index
	}
	return out
}

func TestExpandDaily(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqDaily,
		Interval:  1,
	})
	got := recur.Expand(event, day(2024, 1, 1), day(2024, 1, 5))
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("daily expansion = %v, want %v", dates(got), want)
	}
	if !reflect.DeepEqual(indexes(got), []int{0, 1, 2, 3, 4}) {
		t.Errorf("daily indexes = %v", indexes(got))
	}
}

func TestExpandWeeklySelectedWeekdays(t *testing.T) {
	// anchored on Wednesday 2024-01-03, repeating Mon/Thu; window
	// opens on the Thursday so the anchor itself is outside it
	event := recurringEvent(t, 1, "2024-01-03", model.RecurrencePattern{
		Frequency:  model.FreqWeekly,
		Interval:   1,
		DaysOfWeek: []int{1, 4},
	})
	got := recur.Expand(event, day(2024, 1, 4), day(2024, 1, 31))
	want := []string{
		"2024-01-04", // that week's Thursday
		"2024-01-08", // the following Monday
		"2024-01-11",
		"2024-01-15",
		"2024-01-18",
		"2024-01-22",
		"2024-01-25",
		"2024-01-29",
	}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("weekly Mon/Thu expansion = %v, want %v", dates(got), want)
	}
}

func TestExpandWeeklyAnchorInsideWindow(t *testing.T) {
	// the anchor date is emitted when inside the window even if its
	// weekday is not in the selection; advancement starts from it
	event := recurringEvent(t, 1, "2024-01-03", model.RecurrencePattern{
		Frequency:  model.FreqWeekly,
		Interval:   1,
		DaysOfWeek: []int{1, 4},
	})
	got := recur.Expand(event, day(2024, 1, 1), day(2024, 1, 10))
	want := []string{"2024-01-03", "2024-01-04", "2024-01-08"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("anchored expansion = %v, want %v", dates(got), want)
	}
}

func TestExpandWeeklyIntervalSkipsWeeks(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-04", model.RecurrencePattern{
		Frequency:  model.FreqWeekly,
		Interval:   2,
		DaysOfWeek: []int{1, 4},
	})
	got := recur.Expand(event, day(2024, 1, 4), day(2024, 2, 4))
	// week is exhausted after Thursday, then 1 extra week is skipped
	want := []string{"2024-01-04", "2024-01-15", "2024-01-18", "2024-01-29", "2024-02-01"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("interval-2 weekly expansion = %v, want %v", dates(got), want)
	}
}

func TestExpandWeeklyWithoutSelection(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqWeekly,
		Interval:  2,
	})
	got := recur.Expand(event, day(2024, 1, 1), day(2024, 2, 1))
	want := []string{"2024-01-01", "2024-01-15", "2024-01-29"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("plain weekly expansion = %v, want %v", dates(got), want)
	}
}

func TestExpandMonthlyClampsAtMonthEnd(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-31", model.RecurrencePattern{
		Frequency: model.FreqMonthly,
		Interval:  1,
	})
	got := recur.Expand(event, day(2024, 1, 1), day(2024, 4, 30))
	// the cursor clamps into February and steps on from the clamped day
	want := []string{"2024-01-31", "2024-02-29", "2024-03-29", "2024-04-29"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("monthly expansion = %v, want %v", dates(got), want)
	}
}

func TestExpandExceptionSkipsButKeepsIndex(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqDaily,
		Interval:  1,
	}, "2024-01-03")
	got := recur.Expand(event, day(2024, 1, 1), day(2024, 1, 5))
	wantDates := []string{"2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05"}
	if !reflect.DeepEqual(dates(got), wantDates) {
		t.Errorf("exception expansion = %v, want %v", dates(got), wantDates)
	}
	// the suppressed iteration still consumed index 2
	if !reflect.DeepEqual(indexes(got), []int{0, 1, 3, 4}) {
		t.Errorf("exception indexes = %v, want [0 1 3 4]", indexes(got))
	}
}

func TestExpandBounded(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqDaily,
		Interval:  1,
	})
	got := recur.Expand(event, day(2024, 1, 1), day(2030, 1, 1))
	if len(got) != recur.MaxOccurrences {
		t.Fatalf("expansion emitted %d occurrences, want %d", len(got), recur.MaxOccurrences)
	}
	if last := caldate.FormatDay(got[len(got)-1].Date); last != "2024-04-09" {
		t.Errorf("last capped date = %s, want 2024-04-09", last)
	}
}

func TestExpandWindowContainment(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqDaily,
		Interval:  1,
	})
	windowStart, windowEnd := day(2024, 1, 10), day(2024, 1, 15)
	got := recur.Expand(event, windowStart, windowEnd)
	if len(got) != 6 {
		t.Fatalf("got %d occurrences, want 6", len(got))
	}
	for _, occurrence := range got {
		if occurrence.Date.Before(windowStart) || occurrence.Date.After(windowEnd) {
			t.Errorf("occurrence %v escaped the window", occurrence.Date)
		}
	}
	// pre-window iterations consumed indexes 0..8
	if got[0].Index != 9 {
		t.Errorf("first in-window index = %d, want 9", got[0].Index)
	}
}

func TestExpandMonotonicAndIdempotent(t *testing.T) {
	event := recurringEvent(t, 7, "2024-01-03", model.RecurrencePattern{
		Frequency:  model.FreqWeekly,
		Interval:   1,
		DaysOfWeek: []int{0, 3, 6},
	})
	first := recur.Expand(event, day(2024, 1, 1), day(2024, 3, 31))
	second := recur.Expand(event, day(2024, 1, 1), day(2024, 3, 31))
	if !reflect.DeepEqual(first, second) {
		t.Error("expansion is not idempotent")
	}
	for i := 1; i < len(first); i++ {
		if !first[i].Date.After(first[i-1].Date) {
			t.Errorf("dates not strictly increasing at %d: %v then %v", i, first[i-1].Date, first[i].Date)
		}
	}
}

func TestExpandCustomFrequency(t *testing.T) {
	withSelection := recurringEvent(t, 1, "2024-01-03", model.RecurrencePattern{
		Frequency:  model.FreqCustom,
		Interval:   1,
		DaysOfWeek: []int{1, 4},
	})
	asWeekly := recurringEvent(t, 1, "2024-01-03", model.RecurrencePattern{
		Frequency:  model.FreqWeekly,
		Interval:   1,
		DaysOfWeek: []int{1, 4},
	})
	if !reflect.DeepEqual(
		dates(recur.Expand(withSelection, day(2024, 1, 1), day(2024, 2, 1))),
		dates(recur.Expand(asWeekly, day(2024, 1, 1), day(2024, 2, 1))),
	) {
		t.Error("custom with a weekday selection should follow the selection rule")
	}

	withoutSelection := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqCustom,
		Interval:  1,
	})
	got := recur.Expand(withoutSelection, day(2024, 1, 1), day(2024, 1, 20))
	want := []string{"2024-01-01", "2024-01-08", "2024-01-15"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("custom without selection = %v, want %v", dates(got), want)
	}
}

func TestExpandZeroIntervalTerminates(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqDaily,
		Interval:  0,
	})
	got := recur.Expand(event, day(2024, 1, 1), day(2030, 1, 1))
	if len(got) == 0 || len(got) > recur.MaxOccurrences {
		t.Fatalf("zero-interval expansion emitted %d occurrences", len(got))
	}
	// the coerced interval advances one day at a time
	if second := caldate.FormatDay(got[1].Date); second != "2024-01-02" {
		t.Errorf("second occurrence = %s, want 2024-01-02", second)
	}
}

func TestExpandCountBound(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqDaily,
		Interval:  1,
		Count:     3,
	})
	got := recur.Expand(event, day(2024, 1, 1), day(2024, 12, 31))
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("count-bounded expansion = %v, want %v", dates(got), want)
	}
}

func TestExpandEndDateBound(t *testing.T) {
	event := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqDaily,
		Interval:  1,
		EndDate:   "2024-01-03",
	})
	got := recur.Expand(event, day(2024, 1, 1), day(2024, 12, 31))
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if !reflect.DeepEqual(dates(got), want) {
		t.Errorf("end-date-bounded expansion = %v, want %v", dates(got), want)
	}
}

func TestExpandNonRecurring(t *testing.T) {
	event := model.Event{ID: 3, Title: "One Off", Date: "2024-01-15", Category: model.CategorySocial}
	inWindow := recur.Expand(event, day(2024, 1, 1), day(2024, 1, 31))
	if len(inWindow) != 1 || caldate.FormatDay(inWindow[0].Date) != "2024-01-15" {
		t.Errorf("non-recurring in window = %v", dates(inWindow))
	}
	if inWindow[0].BaseID != 3 || inWindow[0].Index != 0 {
		t.Errorf("non-recurring identity = (%d,%d), want (3,0)", inWindow[0].BaseID, inWindow[0].Index)
	}
	outOfWindow := recur.Expand(event, day(2024, 2, 1), day(2024, 2, 28))
	if len(outOfWindow) != 0 {
		t.Errorf("non-recurring out of window = %v", dates(outOfWindow))
	}
}

func TestExpandForMonth(t *testing.T) {
	weekly := recurringEvent(t, 1, "2024-01-01", model.RecurrencePattern{
		Frequency:  model.FreqWeekly,
		Interval:   1,
		DaysOfWeek: []int{1}, // Mondays
	})
	inside := model.Event{ID: 2, Title: "Inside", Date: "2024-01-20"}
	outside := model.Event{ID: 3, Title: "Outside", Date: "2024-02-02"}

	got := recur.ExpandForMonth([]model.Event{weekly, inside, outside}, day(2024, 1, 10))

	mondays := 0
	sawInside := false
	for _, occurrence := range got {
		if occurrence.BaseID == 1 {
			mondays++
		}
		if occurrence.BaseID == 2 {
			sawInside = true
		}
		if occurrence.BaseID == 3 {
			t.Error("event outside the month leaked into the expansion")
		}
	}
	// Jan 2024 Mondays: 1, 8, 15, 22, 29
	if mondays != 5 {
		t.Errorf("monday occurrences = %d, want 5", mondays)
	}
	if !sawInside {
		t.Error("non-recurring event inside the month is missing")
	}
}

func TestOccurrenceMaterialize(t *testing.T) {
	event := recurringEvent(t, 9, "2024-01-01", model.RecurrencePattern{
		Frequency: model.FreqDaily,
		Interval:  1,
	})
	got := recur.Expand(event, day(2024, 1, 2), day(2024, 1, 2))
	if len(got) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(got))
	}
	materialized := got[0].Materialize()
	if materialized.Date != "2024-01-02" {
		t.Errorf("materialized date = %s, want 2024-01-02", materialized.Date)
	}
	if materialized.Title != event.Title || materialized.ID != event.ID {
		t.Error("materialized occurrence should copy the base fields")
	}
}

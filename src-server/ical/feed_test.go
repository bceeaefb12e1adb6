package ical_test

import (
	"strings"
	"testing"

	"gridcal/src-server/ical"
	"gridcal/src-server/model"
)

func TestFeedPlainEvent(t *testing.T) {
	feed := ical.Feed([]model.Event{
		{
			ID:          1,
			Title:       "Dentist",
			Description: "Checkup",
			Date:        "2024-06-12",
			Time:        "10:00",
			Category:    model.CategoryHealth,
		},
	})

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:event-1@gridcal",
		"SUMMARY:Dentist",
		"DESCRIPTION:Checkup",
		"CATEGORIES:health",
		"DTSTART:20240612T100000Z",
		"DTEND:20240612T110000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(feed, want) {
			t.Fatalf("feed missing %q:\n%s", want, feed)
		}
	}
}

func TestFeedAllDayEvent(t *testing.T) {
	feed := ical.Feed([]model.Event{
		{ID: 2, Title: "Holiday", Date: "2024-07-04", Category: model.CategoryHoliday},
	})

	if !strings.Contains(feed, "DTSTART;VALUE=DATE:20240704") {
		t.Fatalf("feed missing all-day DTSTART:\n%s", feed)
	}
	if !strings.Contains(feed, "DTEND;VALUE=DATE:20240705") {
		t.Fatalf("feed missing exclusive all-day DTEND:\n%s", feed)
	}
}

func TestFeedRecurringEvent(t *testing.T) {
	event := model.Event{
		ID:          3,
		Title:       "Standup",
		Date:        "2024-06-03",
		Time:        "09:00",
		Category:    model.CategoryWork,
		IsRecurring: true,
	}
	if err := event.SetPattern(&model.RecurrencePattern{
		Frequency:  model.FreqWeekly,
		Interval:   1,
		DaysOfWeek: []int{1, 3},
	}); err != nil {
		t.Fatal(err)
	}
	if err := event.SetExceptions([]string{"2024-06-05"}); err != nil {
		t.Fatal(err)
	}

	feed := ical.Feed([]model.Event{event})

	if !strings.Contains(feed, "RRULE:") {
		t.Fatalf("feed missing RRULE:\n%s", feed)
	}
	if !strings.Contains(feed, "FREQ=WEEKLY") {
		t.Fatalf("feed missing FREQ=WEEKLY:\n%s", feed)
	}
	if !strings.Contains(feed, "MO") || !strings.Contains(feed, "WE") {
		t.Fatalf("feed missing BYDAY weekdays:\n%s", feed)
	}
	if !strings.Contains(feed, "EXDATE:20240605") {
		t.Fatalf("feed missing EXDATE:\n%s", feed)
	}
}

func TestFeedSkipsPersistedInstances(t *testing.T) {
	feed := ical.Feed([]model.Event{
		{ID: 4, Title: "base", Date: "2024-06-03", Category: model.CategoryWork},
		{ID: 5, Title: "instance", Date: "2024-06-10", Category: model.CategoryWork, OriginalEventID: 4},
	})

	if !strings.Contains(feed, "event-4@gridcal") {
		t.Fatalf("feed missing base event:\n%s", feed)
	}
	if strings.Contains(feed, "event-5@gridcal") {
		t.Fatalf("feed carries a persisted instance:\n%s", feed)
	}
}

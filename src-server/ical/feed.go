// Package ical renders stored events as an iCalendar feed so external
// clients can subscribe to the calendar.
package ical

import (
	"fmt"
	"time"

	"gridcal/src-server/caldate"
	"gridcal/src-server/model"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

// Timed events have no stored duration; the feed advertises this one.
const defaultEventDuration = time.Hour

// Feed serializes base event records into an iCalendar document.
// Recurring events carry an RRULE and their exception dates as
// EXDATEs; records pointing at a base event are skipped since
// subscribers derive instances from the rule.
func Feed(events []model.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gridcal//calendar feed//EN")

	for _, event := range events {
		if event.OriginalEventID != 0 {
			continue
		}
		date, err := caldate.ParseDay(event.Date)
		if err != nil {
			continue
		}

		vevent := cal.AddEvent(fmt.Sprintf("event-%d@gridcal", event.ID))
		vevent.SetDtStampTime(time.Now().UTC())
		vevent.SetSummary(event.Title)
		if event.Description != "" {
			vevent.SetDescription(event.Description)
		}
		vevent.SetProperty(ics.ComponentPropertyCategories, string(event.Category.Normalize()))

		if minutes, err := caldate.ParseClock(event.Time); event.Time != "" && err == nil {
			start := date.Add(time.Duration(minutes) * time.Minute)
			vevent.SetStartAt(start)
			vevent.SetEndAt(start.Add(defaultEventDuration))
		} else {
			vevent.SetAllDayStartAt(date)
			vevent.SetAllDayEndAt(caldate.AddDays(date, 1))
		}

		if !event.IsRecurring {
			continue
		}
		pattern, err := event.Pattern()
		if err != nil || pattern == nil {
			continue
		}
		rule, err := ruleString(pattern)
		if err != nil {
			continue
		}
		vevent.AddRrule(rule)
		for _, exception := range event.Exceptions() {
			if day, err := caldate.ParseDay(exception); err == nil {
				vevent.AddExdate(day.Format("20060102"))
			}
		}
	}

	return cal.Serialize()
}

// icalWeekdays maps the pattern's 0=Sunday .. 6=Saturday indices.
var icalWeekdays = []rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

func ruleString(pattern *model.RecurrencePattern) (string, error) {
	pattern.Normalize()
	option := rrule.ROption{Interval: pattern.Interval}
	switch pattern.Frequency {
	case model.FreqDaily:
		option.Freq = rrule.DAILY
	case model.FreqMonthly:
		option.Freq = rrule.MONTHLY
	case model.FreqWeekly, model.FreqCustom:
		// custom repeats on a weekday selection, which RRULE spells
		// as a weekly BYDAY rule
		option.Freq = rrule.WEEKLY
		for _, day := range pattern.DaysOfWeek {
			if day >= 0 && day < len(icalWeekdays) {
				option.Byweekday = append(option.Byweekday, icalWeekdays[day])
			}
		}
	default:
		return "", fmt.Errorf("ical.ruleString: unknown frequency %q", pattern.Frequency)
	}
	if pattern.Count > 0 {
		option.Count = pattern.Count
	}
	if pattern.EndDate != "" {
		if until, err := caldate.ParseDay(pattern.EndDate); err == nil {
			option.Until = until
		}
	}

	rule, err := rrule.NewRRule(option)
	if err != nil {
		return "", fmt.Errorf("ical.ruleString: %w", err)
	}
	return rule.String(), nil
}

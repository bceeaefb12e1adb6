package model

import (
	"encoding/json"
	"fmt"
	"sort"

	"gridcal/src-server/caldate"

	"github.com/uptrace/bun"
)

// Event is the canonical persisted entity. Dates are naive local
// calendar days in YYYY-MM-DD form; Time is an optional HH:MM clock
// string. Recurrence and ExceptionDates are stored as JSON text
// columns and accessed through Pattern/Exceptions.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          int64    `bun:"id,pk,autoincrement"`
	Title       string   `bun:"title,notnull"` // required
	Description string   `bun:"description"`
	Date        string   `bun:"date,notnull"` // required, YYYY-MM-DD
	Time        string   `bun:"time"`         // HH:MM, optional
	Category    Category `bun:"category,notnull"`

	IsRecurring    bool   `bun:"is_recurring"`
	Recurrence     string `bun:"recurrence"`      // JSON RecurrencePattern
	ExceptionDates string `bun:"exception_dates"` // JSON array of YYYY-MM-DD

	// Zero for a base record; set on materialized instances a client
	// chose to persist, pointing back at the base event.
	OriginalEventID int64 `bun:"original_event_id"`

	CreatedAt int64 `bun:"created_at,notnull"`
	UpdatedAt int64 `bun:"updated_at"`
}

// Validate checks the fields a record must carry before it reaches
// storage or the recurrence engine.
func (e *Event) Validate() error {
	switch {
	case e.Title == "":
		return fmt.Errorf("(*Event).Validate: title is blank")
	case e.Date == "":
		return fmt.Errorf("(*Event).Validate: date is blank")
	case e.IsRecurring && e.Recurrence == "":
		return fmt.Errorf("(*Event).Validate: recurring event has no recurrence pattern")
	}
	if _, err := caldate.ParseDay(e.Date); err != nil {
		return fmt.Errorf("(*Event).Validate: invalid date: %w", err)
	}
	if e.Time != "" {
		if _, err := caldate.ParseClock(e.Time); err != nil {
			return fmt.Errorf("(*Event).Validate: invalid time: %w", err)
		}
	}
	if e.Recurrence != "" {
		pattern, err := e.Pattern()
		if err != nil {
			return fmt.Errorf("(*Event).Validate: %w", err)
		}
		if err := pattern.Validate(); err != nil {
			return fmt.Errorf("(*Event).Validate: %w", err)
		}
	}
	for _, day := range e.Exceptions() {
		if _, err := caldate.ParseDay(day); err != nil {
			return fmt.Errorf("(*Event).Validate: invalid exception date %q: %w", day, err)
		}
	}
	return nil
}

// Normalize coerces fields that rendering must stay total over:
// unknown categories fold to the default, a non-positive interval
// becomes 1.
func (e *Event) Normalize() {
	e.Category = e.Category.Normalize()
	if pattern, err := e.Pattern(); err == nil && pattern != nil {
		pattern.Normalize()
		_ = e.SetPattern(pattern)
	}
}

// Pattern decodes the stored recurrence pattern, nil when absent.
func (e *Event) Pattern() (*RecurrencePattern, error) {
	if e.Recurrence == "" {
		return nil, nil
	}
	pattern := new(RecurrencePattern)
	if err := json.Unmarshal([]byte(e.Recurrence), pattern); err != nil {
		return nil, fmt.Errorf("(*Event).Pattern: %w", err)
	}
	return pattern, nil
}

// SetPattern stores the pattern as the recurrence column; nil clears it.
func (e *Event) SetPattern(pattern *RecurrencePattern) error {
	if pattern == nil {
		e.Recurrence = ""
		return nil
	}
	raw, err := json.Marshal(pattern)
	if err != nil {
		return fmt.Errorf("(*Event).SetPattern: %w", err)
	}
	e.Recurrence = string(raw)
	return nil
}

// Exceptions decodes the stored exception-date list. Malformed JSON
// yields an empty list so rendering stays total.
func (e *Event) Exceptions() []string {
	if e.ExceptionDates == "" {
		return nil
	}
	var days []string
	if err := json.Unmarshal([]byte(e.ExceptionDates), &days); err != nil {
		return nil
	}
	return days
}

// SetExceptions stores the exception-date list, deduplicated and sorted.
func (e *Event) SetExceptions(days []string) error {
	if len(days) == 0 {
		e.ExceptionDates = ""
		return nil
	}
	seen := make(map[string]struct{}, len(days))
	unique := make([]string, 0, len(days))
	for _, day := range days {
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		unique = append(unique, day)
	}
	sort.Strings(unique)
	raw, err := json.Marshal(unique)
	if err != nil {
		return fmt.Errorf("(*Event).SetExceptions: %w", err)
	}
	e.ExceptionDates = string(raw)
	return nil
}

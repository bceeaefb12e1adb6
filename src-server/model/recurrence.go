package model

import (
	"fmt"

	"gridcal/src-server/caldate"
)

type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqCustom  Frequency = "custom"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqCustom:
		return true
	}
	return false
}

// RecurrencePattern describes how a recurring event repeats.
// DaysOfWeek uses 0=Sunday .. 6=Saturday and is meaningful for the
// weekly and custom frequencies. EndDate and Count, when set, bound
// the generated sequence in addition to the caller's window.
type RecurrencePattern struct {
	Frequency  Frequency `json:"frequency"`
	Interval   int       `json:"interval"`
	DaysOfWeek []int     `json:"daysOfWeek,omitempty"`
	EndDate    string    `json:"endDate,omitempty"` // YYYY-MM-DD
	Count      int       `json:"count,omitempty"`
}

func (p *RecurrencePattern) Validate() error {
	switch {
	case !p.Frequency.IsValid():
		return fmt.Errorf("(*RecurrencePattern).Validate: unknown frequency %q", p.Frequency)
	case p.Interval < 0:
		return fmt.Errorf("(*RecurrencePattern).Validate: negative interval %d", p.Interval)
	case p.Count < 0:
		return fmt.Errorf("(*RecurrencePattern).Validate: negative count %d", p.Count)
	}
	for _, day := range p.DaysOfWeek {
		if day < 0 || day > 6 {
			return fmt.Errorf("(*RecurrencePattern).Validate: weekday %d out of range", day)
		}
	}
	if p.EndDate != "" {
		if _, err := caldate.ParseDay(p.EndDate); err != nil {
			return fmt.Errorf("(*RecurrencePattern).Validate: invalid end date: %w", err)
		}
	}
	return nil
}

// Normalize coerces a zero interval to 1 so the expansion loop always
// advances.
func (p *RecurrencePattern) Normalize() {
	if p.Interval < 1 {
		p.Interval = 1
	}
}

package caldate_test

import (
	"testing"
	"time"

	"gridcal/src-server/caldate"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		start time.Time
		n     int
		want  time.Time
	}{
		{day(2024, 1, 1), 4, day(2024, 1, 5)},
		{day(2024, 12, 30), 3, day(2025, 1, 2)},
		{day(2024, 2, 28), 1, day(2024, 2, 29)}, // leap year
		{day(2023, 2, 28), 1, day(2023, 3, 1)},
		{day(2024, 1, 5), -5, day(2023, 12, 31)},
	}
	for _, tt := range tests {
		got := caldate.AddDays(tt.start, tt.n)
		if !got.Equal(tt.want) {
			t.Errorf("AddDays(%v, %d) = %v, want %v", tt.start, tt.n, got, tt.want)
		}
	}
}

func TestAddWeeks(t *testing.T) {
	got := caldate.AddWeeks(day(2024, 1, 1), 2)
	if want := day(2024, 1, 15); !got.Equal(want) {
		t.Errorf("AddWeeks = %v, want %v", got, want)
	}
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		start time.Time
		n     int
		want  time.Time
	}{
		{day(2024, 1, 31), 1, day(2024, 2, 29)}, // leap February
		{day(2023, 1, 31), 1, day(2023, 2, 28)},
		{day(2024, 1, 31), 3, day(2024, 4, 30)},
		{day(2024, 3, 15), 1, day(2024, 4, 15)},
		{day(2024, 11, 30), 2, day(2025, 1, 30)}, // across year boundary
		{day(2024, 10, 31), 13, day(2025, 11, 30)},
	}
	for _, tt := range tests {
		got := caldate.AddMonths(tt.start, tt.n)
		if !got.Equal(tt.want) {
			t.Errorf("AddMonths(%v, %d) = %v, want %v", tt.start, tt.n, got, tt.want)
		}
	}
}

func TestSameDayIgnoresClockAndZone(t *testing.T) {
	loc := time.FixedZone("plus7", 7*3600)
	a := time.Date(2024, 6, 1, 23, 59, 0, 0, loc)
	b := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)
	if !caldate.SameDay(a, b) {
		t.Error("SameDay should compare year/month/day only")
	}
	if caldate.SameDay(day(2024, 6, 1), day(2024, 6, 2)) {
		t.Error("SameDay over different days should be false")
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := caldate.MonthBounds(day(2024, 2, 14))
	if !first.Equal(day(2024, 2, 1)) || !last.Equal(day(2024, 2, 29)) {
		t.Errorf("MonthBounds = %v..%v, want 2024-02-01..2024-02-29", first, last)
	}
}

func TestParseDayRoundTrip(t *testing.T) {
	parsed, err := caldate.ParseDay("2024-03-09")
	if err != nil {
		t.Fatal(err)
	}
	if got := caldate.FormatDay(parsed); got != "2024-03-09" {
		t.Errorf("round trip = %q", got)
	}
	if _, err := caldate.ParseDay("not-a-date"); err == nil {
		t.Error("ParseDay should reject garbage")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:45", 585, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9am", 0, true},
	}
	for _, tt := range tests {
		got, err := caldate.ParseClock(tt.clock)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err = %v, wantErr %v", tt.clock, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.clock, got, tt.want)
		}
	}
}

package service

import (
	"testing"
	"time"
)

func TestCalendarToday(t *testing.T) {
	cal := NewCalendar(testZone)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"afternoon", time.Date(2026, 3, 10, 15, 0, 0, 0, testZone), testToday()},
		{"late evening is still the same day locally", time.Date(2026, 3, 11, 3, 30, 0, 0, time.UTC), testToday()},
		{"just after local midnight", time.Date(2026, 3, 11, 4, 0, 0, 0, time.UTC), testToday().AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			cal.now = func() time.Time { return now }
			if got := cal.Today(); !got.Equal(tt.want) {
				t.Errorf("Today() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalendarDayBounds(t *testing.T) {
	cal := NewCalendar(testZone)

	start, end := cal.DayBounds(testToday())
	wantStart := time.Date(2026, 3, 10, 4, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("day spans %v", end.Sub(start))
	}
}

func TestCalendarIsFuture(t *testing.T) {
	cal := NewCalendar(testZone)
	cal.now = func() time.Time { return testNow }

	tests := []struct {
		date time.Time
		want bool
	}{
		{testToday(), false},
		{testToday().AddDate(0, 0, -1), false},
		{testToday().AddDate(0, 0, 1), true},
		// a calendar date is compared by its Y-M-D, never shifted into the zone
		{time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC), false},
		{time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		if got := cal.IsFuture(tt.date); got != tt.want {
			t.Errorf("IsFuture(%v) = %t, want %t", tt.date, got, tt.want)
		}
	}
}

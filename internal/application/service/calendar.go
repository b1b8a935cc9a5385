package service

import "time"

// Calendar resolves the store's business day. Calendar dates are carried as
// midnight UTC, which is how DATE columns come back from postgres.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar creates a calendar for the store's time zone
func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, now: time.Now}
}

// Now returns the current instant
func (c *Calendar) Now() time.Time {
	return c.now()
}

// Today returns the current business date
func (c *Calendar) Today() time.Time {
	return c.DateOf(c.now())
}

// DateOf returns the business date on which t falls
func (c *Calendar) DateOf(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayBounds returns the instants [start, end) covering a business date
func (c *Calendar) DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, c.loc)
	return start, start.AddDate(0, 0, 1)
}

// IsFuture reports whether the calendar date is after today
func (c *Calendar) IsFuture(date time.Time) bool {
	return civilDate(date).After(c.Today())
}

// civilDate drops the clock and zone of t, keeping its year, month and day.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

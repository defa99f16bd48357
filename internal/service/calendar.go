package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

// Calendar maps wall-clock time onto business days in the shop's location.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar returns a Calendar for loc using the system clock.
func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, now: time.Now}
}

// LoadCalendar resolves an IANA zone name such as "Europe/Istanbul".
func LoadCalendar(name string) (*Calendar, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return NewCalendar(loc), nil
}

// WithClock returns a copy of c that reads the current time from now.
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	return &Calendar{loc: c.loc, now: now}
}

func (c *Calendar) Location() *time.Location { return c.loc }

func (c *Calendar) Now() time.Time { return c.now().In(c.loc) }

func (c *Calendar) Today() BusinessDay { return c.DayOf(c.now()) }

func (c *Calendar) DayOf(t time.Time) BusinessDay {
	y, m, d := t.In(c.loc).Date()
	return BusinessDay{Year: y, Month: m, Day: d, loc: c.loc}
}

// ParseDay parses a YYYY-MM-DD string in the calendar's location.
func (c *Calendar) ParseDay(s string) (BusinessDay, error) {
	t, err := time.ParseInLocation(dateLayout, s, c.loc)
	if err != nil {
		return BusinessDay{}, ErrInvalidDate
	}
	return c.DayOf(t), nil
}

// Month returns the first and last business day of a calendar month.
func (c *Calendar) Month(year int, month time.Month) (BusinessDay, BusinessDay) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, c.loc)
	last := first.AddDate(0, 1, -1)
	return c.DayOf(first), c.DayOf(last)
}

// BusinessDay is one calendar date in the shop's location.
type BusinessDay struct {
	Year  int
	Month time.Month
	Day   int
	loc   *time.Location
}

func (d BusinessDay) location() *time.Location {
	if d.loc == nil {
		return time.UTC
	}
	return d.loc
}

// Start is local midnight at the beginning of the day.
func (d BusinessDay) Start() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, d.location())
}

// End is the exclusive upper bound: local midnight of the next day.
func (d BusinessDay) End() time.Time {
	return time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, d.location())
}

func (d BusinessDay) String() string {
	return d.Start().Format(dateLayout)
}

func (d BusinessDay) PgDate() pgtype.Date {
	return pgtype.Date{Time: time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// LockKey identifies the day for pg_advisory_xact_lock, e.g. 20240315.
func (d BusinessDay) LockKey() int64 {
	return int64(d.Year)*10000 + int64(d.Month)*100 + int64(d.Day)
}

func (d BusinessDay) Before(o BusinessDay) bool {
	return d.LockKey() < o.LockKey()
}

// FormatDate renders a DATE column as YYYY-MM-DD.
func FormatDate(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(dateLayout)
}

package calendar

import (
	"errors"
	"time"
)

// ErrInvalidDate is returned when calendar components do not form a real
// date (month 13, February 30 and so on).
var ErrInvalidDate = errors.New("invalid calendar date")

// DateSpan is an inclusive range of calendar dates.
type DateSpan struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of dates covered by the span.
func (s DateSpan) Days() int {
	count := 0
	for d := s.Start; !d.After(s.End); d = d.AddDate(0, 0, 1) {
		count++
	}
	return count
}

// NewDate builds a midnight time from calendar components, rejecting
// components that time.Date would silently normalize.
func NewDate(year, month, day int, loc *time.Location) (time.Time, error) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// DateOf truncates t to midnight of its calendar date.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolveMonthAnchor returns the first day of the requested month, or of the
// month containing today when year/month are absent.
func ResolveMonthAnchor(year, month *int, today time.Time) (time.Time, error) {
	if year != nil && month != nil {
		return NewDate(*year, *month, 1, today.Location())
	}
	return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()), nil
}

// ResolveWeekAnchor returns the Monday that starts week number week of year,
// or today's date when either parameter is absent.
//
// Week 1 starts on the first Monday on or after January 1 (offset zero when
// January 1 is itself a Monday). This deliberately does not match ISO-8601,
// which keys week 1 to the first Thursday.
func ResolveWeekAnchor(year, week *int, today time.Time) (time.Time, error) {
	if year == nil || week == nil {
		return DateOf(today), nil
	}
	jan1 := time.Date(*year, time.January, 1, 0, 0, 0, 0, today.Location())
	offset := (int(time.Monday) - int(jan1.Weekday()) + 7) % 7
	firstMonday := jan1.AddDate(0, 0, offset)
	return firstMonday.AddDate(0, 0, (*week-1)*7), nil
}

// ResolveDayAnchor returns the requested date, or today's date when any of
// the components is absent.
func ResolveDayAnchor(year, month, day *int, today time.Time) (time.Time, error) {
	if year != nil && month != nil && day != nil {
		return NewDate(*year, *month, *day, today.Location())
	}
	return DateOf(today), nil
}

// MonthGridSpan expands the anchor's month to whole weeks: the span starts on
// the Sunday on or before the first of the month and ends on the Saturday on
// or after the last of the month, so it may include up to six days from each
// adjacent month.
func MonthGridSpan(anchor time.Time) DateSpan {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)
	return DateSpan{
		Start: first.AddDate(0, 0, -int(first.Weekday())),
		End:   last.AddDate(0, 0, 6-int(last.Weekday())),
	}
}

// WeekSpan returns the Sunday-aligned week containing the anchor date.
func WeekSpan(anchor time.Time) DateSpan {
	start := DateOf(anchor).AddDate(0, 0, -int(anchor.Weekday()))
	return DateSpan{Start: start, End: start.AddDate(0, 0, 6)}
}

// WeekNumberOf numbers weeks with the first-day rule anchored on Sunday:
// week 1 is the (possibly partial) week containing January 1, and each later
// week begins on a Sunday.
func WeekNumberOf(date time.Time) int {
	jan1 := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
	return (date.YearDay()-1+int(jan1.Weekday()))/7 + 1
}

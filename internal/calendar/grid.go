package calendar

import (
	"sort"
	"time"
)

const (
	firstHour = 6
	lastHour  = 22
)

// CalendarHours returns the hour rows drawn by the week and day views,
// 6:00 through 22:00. Events outside this window are still listed; the
// hour scaffold simply does not extend to them.
func CalendarHours() []int {
	hours := make([]int, 0, lastHour-firstHour+1)
	for h := firstHour; h <= lastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// sortEvents orders by start time ascending with id as the tie-break, so
// same-instant events keep their insertion order.
func sortEvents(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartDateTime.Equal(sorted[j].StartDateTime) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].StartDateTime.Before(sorted[j].StartDateTime)
	})
	return sorted
}

// eventsOn keeps the events whose start falls on the given calendar date,
// ignoring the time of day.
func eventsOn(events []Event, date time.Time) []Event {
	day := make([]Event, 0)
	for _, e := range events {
		if sameDate(e.StartDateTime, date) {
			day = append(day, e)
		}
	}
	return day
}

// BuildMonthGrid walks the week-aligned span and buckets events into day
// cells, one week per row. Cells outside targetMonth are flagged so the
// presentation can dim them.
func BuildMonthGrid(span DateSpan, targetMonth time.Month, events []Event, today time.Time) [][]DayCell {
	sorted := sortEvents(events)
	weeks := make([][]DayCell, 0, span.Days()/7)
	current := span.Start
	for !current.After(span.End) {
		week := make([]DayCell, 0, 7)
		for i := 0; i < 7; i++ {
			week = append(week, DayCell{
				Day:            current.Day(),
				Date:           current,
				IsCurrentMonth: current.Month() == targetMonth,
				IsToday:        sameDate(current, today),
				Events:         eventsOn(sorted, current),
			})
			current = current.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// BuildWeekColumns produces one column per day of the 7-day span.
func BuildWeekColumns(span DateSpan, events []Event, today time.Time) []DayColumn {
	sorted := sortEvents(events)
	days := make([]DayColumn, 0, 7)
	for i := 0; i < 7; i++ {
		date := span.Start.AddDate(0, 0, i)
		days = append(days, DayColumn{
			Date:    date,
			DayName: date.Format("Mon, Jan 2"),
			IsToday: sameDate(date, today),
			Events:  eventsOn(sorted, date),
		})
	}
	return days
}

// BuildDayView lists a single day's events in start order.
func BuildDayView(date time.Time, events []Event, today time.Time) DayView {
	return DayView{
		Date:          date,
		DateFormatted: date.Format("Monday, January 2, 2006"),
		IsToday:       sameDate(date, today),
		Events:        sortEvents(events),
		Hours:         CalendarHours(),
	}
}

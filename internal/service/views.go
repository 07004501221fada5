package service

import (
	"time"

	"calmanage/internal/calendar"
	"calmanage/internal/models"
)

// MonthView resolves the anchor, expands it to a week-aligned span, fetches
// the events starting within it and builds the grid. The caller supplies
// today so the result is deterministic.
func (s *Calendar) MonthView(year, month *int, today time.Time) (*calendar.MonthView, error) {
	anchor, err := calendar.ResolveMonthAnchor(year, month, today)
	if err != nil {
		return nil, err
	}
	span := calendar.MonthGridSpan(anchor)
	events, err := s.repo.EventsStartingBetween(span.Start, span.End.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return &calendar.MonthView{
		Year:      anchor.Year(),
		Month:     int(anchor.Month()),
		MonthName: anchor.Format("January 2006"),
		Weeks:     calendar.BuildMonthGrid(span, anchor.Month(), toCalendarEvents(events), today),
	}, nil
}

func (s *Calendar) WeekView(year, week *int, today time.Time) (*calendar.WeekView, error) {
	anchor, err := calendar.ResolveWeekAnchor(year, week, today)
	if err != nil {
		return nil, err
	}
	span := calendar.WeekSpan(anchor)
	events, err := s.repo.EventsStartingBetween(span.Start, span.Start.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	return &calendar.WeekView{
		Year:      span.Start.Year(),
		Week:      calendar.WeekNumberOf(span.Start),
		StartDate: span.Start,
		EndDate:   span.End,
		Days:      calendar.BuildWeekColumns(span, toCalendarEvents(events), today),
		Hours:     calendar.CalendarHours(),
	}, nil
}

func (s *Calendar) DayView(year, month, day *int, today time.Time) (*calendar.DayView, error) {
	date, err := calendar.ResolveDayAnchor(year, month, day, today)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.EventsStartingBetween(date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	view := calendar.BuildDayView(date, toCalendarEvents(events), today)
	return &view, nil
}

// UserSummary is the compact user shape embedded in detail views.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AttendeeInfo struct {
	UserID uint                  `json:"user_id"`
	Name   string                `json:"name"`
	Email  string                `json:"email"`
	Status models.ResponseStatus `json:"status"`
}

type EventDetailsView struct {
	Event     calendar.Event `json:"event"`
	CreatedBy UserSummary    `json:"created_by"`
	Attendees []AttendeeInfo `json:"attendees"`
}

func (s *Calendar) EventDetails(id uint) (*EventDetailsView, error) {
	event, err := s.repo.EventDetails(id)
	if err != nil {
		return nil, err
	}
	attendees := make([]AttendeeInfo, 0, len(event.Attendees))
	for _, a := range event.Attendees {
		attendees = append(attendees, AttendeeInfo{
			UserID: a.UserID,
			Name:   a.User.Name,
			Email:  a.User.Email,
			Status: a.ResponseStatus,
		})
	}
	return &EventDetailsView{
		Event: toCalendarEvent(*event),
		CreatedBy: UserSummary{
			ID:    event.CreatedBy.ID,
			Name:  event.CreatedBy.Name,
			Email: event.CreatedBy.Email,
		},
		Attendees: attendees,
	}, nil
}

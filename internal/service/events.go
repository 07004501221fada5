package service

import (
	"errors"
	"fmt"

	"calmanage/internal/calendar"
	"calmanage/internal/models"
	"calmanage/internal/repository"
)

// CreateEvent validates the time window, checks the creator exists, stores
// the event and inserts its attendee rows. The two writes are sequential,
// not transactional: an attendee failure after a successful event insert is
// reported, never rolled back.
func (s *Calendar) CreateEvent(input EventInput) (*models.CalendarEvent, error) {
	if err := calendar.ValidateEventWindow(input.StartDateTime, input.EndDateTime); err != nil {
		return nil, err
	}
	if _, err := s.repo.UserByID(input.CreatedByID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}

	event := &models.CalendarEvent{
		Title:         input.Title,
		Description:   input.Description,
		StartDateTime: input.StartDateTime,
		EndDateTime:   input.EndDateTime,
		Location:      input.Location,
		CreatedByID:   input.CreatedByID,
	}
	if err := s.repo.CreateEvent(event); err != nil {
		return nil, err
	}

	attendeeIDs := calendar.DedupeUserIDs(input.AttendeeIDs)
	if len(attendeeIDs) > 0 {
		if err := s.repo.ReplaceAttendees(event.ID, attendeeIDs); err != nil {
			return nil, fmt.Errorf("event %d stored but attendees were not: %w", event.ID, err)
		}
	}
	return event, nil
}

// UpdateEvent rewrites the mutable fields and replaces the attendee set
// wholesale. CreatedAt and the id never change.
func (s *Calendar) UpdateEvent(id uint, input EventInput) error {
	if err := calendar.ValidateEventWindow(input.StartDateTime, input.EndDateTime); err != nil {
		return err
	}
	event, err := s.repo.EventByID(id)
	if err != nil {
		return err
	}
	if _, err := s.repo.UserByID(input.CreatedByID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCreatorNotFound
		}
		return err
	}

	event.Title = input.Title
	event.Description = input.Description
	event.StartDateTime = input.StartDateTime
	event.EndDateTime = input.EndDateTime
	event.Location = input.Location
	event.CreatedByID = input.CreatedByID
	if err := s.repo.SaveEvent(event); err != nil {
		return err
	}

	return s.repo.ReplaceAttendees(id, calendar.DedupeUserIDs(input.AttendeeIDs))
}

func (s *Calendar) DeleteEvent(id uint) error {
	return s.repo.DeleteEvent(id)
}

// SetAttendeeStatus records a reply. Any of the known statuses may be set at
// any time; there are no transition rules.
func (s *Calendar) SetAttendeeStatus(eventID, userID uint, status models.ResponseStatus) error {
	return s.repo.SetAttendeeStatus(eventID, userID, status)
}

// EventsInSpan exposes the raw range read for export feeds, using the same
// inclusive-span convention as the grid views.
func (s *Calendar) EventsInSpan(span calendar.DateSpan) ([]models.CalendarEvent, error) {
	return s.repo.EventsStartingBetween(span.Start, span.End.AddDate(0, 0, 1))
}

// EventRecord loads a stored event with its attendee rows, for export.
func (s *Calendar) EventRecord(id uint) (*models.CalendarEvent, error) {
	return s.repo.EventByID(id)
}

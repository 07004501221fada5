package service

import (
	"errors"
	"time"

	"calmanage/internal/calendar"
	"calmanage/internal/models"
	"calmanage/internal/repository"
)

var (
	// ErrEmailTaken is returned when another user already owns the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserHasEvents blocks deleting a user who still owns events.
	ErrUserHasEvents = errors.New("user has created events")
	// ErrCreatorNotFound is returned when an event references a missing user.
	ErrCreatorNotFound = errors.New("creator not found")
)

// Calendar is the single implementation behind every presentation entry
// point: grid views, event CRUD and user CRUD all go through it.
type Calendar struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Calendar {
	return &Calendar{repo: repo}
}

// EventInput carries the fields a client may set on an event. CreatedAt is
// never part of it; creation time is set once by the store.
type EventInput struct {
	Title         string
	Description   string
	StartDateTime time.Time
	EndDateTime   time.Time
	Location      string
	CreatedByID   uint
	AttendeeIDs   []uint
}

type UserInput struct {
	Name  string
	Email string
}

func toCalendarEvent(e models.CalendarEvent) calendar.Event {
	return calendar.Event{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		StartDateTime: e.StartDateTime,
		EndDateTime:   e.EndDateTime,
		Location:      e.Location,
	}
}

func toCalendarEvents(events []models.CalendarEvent) []calendar.Event {
	out := make([]calendar.Event, 0, len(events))
	for _, e := range events {
		out = append(out, toCalendarEvent(e))
	}
	return out
}

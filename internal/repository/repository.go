package repository

import (
	"errors"
	"time"

	"calmanage/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. A record
// deleted between load and save surfaces as this error too; callers do not
// retry.
var ErrNotFound = errors.New("record not found")

// Repository is the persistence contract consumed by the service layer. The
// calendar core never touches it; it only sees plain records fetched here.
type Repository interface {
	// EventsStartingBetween returns events whose start lies in [from, to),
	// ordered by start time ascending, then id.
	EventsStartingBetween(from, to time.Time) ([]models.CalendarEvent, error)
	// EventByID loads an event with its attendee rows.
	EventByID(id uint) (*models.CalendarEvent, error)
	// EventDetails loads an event with its creator and attendee users.
	EventDetails(id uint) (*models.CalendarEvent, error)
	CreateEvent(event *models.CalendarEvent) error
	SaveEvent(event *models.CalendarEvent) error
	// DeleteEvent removes the event and cascades to its attendee rows.
	DeleteEvent(id uint) error
	// ReplaceAttendees deletes every attendee row of the event and inserts
	// one pending row per user id. There is no partial diffing.
	ReplaceAttendees(eventID uint, userIDs []uint) error
	SetAttendeeStatus(eventID, userID uint, status models.ResponseStatus) error

	UsersOrderedByName() ([]models.User, error)
	UserByID(id uint) (*models.User, error)
	// UserDetails loads a user with created events and attendance rows.
	UserDetails(id uint) (*models.User, error)
	CreateUser(user *models.User) error
	SaveUser(user *models.User) error
	// DeleteUser removes the user and cascades to their attendee rows.
	// Callers must refuse the delete while the user still owns events.
	DeleteUser(id uint) error
	EmailExists(email string, excludeUserID uint) (bool, error)
	CreatedEventCount(userID uint) (int64, error)
}

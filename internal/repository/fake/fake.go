// Package fake is an in-memory Repository used by service and handler tests.
// It mirrors the store's behavior closely enough to matter: range reads are
// ordered by start time then id, and the (event, user) attendee uniqueness
// is enforced on insert.
package fake

import (
	"errors"
	"sort"
	"sync"
	"time"

	"calmanage/internal/models"
	"calmanage/internal/repository"
)

// ErrDuplicateAttendee mimics the composite unique index rejecting a second
// row for the same (event, user) pair.
var ErrDuplicateAttendee = errors.New("duplicate attendee")

var _ repository.Repository = (*Repo)(nil)

type Repo struct {
	mu sync.Mutex

	nextEventID    uint
	nextUserID     uint
	nextAttendeeID uint

	Events    map[uint]models.CalendarEvent
	Users     map[uint]models.User
	Attendees []models.EventAttendee

	// LastRangeFrom/To record the bounds of the most recent range read.
	LastRangeFrom time.Time
	LastRangeTo   time.Time
}

func NewRepo() *Repo {
	return &Repo{
		Events: make(map[uint]models.CalendarEvent),
		Users:  make(map[uint]models.User),
	}
}

func (r *Repo) EventsStartingBetween(from, to time.Time) ([]models.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LastRangeFrom = from
	r.LastRangeTo = to

	events := make([]models.CalendarEvent, 0)
	for _, e := range r.Events {
		if !e.StartDateTime.Before(from) && e.StartDateTime.Before(to) {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartDateTime.Equal(events[j].StartDateTime) {
			return events[i].ID < events[j].ID
		}
		return events[i].StartDateTime.Before(events[j].StartDateTime)
	})
	return events, nil
}

func (r *Repo) attendeesOf(eventID uint) []models.EventAttendee {
	rows := make([]models.EventAttendee, 0)
	for _, a := range r.Attendees {
		if a.EventID == eventID {
			rows = append(rows, a)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (r *Repo) EventByID(id uint) (*models.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.Events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	event.Attendees = r.attendeesOf(id)
	return &event, nil
}

func (r *Repo) EventDetails(id uint) (*models.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.Events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	event.CreatedBy = r.Users[event.CreatedByID]
	attendees := r.attendeesOf(id)
	for i := range attendees {
		attendees[i].User = r.Users[attendees[i].UserID]
	}
	event.Attendees = attendees
	return &event, nil
}

func (r *Repo) CreateEvent(event *models.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextEventID++
	event.ID = r.nextEventID
	event.CreatedAt = time.Now()
	r.Events[event.ID] = *event
	return nil
}

func (r *Repo) SaveEvent(event *models.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Events[event.ID]; !ok {
		return repository.ErrNotFound
	}
	r.Events[event.ID] = *event
	return nil
}

func (r *Repo) DeleteEvent(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.Events, id)
	r.removeAttendees(func(a models.EventAttendee) bool { return a.EventID == id })
	return nil
}

func (r *Repo) removeAttendees(match func(models.EventAttendee) bool) {
	kept := r.Attendees[:0]
	for _, a := range r.Attendees {
		if !match(a) {
			kept = append(kept, a)
		}
	}
	r.Attendees = kept
}

func (r *Repo) ReplaceAttendees(eventID uint, userIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeAttendees(func(a models.EventAttendee) bool { return a.EventID == eventID })
	seen := make(map[uint]bool, len(userIDs))
	for _, userID := range userIDs {
		if seen[userID] {
			return ErrDuplicateAttendee
		}
		seen[userID] = true
		r.nextAttendeeID++
		attendee := models.EventAttendee{
			EventID:        eventID,
			UserID:         userID,
			ResponseStatus: models.StatusPending,
		}
		attendee.ID = r.nextAttendeeID
		r.Attendees = append(r.Attendees, attendee)
	}
	return nil
}

func (r *Repo) SetAttendeeStatus(eventID, userID uint, status models.ResponseStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Attendees {
		if r.Attendees[i].EventID == eventID && r.Attendees[i].UserID == userID {
			r.Attendees[i].ResponseStatus = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *Repo) UsersOrderedByName() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]models.User, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *Repo) UserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.Users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *Repo) UserDetails(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.Users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	created := make([]models.CalendarEvent, 0)
	for _, e := range r.Events {
		if e.CreatedByID == id {
			created = append(created, e)
		}
	}
	sort.Slice(created, func(i, j int) bool {
		if created[i].StartDateTime.Equal(created[j].StartDateTime) {
			return created[i].ID < created[j].ID
		}
		return created[i].StartDateTime.Before(created[j].StartDateTime)
	})
	user.CreatedEvents = created
	for _, a := range r.Attendees {
		if a.UserID == id {
			user.Attendances = append(user.Attendances, a)
		}
	}
	return &user, nil
}

func (r *Repo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextUserID++
	user.ID = r.nextUserID
	user.CreatedAt = time.Now()
	r.Users[user.ID] = *user
	return nil
}

func (r *Repo) SaveUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.Users[user.ID] = *user
	return nil
}

func (r *Repo) DeleteUser(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.Users, id)
	r.removeAttendees(func(a models.EventAttendee) bool { return a.UserID == id })
	return nil
}

func (r *Repo) EmailExists(email string, excludeUserID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if u.Email == email && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repo) CreatedEventCount(userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, e := range r.Events {
		if e.CreatedByID == userID {
			count++
		}
	}
	return count, nil
}

package service

import (
	"time"

	"calmanage/internal/calendar"
	"calmanage/internal/models"
)

func (s *Calendar) Users() ([]models.User, error) {
	return s.repo.UsersOrderedByName()
}

type UserDetailsView struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	CreatedAt       time.Time        `json:"created_at"`
	CreatedEvents   []calendar.Event `json:"created_events"`
	AttendanceCount int              `json:"attendance_count"`
}

func (s *Calendar) UserDetails(id uint) (*UserDetailsView, error) {
	user, err := s.repo.UserDetails(id)
	if err != nil {
		return nil, err
	}
	return &UserDetailsView{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		CreatedAt:       user.CreatedAt,
		CreatedEvents:   toCalendarEvents(user.CreatedEvents),
		AttendanceCount: len(user.Attendances),
	}, nil
}

func (s *Calendar) CreateUser(input UserInput) (*models.User, error) {
	taken, err := s.repo.EmailExists(input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	user := &models.User{Name: input.Name, Email: input.Email}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser changes name and email only; CreatedAt is immutable.
func (s *Calendar) UpdateUser(id uint, input UserInput) error {
	user, err := s.repo.UserByID(id)
	if err != nil {
		return err
	}
	taken, err := s.repo.EmailExists(input.Email, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	user.Name = input.Name
	user.Email = input.Email
	return s.repo.SaveUser(user)
}

// DeleteUser refuses while the user still owns events; their attendee rows
// are cascaded by the repository.
func (s *Calendar) DeleteUser(id uint) error {
	if _, err := s.repo.UserByID(id); err != nil {
		return err
	}
	count, err := s.repo.CreatedEventCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUserHasEvents
	}
	return s.repo.DeleteUser(id)
}

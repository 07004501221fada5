package repository

import (
	"errors"
	"time"

	"calmanage/internal/models"

	"gorm.io/gorm"
)

// GormRepository implements Repository over a gorm connection.
type GormRepository struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func wrap(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *GormRepository) EventsStartingBetween(from, to time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := r.db.
		Where("start_date_time >= ? AND start_date_time < ?", from, to).
		Order("start_date_time ASC, id ASC").
		Find(&events).Error
	return events, err
}

func (r *GormRepository) EventByID(id uint) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := r.db.
		Preload("Attendees", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&event, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &event, nil
}

func (r *GormRepository) EventDetails(id uint) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := r.db.
		Preload("CreatedBy").
		Preload("Attendees", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Attendees.User").
		First(&event, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &event, nil
}

func (r *GormRepository) CreateEvent(event *models.CalendarEvent) error {
	return r.db.Create(event).Error
}

func (r *GormRepository) SaveEvent(event *models.CalendarEvent) error {
	return r.db.Save(event).Error
}

func (r *GormRepository) DeleteEvent(id uint) error {
	// Attendee rows go permanently; re-inviting the same user later must not
	// collide with the composite unique index.
	if err := r.db.Unscoped().Where("event_id = ?", id).Delete(&models.EventAttendee{}).Error; err != nil {
		return err
	}
	result := r.db.Delete(&models.CalendarEvent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) ReplaceAttendees(eventID uint, userIDs []uint) error {
	if err := r.db.Unscoped().Where("event_id = ?", eventID).Delete(&models.EventAttendee{}).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	attendees := make([]models.EventAttendee, 0, len(userIDs))
	for _, userID := range userIDs {
		attendees = append(attendees, models.EventAttendee{
			EventID:        eventID,
			UserID:         userID,
			ResponseStatus: models.StatusPending,
		})
	}
	return r.db.Create(&attendees).Error
}

func (r *GormRepository) SetAttendeeStatus(eventID, userID uint, status models.ResponseStatus) error {
	result := r.db.Model(&models.EventAttendee{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("response_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) UsersOrderedByName() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *GormRepository) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

func (r *GormRepository) UserDetails(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.
		Preload("CreatedEvents", func(db *gorm.DB) *gorm.DB { return db.Order("start_date_time ASC, id ASC") }).
		Preload("Attendances").
		First(&user, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

func (r *GormRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormRepository) SaveUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *GormRepository) DeleteUser(id uint) error {
	if err := r.db.Unscoped().Where("user_id = ?", id).Delete(&models.EventAttendee{}).Error; err != nil {
		return err
	}
	// The user row goes permanently too: a soft-deleted row would keep the
	// email occupying its unique index while EmailExists no longer sees it,
	// breaking re-registration of the freed address.
	result := r.db.Unscoped().Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) EmailExists(email string, excludeUserID uint) (bool, error) {
	query := r.db.Model(&models.User{}).Where("email = ?", email)
	if excludeUserID != 0 {
		query = query.Where("id <> ?", excludeUserID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepository) CreatedEventCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CalendarEvent{}).Where("created_by_id = ?", userID).Count(&count).Error
	return count, err
}

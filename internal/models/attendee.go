package models

import (
	"gorm.io/gorm"
)

// ResponseStatus is the attendee's reply to an invitation. No transition
// rules: any of the three values may be set at any time.
type ResponseStatus string

const (
	StatusPending  ResponseStatus = "pending"
	StatusAccepted ResponseStatus = "accepted"
	StatusDeclined ResponseStatus = "declined"
)

// ParseResponseStatus reports whether s names one of the known statuses.
func ParseResponseStatus(s string) (ResponseStatus, bool) {
	switch ResponseStatus(s) {
	case StatusPending, StatusAccepted, StatusDeclined:
		return ResponseStatus(s), true
	}
	return "", false
}

// EventAttendee links an invited user to an event. An event may not invite
// the same user twice, enforced by the composite unique index.
type EventAttendee struct {
	gorm.Model
	EventID        uint           `gorm:"uniqueIndex:idx_event_attendee;not null"`
	UserID         uint           `gorm:"uniqueIndex:idx_event_attendee;not null"`
	ResponseStatus ResponseStatus `gorm:"size:20;not null;default:pending"`

	User User `gorm:"foreignKey:UserID"`
}

package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name  string `gorm:"size:100;not null"`
	Email string `gorm:"size:200;uniqueIndex;not null"`

	CreatedEvents []CalendarEvent `gorm:"foreignKey:CreatedByID"`
	Attendances   []EventAttendee `gorm:"foreignKey:UserID"`
}

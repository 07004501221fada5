package models

import (
	"time"

	"gorm.io/gorm"
)

type CalendarEvent struct {
	gorm.Model
	Title         string    `gorm:"size:200;not null"`
	Description   string    `gorm:"size:1000"`
	StartDateTime time.Time `gorm:"index;not null"`
	EndDateTime   time.Time `gorm:"not null"`
	Location      string    `gorm:"size:200"`
	CreatedByID   uint      `gorm:"index;not null"`

	CreatedBy User            `gorm:"foreignKey:CreatedByID"`
	Attendees []EventAttendee `gorm:"foreignKey:EventID"`
}

package calendar

import "time"

// Event is the view projection of a stored event; the service layer maps
// persistence records into it so the grid code stays store-free.
type Event struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartDateTime time.Time `json:"start_date_time"`
	EndDateTime   time.Time `json:"end_date_time"`
	Location      string    `json:"location,omitempty"`
}

// DayCell is one rendered day in a month grid.
type DayCell struct {
	Day            int       `json:"day"`
	Date           time.Time `json:"date"`
	IsCurrentMonth bool      `json:"is_current_month"`
	IsToday        bool      `json:"is_today"`
	Events         []Event   `json:"events"`
}

type MonthView struct {
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	MonthName string      `json:"month_name"`
	Weeks     [][]DayCell `json:"weeks"`
}

// DayColumn is one day of a week view.
type DayColumn struct {
	Date    time.Time `json:"date"`
	DayName string    `json:"day_name"`
	IsToday bool      `json:"is_today"`
	Events  []Event   `json:"events"`
}

type WeekView struct {
	Year      int         `json:"year"`
	Week      int         `json:"week"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Days      []DayColumn `json:"days"`
	Hours     []int       `json:"hours"`
}

type DayView struct {
	Date          time.Time `json:"date"`
	DateFormatted string    `json:"date_formatted"`
	IsToday       bool      `json:"is_today"`
	Events        []Event   `json:"events"`
	Hours         []int     `json:"hours"`
}

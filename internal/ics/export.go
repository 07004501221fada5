package ics

import (
	"fmt"

	ical "github.com/arran4/golang-ical"

	"calmanage/internal/models"
)

const prodID = "-//calmanage//calendar//EN"

func addEvent(cal *ical.Calendar, event models.CalendarEvent) {
	e := cal.AddEvent(fmt.Sprintf("event-%d@calmanage", event.ID))
	e.SetCreatedTime(event.CreatedAt)
	e.SetDtStampTime(event.CreatedAt)
	e.SetStartAt(event.StartDateTime)
	e.SetEndAt(event.EndDateTime)
	e.SetSummary(event.Title)
	if event.Description != "" {
		e.SetDescription(event.Description)
	}
	if event.Location != "" {
		e.SetLocation(event.Location)
	}
}

// ExportEvent serializes a single event as an iCalendar document.
func ExportEvent(event models.CalendarEvent) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)
	addEvent(cal, event)
	return cal.Serialize()
}

// ExportFeed serializes a list of events as one iCalendar feed.
func ExportFeed(events []models.CalendarEvent) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)
	for _, event := range events {
		addEvent(cal, event)
	}
	return cal.Serialize()
}

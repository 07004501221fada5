package handlers

import (
	"net/http"
	"time"

	"calmanage/internal/calendar"
	"calmanage/internal/ics"
	"calmanage/internal/service"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	svc *service.Calendar
}

func NewCalendarHandler(svc *service.Calendar) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// Month renders the month grid
// @Summary		Month view
// @Description	Returns the week-aligned month grid with events bucketed per day; defaults to the current month
// @Tags			calendar
// @Produce		json
// @Param			year	path		int	false	"Year"
// @Param			month	path		int	false	"Month (1-12)"
// @Success		200		{object}	calendar.MonthView	"Month grid"
// @Failure		400		{object}	response.ErrorResponse	"Invalid date (INVALID_DATE)"
// @Failure		500		{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/calendar/month/{year}/{month} [get]
func (h *CalendarHandler) Month(c *gin.Context) {
	year, ok := optionalIntParam(c, "year")
	if !ok {
		invalidDate(c)
		return
	}
	month, ok := optionalIntParam(c, "month")
	if !ok {
		invalidDate(c)
		return
	}

	view, err := h.svc.MonthView(year, month, time.Now())
	if err != nil {
		handleServiceError(c, err, "EVENT_NOT_FOUND", "Event not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Week renders the week columns
// @Summary		Week view
// @Description	Returns seven day columns for the requested week number; defaults to the week containing today
// @Tags			calendar
// @Produce		json
// @Param			year	path		int	false	"Year"
// @Param			week	path		int	false	"Week number"
// @Success		200		{object}	calendar.WeekView	"Week columns"
// @Failure		400		{object}	response.ErrorResponse	"Invalid date (INVALID_DATE)"
// @Failure		500		{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/calendar/week/{year}/{week} [get]
func (h *CalendarHandler) Week(c *gin.Context) {
	year, ok := optionalIntParam(c, "year")
	if !ok {
		invalidDate(c)
		return
	}
	week, ok := optionalIntParam(c, "week")
	if !ok {
		invalidDate(c)
		return
	}

	view, err := h.svc.WeekView(year, week, time.Now())
	if err != nil {
		handleServiceError(c, err, "EVENT_NOT_FOUND", "Event not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Day renders a single day
// @Summary		Day view
// @Description	Returns the events of one day ordered by start time; defaults to today
// @Tags			calendar
// @Produce		json
// @Param			year	path		int	false	"Year"
// @Param			month	path		int	false	"Month (1-12)"
// @Param			day	path		int	false	"Day of month"
// @Success		200		{object}	calendar.DayView	"Day view"
// @Failure		400		{object}	response.ErrorResponse	"Invalid date (INVALID_DATE)"
// @Failure		500		{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/calendar/day/{year}/{month}/{day} [get]
func (h *CalendarHandler) Day(c *gin.Context) {
	year, ok := optionalIntParam(c, "year")
	if !ok {
		invalidDate(c)
		return
	}
	month, ok := optionalIntParam(c, "month")
	if !ok {
		invalidDate(c)
		return
	}
	day, ok := optionalIntParam(c, "day")
	if !ok {
		invalidDate(c)
		return
	}

	view, err := h.svc.DayView(year, month, day, time.Now())
	if err != nil {
		handleServiceError(c, err, "EVENT_NOT_FOUND", "Event not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ExportFeed serves an iCalendar feed
// @Summary		iCalendar feed
// @Description	Exports the events of a date range as an .ics feed; defaults to the current month's grid span, and a missing bound is filled from the supplied date's month grid
// @Tags			calendar
// @Produce		text/calendar
// @Param			from	query		string	false	"Range start (YYYY-MM-DD)"
// @Param			to	query		string	false	"Range end inclusive (YYYY-MM-DD)"
// @Success		200		{string}	string	"iCalendar document"
// @Failure		400		{object}	response.ErrorResponse	"Invalid date (INVALID_DATE)"
// @Failure		500		{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/calendar/export.ics [get]
func (h *CalendarHandler) ExportFeed(c *gin.Context) {
	now := time.Now()
	span := calendar.MonthGridSpan(now)
	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw != "" {
		from, err := time.ParseInLocation("2006-01-02", fromRaw, now.Location())
		if err != nil {
			invalidDate(c)
			return
		}
		// A missing bound is derived from the supplied one's month grid, so a
		// half-specified range never inverts into an empty feed.
		span = calendar.MonthGridSpan(from)
		span.Start = from
	}
	if toRaw != "" {
		to, err := time.ParseInLocation("2006-01-02", toRaw, now.Location())
		if err != nil {
			invalidDate(c)
			return
		}
		if fromRaw == "" {
			span = calendar.MonthGridSpan(to)
		}
		span.End = to
	}
	if span.End.Before(span.Start) {
		invalidDate(c)
		return
	}

	events, err := h.svc.EventsInSpan(span)
	if err != nil {
		handleServiceError(c, err, "EVENT_NOT_FOUND", "Event not found")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics.ExportFeed(events)))
}

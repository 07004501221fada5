package handlers

import (
	"net/http"
	"time"

	"calmanage/internal/ics"
	"calmanage/internal/models"
	"calmanage/internal/response"
	"calmanage/internal/service"
	"calmanage/internal/ws"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	svc *service.Calendar
}

func NewEventHandler(svc *service.Calendar) *EventHandler {
	return &EventHandler{svc: svc}
}

type EventRequest struct {
	Title         string    `json:"title" binding:"required,max=200"`
	Description   string    `json:"description" binding:"omitempty,max=1000"`
	StartDateTime time.Time `json:"start_date_time" binding:"required"`
	EndDateTime   time.Time `json:"end_date_time" binding:"required"`
	Location      string    `json:"location" binding:"omitempty,max=200"`
	CreatedByID   uint      `json:"created_by_id" binding:"required"`
	AttendeeIDs   []uint    `json:"attendee_ids"`
}

func (r EventRequest) toInput() service.EventInput {
	return service.EventInput{
		Title:         r.Title,
		Description:   r.Description,
		StartDateTime: r.StartDateTime,
		EndDateTime:   r.EndDateTime,
		Location:      r.Location,
		CreatedByID:   r.CreatedByID,
		AttendeeIDs:   r.AttendeeIDs,
	}
}

// Create stores a new event
// @Summary		Create event
// @Description	Creates an event and invites the listed users; duplicate attendee ids collapse to one invitation
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			event	body		EventRequest	true	"Event fields"
// @Success		201		{object}	response.CreatedResponse	"Event stored"
// @Failure		400		{object}	response.ErrorResponse	"Validation failure (VALIDATION_ERROR, INVALID_TIME_WINDOW)"
// @Failure		404		{object}	response.ErrorResponse	"Creator not found (USER_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	event, err := h.svc.CreateEvent(req.toInput())
	if err != nil {
		handleServiceError(c, err, "EVENT_NOT_FOUND", "Event not found")
		return
	}

	ws.HubInstance.BroadcastChange(ws.ChangeMessage{
		EventType: "event_created",
		Data:      gin.H{"event_id": event.ID},
	})

	c.JSON(http.StatusCreated, response.CreatedResponse{
		ID:      event.ID,
		Message: "Event created",
	})
}

// Details returns one event with its attendees
// @Summary		Event details
// @Description	Returns the event, its creator and every attendee with their response status
// @Tags			events
// @Produce		json
// @Param			id	path		int	true	"Event ID"
// @Success		200	{object}	service.EventDetailsView	"Event details"
// @Failure		400	{object}	response.ErrorResponse	"Invalid id (INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Event not found (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/events/{id} [get]
func (h *EventHandler) Details(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Invalid event identifier",
		})
		return
	}

	view, err := h.svc.EventDetails(id)
	if err != nil {
		handleServiceError(c, err, "EVENT_NOT_FOUND", "Event not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update rewrites an event
// @Summary		Update event
// @Description	Rewrites the event fields and replaces its attendee set wholesale
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			id	path		int	true	"Event ID"
// @Param			event	body		EventRequest	true	"Event fields"
// @Success		200	{object}	response.SuccessResponse	"Event updated"
// @Failure		400	{object}	response.ErrorResponse	"Validation failure (VALIDATION_ERROR, INVALID_TIME_WINDOW, INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Event or creator not found (EVENT_NOT_FOUND, USER_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Invalid event identifier",
		})
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	if err := h.svc.UpdateEvent(id, req.toInput()); err != nil {
		handleServiceError(c, err, "EVENT_NOT_FOUND", "Event not found")
		return
	}

	ws.HubInstance.BroadcastChange(ws.ChangeMessage{
		EventType: "event_updated",
		Data:      gin.H{"event_id": id},
	})

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Event updated"})
}

// Delete removes an event
// @Summary		Delete event
// @Description	Deletes the event and its attendee rows
// @Tags			events
// @Produce		json
// @Param			id	path		int	true	"Event ID"
// @Success		200	{object}	response.SuccessResponse	"Event deleted"
// @Failure		400	{object}	response.ErrorResponse	"Invalid id (INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Event not found (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Invalid event identifier",
		})
		return
	}

	if err := h.svc.DeleteEvent(id); err != nil {
		handleServiceError(c, err, "EVENT_NOT_FOUND", "Event not found")
		return
	}

	ws.HubInstance.BroadcastChange(ws.ChangeMessage{
		EventType: "event_deleted",
		Data:      gin.H{"event_id": id},
	})

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Event deleted"})
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetAttendeeStatus records an attendee's reply
// @Summary		Set response status
// @Description	Sets an attendee's response to pending, accepted or declined; no transition rules apply
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			id	path		int	true	"Event ID"
// @Param			userId	path		int	true	"User ID"
// @Param			status	body		StatusRequest	true	"New status"
// @Success		200	{object}	response.SuccessResponse	"Status recorded"
// @Failure		400	{object}	response.ErrorResponse	"Validation failure (VALIDATION_ERROR, INVALID_STATUS, INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Attendee not found (ATTENDEE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/events/{id}/attendees/{userId}/status [put]
func (h *EventHandler) SetAttendeeStatus(c *gin.Context) {
	eventID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Invalid event identifier",
		})
		return
	}
	userID, ok := idParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_USER_ID",
			Message: "Invalid user identifier",
		})
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}
	status, ok := models.ParseResponseStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_STATUS",
			Message: "Status must be pending, accepted or declined",
			Details: "status",
		})
		return
	}

	if err := h.svc.SetAttendeeStatus(eventID, userID, status); err != nil {
		handleServiceError(c, err, "ATTENDEE_NOT_FOUND", "Attendee not found")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Status recorded"})
}

// DownloadICS exports a single event
// @Summary		Event as iCalendar
// @Description	Serves the event as a downloadable .ics file
// @Tags			events
// @Produce		text/calendar
// @Param			id	path		int	true	"Event ID"
// @Success		200	{string}	string	"iCalendar document"
// @Failure		400	{object}	response.ErrorResponse	"Invalid id (INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Event not found (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/events/{id}/ics [get]
func (h *EventHandler) DownloadICS(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Invalid event identifier",
		})
		return
	}

	event, err := h.svc.EventRecord(id)
	if err != nil {
		handleServiceError(c, err, "EVENT_NOT_FOUND", "Event not found")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="event.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics.ExportEvent(*event)))
}

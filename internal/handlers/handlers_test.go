package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"calmanage/internal/models"
	"calmanage/internal/repository/fake"
	"calmanage/internal/response"
	"calmanage/internal/service"
	"calmanage/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	go ws.HubInstance.Run()
	os.Exit(m.Run())
}

// newRouter wires the handlers over an in-memory store, mirroring the route
// table of the real server.
func newRouter(repo *fake.Repo) *gin.Engine {
	svc := service.New(repo)
	calendarHandler := NewCalendarHandler(svc)
	eventHandler := NewEventHandler(svc)
	userHandler := NewUserHandler(svc)

	r := gin.New()

	calendarGroup := r.Group("/api/calendar")
	{
		calendarGroup.GET("/month", calendarHandler.Month)
		calendarGroup.GET("/month/:year/:month", calendarHandler.Month)
		calendarGroup.GET("/week", calendarHandler.Week)
		calendarGroup.GET("/week/:year/:week", calendarHandler.Week)
		calendarGroup.GET("/day", calendarHandler.Day)
		calendarGroup.GET("/day/:year/:month/:day", calendarHandler.Day)
		calendarGroup.GET("/export.ics", calendarHandler.ExportFeed)
	}

	events := r.Group("/api/events")
	{
		events.POST("", eventHandler.Create)
		events.GET("/:id", eventHandler.Details)
		events.PUT("/:id", eventHandler.Update)
		events.DELETE("/:id", eventHandler.Delete)
		events.GET("/:id/ics", eventHandler.DownloadICS)
		events.PUT("/:id/attendees/:userId/status", eventHandler.SetAttendeeStatus)
	}

	users := r.Group("/api/users")
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/:id", userHandler.Details)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Code
}

func seedUser(t *testing.T, repo *fake.Repo, name, email string) uint {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	require.NoError(t, repo.CreateUser(user))
	return user.ID
}

func seedEvent(t *testing.T, repo *fake.Repo, creatorID uint, title string, start time.Time) uint {
	t.Helper()
	event := &models.CalendarEvent{
		Title:         title,
		StartDateTime: start,
		EndDateTime:   start.Add(time.Hour),
		CreatedByID:   creatorID,
	}
	require.NoError(t, repo.CreateEvent(event))
	return event.ID
}

func eventBody(creatorID uint) gin.H {
	return gin.H{
		"title":           "standup",
		"start_date_time": "2026-02-09T09:00:00Z",
		"end_date_time":   "2026-02-09T09:15:00Z",
		"created_by_id":   creatorID,
	}
}

func TestMonthViewEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/api/calendar/month/2026/2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Year      int       `json:"year"`
		Month     int       `json:"month"`
		MonthName string    `json:"month_name"`
		Weeks     [][]gin.H `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 2026, view.Year)
	assert.Equal(t, 2, view.Month)
	assert.Equal(t, "February 2026", view.MonthName)
	require.Len(t, view.Weeks, 4)
	for _, week := range view.Weeks {
		assert.Len(t, week, 7)
	}
}

func TestMonthViewRejectsImpossibleMonth(t *testing.T) {
	r := newRouter(fake.NewRepo())

	w := doJSON(t, r, http.MethodGet, "/api/calendar/month/2026/13", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", errorCode(t, w))

	w = doJSON(t, r, http.MethodGet, "/api/calendar/month/2026/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", errorCode(t, w))
}

func TestDayViewRejectsImpossibleDate(t *testing.T) {
	r := newRouter(fake.NewRepo())

	w := doJSON(t, r, http.MethodGet, "/api/calendar/day/2026/2/30", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", errorCode(t, w))
}

func TestWeekViewEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)

	w := doJSON(t, r, http.MethodGet, "/api/calendar/week/2026/6", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view struct {
		Days  []gin.H `json:"days"`
		Hours []int   `json:"hours"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view.Days, 7)
	assert.Len(t, view.Hours, 17)
}

func TestCreateEventEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	creator := seedUser(t, repo, "Alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/events", eventBody(creator))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.CreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Contains(t, repo.Events, resp.ID)
}

func TestCreateEventRejectsBadWindow(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	creator := seedUser(t, repo, "Alice", "alice@example.com")

	body := eventBody(creator)
	body["end_date_time"] = "2026-02-09T08:00:00Z"

	w := doJSON(t, r, http.MethodPost, "/api/events", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TIME_WINDOW", errorCode(t, w))
	assert.Empty(t, repo.Events)
}

func TestCreateEventRejectsMissingTitle(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	creator := seedUser(t, repo, "Alice", "alice@example.com")

	body := eventBody(creator)
	delete(body, "title")

	w := doJSON(t, r, http.MethodPost, "/api/events", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestCreateEventUnknownCreator(t *testing.T) {
	r := newRouter(fake.NewRepo())

	w := doJSON(t, r, http.MethodPost, "/api/events", eventBody(42))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
}

func TestEventDetailsEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	creator := seedUser(t, repo, "Alice", "alice@example.com")
	eventID := seedEvent(t, repo, creator, "standup", time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC))

	w := doJSON(t, r, http.MethodGet, "/api/events/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view service.EventDetailsView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, eventID, view.Event.ID)
	assert.Equal(t, "standup", view.Event.Title)
	assert.Equal(t, "Alice", view.CreatedBy.Name)
}

func TestEventDetailsNotFound(t *testing.T) {
	r := newRouter(fake.NewRepo())

	w := doJSON(t, r, http.MethodGet, "/api/events/99", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "EVENT_NOT_FOUND", errorCode(t, w))

	w = doJSON(t, r, http.MethodGet, "/api/events/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_EVENT_ID", errorCode(t, w))
}

func TestDeleteEventEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	creator := seedUser(t, repo, "Alice", "alice@example.com")
	seedEvent(t, repo, creator, "standup", time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC))

	w := doJSON(t, r, http.MethodDelete, "/api/events/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.Events)

	w = doJSON(t, r, http.MethodDelete, "/api/events/1", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "EVENT_NOT_FOUND", errorCode(t, w))
}

func TestSetAttendeeStatusEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	creator := seedUser(t, repo, "Alice", "alice@example.com")
	bob := seedUser(t, repo, "Bob", "bob@example.com")
	eventID := seedEvent(t, repo, creator, "standup", time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.ReplaceAttendees(eventID, []uint{bob}))

	w := doJSON(t, r, http.MethodPut, "/api/events/1/attendees/2/status", gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusAccepted, repo.Attendees[0].ResponseStatus)

	w = doJSON(t, r, http.MethodPut, "/api/events/1/attendees/2/status", gin.H{"status": "maybe"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", errorCode(t, w))

	w = doJSON(t, r, http.MethodPut, "/api/events/1/attendees/1/status", gin.H{"status": "declined"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ATTENDEE_NOT_FOUND", errorCode(t, w))
}

func TestDownloadEventICS(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	creator := seedUser(t, repo, "Alice", "alice@example.com")
	seedEvent(t, repo, creator, "standup", time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC))

	w := doJSON(t, r, http.MethodGet, "/api/events/1/ics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "event.ics")
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, w.Body.String(), "SUMMARY:standup")
}

func TestExportFeedEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	creator := seedUser(t, repo, "Alice", "alice@example.com")
	seedEvent(t, repo, creator, "standup", time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC))
	seedEvent(t, repo, creator, "retro", time.Date(2026, 2, 13, 16, 0, 0, 0, time.UTC))

	w := doJSON(t, r, http.MethodGet, "/api/calendar/export.ics?from=2026-02-01&to=2026-02-28", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "SUMMARY:standup")
	assert.Contains(t, body, "SUMMARY:retro")
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))

	w = doJSON(t, r, http.MethodGet, "/api/calendar/export.ics?from=not-a-date", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", errorCode(t, w))
}

func TestExportFeedHalfSpecifiedRange(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	creator := seedUser(t, repo, "Alice", "alice@example.com")
	seedEvent(t, repo, creator, "offsite", time.Date(2031, 7, 15, 9, 0, 0, 0, time.UTC))

	// Only from: the end bound comes from that month's grid, not from the
	// current month, so a far-future start still yields a non-empty feed.
	w := doJSON(t, r, http.MethodGet, "/api/calendar/export.ics?from=2031-07-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SUMMARY:offsite")

	// Only to, same reasoning for the start bound.
	w = doJSON(t, r, http.MethodGet, "/api/calendar/export.ics?to=2031-07-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SUMMARY:offsite")

	// An explicitly inverted range is rejected instead of serving an empty
	// feed.
	w = doJSON(t, r, http.MethodGet, "/api/calendar/export.ics?from=2031-07-31&to=2031-07-01", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", errorCode(t, w))
}

func TestCreateUserEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/users", gin.H{"name": "Alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users", gin.H{"name": "Dup", "email": "alice@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, w))

	w = doJSON(t, r, http.MethodPost, "/api/users", gin.H{"name": "Bad", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestListUsersOrderedByName(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	seedUser(t, repo, "Zoe", "zoe@example.com")
	seedUser(t, repo, "Alice", "alice@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []UserListItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Alice", items[0].Name)
	assert.Equal(t, "Zoe", items[1].Name)
}

func TestUserDetailsEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	alice := seedUser(t, repo, "Alice", "alice@example.com")
	seedEvent(t, repo, alice, "standup", time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC))

	w := doJSON(t, r, http.MethodGet, "/api/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view service.UserDetailsView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Alice", view.Name)
	assert.Len(t, view.CreatedEvents, 1)

	w = doJSON(t, r, http.MethodGet, "/api/users/99", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
}

func TestDeleteUserEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	alice := seedUser(t, repo, "Alice", "alice@example.com")
	seedUser(t, repo, "Bob", "bob@example.com")
	seedEvent(t, repo, alice, "standup", time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC))

	w := doJSON(t, r, http.MethodDelete, "/api/users/1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "USER_HAS_EVENTS", errorCode(t, w))

	w = doJSON(t, r, http.MethodDelete, "/api/users/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, repo.Users, uint(2))
}

func TestUpdateUserEndpoint(t *testing.T) {
	repo := fake.NewRepo()
	r := newRouter(repo)
	seedUser(t, repo, "Alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/users/1", gin.H{"name": "Alice Smith", "email": "alice@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice Smith", repo.Users[1].Name)

	w = doJSON(t, r, http.MethodPut, "/api/users/99", gin.H{"name": "Ghost", "email": "ghost@example.com"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
}

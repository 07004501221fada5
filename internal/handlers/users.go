package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"calmanage/internal/response"
	"calmanage/internal/service"
	"calmanage/internal/storage"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.Calendar
}

func NewUserHandler(svc *service.Calendar) *UserHandler {
	return &UserHandler{svc: svc}
}

type UserRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email,max=200"`
}

type UserListItem struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

const userCacheKey = "users_all"

var cacheCtx = context.Background()

func invalidateUserCache() {
	if storage.RedisClient != nil {
		storage.RedisClient.Del(cacheCtx, userCacheKey)
	}
}

// List returns all users ordered by name
// @Summary		List users
// @Description	Returns every user ordered by name; the result is cached in Redis for five minutes
// @Tags			users
// @Produce		json
// @Success		200	{array}		UserListItem	"Users"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	if storage.RedisClient != nil {
		cached, err := storage.RedisClient.Get(cacheCtx, userCacheKey).Result()
		if err == nil && cached != "" {
			var items []UserListItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				c.JSON(http.StatusOK, items)
				return
			}
		}
	}

	users, err := h.svc.Users()
	if err != nil {
		handleServiceError(c, err, "USER_NOT_FOUND", "User not found")
		return
	}

	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, UserListItem{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		})
	}

	if storage.RedisClient != nil {
		if payload, err := json.Marshal(items); err == nil {
			storage.RedisClient.Set(cacheCtx, userCacheKey, payload, 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, items)
}

// Create registers a user
// @Summary		Create user
// @Description	Creates a user with a globally unique email
// @Tags			users
// @Accept			json
// @Produce		json
// @Param			user	body		UserRequest	true	"User fields"
// @Success		201		{object}	response.CreatedResponse	"User created"
// @Failure		400		{object}	response.ErrorResponse	"Validation failure (VALIDATION_ERROR, EMAIL_EXISTS)"
// @Failure		500		{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	user, err := h.svc.CreateUser(service.UserInput{Name: req.Name, Email: req.Email})
	if err != nil {
		handleServiceError(c, err, "USER_NOT_FOUND", "User not found")
		return
	}
	invalidateUserCache()

	c.JSON(http.StatusCreated, response.CreatedResponse{
		ID:      user.ID,
		Message: "User created",
	})
}

// Details returns one user
// @Summary		User details
// @Description	Returns the user with their created events and attendance count
// @Tags			users
// @Produce		json
// @Param			id	path		int	true	"User ID"
// @Success		200	{object}	service.UserDetailsView	"User details"
// @Failure		400	{object}	response.ErrorResponse	"Invalid id (INVALID_USER_ID)"
// @Failure		404	{object}	response.ErrorResponse	"User not found (USER_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/users/{id} [get]
func (h *UserHandler) Details(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_USER_ID",
			Message: "Invalid user identifier",
		})
		return
	}

	view, err := h.svc.UserDetails(id)
	if err != nil {
		handleServiceError(c, err, "USER_NOT_FOUND", "User not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update changes a user's name and email
// @Summary		Update user
// @Description	Changes name and email; the email must stay globally unique
// @Tags			users
// @Accept			json
// @Produce		json
// @Param			id	path		int	true	"User ID"
// @Param			user	body		UserRequest	true	"User fields"
// @Success		200	{object}	response.SuccessResponse	"User updated"
// @Failure		400	{object}	response.ErrorResponse	"Validation failure (VALIDATION_ERROR, EMAIL_EXISTS, INVALID_USER_ID)"
// @Failure		404	{object}	response.ErrorResponse	"User not found (USER_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_USER_ID",
			Message: "Invalid user identifier",
		})
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	if err := h.svc.UpdateUser(id, service.UserInput{Name: req.Name, Email: req.Email}); err != nil {
		handleServiceError(c, err, "USER_NOT_FOUND", "User not found")
		return
	}
	invalidateUserCache()

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "User updated"})
}

// Delete removes a user
// @Summary		Delete user
// @Description	Deletes the user and their attendee rows; refused while the user still owns events
// @Tags			users
// @Produce		json
// @Param			id	path		int	true	"User ID"
// @Success		200	{object}	response.SuccessResponse	"User deleted"
// @Failure		400	{object}	response.ErrorResponse	"Invalid id or user owns events (INVALID_USER_ID, USER_HAS_EVENTS)"
// @Failure		404	{object}	response.ErrorResponse	"User not found (USER_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (DB_ERROR)"
// @Router			/api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_USER_ID",
			Message: "Invalid user identifier",
		})
		return
	}

	if err := h.svc.DeleteUser(id); err != nil {
		handleServiceError(c, err, "USER_NOT_FOUND", "User not found")
		return
	}
	invalidateUserCache()

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "User deleted"})
}

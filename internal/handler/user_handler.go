package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"goaltracker/internal/errors"
	"goaltracker/internal/service"
)

// UserHandler handles user registration.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body object true "Credentials {username, password}"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ValidationError
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	// Bound as a raw map so the validator can distinguish a missing field
	// from a field of the wrong type.
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.Register(c.Request().Context(), body)
	if err != nil {
		if verr, ok := err.(*errors.ValidationError); ok {
			return c.JSON(verr.Code, verr)
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// PasswordHash is json-tagged out; the body is {id, username} only.
	return c.JSON(http.StatusCreated, user)
}

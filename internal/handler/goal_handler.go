package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"goaltracker/internal/auth"
	"goaltracker/internal/errors"
	"goaltracker/internal/model"
	"goaltracker/internal/service"
)

// GoalHandler handles goal endpoints. All of them run behind the bearer
// token middleware and act only on the authenticated user's own goals.
type GoalHandler struct {
	goalService service.GoalService
	userService service.UserService
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(goalService service.GoalService, userService service.UserService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		userService: userService,
	}
}

// CreateGoalRequest represents a goal creation request. Pointer fields let
// the handler report which required key is absent. There is no owner field:
// ownership always comes from the token.
type CreateGoalRequest struct {
	Goal  *string `json:"goal"`
	Count *uint   `json:"count"`
}

// UpdateGoalRequest represents a goal update request. Count is the only
// mutable field; anything else in the body is ignored.
type UpdateGoalRequest struct {
	ID    string `json:"id"`
	Count *uint  `json:"count"`
}

// currentUser resolves the verified token claims to a user record. A valid
// token for a user that no longer exists is rejected like any other bad
// token.
func (h *GoalHandler) currentUser(c echo.Context) (*model.User, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil, unauthorized()
	}
	user, err := h.userService.GetByUsername(c.Request().Context(), claims.Username())
	if err != nil {
		return nil, unauthorized()
	}
	return user, nil
}

func unauthorized() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "invalid or missing token",
		Code:  "UNAUTHORIZED",
	})
}

func missingField(field string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: fmt.Sprintf("Missing %s in request body", field),
		Code:  "MISSING_FIELD",
	})
}

func parseGoalID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid goal ID",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

// ListGoals godoc
// @Summary List the authenticated user's goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Goal
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goals [get]
func (h *GoalHandler) ListGoals(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	goals, err := h.goalService.ListGoals(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, goals)
}

// GetGoal godoc
// @Summary Get one of the authenticated user's goals by id
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} model.Goal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goal/{id} [get]
func (h *GoalHandler) GetGoal(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	goalID, err := parseGoalID(c)
	if err != nil {
		return err
	}

	goal, err := h.goalService.GetGoal(c.Request().Context(), user.ID, goalID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, goal)
}

// CreateGoal godoc
// @Summary Create a goal owned by the authenticated user
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "Goal data"
// @Success 201 {object} model.Goal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goal [post]
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Goal == nil {
		return missingField("goal")
	}
	if req.Count == nil {
		return missingField("count")
	}

	goal, err := h.goalService.CreateGoal(c.Request().Context(), user.ID, *req.Goal, *req.Count)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, goal)
}

// UpdateGoal godoc
// @Summary Update the count of one of the authenticated user's goals
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param request body UpdateGoalRequest true "Fields to update"
// @Success 200 {object} model.Goal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goal/{id} [put]
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	goalID, err := parseGoalID(c)
	if err != nil {
		return err
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ID != c.Param("id") {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: fmt.Sprintf("Request path id %s and request body id %s values must match", c.Param("id"), req.ID),
			Code:  "ID_MISMATCH",
		})
	}

	goal, err := h.goalService.UpdateGoal(c.Request().Context(), user.ID, goalID, service.GoalPatch{Count: req.Count})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, goal)
}

// DeleteGoal godoc
// @Summary Delete one of the authenticated user's goals
// @Tags goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goal/{id} [delete]
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	goalID, err := parseGoalID(c)
	if err != nil {
		return err
	}

	if err := h.goalService.DeleteGoal(c.Request().Context(), user.ID, goalID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}

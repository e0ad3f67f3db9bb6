package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goaltracker/internal/errors"
	"goaltracker/internal/model"
)

func TestUserHandler_Register(t *testing.T) {
	userID := uuid.New()

	mockService := new(MockUserService)
	mockService.On("Register", mock.Anything, map[string]interface{}{
		"username": "alice",
		"password": "secret1",
	}).Return(&model.User{ID: userID, Username: "alice", PasswordHash: "$2a$10$abc"}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"username":"alice","password":"secret1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewUserHandler(mockService)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["id"])
	assert.Equal(t, "alice", body["username"])
	// Neither plaintext nor hash may ever appear in a response.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")

	mockService.AssertExpectations(t)
}

func TestUserHandler_RegisterValidationError(t *testing.T) {
	mockService := new(MockUserService)
	mockService.On("Register", mock.Anything, mock.Anything).
		Return(nil, errors.NewValidationError("Missing field", "username"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"password":"secret1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewUserHandler(mockService)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body errors.ValidationError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 422, body.Code)
	assert.Equal(t, "ValidationError", body.Reason)
	assert.Equal(t, "Missing field", body.Message)
	assert.Equal(t, "username", body.Location)

	mockService.AssertExpectations(t)
}

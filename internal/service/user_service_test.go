package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "goaltracker/internal/errors"
	"goaltracker/internal/model"
)

func TestUserService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	service := NewUserService(mockRepo, NewPasswordHasher(), nil)

	user, err := service.Register(context.Background(), map[string]interface{}{
		"username": "alice",
		"password": "secret1",
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	mockRepo.AssertExpectations(t)
}

func TestUserService_RegisterValidationFailure(t *testing.T) {
	// No repository expectations: validation failures must not touch storage.
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, NewPasswordHasher(), nil)

	user, err := service.Register(context.Background(), map[string]interface{}{
		"password": "secret1",
	})

	assert.Nil(t, user)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Location)

	mockRepo.AssertExpectations(t)
}

func TestUserService_RegisterDuplicateUsername(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockUserRepository)
	}{
		{
			name: "caught by pre-check",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").
					Return(&model.User{Username: "alice"}, nil)
			},
		},
		{
			// Two concurrent registrations can both pass the pre-check; the
			// unique index turns the second insert into the same 422.
			name: "caught by unique index",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").
					Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(gorm.ErrDuplicatedKey)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, NewPasswordHasher(), nil)

			user, err := service.Register(context.Background(), map[string]interface{}{
				"username": "alice",
				"password": "secret1",
			})

			assert.Nil(t, user)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, 422, verr.Code)
			assert.Equal(t, "ValidationError", verr.Reason)
			assert.Equal(t, "Username already taken", verr.Message)
			assert.Equal(t, "username", verr.Location)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetByUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&model.User{Username: "alice"}, nil)
	mockRepo.On("FindByUsername", mock.Anything, "nobody").
		Return(nil, gorm.ErrRecordNotFound)

	service := NewUserService(mockRepo, NewPasswordHasher(), nil)

	user, err := service.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	user, err = service.GetByUsername(context.Background(), "nobody")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	mockRepo.AssertExpectations(t)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"goaltracker/internal/cache"
	apperrors "goaltracker/internal/errors"
	"goaltracker/internal/model"
	"goaltracker/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService handles registration and identity lookups.
type UserService interface {
	Register(ctx context.Context, body map[string]interface{}) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *CredentialValidator
	hasher    PasswordHasher
	cache     *cache.Client
}

// NewUserService builds a UserService with repository, hasher and cache.
func NewUserService(repo repository.UserRepository, hasher PasswordHasher, cache *cache.Client) UserService {
	return &userService{
		repo:      repo,
		validator: NewCredentialValidator(),
		hasher:    hasher,
		cache:     cache,
	}
}

func (s *userService) cacheKey(username string) string {
	return fmt.Sprintf("user:username:%s", username)
}

// Register validates the raw registration body, hashes the password and
// persists the user. The uniqueness pre-check is only a fast path; the
// database unique index is authoritative, so a concurrent duplicate insert
// still surfaces as the same validation error.
func (s *userService) Register(ctx context.Context, body map[string]interface{}) (*model.User, error) {
	creds, verr := s.validator.Validate(body)
	if verr != nil {
		return nil, verr
	}

	existing, err := s.repo.FindByUsername(ctx, creds.Username)
	if err == nil && existing != nil {
		return nil, apperrors.NewValidationError("Username already taken", "username")
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     creds.Username,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("Username already taken", "username")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// GetByUsername resolves a username to its user record with caching. Token
// verification yields only a username; this lookup turns it into the owner
// id used by every goal operation. Cached entries go through the JSON tags,
// so password hashes never reach redis; credential checks must read the
// repository directly.
func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(username)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(username), payload, userCacheTTL)
	}
	return user, nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goaltracker/internal/cache"
	apperrors "goaltracker/internal/errors"
	"goaltracker/internal/model"
	"goaltracker/internal/repository"
)

const goalListCacheTTL = 5 * time.Minute

// GoalPatch carries the fields a goal update may change. Anything else in a
// request body is dropped before it gets here.
type GoalPatch struct {
	Count *uint
}

// GoalService exposes owner-scoped goal operations. Every method takes the
// requester's resolved user id; there is no way to address another user's
// goals through this interface.
type GoalService interface {
	ListGoals(ctx context.Context, ownerID uuid.UUID) ([]model.Goal, error)
	GetGoal(ctx context.Context, ownerID, id uuid.UUID) (*model.Goal, error)
	CreateGoal(ctx context.Context, ownerID uuid.UUID, description string, count uint) (*model.Goal, error)
	UpdateGoal(ctx context.Context, ownerID, id uuid.UUID, patch GoalPatch) (*model.Goal, error)
	DeleteGoal(ctx context.Context, ownerID, id uuid.UUID) error
}

type goalService struct {
	repo  repository.GoalRepository
	cache *cache.Client
}

// NewGoalService creates a new goal service.
func NewGoalService(repo repository.GoalRepository, cache *cache.Client) GoalService {
	return &goalService{
		repo:  repo,
		cache: cache,
	}
}

func (s *goalService) listCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("goals:%s", ownerID)
}

// ListGoals returns the owner's goals with cache-aside caching per owner.
func (s *goalService) ListGoals(ctx context.Context, ownerID uuid.UUID) ([]model.Goal, error) {
	if data, _ := s.cache.Get(ctx, s.listCacheKey(ownerID)); data != nil {
		var cached []model.Goal
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	goals, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(goals); err == nil {
		_ = s.cache.Set(ctx, s.listCacheKey(ownerID), payload, goalListCacheTTL)
	}
	return goals, nil
}

func (s *goalService) GetGoal(ctx context.Context, ownerID, id uuid.UUID) (*model.Goal, error) {
	goal, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// CreateGoal persists a goal owned by the requester. The owner comes from
// the verified identity, never from the request body.
func (s *goalService) CreateGoal(ctx context.Context, ownerID uuid.UUID, description string, count uint) (*model.Goal, error) {
	goal := &model.Goal{
		UserID: ownerID,
		Goal:   description,
		Count:  count,
	}
	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return goal, nil
}

// UpdateGoal applies the patch to the owner's goal and returns the updated
// record. An empty patch is a no-op read.
func (s *goalService) UpdateGoal(ctx context.Context, ownerID, id uuid.UUID, patch GoalPatch) (*model.Goal, error) {
	if patch.Count != nil {
		affected, err := s.repo.UpdateCount(ctx, id, ownerID, *patch.Count)
		if err != nil {
			return nil, fmt.Errorf("update goal: %w", err)
		}
		if affected == 0 {
			// Count may already hold the requested value; only report not
			// found when the goal really is absent for this owner.
			if _, err := s.repo.FindByIDAndOwner(ctx, id, ownerID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil, apperrors.ErrGoalNotFound
				}
				return nil, err
			}
		}
		_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	}

	return s.GetGoal(ctx, ownerID, id)
}

func (s *goalService) DeleteGoal(ctx context.Context, ownerID, id uuid.UUID) error {
	deleted, err := s.repo.DeleteByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if !deleted {
		return apperrors.ErrGoalNotFound
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return nil
}

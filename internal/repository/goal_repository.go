package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"goaltracker/internal/model"
)

// GoalRepository defines goal persistence operations. Every lookup and
// mutation that targets a single goal is constrained by owner as well as id,
// so a goal belonging to another user is indistinguishable from a missing
// one at this layer already.
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Goal, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Goal, error)
	UpdateCount(ctx context.Context, id, ownerID uuid.UUID, count uint) (int64, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository builds a GORM-backed repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Goal, error) {
	var goals []model.Goal
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Goal, error) {
	var goal model.Goal
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateCount sets the count column and reports how many rows matched. Zero
// means the goal does not exist for this owner.
func (r *goalRepository) UpdateCount(ctx context.Context, id, ownerID uuid.UUID, count uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Goal{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("count", count)
	return res.RowsAffected, res.Error
}

func (r *goalRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Goal{})
	return res.RowsAffected > 0, res.Error
}

package repository

import (
	"context"

	"github.com/pathlight/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalRepository handles goal data access
type GoalRepository struct {
	db    *gorm.DB
	goals Collection[models.Goal]
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{
		db:    db,
		goals: NewCollection[models.Goal](db, ""),
	}
}

// GetByUserID retrieves the goal of a user
func (r *GoalRepository) GetByUserID(ctx context.Context, userID models.ID) (*models.Goal, error) {
	return r.goals.FindOne(ctx, Filter{"user_id": userID})
}

// Upsert inserts goal, or updates goal_type and updated_at of the existing goal
// of the same user. It is a single statement guarded by the unique index on
// user_id, so concurrent calls never produce two rows. The stored goal is returned.
func (r *GoalRepository) Upsert(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	if goal.ID.IsZero() {
		goal.ID = models.NewID()
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"goal_type", "updated_at"}),
	}).Create(goal).Error
	if err != nil {
		return nil, err
	}

	return r.GetByUserID(ctx, goal.UserID)
}

// Count returns how many goals a user has. It is never more than one.
func (r *GoalRepository) Count(ctx context.Context, userID models.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Goal{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

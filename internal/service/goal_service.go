package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pathlight/internal/models"
	"github.com/pathlight/internal/repository"
)

// GoalService handles the payoff goal of an authenticated owner
type GoalService struct {
	goalRepo *repository.GoalRepository
	now      func() time.Time
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		now:      utcNow,
	}
}

// UpsertGoalRequest represents the set goal request
type UpsertGoalRequest struct {
	GoalType string `json:"goalType" binding:"required,max=100"`
}

// GetGoal retrieves the goal of a user. A user without a goal gets nil, nil.
func (s *GoalService) GetGoal(ctx context.Context, userID models.ID) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return goal, nil
}

// UpsertGoal sets the goal type of a user, creating the goal on first use
func (s *GoalService) UpsertGoal(ctx context.Context, userID models.ID, req *UpsertGoalRequest) (*models.Goal, error) {
	now := s.now()
	goal, err := s.goalRepo.Upsert(ctx, &models.Goal{
		ID:        models.NewID(),
		UserID:    userID,
		GoalType:  req.GoalType,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert goal: %w", err)
	}
	return goal, nil
}

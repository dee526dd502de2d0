package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pathlight/internal/models"
	"github.com/pathlight/internal/repository"
)

var (
	ErrDebtNotFound = errors.New("debt not found")
)

// DebtService handles debt operations for an authenticated owner
type DebtService struct {
	debtRepo *repository.DebtRepository
	now      func() time.Time
}

// NewDebtService creates a new DebtService
func NewDebtService(debtRepo *repository.DebtRepository) *DebtService {
	return &DebtService{
		debtRepo: debtRepo,
		now:      utcNow,
	}
}

// CreateDebtRequest represents the create debt request
type CreateDebtRequest struct {
	DebtType             string   `json:"debtType" binding:"required,max=100"`
	Name                 *string  `json:"name" binding:"omitempty,max=255"`
	CurrentBalance       *float64 `json:"currentBalance" binding:"required"`
	AnnualPercentageRate *float64 `json:"annualPercentageRate" binding:"required"`
	MinimumPayment       *float64 `json:"minimumPayment" binding:"required"`
}

// ListDebts retrieves the debts of a user
func (s *DebtService) ListDebts(ctx context.Context, userID models.ID) ([]models.Debt, error) {
	return s.debtRepo.ListByUserID(ctx, userID)
}

// CreateDebt creates a debt owned by userID
func (s *DebtService) CreateDebt(ctx context.Context, userID models.ID, req *CreateDebtRequest) (*models.Debt, error) {
	now := s.now()
	debt := &models.Debt{
		ID:                   models.NewID(),
		UserID:               userID,
		DebtType:             req.DebtType,
		Name:                 req.Name,
		CurrentBalance:       *req.CurrentBalance,
		AnnualPercentageRate: *req.AnnualPercentageRate,
		MinimumPayment:       *req.MinimumPayment,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.debtRepo.Create(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	return debt, nil
}

// UpdateDebt applies patch to a debt owned by userID. An empty patch writes
// nothing and returns the debt as stored. A patch that nulls a required field
// fails with models.ErrNullField.
func (s *DebtService) UpdateDebt(ctx context.Context, userID models.ID, rawID string, patch *models.DebtPatch) (*models.Debt, error) {
	debtID, err := models.ParseID(rawID)
	if err != nil {
		return nil, err
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.getOwned(ctx, debtID, userID)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return existing, nil
	}

	fields := repository.Fields(patch.Fields())
	fields["updated_at"] = s.now()

	if err := s.debtRepo.UpdateByIDAndUserID(ctx, debtID, userID, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDebtNotFound
		}
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	return s.getOwned(ctx, debtID, userID)
}

// DeleteDebt deletes a debt owned by userID
func (s *DebtService) DeleteDebt(ctx context.Context, userID models.ID, rawID string) error {
	debtID, err := models.ParseID(rawID)
	if err != nil {
		return err
	}

	if err := s.debtRepo.DeleteByIDAndUserID(ctx, debtID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDebtNotFound
		}
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return nil
}

func (s *DebtService) getOwned(ctx context.Context, debtID, userID models.ID) (*models.Debt, error) {
	debt, err := s.debtRepo.GetByIDAndUserID(ctx, debtID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDebtNotFound
		}
		return nil, err
	}
	return debt, nil
}

// utcNow truncates to microseconds, the precision postgres keeps
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

package repository

import (
	"context"

	"github.com/pathlight/internal/models"
	"gorm.io/gorm"
)

// MaxDebtsPerList caps how many debts a single list call returns
const MaxDebtsPerList = 100

// DebtRepository handles debt data access. Every query is scoped to an owner.
type DebtRepository struct {
	debts Collection[models.Debt]
}

// NewDebtRepository creates a new DebtRepository
func NewDebtRepository(db *gorm.DB) *DebtRepository {
	return &DebtRepository{
		debts: NewCollection[models.Debt](db, "created_at ASC"),
	}
}

// Create creates a new debt
func (r *DebtRepository) Create(ctx context.Context, debt *models.Debt) error {
	if debt.ID.IsZero() {
		debt.ID = models.NewID()
	}
	_, err := r.debts.InsertOne(ctx, debt)
	return err
}

// ListByUserID retrieves up to MaxDebtsPerList debts of a user in insertion order
func (r *DebtRepository) ListByUserID(ctx context.Context, userID models.ID) ([]models.Debt, error) {
	return r.debts.FindMany(ctx, Filter{"user_id": userID}, MaxDebtsPerList)
}

// GetByIDAndUserID retrieves a debt by ID and owner
func (r *DebtRepository) GetByIDAndUserID(ctx context.Context, id, userID models.ID) (*models.Debt, error) {
	return r.debts.FindOne(ctx, ownedBy(id, userID))
}

// UpdateByIDAndUserID applies fields to a debt owned by userID.
// ErrNotFound means no such debt belongs to the user.
func (r *DebtRepository) UpdateByIDAndUserID(ctx context.Context, id, userID models.ID, fields Fields) error {
	matched, err := r.debts.UpdateOne(ctx, ownedBy(id, userID), fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByIDAndUserID deletes a debt owned by userID
func (r *DebtRepository) DeleteByIDAndUserID(ctx context.Context, id, userID models.ID) error {
	deleted, err := r.debts.DeleteOne(ctx, ownedBy(id, userID))
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func ownedBy(id, userID models.ID) Filter {
	return Filter{"id": id, "user_id": userID}
}

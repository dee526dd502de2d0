package repository

import (
	"context"
	"errors"

	"github.com/pathlight/internal/models"
	"gorm.io/gorm"
)

// UserRepository handles user data access
type UserRepository struct {
	db    *gorm.DB
	users Collection[models.User]
	debts Collection[models.Debt]
	goals Collection[models.Goal]
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db:    db,
		users: NewCollection[models.User](db, "created_at ASC"),
		debts: NewCollection[models.Debt](db, "created_at ASC"),
		goals: NewCollection[models.Goal](db, ""),
	}
}

// Create creates a new user. ErrDuplicate means the email is taken.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = models.NewID()
	}
	_, err := r.users.InsertOne(ctx, user)
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id models.ID) (*models.User, error) {
	return r.users.FindOne(ctx, Filter{"id": id})
}

// GetByEmail retrieves a user by exact email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.users.FindOne(ctx, Filter{"email": email})
}

// ExistsByEmail checks if a user with the email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetActive updates the active flag of a user
func (r *UserRepository) SetActive(ctx context.Context, id models.ID, active bool) error {
	matched, err := r.users.UpdateOne(ctx, Filter{"id": id}, Fields{"is_active": active})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWithOwnedData deletes the user together with every debt and the goal
// it owns, in one transaction. ErrNotFound means the user row was already gone.
func (r *UserRepository) DeleteWithOwnedData(ctx context.Context, id models.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := Filter{"user_id": id}

		if _, err := r.debts.WithTx(tx).DeleteMany(ctx, owned); err != nil {
			return err
		}
		if _, err := r.goals.WithTx(tx).DeleteOne(ctx, owned); err != nil {
			return err
		}

		deleted, err := r.users.WithTx(tx).DeleteOne(ctx, Filter{"id": id})
		if err != nil {
			return err
		}
		if deleted == 0 {
			return ErrNotFound
		}
		return nil
	})
}

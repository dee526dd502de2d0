package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/pathlight/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Filter matches rows whose columns equal the given values
type Filter map[string]any

// Fields holds column values for a partial update
type Fields map[string]any

// Document is implemented by every model stored in a Collection
type Document interface {
	DocumentID() models.ID
}

// Collection is a typed view over the table backing model T
type Collection[T Document] struct {
	db      *gorm.DB
	orderBy string
}

// NewCollection creates a collection ordered by orderBy in FindMany
func NewCollection[T Document](db *gorm.DB, orderBy string) Collection[T] {
	return Collection[T]{db: db, orderBy: orderBy}
}

// WithTx returns the same collection bound to tx
func (c Collection[T]) WithTx(tx *gorm.DB) Collection[T] {
	return Collection[T]{db: tx, orderBy: c.orderBy}
}

// FindOne returns the first document matching filter
func (c Collection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var doc T
	result := c.db.WithContext(ctx).Where(map[string]any(filter)).Limit(1).Find(&doc)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// FindMany returns up to limit documents matching filter
func (c Collection[T]) FindMany(ctx context.Context, filter Filter, limit int) ([]T, error) {
	docs := make([]T, 0)
	query := c.db.WithContext(ctx).Where(map[string]any(filter))
	if c.orderBy != "" {
		query = query.Order(c.orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// InsertOne stores doc and returns its identifier
func (c Collection[T]) InsertOne(ctx context.Context, doc *T) (models.ID, error) {
	if err := c.db.WithContext(ctx).Create(doc).Error; err != nil {
		if isUniqueConstraintError(err) {
			return "", ErrDuplicate
		}
		return "", err
	}
	return (*doc).DocumentID(), nil
}

// UpdateOne applies fields to the document matching filter and returns how many matched
func (c Collection[T]) UpdateOne(ctx context.Context, filter Filter, fields Fields) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	result := c.db.WithContext(ctx).Model(new(T)).Where(map[string]any(filter)).Updates(map[string]any(fields))
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return 0, ErrDuplicate
		}
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteOne deletes the document matching filter.
// Filters passed here always include a unique column.
func (c Collection[T]) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	return c.DeleteMany(ctx, filter)
}

// DeleteMany deletes every document matching filter
func (c Collection[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	result := c.db.WithContext(ctx).Where(map[string]any(filter)).Delete(new(T))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "UNIQUE constraint")
}

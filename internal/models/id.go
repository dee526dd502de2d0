package models

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidID = errors.New("invalid identifier")
)

// ID is the opaque identifier exposed to clients for every entity.
// Values are canonical UUID strings; use ParseID for anything a client sent.
type ID string

// NewID generates a new random identifier
func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID validates s and returns it in canonical form
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(u.String()), nil
}

func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty
func (id ID) IsZero() bool {
	return id == ""
}

// Value implements driver.Valuer
func (id ID) Value() (driver.Value, error) {
	return string(id), nil
}

// Scan implements sql.Scanner
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ""
	case string:
		*id = ID(v)
	case []byte:
		*id = ID(string(v))
	default:
		return fmt.Errorf("cannot scan %T into models.ID", src)
	}
	return nil
}

package models

import (
	"time"
)

// User represents a registered user
type User struct {
	ID           ID        `gorm:"primaryKey;size:36" json:"_id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         *string   `gorm:"size:255" json:"name"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// DocumentID returns the primary key
func (u User) DocumentID() ID {
	return u.ID
}

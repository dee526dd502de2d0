package models

import (
	"time"
)

// Goal is the payoff goal of a user. A user has at most one.
type Goal struct {
	ID        ID        `gorm:"primaryKey;size:36" json:"_id"`
	UserID    ID        `gorm:"uniqueIndex;size:36;not null" json:"user_id"`
	GoalType  string    `gorm:"size:100;not null" json:"goalType"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Goal model
func (Goal) TableName() string {
	return "goals"
}

// DocumentID returns the primary key
func (g Goal) DocumentID() ID {
	return g.ID
}

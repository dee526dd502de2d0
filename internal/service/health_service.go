package service

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	DBStatusConnected    = "connected"
	DBStatusDisconnected = "disconnected"

	pingTimeout = 2 * time.Second
)

// HealthService reports the state of the backing store
type HealthService struct {
	db *gorm.DB
}

// NewHealthService creates a new HealthService. db may be nil.
func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{db: db}
}

// HealthStatus is the health check response
type HealthStatus struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

// Check pings the store. A failing store degrades the db field, never the call.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status: "ok",
		DB:     s.dbStatus(ctx),
	}
}

func (s *HealthService) dbStatus(ctx context.Context) string {
	if s.db == nil {
		return DBStatusDisconnected
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return "error: " + err.Error()
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return "error: " + err.Error()
	}
	return DBStatusConnected
}

package health

import (
	"context"
	"database/sql"
	"time"

	"resume-optimizer/internal/shared/storage/db"
	"resume-optimizer/internal/shared/telemetry"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
	DatabaseMemory       = "memory"

	defaultPingTimeout = 2 * time.Second
)

// Service encapsulates health-related checks.
type Service struct {
	DB          *sql.DB
	PingTimeout time.Duration
}

// NewService constructs a health service. A nil database means in-memory repositories.
func NewService(database *sql.DB) *Service {
	return &Service{DB: database, PingTimeout: defaultPingTimeout}
}

// Status is a health payload.
type Status struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Liveness reports that the process is serving requests.
func (s *Service) Liveness() Status {
	return Status{Status: StatusHealthy}
}

// Database runs SELECT 1 against the configured database.
func (s *Service) Database(ctx context.Context) (Status, bool) {
	if s.DB == nil {
		return Status{Status: StatusHealthy, Database: DatabaseMemory}, true
	}
	timeout := s.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	if err := db.Ping(ctx, s.DB, timeout); err != nil {
		telemetry.Warn("health.db_unreachable", map[string]any{"error": err.Error()})
		return Status{Status: StatusUnhealthy, Database: DatabaseDisconnected}, false
	}
	return Status{Status: StatusHealthy, Database: DatabaseConnected}, true
}

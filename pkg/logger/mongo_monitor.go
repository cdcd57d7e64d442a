package logger

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.uber.org/zap"
)

// MongoMonitorConfig controls what the command monitor logs.
type MongoMonitorConfig struct {
	SlowThreshold time.Duration
	LogAll        bool // log every command, not only slow/failed ones
}

func DefaultMongoMonitorConfig() *MongoMonitorConfig {
	return &MongoMonitorConfig{
		SlowThreshold: 200 * time.Millisecond,
		LogAll:        false,
	}
}

// NewMongoCommandMonitor bridges the driver's command events onto zap.
// Failed commands log at error level, slow ones at warn.
func NewMongoCommandMonitor(cfg *MongoMonitorConfig) *event.CommandMonitor {
	if cfg == nil {
		cfg = DefaultMongoMonitorConfig()
	}

	var mu sync.Mutex
	started := make(map[int64]string) // request id -> command name

	return &event.CommandMonitor{
		Started: func(_ context.Context, e *event.CommandStartedEvent) {
			mu.Lock()
			started[e.RequestID] = e.CommandName
			mu.Unlock()
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			mu.Lock()
			delete(started, e.RequestID)
			mu.Unlock()

			fields := []zap.Field{
				zap.String("command", e.CommandName),
				zap.String("database", e.DatabaseName),
				zap.Duration("elapsed", e.Duration),
			}
			if cfg.SlowThreshold != 0 && e.Duration > cfg.SlowThreshold {
				Warn("Slow database command", append(fields, zap.String("type", "slow_command"))...)
				return
			}
			if cfg.LogAll {
				Debug("Database command executed", fields...)
			}
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			mu.Lock()
			delete(started, e.RequestID)
			mu.Unlock()

			Error("Database command failed",
				zap.String("command", e.CommandName),
				zap.String("database", e.DatabaseName),
				zap.Duration("elapsed", e.Duration),
				zap.String("failure", e.Failure))
		},
	}
}

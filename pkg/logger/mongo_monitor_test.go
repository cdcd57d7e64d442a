package logger

import (
	"context"
	"testing"
	"time"

	"weblarek/config"

	"go.mongodb.org/mongo-driver/event"
)

func TestMongoCommandMonitorHandlers(t *testing.T) {
	cfg := &config.LogConfig{Level: "debug", Format: "console", Output: "stdout"}
	if err := Init(cfg, "development"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer Sync()

	monitor := NewMongoCommandMonitor(&MongoMonitorConfig{
		SlowThreshold: 50 * time.Millisecond,
		LogAll:        true,
	})
	if monitor.Started == nil || monitor.Succeeded == nil || monitor.Failed == nil {
		t.Fatal("monitor is missing handlers")
	}

	ctx := context.Background()
	monitor.Started(ctx, &event.CommandStartedEvent{CommandName: "find", RequestID: 1, DatabaseName: "weblarek"})
	monitor.Succeeded(ctx, &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", RequestID: 1, DatabaseName: "weblarek", Duration: 10 * time.Millisecond},
	})

	// Slow command path.
	monitor.Started(ctx, &event.CommandStartedEvent{CommandName: "aggregate", RequestID: 2, DatabaseName: "weblarek"})
	monitor.Succeeded(ctx, &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "aggregate", RequestID: 2, DatabaseName: "weblarek", Duration: 200 * time.Millisecond},
	})

	// Failure path.
	monitor.Started(ctx, &event.CommandStartedEvent{CommandName: "insert", RequestID: 3, DatabaseName: "weblarek"})
	monitor.Failed(ctx, &event.CommandFailedEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "insert", RequestID: 3, DatabaseName: "weblarek", Duration: time.Millisecond},
		Failure:              "duplicate key",
	})
}

func TestDefaultMongoMonitorConfig(t *testing.T) {
	cfg := DefaultMongoMonitorConfig()
	if cfg.SlowThreshold != 200*time.Millisecond {
		t.Errorf("SlowThreshold = %v, want 200ms", cfg.SlowThreshold)
	}
	if cfg.LogAll {
		t.Error("LogAll should default to false")
	}

	// Nil config falls back to defaults.
	if monitor := NewMongoCommandMonitor(nil); monitor.Started == nil {
		t.Error("nil config produced an incomplete monitor")
	}
}

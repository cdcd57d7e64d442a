package logger

import (
	"testing"

	"weblarek/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	log = nil
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	Debug("test debug")
	Info("test info")
	Warn("test warn")
	Error("test error")

	if Get() == nil {
		t.Error("Get() returned nil logger")
	}
	if With(zap.String("key", "value")) == nil {
		t.Error("With() returned nil logger")
	}
	if WithRequestID("test-id") == nil {
		t.Error("WithRequestID() returned nil logger")
	}
	if err := Sync(); err != nil {
		t.Errorf("Sync() on nil logger: %v", err)
	}
}

func TestInitFormats(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogConfig
		env  string
	}{
		{"console", config.LogConfig{Level: "debug", Format: "console", Output: "stdout"}, "development"},
		{"json", config.LogConfig{Level: "info", Format: "json", Output: "stdout"}, "production"},
		{"default by env", config.LogConfig{Level: "warn", Output: "stdout"}, "production"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Init(&tt.cfg, tt.env); err != nil {
				t.Fatalf("Init() error: %v", err)
			}
			Info("initialized", zap.String("format", tt.cfg.Format))
			_ = Sync()
		})
	}
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: dir + "/app.log",
	}
	if err := Init(cfg, "production"); err != nil {
		t.Fatalf("Init() with file output: %v", err)
	}
	Info("written to file", zap.Int("value", 1))
	_ = Sync()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-req-123")

	requestID, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("Expected request ID to be present")
	}
	if requestID != "test-req-123" {
		t.Errorf("Expected request_id=test-req-123, got %s", requestID)
	}

	// Test with logger
	log := FromContext(ctx)
	if log == nil {
		t.Error("Expected non-nil logger")
	}
}

func TestRequestIDContext_Missing(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	if ok {
		t.Error("Expected no request ID on empty context")
	}
}

func TestUserIDContext(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-abc")

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		t.Fatal("Expected user ID to be present")
	}
	if userID != "user-abc" {
		t.Errorf("Expected user_id=user-abc, got %s", userID)
	}
}

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	if a == "" || b == "" {
		t.Error("Expected non-empty request IDs")
	}
	if a == b {
		t.Error("Expected unique request IDs")
	}
}

func TestConfigDefaults(t *testing.T) {
	config := DefaultConfig()

	if config.ServiceName == "" {
		t.Error("Expected non-empty service name")
	}

	if config.Level == "" {
		t.Error("Expected non-empty log level")
	}

	if config.Format == "" {
		t.Error("Expected non-empty format")
	}
}

func TestProductionConfig(t *testing.T) {
	config := ProductionConfig()

	if config.Format != LogFormatJSON {
		t.Errorf("Expected JSON format in prod, got %s", config.Format)
	}

	if config.Level != LogLevelInfo {
		t.Errorf("Expected info level in prod, got %s", config.Level)
	}

	if config.Environment != EnvironmentProduction {
		t.Errorf("Expected prod environment, got %s", config.Environment)
	}

	if config.AddSource {
		t.Error("Expected AddSource=false in production")
	}
}

func TestDevelopmentConfig(t *testing.T) {
	config := DevelopmentConfig()

	if config.Format != LogFormatText {
		t.Errorf("Expected text format in dev, got %s", config.Format)
	}

	if config.Level != LogLevelDebug {
		t.Errorf("Expected debug level in dev, got %s", config.Level)
	}

	if !config.AddSource {
		t.Error("Expected AddSource=true in development")
	}
}

func TestConfigLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		config := Config{Level: tt.level}
		if got := config.LogLevel(); got != tt.expected {
			t.Errorf("LogLevel(%q) = %v, want %v", tt.level, got, tt.expected)
		}
	}
}

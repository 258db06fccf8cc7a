package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected logrus.Level
	}{
		{name: "Debug", logLevel: "debug", expected: logrus.DebugLevel},
		{name: "Info", logLevel: "info", expected: logrus.InfoLevel},
		{name: "Warn", logLevel: "warn", expected: logrus.WarnLevel},
		{name: "Error", logLevel: "error", expected: logrus.ErrorLevel},
		{name: "Invalid falls back to info", logLevel: "chatty", expected: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.logLevel, "development")
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestNewLoggerFormatterFollowsEnvironment(t *testing.T) {
	prod := NewLogger("info", "production")
	require.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)

	for _, env := range []string{"development", "staging", ""} {
		logger := NewLogger("info", env)
		assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter, env)
	}
}

package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default_warn", 0, zerolog.WarnLevel},
		{"verbose_info", 1, zerolog.InfoLevel},
		{"double_verbose_debug", 2, zerolog.DebugLevel},
		{"triple_verbose_trace", 3, zerolog.TraceLevel},
		{"excess_verbosity_trace", 10, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestGetLogger(t *testing.T) {
	SetupLogger(0)
	logger := GetLogger("identifier")
	// Logging must not panic with a component-scoped logger.
	logger.Debug().Str("hash", "abc123").Msg("test message")
}

func TestLogOperationStart(t *testing.T) {
	SetupLogger(2)
	logger := GetLogger("test")

	done := LogOperationStart(logger, "resolve")
	assert.NotNil(t, done)
	done()
}

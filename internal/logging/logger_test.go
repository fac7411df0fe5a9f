package logging

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"WARN", log.WarnLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(tt.level)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestDefault_Singleton(t *testing.T) {
	require.NotNil(t, Default())
	assert.Same(t, Default(), Default())
}

func TestSetLevel(t *testing.T) {
	SetLevel("debug")
	assert.Equal(t, log.DebugLevel, Default().GetLevel())
	SetLevel("info")
	assert.Equal(t, log.InfoLevel, Default().GetLevel())
}

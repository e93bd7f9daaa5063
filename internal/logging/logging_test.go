package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)

	logger.Debug("hidden")
	logger.Info("Token cached", "service", "claude-token-cache")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Token cached", record["msg"])
	assert.Equal(t, "tokencache", record["component"])
	assert.Equal(t, "claude-token-cache", record["service"])
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		warnSeen  bool
	}{
		{level: "debug", debugSeen: true, warnSeen: true},
		{level: "info", debugSeen: false, warnSeen: true},
		{level: "error", debugSeen: false, warnSeen: false},
		{level: "bogus", debugSeen: false, warnSeen: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.level, "text", &buf)

			logger.Debug("debug-line")
			logger.Warn("warn-line")

			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug-line")))
			assert.Equal(t, tt.warnSeen, bytes.Contains(buf.Bytes(), []byte("warn-line")))
		})
	}
}

package filler

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		expected    []string
		notExpected []string
	}{
		{"debug shows all", "debug", []string{"debug message", "info message", "warn message"}, nil},
		{"info hides debug", "info", []string{"info message", "warn message"}, []string{"debug message"}},
		{"warn hides info", "warn", []string{"warn message"}, []string{"debug message", "info message"}},
		{"unknown level is info", "loud", []string{"info message"}, []string{"debug message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level, "console")
			logger.Debug().Msg("debug message")
			logger.Info().Msg("info message")
			logger.Warn().Msg("warn message")

			out := buf.String()
			for _, s := range tt.expected {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notExpected {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")
	logger.Info().Str("template", "a.docx").Msg("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "a.docx", entry["template"])
	assert.Equal(t, "loaded", entry["message"])
}

func TestBatchLogsSummary(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	s := NewSession(WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)))
	require.NoError(t, s.Open(createTemplate(t, dir, letter)))

	_, err := s.GenerateBatch(context.Background(), TokenPack{"{{name}}", "{{city}}"}, "Ada;Paris\nBob;Rome", ";", filepath.Join(dir, "{{name}}.docx"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "batch generated", entry["message"])
	assert.EqualValues(t, 2, entry["documents"])
	assert.NotEmpty(t, entry["run"])
}

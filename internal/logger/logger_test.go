//go:build !integration

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug level", level: "debug", expected: zerolog.DebugLevel},
		{name: "info level", level: "info", expected: zerolog.InfoLevel},
		{name: "warn level", level: "warn", expected: zerolog.WarnLevel},
		{name: "error level", level: "error", expected: zerolog.ErrorLevel},
		{name: "upper case level", level: "DEBUG", expected: zerolog.DebugLevel},
		{name: "invalid level defaults to info", level: "invalid", expected: zerolog.InfoLevel},
		{name: "empty level defaults to info", level: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.level, false)
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", false, &buf)

	l := Component("planner")
	l.Info().Int("days", 3).Msg("Planned")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "planner", line["component"])
	assert.Equal(t, float64(3), line["days"])
	assert.Equal(t, "Planned", line["message"])
}

func TestInitWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", true, &buf)

	l := Logger()
	l.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
}

func TestInitWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("warn", false, &buf)

	l := Logger()
	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestWithContext(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{
			name:   "empty fields",
			fields: map[string]interface{}{},
		},
		{
			name: "multiple fields",
			fields: map[string]interface{}{
				"request_id": "abc",
				"day":        2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			InitWithWriter("info", false, &buf)

			l := WithContext(tt.fields)
			l.Info().Msg("ctx")

			var line map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			for k := range tt.fields {
				assert.Contains(t, line, k)
			}
		})
	}
}

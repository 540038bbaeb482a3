package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_Fields(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *LogEntry
		expected map[string]interface{}
	}{
		{
			name: "first field allocates the map",
			build: func() *LogEntry {
				return (&LogEntry{ActionType: "allocate_plan"}).WithField("days", 3)
			},
			expected: map[string]interface{}{"days": 3},
		},
		{
			name: "chained fields accumulate",
			build: func() *LogEntry {
				return (&LogEntry{}).WithField("mode", "multi_day").WithField("density_fallbacks", 1)
			},
			expected: map[string]interface{}{"mode": "multi_day", "density_fallbacks": 1},
		},
		{
			name: "later value overwrites",
			build: func() *LogEntry {
				return (&LogEntry{}).WithField("catalog_version", 1).WithField("catalog_version", 2)
			},
			expected: map[string]interface{}{"catalog_version": 2},
		},
		{
			name: "merge keeps existing keys",
			build: func() *LogEntry {
				return (&LogEntry{}).WithField("items", 4).WithFields(map[string]interface{}{
					"total_kcal": 4265.0,
					"items":      5,
				})
			},
			expected: map[string]interface{}{"items": 5, "total_kcal": 4265.0},
		},
		{
			name: "merging nothing still allocates",
			build: func() *LogEntry {
				return (&LogEntry{}).WithFields(nil)
			},
			expected: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.build().Fields)
		})
	}
}

func TestLogEntry_WithFieldReturnsSameEntry(t *testing.T) {
	entry := &LogEntry{UserID: "1001"}
	assert.Same(t, entry, entry.WithField("names", 2))
	assert.Same(t, entry, entry.WithFields(map[string]interface{}{"names": 3}))
	assert.Equal(t, "1001", entry.UserID)
}

package firebase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToISO(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"iso string passes through", "2026-05-01T12:00:00Z", "2026-05-01T12:00:00Z"},
		{"seconds object", map[string]any{"seconds": float64(1600000000), "nanos": float64(0)}, "2020-09-13T12:26:40Z"},
		{"underscore seconds object", map[string]any{"_seconds": float64(1600000000)}, "2020-09-13T12:26:40Z"},
		{"string seconds", map[string]any{"seconds": "1600000000"}, "2020-09-13T12:26:40Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toISO(tt.input))
		})
	}
}

func TestToISO_UnresolvedFallsBackToNow(t *testing.T) {
	for _, input := range []any{nil, "", map[string]any{}, 42} {
		got := toISO(input)
		parsed, err := time.Parse(time.RFC3339, got)
		assert.NoError(t, err, "fallback must still be RFC3339 for %v", input)
		assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
	}
}

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected map[string]any
	}{
		{"string", "hi", map[string]any{"stringValue": "hi"}},
		{"bool", true, map[string]any{"booleanValue": true}},
		{"int", 7, map[string]any{"integerValue": "7"}},
		{"float", 12.5, map[string]any{"doubleValue": 12.5}},
		{"nil", nil, map[string]any{"nullValue": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, encodeValue(tt.input))
		})
	}
}

func TestDecodeFields(t *testing.T) {
	fields := map[string]map[string]any{
		"title":        {"stringValue": "note"},
		"is_completed": {"booleanValue": false},
		"position":     {"integerValue": "3"},
		"amount":       {"doubleValue": 9.99},
		"created_at":   {"timestampValue": "2026-05-01T12:00:00Z"},
	}

	decoded := decodeFields(fields)
	assert.Equal(t, "note", decoded["title"])
	assert.Equal(t, false, decoded["is_completed"])
	assert.Equal(t, int64(3), decoded["position"])
	assert.Equal(t, 9.99, decoded["amount"])
	assert.Equal(t, "2026-05-01T12:00:00Z", decoded["created_at"])
}

func TestDocID(t *testing.T) {
	assert.Equal(t, "abc", docID("projects/p/databases/(default)/documents/notes/abc"))
	assert.Equal(t, "bare", docID("bare"))
}

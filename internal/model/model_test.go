package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 8, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"utc zulu", "2025-08-04T10:00:00Z", want, true},
		{"positive offset", "2025-08-04T12:00:00+02:00", want, true},
		{"negative offset", "2025-08-04T05:00:00-05:00", want, true},
		{"zoneless read as utc", "2025-08-04T10:00:00", want, true},
		{"fractional seconds", "2025-08-04T10:00:00.500Z", want.Add(500 * time.Millisecond), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "not-a-timestamp", time.Time{}, false},
		{"date only", "2025-08-04", time.Time{}, false},
		{"month out of range", "2025-13-04T10:00:00Z", time.Time{}, false},
		{"day out of range", "2025-08-40T10:00:00Z", time.Time{}, false},
		{"hour out of range", "2025-08-04T25:00:00Z", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
				assert.Equal(t, time.UTC, got.Location())
			}
		})
	}
}

func TestAlertJSON(t *testing.T) {
	alert := Alert{
		ID:      "b1c2",
		Service: "email",
		AlertAt: time.Date(2025, 8, 4, 10, 4, 0, 0, time.UTC),
	}

	data, err := json.Marshal(alert)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b1c2","service":"email","alert_at":"2025-08-04T10:04:00Z"}`, string(data))
}

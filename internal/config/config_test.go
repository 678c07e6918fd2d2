package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 60, cfg.IntervalSeconds)
	assert.Equal(t, 3, cfg.AllowedMisses)
	assert.NoError(t, cfg.Validate())
}

func TestInterval(t *testing.T) {
	cfg := Config{IntervalSeconds: 90, AllowedMisses: 1}
	assert.Equal(t, 90*time.Second, cfg.Interval())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{IntervalSeconds: 60, AllowedMisses: 3}, false},
		{"minimal", Config{IntervalSeconds: 1, AllowedMisses: 1}, false},
		{"zero interval", Config{IntervalSeconds: 0, AllowedMisses: 3}, true},
		{"negative interval", Config{IntervalSeconds: -5, AllowedMisses: 3}, true},
		{"zero misses", Config{IntervalSeconds: 60, AllowedMisses: 0}, true},
		{"negative misses", Config{IntervalSeconds: 60, AllowedMisses: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval_seconds: 30\nallowed_misses: 5\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.IntervalSeconds)
	assert.Equal(t, 5, cfg.AllowedMisses)
}

func TestLoadFile_PartialOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allowed_misses: 2\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultIntervalSeconds, cfg.IntervalSeconds)
	assert.Equal(t, 2, cfg.AllowedMisses)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval_seconds: -1\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_Unparsable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval_seconds: [oops\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

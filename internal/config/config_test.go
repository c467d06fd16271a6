package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MEDCLINIC_AUTH_SECRET", "s3cret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.True(t, cfg.Storage.Seed)
	assert.Equal(t, "static", cfg.Scheduling.DoctorSource)
	assert.Equal(t, 30*time.Minute, cfg.Drafts.TTL)
	assert.Equal(t, 8*time.Hour, cfg.Auth.TokenExpiry)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "s3cret", cfg.Auth.Secret)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, "medclinic.events", cfg.Events.Channel)
	assert.Equal(t, 5, cfg.Notification.BreakerFailures)
}

func TestLoadConfigFileAndEnvironment(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9000
storage:
  driver: redis
  redis:
    url: redis://cache:6379/1
auth:
  secret: from-file
  token_expiry: 2h
drafts:
  ttl: 5m
`)
	t.Setenv("MEDCLINIC_SERVER_PORT", "9100")
	t.Setenv("MEDCLINIC_SCHEDULING_DOCTOR_SOURCE", "users")
	t.Setenv("MEDCLINIC_RATE_LIMIT_BURST", "7")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "redis://cache:6379/1", cfg.Storage.Redis.URL)
	assert.Equal(t, "from-file", cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenExpiry)
	assert.Equal(t, 5*time.Minute, cfg.Drafts.TTL)
	assert.Equal(t, "users", cfg.Scheduling.DoctorSource)
	assert.Equal(t, 7, cfg.RateLimit.Burst)
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "storage:\n  driver: memory\n"},
		{"unknown driver", "auth:\n  secret: x\nstorage:\n  driver: mongo\n"},
		{"postgres without dsn", "auth:\n  secret: x\nstorage:\n  driver: postgres\n"},
		{"unknown doctor source", "auth:\n  secret: x\nscheduling:\n  doctor_source: ldap\n"},
		{"events without channel", "auth:\n  secret: x\nevents:\n  enabled: true\n  channel: \"\"\n"},
		{"notifications without smtp", "auth:\n  secret: x\nnotification:\n  enabled: true\n  smtp:\n    host: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

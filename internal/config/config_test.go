package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequired sets the variables Load insists on
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("BOT_PASSWORD", "test_password")
	t.Setenv("DB_PASSWORD", "test_db_password")
}

// clearOptional blanks the variables that have defaults
func clearOptional(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER",
		"CHALLENGE_SECONDS", "SESSION_TTL", "SESSION_REAP_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_WithDefaults(t *testing.T) {
	setRequired(t)
	clearOptional(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "test_password", cfg.BotPassword)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "lexideck", cfg.Database.Name)
	assert.Equal(t, "lexideck", cfg.Database.User)
	assert.Equal(t, 60, cfg.Game.ChallengeSeconds)
	assert.Equal(t, time.Hour, cfg.Game.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.Game.ReapInterval)
}

func TestLoad_GameOverrides(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("CHALLENGE_SECONDS", "90")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_REAP_INTERVAL", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Game.ChallengeSeconds)
	assert.Equal(t, 30*time.Minute, cfg.Game.SessionTTL)
	assert.Equal(t, time.Minute, cfg.Game.ReapInterval)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		contains string
	}{
		{name: "missing bot token", key: "BOT_TOKEN", value: "", contains: "BOT_TOKEN"},
		{name: "missing bot password", key: "BOT_PASSWORD", value: "", contains: "BOT_PASSWORD"},
		{name: "missing db password", key: "DB_PASSWORD", value: "", contains: "DB_PASSWORD"},
		{name: "non-numeric challenge", key: "CHALLENGE_SECONDS", value: "sixty", contains: "CHALLENGE_SECONDS"},
		{name: "non-positive challenge", key: "CHALLENGE_SECONDS", value: "0", contains: "CHALLENGE_SECONDS"},
		{name: "bad session ttl", key: "SESSION_TTL", value: "forever", contains: "SESSION_TTL"},
		{name: "bad reap interval", key: "SESSION_REAP_INTERVAL", value: "often", contains: "SESSION_REAP_INTERVAL"},
		{name: "non-positive reap interval", key: "SESSION_REAP_INTERVAL", value: "0s", contains: "SESSION_REAP_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			clearOptional(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

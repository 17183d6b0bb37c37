package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("INVESTING_MAX_RETRIES", "")
	t.Setenv("ADMIN_USERNAMES", "")

	require.NoError(t, Load())

	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, 5, AppConfig.Investing.MaxRetries)
	assert.Equal(t, 20*time.Millisecond, AppConfig.Investing.RetryBackoff)
	assert.Equal(t, 24*time.Hour, AppConfig.Session.TTL)
	assert.Empty(t, AppConfig.Admin.Usernames)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("INVESTING_MAX_RETRIES", "2")
	t.Setenv("ADMIN_USERNAMES", " alice, ,Bob ")

	require.NoError(t, Load())

	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.Equal(t, 2, AppConfig.Investing.MaxRetries)
	assert.Equal(t, []string{"alice", "Bob"}, AppConfig.Admin.Usernames)
}

func TestIsAdmin(t *testing.T) {
	admins := AdminConfig{Usernames: []string{"alice", "Bob"}}

	assert.True(t, admins.IsAdmin("alice"))
	assert.True(t, admins.IsAdmin("bob"))
	assert.False(t, admins.IsAdmin("mallory"))
	assert.False(t, AdminConfig{}.IsAdmin("alice"))
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_EXPIRY_HOURS", "")
	t.Setenv("ADMIN_EMAIL", "")

	cfg := Load()
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.Empty(t, cfg.AdminEmail)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("ADMIN_EMAIL", "  Root@Example.com ")
	t.Setenv("MAX_DB_CONNS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "root@example.com", cfg.AdminEmail)
	assert.Equal(t, int32(10), cfg.MaxDBConns)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "user:7:gpa_summary", CacheKey.UserSummaryKey(7))
	assert.Equal(t, "token:abc:revoked", CacheKey.RevokedTokenKey("abc"))
	assert.Equal(t, "user:7:gpa_events", CacheKey.UserSummaryChannel(7))
	assert.Equal(t, "ratelimit:auth:1.2.3.4:9", CacheKey.RateLimitKey("auth", "1.2.3.4", 9))
}

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("APP_PORT", "9000")
	v.Set("APP_ENV", "production")
	v.Set("JWT_ACCESS_EXPIRY", "not-a-duration")
	v.Set("CACHE_SETTINGS_TTL", "30s")

	cfg := fromViper(v)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 30*time.Second, cfg.Cache.SettingsTTL)
}

func TestFromViper_DatabaseValues(t *testing.T) {
	v := viper.New()
	v.Set("DB_HOST", "db")
	v.Set("DB_NAME", "clinic")
	v.Set("REDIS_DB", 3)

	cfg := fromViper(v)

	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "clinic", cfg.DB.Name)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestFromViper_CORSOrigin(t *testing.T) {
	v := viper.New()
	v.Set("APP_CORS_ORIGIN", "https://clinic.example.com")

	cfg := fromViper(v)

	assert.Equal(t, "https://clinic.example.com", cfg.App.CORSOrigin)
	assert.Empty(t, cfg.App.UploadDir)
}

func TestValidate_RequiresJWTSecret(t *testing.T) {
	cfg := fromViper(viper.New())
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	cfg.JWT.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_JWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cfg := Config{AuthProvider: AuthSupabase, JWTSecret: "x"}
	assert.Error(t, cfg.Validate())

	cfg.SupabaseURL, cfg.SupabaseAnonKey = "https://proj.supabase.co", "anon"
	assert.NoError(t, cfg.Validate())

	cfg.AuthProvider = AuthLocal
	assert.Error(t, cfg.Validate(), "local auth needs a database")
	cfg.DBHost = "localhost"
	assert.NoError(t, cfg.Validate())

	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg.AuthProvider = "ldap"
	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUTH_PROVIDER", "supabase")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TREND_LABELS", "weekday")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "weekday", cfg.TrendLabels)
	assert.Equal(t, "strict", cfg.CalorieUnitPolicy)
	assert.Equal(t, "./.localstore", cfg.LocalCacheDir)
	assert.False(t, cfg.RemoteEnabled())
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	_, err = NewLogger("loud", "text")
	assert.Error(t, err)
}

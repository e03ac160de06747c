package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDevConfig() *Config {
	return &Config{
		JWTSecret:     "dev-secret",
		Port:          "8460",
		DBPassword:    "password",
		Env:           "development",
		CascadePolicy: CascadePolicyCascade,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid development config", func(t *testing.T) {
		require.NoError(t, validDevConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Port = ""
		assert.ErrorContains(t, cfg.Validate(), "PORT")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.JWTSecret = ""
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("unknown cascade policy", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.CascadePolicy = "obliterate"
		assert.ErrorContains(t, cfg.Validate(), "CASCADE_POLICY")
	})

	t.Run("set_null policy accepted", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.CascadePolicy = CascadePolicySetNull
		require.NoError(t, cfg.Validate())
	})

	t.Run("production rejects the default secret", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		cfg.DBPassword = "sufficiently-strong"
		assert.ErrorContains(t, cfg.Validate(), "default value")
	})

	t.Run("production rejects short secrets", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		cfg.DBPassword = "sufficiently-strong"
		assert.ErrorContains(t, cfg.Validate(), "32 characters")
	})

	t.Run("production rejects weak db password", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "a-production-grade-secret-of-32-chars-min"
		cfg.DBPassword = "password"
		assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"production with default jwt secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "change-me-in-production"
		}, true},
		{"production with short jwt secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"production without admin secret", func(c *Config) {
			c.Env = "production"
			c.AdminSecret = ""
		}, true},
		{"production with weak db password", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = "password"
		}, true},
		{"valid production config", func(c *Config) {
			c.Env = "production"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Port:        "8173",
				Env:         "development",
				JWTSecret:   "secure-secret-at-least-32-chars-long",
				AdminSecret: "admin-secret",
				DBPassword:  "secure-password",
				DBSSLMode:   "require",
			}
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_NAME")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_NAME", "inkwell_test")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "inkwell_test", c.DBName)
	assert.Equal(t, "8173", c.Port)
}

func TestLoadConfig_ReadsConfigFile(t *testing.T) {
	defer viper.Reset()

	dir := t.TempDir()
	contents := map[string]any{
		"PORT":       "9091",
		"JWT_SECRET": "file-secret-long-enough-for-warnings",
	}
	raw, err := yaml.Marshal(contents)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), raw, 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9091", c.Port)
	assert.Equal(t, "file-secret-long-enough-for-warnings", c.JWTSecret)
}

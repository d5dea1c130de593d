package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing port",
			cfg:     Config{JWTSecret: "secret"},
			wantErr: "PORT is required",
		},
		{
			name:    "missing jwt secret",
			cfg:     Config{Port: "8480"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "development defaults pass",
			cfg: Config{
				Port:      "8480",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "development",
			},
		},
		{
			name: "production rejects default secret",
			cfg: Config{
				Port:      "8480",
				JWTSecret: "your-secret-key-change-in-production",
				Env:       "production",
			},
			wantErr: "JWT_SECRET must be changed from the default value in production",
		},
		{
			name: "production rejects short secret",
			cfg: Config{
				Port:       "8480",
				JWTSecret:  "short",
				DBPassword: "str0ng-enough-password",
				Env:        "production",
			},
			wantErr: "JWT_SECRET must be at least 32 characters in production",
		},
		{
			name: "production rejects weak db password",
			cfg: Config{
				Port:       "8480",
				JWTSecret:  "0123456789abcdef0123456789abcdef",
				DBPassword: "password",
				Env:        "production",
			},
			wantErr: "a strong DB_PASSWORD is required in production",
		},
		{
			name: "production passes with strong values",
			cfg: Config{
				Port:       "8480",
				JWTSecret:  "0123456789abcdef0123456789abcdef",
				DBPassword: "str0ng-enough-password",
				DBSSLMode:  "require",
				Env:        "production",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8480", cfg.Port)
	assert.Equal(t, "ripple", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.False(t, cfg.TracingEnabled)
}

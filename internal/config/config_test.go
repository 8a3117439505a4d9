package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "memory"

[auth]
jwt_secret = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 8, cfg.Schedule.OpeningHour)
	assert.Equal(t, 16, cfg.Schedule.ClosingHour)
	assert.Len(t, cfg.BusinessHours().Slots(), 8)
}

func TestLoad_OverridesValues(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
port = 6432
user = "garage"
password = "p@ss"
dbname = "tires"
sslmode = "require"

[auth]
jwt_secret = "secret"
role_lookup_url = "http://auth:3000"

[rate_limit]
enabled = true
limit = 5
window = 30
fail_open = false

[schedule]
opening_hour = 9
closing_hour = 18
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "postgres://garage:p%40ss@db:6432/tires?sslmode=require", cfg.Database.DSN())
	assert.Equal(t, "http://auth:3000", cfg.Auth.RoleLookupURL)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.RateLimit.FailOpen)
	assert.Equal(t, 5, cfg.RateLimit.Limit)

	slots := cfg.BusinessHours().Slots()
	require.Len(t, slots, 9)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "17:00", slots[8].String())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing jwt secret", `
[database]
driver = "memory"
`},
		{"unknown driver", `
[database]
driver = "sqlite"
[auth]
jwt_secret = "secret"
`},
		{"inverted hours", `
[database]
driver = "memory"
[auth]
jwt_secret = "secret"
[schedule]
opening_hour = 16
closing_hour = 8
`},
		{"unknown key", `
[database]
driver = "memory"
[auth]
jwt_secret = "secret"
jwt_algorithm = "RS256"
`},
		{"broken toml", `[server`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

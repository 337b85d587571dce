package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, Mode: "debug", ShutdownTimeout: time.Second},
		Database: DatabaseConfig{Driver: "sqlite", Name: ":memory:"},
		Auth:     AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, BcryptCost: 4},
		Session:  SessionConfig{Secret: "session"},
		Log:      LogConfig{Level: "info", Format: "json"},
		Defaults: DefaultsConfig{CategoryTitle: "Category 1", CategoryColor: "#419fdb"},
		Events:   EventsConfig{Backend: "log"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "Category 1", cfg.Defaults.CategoryTitle)
	assert.Equal(t, "#419fdb", cfg.Defaults.CategoryColor)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "log", cfg.Events.Backend)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("EXPENSY_SERVER_PORT", "9090")
	t.Setenv("EXPENSY_AUTH_JWT_SECRET", "from-env")
	t.Setenv("EXPENSY_DEFAULTS_CATEGORY_TITLE", "General")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "General", cfg.Defaults.CategoryTitle)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("database:\n  driver: postgres\n  name: expensy\nevents:\n  backend: kafka\n  kafka_brokers:\n    - localhost:9092\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Events.KafkaBrokers)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "bad driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantErr: "database.driver"},
		{name: "missing jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "auth.jwt_secret"},
		{name: "bad color", mutate: func(c *Config) { c.Defaults.CategoryColor = "blue" }, wantErr: "defaults.category_color"},
		{name: "kafka without brokers", mutate: func(c *Config) { c.Events.Backend = "kafka" }, wantErr: "events.kafka_brokers"},
		{name: "amqp without url", mutate: func(c *Config) { c.Events.Backend = "amqp" }, wantErr: "events.amqp_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = -1
	cfg.Auth.JWTSecret = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "auth.jwt_secret")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	mysql := DatabaseConfig{Driver: "mysql", User: "u", Password: "p", Host: "db", Port: "3306", Name: "expensy"}
	assert.Equal(t, "u:p@tcp(db:3306)/expensy?charset=utf8mb4&parseTime=True&loc=UTC", mysql.DSN())

	sqlite := DatabaseConfig{Driver: "sqlite", Name: "expensy.db"}
	assert.Equal(t, "expensy.db", sqlite.DSN())
}

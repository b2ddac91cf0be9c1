package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Session: SessionConfig{
			CookieName: "swn_session",
			SecretKey:  "0123456789abcdef",
		},
		CORS:   CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Upload: UploadConfig{MaxBytes: 1 << 20},
		Health: HealthConfig{GRPCHost: "127.0.0.1", GRPCPort: 0},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func TestValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:5000", validConfig().Server.Addr())
}

func TestHealthEnabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.Health.Enabled())
	cfg.Health.GRPCPort = 50051
	assert.True(t, cfg.Health.Enabled())
	assert.Equal(t, "127.0.0.1:50051", cfg.Health.Addr())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "swn_session", cfg.Session.CookieName)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.Upload.MaxBytes)
	assert.False(t, cfg.Health.Enabled())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 8080
  shutdown_timeout: 5s
session:
  cookie_name: sid
  secret_key: a-very-long-test-secret
  max_age: 24h
cors:
  allowed_origins:
    - http://example.test
    - http://other.test
upload:
  max_bytes: 4096
health:
  grpc_port: 50051
logging:
  level: debug
  format: console
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, []string{"http://example.test", "http://other.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(4096), cfg.Upload.MaxBytes)
	assert.Equal(t, "127.0.0.1:50051", cfg.Health.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SWN_SERVER_PORT", "9090")
	t.Setenv("SWN_SESSION_SECRET_KEY", "secret-from-the-environment")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "secret-from-the-environment", cfg.Session.SecretKey)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  secret_key: short\n"), 0644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.secret_key")
}

func TestValidateServer(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Server.ReadTimeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Server.ShutdownTimeout = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateSession(t *testing.T) {
	cfg := validConfig()
	cfg.Session.CookieName = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Session.SecretKey = "too-short"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Session.MaxAge = -time.Minute
	assert.Error(t, cfg.Validate())
}

func TestValidateCORSEmptyOrigin(t *testing.T) {
	cfg := validConfig()
	cfg.CORS.AllowedOrigins = []string{"http://ok.test", ""}
	assert.Error(t, cfg.Validate())
}

func TestValidateUploadMaxBytes(t *testing.T) {
	cfg := validConfig()
	cfg.Upload.MaxBytes = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateReportsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Upload.MaxBytes = 0
	cfg.Logging.Level = "loud"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "upload.max_bytes")
	assert.Contains(t, err.Error(), "logging.level")
}

// Property-based tests

func TestPropertyValidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.IntRange(1, 65535).Draw(t, "port")
		cfg := validConfig()
		cfg.Server.Port = port
		cfg.Health.GRPCPort = port
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid port %d rejected: %v", port, err)
		}
	})
}

func TestPropertyInvalidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65536, 100000),
		).Draw(t, "port")
		cfg := validConfig()
		cfg.Server.Port = port
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid port %d accepted", port)
		}
	})
}

func TestPropertySecretKeyLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := rapid.StringN(0, 40, -1).Draw(t, "key")
		cfg := validConfig()
		cfg.Session.SecretKey = key
		err := cfg.Validate()
		if len(key) >= 16 && err != nil {
			t.Fatalf("key of %d bytes rejected: %v", len(key), err)
		}
		if len(key) < 16 && err == nil {
			t.Fatalf("key of %d bytes accepted", len(key))
		}
	})
}

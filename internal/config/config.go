// Package config provides Viper-based configuration loading for the
// character generator server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// ReadTimeout bounds reading a whole request, body included.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout is how long in-flight requests get on shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the "host:port" listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SessionConfig holds session cookie settings.
type SessionConfig struct {
	// CookieName is the name of the cookie carrying the signed session key.
	CookieName string `mapstructure:"cookie_name"`
	// SecretKey keys the cookie signature. It must be at least 16 bytes.
	SecretKey string `mapstructure:"secret_key"`
	// MaxAge is the cookie lifetime; zero makes it a browser-session cookie.
	MaxAge time.Duration `mapstructure:"max_age"`
	// Secure marks the cookie HTTPS-only.
	Secure bool `mapstructure:"secure"`
}

// CORSConfig holds cross-origin settings for browser clients.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to call the API; "*" allows any.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig bounds character uploads.
type UploadConfig struct {
	// MaxBytes is the largest accepted upload request body.
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// HealthConfig holds the gRPC health-check listener settings.
type HealthConfig struct {
	GRPCHost string `mapstructure:"grpc_host"`
	// GRPCPort of 0 disables the health listener.
	GRPCPort int `mapstructure:"grpc_port"`
}

// Enabled reports whether the health listener should run.
func (h HealthConfig) Enabled() bool {
	return h.GRPCPort != 0
}

// Addr returns the "host:port" gRPC address.
func (h HealthConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.GRPCHost, h.GRPCPort)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Health  HealthConfig  `mapstructure:"health"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateServer(c.Server),
		validateSession(c.Session),
		validateCORS(c.CORS),
		validateUpload(c.Upload),
		validateHealth(c.Health),
		validateLogging(c.Logging),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", s.Port))
	}
	if s.ReadTimeout < 0 {
		errs = append(errs, "server.read_timeout must not be negative")
	}
	if s.WriteTimeout < 0 {
		errs = append(errs, "server.write_timeout must not be negative")
	}
	if s.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSession(s SessionConfig) error {
	var errs []string
	if s.CookieName == "" {
		errs = append(errs, "session.cookie_name must not be empty")
	}
	if len(s.SecretKey) < 16 {
		errs = append(errs, fmt.Sprintf("session.secret_key must be at least 16 bytes, got %d", len(s.SecretKey)))
	}
	if s.MaxAge < 0 {
		errs = append(errs, "session.max_age must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCORS(c CORSConfig) error {
	for _, o := range c.AllowedOrigins {
		if o == "" {
			return errors.New("cors.allowed_origins must not contain empty entries")
		}
	}
	return nil
}

func validateUpload(u UploadConfig) error {
	if u.MaxBytes < 1 {
		return fmt.Errorf("upload.max_bytes must be >= 1, got %d", u.MaxBytes)
	}
	return nil
}

func validateHealth(h HealthConfig) error {
	if h.GRPCPort < 0 || h.GRPCPort > 65535 {
		return fmt.Errorf("health.grpc_port must be 0-65535, got %d", h.GRPCPort)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newViper returns a Viper with defaults and SWN_ environment overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SWN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("session.cookie_name", "swn_session")
	v.SetDefault("session.secret_key", "change-me-in-production")
	v.SetDefault("session.max_age", "0s")
	v.SetDefault("session.secure", false)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("upload.max_bytes", 1<<20)

	v.SetDefault("health.grpc_host", "127.0.0.1")
	v.SetDefault("health.grpc_port", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GatewayConfig holds everything needed to talk to the remote
// receipt-verification service. The device headers identify the mobile
// client the remote service expects to see; they are opaque here and
// passed through verbatim.
type GatewayConfig struct {
	Host           string `mapstructure:"host"`
	ClientSecret   string `mapstructure:"client_secret"`
	OS             string `mapstructure:"os"`
	Accept         string `mapstructure:"accept"`
	DeviceOS       string `mapstructure:"device_os"`
	DeviceID       string `mapstructure:"device_id"`
	AcceptLanguage string `mapstructure:"accept_language"`
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SessionConfig holds the session lifecycle policy. LifetimeMinutes is a
// local policy constant, not a protocol value dictated by the remote
// service.
type SessionConfig struct {
	LifetimeMinutes int `mapstructure:"lifetime_minutes"`
}

// RateLimitConfig controls the fixed-window IP limiter on the SMS
// bootstrap endpoints.
type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	Requests       int  `mapstructure:"requests"`
	WindowSeconds  int  `mapstructure:"window_seconds"`
	VerifyAttempts int  `mapstructure:"verify_attempts"`
	LockoutMinutes int  `mapstructure:"lockout_minutes"`
}

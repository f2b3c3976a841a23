package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "cheki/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Gateway   sharedConfig.GatewayConfig   `mapstructure:"gateway"`
	Session   sharedConfig.SessionConfig   `mapstructure:"session"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"rate_limit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("CHEKI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Gateway.Host == "" {
		return nil, fmt.Errorf("gateway.host is required")
	}
	if config.Gateway.ClientSecret == "" {
		return nil, fmt.Errorf("gateway.client_secret is required")
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults: sqlite file out of the box, mysql for deployments
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "cheki.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "cheki_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Gateway defaults (host and client_secret must be configured)
	viper.SetDefault("gateway.host", "")
	viper.SetDefault("gateway.client_secret", "")
	viper.SetDefault("gateway.os", "Android")
	viper.SetDefault("gateway.accept", "*/*")
	viper.SetDefault("gateway.device_os", "Android")
	viper.SetDefault("gateway.device_id", "")
	viper.SetDefault("gateway.accept_language", "ru-RU;q=1, en-US;q=0.9")
	viper.SetDefault("gateway.user_agent", "okhttp/4.2.2")
	viper.SetDefault("gateway.timeout_seconds", 10)

	// Session lifecycle defaults
	viper.SetDefault("session.lifetime_minutes", 14)

	// Rate limit defaults for the SMS bootstrap endpoints
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 5)
	viper.SetDefault("rate_limit.window_seconds", 60)
	viper.SetDefault("rate_limit.verify_attempts", 5)
	viper.SetDefault("rate_limit.lockout_minutes", 10)
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendMongo  = "mongo"
)

type Config struct {
	Port           string        `mapstructure:"API_PORT"`
	GinMode        string        `mapstructure:"GIN_MODE"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogPretty      bool          `mapstructure:"LOG_PRETTY"`
	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	SessionBackend string        `mapstructure:"SESSION_BACKEND"`
	MongoURI       string        `mapstructure:"MONGO_URI"`
	MongoDatabase  string        `mapstructure:"MONGO_DATABASE"`
	CORSOrigins    []string      `mapstructure:"-"`
	BcryptCost     int           `mapstructure:"BCRYPT_COST"`
	SMSAPIURL      string        `mapstructure:"SMS_API_URL"`
	TextbeltAPIKey string        `mapstructure:"TEXTBELT_API_KEY"`
}

var keys = []string{
	"API_PORT", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY", "JWT_SECRET",
	"SESSION_TTL", "SESSION_BACKEND", "MONGO_URI", "MONGO_DATABASE",
	"CORS_ORIGINS", "BCRYPT_COST", "SMS_API_URL", "TEXTBELT_API_KEY",
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("API_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("MONGO_DATABASE", "laskin")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("SMS_API_URL", "https://textbelt.com/text")

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg, nil
}

// Validate checks the settings the API server cannot run without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when SESSION_BACKEND=mongo")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

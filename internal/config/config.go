package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every deployment setting. Values come from environment
// variables with sane defaults; an optional YAML file named by CONFIG_FILE
// overrides them.
type Config struct {
	Port       string
	GinMode    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	BotToken       string
	DebugAuth      bool
	AllowedOrigins []string
}

type fileConfig struct {
	Server struct {
		Port    string `yaml:"port"`
		GinMode string `yaml:"gin_mode"`
	} `yaml:"server"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
	} `yaml:"telegram"`
	Auth struct {
		DebugEnabled *bool `yaml:"debug_enabled"`
	} `yaml:"auth"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// Load builds the configuration from the environment and, when CONFIG_FILE
// is set, the YAML file it points at.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "projectboard"),
		DBPassword:     getEnv("DB_PASSWORD", "projectboard"),
		DBName:         getEnv("DB_NAME", "projectboard"),
		BotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		DebugAuth:      getBoolEnv("DEBUG_AUTH_ENABLED", false),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	setIfPresent(&c.Port, fc.Server.Port)
	setIfPresent(&c.GinMode, fc.Server.GinMode)
	setIfPresent(&c.DBHost, fc.Database.Host)
	setIfPresent(&c.DBPort, fc.Database.Port)
	setIfPresent(&c.DBUser, fc.Database.User)
	setIfPresent(&c.DBPassword, fc.Database.Password)
	setIfPresent(&c.DBName, fc.Database.Name)
	setIfPresent(&c.BotToken, fc.Telegram.BotToken)
	if fc.Auth.DebugEnabled != nil {
		c.DebugAuth = *fc.Auth.DebugEnabled
	}
	if len(fc.CORS.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.CORS.AllowedOrigins
	}
	return nil
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Package config loads the application settings from an optional TOML
// file, with environment variables taking precedence.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	API     APIConfig     `toml:"api"`
	Session SessionConfig `toml:"session"`
	Log     LogConfig     `toml:"log"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type SessionConfig struct {
	// AuthKey signs the session cookie. When empty a random key is
	// generated at startup and sessions do not survive restarts.
	AuthKey string `toml:"auth_key"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		API:    APIConfig{BaseURL: "http://localhost:5256/api", TimeoutSeconds: 30},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the TOML file at path (or ./config.toml when path is empty
// and the file exists) and applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat("config.toml"); err == nil {
			path = "config.toml"
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("leyendo configuración %s: %w", path, err)
		}
	}

	cfg.Server.Addr = getEnv("BIBLIO_ADDR", cfg.Server.Addr)
	cfg.API.BaseURL = getEnv("BIBLIO_API_URL", cfg.API.BaseURL)
	cfg.Session.AuthKey = getEnv("BIBLIO_SESSION_KEY", cfg.Session.AuthKey)
	cfg.Log.Level = getEnv("BIBLIO_LOG_LEVEL", cfg.Log.Level)

	if cfg.API.BaseURL == "" {
		return cfg, fmt.Errorf("la URL base de la API no está configurada")
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 30
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

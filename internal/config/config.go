package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Log
		Auth
		Inventory
		Global
	}

	HTTP struct {
		Host string
		Port int32
	}
	Database struct {
		DSN string // vacío => repos in-memory (modo dev)
	}
	Log struct {
		Level  string
		Format string
	}
	Auth struct {
		// Verificación de tokens delegada a un servicio de identidad externo.
		// Sin BaseURL+APIKey la API corre en modo dev (X-Debug-User-ID).
		BaseURL string
		APIKey  string
		Timeout time.Duration
	}
	Inventory struct {
		LowStockThreshold int
	}
	Global struct {
		ShutdownTimeout time.Duration
	}
)

// Load lee configuración desde env vars con prefijo VETCLINIC_
// (VETCLINIC_HTTP_PORT, VETCLINIC_DB_DSN, etc).
func Load() (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("VETCLINIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("db.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("auth.base_url", "")
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.timeout", 5*time.Second)
	v.SetDefault("inventory.low_stock_threshold", 10)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	cfg := Config{
		HTTP: HTTP{
			Host: v.GetString("http.host"),
			Port: v.GetInt32("http.port"),
		},
		Database: Database{
			DSN: v.GetString("db.dsn"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Auth: Auth{
			BaseURL: v.GetString("auth.base_url"),
			APIKey:  v.GetString("auth.api_key"),
			Timeout: v.GetDuration("auth.timeout"),
		},
		Inventory: Inventory{
			LowStockThreshold: v.GetInt("inventory.low_stock_threshold"),
		},
		Global: Global{
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
	}

	return cfg, nil
}

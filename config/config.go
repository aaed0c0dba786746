// config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Config — настройки фронтенда. Всё читается из окружения,
// значения по умолчанию рассчитаны на локальный запуск рядом с бэкендом.
type Config struct {
	ListenAddr  string
	BackendURL  string
	RedisAddr   string
	HTTPTimeout time.Duration
	RefdataTTL  time.Duration
	TemplateDir string
}

func Load() Config {
	return Config{
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		BackendURL:  getenv("BACKEND_URL", "http://127.0.0.1:5000"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		HTTPTimeout: getenvDuration("HTTP_TIMEOUT", 15*time.Second),
		RefdataTTL:  getenvDuration("REFDATA_TTL", 10*time.Minute),
		TemplateDir: getenv("TEMPLATE_DIR", "web/templates/*.html"),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

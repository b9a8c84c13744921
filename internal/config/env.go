package config

import (
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

type Env struct {
	AppAddr   string
	GinMode   string
	JWTSecret string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	RedisAddr     string
	RedisPassword string

	CORSOrigins string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = "super-secret-key-change-me"
	}

	return Env{
		AppAddr:       appAddr,
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
		JWTSecret:     jwtSecret,
		DBUser:        envOr("DB_USER", "root"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        envOr("DB_HOST", "127.0.0.1:3306"),
		DBName:        envOr("DB_NAME", "tour_backoffice"),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CORSOrigins:   strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

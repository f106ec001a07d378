package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings read from the environment at startup.
type Config struct {
	Addr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWTSecret signs bearer tokens. Required; the process refuses to start
	// without it.
	JWTSecret string

	CORSOrigin string
}

// Load reads configuration from the environment, preceded by a best-effort
// .env load for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, errors.New("JWT_SECRET_KEY not set or empty")
	}

	return &Config{
		Addr:       getenv("ADDR", ":8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "tododb"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),
		JWTSecret:  secret,
		CORSOrigin: getenv("CORS_ORIGIN", "http://127.0.0.1:5500"),
	}, nil
}

// DSN renders the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Secret codes supplied at registration decide the account role.
	// Plain shared constants, no rotation or per-use tracking.
	UserSecretCode  string
	AdminSecretCode string

	// Default admin seeded at boot when absent
	AdminUsername string
	AdminPassword string

	// Uploads
	UploadDir     string
	MaxUploadSize int64

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "telegram_intelligence"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "168h")),

		UserSecretCode:  getEnv("USER_SECRET_CODE", "TELEGRAM_INTELLIGENCE_2024_SECURE_ACCESS"),
		AdminSecretCode: getEnv("ADMIN_SECRET_CODE", "TELEGRAM_INTELLIGENCE_2024_ADMIN_SUPER_ACCESS"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: 10 * 1024 * 1024,

		Port:        getEnv("PORT", "3001"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 168 * time.Hour
	}
	return d
}

package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Timezone is the civil calendar all attendance dates are read and
	// displayed in. The storage representation stays UTC regardless.
	Timezone string
	// DefaultDailyFee is the fee (VND) used when the daily_fee setting is
	// unset.
	DefaultDailyFee int
}

func Load() *Config {
	return &Config{
		Port:     getenv("PORT", "8080"),
		AppEnv:   getenv("APP_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "diemdanh_db"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		Timezone:        getenv("TIMEZONE", "Asia/Ho_Chi_Minh"),
		DefaultDailyFee: getenvInt("DEFAULT_DAILY_FEE", 70000),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

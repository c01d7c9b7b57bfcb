package config

import (
	"os"
)

type Config struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	TokenSecret string
	GinMode     string
	ServerPort  string
}

func Load() *Config {
	return &Config{
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "3306"),
		DBUser:      getEnv("DB_USER", "promanage"),
		DBPassword:  getEnv("DB_PASSWORD", "promanage"),
		DBName:      getEnv("DB_NAME", "promanage"),
		TokenSecret: getEnv("TOKEN_SECRET", "default-secret-key-change-me"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		ServerPort:  getEnv("PORT", "8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

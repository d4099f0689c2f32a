package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	StorageType    string
	StoragePath    string
	StorageURL     string
	BackendBaseURL string
	BackendTimeout time.Duration
	SessionSecret  string
	SessionTTL     time.Duration

	// Moderation notification email (SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	// Parent sign-in providers
	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
	OAuthRedirectBaseURL string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:           getEnv("PORT", "8080"),
		StorageType:          getEnv("STORAGE_TYPE", "sqlite"),
		StoragePath:          getEnv("STORAGE_PATH", "./kidventure.db"),
		StorageURL:           getEnv("STORAGE_URL", ""),
		BackendBaseURL:       getEnv("BACKEND_BASE_URL", ""),
		BackendTimeout:       10 * time.Second,
		SessionSecret:        getEnv("SESSION_SECRET", ""),
		SessionTTL:           24 * time.Hour,
		AWSRegion:            getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:         getEnv("SES_FROM_EMAIL", ""),
		SESFromName:          getEnv("SES_FROM_NAME", "Kidventure"),
		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		FacebookClientID:     getEnv("FACEBOOK_CLIENT_ID", ""),
		FacebookClientSecret: getEnv("FACEBOOK_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

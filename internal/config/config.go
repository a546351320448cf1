// Package config loads the .env file and the layered application configuration.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"expense-view/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultLogFileName is where the interactive view logs when log.file is unset.
const DefaultLogFileName = "expense-view.log"

var (
	once sync.Once
	// Global logger used before the container is built
	Logger = logrus.New()
)

// ConfigureLogging sets up logging based on environment variables and returns the configured logger
func ConfigureLogging() *logrus.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logging.Configure(Logger, level, os.Getenv("LOG_FORMAT"))
	return Logger
}

// LoadEnv loads environment variables from the .env file if one exists.
// Variables already set in the environment are never overwritten.
func LoadEnv() {
	once.Do(func() {
		envFile, ok := FindEnvFile()
		if !ok {
			Logger.Debug("No .env file found, using environment variables")
			return
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
			return
		}
		Logger.Debugf("Loaded environment variables from %s", envFile)
	})
}

// FindEnvFile looks for .env in the current directory, then its parent.
func FindEnvFile() (string, bool) {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// DefaultLogFile returns the log file used by the interactive view,
// inside the per-user configuration directory.
func DefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultLogFileName
	}
	return filepath.Join(home, ".expense-view", DefaultLogFileName)
}

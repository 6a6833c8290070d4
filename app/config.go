/*
config.go - Environment-driven configuration

PURPOSE:
  All runtime knobs come from the environment, optionally primed from a .env
  file. Every value has a working default so a fresh checkout runs with zero
  configuration.

VARIABLES:
  FLEET_DB_PATH     Primary sqlite database file  (default "data/fleet.db")
  FLEET_BACKUP_PATH Auto-backup document path     (default "data/auto_backup.json")
  FLEET_EXPORT_DIR  Spreadsheet export directory  (default "exports")
  FLEET_LOG_LEVEL   logrus level name             (default "info")
*/
package app

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the resolved runtime settings.
type Config struct {
	DBPath     string
	BackupPath string
	ExportDir  string
	LogLevel   string
}

// LoadConfig reads a .env file if one exists, then resolves settings from the
// environment. A missing .env is not an error.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:     envOr("FLEET_DB_PATH", "data/fleet.db"),
		BackupPath: envOr("FLEET_BACKUP_PATH", "data/auto_backup.json"),
		ExportDir:  envOr("FLEET_EXPORT_DIR", "exports"),
		LogLevel:   envOr("FLEET_LOG_LEVEL", "info"),
	}
}

// NewLogger builds the application logger at the configured level. An
// unparseable level falls back to info rather than failing startup.
func NewLogger(cfg Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

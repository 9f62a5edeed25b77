package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDBPath    = "UNIGRADE_DB"
	EnvLogLevel  = "UNIGRADE_LOG_LEVEL"
	EnvLogFormat = "UNIGRADE_LOG_FORMAT"
	EnvSystem    = "UNIGRADE_SYSTEM"
	EnvCredits   = "UNIGRADE_CREDITS"
)

// LoadDotEnv loads variables from a .env file. A missing file is not an
// error and variables already set in the environment win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// ApplyEnv overrides file values with UNIGRADE_* environment variables.
func ApplyEnv(cfg *FileConfig) {
	applyEnvString(EnvDBPath, &cfg.Store.Path)
	applyEnvString(EnvLogLevel, &cfg.Log.Level)
	applyEnvString(EnvLogFormat, &cfg.Log.Format)
	applyEnvString(EnvSystem, &cfg.Courses.System)
	applyEnvString(EnvCredits, &cfg.Courses.Credits)
}

func applyEnvString(key string, target **string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	*target = &v
}

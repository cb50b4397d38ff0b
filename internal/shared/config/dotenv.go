package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"resume-optimizer/internal/shared/telemetry"
)

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment are left untouched.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			telemetry.Warn("config.dotenv_failed", map[string]any{"path": path, "error": err.Error()})
		}
	}
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A
// .env file in the working directory is loaded first if present; a missing
// file is not an error.
//
// Supported variables:
//
//	PDFCONV_DATABASE_PATH
//	PDFCONV_OUTPUT_DIR
//	PDFCONV_DOWNLOAD_DIR
//	PDFCONV_DAILY_LIMIT
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PDFCONV_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("PDFCONV_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("PDFCONV_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv("PDFCONV_DAILY_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			cfg.DailyLimit = limit
		}
	}
}

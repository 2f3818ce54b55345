package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/welovepdf/pdfconv/internal/flagx"
	"github.com/welovepdf/pdfconv/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so the file can specify them either as strings like
// "200ms" or as integer nanoseconds. Zero values mean "not set" and leave
// the current Config value untouched.
type JsonConfig struct {
	DatabasePath     string         `json:"database_path"`
	OutputDir        string         `json:"output_dir"`
	DownloadDir      string         `json:"download_dir"`
	StepDelay        timex.Duration `json:"step_delay"`
	DownloadStagger  timex.Duration `json:"download_stagger"`
	DailyLimit       int            `json:"daily_limit"`
	FailureRate      *float64       `json:"failure_rate"`
	RetryFailureRate *float64       `json:"retry_failure_rate"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// via the -c or -config flags. If no file is given, nothing happens.
// Read or unmarshal errors panic; config is loaded once at startup and a
// broken file should stop the program immediately.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.OutputDir != "" {
		cfg.OutputDir = jc.OutputDir
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.StepDelay.Duration != 0 {
		cfg.StepDelay = time.Duration(jc.StepDelay.Duration)
	}
	if jc.DownloadStagger.Duration != 0 {
		cfg.DownloadStagger = time.Duration(jc.DownloadStagger.Duration)
	}
	if jc.DailyLimit != 0 {
		cfg.DailyLimit = jc.DailyLimit
	}
	if jc.FailureRate != nil {
		cfg.FailureRate = *jc.FailureRate
	}
	if jc.RetryFailureRate != nil {
		cfg.RetryFailureRate = *jc.RetryFailureRate
	}
}

package config

import "time"

// Config holds runtime settings for the pdfconv CLI.
type Config struct {
	// DatabasePath is the SQLite file holding cached state, daily usage
	// and the onboarding flag.
	DatabasePath string

	// OutputDir receives generated conversion payloads.
	OutputDir string

	// DownloadDir receives user-initiated downloads.
	DownloadDir string

	// StepDelay is the pause between conversion progress checkpoints.
	StepDelay time.Duration

	// DownloadStagger is the delay between files in "download all".
	DownloadStagger time.Duration

	// DailyLimit caps conversions per local calendar day.
	DailyLimit int

	// FailureRate and RetryFailureRate are the simulated failure
	// probabilities for a full run and a single-file retry.
	FailureRate      float64
	RetryFailureRate float64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "pdfconv.db"
	c.OutputDir = "converted"
	c.DownloadDir = "downloads"
	c.StepDelay = 200 * time.Millisecond
	c.DownloadStagger = 500 * time.Millisecond
	c.DailyLimit = 20
	c.FailureRate = 0.10
	c.RetryFailureRate = 0.05
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

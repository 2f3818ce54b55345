// Package config loads runtime configuration for the pdfconv CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the state database
//	-o string   output directory for generated files
//	-w string   downloads directory
//	-s int      progress step delay (milliseconds)
//	-l int      daily conversion limit
//
// # JSON schema
//
// The JSON loader uses timex.Duration for delays, so values can be either
// strings like "200ms" or integer nanoseconds:
//
//	{
//	  "database_path": "pdfconv.db",
//	  "output_dir": "converted",
//	  "download_dir": "downloads",
//	  "step_delay": "200ms",
//	  "download_stagger": "500ms",
//	  "daily_limit": 20,
//	  "failure_rate": 0.1,
//	  "retry_failure_rate": 0.05
//	}
package config

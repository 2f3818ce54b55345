package config

import (
	"flag"
	"os"
	"time"

	"github.com/welovepdf/pdfconv/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the state database
//	-o string   output directory for generated files
//	-w string   downloads directory
//	-s int      progress step delay in milliseconds
//	-l int      daily conversion limit
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-o", "-w", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the state database")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "output directory for generated files")
	fs.StringVar(&cfg.DownloadDir, "w", cfg.DownloadDir, "downloads directory")
	stepDelay := fs.Int("s", int(cfg.StepDelay.Milliseconds()), "progress step delay (in milliseconds)")
	fs.IntVar(&cfg.DailyLimit, "l", cfg.DailyLimit, "daily conversion limit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StepDelay = time.Duration(*stepDelay) * time.Millisecond
}

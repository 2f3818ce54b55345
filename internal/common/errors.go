// Package common defines shared sentinel errors used across the services
// and CLI layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Workflow admission errors.
	ErrNoFiles      = errors.New("no files uploaded")
	ErrNoFormats    = errors.New("no output formats selected")
	ErrLimitReached = errors.New("daily conversion limit reached")

	// Upload validation errors.
	ErrInvalidFileType = errors.New("only PDF files are allowed")
	ErrFileTooLarge    = errors.New("file size must be less than 25MB")
	ErrTooManyFiles    = errors.New("maximum 10 files allowed")

	// Orchestrator state errors.
	ErrRunInProgress = errors.New("a conversion run is already in progress")
	ErrNotPaused     = errors.New("no paused run to resume")
	ErrFileNotFound  = errors.New("file not found")

	// Catalog errors.
	ErrUnknownFormat = errors.New("unknown format")
	ErrUnknownPreset = errors.New("unknown preset")
)

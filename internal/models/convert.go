package models

import "time"

// ConvertedFile is the result of converting one file to one format.
type ConvertedFile struct {
	Format ConversionFormat `json:"format"`

	// Location resolves to the produced payload on disk.
	Location string `json:"location"`

	// Filename is derived from the original name and the format extension.
	Filename string `json:"filename"`

	Size int64 `json:"size"`

	// DownloadCount grows by one per user-initiated download and is never
	// reset except by a fresh conversion replacing this result.
	DownloadCount int `json:"downloadCount"`
}

// HistoryEntry records one completed batch. Entries are append-only and
// kept newest first.
type HistoryEntry struct {
	Id string `json:"id"`

	// Timestamp is when the batch completed. It is serialized as RFC 3339
	// so a reloaded entry supports the same time operations as the
	// original value.
	Timestamp time.Time `json:"timestamp"`

	// OriginalFiles is the comma-joined list of original filenames.
	OriginalFiles string `json:"originalFile"`

	Formats  []ConversionFormat `json:"formats"`
	Settings FormatSettings     `json:"settings"`

	// Locations are the result locators produced by the batch.
	Locations []string `json:"downloadUrls"`
}

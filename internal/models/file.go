// Package models defines the data model shared by the conversion
// pipeline: uploaded files, output formats, conversion results,
// usage accounting and the persisted snapshot.
package models

// FileStatus is the lifecycle state of an uploaded file.
type FileStatus string

const (
	StatusPending    FileStatus = "pending"
	StatusProcessing FileStatus = "processing"
	StatusCompleted  FileStatus = "completed"
	StatusError      FileStatus = "error"
)

// ContentType classifies the dominant content of a PDF, as guessed by the
// analyzer. Purely advisory; it only influences format recommendations.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentTable ContentType = "table"
	ContentMixed ContentType = "mixed"
)

// UploadedFile is a file accepted into the conversion queue.
//
// Status and Progress are mutated exclusively by the orchestrator while a
// run is active. Progress is in [0,100] and never decreases within a run;
// it drops back to 0 only together with a transition to StatusPending.
type UploadedFile struct {
	// Id is a globally unique identifier assigned at upload time.
	Id string `json:"id"`

	// Path is the location of the original file on disk.
	Path string `json:"path"`

	Name string `json:"name"`
	Size int64  `json:"size"`

	Status   FileStatus `json:"status"`
	Progress int        `json:"progress"`

	// Error holds a user-facing message when Status is StatusError.
	Error string `json:"error,omitempty"`

	// ConvertedFiles holds this file's results once a run completes. The
	// entries are shared with the batch-wide completed list, so download
	// counters stay consistent across both views.
	ConvertedFiles []*ConvertedFile `json:"convertedFiles,omitempty"`

	// ContentType is the analyzer's guess, empty until analyzed.
	ContentType ContentType `json:"contentType,omitempty"`
}

// ResetState returns the file to its freshly-uploaded state: pending, zero
// progress, no error and no results.
func (f *UploadedFile) ResetState() {
	f.Status = StatusPending
	f.Progress = 0
	f.Error = ""
	f.ConvertedFiles = nil
}

package models

// Snapshot is the full persisted application state. It is owned entirely
// by the cache layer and written as one blob.
type Snapshot struct {
	UploadedFiles      []UploadedFile     `json:"uploadedFiles"`
	SelectedFormats    []ConversionFormat `json:"selectedFormats"`
	ConversionSettings FormatSettings     `json:"conversionSettings"`
	ConversionHistory  []HistoryEntry     `json:"conversionHistory"`

	// LastUpdated is epoch milliseconds and increases with every save.
	LastUpdated int64 `json:"lastUpdated"`
}

// SnapshotPatch is a partial snapshot for merge-by-field saves: nil fields
// keep their previously stored value, non-nil fields replace it wholesale.
type SnapshotPatch struct {
	UploadedFiles      *[]UploadedFile
	SelectedFormats    *[]ConversionFormat
	ConversionSettings *FormatSettings
	ConversionHistory  *[]HistoryEntry
}

// Apply overlays the patch onto s field by field.
func (p SnapshotPatch) Apply(s *Snapshot) {
	if p.UploadedFiles != nil {
		s.UploadedFiles = *p.UploadedFiles
	}
	if p.SelectedFormats != nil {
		s.SelectedFormats = *p.SelectedFormats
	}
	if p.ConversionSettings != nil {
		s.ConversionSettings = *p.ConversionSettings
	}
	if p.ConversionHistory != nil {
		s.ConversionHistory = *p.ConversionHistory
	}
}

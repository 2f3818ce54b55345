package models

// FormatCategory groups catalog formats for display.
type FormatCategory string

const (
	CategoryDocument FormatCategory = "document"
	CategoryImage    FormatCategory = "image"
	CategoryData     FormatCategory = "data"
	CategoryOther    FormatCategory = "other"
)

// RecommendationLevel expresses how well a format suits a given document.
type RecommendationLevel string

const (
	RecommendationRecommended RecommendationLevel = "recommended"
	RecommendationCaution     RecommendationLevel = "caution"
	RecommendationNotSuitable RecommendationLevel = "not-suitable"
)

// ConversionFormat is an immutable catalog entry describing one output
// format. The pipeline reads it by identity only and never mutates it.
type ConversionFormat struct {
	Id          string         `json:"id"`
	Name        string         `json:"name"`
	Extension   string         `json:"extension"`
	Description string         `json:"description,omitempty"`
	Category    FormatCategory `json:"category"`

	// Settings are per-format defaults, nil when the format has none.
	Settings *FormatSettings `json:"settings,omitempty"`

	RecommendationLevel RecommendationLevel `json:"recommendationLevel,omitempty"`

	// SuitableFor lists the content types this format handles well.
	SuitableFor []ContentType `json:"suitableFor,omitempty"`
}

// FormatSettings is a sparse conversion configuration. The pipeline passes
// it through untouched; only the generator interprets individual fields.
type FormatSettings struct {
	Quality       string `json:"quality,omitempty"`
	DPI           int    `json:"dpi,omitempty"`
	Compression   string `json:"compression,omitempty"`
	PageRange     string `json:"pageRange,omitempty"`
	OCRLanguage   string `json:"ocrLanguage,omitempty"`
	PreserveFonts bool   `json:"preserveFonts,omitempty"`
	ExtractTables bool   `json:"extractTables,omitempty"`
	ColorSpace    string `json:"colorSpace,omitempty"`
}

// ConversionPreset is a named bundle of settings shown in the settings view.
type ConversionPreset struct {
	Id          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Settings    FormatSettings `json:"settings"`
}

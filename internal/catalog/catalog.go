// Package catalog holds the static list of supported output formats and
// conversion presets. The pipeline reads entries by identity and never
// mutates them.
package catalog

import (
	"github.com/welovepdf/pdfconv/internal/common"
	"github.com/welovepdf/pdfconv/internal/models"
)

var formats = []models.ConversionFormat{
	{
		Id:                  "docx",
		Name:                "Word Document",
		Extension:           ".docx",
		Description:         "Editable Microsoft Word document",
		Category:            models.CategoryDocument,
		RecommendationLevel: models.RecommendationRecommended,
		SuitableFor:         []models.ContentType{models.ContentText, models.ContentMixed},
		Settings:            &models.FormatSettings{Quality: "high", PreserveFonts: true},
	},
	{
		Id:                  "xlsx",
		Name:                "Excel Spreadsheet",
		Extension:           ".xlsx",
		Description:         "Spreadsheet with extracted tables",
		Category:            models.CategoryData,
		RecommendationLevel: models.RecommendationCaution,
		SuitableFor:         []models.ContentType{models.ContentTable},
		Settings:            &models.FormatSettings{ExtractTables: true},
	},
	{
		Id:                  "pptx",
		Name:                "PowerPoint Presentation",
		Extension:           ".pptx",
		Description:         "One slide per page",
		Category:            models.CategoryDocument,
		RecommendationLevel: models.RecommendationCaution,
		SuitableFor:         []models.ContentType{models.ContentMixed, models.ContentImage},
	},
	{
		Id:                  "txt",
		Name:                "Plain Text",
		Extension:           ".txt",
		Description:         "Raw text without formatting",
		Category:            models.CategoryDocument,
		RecommendationLevel: models.RecommendationRecommended,
		SuitableFor:         []models.ContentType{models.ContentText},
	},
	{
		Id:                  "jpg",
		Name:                "JPEG Image",
		Extension:           ".jpg",
		Description:         "One image per page",
		Category:            models.CategoryImage,
		RecommendationLevel: models.RecommendationRecommended,
		SuitableFor:         []models.ContentType{models.ContentImage, models.ContentMixed},
		Settings:            &models.FormatSettings{Quality: "high", DPI: 150, ColorSpace: "rgb"},
	},
	{
		Id:                  "png",
		Name:                "PNG Image",
		Extension:           ".png",
		Description:         "Lossless image per page",
		Category:            models.CategoryImage,
		RecommendationLevel: models.RecommendationCaution,
		SuitableFor:         []models.ContentType{models.ContentImage},
		Settings:            &models.FormatSettings{DPI: 150, ColorSpace: "rgb"},
	},
	{
		Id:                  "csv",
		Name:                "CSV Data",
		Extension:           ".csv",
		Description:         "Comma-separated table data",
		Category:            models.CategoryData,
		RecommendationLevel: models.RecommendationCaution,
		SuitableFor:         []models.ContentType{models.ContentTable},
		Settings:            &models.FormatSettings{ExtractTables: true},
	},
	{
		Id:                  "html",
		Name:                "HTML Page",
		Extension:           ".html",
		Description:         "Web page preserving layout",
		Category:            models.CategoryOther,
		RecommendationLevel: models.RecommendationCaution,
		SuitableFor:         []models.ContentType{models.ContentText, models.ContentMixed},
	},
}

var presets = []models.ConversionPreset{
	{
		Id:          "best-quality",
		Name:        "Best Quality",
		Description: "Maximum fidelity, larger files",
		Settings:    models.FormatSettings{Quality: "maximum", DPI: 300, Compression: "none", PreserveFonts: true},
	},
	{
		Id:          "balanced",
		Name:        "Balanced",
		Description: "Good quality at reasonable size",
		Settings:    models.FormatSettings{Quality: "high", DPI: 150, Compression: "low", PreserveFonts: true},
	},
	{
		Id:          "fast",
		Name:        "Fast",
		Description: "Quick conversion, smaller files",
		Settings:    models.FormatSettings{Quality: "medium", DPI: 96, Compression: "medium"},
	},
	{
		Id:          "mobile",
		Name:        "Mobile Friendly",
		Description: "Optimized for small screens",
		Settings:    models.FormatSettings{Quality: "low", DPI: 72, Compression: "high", ColorSpace: "rgb"},
	},
}

// Formats returns all catalog entries.
func Formats() []models.ConversionFormat {
	out := make([]models.ConversionFormat, len(formats))
	copy(out, formats)
	return out
}

// FormatByID looks up a single format.
func FormatByID(id string) (models.ConversionFormat, error) {
	for _, f := range formats {
		if f.Id == id {
			return f, nil
		}
	}
	return models.ConversionFormat{}, common.ErrUnknownFormat
}

// Presets returns all conversion presets.
func Presets() []models.ConversionPreset {
	out := make([]models.ConversionPreset, len(presets))
	copy(out, presets)
	return out
}

// PresetByID looks up a single preset.
func PresetByID(id string) (models.ConversionPreset, error) {
	for _, p := range presets {
		if p.Id == id {
			return p, nil
		}
	}
	return models.ConversionPreset{}, common.ErrUnknownPreset
}

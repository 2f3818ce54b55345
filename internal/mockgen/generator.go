// Package mockgen fabricates placeholder conversion outputs. No real
// transcoding happens anywhere in the application; this package produces
// small format-correct payloads so downloads and sizes behave plausibly.
package mockgen

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/welovepdf/pdfconv/internal/models"
)

// Generator produces the payload for one successful (file, format) pair.
type Generator interface {
	CreateMockFile(format models.ConversionFormat, originalName string) (models.ConvertedFile, error)
}

// FileGenerator writes payloads under a base output directory. Each result
// lands in its own subdirectory so identical filenames from different
// pairs never collide.
type FileGenerator struct {
	outDir string
}

func NewFileGenerator(outDir string) *FileGenerator {
	return &FileGenerator{outDir: outDir}
}

// 1×1 pixel images, enough for a payload with the right magic bytes.
const (
	pixelPNG  = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8/5+hHgAHggJ/PchI7wAAAABJRU5ErkJggg=="
	pixelJPEG = "/9j/4AAQSkZJRgABAQEAYABgAAD/2wBDAAEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQH/wAARCAABAAEDASIAAhEBAxEB/8QAFQABAQAAAAAAAAAAAAAAAAAAAAv/xAAUEAEAAAAAAAAAAAAAAAAAAAAA/8QAFQEBAQAAAAAAAAAAAAAAAAAAAAX/xAAUEQEAAAAAAAAAAAAAAAAAAAAA/9oADAMBAAIRAxEAPwA/8A8A"
)

// CreateMockFile writes a placeholder payload for the pair and returns its
// descriptor. The generated filename is derived deterministically from the
// original name and the format extension.
func (g *FileGenerator) CreateMockFile(format models.ConversionFormat, originalName string) (models.ConvertedFile, error) {
	content, err := payloadFor(format, originalName)
	if err != nil {
		return models.ConvertedFile{}, err
	}

	filename := GeneratedFilename(originalName, format)

	dir := filepath.Join(g.outDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return models.ConvertedFile{}, fmt.Errorf("error creating output dir: %w", err)
	}

	location := filepath.Join(dir, filename)
	if err := os.WriteFile(location, content, 0o660); err != nil {
		return models.ConvertedFile{}, fmt.Errorf("error writing output file: %w", err)
	}

	return models.ConvertedFile{
		Format:   format,
		Location: location,
		Filename: filename,
		Size:     int64(len(content)),
	}, nil
}

// GeneratedFilename derives the output filename for a pair:
// "<original stem>_converted<extension>".
func GeneratedFilename(originalName string, format models.ConversionFormat) string {
	stem := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	return stem + "_converted" + format.Extension
}

func payloadFor(format models.ConversionFormat, originalName string) ([]byte, error) {
	switch format.Id {
	case "docx":
		return docxPayload(originalName), nil
	case "xlsx":
		return xlsxPayload(originalName), nil
	case "jpg", "jpeg":
		return base64.StdEncoding.DecodeString(pixelJPEG)
	case "png":
		return base64.StdEncoding.DecodeString(pixelPNG)
	case "txt":
		return textPayload(originalName, "Sample converted text"), nil
	default:
		return textPayload(originalName, fmt.Sprintf("Mock %s content", format.Name)), nil
	}
}

func docxPayload(originalName string) []byte {
	const tmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Converted from: %s</w:t></w:r></w:p>
    <w:p><w:r><w:t>This is a mock conversion for demonstration purposes.</w:t></w:r></w:p>
  </w:body>
</w:document>`
	return []byte(fmt.Sprintf(tmpl, originalName))
}

func xlsxPayload(originalName string) []byte {
	const tmpl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1"><c r="A1" t="inlineStr"><is><t>Converted from: %s</t></is></c></row>
    <row r="2"><c r="A2" t="inlineStr"><is><t>Sample Data 1</t></is></c><c r="B2" t="inlineStr"><is><t>Sample Data 2</t></is></c></row>
  </sheetData>
</worksheet>`
	return []byte(fmt.Sprintf(tmpl, originalName))
}

func textPayload(originalName, body string) []byte {
	return []byte(fmt.Sprintf(`Converted from: %s

%s

This is a mock conversion for demonstration purposes.
The original PDF content would appear here in a real conversion.
`, originalName, body))
}

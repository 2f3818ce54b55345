package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/welovepdf/pdfconv/internal/catalog"
)

// getSimpleText is an indirection used to facilitate testing.
var getSimpleText = GetSimpleText

// Formats prints the catalog with recommendations for the uploaded content.
func (a *App) Formats(ctx context.Context) error {
	selected := make(map[string]bool)
	for _, f := range a.workflow.SelectedFormats() {
		selected[f.Id] = true
	}

	for _, f := range catalog.Formats() {
		marker := " "
		if selected[f.Id] {
			marker = "*"
		}
		fmt.Printf("%s %-5s %-20s %s (%s)\n", marker, f.Id, f.Name, f.Description, f.RecommendationLevel)
	}

	fmt.Println("\nPresets:")
	for _, p := range catalog.Presets() {
		fmt.Printf("  %-13s %s\n", p.Id, p.Description)
	}
	return nil
}

// Select replaces the selected format set.
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: select <format-id> [format-id ...]")
		return nil
	}
	if err := a.workflow.SelectFormats(ctx, args); err != nil {
		return err
	}
	fmt.Printf("Selected %d format(s)\n", len(args))
	return nil
}

// Settings interactively edits the shared conversion settings. Empty input
// keeps the current value.
func (a *App) Settings(ctx context.Context) error {
	s := a.workflow.Settings()

	quality, err := getSimpleText(a.reader, fmt.Sprintf("Quality [%s]", s.Quality), os.Stdout)
	if err != nil {
		return err
	}
	if quality != "" {
		s.Quality = quality
	}

	dpi, err := getSimpleText(a.reader, fmt.Sprintf("DPI [%d]", s.DPI), os.Stdout)
	if err != nil {
		return err
	}
	if dpi != "" {
		v, convErr := strconv.Atoi(dpi)
		if convErr != nil {
			return fmt.Errorf("invalid DPI %q", dpi)
		}
		s.DPI = v
	}

	compression, err := getSimpleText(a.reader, fmt.Sprintf("Compression [%s]", s.Compression), os.Stdout)
	if err != nil {
		return err
	}
	if compression != "" {
		s.Compression = compression
	}

	pageRange, err := getSimpleText(a.reader, fmt.Sprintf("Page range [%s]", s.PageRange), os.Stdout)
	if err != nil {
		return err
	}
	if pageRange != "" {
		s.PageRange = pageRange
	}

	a.workflow.UpdateSettings(ctx, s)
	fmt.Println("Settings updated")
	return nil
}

// Preset replaces the settings with a named bundle.
func (a *App) Preset(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: preset <preset-id>")
		return nil
	}
	if err := a.workflow.ApplyPreset(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Applied preset", args[0])
	return nil
}

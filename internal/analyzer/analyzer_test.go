package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/welovepdf/pdfconv/internal/models"
)

func newTestAnalyzer(r float64) *Analyzer {
	return &Analyzer{Delay: 0, RandFloat: func() float64 { return r }}
}

func TestAnalyzeContent_FilenamePatterns(t *testing.T) {
	a := newTestAnalyzer(0.5)
	ctx := context.Background()

	tests := []struct {
		name string
		want models.ContentType
	}{
		{"holiday-photo.pdf", models.ContentImage},
		{"Scan_2024.pdf", models.ContentImage},
		{"sales-report.pdf", models.ContentTable},
		{"data-export.pdf", models.ContentTable},
		{"cover-letter.pdf", models.ContentText},
		{"my-document.pdf", models.ContentText},
	}

	for _, tc := range tests {
		got, err := a.AnalyzeContent(ctx, tc.name, 2*1024*1024)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "file %s", tc.name)
	}
}

func TestAnalyzeContent_SizeHeuristics(t *testing.T) {
	ctx := context.Background()

	// small files are treated as text-only
	got, err := newTestAnalyzer(0.5).AnalyzeContent(ctx, "misc.pdf", 100*1024)
	require.NoError(t, err)
	require.Equal(t, models.ContentText, got)

	// large files lean image-heavy depending on the draw
	got, err = newTestAnalyzer(0.9).AnalyzeContent(ctx, "misc.pdf", 20*1024*1024)
	require.NoError(t, err)
	require.Equal(t, models.ContentImage, got)

	got, err = newTestAnalyzer(0.1).AnalyzeContent(ctx, "misc.pdf", 20*1024*1024)
	require.NoError(t, err)
	require.Equal(t, models.ContentMixed, got)
}

func TestAnalyzeContent_WeightedGuess(t *testing.T) {
	ctx := context.Background()
	size := int64(5 * 1024 * 1024)

	tests := []struct {
		r    float64
		want models.ContentType
	}{
		{0.1, models.ContentText},
		{0.5, models.ContentImage},
		{0.7, models.ContentTable},
		{0.9, models.ContentMixed},
	}
	for _, tc := range tests {
		got, err := newTestAnalyzer(tc.r).AnalyzeContent(ctx, "misc.pdf", size)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "draw %v", tc.r)
	}
}

func TestAnalyzeContent_InvalidInputDefaultsToMixed(t *testing.T) {
	a := newTestAnalyzer(0.5)
	ctx := context.Background()

	got, err := a.AnalyzeContent(ctx, "", 123)
	require.NoError(t, err)
	require.Equal(t, models.ContentMixed, got)

	got, err = a.AnalyzeContent(ctx, "x.pdf", -1)
	require.NoError(t, err)
	require.Equal(t, models.ContentMixed, got)
}

func TestDescription_CoversAllTypes(t *testing.T) {
	for _, ct := range []models.ContentType{
		models.ContentText, models.ContentImage, models.ContentTable, models.ContentMixed,
	} {
		require.NotEqual(t, "Unknown content type", Description(ct))
	}
	require.Equal(t, "Unknown content type", Description(models.ContentType("weird")))
}

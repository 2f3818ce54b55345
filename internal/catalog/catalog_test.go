package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/welovepdf/pdfconv/internal/common"
)

func TestFormatByID(t *testing.T) {
	f, err := FormatByID("docx")
	require.NoError(t, err)
	require.Equal(t, ".docx", f.Extension)

	_, err = FormatByID("bmp")
	require.ErrorIs(t, err, common.ErrUnknownFormat)
}

func TestFormats_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range Formats() {
		require.False(t, seen[f.Id], "duplicate format id %s", f.Id)
		seen[f.Id] = true
		require.NotEmpty(t, f.Name)
		require.NotEmpty(t, f.Extension)
	}
}

func TestFormats_ReturnsCopy(t *testing.T) {
	a := Formats()
	a[0].Name = "mutated"

	b := Formats()
	require.NotEqual(t, "mutated", b[0].Name)
}

func TestPresetByID(t *testing.T) {
	p, err := PresetByID("balanced")
	require.NoError(t, err)
	require.Equal(t, "high", p.Settings.Quality)

	_, err = PresetByID("turbo")
	require.ErrorIs(t, err, common.ErrUnknownPreset)
}

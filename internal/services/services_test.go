package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/welovepdf/pdfconv/internal/logging"
	"github.com/welovepdf/pdfconv/internal/models"
	"github.com/welovepdf/pdfconv/internal/storage"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(context.Background(), dsn)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubGenerator records calls and fabricates results without touching
// the filesystem.
type stubGenerator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (g *stubGenerator) CreateMockFile(format models.ConversionFormat, originalName string) (models.ConvertedFile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	if g.err != nil {
		return models.ConvertedFile{}, g.err
	}
	return models.ConvertedFile{
		Format:   format,
		Location: fmt.Sprintf("/tmp/out-%d%s", g.calls, format.Extension),
		Filename: fmt.Sprintf("%s_converted%s", originalName, format.Extension),
		Size:     1024,
	}, nil
}

func testFormats(n int) []models.ConversionFormat {
	all := []models.ConversionFormat{
		{Id: "docx", Name: "Word Document", Extension: ".docx"},
		{Id: "txt", Name: "Plain Text", Extension: ".txt"},
		{Id: "jpg", Name: "JPEG Image", Extension: ".jpg"},
	}
	return all[:n]
}

func testFiles(n int) []*models.UploadedFile {
	files := make([]*models.UploadedFile, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, &models.UploadedFile{
			Id:     fmt.Sprintf("file-%d", i),
			Name:   fmt.Sprintf("report-%d.pdf", i),
			Path:   fmt.Sprintf("/tmp/report-%d.pdf", i),
			Size:   2048,
			Status: models.StatusPending,
		})
	}
	return files
}

package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/welovepdf/pdfconv/internal/logging"
	"github.com/welovepdf/pdfconv/internal/models"
)

// DownloadService copies conversion results into the downloads directory.
type DownloadService struct {
	dir     string
	stagger time.Duration
	logger  logging.Logger

	// sleep is a test seam for the stagger delay.
	sleep func(time.Duration)
}

func NewDownloadService(dir string, stagger time.Duration, logger logging.Logger) *DownloadService {
	return &DownloadService{dir: dir, stagger: stagger, logger: logger, sleep: time.Sleep}
}

// DownloadSingle copies one result into the downloads directory and
// increments its download counter. The counter only ever grows.
func (s *DownloadService) DownloadSingle(ctx context.Context, result *models.ConvertedFile) error {
	content, err := os.ReadFile(result.Location)
	if err != nil {
		return fmt.Errorf("error reading converted file: %w", err)
	}

	target := filepath.Join(s.dir, result.Filename)
	if err := os.WriteFile(target, content, 0o660); err != nil {
		return fmt.Errorf("error writing download: %w", err)
	}

	result.DownloadCount++
	s.logger.Info(ctx, "downloaded", "file", result.Filename, "count", result.DownloadCount)
	return nil
}

// DownloadAll downloads every result, staggered by a fixed delay so the
// receiving side is not flooded. A failed download is logged and does not
// stop the remaining ones.
func (s *DownloadService) DownloadAll(ctx context.Context, results []*models.ConvertedFile) {
	for i, result := range results {
		if i > 0 {
			s.sleep(s.stagger)
		}
		if err := s.DownloadSingle(ctx, result); err != nil {
			s.logger.Error(ctx, "download failed", "file", result.Filename, "error", err)
		}
	}
}

// Package services implements the conversion pipeline core: the
// persistence cache, the daily usage quota, the batch orchestrator,
// downloads and the workflow controller tying them together.
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/welovepdf/pdfconv/internal/logging"
	"github.com/welovepdf/pdfconv/internal/models"
	"github.com/welovepdf/pdfconv/internal/repositories/kv"
)

const (
	cacheKey    = "welove-pdf-cache"
	cacheExpiry = 7 * 24 * time.Hour
)

// CacheService persists the application snapshot as one JSON blob with a
// fixed expiry. Storage failures are logged and masked behind defaults;
// callers never see an error from this layer.
type CacheService struct {
	repo   kv.Repository
	logger logging.Logger

	// now is a test seam for the clock.
	now func() time.Time
}

func NewCacheService(repo kv.Repository, logger logging.Logger) *CacheService {
	return &CacheService{repo: repo, logger: logger, now: time.Now}
}

// Save merges the patch into the last stored snapshot (absent fields keep
// their stored value) and writes it back with a fresh lastUpdated.
// lastUpdated strictly increases across saves even within one millisecond.
func (s *CacheService) Save(ctx context.Context, patch models.SnapshotPatch) {
	snapshot := s.Load(ctx)
	patch.Apply(&snapshot)

	stamp := s.now().UnixMilli()
	if stamp <= snapshot.LastUpdated {
		stamp = snapshot.LastUpdated + 1
	}
	snapshot.LastUpdated = stamp

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Warn(ctx, "failed to serialize cache", "error", err)
		return
	}
	if err := s.repo.Set(ctx, cacheKey, data); err != nil {
		s.logger.Warn(ctx, "failed to save to cache", "error", err)
	}
}

// Load returns the stored snapshot, or a default empty one when the blob
// is absent, corrupt or older than the expiry window. An expired blob is
// also cleared as a side effect.
func (s *CacheService) Load(ctx context.Context) models.Snapshot {
	data, err := s.repo.Get(ctx, cacheKey)
	if err != nil {
		s.logger.Warn(ctx, "failed to load from cache", "error", err)
		return s.defaultSnapshot()
	}
	if data == nil {
		return s.defaultSnapshot()
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.Warn(ctx, "corrupt cache blob", "error", err)
		return s.defaultSnapshot()
	}

	if s.now().UnixMilli()-snapshot.LastUpdated > cacheExpiry.Milliseconds() {
		s.Clear(ctx)
		return s.defaultSnapshot()
	}

	return snapshot
}

// Clear removes the persisted blob. Clearing an absent blob is a no-op.
func (s *CacheService) Clear(ctx context.Context) {
	if err := s.repo.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn(ctx, "failed to clear cache", "error", err)
	}
}

// Size returns the human-readable size of the serialized blob, "0 B" when
// nothing is stored.
func (s *CacheService) Size(ctx context.Context) string {
	data, err := s.repo.Get(ctx, cacheKey)
	if err != nil || data == nil {
		return "0 B"
	}
	return humanize.Bytes(uint64(len(data)))
}

// IsSupported reports whether the underlying storage is usable.
func (s *CacheService) IsSupported(ctx context.Context) bool {
	return s.repo.Probe(ctx)
}

// defaultSnapshot carries a zero LastUpdated so the first save stamps the
// actual clock instead of tripping the monotonic guard.
func (s *CacheService) defaultSnapshot() models.Snapshot {
	return models.Snapshot{
		UploadedFiles:     []models.UploadedFile{},
		SelectedFormats:   []models.ConversionFormat{},
		ConversionHistory: []models.HistoryEntry{},
	}
}

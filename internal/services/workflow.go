package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/welovepdf/pdfconv/internal/analyzer"
	"github.com/welovepdf/pdfconv/internal/catalog"
	"github.com/welovepdf/pdfconv/internal/common"
	"github.com/welovepdf/pdfconv/internal/logging"
	"github.com/welovepdf/pdfconv/internal/mockgen"
	"github.com/welovepdf/pdfconv/internal/models"
	"github.com/welovepdf/pdfconv/internal/repositories/kv"
)

// View identifies the active application view. Leaving the convert view
// resets file statuses so stale progress never leaks into a later visit.
type View string

const (
	ViewUpload  View = "upload"
	ViewFormats View = "formats"
	ViewConvert View = "convert"
	ViewHistory View = "history"
)

const (
	tourKey     = "welove-pdf-tour-completed"
	maxFiles    = 10
	maxFileSize = 25 * 1024 * 1024
)

// CacheInfo summarizes the persistence cache for display.
type CacheInfo struct {
	Size        string
	Supported   bool
	LastUpdated int64
}

// Workflow is the controller around the core: it owns the uploaded file
// list, the selected formats, settings and history, gates runs through
// the quota, and persists a snapshot of everything on each change.
type Workflow struct {
	mu sync.Mutex

	logger    logging.Logger
	cache     *CacheService
	quota     *QuotaService
	orch      *Orchestrator
	downloads *DownloadService
	analyzer  *analyzer.Analyzer
	generator mockgen.Generator
	repo      kv.Repository

	files    []*models.UploadedFile
	formats  []models.ConversionFormat
	settings models.FormatSettings
	history  []models.HistoryEntry
	view     View

	// now is a test seam for history timestamps.
	now func() time.Time
}

func NewWorkflow(
	cache *CacheService,
	quota *QuotaService,
	orch *Orchestrator,
	downloads *DownloadService,
	an *analyzer.Analyzer,
	generator mockgen.Generator,
	repo kv.Repository,
	logger logging.Logger,
) *Workflow {
	w := &Workflow{
		logger:    logger,
		cache:     cache,
		quota:     quota,
		orch:      orch,
		downloads: downloads,
		analyzer:  an,
		generator: generator,
		repo:      repo,
		view:      ViewUpload,
		now:       time.Now,
	}
	orch.SetCallbacks(w.onFilesUpdate, w.onConversionComplete)
	return w
}

// Rehydrate restores files, formats, settings and history from the cache.
// It should be called once at startup, before any mutation.
func (w *Workflow) Rehydrate(ctx context.Context) {
	snapshot := w.cache.Load(ctx)

	w.mu.Lock()
	w.files = make([]*models.UploadedFile, 0, len(snapshot.UploadedFiles))
	for i := range snapshot.UploadedFiles {
		f := snapshot.UploadedFiles[i]
		w.files = append(w.files, &f)
	}
	w.formats = snapshot.SelectedFormats
	w.settings = snapshot.ConversionSettings
	w.history = snapshot.ConversionHistory
	w.mu.Unlock()
}

// AddFiles validates and admits the given paths. Rejected paths never
// enter the list; each is reported with a user-facing message. Exceeding
// the file cap rejects the whole addition.
func (w *Workflow) AddFiles(ctx context.Context, paths []string) (accepted []models.UploadedFile, rejected []string, err error) {
	var valid []*models.UploadedFile

	for _, path := range paths {
		info, statErr := os.Stat(path)
		switch {
		case statErr != nil:
			rejected = append(rejected, fmt.Sprintf("%s: file not readable", path))
		case info.Name() == "":
			rejected = append(rejected, fmt.Sprintf("%s: invalid file", path))
		case !strings.EqualFold(filepath.Ext(info.Name()), ".pdf"):
			rejected = append(rejected, fmt.Sprintf("%s: %s", info.Name(), common.ErrInvalidFileType))
		case info.Size() > maxFileSize:
			rejected = append(rejected, fmt.Sprintf("%s: %s", info.Name(), common.ErrFileTooLarge))
		default:
			valid = append(valid, &models.UploadedFile{
				Id:     uuid.NewString(),
				Path:   path,
				Name:   info.Name(),
				Size:   info.Size(),
				Status: models.StatusPending,
			})
		}
	}

	w.mu.Lock()
	if len(w.files)+len(valid) > maxFiles {
		w.mu.Unlock()
		return nil, rejected, common.ErrTooManyFiles
	}
	w.files = append(w.files, valid...)
	w.mu.Unlock()

	for _, f := range valid {
		ct, aerr := w.analyzer.AnalyzeContent(ctx, f.Name, f.Size)
		if aerr != nil {
			ct = models.ContentMixed
		}
		w.mu.Lock()
		f.ContentType = ct
		w.mu.Unlock()
		accepted = append(accepted, *f)
	}

	w.persist(ctx)
	return accepted, rejected, nil
}

// RemoveFile drops one file from the list.
func (w *Workflow) RemoveFile(ctx context.Context, id string) error {
	w.mu.Lock()
	found := false
	kept := w.files[:0]
	for _, f := range w.files {
		if f.Id == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	w.files = kept
	w.mu.Unlock()

	if !found {
		return common.ErrFileNotFound
	}
	w.persist(ctx)
	return nil
}

// ClearFiles drops the whole list.
func (w *Workflow) ClearFiles(ctx context.Context) {
	w.mu.Lock()
	w.files = nil
	w.mu.Unlock()
	w.persist(ctx)
}

// Files returns a copy of the list for display.
func (w *Workflow) Files() []models.UploadedFile {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.UploadedFile, len(w.files))
	for i, f := range w.files {
		out[i] = *f
	}
	return out
}

// SelectFormats replaces the selected format set. Unknown ids fail the
// whole selection.
func (w *Workflow) SelectFormats(ctx context.Context, ids []string) error {
	formats := make([]models.ConversionFormat, 0, len(ids))
	for _, id := range ids {
		f, err := catalog.FormatByID(id)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		formats = append(formats, f)
	}

	w.mu.Lock()
	w.formats = formats
	w.mu.Unlock()
	w.persist(ctx)
	return nil
}

// SelectedFormats returns the current selection.
func (w *Workflow) SelectedFormats() []models.ConversionFormat {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.ConversionFormat, len(w.formats))
	copy(out, w.formats)
	return out
}

// UpdateSettings replaces the conversion settings wholesale.
func (w *Workflow) UpdateSettings(ctx context.Context, s models.FormatSettings) {
	w.mu.Lock()
	w.settings = s
	w.mu.Unlock()
	w.persist(ctx)
}

// Settings returns the current conversion settings.
func (w *Workflow) Settings() models.FormatSettings {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.settings
}

// ApplyPreset replaces the settings with a preset's bundle.
func (w *Workflow) ApplyPreset(ctx context.Context, id string) error {
	p, err := catalog.PresetByID(id)
	if err != nil {
		return err
	}
	w.UpdateSettings(ctx, p.Settings)
	return nil
}

// StartConversion checks admission (files present, formats selected,
// quota not exhausted), counts the run against the quota and drives the
// batch to completion or pause. It blocks for the duration of the run;
// interactive callers wrap it in a goroutine.
func (w *Workflow) StartConversion(ctx context.Context) error {
	w.mu.Lock()
	if len(w.files) == 0 {
		w.view = ViewUpload
		w.mu.Unlock()
		return common.ErrNoFiles
	}
	if len(w.formats) == 0 {
		w.view = ViewFormats
		w.mu.Unlock()
		return common.ErrNoFormats
	}
	files := w.files
	formats := make([]models.ConversionFormat, len(w.formats))
	copy(formats, w.formats)
	settings := w.settings
	w.mu.Unlock()

	if !w.quota.CanConvert(ctx) {
		return fmt.Errorf("%w: limit resets in %s", common.ErrLimitReached, w.quota.TimeUntilReset())
	}
	if !w.quota.IncrementUsage(ctx) {
		return fmt.Errorf("%w: limit resets in %s", common.ErrLimitReached, w.quota.TimeUntilReset())
	}

	w.mu.Lock()
	w.view = ViewConvert
	w.mu.Unlock()

	return w.orch.Start(ctx, files, formats, settings)
}

// Pause, Resume, Reset and Retry delegate to the orchestrator.
func (w *Workflow) Pause() { w.orch.Pause() }

func (w *Workflow) Resume(ctx context.Context) error { return w.orch.Resume(ctx) }

func (w *Workflow) Reset(ctx context.Context) error {
	if err := w.orch.Reset(); err != nil {
		return err
	}
	w.persist(ctx)
	return nil
}

func (w *Workflow) Retry(ctx context.Context, fileID string) error {
	return w.orch.Retry(ctx, fileID)
}

// SetView switches the active view. Leaving the convert view discards run
// state so every file shows as pending next time. View changes are
// rejected while a run is active.
func (w *Workflow) SetView(ctx context.Context, v View) error {
	if s := w.orch.State(); s == StateRunning || s == StateRetrying {
		return common.ErrRunInProgress
	}

	w.mu.Lock()
	leavingConvert := w.view == ViewConvert && v != ViewConvert
	w.view = v
	w.mu.Unlock()

	if leavingConvert {
		if err := w.orch.Reset(); err != nil {
			return err
		}
		w.persist(ctx)
	}
	return nil
}

// ActiveView returns the current view.
func (w *Workflow) ActiveView() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view
}

// History returns entries whose original filenames or format names
// contain the filter, newest first. An empty filter returns everything.
func (w *Workflow) History(filter string) []models.HistoryEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	if filter == "" {
		out := make([]models.HistoryEntry, len(w.history))
		copy(out, w.history)
		return out
	}

	needle := strings.ToLower(filter)
	var out []models.HistoryEntry
	for _, e := range w.history {
		if strings.Contains(strings.ToLower(e.OriginalFiles), needle) || matchesFormat(e.Formats, needle) {
			out = append(out, e)
		}
	}
	return out
}

// RedownloadEntry regenerates and downloads every output of a past batch.
func (w *Workflow) RedownloadEntry(ctx context.Context, entryID string) error {
	w.mu.Lock()
	var entry *models.HistoryEntry
	for i := range w.history {
		if w.history[i].Id == entryID {
			entry = &w.history[i]
			break
		}
	}
	w.mu.Unlock()

	if entry == nil {
		return common.ErrFileNotFound
	}

	for _, name := range strings.Split(entry.OriginalFiles, ", ") {
		for _, format := range entry.Formats {
			result, err := w.generator.CreateMockFile(format, name)
			if err != nil {
				return fmt.Errorf("error regenerating %s: %w", name, err)
			}
			if err := w.downloads.DownloadSingle(ctx, &result); err != nil {
				return err
			}
		}
	}
	return nil
}

// DownloadResult downloads one completed result by its position in the
// batch-wide completed list.
func (w *Workflow) DownloadResult(ctx context.Context, index int) error {
	results := w.orch.Completed()
	if index < 0 || index >= len(results) {
		return common.ErrFileNotFound
	}
	return w.downloads.DownloadSingle(ctx, results[index])
}

// DownloadAll downloads every completed result, staggered.
func (w *Workflow) DownloadAll(ctx context.Context) {
	w.downloads.DownloadAll(ctx, w.orch.Completed())
}

// CompletedResults exposes the orchestrator's batch-wide result list.
func (w *Workflow) CompletedResults() []*models.ConvertedFile {
	return w.orch.Completed()
}

// RunState, OverallProgress, CurrentFile and TotalConversions expose the
// orchestrator's progress for display.
func (w *Workflow) RunState() RunState { return w.orch.State() }

func (w *Workflow) OverallProgress() int { return w.orch.OverallProgress() }

func (w *Workflow) CurrentFile() string { return w.orch.CurrentFile() }

func (w *Workflow) TotalConversions() int { return w.orch.TotalConversions() }

// UsageInfo exposes the quota summary.
func (w *Workflow) UsageInfo(ctx context.Context) models.UsageInfo {
	return w.quota.UsageInfo(ctx)
}

// TimeUntilReset exposes the quota reset countdown.
func (w *Workflow) TimeUntilReset() string {
	return w.quota.TimeUntilReset()
}

// CacheInfo summarizes the persistence cache.
func (w *Workflow) CacheInfo(ctx context.Context) CacheInfo {
	return CacheInfo{
		Size:        w.cache.Size(ctx),
		Supported:   w.cache.IsSupported(ctx),
		LastUpdated: w.cache.Load(ctx).LastUpdated,
	}
}

// ClearCache removes the persisted snapshot.
func (w *Workflow) ClearCache(ctx context.Context) {
	w.cache.Clear(ctx)
}

// TourCompleted reports whether onboarding was finished on this
// installation. The flag has no expiry.
func (w *Workflow) TourCompleted(ctx context.Context) bool {
	v, err := w.repo.Get(ctx, tourKey)
	if err != nil {
		w.logger.Warn(ctx, "failed to read tour flag", "error", err)
		return false
	}
	return string(v) == "true"
}

// CompleteTour marks onboarding as finished.
func (w *Workflow) CompleteTour(ctx context.Context) {
	if err := w.repo.Set(ctx, tourKey, []byte("true")); err != nil {
		w.logger.Warn(ctx, "failed to save tour flag", "error", err)
	}
}

// ResetTour clears the onboarding flag so the tour shows again.
func (w *Workflow) ResetTour(ctx context.Context) {
	if err := w.repo.Delete(ctx, tourKey); err != nil {
		w.logger.Warn(ctx, "failed to reset tour flag", "error", err)
	}
}

// onFilesUpdate persists the file list on every orchestrator progress change.
func (w *Workflow) onFilesUpdate(files []models.UploadedFile) {
	ctx := context.Background()
	w.cache.Save(ctx, models.SnapshotPatch{UploadedFiles: &files})
}

// onConversionComplete records a history entry for the finished batch and
// clears the format selection, exactly once per run.
func (w *Workflow) onConversionComplete() {
	ctx := context.Background()

	w.mu.Lock()
	names := make([]string, 0, len(w.files))
	for _, f := range w.files {
		names = append(names, f.Name)
	}

	locations := make([]string, 0)
	for _, r := range w.orch.Completed() {
		locations = append(locations, r.Location)
	}

	entry := models.HistoryEntry{
		Id:            uuid.NewString(),
		Timestamp:     w.now(),
		OriginalFiles: strings.Join(names, ", "),
		Formats:       w.formats,
		Settings:      w.settings,
		Locations:     locations,
	}
	w.history = append([]models.HistoryEntry{entry}, w.history...)
	w.formats = nil
	w.mu.Unlock()

	w.persist(ctx)
}

// persist saves the full state snapshot.
func (w *Workflow) persist(ctx context.Context) {
	w.mu.Lock()
	files := make([]models.UploadedFile, len(w.files))
	for i, f := range w.files {
		files[i] = *f
	}
	formats := make([]models.ConversionFormat, len(w.formats))
	copy(formats, w.formats)
	settings := w.settings
	history := make([]models.HistoryEntry, len(w.history))
	copy(history, w.history)
	w.mu.Unlock()

	w.cache.Save(ctx, models.SnapshotPatch{
		UploadedFiles:      &files,
		SelectedFormats:    &formats,
		ConversionSettings: &settings,
		ConversionHistory:  &history,
	})
}

func matchesFormat(formats []models.ConversionFormat, needle string) bool {
	for _, f := range formats {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			return true
		}
	}
	return false
}

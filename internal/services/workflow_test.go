package services

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/welovepdf/pdfconv/internal/analyzer"
	"github.com/welovepdf/pdfconv/internal/common"
	"github.com/welovepdf/pdfconv/internal/mockgen"
	"github.com/welovepdf/pdfconv/internal/models"
	"github.com/welovepdf/pdfconv/internal/repositories/kv"
)

type workflowFixture struct {
	db          *sql.DB
	repo        kv.Repository
	cache       *CacheService
	quota       *QuotaService
	w           *Workflow
	downloadDir string
}

func newTestWorkflow(t *testing.T, limit int) *workflowFixture {
	t.Helper()

	db := setupDB(t)
	logger := testLogger()
	repo := kv.NewSQLiteRepository(db)
	cache := NewCacheService(repo, logger)
	quota := NewQuotaService(db, limit, logger)

	gen := mockgen.NewFileGenerator(t.TempDir())
	orch := NewOrchestrator(gen, logger, OrchestratorOptions{
		FailureRate:      0.1,
		RetryFailureRate: 0.05,
		RandFloat:        neverFail,
		Sleep:            noSleep,
	})

	downloadDir := t.TempDir()
	downloads := NewDownloadService(downloadDir, 0, logger)
	downloads.sleep = func(time.Duration) {}

	an := analyzer.New()
	an.Delay = 0

	w := NewWorkflow(cache, quota, orch, downloads, an, gen, repo, logger)
	w.Rehydrate(context.Background())

	return &workflowFixture{
		db:          db,
		repo:        repo,
		cache:       cache,
		quota:       quota,
		w:           w,
		downloadDir: downloadDir,
	}
}

func makePDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o660))
	return path
}

func TestWorkflowAddFiles_AdmitsPDFs(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)
	dir := t.TempDir()

	accepted, rejected, err := fx.w.AddFiles(ctx, []string{
		makePDF(t, dir, "invoice.pdf"),
		makePDF(t, dir, "scan.PDF"),
	})

	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, accepted, 2)
	for _, f := range accepted {
		assert.NotEmpty(t, f.Id)
		assert.Equal(t, models.StatusPending, f.Status)
		assert.NotEmpty(t, f.ContentType)
	}

	assert.Len(t, fx.w.Files(), 2)
}

func TestWorkflowAddFiles_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)
	dir := t.TempDir()

	notPDF := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notPDF, []byte("text"), 0o660))

	huge := filepath.Join(dir, "huge.pdf")
	require.NoError(t, os.WriteFile(huge, []byte("%PDF"), 0o660))
	require.NoError(t, os.Truncate(huge, maxFileSize+1))

	accepted, rejected, err := fx.w.AddFiles(ctx, []string{
		notPDF,
		huge,
		filepath.Join(dir, "missing.pdf"),
	})

	require.NoError(t, err)
	assert.Empty(t, accepted)
	require.Len(t, rejected, 3)
	assert.Contains(t, rejected[0], common.ErrInvalidFileType.Error())
	assert.Contains(t, rejected[1], common.ErrFileTooLarge.Error())
	assert.Contains(t, rejected[2], "not readable")
	assert.Empty(t, fx.w.Files())
}

func TestWorkflowAddFiles_CapOnTotalCount(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)
	dir := t.TempDir()

	paths := make([]string, 0, maxFiles)
	for i := 0; i < maxFiles; i++ {
		paths = append(paths, makePDF(t, dir, fmt.Sprintf("doc-%d.pdf", i)))
	}
	_, _, err := fx.w.AddFiles(ctx, paths)
	require.NoError(t, err)
	require.Len(t, fx.w.Files(), maxFiles)

	_, _, err = fx.w.AddFiles(ctx, []string{makePDF(t, dir, "one-too-many.pdf")})
	assert.ErrorIs(t, err, common.ErrTooManyFiles)
	assert.Len(t, fx.w.Files(), maxFiles)
}

func TestWorkflowRemoveFile(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	accepted, _, err := fx.w.AddFiles(ctx, []string{makePDF(t, t.TempDir(), "doc.pdf")})
	require.NoError(t, err)

	assert.ErrorIs(t, fx.w.RemoveFile(ctx, "missing"), common.ErrFileNotFound)
	require.NoError(t, fx.w.RemoveFile(ctx, accepted[0].Id))
	assert.Empty(t, fx.w.Files())
}

func TestWorkflowSelectFormats(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	require.NoError(t, fx.w.SelectFormats(ctx, []string{"docx", "txt"}))
	assert.Len(t, fx.w.SelectedFormats(), 2)

	err := fx.w.SelectFormats(ctx, []string{"docx", "bogus"})
	assert.ErrorIs(t, err, common.ErrUnknownFormat)
	// a failed selection leaves the previous one in place
	assert.Len(t, fx.w.SelectedFormats(), 2)
}

func TestWorkflowApplyPreset(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	require.NoError(t, fx.w.ApplyPreset(ctx, "fast"))
	assert.Equal(t, "medium", fx.w.Settings().Quality)
	assert.Equal(t, 96, fx.w.Settings().DPI)

	assert.ErrorIs(t, fx.w.ApplyPreset(ctx, "bogus"), common.ErrUnknownPreset)
}

func TestWorkflowStartConversion_AdmissionChecks(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	err := fx.w.StartConversion(ctx)
	assert.ErrorIs(t, err, common.ErrNoFiles)
	assert.Equal(t, ViewUpload, fx.w.ActiveView())

	_, _, err = fx.w.AddFiles(ctx, []string{makePDF(t, t.TempDir(), "doc.pdf")})
	require.NoError(t, err)

	err = fx.w.StartConversion(ctx)
	assert.ErrorIs(t, err, common.ErrNoFormats)
	assert.Equal(t, ViewFormats, fx.w.ActiveView())
}

func TestWorkflowStartConversion_QuotaExhausted(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 1)

	require.True(t, fx.quota.IncrementUsage(ctx))

	_, _, err := fx.w.AddFiles(ctx, []string{makePDF(t, t.TempDir(), "doc.pdf")})
	require.NoError(t, err)
	require.NoError(t, fx.w.SelectFormats(ctx, []string{"txt"}))

	err = fx.w.StartConversion(ctx)
	assert.ErrorIs(t, err, common.ErrLimitReached)
	assert.Equal(t, 1, fx.quota.DailyUsage(ctx).Conversions)
}

func TestWorkflowStartConversion_FullRun(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	_, _, err := fx.w.AddFiles(ctx, []string{makePDF(t, t.TempDir(), "invoice.pdf")})
	require.NoError(t, err)
	require.NoError(t, fx.w.SelectFormats(ctx, []string{"docx", "txt"}))

	require.NoError(t, fx.w.StartConversion(ctx))

	assert.Equal(t, ViewConvert, fx.w.ActiveView())

	files := fx.w.Files()
	require.Len(t, files, 1)
	assert.Equal(t, models.StatusCompleted, files[0].Status)
	assert.Equal(t, 100, files[0].Progress)
	assert.Len(t, files[0].ConvertedFiles, 2)

	history := fx.w.History("")
	require.Len(t, history, 1)
	assert.Equal(t, "invoice.pdf", history[0].OriginalFiles)
	assert.Len(t, history[0].Formats, 2)
	assert.Len(t, history[0].Locations, 2)
	assert.False(t, history[0].Timestamp.IsZero())

	// a finished run clears the selection and counts against the quota
	assert.Empty(t, fx.w.SelectedFormats())
	assert.Equal(t, 1, fx.w.UsageInfo(ctx).Used)
	assert.Len(t, fx.w.CompletedResults(), 2)

	// the snapshot caught up with everything
	snapshot := fx.cache.Load(ctx)
	require.Len(t, snapshot.ConversionHistory, 1)
	assert.Equal(t, models.StatusCompleted, snapshot.UploadedFiles[0].Status)
}

func TestWorkflowHistory_Filter(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	_, _, err := fx.w.AddFiles(ctx, []string{makePDF(t, t.TempDir(), "invoice.pdf")})
	require.NoError(t, err)
	require.NoError(t, fx.w.SelectFormats(ctx, []string{"docx"}))
	require.NoError(t, fx.w.StartConversion(ctx))

	assert.Len(t, fx.w.History("invoice"), 1)
	assert.Len(t, fx.w.History("INVOICE"), 1)
	assert.Len(t, fx.w.History("word"), 1)
	assert.Empty(t, fx.w.History("nothing-like-this"))
}

func TestWorkflowDownloadResult(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	_, _, err := fx.w.AddFiles(ctx, []string{makePDF(t, t.TempDir(), "invoice.pdf")})
	require.NoError(t, err)
	require.NoError(t, fx.w.SelectFormats(ctx, []string{"txt"}))
	require.NoError(t, fx.w.StartConversion(ctx))

	require.NoError(t, fx.w.DownloadResult(ctx, 0))

	results := fx.w.CompletedResults()
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].DownloadCount)
	assert.FileExists(t, filepath.Join(fx.downloadDir, results[0].Filename))

	// the per-file view reports the same counter
	files := fx.w.Files()
	require.Len(t, files[0].ConvertedFiles, 1)
	assert.Equal(t, 1, files[0].ConvertedFiles[0].DownloadCount)

	assert.ErrorIs(t, fx.w.DownloadResult(ctx, 5), common.ErrFileNotFound)
}

func TestWorkflowSetView_LeavingConvertResets(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	_, _, err := fx.w.AddFiles(ctx, []string{makePDF(t, t.TempDir(), "invoice.pdf")})
	require.NoError(t, err)
	require.NoError(t, fx.w.SelectFormats(ctx, []string{"txt"}))
	require.NoError(t, fx.w.StartConversion(ctx))
	require.Equal(t, models.StatusCompleted, fx.w.Files()[0].Status)

	require.NoError(t, fx.w.SetView(ctx, ViewUpload))

	files := fx.w.Files()
	assert.Equal(t, models.StatusPending, files[0].Status)
	assert.Equal(t, 0, files[0].Progress)
	assert.Empty(t, fx.w.CompletedResults())
	assert.Equal(t, ViewUpload, fx.w.ActiveView())
}

func TestWorkflowRehydrate_RestoresState(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	_, _, err := fx.w.AddFiles(ctx, []string{makePDF(t, t.TempDir(), "invoice.pdf")})
	require.NoError(t, err)
	require.NoError(t, fx.w.SelectFormats(ctx, []string{"docx", "txt"}))
	fx.w.UpdateSettings(ctx, models.FormatSettings{Quality: "high", DPI: 300})

	// a second controller over the same store picks everything up
	logger := testLogger()
	gen := mockgen.NewFileGenerator(t.TempDir())
	orch := NewOrchestrator(gen, logger, OrchestratorOptions{RandFloat: neverFail, Sleep: noSleep})
	downloads := NewDownloadService(t.TempDir(), 0, logger)
	an := analyzer.New()
	an.Delay = 0

	w2 := NewWorkflow(fx.cache, fx.quota, orch, downloads, an, gen, fx.repo, logger)
	w2.Rehydrate(ctx)

	assert.Len(t, w2.Files(), 1)
	assert.Equal(t, "invoice.pdf", w2.Files()[0].Name)
	assert.Len(t, w2.SelectedFormats(), 2)
	assert.Equal(t, "high", w2.Settings().Quality)
	assert.Equal(t, 300, w2.Settings().DPI)
}

func TestWorkflowTourFlag(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	assert.False(t, fx.w.TourCompleted(ctx))

	fx.w.CompleteTour(ctx)
	assert.True(t, fx.w.TourCompleted(ctx))

	fx.w.ResetTour(ctx)
	assert.False(t, fx.w.TourCompleted(ctx))
}

func TestWorkflowCacheInfo(t *testing.T) {
	ctx := context.Background()
	fx := newTestWorkflow(t, 20)

	_, _, err := fx.w.AddFiles(ctx, []string{makePDF(t, t.TempDir(), "doc.pdf")})
	require.NoError(t, err)

	info := fx.w.CacheInfo(ctx)
	assert.True(t, info.Supported)
	assert.NotEqual(t, "0 B", info.Size)
	assert.NotZero(t, info.LastUpdated)

	fx.w.ClearCache(ctx)
	assert.Equal(t, "0 B", fx.w.CacheInfo(ctx).Size)
}

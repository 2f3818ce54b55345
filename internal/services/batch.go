package services

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/welovepdf/pdfconv/internal/common"
	"github.com/welovepdf/pdfconv/internal/logging"
	"github.com/welovepdf/pdfconv/internal/mockgen"
	"github.com/welovepdf/pdfconv/internal/models"
)

// User-facing messages for failed conversions.
const (
	msgConversionFailed = "Conversion failed. Please try again."
	msgRetryFailed      = "Retry conversion failed. Please try again."
)

// progressSteps are the checkpoints each (file, format) pair walks through.
// The delay between checkpoints is the only yield point of a run: pause
// requests take effect there, never mid-step.
var progressSteps = [...]int{0, 25, 50, 75, 100}

// RunState describes the orchestrator's lifecycle.
type RunState string

const (
	StateIdle     RunState = "idle"
	StateRunning  RunState = "running"
	StatePaused   RunState = "paused"
	StateRetrying RunState = "retrying"
)

// OrchestratorOptions tune a run. RandFloat and Sleep are test seams;
// zero-valued rates disable the corresponding failure draw.
type OrchestratorOptions struct {
	StepDelay        time.Duration
	FailureRate      float64
	RetryFailureRate float64
	RandFloat        func() float64
	Sleep            func(time.Duration)
}

// completedEntry ties a batch-wide result to its source file so results
// can be rolled back when the file later fails.
type completedEntry struct {
	fileID string
	result *models.ConvertedFile
}

// Orchestrator drives every (file, format) pair of a batch to completion
// or failure, sequentially and in input order, with observable progress
// and pause/resume/reset/retry control.
//
// While a run is active the orchestrator owns the file entries it was
// started with; the walk runs in one goroutine and control calls arrive
// from another, so all state is guarded by a mutex. Pausing keeps a
// cursor (file index, format index); Resume continues from that pair
// rather than re-running the walk.
type Orchestrator struct {
	mu        sync.Mutex
	logger    logging.Logger
	generator mockgen.Generator
	opts      OrchestratorOptions

	state          RunState
	files          []*models.UploadedFile
	formats        []models.ConversionFormat
	settings       models.FormatSettings
	total          int
	overall        int
	currentFile    string
	completed      []completedEntry
	cursorFile     int
	cursorFormat   int
	pauseRequested bool

	onUpdate   func([]models.UploadedFile)
	onComplete func()
}

func NewOrchestrator(generator mockgen.Generator, logger logging.Logger, opts OrchestratorOptions) *Orchestrator {
	if opts.RandFloat == nil {
		opts.RandFloat = rand.Float64
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &Orchestrator{
		logger:    logger,
		generator: generator,
		opts:      opts,
		state:     StateIdle,
	}
}

// SetCallbacks registers the observers invoked on every progress change
// and exactly once per completed run. Callbacks run outside the
// orchestrator's lock and may call back into it.
func (o *Orchestrator) SetCallbacks(onUpdate func([]models.UploadedFile), onComplete func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onUpdate = onUpdate
	o.onComplete = onComplete
}

// Start begins a fresh run over files × formats and blocks until the run
// completes or is paused. The pair count is fixed at this point and never
// changes mid-run. Callers wanting a background run wrap Start in a
// goroutine.
func (o *Orchestrator) Start(ctx context.Context, files []*models.UploadedFile, formats []models.ConversionFormat, settings models.FormatSettings) error {
	o.mu.Lock()
	if o.state == StateRunning || o.state == StateRetrying {
		o.mu.Unlock()
		return common.ErrRunInProgress
	}
	if len(files) == 0 {
		o.mu.Unlock()
		return common.ErrNoFiles
	}
	if len(formats) == 0 {
		o.mu.Unlock()
		return common.ErrNoFormats
	}

	o.files = files
	o.formats = formats
	o.settings = settings
	o.total = len(files) * len(formats)
	o.overall = 0
	o.completed = nil
	o.cursorFile = 0
	o.cursorFormat = 0
	o.pauseRequested = false
	for _, f := range files {
		f.ResetState()
	}
	o.state = StateRunning
	o.mu.Unlock()

	o.logger.Info(ctx, "starting batch run", "files", len(files), "formats", len(formats), "conversions", len(files)*len(formats))
	o.publishUpdate()
	o.run(ctx)
	return nil
}

// Pause requests suspension. It takes effect at the next checkpoint
// boundary, not instantaneously.
func (o *Orchestrator) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateRunning {
		o.pauseRequested = true
	}
}

// Resume continues a paused run from the pair the cursor points at and
// blocks like Start. The interrupted pair restarts from its first
// checkpoint; progress values never move backwards because of it.
func (o *Orchestrator) Resume(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StatePaused {
		o.mu.Unlock()
		return common.ErrNotPaused
	}
	o.state = StateRunning
	o.mu.Unlock()

	o.logger.Info(ctx, "resuming batch run")
	o.run(ctx)
	return nil
}

// Reset aborts and discards: every file returns to pending with zero
// progress, results and the cursor are cleared. Calling it twice is the
// same as calling it once. A running walk must be paused first.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	if o.state == StateRunning || o.state == StateRetrying {
		o.mu.Unlock()
		return common.ErrRunInProgress
	}
	o.state = StateIdle
	o.overall = 0
	o.currentFile = ""
	o.completed = nil
	o.cursorFile = 0
	o.cursorFormat = 0
	o.pauseRequested = false
	for _, f := range o.files {
		f.ResetState()
	}
	o.mu.Unlock()

	o.publishUpdate()
	return nil
}

// Retry re-runs the full format loop for a single file, using the retry
// failure rate, without touching any other file or the batch cursor. The
// orchestrator reports StateRetrying for the duration, so Start and Reset
// are rejected while the file is being reprocessed.
func (o *Orchestrator) Retry(ctx context.Context, fileID string) error {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return common.ErrRunInProgress
	}

	var file *models.UploadedFile
	for _, f := range o.files {
		if f.Id == fileID {
			file = f
			break
		}
	}
	if file == nil {
		o.mu.Unlock()
		return common.ErrFileNotFound
	}
	if len(o.formats) == 0 {
		o.mu.Unlock()
		return common.ErrNoFormats
	}

	o.state = StateRetrying
	defer func() {
		o.mu.Lock()
		o.state = StateIdle
		o.mu.Unlock()
	}()

	file.Status = models.StatusProcessing
	file.Progress = 0
	file.Error = ""
	file.ConvertedFiles = nil
	o.dropCompletedLocked(fileID)
	o.currentFile = file.Name
	formats := o.formats
	o.mu.Unlock()

	o.logger.Info(ctx, "retrying file", "file", file.Name)
	o.publishUpdate()

	formatCount := len(formats)
	for formatIdx, format := range formats {
		for _, step := range progressSteps {
			o.opts.Sleep(o.opts.StepDelay)

			o.mu.Lock()
			if p := roundDiv(formatIdx*100+step, formatCount); p > file.Progress {
				file.Progress = p
			}
			o.mu.Unlock()
			o.publishUpdate()
		}

		if o.opts.RandFloat() < o.opts.RetryFailureRate {
			o.failFile(ctx, file, msgRetryFailed)
			return nil
		}

		result, err := o.generator.CreateMockFile(format, file.Name)
		if err != nil {
			o.logger.Error(ctx, "generator failed", "file", file.Name, "format", format.Id, "error", err)
			o.failFile(ctx, file, msgRetryFailed)
			return nil
		}
		o.appendResult(file, result)
	}

	o.mu.Lock()
	file.Status = models.StatusCompleted
	file.Progress = 100
	o.currentFile = ""
	o.mu.Unlock()
	o.publishUpdate()
	return nil
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() RunState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// OverallProgress returns the batch progress in [0,100].
func (o *Orchestrator) OverallProgress() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.overall
}

// TotalConversions returns files × formats for the current run.
func (o *Orchestrator) TotalConversions() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.total
}

// CurrentFile returns the name of the file being processed, empty between runs.
func (o *Orchestrator) CurrentFile() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.currentFile
}

// Completed returns the batch-wide results. The pointers stay valid for
// download-count updates after the run finishes.
func (o *Orchestrator) Completed() []*models.ConvertedFile {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*models.ConvertedFile, len(o.completed))
	for i, e := range o.completed {
		out[i] = e.result
	}
	return out
}

// run walks the cursor to the end of the file list, returning early when a
// pause request is observed.
func (o *Orchestrator) run(ctx context.Context) {
	for {
		o.mu.Lock()
		if o.cursorFile >= len(o.files) {
			o.overall = 100
			o.state = StateIdle
			o.currentFile = ""
			onComplete := o.onComplete
			o.mu.Unlock()

			o.publishUpdate()
			o.logger.Info(ctx, "batch run complete")
			if onComplete != nil {
				onComplete()
			}
			return
		}

		file := o.files[o.cursorFile]
		format := o.formats[o.cursorFormat]
		fileIdx, formatIdx := o.cursorFile, o.cursorFormat
		file.Status = models.StatusProcessing
		o.currentFile = file.Name
		o.mu.Unlock()
		o.publishUpdate()

		if paused := o.convertPair(file, fileIdx, formatIdx); paused {
			o.logger.Info(ctx, "batch run paused", "file", file.Name, "format", format.Id)
			return
		}

		if o.opts.RandFloat() < o.opts.FailureRate {
			o.failFile(ctx, file, msgConversionFailed)
			o.advanceToNextFile()
			continue
		}

		result, err := o.generator.CreateMockFile(format, file.Name)
		if err != nil {
			o.logger.Error(ctx, "generator failed", "file", file.Name, "format", format.Id, "error", err)
			o.failFile(ctx, file, msgConversionFailed)
			o.advanceToNextFile()
			continue
		}

		o.appendResult(file, result)

		o.mu.Lock()
		o.cursorFormat++
		if o.cursorFormat == len(o.formats) {
			file.Status = models.StatusCompleted
			file.Progress = 100
			o.cursorFile++
			o.cursorFormat = 0
		}
		o.mu.Unlock()
		o.publishUpdate()
	}
}

// convertPair walks the checkpoints of one (file, format) pair, updating
// per-file and overall progress. It reports whether a pause was observed.
func (o *Orchestrator) convertPair(file *models.UploadedFile, fileIdx, formatIdx int) bool {
	formatCount := len(o.formats)

	for _, step := range progressSteps {
		o.opts.Sleep(o.opts.StepDelay)

		o.mu.Lock()
		if p := roundDiv(formatIdx*100+step, formatCount); p > file.Progress {
			file.Progress = p
		}
		if p := roundDiv((fileIdx*formatCount+formatIdx)*100+step, o.total); p > o.overall {
			o.overall = p
		}
		paused := o.pauseRequested
		if paused {
			o.pauseRequested = false
			o.state = StatePaused
		}
		o.mu.Unlock()
		o.publishUpdate()

		if paused {
			return true
		}
	}
	return false
}

// failFile marks a file as failed with the given message and rolls its
// earlier results out of the batch-wide list, so the completed list only
// ever accounts for files that finished every format.
func (o *Orchestrator) failFile(ctx context.Context, file *models.UploadedFile, msg string) {
	o.mu.Lock()
	file.Status = models.StatusError
	file.Error = msg
	file.ConvertedFiles = nil
	o.dropCompletedLocked(file.Id)
	o.currentFile = ""
	o.mu.Unlock()

	o.logger.Warn(ctx, "file conversion failed", "file", file.Name)
	o.publishUpdate()
}

// appendResult stores one shared instance in both the file's own list and
// the batch-wide completed list, so a download-count bump is visible in
// either view.
func (o *Orchestrator) appendResult(file *models.UploadedFile, result models.ConvertedFile) {
	r := result
	o.mu.Lock()
	file.ConvertedFiles = append(file.ConvertedFiles, &r)
	o.completed = append(o.completed, completedEntry{fileID: file.Id, result: &r})
	o.mu.Unlock()
	o.publishUpdate()
}

func (o *Orchestrator) advanceToNextFile() {
	o.mu.Lock()
	o.cursorFile++
	o.cursorFormat = 0
	o.mu.Unlock()
}

func (o *Orchestrator) dropCompletedLocked(fileID string) {
	kept := o.completed[:0]
	for _, e := range o.completed {
		if e.fileID != fileID {
			kept = append(kept, e)
		}
	}
	o.completed = kept
}

// publishUpdate snapshots the file list under the lock and invokes the
// update callback outside of it.
func (o *Orchestrator) publishUpdate() {
	o.mu.Lock()
	cb := o.onUpdate
	out := make([]models.UploadedFile, len(o.files))
	for i, f := range o.files {
		out[i] = *f
	}
	o.mu.Unlock()

	if cb != nil {
		cb(out)
	}
}

func roundDiv(numerator, denominator int) int {
	return int(math.Round(float64(numerator) / float64(denominator)))
}

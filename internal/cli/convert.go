package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/welovepdf/pdfconv/internal/services"
)

// Convert starts a batch run in the background so pause and status stay
// responsive while it walks the queue.
func (a *App) Convert(ctx context.Context) error {
	if a.workflow.RunState() != services.StateIdle {
		fmt.Println("A run is already active, see 'status'")
		return nil
	}

	files := len(a.workflow.Files())
	formats := len(a.workflow.SelectedFormats())
	fmt.Printf("Converting %d file(s) to %d format(s)...\n", files, formats)

	go func() {
		if err := a.workflow.StartConversion(ctx); err != nil {
			log.Println("conversion not started:", err.Error())
			return
		}
		if a.workflow.RunState() == services.StateIdle {
			log.Printf("conversion finished, %d result(s) ready, see 'download'", len(a.workflow.CompletedResults()))
		}
	}()
	return nil
}

// PauseRun requests suspension at the next progress checkpoint.
func (a *App) PauseRun(ctx context.Context) error {
	a.workflow.Pause()
	fmt.Println("Pause requested")
	return nil
}

// ResumeRun continues a paused batch in the background.
func (a *App) ResumeRun(ctx context.Context) error {
	go func() {
		if err := a.workflow.Resume(ctx); err != nil {
			log.Println("resume failed:", err.Error())
			return
		}
		if a.workflow.RunState() == services.StateIdle {
			log.Println("conversion finished, see 'download'")
		}
	}()
	return nil
}

// ResetRun discards all run state.
func (a *App) ResetRun(ctx context.Context) error {
	if err := a.workflow.Reset(ctx); err != nil {
		return err
	}
	fmt.Println("Run state cleared")
	return nil
}

// RetryFile re-runs a single failed file by its position in the files listing.
func (a *App) RetryFile(ctx context.Context, args []string) error {
	file, err := a.fileByOrdinal(args)
	if err != nil {
		return err
	}

	fmt.Println("Retrying", file.Name)
	go func() {
		if err := a.workflow.Retry(ctx, file.Id); err != nil {
			log.Println("retry failed:", err.Error())
		}
	}()
	return nil
}

// Status prints the run state, overall progress and per-file breakdown.
func (a *App) Status(ctx context.Context) error {
	state := a.workflow.RunState()
	fmt.Println("State:", state)

	if state != services.StateIdle {
		fmt.Printf("Overall: %d%% of %d conversion(s)\n", a.workflow.OverallProgress(), a.workflow.TotalConversions())
		if current := a.workflow.CurrentFile(); current != "" {
			fmt.Println("Current:", current)
		}
	}

	return a.Files(ctx)
}

// status renders the prompt segment.
func (a *App) status() string {
	switch state := a.workflow.RunState(); state {
	case services.StateIdle:
		return string(a.workflow.ActiveView())
	case services.StateRetrying:
		return fmt.Sprintf("%s %s", state, a.workflow.CurrentFile())
	default:
		return fmt.Sprintf("%s %d%%", state, a.workflow.OverallProgress())
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/welovepdf/pdfconv/internal/services"
)

// Usage prints today's quota consumption.
func (a *App) Usage(ctx context.Context) error {
	info := a.workflow.UsageInfo(ctx)
	fmt.Printf("Used %d of %d conversions today, %d remaining\n", info.Used, info.Limit, info.Remaining)
	if info.Remaining <= 0 {
		fmt.Println("Limit resets in", a.workflow.TimeUntilReset())
	}
	return nil
}

// Cache prints the persistence cache details.
func (a *App) Cache(ctx context.Context) error {
	info := a.workflow.CacheInfo(ctx)
	if !info.Supported {
		fmt.Println("Local storage is unavailable, state will not survive restarts")
		return nil
	}
	fmt.Printf("Cache: %s, last updated %d\n", info.Size, info.LastUpdated)
	return nil
}

// ClearCache drops the persisted snapshot.
func (a *App) ClearCache(ctx context.Context) error {
	a.workflow.ClearCache(ctx)
	fmt.Println("Cache cleared")
	return nil
}

// Tour shows or resets the onboarding state. "tour" marks it completed,
// "tour reset" makes it show again on the next start.
func (a *App) Tour(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "reset" {
		a.workflow.ResetTour(ctx)
		fmt.Println("Tour will show again next start")
		return nil
	}

	if a.workflow.TourCompleted(ctx) {
		fmt.Println("Tour already completed")
		return nil
	}

	fmt.Println("Welcome to pdfconv! Upload PDFs, pick formats, convert, download.")
	a.workflow.CompleteTour(ctx)
	return nil
}

// SwitchView changes the active view. Moving away from the convert view
// clears run state, which is refused while a run is active.
func (a *App) SwitchView(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Current view:", a.workflow.ActiveView())
		fmt.Println("Usage: view <upload|formats|convert|history>")
		return nil
	}

	switch v := services.View(args[0]); v {
	case services.ViewUpload, services.ViewFormats, services.ViewConvert, services.ViewHistory:
		if err := a.workflow.SetView(ctx, v); err != nil {
			return err
		}
		fmt.Println("Switched to", v)
		return nil
	default:
		return fmt.Errorf("unknown view %q", args[0])
	}
}

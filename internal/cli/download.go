package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Download copies one result by its position in the completed listing.
func (a *App) Download(ctx context.Context, args []string) error {
	results := a.workflow.CompletedResults()
	if len(results) == 0 {
		fmt.Println("No completed conversions yet")
		return nil
	}

	if len(args) == 0 {
		for i, r := range results {
			fmt.Printf("%d. %s  %s  downloaded %d time(s)\n", i+1, r.Filename, humanize.Bytes(uint64(r.Size)), r.DownloadCount)
		}
		fmt.Println("Usage: download <n>")
		return nil
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(results) {
		return fmt.Errorf("no result at position %q", args[0])
	}

	if err := a.workflow.DownloadResult(ctx, n-1); err != nil {
		return err
	}
	fmt.Println("Downloaded", results[n-1].Filename)
	return nil
}

// DownloadAll copies every completed result, staggered.
func (a *App) DownloadAll(ctx context.Context) error {
	results := a.workflow.CompletedResults()
	if len(results) == 0 {
		fmt.Println("No completed conversions yet")
		return nil
	}

	fmt.Printf("Downloading %d file(s)...\n", len(results))
	a.workflow.DownloadAll(ctx)
	fmt.Println("Done")
	return nil
}

// History prints past batches, newest first, optionally filtered by file or
// format name.
func (a *App) History(ctx context.Context, args []string) error {
	entries := a.workflow.History(strings.Join(args, " "))
	if len(entries) == 0 {
		fmt.Println("No conversion history")
		return nil
	}

	for i, e := range entries {
		names := make([]string, 0, len(e.Formats))
		for _, f := range e.Formats {
			names = append(names, f.Name)
		}
		fmt.Printf("%d. %s  %s -> %s (%d file(s))\n",
			i+1, e.Timestamp.Format("2006-01-02 15:04"), e.OriginalFiles, strings.Join(names, ", "), len(e.Locations))
	}
	return nil
}

// Redownload regenerates and downloads every output of a past batch by its
// position in the history listing.
func (a *App) Redownload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: redownload <n>")
		return nil
	}

	entries := a.workflow.History("")
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(entries) {
		return fmt.Errorf("no history entry at position %q", args[0])
	}

	if err := a.workflow.RedownloadEntry(ctx, entries[n-1].Id); err != nil {
		return err
	}
	fmt.Println("Batch downloaded again")
	return nil
}

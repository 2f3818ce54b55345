package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/welovepdf/pdfconv/internal/models"
)

// Upload admits the given paths into the file list. Rejections are printed
// per file; a full-batch rejection (too many files) comes back as an error.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: upload <path> [path ...]")
		return nil
	}

	accepted, rejected, err := a.workflow.AddFiles(ctx, args)
	if err != nil {
		return err
	}

	for _, r := range rejected {
		fmt.Println("Rejected:", r)
	}
	for _, f := range accepted {
		fmt.Printf("Added %s (%s, looks like %s content)\n", f.Name, humanize.Bytes(uint64(f.Size)), f.ContentType)
	}
	return nil
}

// Files prints the current file list with status and progress.
func (a *App) Files(ctx context.Context) error {
	files := a.workflow.Files()
	if len(files) == 0 {
		fmt.Println("No files uploaded")
		return nil
	}

	for i, f := range files {
		line := fmt.Sprintf("%d. %s  %s  %s", i+1, f.Name, humanize.Bytes(uint64(f.Size)), f.Status)
		if f.Status == models.StatusProcessing {
			line += fmt.Sprintf("  %d%%", f.Progress)
		}
		if f.Error != "" {
			line += "  " + f.Error
		}
		fmt.Println(line)
	}
	return nil
}

// Remove drops one file by its position in the files listing.
func (a *App) Remove(ctx context.Context, args []string) error {
	file, err := a.fileByOrdinal(args)
	if err != nil {
		return err
	}
	if err := a.workflow.RemoveFile(ctx, file.Id); err != nil {
		return err
	}
	fmt.Println("Removed", file.Name)
	return nil
}

// ClearFiles drops the whole list after confirmation.
func (a *App) ClearFiles(ctx context.Context) error {
	if len(a.workflow.Files()) == 0 {
		fmt.Println("No files uploaded")
		return nil
	}

	answer, err := getSimpleText(a.reader, "Remove all uploaded files? [y/N]", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "yes" {
		fmt.Println("Cancelled")
		return nil
	}

	a.workflow.ClearFiles(ctx)
	fmt.Println("File list cleared")
	return nil
}

// fileByOrdinal resolves a 1-based position argument against the file list.
func (a *App) fileByOrdinal(args []string) (models.UploadedFile, error) {
	if len(args) == 0 {
		return models.UploadedFile{}, fmt.Errorf("missing file number, see 'files'")
	}

	var n int
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil {
		return models.UploadedFile{}, fmt.Errorf("invalid file number %q", args[0])
	}

	files := a.workflow.Files()
	if n < 1 || n > len(files) {
		return models.UploadedFile{}, fmt.Errorf("no file at position %d", n)
	}
	return files[n-1], nil
}

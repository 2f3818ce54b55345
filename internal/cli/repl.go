package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// isTerminal is a test seam for terminal detection.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Upload(ctx context.Context, args []string) error
	Files(ctx context.Context) error
	Remove(ctx context.Context, args []string) error
	ClearFiles(ctx context.Context) error
	Formats(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	Settings(ctx context.Context) error
	Preset(ctx context.Context, args []string) error
	Convert(ctx context.Context) error
	PauseRun(ctx context.Context) error
	ResumeRun(ctx context.Context) error
	ResetRun(ctx context.Context) error
	RetryFile(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Download(ctx context.Context, args []string) error
	DownloadAll(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Redownload(ctx context.Context, args []string) error
	Usage(ctx context.Context) error
	Cache(ctx context.Context) error
	ClearCache(ctx context.Context) error
	Tour(ctx context.Context, args []string) error
	SwitchView(ctx context.Context, args []string) error
}

// Root starts the interactive loop and blocks until the user exits. The
// welcome banner is only shown on a real terminal so piped input stays clean.
func (a *App) Root(ctx context.Context) {
	if isTerminal() {
		fmt.Println("pdfconv CLI (type 'help' for commands)")
	}
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Any errors returned by command handlers are printed here; the loop itself
// never stops because of one.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pdfconv %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error

		switch cmd {
		case "help":
			printlnFn("Files:      upload <path>..., files, remove <n>, clearfiles")
			printlnFn("Formats:    formats, select <id>..., settings, preset <id>")
			printlnFn("Convert:    convert, pause, resume, reset, retry <n>, status")
			printlnFn("Results:    download <n>, downloadall, history [filter], redownload <n>")
			printlnFn("Other:      usage, cache, clearcache, tour [reset], view <name>, exit")

		case "upload":
			err = a.Upload(ctx, args)

		case "f", "files":
			err = a.Files(ctx)

		case "remove":
			err = a.Remove(ctx, args)

		case "clearfiles":
			err = a.ClearFiles(ctx)

		case "formats":
			err = a.Formats(ctx)

		case "select":
			err = a.Select(ctx, args)

		case "settings":
			err = a.Settings(ctx)

		case "preset":
			err = a.Preset(ctx, args)

		case "convert":
			err = a.Convert(ctx)

		case "pause":
			err = a.PauseRun(ctx)

		case "resume":
			err = a.ResumeRun(ctx)

		case "reset":
			err = a.ResetRun(ctx)

		case "retry":
			err = a.RetryFile(ctx, args)

		case "s", "status":
			err = a.Status(ctx)

		case "download":
			err = a.Download(ctx, args)

		case "downloadall":
			err = a.DownloadAll(ctx)

		case "h", "history":
			err = a.History(ctx, args)

		case "redownload":
			err = a.Redownload(ctx, args)

		case "usage":
			err = a.Usage(ctx)

		case "cache":
			err = a.Cache(ctx)

		case "clearcache":
			err = a.ClearCache(ctx)

		case "tour":
			err = a.Tour(ctx, args)

		case "view":
			err = a.SwitchView(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

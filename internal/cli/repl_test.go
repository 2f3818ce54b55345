package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	args  []string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = args
	return nil
}

func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	return f.record("upload", args)
}
func (f *fakeExec) Files(ctx context.Context) error { return f.record("files", nil) }
func (f *fakeExec) Remove(ctx context.Context, args []string) error {
	return f.record("remove", args)
}
func (f *fakeExec) ClearFiles(ctx context.Context) error { return f.record("clearfiles", nil) }
func (f *fakeExec) Formats(ctx context.Context) error    { return f.record("formats", nil) }
func (f *fakeExec) Select(ctx context.Context, args []string) error {
	return f.record("select", args)
}
func (f *fakeExec) Settings(ctx context.Context) error { return f.record("settings", nil) }
func (f *fakeExec) Preset(ctx context.Context, args []string) error {
	return f.record("preset", args)
}
func (f *fakeExec) Convert(ctx context.Context) error   { return f.record("convert", nil) }
func (f *fakeExec) PauseRun(ctx context.Context) error  { return f.record("pause", nil) }
func (f *fakeExec) ResumeRun(ctx context.Context) error { return f.record("resume", nil) }
func (f *fakeExec) ResetRun(ctx context.Context) error  { return f.record("reset", nil) }
func (f *fakeExec) RetryFile(ctx context.Context, args []string) error {
	return f.record("retry", args)
}
func (f *fakeExec) Status(ctx context.Context) error { return f.record("status", nil) }
func (f *fakeExec) Download(ctx context.Context, args []string) error {
	return f.record("download", args)
}
func (f *fakeExec) DownloadAll(ctx context.Context) error { return f.record("downloadall", nil) }
func (f *fakeExec) History(ctx context.Context, args []string) error {
	return f.record("history", args)
}
func (f *fakeExec) Redownload(ctx context.Context, args []string) error {
	return f.record("redownload", args)
}
func (f *fakeExec) Usage(ctx context.Context) error      { return f.record("usage", nil) }
func (f *fakeExec) Cache(ctx context.Context) error      { return f.record("cache", nil) }
func (f *fakeExec) ClearCache(ctx context.Context) error { return f.record("clearcache", nil) }
func (f *fakeExec) Tour(ctx context.Context, args []string) error {
	return f.record("tour", args)
}
func (f *fakeExec) SwitchView(ctx context.Context, args []string) error {
	return f.record("view", args)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"upload a.pdf b.pdf",
		"files",
		"select docx txt",
		"convert",
		"pause",
		"resume",
		"status",
		"downloadall",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "upload" }, sc)

	wantOrder := []string{"upload", "files", "select", "convert", "pause", "resume", "status", "downloadall"}
	if len(exec.calls) != len(wantOrder) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, wantOrder)
	}
	for i, c := range exec.calls {
		if c != wantOrder[i] {
			t.Fatalf("commands order mismatch: got %v, want %v", exec.calls, wantOrder)
		}
	}
}

func TestRunREPL_PassesArguments(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("select docx txt jpg\nquit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "formats" }, sc)

	if len(exec.args) != 3 || exec.args[0] != "docx" || exec.args[2] != "jpg" {
		t.Fatalf("unexpected args: %v", exec.args)
	}
}

func TestRunREPL_AliasesAndBlankLines(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("\n\nf\ns\nh\nexit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"files", "status", "history"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_EOFStopsLoop(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("usage\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "usage" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

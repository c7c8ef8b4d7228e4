package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/famomatic/ytserve/internal/downloader"
	"github.com/famomatic/ytserve/internal/selector"
)

type fakeFetcher struct {
	calls []downloader.FetchRequest
	write bool
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, req downloader.FetchRequest) error {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return f.err
	}
	if f.write {
		path := strings.Replace(req.Template, "%(ext)s", "mp4", 1)
		return os.WriteFile(path, []byte("media"), 0o644)
	}
	return nil
}

type mergeToolStub bool

func (m mergeToolStub) Available() bool { return bool(m) }

func fixedEngine(f downloader.Fetcher, tool mergeToolStub) *Engine {
	e := NewEngine(f, tool)
	e.Now = func() time.Time { return time.Unix(1700000000, 0) }
	e.Rand = func() int { return 234 }
	return e
}

func TestExecuteSingle(t *testing.T) {
	dir := t.TempDir()
	f := &fakeFetcher{write: true}
	e := fixedEngine(f, false)

	saved, err := e.Execute(context.Background(), "https://youtu.be/x", selector.Plan{Selector: "18"}, dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if saved.Name() != "1700000000_1234.mp4" {
		t.Fatalf("Name()=%q want=%q", saved.Name(), "1700000000_1234.mp4")
	}
	if saved.Path() != filepath.Join(dir, "1700000000_1234.mp4") {
		t.Fatalf("Path()=%q", saved.Path())
	}
	if len(f.calls) != 1 {
		t.Fatalf("fetch calls=%d want=1", len(f.calls))
	}
	req := f.calls[0]
	if req.Selector != "18" || req.MergeContainer != "" || req.URL != "https://youtu.be/x" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Template != filepath.Join(dir, "1700000000_1234")+".%(ext)s" {
		t.Fatalf("Template=%q", req.Template)
	}
}

func TestExecuteMergeForcesContainer(t *testing.T) {
	f := &fakeFetcher{write: true}
	e := fixedEngine(f, true)
	plan := selector.Plan{Selector: "137+140", Merge: true, Container: "mp4"}

	if _, err := e.Execute(context.Background(), "u", plan, t.TempDir()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if f.calls[0].MergeContainer != "mp4" || f.calls[0].Selector != "137+140" {
		t.Fatalf("unexpected request: %+v", f.calls[0])
	}
}

func TestExecuteMergeWithoutToolSkipsFetch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	f := &fakeFetcher{write: true}
	e := fixedEngine(f, false)
	plan := selector.Plan{Selector: "137+140", Merge: true, Container: "mp4"}

	_, err := e.Execute(context.Background(), "u", plan, dir)
	if !errors.Is(err, ErrMergeToolUnavailable) {
		t.Fatalf("Execute() err=%v want=%v", err, ErrMergeToolUnavailable)
	}
	if len(f.calls) != 0 {
		t.Fatalf("fetch calls=%d want=0", len(f.calls))
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Fatalf("output dir must not be created, stat err=%v", statErr)
	}
}

func TestExecuteNilMergeTool(t *testing.T) {
	e := NewEngine(&fakeFetcher{}, nil)
	_, err := e.Execute(context.Background(), "u", selector.Plan{Selector: "a+b", Merge: true}, t.TempDir())
	if !errors.Is(err, ErrMergeToolUnavailable) {
		t.Fatalf("Execute() err=%v want=%v", err, ErrMergeToolUnavailable)
	}
}

func TestExecuteFetchFailure(t *testing.T) {
	cause := errors.New("ERROR: Requested format is not available")
	e := fixedEngine(&fakeFetcher{err: cause}, true)

	_, err := e.Execute(context.Background(), "u", selector.Plan{Selector: "999"}, t.TempDir())
	var fetchErr *FetchFailedError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Execute() err=%T want *FetchFailedError", err)
	}
	if fetchErr.Detail != cause.Error() {
		t.Fatalf("Detail=%q want=%q", fetchErr.Detail, cause.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("FetchFailedError must unwrap to cause")
	}
}

func TestExecuteOutputMissing(t *testing.T) {
	dir := t.TempDir()
	e := fixedEngine(&fakeFetcher{}, true)

	_, err := e.Execute(context.Background(), "u", selector.Plan{Selector: "18"}, dir)
	if !errors.Is(err, ErrOutputMissing) {
		t.Fatalf("Execute() err=%v want=%v", err, ErrOutputMissing)
	}
}

func TestExecuteWebmIsReportedMissing(t *testing.T) {
	dir := t.TempDir()
	f := fetcherFunc(func(_ context.Context, req downloader.FetchRequest) error {
		path := strings.Replace(req.Template, "%(ext)s", "webm", 1)
		return os.WriteFile(path, nil, 0o644)
	})
	e := fixedEngine(f, true)

	_, err := e.Execute(context.Background(), "u", selector.Plan{Selector: "43"}, dir)
	if !errors.Is(err, ErrOutputMissing) {
		t.Fatalf("Execute() err=%v want=%v", err, ErrOutputMissing)
	}
}

func TestBaseNameRange(t *testing.T) {
	e := NewEngine(nil, nil)
	for i := 0; i < 50; i++ {
		name := e.baseName()
		parts := strings.Split(name, "_")
		if len(parts) != 2 || len(parts[1]) != 4 {
			t.Fatalf("baseName()=%q want <unix>_<4 digits>", name)
		}
		if parts[1] < "1000" || parts[1] > "9999" {
			t.Fatalf("suffix %q out of range", parts[1])
		}
	}
}

type fetcherFunc func(context.Context, downloader.FetchRequest) error

func (f fetcherFunc) Fetch(ctx context.Context, req downloader.FetchRequest) error { return f(ctx, req) }

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/famomatic/ytserve/internal/downloader"
	"github.com/famomatic/ytserve/internal/muxer"
	"github.com/famomatic/ytserve/internal/selector"
)

// OutputExt is the extension every saved artifact is assumed to carry.
const OutputExt = "mp4"

// SavedFile is a downloaded artifact in the output directory.
type SavedFile struct {
	Base string
	Ext  string
	Dir  string
}

// Name returns the file name without directory.
func (f SavedFile) Name() string {
	return f.Base + "." + f.Ext
}

// Path returns the full path of the file.
func (f SavedFile) Path() string {
	return filepath.Join(f.Dir, f.Name())
}

// Engine executes download plans against the external fetch tool.
type Engine struct {
	Fetcher   downloader.Fetcher
	MergeTool muxer.MergeTool

	// Now and Rand default to time.Now and math/rand when nil.
	// Rand returns a value in [0, 9000).
	Now  func() time.Time
	Rand func() int
}

// NewEngine returns an Engine using the wall clock and math/rand.
func NewEngine(fetcher downloader.Fetcher, mergeTool muxer.MergeTool) *Engine {
	return &Engine{Fetcher: fetcher, MergeTool: mergeTool}
}

// Execute runs plan for sourceURL and writes the artifact into outputDir.
func (e *Engine) Execute(ctx context.Context, sourceURL string, plan selector.Plan, outputDir string) (SavedFile, error) {
	if plan.Merge && (e.MergeTool == nil || !e.MergeTool.Available()) {
		return SavedFile{}, ErrMergeToolUnavailable
	}
	if e.Fetcher == nil {
		return SavedFile{}, &FetchFailedError{Selector: plan.Selector, Detail: "no fetcher configured"}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return SavedFile{}, &FetchFailedError{Selector: plan.Selector, Detail: err.Error(), Err: err}
	}

	file := SavedFile{Base: e.baseName(), Ext: OutputExt, Dir: outputDir}
	req := downloader.FetchRequest{
		URL:            sourceURL,
		Template:       filepath.Join(outputDir, file.Base) + ".%(ext)s",
		Selector:       plan.Selector,
		MergeContainer: plan.Container,
	}
	if err := e.Fetcher.Fetch(ctx, req); err != nil {
		return SavedFile{}, &FetchFailedError{Selector: plan.Selector, Detail: err.Error(), Err: err}
	}

	if _, err := os.Stat(file.Path()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return SavedFile{}, ErrOutputMissing
		}
		return SavedFile{}, fmt.Errorf("%w: %v", ErrOutputMissing, err)
	}
	return file, nil
}

func (e *Engine) baseName() string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	suffix := rand.Intn(9000)
	if e.Rand != nil {
		suffix = e.Rand()
	}
	return fmt.Sprintf("%d_%d", now().Unix(), 1000+suffix)
}

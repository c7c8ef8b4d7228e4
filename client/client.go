package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/famomatic/ytserve/internal/orchestrator"
	"github.com/famomatic/ytserve/internal/selector"
	"github.com/famomatic/ytserve/internal/types"
)

// Client lists downloadable formats for a source URL and downloads one of them.
// It holds no per-URL state: every call re-extracts and rebuilds the candidate list.
type Client struct {
	config Config
	engine *orchestrator.Engine
	logger Logger
}

// New creates a new Client.
func New(config Config) *Client {
	return NewClient(config)
}

// NewClient creates a new Client.
func NewClient(config Config) *Client {
	config = config.withDefaults()
	return &Client{
		config: config,
		engine: orchestrator.NewEngine(config.Fetcher, config.MergeTool),
		logger: config.Logger,
	}
}

// ListFormats extracts url and returns its indexed candidate projections.
func (c *Client) ListFormats(ctx context.Context, url string) (*Listing, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &ParameterError{Kind: ErrMissingParameter, Name: "url", Message: "URL parameter is required"}
	}
	info, candidates, err := c.candidates(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Listing{
		VideoID: info.ID,
		Title:   info.Title,
		Formats: selector.Project(candidates),
	}, nil
}

// Download regenerates the candidate list for url, resolves index and runs the
// resulting plan. An empty outputDir uses Config.OutputDir.
func (c *Client) Download(ctx context.Context, url string, index int, outputDir string) (*DownloadResult, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &ParameterError{Kind: ErrMissingParameter, Name: "url", Message: "URL and format_index parameters are required"}
	}
	if outputDir == "" {
		outputDir = c.config.OutputDir
	}

	_, candidates, err := c.candidates(ctx, url)
	if err != nil {
		return nil, err
	}

	plan, err := selector.Resolve(candidates, index)
	if err != nil {
		c.emitDownloadEvent("plan", "failure", url, "", "", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}
	c.emitDownloadEvent("plan", "success", url, plan.Selector, "", plan.String())

	// The fetch outlives the caller: a disconnecting client must not kill
	// yt-dlp halfway through writing the file.
	c.emitDownloadEvent("fetch", "start", url, plan.Selector, outputDir, "")
	saved, err := c.engine.Execute(context.WithoutCancel(ctx), url, plan, outputDir)
	if err != nil {
		mapped := mapDownloadError(err, plan)
		c.emitDownloadEvent("fetch", "failure", url, plan.Selector, outputDir, mapped.Error())
		c.warnf("download %s selector=%s failed: %v", url, plan.Selector, mapped)
		return nil, mapped
	}
	c.emitDownloadEvent("fetch", "success", url, plan.Selector, saved.Path(), "")

	return &DownloadResult{
		File: saved.Name(),
		Path: saved.Path(),
		Plan: plan,
	}, nil
}

func (c *Client) candidates(ctx context.Context, url string) (*types.MediaInfo, []selector.Candidate, error) {
	extractCtx, cancel := withDefaultTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	c.emitExtractionEvent("extract", "start", url, "")
	info, err := c.config.Extractor.FetchInfo(extractCtx, url)
	if err != nil {
		c.emitExtractionEvent("extract", "failure", url, err.Error())
		c.warnf("extract %s failed: %v", url, err)
		return nil, nil, &ExtractionFailureDetailError{URL: url, Err: err}
	}
	if info == nil {
		info = &types.MediaInfo{}
	}
	candidates := selector.FromDescriptors(info.Formats)
	c.emitExtractionEvent("extract", "success", url,
		fmt.Sprintf("id=%s formats=%d candidates=%d", info.ID, len(info.Formats), len(candidates)))
	return info, candidates, nil
}

func mapDownloadError(err error, plan selector.Plan) error {
	var fetchErr *orchestrator.FetchFailedError
	switch {
	case errors.Is(err, orchestrator.ErrMergeToolUnavailable):
		return fmt.Errorf("%w: %w", ErrMergeToolUnavailable, err)
	case errors.Is(err, orchestrator.ErrOutputMissing):
		return fmt.Errorf("%w: %w", ErrOutputMissing, err)
	case errors.As(err, &fetchErr):
		return &DownloadFailureDetailError{Selector: plan.Selector, Detail: fetchErr.Detail, Err: err}
	default:
		return &DownloadFailureDetailError{Selector: plan.Selector, Detail: err.Error(), Err: err}
	}
}

func (c *Client) warnf(format string, args ...any) {
	if c == nil || c.logger == nil {
		return
	}
	c.logger.Warnf(format, args...)
}

func (c *Client) emitExtractionEvent(stage, phase, url, detail string) {
	if c == nil || c.config.OnExtractionEvent == nil {
		return
	}
	c.config.OnExtractionEvent(ExtractionEvent{
		Stage:  stage,
		Phase:  phase,
		URL:    url,
		Detail: detail,
	})
}

func (c *Client) emitDownloadEvent(stage, phase, url, sel, path, detail string) {
	if c == nil || c.config.OnDownloadEvent == nil {
		return
	}
	c.config.OnDownloadEvent(DownloadEvent{
		Stage:    stage,
		Phase:    phase,
		URL:      url,
		Selector: sel,
		Path:     path,
		Detail:   detail,
	})
}

package client

import (
	"time"

	"github.com/famomatic/ytserve/internal/downloader"
	"github.com/famomatic/ytserve/internal/extractor"
	"github.com/famomatic/ytserve/internal/muxer"
)

// DefaultOutputDir is used when Config.OutputDir is empty.
const DefaultOutputDir = "upload"

// Config holds configuration for the listing/download client.
type Config struct {
	// OutputDir is the directory downloads are written to unless a call overrides it.
	OutputDir string

	// Extractor resolves a source URL into its format list.
	// If nil, a yt-dlp extractor using "yt-dlp" from PATH is used.
	Extractor extractor.Extractor

	// Fetcher downloads (and merges) selected formats.
	// If nil, a yt-dlp fetcher using "yt-dlp" from PATH is used.
	Fetcher downloader.Fetcher

	// MergeTool is checked before merge plans run.
	// If nil, ffmpeg is looked up on PATH.
	MergeTool muxer.MergeTool

	// Logger receives non-fatal warnings. Defaults to a no-op logger.
	Logger Logger

	// RequestTimeout bounds metadata extraction when the caller's context has no deadline.
	// Zero disables it. Fetches are only bounded by the caller's context.
	RequestTimeout time.Duration

	// OnExtractionEvent is called for extraction lifecycle events.
	OnExtractionEvent func(ExtractionEvent)

	// OnDownloadEvent is called for download lifecycle events.
	OnDownloadEvent func(DownloadEvent)
}

func (c Config) withDefaults() Config {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Extractor == nil {
		c.Extractor = extractor.NewYtDlp(extractor.Config{}, nil)
	}
	if c.Fetcher == nil {
		c.Fetcher = downloader.NewYtDlp(downloader.YtDlpConfig{}, nil)
	}
	if c.MergeTool == nil {
		c.MergeTool = muxer.NewFFmpegMuxer("")
	}
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
	return c
}

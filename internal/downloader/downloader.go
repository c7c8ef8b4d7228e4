package downloader

import (
	"context"
)

// FetchRequest is one invocation of the external fetch/merge tool.
type FetchRequest struct {
	// URL is the source page URL.
	URL string
	// Template is the output path template, e.g. "/srv/upload/1700000000_1234.%(ext)s".
	Template string
	// Selector is the format selector: an id, or "<video>+<audio>".
	Selector string
	// MergeContainer forces the merged output container; empty for single-format fetches.
	MergeContainer string
}

// Fetcher downloads (and for merge requests, merges) media to disk.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) error
}

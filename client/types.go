package client

import (
	"github.com/famomatic/ytserve/internal/selector"
)

// Listing is the result of ListFormats.
type Listing struct {
	VideoID string
	Title   string
	Formats []selector.Projection
}

// DownloadResult describes a completed download.
type DownloadResult struct {
	// File is the saved file name, e.g. "1700000000_1234.mp4".
	File string
	// Path is the full path of the saved file.
	Path string
	Plan selector.Plan
}

// ExtractionEvent describes one step of metadata extraction.
type ExtractionEvent struct {
	Stage  string
	Phase  string
	URL    string
	Detail string
}

// DownloadEvent describes one step of a download.
type DownloadEvent struct {
	Stage    string
	Phase    string
	URL      string
	Selector string
	Path     string
	Detail   string
}

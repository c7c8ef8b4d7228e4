package muxer

import (
	"os/exec"
)

// MergeTool reports whether the host can merge split audio/video streams.
type MergeTool interface {
	Available() bool
}

// FFmpegMuxer is the ffmpeg merge tool invoked by the fetcher for merge plans.
type FFmpegMuxer struct {
	Path string
}

// NewFFmpegMuxer returns a new FFmpegMuxer.
// If path is empty, it looks for "ffmpeg" in PATH.
func NewFFmpegMuxer(path string) *FFmpegMuxer {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpegMuxer{Path: path}
}

// Available checks if ffmpeg is executable.
func (f *FFmpegMuxer) Available() bool {
	if f == nil {
		return false
	}
	_, err := exec.LookPath(f.Path)
	return err == nil
}

// Location returns the value to hand to yt-dlp's --ffmpeg-location, or "" when
// ffmpeg should be looked up on PATH.
func (f *FFmpegMuxer) Location() string {
	if f == nil || f.Path == "" || f.Path == "ffmpeg" {
		return ""
	}
	return f.Path
}

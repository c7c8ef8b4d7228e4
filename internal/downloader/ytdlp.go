package downloader

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/famomatic/ytserve/internal/types"
)

// DefaultYtDlpPath is the yt-dlp executable used when no path is configured.
const DefaultYtDlpPath = "yt-dlp"

// YtDlpConfig controls the yt-dlp fetcher.
type YtDlpConfig struct {
	// Path is the yt-dlp executable. Defaults to "yt-dlp".
	Path string
	// FFmpegLocation is passed as --ffmpeg-location when set.
	FFmpegLocation string
	// CookiesFile is passed as --cookies when set.
	CookiesFile string
	// ProxyURL is passed as --proxy when set.
	ProxyURL string
}

// Runner executes a configured yt-dlp command for one source URL.
type Runner func(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.Result, error)

// RunCommand is the default Runner. Failures are returned as *types.ToolError
// carrying yt-dlp's stderr; a missing executable also matches
// types.ErrToolNotFound.
func RunCommand(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.Result, error) {
	res, err := cmd.Run(ctx, "--", url)
	if err != nil {
		return res, toolError(res, err)
	}
	return res, nil
}

func toolError(res *ytdlp.Result, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		err = errors.Join(types.ErrToolNotFound, err)
	}
	stderr := ""
	if res != nil {
		stderr = res.Stderr
	}
	return &types.ToolError{Tool: "yt-dlp", Stderr: stderr, Err: err}
}

// YtDlp fetches media by running yt-dlp.
type YtDlp struct {
	config YtDlpConfig
	run    Runner
}

// NewYtDlp returns a yt-dlp fetcher. A nil run uses RunCommand.
func NewYtDlp(cfg YtDlpConfig, run Runner) *YtDlp {
	if strings.TrimSpace(cfg.Path) == "" {
		cfg.Path = DefaultYtDlpPath
	}
	if run == nil {
		run = RunCommand
	}
	return &YtDlp{config: cfg, run: run}
}

// Fetch runs yt-dlp for req and waits for it to exit.
func (y *YtDlp) Fetch(ctx context.Context, req FetchRequest) error {
	if strings.TrimSpace(req.URL) == "" {
		return types.ErrEmptyURL
	}
	_, err := y.run(ctx, y.Command(req), req.URL)
	return err
}

// Command builds the yt-dlp invocation for req. The source URL is supplied
// separately when the command runs.
func (y *YtDlp) Command(req FetchRequest) *ytdlp.Command {
	cmd := NewCommand(y.config).
		Format(req.Selector).
		Output(req.Template).
		RestrictFilenames().
		NoPlaylist().
		Quiet().
		NoWarnings().
		NoProgress()
	if req.MergeContainer != "" {
		cmd = cmd.MergeOutputFormat(req.MergeContainer)
	}
	return cmd
}

// NewCommand returns a yt-dlp command carrying the executable and the flags
// shared by every invocation for cfg.
func NewCommand(cfg YtDlpConfig) *ytdlp.Command {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = DefaultYtDlpPath
	}
	cmd := ytdlp.New().SetExecutable(path)
	if cfg.FFmpegLocation != "" {
		cmd = cmd.FFmpegLocation(cfg.FFmpegLocation)
	}
	if cfg.CookiesFile != "" {
		cmd = cmd.Cookies(cfg.CookiesFile)
	}
	if cfg.ProxyURL != "" {
		cmd = cmd.Proxy(cfg.ProxyURL)
	}
	return cmd
}

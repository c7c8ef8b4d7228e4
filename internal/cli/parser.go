package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/famomatic/ytserve/client"
	"github.com/famomatic/ytserve/internal/downloader"
	"github.com/famomatic/ytserve/internal/extractor"
	"github.com/famomatic/ytserve/internal/muxer"
	"github.com/famomatic/ytserve/internal/server"
)

// Options holds all command-line options.
type Options struct {
	// General
	Help    bool
	Version bool

	// Server
	Addr           string        // -addr
	UploadDir      string        // -upload-dir
	RequestTimeout time.Duration // -request-timeout
	RateLimit      float64       // -rate-limit
	RateBurst      int           // -rate-burst

	// External tools
	Extractor      string // -extractor
	YtDlpPath      string // -ytdlp-path
	FFmpegLocation string // -ffmpeg-location

	// Network
	ProxyURL    string // -proxy
	CookiesFile string // -cookies

	// Verbosity / Debug
	Verbose bool
}

// ParseFlags parses os.Args into Options and exits on flag errors.
func ParseFlags() Options {
	opts, err := ParseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	return opts
}

// ParseArgs parses args into Options. Usage and errors are written to out.
func ParseArgs(args []string, out io.Writer) (Options, error) {
	opts := Options{}
	fs := flag.NewFlagSet("ytserve", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.BoolVar(&opts.Version, "version", false, "Print version and exit")

	fs.StringVar(&opts.Addr, "addr", ":5000", "HTTP listen address")
	fs.StringVar(&opts.UploadDir, "upload-dir", "./upload", "Directory downloads are written to and served from")
	fs.DurationVar(&opts.RequestTimeout, "request-timeout", 2*time.Minute, "Metadata extraction timeout (0 disables)")
	fs.Float64Var(&opts.RateLimit, "rate-limit", 5, "Sustained /api/ requests per second (0 disables)")
	fs.IntVar(&opts.RateBurst, "rate-burst", 10, "Rate limiter burst size")

	fs.StringVar(&opts.Extractor, "extractor", extractor.BackendYtDlp, "Metadata backend: ytdlp or youtube")
	fs.StringVar(&opts.YtDlpPath, "ytdlp-path", "yt-dlp", "Path to yt-dlp binary")
	fs.StringVar(&opts.FFmpegLocation, "ffmpeg-location", "", "Path to ffmpeg binary")

	fs.StringVar(&opts.ProxyURL, "proxy", "", "Use the specified HTTP/HTTPS/SOCKS proxy")
	fs.StringVar(&opts.CookiesFile, "cookies", "", "Netscape formatted cookies file")

	fs.BoolVar(&opts.Verbose, "verbose", false, "Log extraction and download events")

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: ytserve [OPTIONS]\n\n")
		fmt.Fprintln(out, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.Help = true
		}
		return opts, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(out, err)
		return opts, err
	}
	return opts, opts.Validate()
}

// Validate checks option values that flag parsing cannot.
func (o Options) Validate() error {
	switch strings.ToLower(strings.TrimSpace(o.Extractor)) {
	case "", extractor.BackendYtDlp, extractor.BackendYouTube:
	default:
		return fmt.Errorf("invalid -extractor %q: want %s or %s", o.Extractor, extractor.BackendYtDlp, extractor.BackendYouTube)
	}
	if o.RequestTimeout < 0 {
		return fmt.Errorf("invalid -request-timeout %s", o.RequestTimeout)
	}
	if o.RateLimit < 0 {
		return fmt.Errorf("invalid -rate-limit %v", o.RateLimit)
	}
	if strings.TrimSpace(o.UploadDir) == "" {
		return errors.New("-upload-dir must not be empty")
	}
	if strings.TrimSpace(o.ProxyURL) != "" {
		if _, err := extractor.ParseProxyURL(o.ProxyURL); err != nil {
			return fmt.Errorf("invalid -proxy: %w", err)
		}
	}
	if o.CookiesFile != "" {
		if _, err := os.Stat(o.CookiesFile); err != nil {
			return fmt.Errorf("failed to open cookies file: %w", err)
		}
	}
	return nil
}

// ToClientConfig converts Options to client.Config. Event callbacks are left
// for the caller to attach.
func ToClientConfig(opts Options) (client.Config, error) {
	merger := muxer.NewFFmpegMuxer(opts.FFmpegLocation)

	ex, err := extractor.New(extractor.Config{
		Backend:     opts.Extractor,
		YtDlpPath:   opts.YtDlpPath,
		CookiesFile: opts.CookiesFile,
		ProxyURL:    opts.ProxyURL,
	})
	if err != nil {
		return client.Config{}, err
	}

	fetcher := downloader.NewYtDlp(downloader.YtDlpConfig{
		Path:           opts.YtDlpPath,
		FFmpegLocation: merger.Location(),
		CookiesFile:    opts.CookiesFile,
		ProxyURL:       opts.ProxyURL,
	}, nil)

	return client.Config{
		OutputDir:      opts.UploadDir,
		Extractor:      ex,
		Fetcher:        fetcher,
		MergeTool:      merger,
		RequestTimeout: opts.RequestTimeout,
	}, nil
}

// ToServerConfig converts Options to server.Config.
func ToServerConfig(opts Options, logger *log.Logger) server.Config {
	return server.Config{
		UploadDir: opts.UploadDir,
		RateLimit: opts.RateLimit,
		RateBurst: opts.RateBurst,
		Logger:    logger,
	}
}

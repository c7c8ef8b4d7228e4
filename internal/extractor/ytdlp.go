package extractor

import (
	"context"
	"errors"

	"github.com/lrstanley/go-ytdlp"

	"github.com/famomatic/ytserve/internal/downloader"
	"github.com/famomatic/ytserve/internal/types"
)

// errNoInfo is returned when yt-dlp exits cleanly without printing info JSON.
var errNoInfo = errors.New("yt-dlp returned no media info")

// infoFunc runs a dump command and returns the extracted info.
type infoFunc func(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.ExtractedInfo, error)

// YtDlp extracts metadata with `yt-dlp --dump-single-json`.
type YtDlp struct {
	config downloader.YtDlpConfig
	info   infoFunc
}

// NewYtDlp returns a yt-dlp backed extractor. A nil run uses downloader.RunCommand.
func NewYtDlp(cfg Config, run downloader.Runner) *YtDlp {
	if run == nil {
		run = downloader.RunCommand
	}
	return &YtDlp{
		config: downloader.YtDlpConfig{
			Path:        cfg.YtDlpPath,
			CookiesFile: cfg.CookiesFile,
			ProxyURL:    cfg.ProxyURL,
		},
		info: extractedInfo(run),
	}
}

func extractedInfo(run downloader.Runner) infoFunc {
	return func(ctx context.Context, cmd *ytdlp.Command, url string) (*ytdlp.ExtractedInfo, error) {
		res, err := run(ctx, cmd, url)
		if err != nil {
			return nil, err
		}
		infos, err := res.GetExtractedInfo()
		if err != nil {
			return nil, err
		}
		if len(infos) == 0 || infos[0] == nil {
			return nil, errNoInfo
		}
		return infos[0], nil
	}
}

// Command builds the metadata dump invocation.
func (y *YtDlp) Command() *ytdlp.Command {
	return downloader.NewCommand(y.config).
		DumpSingleJSON().
		SkipDownload().
		NoPlaylist().
		NoWarnings()
}

// FetchInfo implements Extractor.
func (y *YtDlp) FetchInfo(ctx context.Context, url string) (*types.MediaInfo, error) {
	if err := checkURL(url); err != nil {
		return nil, err
	}
	info, err := y.info(ctx, y.Command(), url)
	if err != nil {
		return nil, err
	}
	return fromExtracted(info), nil
}

func fromExtracted(info *ytdlp.ExtractedInfo) *types.MediaInfo {
	out := &types.MediaInfo{
		ID:      str(info.ID),
		Title:   str(info.Title),
		Formats: make([]types.FormatDescriptor, 0, len(info.Formats)),
	}
	for _, f := range info.Formats {
		if f == nil {
			continue
		}
		out.Formats = append(out.Formats, types.FormatDescriptor{
			ID:     str(f.FormatID),
			VCodec: str(f.VCodec),
			ACodec: str(f.ACodec),
			Height: intPtr(f.Height),
			ABR:    floatPtr(f.ABR),
		})
	}
	return out
}

func str(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s != nil {
			return *s
		}
	}
	return ""
}

func floatPtr(v any) *float64 {
	switch n := v.(type) {
	case *float64:
		if n != nil {
			return types.FloatPtr(*n)
		}
	case *int:
		if n != nil {
			return types.FloatPtr(float64(*n))
		}
	case float64:
		return types.FloatPtr(n)
	case int:
		return types.FloatPtr(float64(n))
	}
	return nil
}

func intPtr(v any) *int {
	f := floatPtr(v)
	if f == nil {
		return nil
	}
	return types.IntPtr(int(*f))
}

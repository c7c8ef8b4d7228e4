// Package extractor resolves a source URL into its title and raw format list.
// Extraction itself is delegated: YtDlp drives yt-dlp through go-ytdlp, YouTube uses the
// native github.com/kkdai/youtube/v2 client.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/famomatic/ytserve/internal/types"
)

// Extractor fetches media metadata for a source URL.
type Extractor interface {
	FetchInfo(ctx context.Context, url string) (*types.MediaInfo, error)
}

// Backend names accepted by New.
const (
	BackendYtDlp   = "ytdlp"
	BackendYouTube = "youtube"
)

// Config selects and configures an extraction backend.
type Config struct {
	Backend     string
	YtDlpPath   string
	CookiesFile string
	ProxyURL    string
}

// New returns the extractor for cfg.Backend.
func New(cfg Config) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendYtDlp:
		return NewYtDlp(cfg, nil), nil
	case BackendYouTube:
		return NewYouTube(cfg)
	default:
		return nil, fmt.Errorf("unknown extractor backend %q (want %s or %s)", cfg.Backend, BackendYtDlp, BackendYouTube)
	}
}

func checkURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return types.ErrEmptyURL
	}
	return nil
}

package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/famomatic/ytserve/internal/cookies"
	"github.com/famomatic/ytserve/internal/formats"
	"github.com/famomatic/ytserve/internal/types"
)

// videoGetter is the subset of *youtube.Client used here.
type videoGetter interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
}

// YouTube extracts metadata natively for YouTube URLs.
type YouTube struct {
	client videoGetter
}

// NewYouTube returns a native YouTube extractor.
func NewYouTube(cfg Config) (*YouTube, error) {
	httpClient, err := newHTTPClient(cfg.ProxyURL, cfg.CookiesFile)
	if err != nil {
		return nil, err
	}
	return &YouTube{client: &youtube.Client{HTTPClient: httpClient}}, nil
}

// FetchInfo implements Extractor.
func (y *YouTube) FetchInfo(ctx context.Context, url string) (*types.MediaInfo, error) {
	if err := checkURL(url); err != nil {
		return nil, err
	}
	video, err := y.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &types.MediaInfo{
		ID:      video.ID,
		Title:   video.Title,
		Formats: formats.FromYouTube(video.Formats),
	}, nil
}

func newHTTPClient(proxyURL, cookiesFile string) (*http.Client, error) {
	client := &http.Client{}
	if strings.TrimSpace(proxyURL) != "" {
		parsed, err := ParseProxyURL(proxyURL)
		if err != nil {
			return nil, err
		}
		if base, ok := http.DefaultTransport.(*http.Transport); ok {
			transport := base.Clone()
			transport.Proxy = http.ProxyURL(parsed)
			client.Transport = transport
		}
	}
	if cookiesFile != "" {
		jar, err := cookies.LoadJar(cookiesFile)
		if err != nil {
			return nil, err
		}
		client.Jar = jar
	}
	return client, nil
}

// ParseProxyURL parses raw as an absolute proxy URL such as
// http://host:3128 or socks5://host:1080.
func ParseProxyURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url %q: %w", raw, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid proxy url %q: scheme and host are required", raw)
	}
	return parsed, nil
}

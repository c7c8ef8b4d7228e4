// Package server exposes the listing and download operations over HTTP.
package server

import (
	"context"
	"log"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/famomatic/ytserve/client"
)

// Service is the subset of *client.Client the handlers call.
type Service interface {
	ListFormats(ctx context.Context, url string) (*client.Listing, error)
	Download(ctx context.Context, url string, index int, outputDir string) (*client.DownloadResult, error)
}

// Config configures the HTTP surface.
type Config struct {
	// UploadDir is where downloads land by default and where /files/ serves from.
	UploadDir string
	// RateLimit is the sustained /api/ request rate per second. Zero or less disables limiting.
	RateLimit float64
	// RateBurst is the limiter burst size. Values below 1 are treated as 1.
	RateBurst int
	// Logger receives one access line per request. Nil disables access logs.
	Logger *log.Logger
}

// Server routes HTTP requests to a Service.
type Server struct {
	svc     Service
	config  Config
	limiter *rate.Limiter
}

// New returns a Server for svc.
func New(svc Service, cfg Config) *Server {
	if cfg.UploadDir == "" {
		cfg.UploadDir = client.DefaultOutputDir
	}
	s := &Server{svc: svc, config: cfg}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Handler returns the fully wrapped route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/list", WithRateLimit(s.limiter, NewListHandler(s.svc)))
	mux.Handle("/api/download", WithRateLimit(s.limiter, NewDownloadHandler(s.svc, s.config.UploadDir)))
	mux.Handle("/files/", NewFileHandler(s.config.UploadDir))
	mux.Handle("/health", NewHealthHandler())
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	}))

	var h http.Handler = WithCORS(mux)
	h = WithAccessLog(s.config.Logger, h)
	return WithRequestID(h)
}

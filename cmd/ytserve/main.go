package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/famomatic/ytserve/client"
	"github.com/famomatic/ytserve/internal/cli"
	"github.com/famomatic/ytserve/internal/server"
)

var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	opts := cli.ParseFlags()
	if opts.Version {
		fmt.Println("ytserve", version)
		return
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	if err := os.MkdirAll(opts.UploadDir, 0o755); err != nil {
		logger.Fatalf("Error creating upload dir: %v", err)
	}

	cfg, err := cli.ToClientConfig(opts)
	if err != nil {
		logger.Fatalf("Error configuring client: %v", err)
	}
	cfg.Logger = warnLogger{logger}
	if opts.Verbose {
		cfg.OnExtractionEvent = func(evt client.ExtractionEvent) {
			logger.Println(formatExtractionEvent(evt))
		}
		cfg.OnDownloadEvent = func(evt client.DownloadEvent) {
			logger.Println(formatDownloadEvent(evt))
		}
	}
	if !cfg.MergeTool.Available() {
		logger.Printf("warning: ffmpeg not found; merge formats will fail with ffmpeg_required")
	}

	c := client.New(cfg)
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           server.New(c, cli.ToServerConfig(opts, logger)).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		logger.Println("shutting down; waiting for in-flight downloads")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Error stopping server: %v", err)
		}
	}()

	logger.Printf("ytserve %s listening on %s (upload dir %s, extractor %s)", version, opts.Addr, opts.UploadDir, opts.Extractor)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Error serving: %v", err)
	}
	<-done
}

type warnLogger struct {
	l *log.Logger
}

func (w warnLogger) Warnf(format string, args ...any) {
	w.l.Printf("warning: "+format, args...)
}

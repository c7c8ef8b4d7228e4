package server

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/famomatic/ytserve/client"
)

type listResponse struct {
	Status  string `json:"status"`
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	Formats any    `json:"formats"`
}

type downloadResponse struct {
	Status string `json:"status"`
	File   string `json:"file"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewListHandler serves GET|POST /api/list. url is read from the JSON or form
// body and falls back to the query string.
func NewListHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		url := readParams(r).String("url")
		if url == "" {
			url = strings.TrimSpace(r.URL.Query().Get("url"))
		}
		if url == "" {
			writeError(w, http.StatusBadRequest, "URL parameter is required")
			return
		}

		listing, err := svc.ListFormats(r.Context(), url)
		if err != nil {
			writeError(w, http.StatusBadRequest, client.Message(err))
			return
		}
		writeJSON(w, http.StatusOK, listResponse{
			Status:  statusOK,
			VideoID: listing.VideoID,
			Title:   listing.Title,
			Formats: listing.Formats,
		})
	}
}

// NewDownloadHandler serves POST /api/download with url, format_index and an
// optional output_dir.
func NewDownloadHandler(svc Service, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		p := readParams(r)
		url := p.String("url")
		if url == "" || !p.Has("format_index") {
			writeError(w, http.StatusBadRequest, "URL and format_index parameters are required")
			return
		}
		index, err := p.Index("format_index")
		if err != nil {
			writeError(w, http.StatusBadRequest, client.Message(err))
			return
		}
		outputDir := p.String("output_dir")
		if outputDir == "" {
			outputDir = uploadDir
		}

		res, err := svc.Download(r.Context(), url, index, outputDir)
		if err != nil {
			writeError(w, http.StatusBadRequest, client.Message(err))
			return
		}
		writeJSON(w, http.StatusOK, downloadResponse{Status: statusOK, File: res.File})
	}
}

// NewFileHandler serves GET /files/{name} from dir as an attachment.
func NewFileHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/files/")
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			http.NotFound(w, r)
			return
		}

		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		st, err := f.Stat()
		if err != nil || st.IsDir() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Disposition", contentDisposition(name))
		http.ServeContent(w, r, name, st.ModTime(), f)
	}
}

func contentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}

// NewHealthHandler serves GET /health.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: statusOK, Message: "API is running"})
	}
}

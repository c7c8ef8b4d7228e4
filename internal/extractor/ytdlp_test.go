package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lrstanley/go-ytdlp"

	"github.com/famomatic/ytserve/internal/types"
)

const infoJSON = `{
  "id": "jNQXAC9IVRw",
  "title": "Me at the zoo",
  "formats": [
    {"format_id": "sb0", "ext": "mhtml", "vcodec": "none", "acodec": "none", "width": 48, "height": 27, "format_note": "storyboard"},
    {"format_id": "139", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.5", "abr": 48.776, "height": null},
    {"format_id": "18", "ext": "mp4", "vcodec": "avc1.42001E", "acodec": "mp4a.40.2", "width": 320, "height": 240, "fps": 29.97, "abr": null},
    {"format_id": "hls-1", "ext": "mp4", "vcodec": null, "acodec": null},
    {"format_id": "133", "ext": "mp4", "vcodec": "avc1.4d400c", "acodec": "none", "height": 240}
  ]
}`

func sampleExtracted(t *testing.T) *ytdlp.ExtractedInfo {
	t.Helper()
	var info ytdlp.ExtractedInfo
	if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return &info
}

func TestFromExtracted(t *testing.T) {
	info := fromExtracted(sampleExtracted(t))
	if info.ID != "jNQXAC9IVRw" || info.Title != "Me at the zoo" {
		t.Fatalf("info header mismatch: %+v", info)
	}
	if len(info.Formats) != 5 {
		t.Fatalf("len(formats)=%d want=5", len(info.Formats))
	}

	audio := info.Formats[1]
	if audio.HasVideo() || !audio.HasAudio() {
		t.Fatalf("139 classification mismatch: %+v", audio)
	}
	if audio.ABR == nil || *audio.ABR != 48.776 || audio.Height != nil {
		t.Fatalf("139 numeric fields mismatch: abr=%v height=%v", audio.ABR, audio.Height)
	}

	prog := info.Formats[2]
	if prog.Height == nil || *prog.Height != 240 || prog.ABR != nil || prog.ID != "18" {
		t.Fatalf("18 fields mismatch: %+v", prog)
	}

	hls := info.Formats[3]
	if hls.HasAudio() || hls.HasVideo() {
		t.Fatalf("null codecs must be absent: %+v", hls)
	}

	if h := info.Formats[4].Height; h == nil || *h != 240 {
		t.Fatalf("133 height=%v", h)
	}
}

func TestNumericHelpers(t *testing.T) {
	f := 1080.0
	i := 720
	if got := intPtr(&f); got == nil || *got != 1080 {
		t.Fatalf("intPtr(*float64)=%v", got)
	}
	if got := intPtr(&i); got == nil || *got != 720 {
		t.Fatalf("intPtr(*int)=%v", got)
	}
	var nilFloat *float64
	if got := intPtr(nilFloat); got != nil {
		t.Fatalf("intPtr(nil)=%v", got)
	}
	if got := floatPtr(129.5); got == nil || *got != 129.5 {
		t.Fatalf("floatPtr(float64)=%v", got)
	}
	s := "avc1"
	if str(&s) != "avc1" || str("x") != "x" || str((*string)(nil)) != "" {
		t.Fatalf("str() mismatch")
	}
}

func TestYtDlpFetchInfo_Command(t *testing.T) {
	var gotURL string
	var gotArgs []string
	y := NewYtDlp(Config{YtDlpPath: "/opt/yt-dlp", CookiesFile: "c.txt"}, nil)
	y.info = func(_ context.Context, cmd *ytdlp.Command, url string) (*ytdlp.ExtractedInfo, error) {
		gotURL = url
		gotArgs = cmd.BuildCommand(context.Background(), "--", url).Args
		return sampleExtracted(t), nil
	}
	info, err := y.FetchInfo(context.Background(), "https://www.youtube.com/watch?v=jNQXAC9IVRw")
	if err != nil {
		t.Fatalf("FetchInfo() error = %v", err)
	}
	if info.ID != "jNQXAC9IVRw" {
		t.Fatalf("ID=%q", info.ID)
	}
	if gotURL != "https://www.youtube.com/watch?v=jNQXAC9IVRw" {
		t.Fatalf("url=%q", gotURL)
	}
	for _, want := range []string{"--dump-single-json", "--skip-download", "--no-playlist", "--cookies"} {
		found := false
		for _, a := range gotArgs {
			if a == want || len(a) > len(want) && a[:len(want)+1] == want+"=" {
				found = true
			}
		}
		if !found {
			t.Fatalf("args missing %s: %q", want, gotArgs)
		}
	}
}

func TestYtDlpFetchInfo_PropagatesRunnerError(t *testing.T) {
	toolErr := &types.ToolError{Tool: "yt-dlp", Stderr: "ERROR: Unsupported URL: https://example.com/", Err: errors.New("exit status 1")}
	y := NewYtDlp(Config{}, func(context.Context, *ytdlp.Command, string) (*ytdlp.Result, error) {
		return nil, toolErr
	})
	_, err := y.FetchInfo(context.Background(), "https://example.com/")
	if !errors.Is(err, toolErr) {
		t.Fatalf("FetchInfo() err=%v want=%v", err, toolErr)
	}
}

func TestYtDlpFetchInfo_EmptyURL(t *testing.T) {
	y := NewYtDlp(Config{}, func(context.Context, *ytdlp.Command, string) (*ytdlp.Result, error) {
		t.Fatalf("runner must not be called")
		return nil, nil
	})
	if _, err := y.FetchInfo(context.Background(), "  "); !errors.Is(err, types.ErrEmptyURL) {
		t.Fatalf("FetchInfo() err=%v want=%v", err, types.ErrEmptyURL)
	}
}

func TestNew_Backends(t *testing.T) {
	for _, backend := range []string{"", "ytdlp", " YTDLP "} {
		ex, err := New(Config{Backend: backend})
		if err != nil {
			t.Fatalf("New(%q) error = %v", backend, err)
		}
		if _, ok := ex.(*YtDlp); !ok {
			t.Fatalf("New(%q) = %T, want *YtDlp", backend, ex)
		}
	}
	ex, err := New(Config{Backend: "youtube"})
	if err != nil {
		t.Fatalf("New(youtube) error = %v", err)
	}
	if _, ok := ex.(*YouTube); !ok {
		t.Fatalf("New(youtube) = %T, want *YouTube", ex)
	}
	if _, err := New(Config{Backend: "vlc"}); err == nil {
		t.Fatalf("New(vlc) error = nil")
	}
}

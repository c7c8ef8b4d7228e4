package formats

import (
	"mime"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/famomatic/ytserve/internal/types"
)

// FromYouTube converts formats reported by the native YouTube backend into
// descriptors. The itag becomes the format id, which yt-dlp accepts verbatim
// for YouTube sources.
func FromYouTube(list youtube.FormatList) []types.FormatDescriptor {
	out := make([]types.FormatDescriptor, 0, len(list))
	for _, f := range list {
		vcodec, acodec, ext := parseMimeType(f.MimeType)
		d := types.FormatDescriptor{
			ID:     strconv.Itoa(f.ItagNo),
			VCodec: vcodec,
			ACodec: acodec,
			Ext:    ext,
			Note:   f.QualityLabel,
		}
		if vcodec != types.NoCodec {
			if f.Height > 0 {
				d.Height = types.IntPtr(f.Height)
			}
			if f.Width > 0 {
				d.Width = types.IntPtr(f.Width)
			}
			if f.FPS > 0 {
				d.FPS = types.FloatPtr(float64(f.FPS))
			}
		}
		if acodec != types.NoCodec && f.AverageBitrate > 0 {
			d.ABR = types.FloatPtr(float64(f.AverageBitrate) / 1000)
		}
		out = append(out, d)
	}
	return out
}

// parseMimeType splits `video/mp4; codecs="avc1.42001E, mp4a.40.2"` into codec
// tags and a container extension. Absent streams are reported as "none".
func parseMimeType(mimeType string) (vcodec, acodec, ext string) {
	vcodec, acodec = types.NoCodec, types.NoCodec
	mediaType, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return vcodec, acodec, ""
	}
	kind, container, _ := strings.Cut(mediaType, "/")
	ext = strings.ToLower(container)
	if kind == "audio" && ext == "mp4" {
		ext = "m4a"
	}

	var codecs []string
	for _, c := range strings.Split(params["codecs"], ",") {
		if c = strings.TrimSpace(c); c != "" {
			codecs = append(codecs, c)
		}
	}
	if len(codecs) == 0 {
		return vcodec, acodec, ext
	}

	switch kind {
	case "video":
		vcodec = codecs[0]
		if len(codecs) > 1 {
			acodec = codecs[1]
		}
	case "audio":
		acodec = codecs[0]
	}
	return vcodec, acodec, ext
}

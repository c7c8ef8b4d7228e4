package selector

import (
	"encoding/json"
	"strconv"

	"github.com/famomatic/ytserve/internal/formats"
	"github.com/famomatic/ytserve/internal/types"
)

const (
	// MaxMergeVideos bounds how many video-only streams enter the merge cross product.
	MaxMergeVideos = 3
	// MaxMergeAudios bounds how many audio-only streams enter the merge cross product.
	MaxMergeAudios = 2
)

// Kind identifies how a candidate is downloaded.
type Kind string

const (
	KindProgressive Kind = "progressive"
	KindMerge       Kind = "merge"
)

// Candidate is one indexed download option.
type Candidate struct {
	Index int
	Kind  Kind

	// Format is set for progressive candidates.
	Format types.FormatDescriptor
	// Video and Audio are set for merge candidates.
	Video types.FormatDescriptor
	Audio types.FormatDescriptor
}

// Build ranks the classified groups and returns the indexed candidate list:
// every progressive format by height, then the cross product of the best
// video-only and audio-only formats. Inputs are not modified.
func Build(progressive, audioOnly, videoOnly []types.FormatDescriptor) []Candidate {
	videos := top(formats.ByHeight(videoOnly), MaxMergeVideos)
	audios := top(formats.ByAudioBitrate(audioOnly), MaxMergeAudios)

	out := make([]Candidate, 0, len(progressive)+len(videos)*len(audios))
	for _, f := range formats.ByHeight(progressive) {
		out = append(out, Candidate{Index: len(out), Kind: KindProgressive, Format: f})
	}
	for _, v := range videos {
		for _, a := range audios {
			out = append(out, Candidate{Index: len(out), Kind: KindMerge, Video: v, Audio: a})
		}
	}
	return out
}

// FromDescriptors classifies descs and builds the candidate list in one step.
func FromDescriptors(descs []types.FormatDescriptor) []Candidate {
	return Build(formats.Classify(descs))
}

func top(fs []types.FormatDescriptor, n int) []types.FormatDescriptor {
	if len(fs) > n {
		return fs[:n]
	}
	return fs
}

// Projection is the client-facing rendering of a Candidate.
type Projection struct {
	Index int
	Type  Kind

	Quality  string
	FormatID string

	VideoQuality string
	AudioRate    string
	VideoID      string
	AudioID      string
}

// Project renders candidates for listing responses.
func Project(candidates []Candidate) []Projection {
	out := make([]Projection, 0, len(candidates))
	for _, c := range candidates {
		p := Projection{Index: c.Index, Type: c.Kind}
		switch c.Kind {
		case KindMerge:
			p.VideoQuality = qualityLabel(c.Video.Height)
			p.AudioRate = audioRateLabel(c.Audio.ABR)
			p.VideoID = c.Video.ID
			p.AudioID = c.Audio.ID
		default:
			p.Quality = qualityLabel(c.Format.Height)
			p.FormatID = c.Format.ID
		}
		out = append(out, p)
	}
	return out
}

// MarshalJSON emits only the fields that belong to the projection's kind, in a
// fixed order.
func (p Projection) MarshalJSON() ([]byte, error) {
	if p.Type == KindMerge {
		return json.Marshal(struct {
			Index        int    `json:"index"`
			Type         Kind   `json:"type"`
			VideoQuality string `json:"video_quality"`
			AudioRate    string `json:"audio_rate"`
			VideoID      string `json:"v_id"`
			AudioID      string `json:"a_id"`
		}{p.Index, p.Type, p.VideoQuality, p.AudioRate, p.VideoID, p.AudioID})
	}
	return json.Marshal(struct {
		Index    int    `json:"index"`
		Type     Kind   `json:"type"`
		Quality  string `json:"quality"`
		FormatID string `json:"format_id"`
	}{p.Index, p.Type, p.Quality, p.FormatID})
}

// qualityLabel renders "<height>p"; an unknown height renders as "Nonep" so
// listings stay byte-compatible with existing clients.
func qualityLabel(height *int) string {
	if height == nil {
		return "Nonep"
	}
	return strconv.Itoa(*height) + "p"
}

// audioRateLabel renders "<abr>kbps" with the bitrate truncated toward zero.
func audioRateLabel(abr *float64) string {
	v := 0
	if abr != nil {
		v = int(*abr)
	}
	return strconv.Itoa(v) + "kbps"
}

package formats

import "github.com/famomatic/ytserve/internal/types"

// ClassOf derives the stream class of f. The second result is false when f has
// neither a usable video nor a usable audio codec.
func ClassOf(f types.FormatDescriptor) (types.StreamClass, bool) {
	switch {
	case f.HasVideo() && f.HasAudio():
		return types.StreamProgressive, true
	case f.HasVideo():
		return types.StreamVideoOnly, true
	case f.HasAudio():
		return types.StreamAudioOnly, true
	default:
		return "", false
	}
}

// Classify partitions descs into progressive, audio-only and video-only groups.
// Relative input order is preserved inside each group; descriptors without a
// usable stream are dropped.
func Classify(descs []types.FormatDescriptor) (progressive, audioOnly, videoOnly []types.FormatDescriptor) {
	for _, f := range descs {
		class, ok := ClassOf(f)
		if !ok {
			continue
		}
		switch class {
		case types.StreamProgressive:
			progressive = append(progressive, f)
		case types.StreamVideoOnly:
			videoOnly = append(videoOnly, f)
		case types.StreamAudioOnly:
			audioOnly = append(audioOnly, f)
		}
	}
	return progressive, audioOnly, videoOnly
}

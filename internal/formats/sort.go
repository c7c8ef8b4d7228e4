package formats

import (
	"sort"

	"github.com/famomatic/ytserve/internal/types"
)

// ByHeight returns a copy of fs sorted by height, highest first. Missing
// heights rank as 0 and ties keep their input order.
func ByHeight(fs []types.FormatDescriptor) []types.FormatDescriptor {
	out := append([]types.FormatDescriptor(nil), fs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].HeightOrZero() > out[j].HeightOrZero()
	})
	return out
}

// ByAudioBitrate returns a copy of fs sorted by average audio bitrate, highest
// first. Missing bitrates rank as 0 and ties keep their input order.
func ByAudioBitrate(fs []types.FormatDescriptor) []types.FormatDescriptor {
	out := append([]types.FormatDescriptor(nil), fs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ABROrZero() > out[j].ABROrZero()
	})
	return out
}

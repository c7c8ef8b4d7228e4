package types

// FormatDescriptor is one raw stream entry as reported by an extractor.
// Optional numeric fields are nil when the extractor did not report them.
type FormatDescriptor struct {
	ID     string
	VCodec string
	ACodec string
	Height *int
	ABR    *float64

	Ext   string
	Width *int
	FPS   *float64
	Note  string
}

// NoCodec is the sentinel extractors use for a missing stream.
const NoCodec = "none"

// HasVideo reports whether the descriptor carries a usable video codec.
func (f FormatDescriptor) HasVideo() bool {
	return usableCodec(f.VCodec)
}

// HasAudio reports whether the descriptor carries a usable audio codec.
func (f FormatDescriptor) HasAudio() bool {
	return usableCodec(f.ACodec)
}

// HeightOrZero returns the height used for ranking.
func (f FormatDescriptor) HeightOrZero() int {
	if f.Height == nil {
		return 0
	}
	return *f.Height
}

// ABROrZero returns the average audio bitrate (kbps) used for ranking.
func (f FormatDescriptor) ABROrZero() float64 {
	if f.ABR == nil {
		return 0
	}
	return *f.ABR
}

func usableCodec(c string) bool {
	return c != "" && c != NoCodec
}

// StreamClass is the derived kind of a descriptor.
type StreamClass string

const (
	StreamProgressive StreamClass = "progressive"
	StreamVideoOnly   StreamClass = "video_only"
	StreamAudioOnly   StreamClass = "audio_only"
)

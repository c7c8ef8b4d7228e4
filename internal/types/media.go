package types

// MediaInfo is the extraction result for one source URL.
type MediaInfo struct {
	ID      string
	Title   string
	Formats []FormatDescriptor
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

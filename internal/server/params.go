package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/famomatic/ytserve/client"
)

const maxBodyBytes = 1 << 20

// params holds request parameters from a JSON object or a form body.
// JSON values keep their decoded type so format_index coercion can tell
// numbers from strings.
type params struct {
	values map[string]any
}

func readParams(r *http.Request) params {
	p := params{values: map[string]any{}}
	if isJSON(r.Header.Get("Content-Type")) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil || len(bytes.TrimSpace(raw)) == 0 {
			return p
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err == nil && obj != nil {
			p.values = obj
		}
		return p
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return p
	}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			p.values[k] = v[0]
		}
	}
	return p
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// String returns the named value when it is a non-empty string.
func (p params) String(name string) string {
	s, _ := p.values[name].(string)
	return strings.TrimSpace(s)
}

// Has reports whether name is present and not JSON null.
func (p params) Has(name string) bool {
	v, ok := p.values[name]
	return ok && v != nil
}

// Index coerces the named value to an int. JSON numbers are truncated toward
// zero, booleans map to 0 and 1, and strings must hold a base-10 integer.
func (p params) Index(name string) (int, error) {
	invalid := &client.ParameterError{Kind: client.ErrInvalidParameterType, Name: name, Message: "format_index must be an integer"}
	switch v := p.values[name].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return clampInt(float64(n)), nil
		}
		f, err := v.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, invalid
		}
		return clampInt(math.Trunc(f)), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, invalid
		}
		return n, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, invalid
	}
}

// clampInt keeps out-of-range values out of int overflow; they are rejected
// later as invalid indexes.
func clampInt(f float64) int {
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	default:
		return int(f)
	}
}

package selector

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/famomatic/ytserve/internal/types"
)

func TestBuild_MixedScenario(t *testing.T) {
	descs := []types.FormatDescriptor{
		{ID: "22", VCodec: "h264", ACodec: "aac", Height: types.IntPtr(720)},
		{ID: "137", VCodec: "h264", Height: types.IntPtr(1080)},
		{ID: "140", ACodec: "aac", ABR: types.FloatPtr(128)},
	}

	got := FromDescriptors(descs)
	if len(got) != 2 {
		t.Fatalf("len(candidates)=%d want=2", len(got))
	}
	if got[0].Index != 0 || got[0].Kind != KindProgressive || got[0].Format.ID != "22" {
		t.Fatalf("candidate 0 = %+v", got[0])
	}
	if got[1].Index != 1 || got[1].Kind != KindMerge || got[1].Video.ID != "137" || got[1].Audio.ID != "140" {
		t.Fatalf("candidate 1 = %+v", got[1])
	}
}

func TestBuild_OrderAndCaps(t *testing.T) {
	progressive := []types.FormatDescriptor{
		{ID: "18", VCodec: "avc1", ACodec: "mp4a", Height: types.IntPtr(360)},
		{ID: "22", VCodec: "avc1", ACodec: "mp4a", Height: types.IntPtr(720)},
	}
	video := []types.FormatDescriptor{
		{ID: "134", VCodec: "avc1", Height: types.IntPtr(360)},
		{ID: "137", VCodec: "avc1", Height: types.IntPtr(1080)},
		{ID: "136", VCodec: "avc1", Height: types.IntPtr(720)},
		{ID: "313", VCodec: "vp9", Height: types.IntPtr(2160)},
	}
	audio := []types.FormatDescriptor{
		{ID: "139", ACodec: "mp4a", ABR: types.FloatPtr(48)},
		{ID: "251", ACodec: "opus", ABR: types.FloatPtr(160)},
		{ID: "140", ACodec: "mp4a", ABR: types.FloatPtr(129.5)},
	}

	got := Build(progressive, audio, video)
	want := []string{
		"p:22", "p:18",
		"m:313+251", "m:313+140",
		"m:137+251", "m:137+140",
		"m:136+251", "m:136+140",
	}
	if keys := candidateKeys(got); !reflect.DeepEqual(keys, want) {
		t.Fatalf("Build() order=%v want=%v", keys, want)
	}
	for i, c := range got {
		if c.Index != i {
			t.Fatalf("candidate %d has index %d", i, c.Index)
		}
	}
	if progressive[0].ID != "18" || video[0].ID != "134" || audio[0].ID != "139" {
		t.Fatalf("Build() mutated its inputs")
	}
}

func TestBuild_CountInvariant(t *testing.T) {
	for np := 0; np <= 2; np++ {
		for nv := 0; nv <= 5; nv++ {
			for na := 0; na <= 4; na++ {
				prog := makeDescs("p", np, "avc1", "mp4a")
				video := makeDescs("v", nv, "avc1", "none")
				audio := makeDescs("a", na, "none", "opus")
				got := len(Build(prog, audio, video))
				want := np + min(MaxMergeVideos, nv)*min(MaxMergeAudios, na)
				if got != want {
					t.Fatalf("np=%d nv=%d na=%d: len=%d want=%d", np, nv, na, got, want)
				}
			}
		}
	}
}

func TestBuild_StableTieBreak(t *testing.T) {
	video := []types.FormatDescriptor{
		{ID: "v1", VCodec: "avc1", Height: types.IntPtr(720)},
		{ID: "v2", VCodec: "vp9", Height: types.IntPtr(720)},
	}
	audio := []types.FormatDescriptor{
		{ID: "a1", ACodec: "opus"},
	}
	got := Build(nil, audio, video)
	if len(got) != 2 || got[0].Video.ID != "v1" || got[1].Video.ID != "v2" {
		t.Fatalf("tie order not preserved: %v", candidateKeys(got))
	}
}

func TestBuild_Deterministic(t *testing.T) {
	descs := []types.FormatDescriptor{
		{ID: "18", VCodec: "avc1", ACodec: "mp4a", Height: types.IntPtr(360)},
		{ID: "x", VCodec: "avc1", ACodec: "mp4a"},
		{ID: "137", VCodec: "avc1", Height: types.IntPtr(1080)},
		{ID: "248", VCodec: "vp9", Height: types.IntPtr(1080)},
		{ID: "140", ACodec: "mp4a", ABR: types.FloatPtr(128)},
		{ID: "251", ACodec: "opus", ABR: types.FloatPtr(128)},
	}
	first := FromDescriptors(descs)
	second := FromDescriptors(descs)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Build() not deterministic:\n%v\n%v", candidateKeys(first), candidateKeys(second))
	}
}

func TestBuild_Empty(t *testing.T) {
	if got := FromDescriptors(nil); len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
	video := makeDescs("v", 2, "avc1", "none")
	if got := Build(nil, nil, video); len(got) != 0 {
		t.Fatalf("video without audio should yield no merges, got %d", len(got))
	}
}

func TestProject_JSON(t *testing.T) {
	candidates := []Candidate{
		{Index: 0, Kind: KindProgressive, Format: types.FormatDescriptor{ID: "22", Height: types.IntPtr(720)}},
		{Index: 1, Kind: KindProgressive, Format: types.FormatDescriptor{ID: "hls-1"}},
		{Index: 2, Kind: KindMerge,
			Video: types.FormatDescriptor{ID: "137", Height: types.IntPtr(1080)},
			Audio: types.FormatDescriptor{ID: "140", ABR: types.FloatPtr(129.87)}},
		{Index: 3, Kind: KindMerge,
			Video: types.FormatDescriptor{ID: "dash-v"},
			Audio: types.FormatDescriptor{ID: "dash-a"}},
	}

	b, err := json.Marshal(Project(candidates))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `[` +
		`{"index":0,"type":"progressive","quality":"720p","format_id":"22"},` +
		`{"index":1,"type":"progressive","quality":"Nonep","format_id":"hls-1"},` +
		`{"index":2,"type":"merge","video_quality":"1080p","audio_rate":"129kbps","v_id":"137","a_id":"140"},` +
		`{"index":3,"type":"merge","video_quality":"Nonep","audio_rate":"0kbps","v_id":"dash-v","a_id":"dash-a"}` +
		`]`
	if string(b) != want {
		t.Fatalf("projection JSON:\n got=%s\nwant=%s", b, want)
	}
}

func candidateKeys(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		if c.Kind == KindMerge {
			out = append(out, "m:"+c.Video.ID+"+"+c.Audio.ID)
			continue
		}
		out = append(out, "p:"+c.Format.ID)
	}
	return out
}

func makeDescs(prefix string, n int, vcodec, acodec string) []types.FormatDescriptor {
	out := make([]types.FormatDescriptor, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.FormatDescriptor{
			ID:     fmt.Sprintf("%s%d", prefix, i),
			VCodec: vcodec,
			ACodec: acodec,
			Height: types.IntPtr(100 * (i + 1)),
			ABR:    types.FloatPtr(float64(32 * (i + 1))),
		})
	}
	return out
}

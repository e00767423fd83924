package timeline

import (
	"testing"

	"github.com/ytget/reel/internal/model"
)

func TestBuildTracksLayout(t *testing.T) {
	videos := []model.VideoItem{
		{ID: "v1", Name: "a.mp4", Duration: 10, URL: "blob:a"},
		{ID: "v2", Name: "b.mp4", URL: "blob:b", ProcessedURL: "blob:b2"},
		{ID: "v3", Name: "c.mp4", Duration: 2},
	}
	images := []model.ImageItem{{ID: "i1", Name: "logo.png", URL: "blob:i"}}
	texts := []model.TextItem{{ID: "t1", Content: "Title"}}

	tracks := BuildTracks(videos, images, texts, map[string]float64{"v3": 20})
	if len(tracks) != 3 {
		t.Fatalf("len(tracks) = %d, expected 3", len(tracks))
	}

	video := tracks[0]
	expected := []struct {
		start    float64
		duration float64
	}{
		{0, 10},
		{3, DefaultClipDuration},
		{20, 2},
	}
	for i, e := range expected {
		c := video.Clips[i]
		if c.StartTime != e.start || c.Duration != e.duration {
			t.Errorf("clip %d = %v+%v, expected %v+%v", i, c.StartTime, c.Duration, e.start, e.duration)
		}
	}
	if video.Clips[1].Src != "blob:b2" {
		t.Errorf("Src = %s, expected the processed output", video.Clips[1].Src)
	}
	if tracks[1].Clips[0].Duration != OverlayDuration || tracks[2].Clips[0].Name != "Title" {
		t.Errorf("overlay clips = %+v, %+v", tracks[1].Clips[0], tracks[2].Clips[0])
	}

	if c, ok := FindClip(tracks, ClipID("t1")); !ok || c.EntityID != "t1" {
		t.Errorf("FindClip() = %+v, %v", c, ok)
	}
}

func TestTotalDuration(t *testing.T) {
	if d := TotalDuration(nil); d != MinTotalDuration {
		t.Errorf("TotalDuration(nil) = %v, expected %v", d, MinTotalDuration)
	}
	tracks := BuildTracks([]model.VideoItem{{ID: "v", Duration: 30}}, nil, nil, nil)
	if d := TotalDuration(tracks); d != 30 {
		t.Errorf("TotalDuration() = %v, expected 30", d)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "00:00:00"},
		{5.9, "00:00:05"},
		{75, "00:01:15"},
		{3725, "01:02:05"},
		{-2, "00:00:00"},
	}
	for _, test := range tests {
		if result := FormatTime(test.input); result != test.expected {
			t.Errorf("FormatTime(%v) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

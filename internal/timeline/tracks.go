package timeline

import (
	"github.com/ytget/reel/internal/model"
)

// Track layout constants, in seconds
const (
	ClipSpacing         = 3.0
	DefaultClipDuration = 3.0
	OverlayDuration     = 4.0

	// MinTotalDuration keeps the ruler usable for short projects
	MinTotalDuration = 24.0

	ClipIDPrefix = "clip-"
)

// Track ids
const (
	VideoTrackID = "track-video"
	ImageTrackID = "track-image"
	TextTrackID  = "track-text"
)

// ClipID returns the clip id derived from an entity id
func ClipID(entityID string) string {
	return ClipIDPrefix + entityID
}

// BuildTracks derives the timeline from editor entities. overrides maps
// entity ids to dragged start times and wins over the default layout.
func BuildTracks(videos []model.VideoItem, images []model.ImageItem, texts []model.TextItem, overrides map[string]float64) []model.Track {
	start := func(entityID string, fallback float64) float64 {
		if s, ok := overrides[entityID]; ok {
			return s
		}
		return fallback
	}

	video := model.Track{ID: VideoTrackID, Name: "Video Track", Type: model.TrackVideo}
	for i, v := range videos {
		duration := v.Duration
		if duration <= 0 {
			duration = DefaultClipDuration
		}
		video.Clips = append(video.Clips, model.Clip{
			ID:        ClipID(v.ID),
			EntityID:  v.ID,
			Type:      model.TrackVideo,
			Name:      v.Name,
			StartTime: start(v.ID, float64(i)*ClipSpacing),
			Duration:  duration,
			TrackID:   VideoTrackID,
			Src:       v.Source(),
		})
	}

	image := model.Track{ID: ImageTrackID, Name: "Image Track", Type: model.TrackImage}
	for _, img := range images {
		image.Clips = append(image.Clips, model.Clip{
			ID:        ClipID(img.ID),
			EntityID:  img.ID,
			Type:      model.TrackImage,
			Name:      img.Name,
			StartTime: start(img.ID, 0),
			Duration:  OverlayDuration,
			TrackID:   ImageTrackID,
			Src:       img.URL,
		})
	}

	text := model.Track{ID: TextTrackID, Name: "Text Track", Type: model.TrackText}
	for _, t := range texts {
		text.Clips = append(text.Clips, model.Clip{
			ID:        ClipID(t.ID),
			EntityID:  t.ID,
			Type:      model.TrackText,
			Name:      t.Content,
			StartTime: start(t.ID, 0),
			Duration:  OverlayDuration,
			TrackID:   TextTrackID,
		})
	}

	return []model.Track{video, image, text}
}

// TotalDuration returns the ruler length for tracks
func TotalDuration(tracks []model.Track) float64 {
	total := MinTotalDuration
	for _, t := range tracks {
		if end := t.End(); end > total {
			total = end
		}
	}
	return total
}

// FindClip returns the clip with the given id
func FindClip(tracks []model.Track, clipID string) (model.Clip, bool) {
	for _, t := range tracks {
		for _, c := range t.Clips {
			if c.ID == clipID {
				return c, true
			}
		}
	}
	return model.Clip{}, false
}

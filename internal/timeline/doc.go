package timeline

// Package timeline projects editor state onto tracks and drives playback.
//
// BuildTracks derives clips from videos, images and texts. Engine owns the
// playhead, zoom and clip dragging, and keeps every registered media handle
// in step: handles are seeked together on play, paused together, and the
// playhead follows the slowest playing handle.

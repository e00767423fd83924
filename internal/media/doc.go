package media

// Package media owns the binary resources behind editor handles.
//
// A Registry maps opaque "blob:" handles to byte buffers, the way object
// URLs work in a browser. Handles are created when a file is imported or an
// export step produces output, and released exactly once when nothing in the
// editor references them any more. Playback handles (Handle) drive preview
// clocks for the timeline, and Prober reads durations with ffprobe.

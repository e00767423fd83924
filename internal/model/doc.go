package model

// Package model defines the editor's domain data structures: placed entities
// (video, image, text, shape, sticker), derived timeline tracks and clips,
// playback speeds, and export job state. Entities are plain values; every
// update produces a new value so snapshots can be kept for undo.

package ui

// Package ui contains the Fyne-based desktop editor. It renders the preview
// canvas and the timeline from editor state, routes pointer gestures to the
// editor and the timeline engine, and drives imports, exports and settings
// through dialogs.

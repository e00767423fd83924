package config

// Package config stores editor preferences through fyne.Preferences and
// exposes them as a plain Values snapshot for headless callers.

package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconFolder   = "📁"
	IconCopy     = "📋"
	IconClose    = "×"
	IconError    = "❌"
	IconPending  = "⏳"
	IconUndo     = "↶"
	IconRedo     = "↷"
	IconZoomIn   = "+"
	IconZoomOut  = "−"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
	TimeLabelFormat     = "%s / %s"
)

// Layout sizing
const (
	StatusLabelWidth  float32 = 96
	StepLabelWidth    float32 = 110
	PercentLabelWidth float32 = 48

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 56
	RowDefaultH  float32 = 64

	InspectorWidth  float32 = 240
	TimelineHeight  float32 = 180
	TrackLabelWidth float32 = 72
	RulerHeight     float32 = 22
	TrackRowHeight  float32 = 36
	ClipPadding     float32 = 3
	PlayheadWidth   float32 = 2

	SelectionStroke float32 = 2
)

// Dialog sizes
const (
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 520
	ExportDialogWidth    float32 = 460
	ExportDialogHeight   float32 = 360
	ImportDialogWidth    float32 = 480
	ImportDialogHeight   float32 = 320
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Progress rendering
const (
	MaxProgressPercent  = 100
	MinProgressPercent  = 1
	RoundingCoefficient = 0.5
)

// Insert defaults for toolbar actions
const (
	DefaultTextContent = "Double-click to edit"
	DefaultShapeColor  = "#3b82f6"
	DefaultShapeSize   = 120
	DefaultStickerSize = 64
	InsertOffset       = 40
	RecentExportsLimit = 20
)

// Stickers offered by the toolbar
var Stickers = []string{"⭐", "❤️", "😀", "🔥", "🎬", "👍", "🎉", "✨"}

// Ruler tick spacing, in seconds
const (
	RulerMinorTick = 1
	RulerMajorTick = 5
)

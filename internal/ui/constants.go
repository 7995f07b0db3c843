package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconImage    = "🖼"
	IconVideo    = "🎬"
	IconError    = "❌"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	PreviewMinWidth  float32 = 520
	PreviewMinHeight float32 = 420
	SidebarWidth     float32 = 280
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// Resize polling
const (
	ResizePollInterval = 250 * time.Millisecond
)

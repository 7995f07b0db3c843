package model

import "unicode/utf8"

// Caption length limits, in runes.
const (
	MaxCaptionLen   = 240
	MaxWatermarkLen = 64
)

// Manual font size slider bounds.
const (
	MinManualFontSize = 20
	MaxManualFontSize = 200
)

// AspectKey names an entry in the aspect preset table.
type AspectKey string

const (
	AspectSquare   AspectKey = "1:1"
	AspectClassic  AspectKey = "4:3"
	AspectWide     AspectKey = "16:9"
	AspectPortrait AspectKey = "4:5"
	AspectVertical AspectKey = "9:16"
)

// AspectPreset is a fixed canvas shape offered to the user.
type AspectPreset struct {
	Key    AspectKey
	Width  int
	Height int
}

// Ratio returns the preset's width/height ratio.
func (p AspectPreset) Ratio() float64 {
	return float64(p.Width) / float64(p.Height)
}

// AspectPresets is the process-wide preset table. Order matters: it is the
// tie-break order for aspect snapping and the display order in selectors.
var AspectPresets = []AspectPreset{
	{AspectSquare, 900, 900},
	{AspectClassic, 1200, 900},
	{AspectWide, 1280, 720},
	{AspectPortrait, 864, 1080},
	{AspectVertical, 720, 1280},
}

// PresetFor returns the preset named by key, falling back to the first
// table entry for unknown keys.
func PresetFor(key AspectKey) AspectPreset {
	for _, p := range AspectPresets {
		if p.Key == key {
			return p
		}
	}
	return AspectPresets[0]
}

// AspectKeys returns the preset names in table order for selector widgets.
func AspectKeys() []string {
	keys := make([]string, len(AspectPresets))
	for i, p := range AspectPresets {
		keys[i] = string(p.Key)
	}
	return keys
}

// PlacementMode governs the vertical arrangement of caption vs media.
type PlacementMode string

const (
	// PlacementAbove puts the caption band above the media block.
	PlacementAbove PlacementMode = "Above"

	// PlacementCenter centers the caption over media fitted to the canvas.
	PlacementCenter PlacementMode = "Center"

	// PlacementBelow puts the caption band below the media block.
	PlacementBelow PlacementMode = "Below"

	// PlacementOverlay fills the whole canvas with the media and draws the
	// caption over a darkening gradient.
	PlacementOverlay PlacementMode = "Overlay"
)

// Placements returns all placement modes in display order.
func Placements() []string {
	return []string{
		string(PlacementAbove),
		string(PlacementCenter),
		string(PlacementBelow),
		string(PlacementOverlay),
	}
}

// FontChoice names one of the fixed embedded font families.
type FontChoice string

const (
	FontBold     FontChoice = "Go Bold"
	FontRegular  FontChoice = "Go Regular"
	FontItalic   FontChoice = "Go Italic"
	FontMono     FontChoice = "Go Mono"
	FontSmallcap FontChoice = "Go Smallcaps"
)

// Fonts returns the font family names in display order.
func Fonts() []string {
	return []string{
		string(FontBold),
		string(FontRegular),
		string(FontItalic),
		string(FontMono),
		string(FontSmallcap),
	}
}

// RenderMetrics holds the derived canvas size and caption font size. It is
// recomputed on every state transition and never stored.
type RenderMetrics struct {
	Width    int
	Height   int
	FontSize float64
}

// Composition is the screen's session state: captions, selections, and the
// optional media attachment. It lives for the lifetime of the window and is
// never persisted.
type Composition struct {
	TopText    string
	BottomText string
	Watermark  string
	Aspect     AspectKey
	Placement  PlacementMode
	Font       FontChoice

	// FontSizeOverride replaces the automatic font size when non-zero. It
	// is cleared whenever caption text, aspect, or the attachment change.
	FontSizeOverride float64

	Media *MediaAttachment
}

// NewComposition returns a composition with the default selections.
func NewComposition() *Composition {
	return &Composition{
		Aspect:    AspectSquare,
		Placement: PlacementBelow,
		Font:      FontBold,
	}
}

// SetTopText updates the top caption, enforcing the length cap and
// reverting to automatic font sizing.
func (c *Composition) SetTopText(text string) {
	text = truncateRunes(text, MaxCaptionLen)
	if text == c.TopText {
		return
	}
	c.TopText = text
	c.FontSizeOverride = 0
}

// SetBottomText updates the bottom caption, enforcing the length cap and
// reverting to automatic font sizing.
func (c *Composition) SetBottomText(text string) {
	text = truncateRunes(text, MaxCaptionLen)
	if text == c.BottomText {
		return
	}
	c.BottomText = text
	c.FontSizeOverride = 0
}

// SetWatermark updates the corner watermark. The watermark has its own
// fixed size rule, so the override is left alone.
func (c *Composition) SetWatermark(text string) {
	c.Watermark = truncateRunes(text, MaxWatermarkLen)
}

// SetAspect selects an aspect preset and reverts to automatic font sizing.
func (c *Composition) SetAspect(key AspectKey) {
	if key == c.Aspect {
		return
	}
	c.Aspect = key
	c.FontSizeOverride = 0
}

// SetMedia replaces the attachment reference and reverts to automatic font
// sizing. Ownership of the previous attachment stays with the ingest
// service; this only swaps the pointer.
func (c *Composition) SetMedia(m *MediaAttachment) {
	if m == c.Media {
		return
	}
	c.Media = m
	c.FontSizeOverride = 0
}

// SetManualFontSize sets the override, clamped to the slider range.
func (c *Composition) SetManualFontSize(size float64) {
	if size < MinManualFontSize {
		size = MinManualFontSize
	}
	if size > MaxManualFontSize {
		size = MaxManualFontSize
	}
	c.FontSizeOverride = size
}

// ClearFontSizeOverride reverts to automatic font sizing.
func (c *Composition) ClearFontSizeOverride() {
	c.FontSizeOverride = 0
}

// HasBothCaptions reports whether the top and bottom bands are both in use.
func (c *Composition) HasBothCaptions() bool {
	return c.TopText != "" && c.BottomText != ""
}

// CaptionLength returns the rune count driving automatic font sizing: the
// longer of the two captions, so the busier band stays readable.
func (c *Composition) CaptionLength() int {
	top := utf8.RuneCountInString(c.TopText)
	bottom := utf8.RuneCountInString(c.BottomText)
	if bottom > top {
		return bottom
	}
	return top
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// Package layout derives render metrics from the composition state. All
// functions are pure: the UI calls Compute on every state transition instead
// of caching sizes, so there is no staleness to invalidate.
package layout

import (
	"math"

	"github.com/memeforge/memeforge/internal/model"
)

// Sizing fractions of the canvas granted to the caption text.
const (
	ViewportFill  = 0.9  // canvas width budget within the viewport
	TextWidthFill = 0.85 // caption width budget within the canvas

	bandHeightFrac      = 0.25 // per caption band when top+bottom are both set
	withMediaHeightFrac = 0.4  // caption share when media occupies the canvas
	textOnlyHeightFrac  = 0.8  // caption share on a text-only canvas
)

// Automatic font size bounds, in pixels.
const (
	MinAutoFontSize = 28
	MaxAutoFontSize = 120
)

// Compute derives the canvas pixel size and caption font size for the
// current composition and viewport width.
//
// The canvas shape always follows the selected aspect preset; an attached
// media only caps the resolution. The preset is scaled uniformly so the
// canvas fits in 0.9×viewport and never exceeds the media's natural size in
// either axis, with the scale capped at 1 (never upscaled past the preset).
func Compute(comp *model.Composition, viewportWidth float64) model.RenderMetrics {
	preset := model.PresetFor(comp.Aspect)

	scale := ViewportFill * viewportWidth / float64(preset.Width)
	if m := comp.Media; m != nil && m.Width > 0 && m.Height > 0 {
		scale = math.Min(scale, float64(m.Width)/float64(preset.Width))
		scale = math.Min(scale, float64(m.Height)/float64(preset.Height))
	}
	if scale > 1 {
		scale = 1
	}
	if scale < 0 || math.IsNaN(scale) {
		scale = 0
	}

	width := int(math.Round(float64(preset.Width) * scale))
	height := int(math.Round(float64(preset.Height) * scale))

	fontSize := comp.FontSizeOverride
	if fontSize <= 0 {
		fontSize = autoFontSize(comp, width, height)
	}

	return model.RenderMetrics{Width: width, Height: height, FontSize: fontSize}
}

// autoFontSize sizes the caption from the available text area and the
// caption length: fontSize = min(availW, availH) / max(1.5, sqrt(len/2)),
// clamped to [28, 120]. An empty caption counts as length 1.
func autoFontSize(comp *model.Composition, width, height int) float64 {
	availW := TextWidthFill * float64(width)

	var availH float64
	switch {
	case comp.HasBothCaptions():
		availH = bandHeightFrac * float64(height)
	case comp.Media != nil:
		availH = withMediaHeightFrac * float64(height)
	default:
		availH = textOnlyHeightFrac * float64(height)
	}

	length := comp.CaptionLength()
	if length < 1 {
		length = 1
	}
	divisor := math.Max(1.5, math.Sqrt(float64(length)/2))

	return clamp(math.Min(availW, availH)/divisor, MinAutoFontSize, MaxAutoFontSize)
}

// SnapAspect returns the preset key whose ratio is closest to the media's
// natural ratio. Ties keep the earlier table entry.
func SnapAspect(ratio float64) model.AspectKey {
	best := model.AspectPresets[0].Key
	bestDiff := math.Abs(ratio - model.AspectPresets[0].Ratio())
	for _, p := range model.AspectPresets[1:] {
		if diff := math.Abs(ratio - p.Ratio()); diff < bestDiff {
			best = p.Key
			bestDiff = diff
		}
	}
	return best
}

// WatermarkFontSize returns the fixed fractional watermark size for a
// canvas height: max(10, 0.04×height).
func WatermarkFontSize(canvasHeight int) float64 {
	return math.Max(10, 0.04*float64(canvasHeight))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

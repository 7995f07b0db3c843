package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/memeforge/memeforge/internal/model"
)

func TestCompute_NoMediaFitsViewport(t *testing.T) {
	tests := []struct {
		viewport       float64
		aspect         model.AspectKey
		expectedWidth  int
		expectedHeight int
	}{
		// 0.9×1000 = 900 ≥ preset width, scale capped at 1.
		{1000, model.AspectSquare, 900, 900},
		// 0.9×500 = 450, preset scaled down uniformly.
		{500, model.AspectSquare, 450, 450},
		{10000, model.AspectWide, 1280, 720},
		{800, model.AspectWide, 720, 405},
		// Degenerate viewport yields a zero-sized canvas.
		{0, model.AspectSquare, 0, 0},
	}

	for _, test := range tests {
		comp := model.NewComposition()
		comp.SetAspect(test.aspect)
		m := Compute(comp, test.viewport)
		if m.Width != test.expectedWidth || m.Height != test.expectedHeight {
			t.Errorf("Compute(viewport=%.0f, %s) = %dx%d, expected %dx%d",
				test.viewport, test.aspect, m.Width, m.Height, test.expectedWidth, test.expectedHeight)
		}
	}
}

func TestCompute_CanvasNeverExceedsBudget(t *testing.T) {
	for _, viewport := range []float64{1, 100, 333, 999, 2560, 7680} {
		for _, preset := range model.AspectPresets {
			comp := model.NewComposition()
			comp.SetAspect(preset.Key)
			m := Compute(comp, viewport)

			if float64(m.Width) > math.Ceil(ViewportFill*viewport) {
				t.Errorf("Canvas width %d exceeds 0.9×viewport %.0f for %s", m.Width, viewport, preset.Key)
			}
			if m.Width > preset.Width {
				t.Errorf("Canvas width %d exceeds preset native width %d for %s", m.Width, preset.Width, preset.Key)
			}
		}
	}
}

func TestCompute_MediaCapsResolution(t *testing.T) {
	comp := model.NewComposition()
	comp.SetAspect(model.AspectSquare)
	comp.SetMedia(&model.MediaAttachment{Kind: model.MediaImage, Width: 600, Height: 800})

	// Viewport would allow 900, but the media's 600px width constrains the
	// square preset to 600×600.
	m := Compute(comp, 2000)
	if m.Width != 600 || m.Height != 600 {
		t.Errorf("Expected 600x600 canvas capped by media width, got %dx%d", m.Width, m.Height)
	}

	// Shape still follows the preset, not the media ratio.
	if m.Width != m.Height {
		t.Error("Square preset should stay square regardless of media ratio")
	}
}

func TestCompute_FontSizeShortCaptionHitsMax(t *testing.T) {
	comp := model.NewComposition()
	comp.SetAspect(model.AspectSquare)
	comp.SetTopText("Hi")

	// Canvas 900×900, no media: avail 765×720, divisor max(1.5, sqrt(1)) =
	// 1.5, 720/1.5 = 480 → capped at 120.
	m := Compute(comp, 1000)
	if m.FontSize != MaxAutoFontSize {
		t.Errorf("Expected font size capped at %d, got %f", MaxAutoFontSize, m.FontSize)
	}
}

func TestCompute_FontSizeAlwaysInBounds(t *testing.T) {
	lengths := []int{0, 1, 2, 10, 50, 120, 240}
	viewports := []float64{0, 120, 500, 1000, 4000}

	for _, n := range lengths {
		for _, viewport := range viewports {
			comp := model.NewComposition()
			comp.SetTopText(strings.Repeat("x", n))
			m := Compute(comp, viewport)
			if m.FontSize < MinAutoFontSize || m.FontSize > MaxAutoFontSize {
				t.Errorf("Font size %f out of [%d, %d] for length=%d viewport=%.0f",
					m.FontSize, MinAutoFontSize, MaxAutoFontSize, n, viewport)
			}
		}
	}
}

func TestCompute_BandLayoutShrinksFont(t *testing.T) {
	single := model.NewComposition()
	single.SetTopText("top text only caption")

	both := model.NewComposition()
	both.SetTopText("top text only caption")
	both.SetBottomText("bottom")

	ms := Compute(single, 1000)
	mb := Compute(both, 1000)
	if mb.FontSize > ms.FontSize {
		t.Errorf("Band layout font %f should not exceed single-caption font %f", mb.FontSize, ms.FontSize)
	}
}

func TestCompute_ManualOverrideWins(t *testing.T) {
	comp := model.NewComposition()
	comp.SetTopText("some caption")
	comp.SetManualFontSize(33)

	m := Compute(comp, 1000)
	if m.FontSize != 33 {
		t.Errorf("Expected manual font size 33, got %f", m.FontSize)
	}

	// Editing the caption reverts to automatic sizing.
	comp.SetTopText("some caption edited")
	m = Compute(comp, 1000)
	if m.FontSize == 33 {
		t.Error("Caption edit should revert to automatic font sizing")
	}
}

func TestSnapAspect(t *testing.T) {
	tests := []struct {
		ratio    float64
		expected model.AspectKey
	}{
		{1920.0 / 1080.0, model.AspectWide}, // exact 16:9 match
		{1.0, model.AspectSquare},
		{0.55, model.AspectVertical},
		{1.3, model.AspectClassic},
		{0.8, model.AspectPortrait},
	}

	for _, test := range tests {
		if got := SnapAspect(test.ratio); got != test.expected {
			t.Errorf("SnapAspect(%f) = %s, expected %s", test.ratio, got, test.expected)
		}
	}
}

func TestWatermarkFontSize(t *testing.T) {
	tests := []struct {
		height   int
		expected float64
	}{
		{900, 36},
		{720, 28.8},
		{100, 10}, // floor
		{0, 10},
	}

	for _, test := range tests {
		if got := WatermarkFontSize(test.height); got != test.expected {
			t.Errorf("WatermarkFontSize(%d) = %f, expected %f", test.height, got, test.expected)
		}
	}
}

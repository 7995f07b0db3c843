package model

import (
	"strings"
	"testing"
)

func TestPresetFor(t *testing.T) {
	tests := []struct {
		key            AspectKey
		expectedWidth  int
		expectedHeight int
	}{
		{AspectSquare, 900, 900},
		{AspectWide, 1280, 720},
		{AspectVertical, 720, 1280},
		{"bogus", 900, 900}, // falls back to first entry
	}

	for _, test := range tests {
		p := PresetFor(test.key)
		if p.Width != test.expectedWidth || p.Height != test.expectedHeight {
			t.Errorf("PresetFor(%s) = %dx%d, expected %dx%d",
				test.key, p.Width, p.Height, test.expectedWidth, test.expectedHeight)
		}
	}
}

func TestAspectPreset_Ratio(t *testing.T) {
	p := PresetFor(AspectWide)
	expected := 1280.0 / 720.0
	if p.Ratio() != expected {
		t.Errorf("Ratio() = %f, expected %f", p.Ratio(), expected)
	}
}

func TestComposition_CaptionCaps(t *testing.T) {
	c := NewComposition()

	c.SetTopText(strings.Repeat("a", MaxCaptionLen+50))
	if got := len(c.TopText); got != MaxCaptionLen {
		t.Errorf("Top caption length = %d, expected cap %d", got, MaxCaptionLen)
	}

	c.SetWatermark(strings.Repeat("w", MaxWatermarkLen+10))
	if got := len(c.Watermark); got != MaxWatermarkLen {
		t.Errorf("Watermark length = %d, expected cap %d", got, MaxWatermarkLen)
	}
}

func TestComposition_OverrideClearedOnCaptionChange(t *testing.T) {
	c := NewComposition()
	c.SetManualFontSize(64)

	if c.FontSizeOverride != 64 {
		t.Fatalf("Expected override 64, got %f", c.FontSizeOverride)
	}

	c.SetTopText("new caption")
	if c.FontSizeOverride != 0 {
		t.Error("Override should be cleared when the caption changes")
	}
}

func TestComposition_OverrideClearedOnAspectChange(t *testing.T) {
	c := NewComposition()
	c.SetManualFontSize(64)

	c.SetAspect(AspectWide)
	if c.FontSizeOverride != 0 {
		t.Error("Override should be cleared when the aspect changes")
	}

	// Re-selecting the same aspect is a no-op.
	c.SetManualFontSize(64)
	c.SetAspect(AspectWide)
	if c.FontSizeOverride != 64 {
		t.Error("Re-selecting the current aspect should not clear the override")
	}
}

func TestComposition_OverrideClearedOnMediaChange(t *testing.T) {
	c := NewComposition()
	c.SetManualFontSize(64)

	c.SetMedia(&MediaAttachment{Kind: MediaImage, Width: 800, Height: 600})
	if c.FontSizeOverride != 0 {
		t.Error("Override should be cleared when the attachment changes")
	}
}

func TestComposition_WatermarkKeepsOverride(t *testing.T) {
	c := NewComposition()
	c.SetManualFontSize(64)

	c.SetWatermark("@memeforge")
	if c.FontSizeOverride != 64 {
		t.Error("Watermark edits should not clear the override")
	}
}

func TestComposition_SetManualFontSizeClamps(t *testing.T) {
	c := NewComposition()

	c.SetManualFontSize(5)
	if c.FontSizeOverride != MinManualFontSize {
		t.Errorf("Expected clamp to %d, got %f", MinManualFontSize, c.FontSizeOverride)
	}

	c.SetManualFontSize(999)
	if c.FontSizeOverride != MaxManualFontSize {
		t.Errorf("Expected clamp to %d, got %f", MaxManualFontSize, c.FontSizeOverride)
	}
}

func TestComposition_CaptionLength(t *testing.T) {
	tests := []struct {
		top      string
		bottom   string
		expected int
	}{
		{"", "", 0},
		{"Hi", "", 2},
		{"Hi", "a longer bottom line", 20},
		{"Привет", "", 6}, // rune count, not byte count
	}

	for _, test := range tests {
		c := NewComposition()
		c.SetTopText(test.top)
		c.SetBottomText(test.bottom)
		if got := c.CaptionLength(); got != test.expected {
			t.Errorf("CaptionLength() with top='%s' bottom='%s' = %d, expected %d",
				test.top, test.bottom, got, test.expected)
		}
	}
}

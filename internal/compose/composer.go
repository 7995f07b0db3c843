// Package compose rasterizes the composition: the media block, the caption
// band(s), and the corner watermark, arranged by placement mode. The same
// renderer backs the live preview, the PNG exporter, and every video frame,
// so exports match the preview pixel for pixel.
package compose

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoders for dropped files
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"  // extra decoders for the accept filter
	_ "golang.org/x/image/webp"
	xdraw "golang.org/x/image/draw"

	"github.com/memeforge/memeforge/internal/layout"
	"github.com/memeforge/memeforge/internal/model"
)

// Caption band fractions of the canvas height.
const (
	bandFrac        = 0.25 // top/bottom band when both captions are set
	singleBandFrac  = 0.4  // single caption band next to media
	captionFillFrac = 0.85 // caption width budget within the canvas
)

var (
	canvasFill        = color.RGBA{R: 16, G: 16, B: 16, A: 255}
	captionFill       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	captionEdge       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	overlayVeilTop    = color.RGBA{R: 0, G: 0, B: 0, A: 32}
	overlayVeilBottom = color.RGBA{R: 0, G: 0, B: 0, A: 144}
	watermarkInk      = color.RGBA{R: 255, G: 255, B: 255, A: 200}
)

// Composer renders compositions to raster images.
type Composer struct {
	fonts *FontManager
}

// NewComposer creates a composer with the embedded font set.
func NewComposer() (*Composer, error) {
	fonts, err := NewFontManager()
	if err != nil {
		return nil, err
	}
	return &Composer{fonts: fonts}, nil
}

// LoadImage decodes an image file: attachment temp copies and extracted
// video frames both go through here.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Render composes captions, optional media, and watermark onto a canvas of
// metrics.Width×Height. media may be nil for a text-only meme; a zero-sized
// metrics yields an empty image (transient state before first measurement).
func (c *Composer) Render(comp *model.Composition, media image.Image, metrics model.RenderMetrics) *image.RGBA {
	w, h := metrics.Width, metrics.Height
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(canvasFill)
	dc.Clear()

	mediaRect, topAt, bottomAt := c.regions(comp, media != nil, w, h)

	if media != nil {
		if comp.Placement == model.PlacementOverlay {
			c.drawCover(dc, media, w, h)
			// Darkening gradient keeps the caption readable over busy media.
			veil := gg.NewLinearGradient(0, 0, 0, float64(h))
			veil.AddColorStop(0, overlayVeilTop)
			veil.AddColorStop(1, overlayVeilBottom)
			dc.SetFillStyle(veil)
			dc.DrawRectangle(0, 0, float64(w), float64(h))
			dc.Fill()
		} else {
			c.drawContained(dc, media, mediaRect)
		}
	}

	face := c.fonts.Face(comp.Font, metrics.FontSize)
	dc.SetFontFace(face)

	if comp.TopText != "" {
		c.drawCaption(dc, comp.TopText, w, topAt)
	}
	if comp.BottomText != "" {
		c.drawCaption(dc, comp.BottomText, w, bottomAt)
	}

	if comp.Watermark != "" {
		c.drawWatermark(dc, comp.Watermark, w, h)
	}

	rgba, ok := dc.Image().(*image.RGBA)
	if !ok {
		bounds := dc.Image().Bounds()
		rgba = image.NewRGBA(bounds)
		xdraw.Draw(rgba, bounds, dc.Image(), bounds.Min, xdraw.Src)
	}
	return rgba
}

// regions computes the media rectangle and the vertical anchor of each
// caption for the current placement mode.
func (c *Composer) regions(comp *model.Composition, hasMedia bool, w, h int) (mediaRect image.Rectangle, topAt, bottomAt float64) {
	fh := float64(h)

	if !hasMedia {
		// Text-only canvas: single captions follow the placement anchor.
		topAt, bottomAt = 0.15*fh, 0.85*fh
		if !comp.HasBothCaptions() {
			switch comp.Placement {
			case model.PlacementAbove:
				topAt, bottomAt = 0.15*fh, 0.15*fh
			case model.PlacementBelow:
				topAt, bottomAt = 0.85*fh, 0.85*fh
			default:
				topAt, bottomAt = 0.5*fh, 0.5*fh
			}
		}
		return image.Rectangle{}, topAt, bottomAt
	}

	if comp.HasBothCaptions() {
		band := int(bandFrac * fh)
		mediaRect = image.Rect(0, band, w, h-band)
		return mediaRect, bandFrac * fh / 2, fh - bandFrac*fh/2
	}

	band := int(singleBandFrac * fh)
	switch comp.Placement {
	case model.PlacementAbove:
		// Caption band on top, media below it.
		mediaRect = image.Rect(0, band, w, h)
		topAt, bottomAt = singleBandFrac*fh/2, singleBandFrac*fh/2
	case model.PlacementBelow:
		mediaRect = image.Rect(0, 0, w, h-band)
		topAt, bottomAt = fh-singleBandFrac*fh/2, fh-singleBandFrac*fh/2
	default:
		// Center and Overlay: media occupies the whole canvas, caption sits
		// over the middle.
		mediaRect = image.Rect(0, 0, w, h)
		topAt, bottomAt = 0.5*fh, 0.5*fh
	}
	return mediaRect, topAt, bottomAt
}

// drawContained scales the media uniformly to fit inside rect, centered.
func (c *Composer) drawContained(dc *gg.Context, media image.Image, rect image.Rectangle) {
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return
	}

	srcW, srcH := media.Bounds().Dx(), media.Bounds().Dy()
	if srcW <= 0 || srcH <= 0 {
		return
	}

	scale := min(float64(rect.Dx())/float64(srcW), float64(rect.Dy())/float64(srcH))
	dstW, dstH := int(float64(srcW)*scale), int(float64(srcH)*scale)
	if dstW <= 0 || dstH <= 0 {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), media, media.Bounds(), xdraw.Over, nil)

	x := rect.Min.X + (rect.Dx()-dstW)/2
	y := rect.Min.Y + (rect.Dy()-dstH)/2
	dc.DrawImage(scaled, x, y)
}

// drawCover scales the media uniformly to fill the whole canvas, cropping
// the overflow, for the overlay placement.
func (c *Composer) drawCover(dc *gg.Context, media image.Image, w, h int) {
	srcW, srcH := media.Bounds().Dx(), media.Bounds().Dy()
	if srcW <= 0 || srcH <= 0 {
		return
	}

	scale := max(float64(w)/float64(srcW), float64(h)/float64(srcH))
	dstW, dstH := int(float64(srcW)*scale), int(float64(srcH)*scale)

	scaled := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), media, media.Bounds(), xdraw.Over, nil)

	dc.DrawImage(scaled, (w-dstW)/2, (h-dstH)/2)
}

// drawCaption paints one caption centered at the vertical anchor: uppercase,
// word-wrapped to the width budget, white fill over a rounded dark outline.
func (c *Composer) drawCaption(dc *gg.Context, text string, w int, centerY float64) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return
	}

	maxWidth := captionFillFrac * float64(w)
	lines := dc.WordWrap(text, maxWidth)

	lineSpacing := 1.2
	fontHeight := dc.FontHeight()
	total := float64(len(lines)) * fontHeight * lineSpacing
	total -= (lineSpacing - 1) * fontHeight

	x := float64(w) / 2
	y := centerY - total/2 + fontHeight/2

	outline := max(2, int(fontHeight/12))
	for _, line := range lines {
		dc.SetColor(captionEdge)
		for dy := -outline; dy <= outline; dy++ {
			for dx := -outline; dx <= outline; dx++ {
				if dx*dx+dy*dy >= outline*outline {
					// rounded corners
					continue
				}
				dc.DrawStringAnchored(line, x+float64(dx), y+float64(dy), 0.5, 0.5)
			}
		}

		dc.SetColor(captionFill)
		dc.DrawStringAnchored(line, x, y, 0.5, 0.5)
		y += fontHeight * lineSpacing
	}
}

// drawWatermark paints the watermark in the bottom-right corner at the
// fixed fractional size.
func (c *Composer) drawWatermark(dc *gg.Context, text string, w, h int) {
	size := layout.WatermarkFontSize(h)
	dc.SetFontFace(c.fonts.Face(model.FontRegular, size))
	dc.SetColor(watermarkInk)

	margin := size / 2
	dc.DrawStringAnchored(text, float64(w)-margin, float64(h)-margin, 1, 1)
}

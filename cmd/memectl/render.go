package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/memeforge/memeforge/internal/compose"
	"github.com/memeforge/memeforge/internal/layout"
	"github.com/memeforge/memeforge/internal/model"
)

var (
	renderTop       string
	renderBottom    string
	renderWatermark string
	renderAspect    string
	renderPlacement string
	renderFont      string
	renderFontSize  float64
	renderMedia     string
	renderOutput    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a composition to PNG",
	Long: `Render a captioned composition to a PNG file at full preset
resolution. An optional image can be attached with --media; its natural
size caps the canvas the same way it does in the editor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		comp := model.NewComposition()
		comp.SetTopText(renderTop)
		comp.SetBottomText(renderBottom)
		comp.SetWatermark(renderWatermark)
		comp.SetAspect(model.AspectKey(renderAspect))
		comp.Placement = model.PlacementMode(renderPlacement)
		comp.Font = model.FontChoice(renderFont)
		if renderFontSize > 0 {
			comp.SetManualFontSize(renderFontSize)
		}

		var media image.Image
		if renderMedia != "" {
			img, err := compose.LoadImage(renderMedia)
			if err != nil {
				return fmt.Errorf("failed to load media: %w", err)
			}
			media = img
			bounds := img.Bounds()
			comp.SetMedia(&model.MediaAttachment{
				SourceName: renderMedia,
				Kind:       model.MediaImage,
				Width:      bounds.Dx(),
				Height:     bounds.Dy(),
			})
			if renderFontSize > 0 {
				// Attaching reverts to automatic sizing; reapply.
				comp.SetManualFontSize(renderFontSize)
			}
		}

		composer, err := compose.NewComposer()
		if err != nil {
			return err
		}

		preset := model.PresetFor(comp.Aspect)
		metrics := layout.Compute(comp, float64(preset.Width)/layout.ViewportFill)
		img := composer.Render(comp, media, metrics)

		f, err := os.Create(renderOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Printf("Rendered %dx%d composition to %s\n", metrics.Width, metrics.Height, renderOutput)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderTop, "top", "", "top caption text")
	renderCmd.Flags().StringVar(&renderBottom, "bottom", "", "bottom caption text")
	renderCmd.Flags().StringVar(&renderWatermark, "watermark", "", "corner watermark text")
	renderCmd.Flags().StringVar(&renderAspect, "aspect", string(model.AspectSquare), "aspect preset (1:1, 4:3, 16:9, 4:5, 9:16)")
	renderCmd.Flags().StringVar(&renderPlacement, "placement", string(model.PlacementBelow), "caption placement (Above, Center, Below, Overlay)")
	renderCmd.Flags().StringVar(&renderFont, "font", string(model.FontBold), "font family")
	renderCmd.Flags().Float64Var(&renderFontSize, "font-size", 0, "manual font size (0 for automatic)")
	renderCmd.Flags().StringVar(&renderMedia, "media", "", "image file to attach")
	renderCmd.Flags().StringVar(&renderOutput, "out", "meme.png", "output PNG path")
}

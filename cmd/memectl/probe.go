package main

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/memeforge/memeforge/internal/layout"
	"github.com/memeforge/memeforge/internal/platform"
)

var probeCmd = &cobra.Command{
	Use:   "probe [file]",
	Short: "Probe a media file",
	Long: `Probe an image or video for its natural dimensions, duration, and
the aspect preset the editor would snap to.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		switch {
		case platform.IsVideoPath(path):
			info, err := platform.ProbeVideo(path)
			if err != nil {
				return err
			}
			snapped := layout.SnapAspect(float64(info.Width) / float64(info.Height))
			fmt.Printf("video %dx%d %.2fs aspect=%s\n", info.Width, info.Height, info.Duration, snapped)

		case platform.IsImagePath(path):
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			cfg, format, err := image.DecodeConfig(f)
			if err != nil {
				return fmt.Errorf("failed to decode image: %w", err)
			}
			snapped := layout.SnapAspect(float64(cfg.Width) / float64(cfg.Height))
			fmt.Printf("%s %dx%d aspect=%s\n", format, cfg.Width, cfg.Height, snapped)

		default:
			return fmt.Errorf("unsupported file type: %s", path)
		}
		return nil
	},
}

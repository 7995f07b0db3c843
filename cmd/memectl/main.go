// memectl renders and inspects meme compositions from the command line,
// using the same pipeline as the desktop app.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memectl",
	Short: "Render meme compositions from the command line",
	Long: `memectl drives the MemeForge rendering pipeline without the GUI.
It can render a captioned composition to PNG and probe media files for the
dimensions and duration the editor would use.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(probeCmd)
}

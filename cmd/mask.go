package cmd

import (
	"voiceshield-media/application/strategy"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/config"

	"github.com/spf13/cobra"
)

var maskCmd = &cobra.Command{
	Use:   "mask <input> <output>",
	Short: "Suppress the voice band with a spectral filter",
	Long: `Extracts the audio track, attenuates the 0-4 kHz voice band in the
frequency domain while preserving content above 8 kHz, and re-encodes
the result back into the video.

Example:
  voiceshield mask recording.mp4 protected.mp4`,
	Args: cobra.ArbitraryArgs,
	RunE: runMask,
}

func init() {
	rootCmd.AddCommand(maskCmd)
}

func runMask(cmd *cobra.Command, args []string) error {
	return runStrategyCommand(cmd, args, "voiceshield mask <input> <output>", false,
		func(c *config.Config, intensity float64) pipeline.Strategy {
			return strategy.NewSpectralVoiceMask()
		})
}

package cmd

import (
	"voiceshield-media/application/strategy"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/config"
	"voiceshield-media/infrastructure/ffmpeg"

	"github.com/spf13/cobra"
)

var perturbCmd = &cobra.Command{
	Use:   "perturb <input> <output> [intensity]",
	Short: "Add an adversarial noise layer to the video",
	Long: `Re-encodes the video with a temporal noise overlay and a slight hue
shift, leaving the audio track untouched. The optional intensity
(default 3.0) scales the noise strength.

Example:
  voiceshield perturb recording.mp4 protected.mp4 3.5`,
	Args: cobra.ArbitraryArgs,
	RunE: runPerturb,
}

func init() {
	rootCmd.AddCommand(perturbCmd)
}

func runPerturb(cmd *cobra.Command, args []string) error {
	return runStrategyCommand(cmd, args, "voiceshield perturb <input> <output> [intensity]", true,
		func(c *config.Config, intensity float64) pipeline.Strategy {
			perturber := ffmpeg.NewPerturber(ffmpeg.WithPerturberFFmpegPath(c.Tools.FFmpegPath))
			return strategy.NewAdversarialPerturb(perturber, intensity)
		})
}

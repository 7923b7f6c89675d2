package cmd

import (
	"voiceshield-media/application/strategy"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/config"
	"voiceshield-media/infrastructure/demucs"

	"github.com/spf13/cobra"
)

var separateCmd = &cobra.Command{
	Use:   "separate <input> <output>",
	Short: "Strip vocals with an AI source-separation model",
	Long: `Runs the demucs source-separation model on the audio track and keeps
only the accompaniment stem, removing the vocals entirely. Requires
demucs to be installed and on the PATH (or configured via tools.demucs_path).

Example:
  voiceshield separate recording.mp4 protected.mp4`,
	Args: cobra.ArbitraryArgs,
	RunE: runSeparate,
}

func init() {
	rootCmd.AddCommand(separateCmd)
}

func runSeparate(cmd *cobra.Command, args []string) error {
	return runStrategyCommand(cmd, args, "voiceshield separate <input> <output>", false,
		func(c *config.Config, intensity float64) pipeline.Strategy {
			separator := demucs.NewSeparator(
				demucs.WithSeparatorPath(c.Tools.DemucsPath),
				demucs.WithSeparatorModel(c.Separation.Model),
			)
			return strategy.NewAISourceSeparation(separator)
		})
}

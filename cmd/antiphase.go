package cmd

import (
	"voiceshield-media/application/strategy"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/config"

	"github.com/spf13/cobra"
)

var antiphaseCmd = &cobra.Command{
	Use:   "antiphase <input> <output>",
	Short: "Encode phase-opposed stereo that cancels on mono downmix",
	Long: `Downmixes the audio to mono and writes it back as two phase-opposed
stereo channels. Any pipeline that sums the channels to mono, which is
what most speech recognizers do first, receives silence. Normal stereo
playback is unaffected.

Example:
  voiceshield antiphase recording.mp4 protected.mp4`,
	Args: cobra.ArbitraryArgs,
	RunE: runAntiphase,
}

func init() {
	rootCmd.AddCommand(antiphaseCmd)
}

func runAntiphase(cmd *cobra.Command, args []string) error {
	return runStrategyCommand(cmd, args, "voiceshield antiphase <input> <output>", false,
		func(c *config.Config, intensity float64) pipeline.Strategy {
			return strategy.NewAntiphaseEncode()
		})
}

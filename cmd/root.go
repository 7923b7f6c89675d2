package cmd

import (
	"fmt"
	"os"

	"voiceshield-media/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "voiceshield",
	Short: "Protect speech in videos from automated voice analysis",
	Long: `voiceshield transforms a video's audio track so automated systems
cannot transcribe the speech or identify the speaker, while keeping the
video stream untouched:

  - mask       suppress the voice band with a spectral filter
  - antiphase  encode phase-opposed stereo that cancels on mono downmix
  - separate   strip vocals with an AI source-separation model
  - perturb    add an adversarial noise layer to the video itself

Progress is reported as one JSON object per line on stdout.

Example:
  voiceshield mask recording.mp4 protected.mp4`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config file is optional for the strategy commands; publish
		// checks for it and errors appropriately
		cfg = nil
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// effectiveConfig returns the loaded configuration, or defaults when no
// config file is present
func effectiveConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return config.Default()
}

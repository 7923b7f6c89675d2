package cmd

import (
	"context"
	"fmt"
	"io"

	"voiceshield-media/domain/media"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/ffmpeg"
	"voiceshield-media/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe <input>",
	Short: "Report the audio streams of a video",
	Long: `Inspects a video with ffprobe and reports whether it carries an audio
stream and how many channels each stream has. Useful to check a file
before choosing a strategy.

Example:
  voiceshield probe recording.mp4`,
	Args: cobra.ArbitraryArgs,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: voiceshield probe <input>", pipeline.ErrUsage)
	}

	c := effectiveConfig()
	prober := ffmpeg.NewProber(ffmpeg.WithProberPath(c.Tools.FFprobePath))

	return RunProbeWithDependencies(cmd.Context(), prober, filesystem.NewChecker(), args[0], cmd.OutOrStdout())
}

// RunProbeWithDependencies runs the probe command with injected dependencies (for testing)
func RunProbeWithDependencies(
	ctx context.Context,
	prober media.Prober,
	checker media.FileChecker,
	path string,
	output io.Writer,
) error {
	if !checker.Exists(path) {
		return fmt.Errorf("%w: %s", pipeline.ErrInputNotFound, path)
	}

	streams, err := prober.AudioStreams(ctx, path)
	if err != nil {
		return err
	}

	if len(streams) == 0 {
		fmt.Fprintln(output, "no audio streams")
		return nil
	}

	fmt.Fprintf(output, "audio streams: %d\n", len(streams))
	for i, s := range streams {
		fmt.Fprintf(output, "  stream %d: %d channel(s)\n", i, s.Channels)
	}
	return nil
}

package cmd

import (
	"strconv"

	apppipeline "voiceshield-media/application/pipeline"
	"voiceshield-media/domain/pipeline"
	"voiceshield-media/infrastructure/config"
	"voiceshield-media/infrastructure/ffmpeg"
	"voiceshield-media/infrastructure/filesystem"
	"voiceshield-media/infrastructure/reporting"

	"github.com/spf13/cobra"
)

// newOrchestrator wires the production pipeline from configuration
func newOrchestrator(c *config.Config, rep pipeline.ProgressReporter) *apppipeline.Orchestrator {
	prober := ffmpeg.NewProber(ffmpeg.WithProberPath(c.Tools.FFprobePath))
	extractor := ffmpeg.NewExtractor(ffmpeg.WithExtractorFFmpegPath(c.Tools.FFmpegPath))
	remuxer := ffmpeg.NewRemuxer(
		ffmpeg.WithRemuxerFFmpegPath(c.Tools.FFmpegPath),
		ffmpeg.WithRemuxerAudioBitrate(c.Audio.Bitrate),
	)
	checker := filesystem.NewChecker()

	return apppipeline.NewOrchestrator(prober, extractor, remuxer, checker, rep)
}

// strategyBuilder constructs a strategy from configuration and the
// command-line intensity
type strategyBuilder func(c *config.Config, intensity float64) pipeline.Strategy

// runStrategyCommand validates arguments and executes one pipeline run.
// Argument errors are reported on the same JSON stream as pipeline
// failures, before any processing starts.
func runStrategyCommand(cmd *cobra.Command, args []string, usage string, acceptsIntensity bool, build strategyBuilder) error {
	rep := reporting.NewJSONReporter(cmd.OutOrStdout())
	c := effectiveConfig()

	maxArgs := 2
	if acceptsIntensity {
		maxArgs = 3
	}
	if len(args) < 2 || len(args) > maxArgs {
		rep.Fail("usage: " + usage)
		return pipeline.ErrUsage
	}

	intensity := c.Perturb.Intensity
	if len(args) == 3 {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			rep.Fail("usage: " + usage)
			return pipeline.ErrUsage
		}
		intensity = v
	}

	orchestrator := newOrchestrator(c, rep)
	return orchestrator.Run(cmd.Context(), apppipeline.Input{
		SourcePath: args[0],
		OutputPath: args[1],
		Strategy:   build(c, intensity),
	})
}

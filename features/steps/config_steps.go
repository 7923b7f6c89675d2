//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"voiceshield-media/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	configPath string
	cfg        *config.Config
	loaded     *config.Config
	loadErr    error
	tempDir    string
}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := &configContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "voiceshield-features-*")
		if err != nil {
			return c, err
		}
		*testCtx = configContext{
			tempDir:    dir,
			configPath: filepath.Join(dir, "config.yaml"),
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^a configuration with ffmpeg path "([^"]*)" and bitrate "([^"]*)"$`, testCtx.aConfigurationWith)
	ctx.Step(`^no configuration file exists$`, testCtx.noConfigurationFileExists)
	ctx.Step(`^I save the configuration and load it back$`, testCtx.iSaveAndLoadBack)
	ctx.Step(`^I attempt to load the configuration$`, testCtx.iAttemptToLoadTheConfiguration)
	ctx.Step(`^the ffmpeg path should be "([^"]*)"$`, testCtx.theFFmpegPathShouldBe)
	ctx.Step(`^the audio bitrate should be "([^"]*)"$`, testCtx.theAudioBitrateShouldBe)
	ctx.Step(`^the separation model should be "([^"]*)"$`, testCtx.theSeparationModelShouldBe)
	ctx.Step(`^I should receive an error about missing configuration$`, testCtx.iShouldReceiveAnErrorAboutMissingConfiguration)
}

func (c *configContext) aConfigurationWith(ffmpegPath, bitrate string) error {
	c.cfg = config.Default()
	c.cfg.Tools.FFmpegPath = ffmpegPath
	c.cfg.Audio.Bitrate = bitrate
	return nil
}

func (c *configContext) noConfigurationFileExists() error {
	c.configPath = filepath.Join(c.tempDir, "does-not-exist.yaml")
	return nil
}

func (c *configContext) iSaveAndLoadBack() error {
	if err := config.Save(c.cfg, c.configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	loaded, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config back: %w", err)
	}
	c.loaded = loaded
	return nil
}

func (c *configContext) iAttemptToLoadTheConfiguration() error {
	c.loaded, c.loadErr = config.Load(c.configPath)
	return nil
}

func (c *configContext) theFFmpegPathShouldBe(expected string) error {
	if c.loaded == nil {
		return fmt.Errorf("config was not loaded")
	}
	if c.loaded.Tools.FFmpegPath != expected {
		return fmt.Errorf("expected ffmpeg path %q, got %q", expected, c.loaded.Tools.FFmpegPath)
	}
	return nil
}

func (c *configContext) theAudioBitrateShouldBe(expected string) error {
	if c.loaded == nil {
		return fmt.Errorf("config was not loaded")
	}
	if c.loaded.Audio.Bitrate != expected {
		return fmt.Errorf("expected bitrate %q, got %q", expected, c.loaded.Audio.Bitrate)
	}
	return nil
}

func (c *configContext) theSeparationModelShouldBe(expected string) error {
	if c.loaded == nil {
		return fmt.Errorf("config was not loaded")
	}
	if c.loaded.Separation.Model != expected {
		return fmt.Errorf("expected separation model %q, got %q", expected, c.loaded.Separation.Model)
	}
	return nil
}

func (c *configContext) iShouldReceiveAnErrorAboutMissingConfiguration() error {
	if c.loadErr == nil {
		return fmt.Errorf("expected an error but got none")
	}
	return nil
}

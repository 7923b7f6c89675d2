package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"voiceshield-media/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through tool paths, audio settings, and the
optional Google Drive publishing setup.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(os.Stderr, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(os.Stderr, "Welcome to voiceshield setup!")
	fmt.Fprintln(os.Stderr)

	cfg := &config.Config{}

	if err := promptTools(prompter, cfg); err != nil {
		return err
	}

	if err := promptProcessing(prompter, cfg); err != nil {
		return err
	}

	if err := promptGoogle(prompter, cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", configPath)
	return nil
}

func promptTools(prompter Prompter, cfg *config.Config) error {
	ffmpegPath, err := prompter.Input("Path to ffmpeg?", "ffmpeg")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	cfg.Tools.FFmpegPath = ffmpegPath

	ffprobePath, err := prompter.Input("Path to ffprobe?", "ffprobe")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	cfg.Tools.FFprobePath = ffprobePath

	demucsPath, err := prompter.Input("Path to demucs (for the separate command)?", "demucs")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if demucsPath == "" {
		demucsPath = "demucs"
	}
	cfg.Tools.DemucsPath = demucsPath

	return nil
}

func promptProcessing(prompter Prompter, cfg *config.Config) error {
	bitrate, err := prompter.Input("Audio bitrate for the re-encoded track?", "226k")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if bitrate == "" {
		bitrate = "226k"
	}
	cfg.Audio.Bitrate = bitrate

	intensityStr, err := prompter.Input("Default perturbation intensity?", "3.0")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if intensityStr != "" {
		intensity, err := strconv.ParseFloat(intensityStr, 64)
		if err != nil {
			return fmt.Errorf("invalid intensity: %s", intensityStr)
		}
		cfg.Perturb.Intensity = intensity
	}

	model, err := prompter.Input("Separation model name?", "htdemucs")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if model == "" {
		model = "htdemucs"
	}
	cfg.Separation.Model = model

	return nil
}

func promptGoogle(prompter Prompter, cfg *config.Config) error {
	wantPublish, err := prompter.Confirm("Set up Google Drive publishing?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if !wantPublish {
		return nil
	}

	credentials, err := prompter.Input("Path to Google credentials file?", "credentials.json")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if credentials == "" {
		credentials = "credentials.json"
	}
	cfg.Google.CredentialsFile = credentials

	token, err := prompter.Input("Path to store the OAuth token?", "token.json")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if token == "" {
		token = "token.json"
	}
	cfg.Google.TokenFile = token

	folder, err := prompter.Input("Google Drive folder ID for uploads?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if folder == "" {
		return fmt.Errorf("folder ID is required")
	}
	cfg.Google.FolderID = folder

	return nil
}

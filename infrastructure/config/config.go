package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Tools      ToolsConfig      `yaml:"tools"`
	Audio      AudioConfig      `yaml:"audio"`
	Perturb    PerturbConfig    `yaml:"perturb"`
	Separation SeparationConfig `yaml:"separation"`
	Google     GoogleConfig     `yaml:"google"`
}

// ToolsConfig contains paths to the external tools
type ToolsConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	DemucsPath  string `yaml:"demucs_path"`
}

// AudioConfig contains audio encoding settings for the final output
type AudioConfig struct {
	Bitrate string `yaml:"bitrate"`
}

// PerturbConfig contains video perturbation settings
type PerturbConfig struct {
	Intensity float64 `yaml:"intensity"`
}

// SeparationConfig contains source-separation settings
type SeparationConfig struct {
	Model string `yaml:"model"`
}

// GoogleConfig contains Google API settings for publishing
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	FolderID        string `yaml:"folder_id"`
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Tools.FFmpegPath == "" {
		c.Tools.FFmpegPath = "ffmpeg"
	}
	if c.Tools.FFprobePath == "" {
		c.Tools.FFprobePath = "ffprobe"
	}
	if c.Tools.DemucsPath == "" {
		c.Tools.DemucsPath = "demucs"
	}
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = "226k"
	}
	if c.Perturb.Intensity == 0 {
		c.Perturb.Intensity = 3.0
	}
	if c.Separation.Model == "" {
		c.Separation.Model = "htdemucs"
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Missing values are filled in with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/errors"
	"github.com/lucasb-eyer/go-colorful"
)

const appName = "txtshot"

var (
	homePath       string
	configHomePath string
	stateHomePath  string
)

// Config is the rendering configuration. It is built once at startup and not changed afterwards.
type Config struct {
	// transcript to render
	Input string `yaml:"input,omitempty" json:"input,omitempty"`
	// parts are written to <outputPrefix>_<n>.png
	OutputPrefix string `yaml:"outputPrefix,omitempty" json:"outputPrefix,omitempty"`
	Background   string `yaml:"background,omitempty" json:"background,omitempty"`
	Text         string `yaml:"text,omitempty" json:"text,omitempty"`
	PromptColor  string `yaml:"promptColor,omitempty" json:"promptColor,omitempty"`
	// prepended to command lines
	Prompt string `yaml:"prompt" json:"prompt"`
	// preferred font file name or path
	Font string `yaml:"font,omitempty" json:"font,omitempty"`
	// extra directories searched for Font
	FontDirs       []string `yaml:"fontDirs,omitempty" json:"fontDirs,omitempty"`
	FontSize       float64  `yaml:"fontSize,omitempty" json:"fontSize,omitempty"`
	LineSpacing    int      `yaml:"lineSpacing" json:"lineSpacing"`
	Padding        int      `yaml:"padding" json:"padding"`
	MaxImageHeight int      `yaml:"maxImageHeight,omitempty" json:"maxImageHeight,omitempty"`
	// expand tabs to this many columns, 0 keeps tabs
	TabWidth int `yaml:"tabWidth,omitempty" json:"tabWidth,omitempty"`
	// number of pages rendered at once
	Concurrency int `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Input:          filepath.Join("output", "live_run.txt"),
		OutputPrefix:   filepath.Join("output", "screenshot"),
		Background:     "#2E3440",
		Text:           "#E5E9F0",
		PromptColor:    "#A3BE8C",
		Prompt:         "$ ",
		Font:           "DejaVuSansMono.ttf",
		FontSize:       15,
		LineSpacing:    5,
		Padding:        20,
		MaxImageHeight: 800,
		Concurrency:    1,
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/txtshot/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/txtshot/config.yml
// Values missing from the file keep their defaults. If no config file is found, it returns Default().
func Load(profile string) (_ *Config, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			p := basePath + ext
			if _, err := os.Stat(p); err == nil {
				return LoadFile(p)
			}
		}
	}
	return Default(), nil
}

// LoadFile loads the configuration from path on top of the defaults.
func LoadFile(path string) (_ *Config, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if c.FontSize <= 0 {
		return fmt.Errorf("invalid fontSize: %v", c.FontSize)
	}
	if c.LineSpacing < 0 {
		return fmt.Errorf("invalid lineSpacing: %d", c.LineSpacing)
	}
	if c.Padding < 0 {
		return fmt.Errorf("invalid padding: %d", c.Padding)
	}
	if c.MaxImageHeight <= 0 {
		return fmt.Errorf("invalid maxImageHeight: %d", c.MaxImageHeight)
	}
	if c.TabWidth < 0 {
		return fmt.Errorf("invalid tabWidth: %d", c.TabWidth)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("invalid concurrency: %d", c.Concurrency)
	}
	if c.OutputPrefix == "" {
		return fmt.Errorf("outputPrefix is required")
	}
	if _, _, _, err := c.Colors(); err != nil {
		return err
	}
	return nil
}

// Colors returns the background, text and prompt colors.
func (c *Config) Colors() (bg, text, prompt color.Color, err error) {
	if bg, err = ParseColor(c.Background); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid background: %w", err)
	}
	if text, err = ParseColor(c.Text); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid text: %w", err)
	}
	if prompt, err = ParseColor(c.PromptColor); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid promptColor: %w", err)
	}
	return bg, text, prompt, nil
}

// ParseColor parses a "#rrggbb" or "#rgb" color. The leading '#' may be omitted.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, appName)
	} else {
		configHomePath = filepath.Join(homePath, ".config", appName)
	}
	return configHomePath
}

// StateHomePath returns the path to the state home directory.
func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, appName)
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", appName)
	}
	return stateHomePath
}

package trellis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the settings an application loads at startup.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Physics PhysicsConfig `yaml:"physics" toml:"physics"`
	Input   InputConfig   `yaml:"input" toml:"input"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Profile ProfileConfig `yaml:"profile" toml:"profile"`
}

// WindowConfig describes the presentation surface.
type WindowConfig struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	TargetFPS int    `yaml:"target_fps" toml:"target_fps"`
}

// PhysicsConfig configures every scene's physics world.
type PhysicsConfig struct {
	Gravity            Vec2 `yaml:"gravity" toml:"gravity"`
	Substeps           int  `yaml:"substeps" toml:"substeps"`
	VelocityIterations int  `yaml:"velocity_iterations" toml:"velocity_iterations"`
	PositionIterations int  `yaml:"position_iterations" toml:"position_iterations"`
}

// InputConfig maps action names to backend key names.
type InputConfig struct {
	Bindings map[string]string `yaml:"bindings" toml:"bindings"`
}

// LoggingConfig selects the log level ("debug", "info", ...) and format
// ("console" or "json").
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// ProfileConfig enables the frame profiler.
type ProfileConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Window  int    `yaml:"window" toml:"window"`
	CSVPath string `yaml:"csv_path" toml:"csv_path"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "trellis",
			Width:     800,
			Height:    450,
			TargetFPS: 60,
		},
		Physics: PhysicsConfig{
			Gravity:            DefaultGravity,
			Substeps:           DefaultSubsteps,
			VelocityIterations: 8,
			PositionIterations: 3,
		},
		Input: InputConfig{
			Bindings: map[string]string{
				"left":  "ArrowLeft",
				"right": "ArrowRight",
				"up":    "ArrowUp",
				"down":  "ArrowDown",
			},
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Profile: ProfileConfig{Window: 600},
	}
}

// LoadConfig reads path over DefaultConfig. The format follows the file
// extension: .yaml, .yml or .toml. Keys missing from the file keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ParseConfig(data, ext)
}

// ParseConfig decodes data in the given format ("yaml", "yml" or "toml")
// over DefaultConfig.
func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("parse config: unsupported format %q", format)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS <= 0 {
		return fmt.Errorf("config: target_fps %d must be positive", c.Window.TargetFPS)
	}
	if c.Physics.Substeps <= 0 {
		return fmt.Errorf("config: substeps %d must be positive", c.Physics.Substeps)
	}
	return nil
}

// SceneOptions returns the scene options the physics section describes.
func (c *Config) SceneOptions() []SceneOption {
	return []SceneOption{
		WithGravity(c.Physics.Gravity),
		WithSubsteps(c.Physics.Substeps),
	}
}

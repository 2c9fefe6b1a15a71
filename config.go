package ace

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grindlemire/go-ace/internal/debug"
)

// Config holds the tunables of a Pipeline.
type Config struct {
	Resync    ResyncConfig    `yaml:"resync"`
	Animation AnimationConfig `yaml:"animation"`
	FrameRate int             `yaml:"frame_rate"`
	Log       LogConfig       `yaml:"log"`
}

// ResyncConfig sets how far a transition target may drift before the leaving
// node is retargeted, in logical pixels.
type ResyncConfig struct {
	PositionThreshold float64 `yaml:"position_threshold"`
	SizeThreshold     float64 `yaml:"size_threshold"`
}

// AnimationConfig is the animation used when no implicit scope supplies one.
type AnimationConfig struct {
	Duration time.Duration `yaml:"duration"`
	Curve    string        `yaml:"curve"`
}

// LogConfig configures internal/debug.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Resync: ResyncConfig{
			PositionThreshold: 1.0,
			SizeThreshold:     1.0,
		},
		Animation: AnimationConfig{
			Duration: 300 * time.Millisecond,
			Curve:    CurveEaseInOut.String(),
		},
		FrameRate: 60,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	if c.Resync.PositionThreshold < 0 {
		return fmt.Errorf("resync.position_threshold must not be negative")
	}
	if c.Resync.SizeThreshold < 0 {
		return fmt.Errorf("resync.size_threshold must not be negative")
	}
	if c.Animation.Duration < 0 {
		return fmt.Errorf("animation.duration must not be negative")
	}
	if _, err := ParseCurve(c.Animation.Curve); err != nil {
		return fmt.Errorf("animation.curve: %w", err)
	}
	if c.FrameRate < 1 || c.FrameRate > 240 {
		return fmt.Errorf("frame_rate must be between 1 and 240")
	}
	if c.Log.Level != "" {
		if _, err := debug.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}

// DefaultAnimationOption returns the animation described by the config.
func (c Config) DefaultAnimationOption() AnimationOption {
	curve, err := ParseCurve(c.Animation.Curve)
	if err != nil {
		curve = CurveEaseInOut
	}
	return AnimationOption{Duration: c.Animation.Duration, Curve: curve}
}

// ApplyLogging points internal/debug at the configured level and file.
func (c Config) ApplyLogging() error {
	if c.Log.File != "" {
		if err := debug.Init(c.Log.File); err != nil {
			return err
		}
	}
	if c.Log.Level != "" {
		level, err := debug.ParseLevel(c.Log.Level)
		if err != nil {
			return err
		}
		debug.SetLevel(level)
	}
	return nil
}

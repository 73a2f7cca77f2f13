// Package config loads chime's TOML configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Playback defaults applied when the config file is absent or silent.
const (
	DefaultVolume     = 0.8
	DefaultVolumeStep = 0.05
	DefaultSeekStep   = 5 // seconds
	DefaultPort       = 8080
	DefaultTheme      = "default"
	DefaultVisualizer = "bars"
	DefaultIconStyle  = "unicode"
)

type Config struct {
	Volume          float64 `koanf:"volume"`            // initial volume, 0.0-1.0
	VolumeStep      float64 `koanf:"volume_step"`       // per-keypress volume change
	SeekStepSeconds int     `koanf:"seek_step_seconds"` // per-keypress seek distance
	Theme           string  `koanf:"theme"`             // default, dracula, nord, gruvbox, neon
	Visualizer      string  `koanf:"visualizer"`        // bars, waveform, off
	IconStyle       string  `koanf:"icon_style"`        // nerd, unicode, none
	Port            int     `koanf:"port"`              // remote control port
	DisableRemote   bool    `koanf:"disable_remote"`    // skip starting the remote server
	MusicFolder     string  `koanf:"music_folder"`      // fallback path when none given on the CLI
}

// Load reads the config files in priority order (last wins) and applies
// defaults and range clamping. A missing file is not an error.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Volume:          DefaultVolume,
		VolumeStep:      DefaultVolumeStep,
		SeekStepSeconds: DefaultSeekStep,
		Theme:           DefaultTheme,
		Visualizer:      DefaultVisualizer,
		IconStyle:       DefaultIconStyle,
		Port:            DefaultPort,
	}
}

// normalize clamps out-of-range values back to defaults. Bad values in a
// hand-edited file should never prevent startup.
func (c *Config) normalize() {
	if c.Volume < 0 || c.Volume > 1 {
		c.Volume = DefaultVolume
	}
	if c.VolumeStep <= 0 || c.VolumeStep > 0.5 {
		c.VolumeStep = DefaultVolumeStep
	}
	if c.SeekStepSeconds <= 0 || c.SeekStepSeconds > 60 {
		c.SeekStepSeconds = DefaultSeekStep
	}
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = DefaultPort
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	switch v := strings.ToLower(strings.TrimSpace(c.Visualizer)); v {
	case "bars", "waveform", "off":
		c.Visualizer = v
	default:
		c.Visualizer = DefaultVisualizer
	}
	switch v := strings.ToLower(strings.TrimSpace(c.IconStyle)); v {
	case "nerd", "unicode", "none":
		c.IconStyle = v
	default:
		c.IconStyle = DefaultIconStyle
	}
	if c.MusicFolder != "" {
		c.MusicFolder = expandPath(c.MusicFolder)
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/chime/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "chime", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

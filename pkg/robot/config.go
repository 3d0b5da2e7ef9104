package robot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gwillem/ftcpreview/pkg/motion"
)

const DefaultConfigFile = "ftcpreview.json"

// Defaults applied to zero config values.
const (
	DefaultSettleMs = 100
	DefaultFPS      = 60
)

// Config holds everything a preview panel needs: the caption, the
// initialized hardware, and the movement sequence to play.
type Config struct {
	Caption  string          `json:"caption,omitempty"`
	Hardware Hardware        `json:"hardware"`
	Sequence motion.Playlist `json:"sequence"`
	Units    motion.Units    `json:"units"`
	SettleMs int             `json:"settle_ms,omitempty"`
	FPS      int             `json:"fps,omitempty"`
}

// WithDefaults returns a copy with zero values filled in.
func (c Config) WithDefaults() Config {
	if c.Units == (motion.Units{}) {
		c.Units = motion.DefaultUnits()
	}
	if c.SettleMs == 0 {
		c.SettleMs = DefaultSettleMs
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	return c
}

// SettleDelay returns the pause between commands.
func (c Config) SettleDelay() time.Duration {
	if c.SettleMs < 0 {
		return -1 // no settle delay
	}
	return time.Duration(c.SettleMs) * time.Millisecond
}

// FrameInterval returns the time between animation frames.
func (c Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Validate checks the hardware list and the movement sequence.
func (c Config) Validate() error {
	if err := c.Hardware.Validate(); err != nil {
		return err
	}
	if err := c.Sequence.Validate(); err != nil {
		return fmt.Errorf("sequence: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the config file at path exists
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

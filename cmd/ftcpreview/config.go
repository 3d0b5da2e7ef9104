package main

import (
	"fmt"

	"github.com/gwillem/ftcpreview/pkg/robot"
)

// ConfigOptions selects where a command gets its preview data.
type ConfigOptions struct {
	Config string `long:"config" short:"c" default:"ftcpreview.json" description:"Preview config file"`
	Preset string `long:"preset" short:"p" description:"Use a built-in preset instead of the config file"`
}

// load returns the preset if one was named, else the config file, with
// defaults applied and validated.
func (o ConfigOptions) load() (robot.Config, error) {
	var cfg robot.Config
	if o.Preset != "" {
		preset, ok := robot.Preset(o.Preset)
		if !ok {
			return cfg, fmt.Errorf("unknown preset %q (available: %v)", o.Preset, robot.PresetNames())
		}
		cfg = preset
	} else {
		loaded, err := robot.LoadConfigFrom(o.Config)
		if err != nil {
			return cfg, fmt.Errorf("%w (run 'ftcpreview init' or pass --preset)", err)
		}
		cfg = *loaded
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

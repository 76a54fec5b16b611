package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// config holds the CLI defaults. Values come from built-in defaults, then
// an optional TOML config file, then command-line flags, each layer
// overriding the previous one.
type config struct {
	Resolution int    `toml:"resolution"`
	Mode       string `toml:"mode"`
	Colormap   string `toml:"colormap"`
	Strategy   string `toml:"strategy"`
	Seed       int64  `toml:"seed"`
	Workers    int    `toml:"workers"`
}

func defaultConfig() config {
	return config{
		Resolution: 50,
		Mode:       "solid",
		Colormap:   "Viridis",
		Strategy:   "z",
		Seed:       42,
		Workers:    0, // GOMAXPROCS
	}
}

// loadConfig overlays the TOML file at path onto cfg. Unknown keys are an
// error so typos do not silently fall back to defaults.
func loadConfig(path string, cfg *config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undec[0].String())
	}
	return nil
}

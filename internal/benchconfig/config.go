// Package benchconfig loads the optional configuration file for the
// cssl-bench driver, following the ToTOML/FromTOML struct-pair idiom
// drand's key package uses for its on-disk types.
package benchconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the benchmark driver's tunable parameters. It is never
// consumed by the cssl package itself — the core only ever takes
// maxLevel/skip as plain constructor arguments (spec.md §4.1).
type Config struct {
	MaxLevel     uint32
	Skip         uint32
	Repeat       int
	RangeSamples int
}

// ConfigTOML is the on-disk representation of Config.
type ConfigTOML struct {
	MaxLevel     uint32 `toml:"max_level"`
	Skip         uint32 `toml:"skip"`
	Repeat       int    `toml:"repeat"`
	RangeSamples int    `toml:"range_samples"`
}

// Default returns the driver's built-in configuration, matching the
// parameters original_source/src/bin/cssl.rs and playground.rs hard-code.
func Default() Config {
	return Config{MaxLevel: 9, Skip: 5, Repeat: 0, RangeSamples: 1000000}
}

// ToTOML converts a Config to its on-disk form.
func (c Config) ToTOML() ConfigTOML {
	return ConfigTOML{MaxLevel: c.MaxLevel, Skip: c.Skip, Repeat: c.Repeat, RangeSamples: c.RangeSamples}
}

// FromTOML converts an on-disk form back to a Config.
func (t ConfigTOML) FromTOML() Config {
	return Config{MaxLevel: t.MaxLevel, Skip: t.Skip, Repeat: t.Repeat, RangeSamples: t.RangeSamples}
}

// Load reads a Config from a TOML file at path. A missing Repeat or
// zero MaxLevel/Skip is left for the caller to clamp, matching the
// core's own permissive clamping policy (spec.md §7).
func Load(path string) (Config, error) {
	var t ConfigTOML
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Config{}, fmt.Errorf("loading benchmark config %q: %w", path, err)
	}
	return t.FromTOML(), nil
}

// Save writes cfg to path as TOML, creating or truncating the file.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating benchmark config %q: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg.ToTOML()); err != nil {
		return fmt.Errorf("encoding benchmark config %q: %w", path, err)
	}
	return nil
}

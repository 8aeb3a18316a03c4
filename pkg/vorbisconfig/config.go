// Package vorbisconfig loads decoder tuning knobs, the way the teacher
// loads its application settings (internal/configs.NewConfigFromTomlFile):
// koanf layers a struct of defaults, an optional TOML file, and environment
// overrides, unmarshalling the result into a single Config value.
package vorbisconfig

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config carries decoder construction knobs (spec.md §6 ADDED section).
type Config struct {
	// StrictHeaders is passed through to the decoder's options; the
	// decoder does not read it, and header validation is the same either
	// way.
	StrictHeaders bool `koanf:"strict_headers"`
	// StatsEnabled turns on the counters behind Stats/Snapshot.
	StatsEnabled bool `koanf:"stats_enabled"`
	// MaxCodebookEntries is a sanity ceiling on the number of codebooks a
	// single setup header declares (the format allows at most 256),
	// guarding against pathological or adversarial headers.
	MaxCodebookEntries uint32 `koanf:"max_codebook_entries"`
}

// NewDefault returns the conservative defaults every loader starts from.
func NewDefault() Config {
	return Config{
		StrictHeaders:      false,
		StatsEnabled:       true,
		MaxCodebookEntries: 1024,
	}
}

const envPrefix = "GOVORBIS_"

// Load builds a Config from defaults, an optional TOML file at path (a
// missing file is not an error, matching the teacher's loader), and
// GOVORBIS_-prefixed environment variable overrides.
func Load(tomlPath string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(NewDefault(), "koanf"), nil); err != nil {
		return Config{}, errors.Wrap(err, "vorbisconfig: loading defaults")
	}

	if tomlPath != "" {
		if err := k.Load(file.Provider(tomlPath), toml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return Config{}, errors.Wrapf(err, "vorbisconfig: loading %s", tomlPath)
			}
		}
	}

	envKey := func(s string) string { return strings.ToLower(strings.TrimPrefix(s, envPrefix)) }
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, errors.Wrap(err, "vorbisconfig: loading environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "vorbisconfig: unmarshalling config")
	}
	return cfg, nil
}

// Package config provides configuration loading for the swaggen CLI.
package config

import (
	configloader "github.com/GabrielNunesIT/go-libs/config-loader"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "SWAGGEN_"

// Config holds the generation settings. Command-line flags override the
// loaded values.
type Config struct {
	Manifest         string   `koanf:"manifest"`
	Output           string   `koanf:"output"`
	Format           string   `koanf:"format"`
	RootURL          string   `koanf:"rooturl"`
	Version          string   `koanf:"version"`
	Title            string   `koanf:"title"`
	IgnoreObsolete   bool     `koanf:"ignoreobsolete"`
	ResolveConflicts bool     `koanf:"resolveconflicts"`
	OpenAPI3         bool     `koanf:"openapi3"`
	Schemes          []string `koanf:"schemes"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Output:  "-",
		Format:  "json",
		RootURL: "http://localhost",
		Version: "v1",
	}
}

// Load returns the configuration built from the defaults, the optional YAML
// file at path and SWAGGEN_ environment variables.
func Load(path string) (*Config, error) {
	load := configloader.NewConfigLoader(
		configloader.WithDefaults(Defaults()),
		configloader.WithEnv[Config](EnvPrefix),
	).Load
	if path != "" {
		load = configloader.NewConfigLoader(
			configloader.WithDefaults(Defaults()),
			configloader.WithFile[Config](path),
			configloader.WithEnv[Config](EnvPrefix),
		).Load
	}

	cfg, err := load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

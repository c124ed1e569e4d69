package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netplot/pkg/pipeline"
)

// Config holds settings read from the optional config file. Every field
// is a default; command-line flags always win.
type Config struct {
	Layout    string `toml:"layout"`
	Format    string `toml:"format"`
	OutputDir string `toml:"output_dir"`

	// Seed for the seeded layouts. Zero means unset, same as on the
	// command line, and falls through to the built-in default.
	Seed int64 `toml:"seed"`

	Jobs int `toml:"jobs"`

	// RedisURL switches the artifact cache from the local file cache to
	// a shared Redis instance.
	RedisURL string `toml:"redis_url"`

	// MongoURL enables run persistence.
	MongoURL string `toml:"mongo_url"`
}

// configFile is the config file name looked up in the working directory
// and in the XDG config directory.
const configFile = "netplot.toml"

// LoadConfig reads the config file. A missing file yields a zero Config
// and no error; a malformed file is an error.
func LoadConfig() (Config, error) {
	var cfg Config
	path, ok := findConfig()
	if !ok {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// findConfig looks for the config file in the working directory first,
// then under the XDG config directory (~/.config/netplot/).
func findConfig() (string, bool) {
	if _, err := os.Stat(configFile); err == nil {
		return configFile, true
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	path := filepath.Join(base, appName, configFile)
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	return "", false
}

// apply fills unset pipeline options from the config file.
func (c Config) apply(opts *pipeline.Options) {
	if opts.Layout == "" {
		opts.Layout = c.Layout
	}
	if opts.Format == "" {
		opts.Format = c.Format
	}
	if opts.OutputDir == "" {
		opts.OutputDir = c.OutputDir
	}
	if opts.Seed == 0 {
		opts.Seed = c.Seed
	}
	if opts.Jobs == 0 {
		opts.Jobs = c.Jobs
	}
}

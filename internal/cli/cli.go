// Package cli implements the netplot command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netplot/pkg/buildinfo"
	"github.com/matzehuels/netplot/pkg/cache"
	"github.com/matzehuels/netplot/pkg/pipeline"
	"github.com/matzehuels/netplot/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "netplot"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the config
// file (if any) loaded.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	cfg, err := LoadConfig()
	if err != nil {
		c.Logger.Warn("ignoring invalid config file", "err", err)
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "netplot",
		Short:        "Netplot analyzes and draws weighted undirected networks",
		Long:         `Netplot computes degree, eigenvector, and betweenness centrality for any undirected weighted edgelist and renders the network under a chosen layout, producing a result table and an image per input.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. The cache backend is
// Redis when configured, a local file cache otherwise; --no-cache
// disables caching entirely.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	st, err := c.newStore(ctx)
	if err != nil {
		_ = cch.Close()
		return nil, err
	}
	return pipeline.NewRunner(cch, nil, st, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.RedisURL != "" {
		return cache.NewRedisCache(ctx, c.Config.RedisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.MongoURL == "" {
		return store.NewNullStore(), nil
	}
	return store.NewMongoStore(ctx, c.Config.MongoURL)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/netplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

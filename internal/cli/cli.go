// Package cli implements the cygo command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cygraph/cygo/pkg/buildinfo"
	"github.com/cygraph/cygo/pkg/config"
	"github.com/cygraph/cygo/pkg/cyrest"
	"github.com/cygraph/cygo/pkg/httputil"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "cygo"

	// catalogTTL bounds how long cached catalog responses (layout names,
	// style names) are trusted before re-fetching.
	catalogTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	baseURL    string
	port       int
	timeoutSec int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cygo",
		Short:        "Cygo drives a running Cytoscape instance over its REST API",
		Long:         `Cygo talks to the REST automation port of a local Cytoscape desktop instance: create and lay out networks, apply visual styles, read and write attribute tables, and manage sessions, all from the command line.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/cygo/config.toml)")
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "CyREST base URL (default http://localhost)")
	root.PersistentFlags().IntVar(&c.port, "port", 0, "CyREST port (default 1234)")
	root.PersistentFlags().IntVar(&c.timeoutSec, "timeout", 0, "request timeout in seconds")

	// Register all subcommands
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.networksCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.styleCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newCore builds the bridge client from config file, environment, and the
// persisted session defaults.
func (c *CLI) newCore(noCache bool) (*cyrest.Client, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}

	// Explicit flags win over file and environment.
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	if c.port > 0 {
		cfg.Port = c.port
	}
	if c.timeoutSec > 0 {
		cfg.TimeoutSeconds = c.timeoutSec
	}

	opts := []cyrest.Option{cyrest.WithLogger(c.Logger)}

	if stateFile, err := cyrest.NewStateFile(""); err == nil {
		opts = append(opts, cyrest.WithStateFile(stateFile))
	}

	if !noCache {
		dir, err := cacheDir()
		if err == nil {
			if cache, err := httputil.NewCache(dir, catalogTTL); err == nil {
				opts = append(opts, cyrest.WithCache(cache))
			}
		}
	}

	return cyrest.New(cfg, opts...), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cygo/).
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

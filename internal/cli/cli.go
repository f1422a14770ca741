// Package cli implements the photogrid command-line interface.
//
// Commands share one [CLI] value holding the logger and the loaded
// configuration. Settings resolve as flags over PHOTOGRID_* environment
// variables (and .env) over the TOML config file over built-in defaults.
//
// # Commands
//
//   - browse: interactive infinitely scrolling grid in the terminal
//   - fetch: fetch pages from the listing service and write them as JSON
//   - layout: lay out a JSON photo list and print or write the rows
//   - serve: HTTP layout service
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/photogrid/internal/config"
	"github.com/matzehuels/photogrid/pkg/buildinfo"
	"github.com/matzehuels/photogrid/pkg/httputil"
	"github.com/matzehuels/photogrid/pkg/integrations/picsum"
	"github.com/matzehuels/photogrid/pkg/pagination"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "photogrid"

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
	Config config.Config

	configPath string
	envFile    string
	environ    []string // nil reads the process environment
}

// New creates a new CLI instance with a default logger and default settings.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Photogrid lays out photo feeds as justified, infinitely scrolling grids",
		Long: `Photogrid fetches photos page by page from a listing service and packs them
into justified rows: every full row is scaled to exactly fill the container
width, and the next page loads as soon as the end of the grid scrolls into view.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/photogrid/config.toml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "env file with PHOTOGRID_* settings (default: ./.env if present)")

	root.AddCommand(c.browseCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(config.Options{Path: c.configPath, EnvFile: c.envFile, Environ: c.environ})
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("configuration loaded", "base_url", cfg.BaseURL, "page_size", cfg.PageSize, "gap", cfg.Gap, "row_height", cfg.RowHeight)
	return nil
}

// =============================================================================
// Shared Flags
// =============================================================================

// gridFlags are the layout and paging flags shared by several commands.
// They only override the loaded configuration when set explicitly.
type gridFlags struct {
	baseURL   string
	pageSize  int
	gap       int
	rowHeight int
	margin    int
}

func (f *gridFlags) register(fs *pflag.FlagSet, paging bool) {
	d := config.Default()
	fs.IntVar(&f.gap, "gap", d.Gap, "space between photos (px)")
	fs.IntVar(&f.rowHeight, "row-height", d.RowHeight, "target row height (px)")
	if paging {
		fs.StringVar(&f.baseURL, "base-url", d.BaseURL, "listing service root")
		fs.IntVar(&f.pageSize, "page-size", d.PageSize, "photos per page")
		fs.IntVar(&f.margin, "margin", d.Margin, "start loading this far before the end scrolls into view (px)")
	}
}

// resolve returns the loaded configuration with explicitly set flags applied.
func (f *gridFlags) resolve(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	fs := cmd.Flags()
	if fs.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if fs.Changed("page-size") {
		cfg.PageSize = f.pageSize
	}
	if fs.Changed("gap") {
		cfg.Gap = f.gap
	}
	if fs.Changed("row-height") {
		cfg.RowHeight = f.rowHeight
	}
	if fs.Changed("margin") {
		cfg.Margin = f.margin
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// =============================================================================
// Fetcher Factory
// =============================================================================

// newFetcher creates a listing client for cfg.
func (c *CLI) newFetcher(cfg config.Config, logger *log.Logger) pagination.Fetcher {
	return picsum.NewClient(picsum.Options{
		BaseURL: cfg.BaseURL,
		Retry:   httputil.Policy{Attempts: cfg.Retries, Delay: httputil.DefaultDelay},
		Logger:  logger,
	})
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/internal/config"
)

// browseCommand creates the interactive grid browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		flags     gridFlags
		pxPerCell int
		linePx    int
		logFile   string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse an infinitely scrolling photo grid in the terminal",
		Long: `Browse an infinitely scrolling photo grid in the terminal.

Photos are laid out in justified rows at the terminal width, where one column
is --px-per-cell logical pixels and one line is --line-px. The next page loads
when the end of the grid comes within --margin pixels of the screen.

Keys: j/k or arrows scroll, pgup/pgdn page, g/G jump to top/bottom,
r load the next page now, q quit.

The screen is taken over while browsing; use --log-file to keep logs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, c.Config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("px-per-cell") {
				cfg.PxPerCell = pxPerCell
			}
			if cmd.Flags().Changed("line-px") {
				cfg.LinePx = linePx
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runBrowse(cmd.Context(), cfg, logFile)
		},
	}

	d := config.Default()
	cmd.Flags().IntVar(&pxPerCell, "px-per-cell", d.PxPerCell, "logical pixels per terminal column")
	cmd.Flags().IntVar(&linePx, "line-px", d.LinePx, "logical pixels per terminal line")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	flags.register(cmd.Flags(), true)

	return cmd
}

// runBrowse runs the TUI until the user quits or ctx is cancelled.
func (c *CLI) runBrowse(ctx context.Context, cfg config.Config, logFile string) error {
	logger := newLogger(io.Discard, c.Logger.GetLevel())
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", logFile, err)
		}
		defer f.Close()
		logger = newLogger(f, c.Logger.GetLevel())
	}
	if c.Logger.GetLevel() <= LogDebug {
		// Keep hook output off the screen while the TUI owns it.
		RegisterLoggingHooks(logger)
	}

	m := newBrowseModel(ctx, c.newFetcher(cfg, logger), cfg, logger)
	defer m.gallery.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run browser: %w", err)
	}

	f := m.gallery.Frame()
	logger.Info("browse finished", "gallery", m.gallery.ID(), "photos", f.Photos, "page", f.Page)
	printSuccess("Browsed %d photos", f.Photos)
	printStats(f.Photos, len(f.Rows), f.HasMore)
	if err := m.gallery.Controller().Err(); err != nil {
		printWarning("last page failed: %s", err)
	}
	return nil
}

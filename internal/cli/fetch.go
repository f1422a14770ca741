package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/internal/config"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/pagination"
)

const maxFetchPages = 50

// fetchCommand creates the fetch command for downloading photo pages.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output string
		pages  int
		flags  gridFlags
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch photo pages from the listing service",
		Long: `Fetch photo pages from the listing service and write them as a JSON array.

Pages are requested one at a time starting at page 1 until --pages pages were
merged or the service returns an empty page. Photos repeated across pages are
kept once, at their first position. The output can be fed to 'layout'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, c.Config)
			if err != nil {
				return err
			}
			if pages < 1 || pages > maxFetchPages {
				return errors.New(errors.ErrCodeInvalidInput, "pages must be between 1 and %d, got %d", maxFetchPages, pages)
			}
			return c.runFetch(cmd.Context(), cfg, pages, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "photos.json", "output file (- for stdout)")
	cmd.Flags().IntVarP(&pages, "pages", "n", 1, "number of pages to fetch")
	flags.register(cmd.Flags(), true)

	return cmd
}

// runFetch pulls pages through a pagination controller and writes the merged set.
func (c *CLI) runFetch(ctx context.Context, cfg config.Config, pages int, output string) error {
	ctrl := pagination.New(c.newFetcher(cfg, c.Logger),
		pagination.WithPageSize(cfg.PageSize),
		pagination.WithLogger(c.Logger),
	)
	defer ctrl.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Fetching from %s...", cfg.BaseURL))
	if output != "-" {
		spinner.Start()
	}

	loaded, err := loadPages(ctx, ctrl, pages, func(next int) {
		spinner.SetMessage(fmt.Sprintf("Fetching page %d of %d...", next, pages))
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	photos := ctrl.Photos()
	if output == "-" {
		return writeJSON(os.Stdout, photos)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output %s: %w", output, err)
	}
	defer f.Close()
	if err := writeJSON(f, photos); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	prog.done(fmt.Sprintf("Fetched %d pages", loaded))
	printFile(output)
	printStats(len(photos), 0, ctrl.HasMore())
	printNewline()
	printNextStep("Lay out", "photogrid layout "+output)
	return nil
}

// loadPages drives ctrl until n pages were merged or the source ran dry.
// before, if non-nil, is called with the 1-based count of the page about to
// be requested. It returns the number of pages merged.
func loadPages(ctx context.Context, ctrl *pagination.Controller, n int, before func(next int)) (int, error) {
	loaded := 0
	for loaded < n && ctrl.HasMore() {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}
		if before != nil {
			before(loaded + 1)
		}
		res, err := ctrl.LoadMore(ctx)
		if err != nil {
			return loaded, err
		}
		switch res.Status {
		case pagination.Loaded:
			loaded++
		case pagination.Skipped, pagination.Discarded:
			return loaded, nil
		}
	}
	return loaded, nil
}

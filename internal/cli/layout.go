package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/internal/config"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/layout"
	"github.com/matzehuels/photogrid/pkg/photo"
)

const defaultLayoutWidth = 1200

// layoutCommand creates the layout command for justifying a photo list.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		width  int
		flags  gridFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [photos.json]",
		Short: "Pack a photo list into justified rows",
		Long: `Pack a photo list into justified rows.

The input is a JSON array of photos (as written by 'fetch') or a document
{"photos": [...], "container_width": N}. Use "-" to read standard input.
Every full row is scaled so it exactly fills the container width; the last
row keeps the target height.

Without --output a summary table is printed; with --output the rows are
written as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, c.Config)
			if err != nil {
				return err
			}
			opts := cfg.Layout(width)
			return c.runLayout(args[0], opts, cmd.Flags().Changed("width"), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write rows as JSON to this file (- for stdout)")
	cmd.Flags().IntVarP(&width, "width", "w", defaultLayoutWidth, "container width (px)")
	flags.register(cmd.Flags(), false)

	return cmd
}

// runLayout reads photos, computes rows, and prints or writes them.
func (c *CLI) runLayout(input string, opts layout.Options, widthSet bool, output string) error {
	req, err := readPhotos(input)
	if err != nil {
		return err
	}
	if err := validatePhotos(req.Photos); err != nil {
		return err
	}
	if req.ContainerWidth > 0 && !widthSet {
		opts.ContainerWidth = req.ContainerWidth
	}
	if err := config.ValidateLayout(opts); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	frame := gallery.Static(req.Photos, opts)
	rows := frame.Rows
	c.Logger.Debug("computed layout", "photos", frame.Photos, "rows", len(rows), "width", frame.Width, "height", frame.Height)

	switch output {
	case "":
		printRowTable(os.Stdout, rows, opts)
		printStats(frame.Photos, len(rows), false)
		return nil
	case "-":
		return writeJSON(os.Stdout, newLayoutResponse(frame, opts.Gap))
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output %s: %w", output, err)
	}
	defer f.Close()
	if err := writeJSON(f, newLayoutResponse(frame, opts.Gap)); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	prog.done("Layout complete")
	printFile(output)
	printStats(frame.Photos, len(rows), false)
	return nil
}

func readPhotos(input string) (layoutRequest, error) {
	if input == "-" {
		return decodePhotos(os.Stdin)
	}
	f, err := os.Open(input)
	if err != nil {
		return layoutRequest{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", input)
	}
	defer f.Close()
	return decodePhotos(f)
}

// printRowTable renders one table line per row.
func printRowTable(w io.Writer, rows []photo.Row, opts layout.Options) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	gap := max(opts.Gap, 0)

	data := make([][]string, len(rows))
	for i, r := range rows {
		ids := make([]string, len(r.Photos))
		for j, p := range r.Photos {
			ids[j] = fmt.Sprintf("%s (%dx%d)", p.ID, p.DisplayWidth, p.DisplayHeight)
		}
		kind := "justified"
		if i == len(rows)-1 {
			kind = "tail"
		}
		data[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Height),
			strconv.Itoa(r.Width(gap)),
			kind,
			strings.Join(ids, ", "),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Row", "Height", "Width", "Kind", "Photos").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == len(rows)-1 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})

	s := layout.Summarize(rows, opts)
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  container %dpx · max deviation %dpx · %d in tail row",
		opts.ContainerWidth, s.MaxDeviation, s.TailPhotos)))
}

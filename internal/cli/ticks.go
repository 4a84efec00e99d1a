package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

// ticksCommand creates the ticks command for computing axis ticks.
func (c *CLI) ticksCommand() *cobra.Command {
	var (
		view     string
		maxTicks int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "ticks [figure.toml]",
		Short: "Compute axis ticks for a view",
		Long: `Compute axis ticks for a view.

Continuous views place at most --max ticks at round values of the domain.
Ordinal views place one tick per category at the centre of its band.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTicks(cmd.Context(), cmd.OutOrStdout(), args[0], view, maxTicks, asJSON)
		},
	}

	cmd.Flags().StringVar(&view, "view", "", "view to compute ticks for")
	cmd.Flags().IntVar(&maxTicks, "max", defaultMaxTicks, "maximum number of ticks")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON to stdout")
	_ = cmd.MarkFlagRequired("view")

	return cmd
}

// runTicks loads the figure and prints the view's ticks.
func (c *CLI) runTicks(ctx context.Context, w io.Writer, input, name string, maxTicks int, asJSON bool) error {
	f, err := c.loadFigure(ctx, input)
	if err != nil {
		return err
	}
	defer f.Close()

	v, err := f.View(name)
	if err != nil {
		return err
	}
	r := newViewReport(name, v, maxTicks)
	if asJSON {
		return writeJSON(w, r.Ticks)
	}

	fmt.Println(StyleTitle.Render(name) + " " + StyleDim.Render(r.Scale))
	if len(r.Ticks) == 0 {
		printWarning("no ticks: empty domain")
		return nil
	}
	for _, t := range r.Ticks {
		printKeyValue(strconv.FormatFloat(t.Pixel, 'f', 1, 64), t.Label)
	}
	return nil
}

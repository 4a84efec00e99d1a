package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// domainCommand creates the domain command for showing aggregated scale domains.
func (c *CLI) domainCommand() *cobra.Command {
	var (
		names  []string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "domain [figure.toml]",
		Short: "Show the aggregated domain of each scale",
		Long: `Show the aggregated domain of each scale.

The figure's marks contribute their data to the scales they are bound to;
each scale merges its contributions with its explicit min, max, mid and
categories. Samples a scale cannot accept, such as non-positive values on a
log scale, are excluded and logged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDomain(cmd.Context(), cmd.OutOrStdout(), args[0], names, asJSON)
		},
	}

	cmd.Flags().StringSliceVarP(&names, "scale", "s", nil, "scales to show (default: all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON to stdout")

	return cmd
}

// runDomain loads the figure and reports the selected scales.
func (c *CLI) runDomain(ctx context.Context, w io.Writer, input string, names []string, asJSON bool) error {
	f, err := c.loadFigure(ctx, input)
	if err != nil {
		return err
	}
	defer f.Close()

	reports, err := scaleReports(f, names)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, reports)
	}

	for i, r := range reports {
		if i > 0 {
			printNewline()
		}
		printScale(r)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/scale"
)

// resizeCommand creates the resize command for moving a view to a new range.
func (c *CLI) resizeCommand() *cobra.Command {
	var (
		view     string
		from, to []float64
		maxTicks int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "resize [figure.toml]",
		Short: "Move a view to a new pixel range, keeping data in place",
		Long: `Move a view to a new pixel range, keeping data in place.

Every data value stays at the pixel it occupied before the resize: a
continuous view widens or narrows its domain to fill the new range, an
ordinal view grows its outer padding instead of stretching its bands.

--from defaults to the view's configured range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResize(cmd.Context(), cmd.OutOrStdout(), args[0], view, from, to, maxTicks, asJSON)
		},
	}

	cmd.Flags().StringVar(&view, "view", "", "view to resize")
	cmd.Flags().Float64SliceVar(&from, "from", nil, "old pixel range lo,hi (default: the view's range)")
	cmd.Flags().Float64SliceVar(&to, "to", nil, "new pixel range lo,hi")
	cmd.Flags().IntVar(&maxTicks, "max", defaultMaxTicks, "maximum number of ticks")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON to stdout")
	_ = cmd.MarkFlagRequired("view")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// runResize loads the figure, resizes the view and reports the result.
func (c *CLI) runResize(ctx context.Context, w io.Writer, input, name string, from, to []float64, maxTicks int, asJSON bool) error {
	f, err := c.loadFigure(ctx, input)
	if err != nil {
		return err
	}
	defer f.Close()

	v, err := f.View(name)
	if err != nil {
		return err
	}
	if err := resize(v, from, to); err != nil {
		return errors.Annotate(err, "resize %s", name)
	}
	loggerFromContext(ctx).Debug("view resized", "view", name, "range", to, "domain", v.Domain())

	r := newViewReport(name, v, maxTicks)
	if asJSON {
		return writeJSON(w, r)
	}

	printSuccess("Resized %s to [%s, %s]", name,
		strconv.FormatFloat(r.Range[0], 'g', -1, 64), strconv.FormatFloat(r.Range[1], 'g', -1, 64))
	printList("domain", r.Labels)
	if r.Padding != nil {
		printKeyValue("bandwidth", strconv.FormatFloat(r.Bandwidth, 'g', 6, 64))
		printKeyValue("outer", strconv.FormatFloat(r.Padding[1], 'g', 6, 64))
	}
	printNewline()
	printNextStep("Ticks at the new size", fmt.Sprintf("%s ticks %s --view %s", appName, input, name))
	return nil
}

// resize applies ExpandDomain, reading the old range from the view when
// from is empty.
func resize(v *scale.View, from, to []float64) error {
	if len(from) == 0 {
		lo, hi := v.Range()
		from = []float64{lo, hi}
	}
	if len(from) != 2 || len(to) != 2 {
		return errors.New(errors.ErrCodeInvalidRange, "ranges must have two values")
	}
	return v.ExpandDomain(from[0], from[1], to[0], to[1])
}

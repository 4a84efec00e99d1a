package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/figure"
	"github.com/matzehuels/scalekit/pkg/scale"
)

// colorsOptions holds flags for the colors command.
type colorsOptions struct {
	scale  string
	scheme string
	colors []string
	at     []float64
	list   bool
	asJSON bool
}

// colorReport is a resolved color range with optional sampled values.
type colorReport struct {
	Scale     string            `json:"scale"`
	Scheme    string            `json:"scheme"`
	Divergent bool              `json:"divergent"`
	Stops     []scale.ColorStop `json:"stops"`
	Samples   []colorSample     `json:"samples,omitempty"`
}

type colorSample struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// colorsCommand creates the colors command for resolving color ranges.
func (c *CLI) colorsCommand() *cobra.Command {
	var opts colorsOptions

	cmd := &cobra.Command{
		Use:   "colors [figure.toml]",
		Short: "Show the resolved color range of color scales",
		Long: `Show the resolved color range of color scales.

Each color stop pins a palette color to a domain value, or to a category on
an ordinal scale. A palette of three or more colors, or a diverging scheme
such as RdBu, makes the scale divergent: its domain gains a midpoint and the
middle color sits on it.

Use --scheme or --colors to try another palette on one scale, --at to sample
colors at data values, and --list to print the known scheme names.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return listSchemes(cmd.OutOrStdout(), opts.asJSON)
			}
			if len(args) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "a figure file is required")
			}
			return c.runColors(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scale, "scale", "s", "", "color scale to show (default: all)")
	cmd.Flags().StringVar(&opts.scheme, "scheme", "", "replace the palette with a named scheme (requires --scale)")
	cmd.Flags().StringSliceVar(&opts.colors, "colors", nil, "replace the palette with hex colors (requires --scale)")
	cmd.Flags().Float64SliceVar(&opts.at, "at", nil, "sample colors at these data values")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list known scheme names")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "write JSON to stdout")

	return cmd
}

// runColors loads the figure, applies any palette override and reports the
// color ranges.
func (c *CLI) runColors(ctx context.Context, w io.Writer, input string, opts colorsOptions) error {
	f, err := c.loadFigure(ctx, input)
	if err != nil {
		return err
	}
	defer f.Close()

	reports, err := colorReports(f, opts)
	if err != nil {
		return err
	}
	if opts.asJSON {
		return writeJSON(w, reports)
	}

	if len(reports) == 0 {
		printWarning("no color scales in %s", input)
		return nil
	}
	for i, r := range reports {
		if i > 0 {
			printNewline()
		}
		fmt.Println(StyleTitle.Render(r.Scale) + " " + StyleDim.Render(r.Scheme))
		for _, st := range r.Stops {
			label := st.Category
			if label == "" {
				label = strconv.FormatFloat(st.Value, 'g', 6, 64)
			}
			printSwatch(st.Color, label)
		}
		for _, s := range r.Samples {
			printSwatch(s.Color, "at "+strconv.FormatFloat(s.Value, 'g', 6, 64))
		}
	}
	return nil
}

// colorReports resolves the color ranges selected by opts.
func colorReports(f *figure.Figure, opts colorsOptions) ([]colorReport, error) {
	if (opts.scheme != "" || len(opts.colors) > 0) && opts.scale == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--scheme and --colors require --scale")
	}

	names := f.Scales()
	if opts.scale != "" {
		names = []string{opts.scale}
	}

	var reports []colorReport
	for _, name := range names {
		s, err := f.Scale(name)
		if err != nil {
			return nil, err
		}
		if !s.IsColorScale() {
			if opts.scale != "" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "scale %q has no palette", name)
			}
			continue
		}
		switch {
		case len(opts.colors) > 0:
			err = s.SetColors(opts.colors...)
		case opts.scheme != "":
			err = s.SetScheme(opts.scheme)
		}
		if err != nil {
			return nil, err
		}

		p, _ := s.Palette()
		cr := s.ColorRange()
		r := colorReport{Scale: name, Scheme: p.Scheme, Divergent: cr.Divergent, Stops: cr.Stops}
		if s.Kind() != scale.KindOrdinal {
			for _, v := range opts.at {
				r.Samples = append(r.Samples, colorSample{Value: v, Color: cr.At(v)})
			}
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// listSchemes prints the known scheme names.
func listSchemes(w io.Writer, asJSON bool) error {
	names := scale.Schemes()
	if asJSON {
		return writeJSON(w, names)
	}
	printInfo("%d schemes", len(names))
	for _, name := range names {
		printDetail("%s", name)
	}
	return nil
}

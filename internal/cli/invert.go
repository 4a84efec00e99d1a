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

// invertReport is the data under one pixel or a pixel interval.
type invertReport struct {
	View       string    `json:"view"`
	Pixels     []float64 `json:"pixels"`
	Values     []float64 `json:"values,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	Labels     []string  `json:"labels"`
}

// invertCommand creates the invert command for mapping pixels back to data.
func (c *CLI) invertCommand() *cobra.Command {
	var (
		view   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "invert [figure.toml] <pixel> [pixel]",
		Short: "Map pixels back to data values",
		Long: `Map pixels back to data values.

With one pixel, continuous views return the data value at that pixel and
ordinal views return the category whose band centre is nearest. With two
pixels the interval is inverted: continuous views return both endpoints,
ordinal views every category whose band centre lies inside.

Use -- before negative pixels.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pixels, err := parsePixels(args[1:])
			if err != nil {
				return err
			}
			return c.runInvert(cmd.Context(), cmd.OutOrStdout(), args[0], view, pixels, asJSON)
		},
	}

	cmd.Flags().StringVar(&view, "view", "", "view to invert through")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write JSON to stdout")
	_ = cmd.MarkFlagRequired("view")

	return cmd
}

// runInvert loads the figure and inverts the pixels through the view.
func (c *CLI) runInvert(ctx context.Context, w io.Writer, input, name string, pixels []float64, asJSON bool) error {
	f, err := c.loadFigure(ctx, input)
	if err != nil {
		return err
	}
	defer f.Close()

	v, err := f.View(name)
	if err != nil {
		return err
	}
	r, err := invert(v, name, pixels)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, r)
	}

	fmt.Println(StyleTitle.Render(name) + " " + StyleDim.Render(v.Scale().Name()))
	if len(r.Labels) == 0 {
		printWarning("nothing under the given pixels")
		return nil
	}
	if len(pixels) == 1 {
		printKeyValue(strconv.FormatFloat(pixels[0], 'f', -1, 64), r.Labels[0])
		return nil
	}
	printList("data", r.Labels)
	return nil
}

// invert maps one pixel or a pixel interval back to data.
func invert(v *scale.View, name string, pixels []float64) (invertReport, error) {
	r := invertReport{View: name, Pixels: pixels}
	k := v.Scale().Kind()

	var d scale.Domain
	switch len(pixels) {
	case 1:
		if k == scale.KindOrdinal {
			if c, ok := v.InvertCategory(pixels[0]); ok {
				d = scale.Domain{Categories: []string{c}}
			}
		} else if !v.Domain().IsEmpty() {
			d = scale.Domain{Values: []float64{v.Invert(pixels[0])}}
		}
	case 2:
		d = v.InvertRange(pixels[0], pixels[1])
	default:
		return r, errors.New(errors.ErrCodeInvalidInput, "want one or two pixels, got %d", len(pixels))
	}

	r.Values = d.Values
	r.Categories = d.Categories
	r.Labels = labels(k, d)
	return r, nil
}

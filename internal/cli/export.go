package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scalekit/pkg/buildinfo"
	"github.com/matzehuels/scalekit/pkg/figure"
)

// snapshot is the export file format.
type snapshot struct {
	Figure    string         `json:"figure"`
	Generator buildinfo.Info `json:"generator"`
	Scales    []scaleReport  `json:"scales"`
	Views     []viewReport   `json:"views"`
}

// exportCommand creates the export command for writing a figure snapshot.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		maxTicks int
	)

	cmd := &cobra.Command{
		Use:   "export [figure.toml]",
		Short: "Write a JSON snapshot of every scale and view",
		Long: `Write a JSON snapshot of every scale and view.

The snapshot holds each scale's aggregated domain and color range and each
view's range, bands and ticks. It is what a renderer needs to draw the
figure's axes and legends.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], output, maxTicks)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scales.json)")
	cmd.Flags().IntVar(&maxTicks, "max", defaultMaxTicks, "maximum number of ticks per view")

	return cmd
}

// runExport loads the figure and writes its snapshot.
func (c *CLI) runExport(ctx context.Context, input, output string, maxTicks int) error {
	f, err := c.loadFigure(ctx, input)
	if err != nil {
		return err
	}
	defer f.Close()

	snap, err := newSnapshot(input, f, maxTicks)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".scales.json"
	}
	if err := writeJSONFile(outputPath, snap); err != nil {
		return err
	}

	printSuccess("Export complete")
	printFile(outputPath)
	printDetail("%d scales · %d views", len(snap.Scales), len(snap.Views))
	return nil
}

func newSnapshot(input string, f *figure.Figure, maxTicks int) (snapshot, error) {
	scales, err := scaleReports(f, nil)
	if err != nil {
		return snapshot{}, err
	}
	snap := snapshot{Figure: filepath.Base(input), Generator: buildinfo.Get(), Scales: scales}
	for _, name := range f.Views() {
		v, err := f.View(name)
		if err != nil {
			return snapshot{}, err
		}
		snap.Views = append(snap.Views, newViewReport(name, v, maxTicks))
	}
	return snap, nil
}

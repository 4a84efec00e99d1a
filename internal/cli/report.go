package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/figure"
	"github.com/matzehuels/scalekit/pkg/scale"
)

// =============================================================================
// Reports
// =============================================================================

// scaleReport describes a scale's aggregated state.
type scaleReport struct {
	Name         string            `json:"name"`
	Kind         string            `json:"kind"`
	Values       []float64         `json:"values,omitempty"`
	Categories   []string          `json:"categories,omitempty"`
	Labels       []string          `json:"labels"`
	Reversed     bool              `json:"reversed"`
	Contributors int               `json:"contributors"`
	Scheme       string            `json:"scheme,omitempty"`
	Colors       *scale.ColorRange `json:"colors,omitempty"`
}

func newScaleReport(s *scale.Scale) scaleReport {
	d := s.Domain()
	r := scaleReport{
		Name:         s.Name(),
		Kind:         s.Kind().String(),
		Values:       d.Values,
		Categories:   d.Categories,
		Labels:       labels(s.Kind(), d),
		Reversed:     s.Reversed(),
		Contributors: len(s.Contributors()),
	}
	if p, ok := s.Palette(); ok {
		cr := s.ColorRange()
		r.Scheme = p.Scheme
		r.Colors = &cr
	}
	return r
}

// scaleReports returns reports for the named scales, or for every scale in
// file order when names is empty.
func scaleReports(f *figure.Figure, names []string) ([]scaleReport, error) {
	if len(names) == 0 {
		names = f.Scales()
	}
	reports := make([]scaleReport, 0, len(names))
	for _, name := range names {
		s, err := f.Scale(name)
		if err != nil {
			return nil, err
		}
		reports = append(reports, newScaleReport(s))
	}
	return reports, nil
}

// viewReport describes a view's range, domain and ticks.
type viewReport struct {
	Name      string       `json:"name"`
	Scale     string       `json:"scale"`
	Range     [2]float64   `json:"range"`
	Values    []float64    `json:"values,omitempty"`
	Labels    []string     `json:"labels"`
	Bandwidth float64      `json:"bandwidth,omitempty"`
	Padding   []float64    `json:"padding,omitempty"`
	Ticks     []scale.Tick `json:"ticks"`
}

func newViewReport(name string, v *scale.View, maxTicks int) viewReport {
	lo, hi := v.Range()
	d := v.Domain()
	r := viewReport{
		Name:   name,
		Scale:  v.Scale().Name(),
		Range:  [2]float64{lo, hi},
		Values: d.Values,
		Labels: labels(v.Scale().Kind(), d),
		Ticks:  v.Ticks(maxTicks),
	}
	if v.Scale().Kind() == scale.KindOrdinal {
		inner, outer := v.Padding()
		r.Bandwidth = v.Bandwidth()
		r.Padding = []float64{inner, outer}
	}
	return r
}

// labels formats a domain for display. Temporal values are printed as
// RFC 3339 instants.
func labels(k scale.Kind, d scale.Domain) []string {
	if d.Categories != nil {
		return append([]string{}, d.Categories...)
	}
	out := make([]string, len(d.Values))
	for i, v := range d.Values {
		out[i] = formatValue(k, v)
	}
	return out
}

func formatValue(k scale.Kind, v float64) string {
	if k == scale.KindTemporal {
		return time.UnixMilli(int64(v)).UTC().Format(time.RFC3339)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// parsePixels parses pixel arguments.
func parsePixels(args []string) ([]float64, error) {
	px := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "pixel %q", a)
		}
		px[i] = v
	}
	return px, nil
}

// =============================================================================
// Output
// =============================================================================

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// writeJSONFile writes v as indented JSON to path.
func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeJSON(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printScale prints a scale report for humans.
func printScale(r scaleReport) {
	fmt.Println(StyleTitle.Render(r.Name) + " " + StyleDim.Render(r.Kind))
	if len(r.Labels) == 0 {
		printWarning("empty domain")
	} else {
		printList("domain", r.Labels)
	}
	if r.Reversed {
		printKeyValue("reversed", "yes")
	}
	printKeyValue("contributors", strconv.Itoa(r.Contributors))
	if r.Colors != nil {
		printKeyValue("scheme", r.Scheme)
		if r.Colors.Divergent {
			printKeyValue("divergent", "yes")
		}
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/figure"
	"github.com/matzehuels/scalekit/pkg/scale"
)

var figurePath = filepath.Join("testdata", "figure.toml")

// execute runs the root command with args and returns what it wrote to
// its output writer.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func loadTestFigure(t *testing.T) *figure.Figure {
	t.Helper()
	c := New(io.Discard, LogInfo)
	f, err := c.loadFigure(context.Background(), figurePath)
	if err != nil {
		t.Fatalf("loadFigure() error = %v", err)
	}
	t.Cleanup(f.Close)
	return f
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"colors", "completion", "domain", "export", "invert", "resize", "ticks"}

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	slices.Sort(got)
	for _, name := range want {
		if !slices.Contains(got, name) {
			t.Errorf("missing subcommand %q, have %v", name, got)
		}
	}
}

func TestDomainJSON(t *testing.T) {
	out, err := execute(t, "domain", figurePath, "--json")
	if err != nil {
		t.Fatalf("domain error = %v", err)
	}

	var reports []scaleReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}

	tests := []struct {
		name       string
		values     []float64
		categories []string
	}{
		{name: "x", values: []float64{0, 100}},
		{name: "fill", values: []float64{-1, 1, 3}},
		{name: "group", categories: []string{"a", "b", "c"}},
	}
	if len(reports) != len(tests) {
		t.Fatalf("got %d reports, want %d", len(reports), len(tests))
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := reports[i]
			if r.Name != tt.name {
				t.Fatalf("report %d name = %q, want %q", i, r.Name, tt.name)
			}
			if !slices.Equal(r.Values, tt.values) || !slices.Equal(r.Categories, tt.categories) {
				t.Errorf("domain = %v%v, want %v%v", r.Values, r.Categories, tt.values, tt.categories)
			}
			if r.Contributors != 1 {
				t.Errorf("contributors = %d, want 1", r.Contributors)
			}
		})
	}
}

func TestDomainSelectedScale(t *testing.T) {
	f := loadTestFigure(t)

	reports, err := scaleReports(f, []string{"group"})
	if err != nil {
		t.Fatalf("scaleReports() error = %v", err)
	}
	if len(reports) != 1 || reports[0].Name != "group" {
		t.Fatalf("scaleReports() = %+v, want only group", reports)
	}
	if reports[0].Colors == nil || len(reports[0].Colors.Stops) != 3 {
		t.Errorf("group colors = %+v, want 3 stops", reports[0].Colors)
	}

	if _, err := scaleReports(f, []string{"nope"}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("scaleReports(nope) error = %v, want NOT_FOUND", err)
	}
}

func TestMissingFigure(t *testing.T) {
	_, err := execute(t, "domain", filepath.Join("testdata", "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("domain error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestInvert(t *testing.T) {
	f := loadTestFigure(t)

	tests := []struct {
		name       string
		view       string
		pixels     []float64
		values     []float64
		categories []string
	}{
		{"continuous pixel", "x-axis", []float64{250}, []float64{50}, nil},
		{"continuous interval", "x-axis", []float64{0, 250}, []float64{0, 50}, nil},
		{"ordinal pixel", "groups", []float64{140}, nil, []string{"b"}},
		{"ordinal interval", "groups", []float64{0, 160}, nil, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := f.View(tt.view)
			if err != nil {
				t.Fatalf("View(%q) error = %v", tt.view, err)
			}
			r, err := invert(v, tt.view, tt.pixels)
			if err != nil {
				t.Fatalf("invert() error = %v", err)
			}
			if !slices.Equal(r.Values, tt.values) || !slices.Equal(r.Categories, tt.categories) {
				t.Errorf("invert() = %v%v, want %v%v", r.Values, r.Categories, tt.values, tt.categories)
			}
		})
	}
}

func TestInvertCommandBadPixel(t *testing.T) {
	_, err := execute(t, "invert", figurePath, "--view", "x-axis", "left")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invert error = %v, want INVALID_INPUT", err)
	}
}

func TestResizeJSON(t *testing.T) {
	out, err := execute(t, "resize", figurePath, "--view", "x-axis", "--to", "0,750", "--json")
	if err != nil {
		t.Fatalf("resize error = %v", err)
	}
	var r viewReport
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if want := []float64{0, 150}; !slices.Equal(r.Values, want) {
		t.Errorf("domain after resize = %v, want %v", r.Values, want)
	}
	if r.Range != [2]float64{0, 750} {
		t.Errorf("range after resize = %v, want [0 750]", r.Range)
	}
}

func TestResizeOrdinal(t *testing.T) {
	f := loadTestFigure(t)
	v, _ := f.View("groups")

	// Three bands of 100px; growing the range by 150px adds 1.5 bands of
	// outer padding.
	if err := resize(v, nil, []float64{0, 450}); err != nil {
		t.Fatalf("resize() error = %v", err)
	}
	if _, outer := v.Padding(); outer != 1.5 {
		t.Errorf("outer padding = %v, want 1.5", outer)
	}

	if err := resize(v, nil, []float64{0}); !errors.Is(err, errors.ErrCodeInvalidRange) {
		t.Errorf("resize() with one value error = %v, want INVALID_RANGE", err)
	}
}

func TestColorReports(t *testing.T) {
	f := loadTestFigure(t)

	reports, err := colorReports(f, colorsOptions{scale: "fill", at: []float64{1, 10}})
	if err != nil {
		t.Fatalf("colorReports() error = %v", err)
	}
	r := reports[0]
	if !r.Divergent {
		t.Errorf("Divergent = false, want true")
	}
	wantStops := []scale.ColorStop{
		{Value: -1, Color: "#d7191c"},
		{Value: 1, Color: "#ffffbf"},
		{Value: 3, Color: "#2c7bb6"},
	}
	if !slices.Equal(r.Stops, wantStops) {
		t.Errorf("Stops = %v, want %v", r.Stops, wantStops)
	}
	wantSamples := []colorSample{{1, "#ffffbf"}, {10, "#2c7bb6"}}
	if !slices.Equal(r.Samples, wantSamples) {
		t.Errorf("Samples = %v, want %v", r.Samples, wantSamples)
	}
}

func TestColorReportsOverride(t *testing.T) {
	f := loadTestFigure(t)

	reports, err := colorReports(f, colorsOptions{scale: "fill", colors: []string{"#000000", "#ffffff"}})
	if err != nil {
		t.Fatalf("colorReports() error = %v", err)
	}
	if reports[0].Divergent {
		t.Errorf("Divergent = true after two-color override, want false")
	}
	s, _ := f.Scale("fill")
	if got := s.Domain().Values; !slices.Equal(got, []float64{-1, 3}) {
		t.Errorf("domain after override = %v, want [-1 3]", got)
	}
}

func TestColorReportsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts colorsOptions
		code errors.Code
	}{
		{"scheme without scale", colorsOptions{scheme: "Blues"}, errors.ErrCodeInvalidInput},
		{"scale without palette", colorsOptions{scale: "x"}, errors.ErrCodeInvalidInput},
		{"unknown scale", colorsOptions{scale: "nope"}, errors.ErrCodeNotFound},
		{"unknown scheme", colorsOptions{scale: "fill", scheme: "rainbow"}, errors.ErrCodeInvalidScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loadTestFigure(t)
			_, err := colorReports(f, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("colorReports() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestColorsList(t *testing.T) {
	out, err := execute(t, "colors", "--list", "--json")
	if err != nil {
		t.Fatalf("colors --list error = %v", err)
	}
	var names []string
	if err := json.Unmarshal([]byte(out), &names); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	for _, want := range []string{"viridis", "Set1", "RdBu"} {
		if !slices.Contains(names, want) {
			t.Errorf("schemes %v missing %q", names, want)
		}
	}
}

func TestTicksJSON(t *testing.T) {
	out, err := execute(t, "ticks", figurePath, "--view", "groups", "--json")
	if err != nil {
		t.Fatalf("ticks error = %v", err)
	}
	var ticks []scale.Tick
	if err := json.Unmarshal([]byte(out), &ticks); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	want := []scale.Tick{
		{Value: 0, Label: "a", Pixel: 50},
		{Value: 1, Label: "b", Pixel: 150},
		{Value: 2, Label: "c", Pixel: 250},
	}
	if !slices.Equal(ticks, want) {
		t.Errorf("ticks = %v, want %v", ticks, want)
	}
}

func TestTicksRequiresView(t *testing.T) {
	if _, err := execute(t, "ticks", figurePath); err == nil {
		t.Error("ticks without --view: want error")
	}
}

func TestExport(t *testing.T) {
	output := filepath.Join(t.TempDir(), "snapshot.json")
	if _, err := execute(t, "export", figurePath, "-o", output); err != nil {
		t.Fatalf("export error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Figure != "figure.toml" {
		t.Errorf("Figure = %q, want figure.toml", snap.Figure)
	}
	if len(snap.Scales) != 3 || len(snap.Views) != 2 {
		t.Fatalf("snapshot has %d scales and %d views, want 3 and 2", len(snap.Scales), len(snap.Views))
	}

	x := snap.Views[0]
	if x.Name != "x-axis" || len(x.Ticks) == 0 {
		t.Fatalf("views[0] = %+v, want x-axis with ticks", x)
	}
	if first := x.Ticks[0]; first.Value != 0 || first.Pixel != 0 {
		t.Errorf("first x tick = %+v, want value 0 at pixel 0", first)
	}
	if g := snap.Views[1]; g.Bandwidth != 100 {
		t.Errorf("groups bandwidth = %v, want 100", g.Bandwidth)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		kind scale.Kind
		v    float64
		want string
	}{
		{scale.KindLinear, 0.5, "0.5"},
		{scale.KindLog, 1000, "1000"},
		{scale.KindLinear, 1234567, "1.23457e+06"},
		{scale.KindTemporal, 0, "1970-01-01T00:00:00Z"},
		{scale.KindTemporal, 86400000, "1970-01-02T00:00:00Z"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.kind, tt.v); got != tt.want {
			t.Errorf("formatValue(%s, %v) = %q, want %q", tt.kind, tt.v, got, tt.want)
		}
	}
}

// Package figure loads figure descriptions: the scales, marks and views of a
// plot written as TOML.
//
// A figure file declares scales with their explicit configuration, marks
// with their data and channel bindings, and views that map a scale onto a
// pixel range:
//
//	[[scale]]
//	name = "x"
//	kind = "linear"
//
//	[[scale]]
//	name = "fill"
//	kind = "linear"
//	scheme = "RdBu"
//
//	[[mark]]
//	name = "scatter"
//	channels = { x = "x", color = "fill" }
//	data = { x = [2, 10, 4], color = [-1, 0, 3] }
//
//	[[view]]
//	name = "x-axis"
//	scale = "x"
//	range = [0, 500]
//
// [Load] and [Parse] decode and validate a file; [Build] turns the result
// into live [scale.Scale], [mark.Mark] and [scale.View] values.
package figure

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/scale"
)

// Config is a decoded figure file.
type Config struct {
	Scales []ScaleConfig `toml:"scale"`
	Marks  []MarkConfig  `toml:"mark"`
	Views  []ViewConfig  `toml:"view"`
}

// ScaleConfig is one [[scale]] table. Min, Max and Mid hold a number, or a
// datetime on temporal scales; nil derives the bound from data.
type ScaleConfig struct {
	Name       string   `toml:"name"`
	Kind       string   `toml:"kind"`
	Min        any      `toml:"min"`
	Max        any      `toml:"max"`
	Mid        any      `toml:"mid"`
	Reverse    bool     `toml:"reverse"`
	Categories []string `toml:"categories"`
	Colors     []string `toml:"colors"`
	Scheme     string   `toml:"scheme"`
}

// IsColor reports whether the scale declares a palette.
func (c ScaleConfig) IsColor() bool {
	return len(c.Colors) > 0 || c.Scheme != ""
}

// MarkConfig is one [[mark]] table. Channels maps a channel to a scale
// name; Data maps a channel to its column.
type MarkConfig struct {
	Name     string            `toml:"name"`
	Channels map[string]string `toml:"channels"`
	Data     map[string][]any  `toml:"data"`
}

// ViewConfig is one [[view]] table.
type ViewConfig struct {
	Name    string    `toml:"name"`
	Scale   string    `toml:"scale"`
	Range   []float64 `toml:"range"`
	Padding float64   `toml:"padding"`
	Clamp   bool      `toml:"clamp"`
}

// Load reads, decodes and validates a figure file.
func Load(path string) (*Config, error) {
	if err := errors.ValidateFigurePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Annotate(err, "load %s", path)
	}
	return cfg, nil
}

// Parse decodes and validates figure TOML. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode figure")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks names, kinds, palettes, bounds, references and data.
func (c *Config) Validate() error {
	kinds := make(map[string]scale.Kind, len(c.Scales))
	for i, s := range c.Scales {
		if err := errors.ValidateName(s.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scale #%d", i+1)
		}
		if _, dup := kinds[s.Name]; dup {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate scale %q", s.Name)
		}
		k, err := scale.ParseKind(s.Kind)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidKind, err, "scale %q", s.Name)
		}
		kinds[s.Name] = k
		if err := s.validate(k); err != nil {
			return err
		}
	}

	marks := make(map[string]bool, len(c.Marks))
	for i, m := range c.Marks {
		if err := errors.ValidateName(m.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "mark #%d", i+1)
		}
		if marks[m.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate mark %q", m.Name)
		}
		marks[m.Name] = true
		for ch, name := range m.Channels {
			if _, ok := kinds[name]; !ok {
				return errors.New(errors.ErrCodeNotFound, "mark %q: channel %s: unknown scale %q", m.Name, ch, name)
			}
		}
		for ch, values := range m.Data {
			if _, err := column(values); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "mark %q: data %s", m.Name, ch)
			}
		}
	}

	views := make(map[string]bool, len(c.Views))
	for i, v := range c.Views {
		if err := errors.ValidateName(v.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "view #%d", i+1)
		}
		if views[v.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate view %q", v.Name)
		}
		views[v.Name] = true
		if _, ok := kinds[v.Scale]; !ok {
			return errors.New(errors.ErrCodeNotFound, "view %q: unknown scale %q", v.Name, v.Scale)
		}
		if len(v.Range) != 2 {
			return errors.New(errors.ErrCodeInvalidRange, "view %q: range must have two values, got %d", v.Name, len(v.Range))
		}
		if err := errors.ValidateRange(v.Range[0], v.Range[1]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRange, err, "view %q", v.Name)
		}
		if err := errors.ValidatePadding(v.Padding); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRange, err, "view %q", v.Name)
		}
	}
	return nil
}

func (s ScaleConfig) validate(k scale.Kind) error {
	if k == scale.KindOrdinal {
		if s.Min != nil || s.Max != nil || s.Mid != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "scale %q: ordinal scales take categories, not min/max/mid", s.Name)
		}
	} else if s.Categories != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "scale %q: categories require kind = \"ordinal\"", s.Name)
	}
	for _, b := range []struct {
		key string
		v   any
	}{{"min", s.Min}, {"max", s.Max}, {"mid", s.Mid}} {
		if b.v == nil {
			continue
		}
		v, err := bound(b.v, k)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scale %q: %s", s.Name, b.key)
		}
		if k == scale.KindLog && v <= 0 {
			return errors.New(errors.ErrCodeInvalidDomain, "scale %q: log scale %s must be positive, got %v", s.Name, b.key, v)
		}
	}
	if s.IsColor() {
		p := scale.Palette{Colors: s.Colors, Scheme: s.Scheme}
		if err := p.Validate(); err != nil {
			return errors.Annotate(err, "scale %q", s.Name)
		}
	}
	return nil
}

// bound converts a TOML min/max/mid value. Datetimes are accepted on
// temporal scales only and become milliseconds since the epoch.
func bound(v any, k scale.Kind) (float64, error) {
	switch b := v.(type) {
	case int64:
		return float64(b), nil
	case float64:
		return b, nil
	case time.Time:
		if k != scale.KindTemporal {
			return 0, fmt.Errorf("datetime bound on %s scale", k)
		}
		return float64(b.UnixMilli()), nil
	}
	return 0, fmt.Errorf("unsupported value %v (%T)", v, v)
}

// column converts a TOML array into a typed column. All elements must be
// numbers, strings or datetimes; integers and floats may be mixed.
func column(values []any) (columnData, error) {
	var col columnData
	for i, v := range values {
		switch x := v.(type) {
		case int64:
			col.floats = append(col.floats, float64(x))
		case float64:
			col.floats = append(col.floats, x)
		case string:
			col.strings = append(col.strings, x)
		case time.Time:
			col.times = append(col.times, x)
		default:
			return columnData{}, fmt.Errorf("element %d: unsupported value %v (%T)", i, v, v)
		}
	}
	kinds := 0
	for _, n := range []int{len(col.floats), len(col.strings), len(col.times)} {
		if n > 0 {
			kinds++
		}
	}
	if kinds > 1 {
		return columnData{}, fmt.Errorf("mixed element types")
	}
	return col, nil
}

type columnData struct {
	floats  []float64
	strings []string
	times   []time.Time
}

// sortedKeys returns m's keys in order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

package figure

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/mark"
	"github.com/matzehuels/scalekit/pkg/scale"
)

// Figure is a built figure: live scales, marks and views keyed by name.
type Figure struct {
	scales map[string]*scale.Scale
	marks  map[string]*mark.Mark
	views  map[string]*scale.View

	scaleNames []string
	markNames  []string
	viewNames  []string
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	logger *log.Logger
}

// WithLogger passes a logger to every scale and mark built.
func WithLogger(l *log.Logger) Option {
	return func(o *buildOptions) { o.logger = l }
}

// Build creates the figure's scales, applies their explicit configuration,
// binds and feeds the marks in file order, and installs the views.
func Build(cfg *Config, opts ...Option) (*Figure, error) {
	o := buildOptions{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := &Figure{
		scales: make(map[string]*scale.Scale, len(cfg.Scales)),
		marks:  make(map[string]*mark.Mark, len(cfg.Marks)),
		views:  make(map[string]*scale.View, len(cfg.Views)),
	}

	for _, sc := range cfg.Scales {
		s, err := buildScale(sc, o.logger)
		if err != nil {
			return nil, err
		}
		f.scales[sc.Name] = s
		f.scaleNames = append(f.scaleNames, sc.Name)
	}

	for _, mc := range cfg.Marks {
		m := mark.New(mc.Name, mark.WithLogger(o.logger))
		for _, ch := range sortedKeys(mc.Channels) {
			m.Bind(mark.Channel(ch), f.scales[mc.Channels[ch]])
		}
		data := make(map[mark.Channel]mark.Column, len(mc.Data))
		for ch, values := range mc.Data {
			col, _ := column(values)
			data[mark.Channel(ch)] = mark.Column{Floats: col.floats, Times: col.times, Strings: col.strings}
		}
		m.SetData(data)
		f.marks[mc.Name] = m
		f.markNames = append(f.markNames, mc.Name)
	}

	for _, vc := range cfg.Views {
		v := scale.NewView(f.scales[vc.Scale], scale.WithClamp(vc.Clamp))
		if err := v.SetRange(vc.Range[0], vc.Range[1], vc.Padding); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRange, err, "view %q", vc.Name)
		}
		f.views[vc.Name] = v
		f.viewNames = append(f.viewNames, vc.Name)
	}

	o.logger.Debug("figure built", "scales", len(f.scales), "marks", len(f.marks), "views", len(f.views))
	return f, nil
}

func buildScale(sc ScaleConfig, logger *log.Logger) (*scale.Scale, error) {
	k, err := scale.ParseKind(sc.Kind)
	if err != nil {
		return nil, err
	}
	opts := []scale.Option{scale.WithName(sc.Name), scale.WithLogger(logger), scale.WithReverse(sc.Reverse)}

	var s *scale.Scale
	if sc.IsColor() {
		s, err = scale.NewColorScale(k, scale.Palette{Colors: sc.Colors, Scheme: sc.Scheme}, opts...)
		if err != nil {
			return nil, errors.Annotate(err, "scale %q", sc.Name)
		}
	} else {
		s = scale.New(k, opts...)
	}

	setters := []struct {
		v   any
		set func(float64) error
	}{
		{sc.Min, s.SetMin},
		{sc.Max, s.SetMax},
		{sc.Mid, s.SetMid},
	}
	for _, st := range setters {
		if st.v == nil {
			continue
		}
		v, err := bound(st.v, k)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "scale %q", sc.Name)
		}
		if err := st.set(v); err != nil {
			return nil, err
		}
	}
	if sc.Categories != nil {
		if err := s.SetCategories(sc.Categories...); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Scale returns the named scale.
func (f *Figure) Scale(name string) (*scale.Scale, error) {
	s, ok := f.scales[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown scale %q", name)
	}
	return s, nil
}

// Mark returns the named mark.
func (f *Figure) Mark(name string) (*mark.Mark, error) {
	m, ok := f.marks[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown mark %q", name)
	}
	return m, nil
}

// View returns the named view.
func (f *Figure) View(name string) (*scale.View, error) {
	v, ok := f.views[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown view %q", name)
	}
	return v, nil
}

// Scales returns scale names in file order.
func (f *Figure) Scales() []string { return append([]string(nil), f.scaleNames...) }

// Marks returns mark names in file order.
func (f *Figure) Marks() []string { return append([]string(nil), f.markNames...) }

// Views returns view names in file order.
func (f *Figure) Views() []string { return append([]string(nil), f.viewNames...) }

// Close detaches every mark and view.
func (f *Figure) Close() {
	for _, name := range f.markNames {
		f.marks[name].Detach()
	}
	for _, name := range f.viewNames {
		f.views[name].Close()
	}
}

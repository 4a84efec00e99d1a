package scale

import (
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/observability"
)

// Palette is the color specification of a color scale: explicit hex colors,
// or a named scheme when Colors is empty.
type Palette struct {
	Colors []string
	Scheme string
}

// Divergent reports whether the palette makes a continuous scale divergent:
// more than two explicit colors, or a diverging scheme.
func (p Palette) Divergent() bool {
	if len(p.Colors) > 0 {
		return len(p.Colors) > 2
	}
	return divergingSchemes[p.Scheme]
}

// Validate checks every color and the scheme name.
func (p Palette) Validate() error {
	for _, c := range p.Colors {
		if err := errors.ValidateHexColor(c); err != nil {
			return err
		}
	}
	if len(p.Colors) == 0 && p.Scheme != "" && !KnownScheme(p.Scheme) {
		return errors.New(errors.ErrCodeInvalidScheme, "unknown color scheme: %q", p.Scheme)
	}
	return nil
}

// normalize returns a validated copy with lowercase six-digit hex colors and
// the default scheme filled in for k.
func (p Palette) normalize(k Kind) (Palette, error) {
	if err := p.Validate(); err != nil {
		return Palette{}, err
	}
	out := Palette{Scheme: p.Scheme}
	for _, c := range p.Colors {
		cc, err := colorful.Hex(expandHex(c))
		if err != nil {
			return Palette{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", c)
		}
		out.Colors = append(out.Colors, cc.Hex())
	}
	if len(out.Colors) == 0 && out.Scheme == "" {
		out.Scheme = DefaultContinuousScheme
		if k == KindOrdinal {
			out.Scheme = DefaultOrdinalScheme
		}
	}
	return out, nil
}

// expandHex turns "#abc" into "#aabbcc".
func expandHex(c string) string {
	if len(c) != 4 {
		return c
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, r := range c[1:] {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

// ColorStop pins a color to a domain value, or to a category on an ordinal
// scale.
type ColorStop struct {
	Value    float64 `json:"value"`
	Category string  `json:"category,omitempty"`
	Color    string  `json:"color"`
}

// ColorRange is the resolved visual range of a color scale.
type ColorRange struct {
	Divergent bool        `json:"divergent"`
	Stops     []ColorStop `json:"stops"`
}

// At returns the color for a continuous value, interpolating between the
// two enclosing stops in CIE L*a*b* space. Values outside the stops take the
// nearest end color. At returns "" when there are no stops.
func (r ColorRange) At(v float64) string {
	if len(r.Stops) == 0 {
		return ""
	}
	stops := slices.Clone(r.Stops)
	slices.SortStableFunc(stops, func(a, b ColorStop) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		}
		return 0
	})
	if v <= stops[0].Value {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if v >= last.Value {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if v > b.Value {
			continue
		}
		if v == b.Value {
			return b.Color
		}
		ca, errA := colorful.Hex(a.Color)
		cb, errB := colorful.Hex(b.Color)
		if errA != nil || errB != nil || b.Value == a.Value {
			return b.Color
		}
		t := (v - a.Value) / (b.Value - a.Value)
		return ca.BlendLab(cb, t).Clamped().Hex()
	}
	return last.Color
}

// ForCategory returns the color assigned to category c.
func (r ColorRange) ForCategory(c string) (string, bool) {
	for _, st := range r.Stops {
		if st.Category == c {
			return st.Color, true
		}
	}
	return "", false
}

// =============================================================================
// Scale palette operations
// =============================================================================

// IsColorScale reports whether s has a palette.
func (s *Scale) IsColorScale() bool { return s.palette != nil }

// Palette returns a copy of the scale's palette.
func (s *Scale) Palette() (Palette, bool) {
	if s.palette == nil {
		return Palette{}, false
	}
	return Palette{Colors: slices.Clone(s.palette.Colors), Scheme: s.palette.Scheme}, true
}

// Divergent reports whether the scale currently has a [min, mid, max]
// domain.
func (s *Scale) Divergent() bool { return s.divergent }

// SetColors replaces the palette with explicit colors. An empty list falls
// back to the scale's scheme.
func (s *Scale) SetColors(colors ...string) error {
	p := Palette{Colors: colors}
	if s.palette != nil {
		p.Scheme = s.palette.Scheme
	}
	return s.setPalette(p)
}

// SetScheme replaces the palette with a named scheme, dropping explicit
// colors.
func (s *Scale) SetScheme(name string) error {
	return s.setPalette(Palette{Scheme: name})
}

func (s *Scale) setPalette(p Palette) error {
	np, err := p.normalize(s.kind)
	if err != nil {
		return err
	}
	s.palette = &np

	divergent := s.kind.Continuous() && np.Divergent()
	if divergent != s.divergent {
		s.divergent = divergent
		s.UpdateDomain()
	}

	cr := s.ColorRange()
	observability.Color().OnColorRangeResolved(s.name, len(cr.Stops), cr.Divergent)
	s.logger.Debug("color range changed", "scale", s.name, "colors", len(np.Colors), "scheme", np.Scheme, "divergent", s.divergent)
	s.emit(Event{Kind: EventColorRangeChanged, Domain: s.domain.Clone()})
	return nil
}

// ColorRange resolves the palette against the current domain. A scale
// without a palette, or with an empty domain, has no stops.
func (s *Scale) ColorRange() ColorRange {
	cr := ColorRange{Divergent: s.divergent}
	if s.palette == nil || s.domain.IsEmpty() {
		return cr
	}
	if s.kind == KindOrdinal {
		cr.Stops = s.categoryStops()
		return cr
	}
	cr.Stops = s.continuousStops()
	return cr
}

func (s *Scale) categoryStops() []ColorStop {
	cats := s.domain.Categories
	var colors []string
	if len(s.palette.Colors) > 0 {
		colors = s.palette.Colors
	} else {
		cs, err := schemeVariant(s.palette.Scheme, len(cats))
		if err != nil {
			return nil
		}
		for _, c := range cs {
			colors = append(colors, c.Hex())
		}
	}
	if len(colors) == 0 {
		return nil
	}
	stops := make([]ColorStop, len(cats))
	for i, c := range cats {
		stops[i] = ColorStop{Value: float64(i), Category: c, Color: colors[i%len(colors)]}
	}
	return stops
}

func (s *Scale) continuousStops() []ColorStop {
	var colors []string
	if len(s.palette.Colors) > 0 {
		colors = s.palette.Colors
	} else {
		n := 2
		if s.divergent {
			n = 3
		}
		cs, err := schemeStops(s.palette.Scheme, n)
		if err != nil {
			return nil
		}
		for _, c := range cs {
			colors = append(colors, c.Hex())
		}
	}

	d := s.domain.Values
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		t := 0.0
		if len(colors) > 1 {
			t = float64(i) / float64(len(colors)-1)
		}
		stops[i] = ColorStop{Value: stopValue(d, t, s.divergent), Color: c}
	}
	return stops
}

// stopValue places position t in [0, 1] on domain d. On a divergent domain
// each half of [0, 1] spans one side of the midpoint.
func stopValue(d []float64, t float64, divergent bool) float64 {
	first, last := d[0], d[len(d)-1]
	if !divergent || len(d) != 3 {
		return first + (last-first)*t
	}
	if t <= 0.5 {
		return first + (d[1]-first)*(t/0.5)
	}
	return d[1] + (last-d[1])*((t-0.5)/0.5)
}

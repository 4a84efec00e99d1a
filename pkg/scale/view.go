package scale

import (
	"math"
	"slices"
	"time"

	moremath "github.com/aclements/go-moremath/scale"

	"github.com/matzehuels/scalekit/pkg/errors"
)

// View maps a scale's domain onto a pixel range.
//
// A View follows its scale: every EventDomainChanged re-installs the
// scale's domain, discarding any domain installed by ExpandDomain. Ordinal
// views partition the range into one band per category.
type View struct {
	scale *Scale
	lo    float64
	hi    float64
	clamp bool

	// ordinal band padding, in steps
	inner float64
	outer float64

	// domain installed by ExpandDomain, continuous only
	expanded *Domain

	unsubscribe func()
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithClamp clamps forward mapping of continuous values to the range.
func WithClamp(clamp bool) ViewOption {
	return func(v *View) { v.clamp = clamp }
}

// WithRange sets the initial pixel range. The default is [0, 1].
func WithRange(lo, hi float64) ViewOption {
	return func(v *View) { v.lo, v.hi = lo, hi }
}

// NewView creates a view of s and subscribes it to domain changes.
func NewView(s *Scale, opts ...ViewOption) *View {
	v := &View{scale: s, lo: 0, hi: 1}
	for _, opt := range opts {
		opt(v)
	}
	v.unsubscribe = s.Subscribe(EventDomainChanged, func(Event) {
		v.expanded = nil
	})
	return v
}

// Close detaches the view from its scale.
func (v *View) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

// Scale returns the mapped scale.
func (v *View) Scale() *Scale { return v.scale }

// SetRange installs the pixel range. On an ordinal view padding is the
// fraction of each band's span left empty, split evenly between the two
// sides; half of it is also left at each end of the range.
func (v *View) SetRange(lo, hi, padding float64) error {
	if err := errors.ValidateRange(lo, hi); err != nil {
		return err
	}
	if err := errors.ValidatePadding(padding); err != nil {
		return err
	}
	v.lo, v.hi = lo, hi
	v.inner = padding
	v.outer = padding / 2
	return nil
}

// Range returns the pixel range.
func (v *View) Range() (lo, hi float64) { return v.lo, v.hi }

// Padding returns the ordinal inner and outer padding.
func (v *View) Padding() (inner, outer float64) { return v.inner, v.outer }

// Domain returns the domain the view currently maps.
func (v *View) Domain() Domain {
	if v.expanded != nil {
		return v.expanded.Clone()
	}
	return v.scale.Domain()
}

// Bandwidth returns the width of one ordinal band, or 0 for continuous
// views.
func (v *View) Bandwidth() float64 {
	if v.scale.kind != KindOrdinal {
		return 0
	}
	return v.bands().width
}

// Offset returns the shift that centres a point mark in its band.
func (v *View) Offset() float64 {
	return v.Bandwidth() / 2
}

// =============================================================================
// Continuous mapping
// =============================================================================

// linear is a continuous mapping at a given range. The moremath scales
// require ascending bounds, so a reversed domain is mapped with flip set.
type linear struct {
	q        moremath.Quantitative
	flip     bool
	lo, hi   float64
	constant float64
}

func (v *View) mapping(lo, hi float64, clamp bool) (linear, bool) {
	d := v.Domain()
	if v.scale.kind == KindOrdinal || len(d.Values) < 2 {
		return linear{}, false
	}
	a, z := d.First(), d.Last()
	m := linear{lo: lo, hi: hi, flip: a > z, constant: math.NaN()}
	if m.flip {
		a, z = z, a
	}
	if a == z {
		m.constant = a
		return m, true
	}
	switch v.scale.kind {
	case KindLog:
		l, err := moremath.NewLog(a, z, 10)
		if err != nil {
			return linear{}, false
		}
		m.q = &l
	default:
		m.q = &moremath.Linear{Min: a, Max: z}
	}
	m.q.SetClamp(clamp)
	return m, true
}

func (m linear) forward(x float64) float64 {
	t := 0.5
	if m.q != nil {
		t = m.q.Map(x)
	}
	if m.flip {
		t = 1 - t
	}
	return m.lo + t*(m.hi-m.lo)
}

func (m linear) inverse(px float64) float64 {
	if m.q == nil {
		return m.constant
	}
	t := (px - m.lo) / (m.hi - m.lo)
	if m.flip {
		t = 1 - t
	}
	return m.q.Unmap(t)
}

// Map returns the pixel for a continuous value. It returns NaN on an
// ordinal view or an empty domain. A degenerate domain maps to the middle
// of the range.
func (v *View) Map(x float64) float64 {
	m, ok := v.mapping(v.lo, v.hi, v.clamp)
	if !ok {
		return math.NaN()
	}
	return m.forward(x)
}

// MapTime returns the pixel for a time instant.
func (v *View) MapTime(t time.Time) float64 {
	return v.Map(toMillis(t))
}

// Invert returns the value at pixel px. It is the exact inverse of Map on
// an unclamped view. It returns NaN on an ordinal view or an empty domain.
func (v *View) Invert(px float64) float64 {
	m, ok := v.mapping(v.lo, v.hi, false)
	if !ok {
		return math.NaN()
	}
	return m.inverse(px)
}

// InvertTime returns the instant at pixel px.
func (v *View) InvertTime(px float64) time.Time {
	return fromMillis(v.Invert(px))
}

// =============================================================================
// Ordinal mapping
// =============================================================================

func (v *View) bands() bands {
	return layoutBands(len(v.scale.domain.Categories), v.lo, v.hi, v.inner, v.outer)
}

// MapCategory returns the start pixel of c's band. Add Offset to centre a
// point mark.
func (v *View) MapCategory(c string) (float64, bool) {
	i := slices.Index(v.scale.domain.Categories, c)
	if i < 0 || v.scale.kind != KindOrdinal {
		return math.NaN(), false
	}
	return v.bands().position(i), true
}

// InvertCategory returns the category whose band centre is nearest to px.
// Ties go to the category first in domain order.
func (v *View) InvertCategory(px float64) (string, bool) {
	if v.scale.kind != KindOrdinal {
		return "", false
	}
	i := v.bands().nearest(px)
	if i < 0 {
		return "", false
	}
	return v.scale.domain.Categories[i], true
}

// InvertRange returns the data covered by the pixel interval [a, b]. For a
// continuous view both endpoints are inverted, in the given order. For an
// ordinal view it returns every category whose band centre lies in the
// closed interval, in domain order.
func (v *View) InvertRange(a, b float64) Domain {
	if v.scale.kind != KindOrdinal {
		if v.Domain().IsEmpty() {
			return Domain{}
		}
		return Numeric(v.Invert(a), v.Invert(b))
	}
	if a > b {
		a, b = b, a
	}
	bs := v.bands()
	var out []string
	for i, c := range v.scale.domain.Categories {
		if px := bs.center(i); px >= a && px <= b {
			out = append(out, c)
		}
	}
	return Domain{Categories: out}
}

// =============================================================================
// Resizing
// =============================================================================

// ExpandDomain moves the view from the pixel range [oldLo, oldHi] to
// [newLo, newHi] while keeping every data value at the pixel it occupied
// before. A continuous view inverts the new range's endpoints through an
// unclamped mapping at the old range and installs the results as its
// domain, keeping a divergent midpoint. An ordinal view instead sets its
// outer padding to |newHi-oldHi| / bandwidth; the bands are then laid out
// centred in the new range, so band centres move.
func (v *View) ExpandDomain(oldLo, oldHi, newLo, newHi float64) error {
	if err := errors.ValidateRange(oldLo, oldHi); err != nil {
		return err
	}
	if err := errors.ValidateRange(newLo, newHi); err != nil {
		return err
	}

	if v.scale.kind == KindOrdinal {
		v.lo, v.hi = oldLo, oldHi
		bw := v.bands().width
		if bw > 0 {
			v.outer = math.Abs(newHi-oldHi) / bw
		}
		v.lo, v.hi = newLo, newHi
		return nil
	}

	m, ok := v.mapping(oldLo, oldHi, false)
	v.lo, v.hi = newLo, newHi
	if !ok {
		return nil
	}
	d := Numeric(m.inverse(newLo), m.inverse(newHi))
	if mid, ok := v.Domain().Mid(); ok {
		// The midpoint is a data value and keeps its pixel like any other.
		d.Values = []float64{d.Values[0], mid, d.Values[1]}
	}
	v.expanded = &d
	return nil
}

// =============================================================================
// Ticks
// =============================================================================

// Tick is one axis tick.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Pixel float64 `json:"pixel"`
}

// Ticks returns at most max major ticks. Continuous ticks are placed at
// round values; ordinal views tick every category at its band centre.
func (v *View) Ticks(max int) []Tick {
	if v.scale.kind == KindOrdinal {
		bs := v.bands()
		cats := v.scale.domain.Categories
		ticks := make([]Tick, 0, len(cats))
		for i, c := range cats {
			ticks = append(ticks, Tick{Value: float64(i), Label: c, Pixel: bs.center(i)})
		}
		return ticks
	}

	m, ok := v.mapping(v.lo, v.hi, false)
	if !ok || max < 1 {
		return nil
	}
	var major []float64
	if m.q == nil {
		major = []float64{m.constant}
	} else {
		major, _ = m.q.Ticks(moremath.TickOptions{Max: max})
	}
	ticks := make([]Tick, 0, len(major))
	for _, x := range major {
		ticks = append(ticks, Tick{Value: x, Label: formatValue(v.scale.kind, x), Pixel: m.forward(x)})
	}
	return ticks
}

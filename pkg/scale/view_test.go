package scale

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/scalekit/pkg/errors"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func linearView(t *testing.T, lo, hi, pxLo, pxHi float64) (*Scale, *View) {
	t.Helper()
	s := New(KindLinear)
	s.SetDomain(Numeric(lo, hi), s.Attach())
	v := NewView(s)
	if err := v.SetRange(pxLo, pxHi, 0); err != nil {
		t.Fatalf("SetRange() error = %v", err)
	}
	return s, v
}

func ordinalView(t *testing.T, padding float64, lo, hi float64, cats ...string) *View {
	t.Helper()
	s := New(KindOrdinal)
	s.SetDomain(Ordinal(cats...), s.Attach())
	v := NewView(s)
	if err := v.SetRange(lo, hi, padding); err != nil {
		t.Fatalf("SetRange() error = %v", err)
	}
	return v
}

func TestExpandDomain(t *testing.T) {
	_, v := linearView(t, 0, 100, 0, 500)
	if err := v.ExpandDomain(0, 500, 0, 750); err != nil {
		t.Fatalf("ExpandDomain() error = %v", err)
	}
	if got, want := v.Domain(), Numeric(0, 150); !got.equal(want) {
		t.Errorf("Domain() = %v, want %v", got, want)
	}
	if lo, hi := v.Range(); lo != 0 || hi != 750 {
		t.Errorf("Range() = [%v, %v], want [0, 750]", lo, hi)
	}
	// Screen positions are preserved.
	if got := v.Map(100); !approx(got, 500) {
		t.Errorf("Map(100) = %v, want 500", got)
	}
}

func TestExpandDomainReversed(t *testing.T) {
	s, v := linearView(t, 0, 100, 0, 500)
	s.Reverse()
	_ = v.ExpandDomain(0, 500, 0, 750)
	got := v.Domain()
	if !approx(got.First(), 100) || !approx(got.Last(), -50) {
		t.Errorf("Domain() = %v, want [100 -50]", got)
	}
}

func TestExpandDomainResetOnDomainChange(t *testing.T) {
	s, v := linearView(t, 0, 100, 0, 500)
	_ = v.ExpandDomain(0, 500, 0, 750)
	s.SetDomain(Numeric(0, 200), s.Attach())
	if got, want := v.Domain(), Numeric(0, 200); !got.equal(want) {
		t.Errorf("Domain() = %v, want %v", got, want)
	}
}

func TestMapInvert(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		kind   Kind
		domain Domain
		x, px  float64
	}{
		{"linear", KindLinear, Numeric(0, 100), 25, 75},
		{"linear reversed domain", KindLinear, Numeric(100, 0), 25, 225},
		{"log", KindLog, Numeric(1, 1000), 10, 100},
		{"temporal", KindTemporal, Temporal(t0, t0.Add(time.Hour)), toMillis(t0.Add(30 * time.Minute)), 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.kind)
			s.SetDomain(tt.domain, s.Attach())
			v := NewView(s)
			_ = v.SetRange(0, 300, 0)

			if got := v.Map(tt.x); !approx(got, tt.px) {
				t.Errorf("Map(%v) = %v, want %v", tt.x, got, tt.px)
			}
			if got := v.Invert(tt.px); !approx(got, tt.x) {
				t.Errorf("Invert(%v) = %v, want %v", tt.px, got, tt.x)
			}
			for _, px := range []float64{-40, 0, 17, 300, 420} {
				if got := v.Map(v.Invert(px)); !approx(got, px) {
					t.Errorf("Map(Invert(%v)) = %v", px, got)
				}
			}
		})
	}
}

func TestMapTime(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := New(KindTemporal)
	s.ComputeAndSetDomain(Times([]time.Time{t0, t0.Add(24 * time.Hour)}), s.Attach())
	v := NewView(s, WithRange(0, 240))

	if got := v.MapTime(t0.Add(6 * time.Hour)); !approx(got, 60) {
		t.Errorf("MapTime() = %v, want 60", got)
	}
	if got, want := v.InvertTime(120), t0.Add(12*time.Hour); got.Sub(want).Abs() > time.Microsecond {
		t.Errorf("InvertTime(120) = %v, want %v", got, want)
	}
}

func TestMapClamp(t *testing.T) {
	s := New(KindLinear)
	s.SetDomain(Numeric(0, 100), s.Attach())
	clamped := NewView(s, WithRange(0, 500), WithClamp(true))
	free := NewView(s, WithRange(0, 500))

	if got := clamped.Map(200); got != 500 {
		t.Errorf("clamped Map(200) = %v, want 500", got)
	}
	if got := free.Map(200); got != 1000 {
		t.Errorf("Map(200) = %v, want 1000", got)
	}
	// Inversion is never clamped.
	if got := clamped.Invert(1000); got != 200 {
		t.Errorf("clamped Invert(1000) = %v, want 200", got)
	}
}

func TestMapDegenerate(t *testing.T) {
	_, v := linearView(t, 5, 5, 0, 100)
	if got := v.Map(5); got != 50 {
		t.Errorf("Map(5) = %v, want 50", got)
	}
	if got := v.Invert(80); got != 5 {
		t.Errorf("Invert(80) = %v, want 5", got)
	}

	empty := NewView(New(KindLinear))
	if got := empty.Map(1); !math.IsNaN(got) {
		t.Errorf("Map() on empty domain = %v, want NaN", got)
	}
	if got := empty.InvertRange(0, 1); !got.IsEmpty() {
		t.Errorf("InvertRange() on empty domain = %v, want empty", got)
	}
}

func TestOrdinalInversion(t *testing.T) {
	v := ordinalView(t, 0, 0, 300, "a", "b", "c")

	if got := v.Bandwidth(); got != 100 {
		t.Errorf("Bandwidth() = %v, want 100", got)
	}
	if got := v.Offset(); got != 50 {
		t.Errorf("Offset() = %v, want 50", got)
	}

	tests := []struct {
		px   float64
		want string
	}{
		{250, "c"},
		{50, "a"},
		{-20, "a"},
		{149, "b"},
		{1000, "c"},
	}
	for _, tt := range tests {
		if got, ok := v.InvertCategory(tt.px); !ok || got != tt.want {
			t.Errorf("InvertCategory(%v) = %q, %v, want %q", tt.px, got, ok, tt.want)
		}
	}
}

func TestOrdinalInversionTie(t *testing.T) {
	v := ordinalView(t, 0, 0, 200, "a", "b")
	if got, _ := v.InvertCategory(100); got != "a" {
		t.Errorf("InvertCategory(100) = %q, want %q", got, "a")
	}
}

func TestOrdinalPadding(t *testing.T) {
	v := ordinalView(t, 0.5, 0, 300, "a", "b", "c")

	if got := v.Bandwidth(); got != 50 {
		t.Errorf("Bandwidth() = %v, want 50", got)
	}
	want := map[string]float64{"a": 25, "b": 125, "c": 225}
	for c, px := range want {
		if got, ok := v.MapCategory(c); !ok || got != px {
			t.Errorf("MapCategory(%q) = %v, want %v", c, got, px)
		}
	}
	if _, ok := v.MapCategory("zzz"); ok {
		t.Errorf("MapCategory(%q) ok = true, want false", "zzz")
	}
}

func TestOrdinalReversedRange(t *testing.T) {
	v := ordinalView(t, 0, 300, 0, "a", "b", "c")
	if got, _ := v.MapCategory("a"); got != 200 {
		t.Errorf("MapCategory(%q) = %v, want 200", "a", got)
	}
	if got, _ := v.InvertCategory(250); got != "a" {
		t.Errorf("InvertCategory(250) = %q, want %q", got, "a")
	}
}

func TestInvertRange(t *testing.T) {
	v := ordinalView(t, 0, 0, 300, "a", "b", "c")
	tests := []struct {
		name string
		a, b float64
		want []string
	}{
		{"two bands", 40, 160, []string{"a", "b"}},
		{"swapped", 160, 40, []string{"a", "b"}},
		{"closed", 50, 50, []string{"a"}},
		{"none", 60, 140, nil},
		{"all", -10, 400, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.InvertRange(tt.a, tt.b).Categories; !slices.Equal(got, tt.want) {
				t.Errorf("InvertRange(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	_, lv := linearView(t, 0, 100, 0, 500)
	if got := lv.InvertRange(100, 250); !approx(got.First(), 20) || !approx(got.Last(), 50) {
		t.Errorf("InvertRange(100, 250) = %v, want [20 50]", got)
	}
}

func TestOrdinalExpandDomain(t *testing.T) {
	v := ordinalView(t, 0, 0, 300, "a", "b", "c")
	if err := v.ExpandDomain(0, 300, 0, 450); err != nil {
		t.Fatalf("ExpandDomain() error = %v", err)
	}
	if _, outer := v.Padding(); outer != 1.5 {
		t.Errorf("outer padding = %v, want 1.5", outer)
	}
	if lo, hi := v.Range(); lo != 0 || hi != 450 {
		t.Errorf("Range() = [%v, %v], want [0, 450]", lo, hi)
	}
	if got := v.Domain().Categories; !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Domain() = %v, want categories unchanged", got)
	}

	// Bands stay centred in the new range.
	for i, want := range []float64{150, 225, 300} {
		if got := v.Ticks(0)[i].Pixel; !approx(got, want) {
			t.Errorf("band %d centre = %v, want %v", i, got, want)
		}
	}
}

func TestExpandDomainKeepsMidpoint(t *testing.T) {
	s, err := NewColorScale(KindLinear, Palette{Scheme: "RdBu"})
	if err != nil {
		t.Fatalf("NewColorScale() error = %v", err)
	}
	s.SetDomain(Numeric(0, 1000), s.Attach())
	v := NewView(s, WithRange(0, 500))

	if err := v.ExpandDomain(0, 500, 0, 1000); err != nil {
		t.Fatalf("ExpandDomain() error = %v", err)
	}
	got := v.Domain()
	mid, ok := got.Mid()
	if !ok || !approx(got.First(), 0) || !approx(mid, 500) || !approx(got.Last(), 2000) {
		t.Fatalf("Domain() = %v, want [0 500 2000]", got)
	}
	if px := v.Map(mid); !approx(px, 250) {
		t.Errorf("Map(mid) = %v, want 250", px)
	}
}

func TestSetRangeErrors(t *testing.T) {
	v := NewView(New(KindLinear))
	tests := []struct {
		name            string
		lo, hi, padding float64
		wantErr         bool
	}{
		{"ok", 0, 100, 0.1, false},
		{"descending", 100, 0, 0, false},
		{"zero width", 5, 5, 0, true},
		{"nan", math.NaN(), 1, 0, true},
		{"padding one", 0, 1, 1, true},
		{"negative padding", 0, 1, -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.SetRange(tt.lo, tt.hi, tt.padding)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidRange) {
				t.Errorf("SetRange() error code = %v, want %s", err, errors.ErrCodeInvalidRange)
			}
		})
	}
}

func TestTicks(t *testing.T) {
	_, v := linearView(t, 0, 100, 0, 500)
	ticks := v.Ticks(6)
	if len(ticks) == 0 || len(ticks) > 6 {
		t.Fatalf("len(Ticks(6)) = %d, want 1..6", len(ticks))
	}
	for _, tk := range ticks {
		if tk.Value < 0 || tk.Value > 100 {
			t.Errorf("tick %v outside domain", tk.Value)
		}
		if !approx(tk.Pixel, tk.Value*5) {
			t.Errorf("tick %v at pixel %v, want %v", tk.Value, tk.Pixel, tk.Value*5)
		}
		if tk.Label == "" {
			t.Errorf("tick %v has no label", tk.Value)
		}
	}

	ov := ordinalView(t, 0, 0, 300, "a", "b", "c")
	var labels []string
	for _, tk := range ov.Ticks(10) {
		labels = append(labels, tk.Label)
	}
	if !slices.Equal(labels, []string{"a", "b", "c"}) {
		t.Errorf("ordinal tick labels = %v, want [a b c]", labels)
	}
}

func TestViewClose(t *testing.T) {
	s, v := linearView(t, 0, 100, 0, 500)
	_ = v.ExpandDomain(0, 500, 0, 750)
	v.Close()
	v.Close()
	s.SetDomain(Numeric(-10, 1), s.Attach())
	// A closed view keeps its installed domain.
	if got, want := v.Domain(), Numeric(0, 150); !got.equal(want) {
		t.Errorf("Domain() = %v, want %v", got, want)
	}
}

package scale

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Domain is the data-space extent of a scale, or one contributor's part of
// it.
//
// Continuous and temporal domains use Values: [min, max], or [min, mid, max]
// for a divergent scale, in reversed order when the scale is reversed.
// Temporal values are milliseconds since the Unix epoch. Ordinal domains
// use Categories. The zero Domain is empty.
type Domain struct {
	Values     []float64
	Categories []string
}

// Numeric returns a two-element continuous domain.
func Numeric(lo, hi float64) Domain {
	return Domain{Values: []float64{lo, hi}}
}

// Temporal returns a two-element temporal domain.
func Temporal(lo, hi time.Time) Domain {
	return Domain{Values: []float64{toMillis(lo), toMillis(hi)}}
}

// Ordinal returns a categorical domain. Duplicates are dropped, keeping the
// first occurrence.
func Ordinal(categories ...string) Domain {
	return Domain{Categories: dedupe(nil, nil, categories)}
}

// Len returns the number of values or categories.
func (d Domain) Len() int {
	if d.Categories != nil {
		return len(d.Categories)
	}
	return len(d.Values)
}

// IsEmpty reports whether the domain holds no values.
func (d Domain) IsEmpty() bool {
	return len(d.Values) == 0 && len(d.Categories) == 0
}

// First returns the first value of a continuous domain, or NaN.
func (d Domain) First() float64 {
	if len(d.Values) == 0 {
		return math.NaN()
	}
	return d.Values[0]
}

// Last returns the last value of a continuous domain, or NaN.
func (d Domain) Last() float64 {
	if len(d.Values) == 0 {
		return math.NaN()
	}
	return d.Values[len(d.Values)-1]
}

// Mid returns the midpoint of a divergent domain.
func (d Domain) Mid() (float64, bool) {
	if len(d.Values) != 3 {
		return 0, false
	}
	return d.Values[1], true
}

// Times converts a temporal domain back to time instants.
func (d Domain) Times() []time.Time {
	if len(d.Values) == 0 {
		return nil
	}
	out := make([]time.Time, len(d.Values))
	for i, v := range d.Values {
		out[i] = fromMillis(v)
	}
	return out
}

// Clone returns a deep copy of d.
func (d Domain) Clone() Domain {
	return Domain{
		Values:     slices.Clone(d.Values),
		Categories: slices.Clone(d.Categories),
	}
}

// String formats the domain for logs and CLI output.
func (d Domain) String() string {
	if d.Categories != nil {
		return "[" + strings.Join(d.Categories, " ") + "]"
	}
	parts := make([]string, len(d.Values))
	for i, v := range d.Values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// equal compares element-wise. NaN equals NaN so that a domain holding an
// explicit NaN never looks perpetually changed.
func (d Domain) equal(o Domain) bool {
	if len(d.Values) != len(o.Values) || len(d.Categories) != len(o.Categories) {
		return false
	}
	for i, v := range d.Values {
		w := o.Values[i]
		if v != w && !(math.IsNaN(v) && math.IsNaN(w)) {
			return false
		}
	}
	return slices.Equal(d.Categories, o.Categories)
}

// sameSet compares categories ignoring order.
func (d Domain) sameSet(o Domain) bool {
	if len(d.Categories) != len(o.Categories) {
		return false
	}
	seen := make(map[string]struct{}, len(d.Categories))
	for _, c := range d.Categories {
		seen[c] = struct{}{}
	}
	for _, c := range o.Categories {
		if _, ok := seen[c]; !ok {
			return false
		}
	}
	return true
}

// reversed returns a copy of d in reverse order.
func (d Domain) reversed() Domain {
	r := d.Clone()
	slices.Reverse(r.Values)
	slices.Reverse(r.Categories)
	return r
}

// dedupe appends the values of src not yet in seen to dst.
func dedupe(dst []string, seen map[string]struct{}, src []string) []string {
	if seen == nil {
		seen = make(map[string]struct{}, len(src))
	}
	if dst == nil {
		dst = make([]string, 0, len(src))
	}
	for _, c := range src {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		dst = append(dst, c)
	}
	return dst
}

// toMillis converts t to fractional milliseconds since the Unix epoch.
func toMillis(t time.Time) float64 {
	return float64(t.Unix())*1e3 + float64(t.Nanosecond())/1e6
}

// fromMillis is the inverse of toMillis. Whole milliseconds round-trip
// exactly.
func fromMillis(ms float64) time.Time {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}
	}
	sec := math.Floor(ms / 1e3)
	nsec := math.Round((ms - sec*1e3) * 1e6)
	return time.Unix(int64(sec), int64(nsec)).UTC()
}

// formatValue formats a domain value for tick labels.
func formatValue(k Kind, v float64) string {
	if k == KindTemporal {
		return fromMillis(v).Format(time.RFC3339)
	}
	return fmt.Sprintf("%.6g", v)
}

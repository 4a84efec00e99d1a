package scale

import (
	"fmt"
	"math"

	"github.com/matzehuels/scalekit/pkg/errors"
)

// policy is the kind-specific part of domain aggregation. The set of
// implementations is closed: policyFor is the only constructor.
type policy interface {
	// extent derives a partial domain from raw samples.
	extent(s Samples) (Domain, []rejection)

	// check lists the values of a precomputed partial domain that merge
	// will skip.
	check(d Domain) []rejection

	// merge folds all contribution slots and explicit overrides into a
	// canonical domain, before reversal.
	merge(slots []slot, o overrides, divergent bool) Domain
}

// rejection is one value excluded from a fold.
type rejection struct {
	value float64
	raw   string
	code  errors.Code
}

// overrides is the explicit configuration surface of a scale. Nil bounds
// are derived from data.
type overrides struct {
	min, max, mid *float64
	categories    []string
	hasCategories bool
}

func policyFor(k Kind) policy {
	switch k {
	case KindLinear, KindTemporal:
		return numericPolicy{kind: k}
	case KindLog:
		return numericPolicy{kind: k, positive: true}
	case KindOrdinal:
		return ordinalPolicy{}
	}
	panic(fmt.Sprintf("scale: unknown kind %d", int(k)))
}

// =============================================================================
// Continuous and temporal
// =============================================================================

type numericPolicy struct {
	kind     Kind
	positive bool
}

// valid reports whether v may take part in a min/max fold.
func (p numericPolicy) valid(v float64) (errors.Code, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.ErrCodeInvalidInput, false
	}
	if p.positive && v <= 0 {
		return errors.ErrCodeInvalidDomain, false
	}
	return "", true
}

func (p numericPolicy) extent(s Samples) (Domain, []rejection) {
	var rejected []rejection
	values := numbers(s, func(raw string) {
		rejected = append(rejected, rejection{value: math.NaN(), raw: raw, code: errors.ErrCodeMismatchedKind})
	})

	lo, hi := math.NaN(), math.NaN()
	for _, v := range values {
		if code, ok := p.valid(v); !ok {
			rejected = append(rejected, rejection{value: v, code: code})
			continue
		}
		if v < lo || math.IsNaN(lo) {
			lo = v
		}
		if v > hi || math.IsNaN(hi) {
			hi = v
		}
	}
	if math.IsNaN(lo) {
		return Domain{}, rejected
	}
	return Numeric(lo, hi), rejected
}

func (p numericPolicy) check(d Domain) []rejection {
	var rejected []rejection
	for _, v := range d.Values {
		if code, ok := p.valid(v); !ok {
			rejected = append(rejected, rejection{value: v, code: code})
		}
	}
	for _, c := range d.Categories {
		rejected = append(rejected, rejection{value: math.NaN(), raw: c, code: errors.ErrCodeMismatchedKind})
	}
	return rejected
}

// merge takes the minimum of every slot's first element and the maximum of
// every slot's second element. A one-element slot supplies both. A bound
// that fails valid is skipped; the other bound of the slot still counts.
func (p numericPolicy) merge(slots []slot, o overrides, divergent bool) Domain {
	lo, hi := math.NaN(), math.NaN()
	for _, sl := range slots {
		vs := sl.domain.Values
		if len(vs) == 0 {
			continue
		}
		first, second := vs[0], vs[0]
		if len(vs) > 1 {
			second = vs[1]
		}
		if _, ok := p.valid(first); ok && (first < lo || math.IsNaN(lo)) {
			lo = first
		}
		if _, ok := p.valid(second); ok && (second > hi || math.IsNaN(hi)) {
			hi = second
		}
	}
	if o.min != nil {
		lo = *o.min
	}
	if o.max != nil {
		hi = *o.max
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Domain{}
	}
	if !divergent {
		return Numeric(lo, hi)
	}
	mid := lo + (hi-lo)/2
	if o.mid != nil {
		mid = *o.mid
	}
	return Domain{Values: []float64{lo, mid, hi}}
}

// =============================================================================
// Ordinal
// =============================================================================

type ordinalPolicy struct{}

func (ordinalPolicy) extent(s Samples) (Domain, []rejection) {
	cats := labels(s)
	if len(cats) == 0 {
		return Domain{}, nil
	}
	return Ordinal(cats...), nil
}

func (ordinalPolicy) check(Domain) []rejection { return nil }

func (ordinalPolicy) merge(slots []slot, o overrides, _ bool) Domain {
	if o.hasCategories {
		return Domain{Categories: dedupe(nil, nil, o.categories)}
	}
	seen := make(map[string]struct{})
	var cats []string
	for _, sl := range slots {
		cats = dedupe(cats, seen, categoriesOf(sl.domain))
	}
	if len(cats) == 0 {
		return Domain{}
	}
	return Domain{Categories: cats}
}

// categoriesOf returns d's categories, labelling numeric values when d was
// built as a continuous domain.
func categoriesOf(d Domain) []string {
	if d.Categories != nil {
		return d.Categories
	}
	return labels(Floats(d.Values))
}

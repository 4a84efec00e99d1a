package scale

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/observability"
)

// Scale owns the canonical domain of one axis or color scale.
//
// The domain is always a pure function of the contribution slots, the
// explicit overrides, the palette's divergence and the reverse flag. It is
// recomputed synchronously on every write; observers run afterwards.
type Scale struct {
	name   string
	kind   Kind
	policy policy
	logger *log.Logger

	contributions map[ContributorID]Domain
	live          map[ContributorID]struct{}
	nextSeq       uint64

	domain    Domain
	reverse   bool
	overrides overrides
	palette   *Palette
	divergent bool

	observers map[EventKind][]*observer
}

// New creates a scale of the given kind with an empty domain. It panics if
// kind is not one of the declared kinds.
func New(kind Kind, opts ...Option) *Scale {
	s := &Scale{
		kind:          kind,
		policy:        policyFor(kind),
		logger:        discardLogger(),
		contributions: make(map[ContributorID]Domain),
		live:          make(map[ContributorID]struct{}),
		observers:     make(map[EventKind][]*observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.name == "" {
		s.name = kind.String()
	}
	return s
}

// NewColorScale creates a scale with a palette. An empty palette uses the
// default scheme for the kind.
func NewColorScale(kind Kind, p Palette, opts ...Option) (*Scale, error) {
	s := New(kind, opts...)
	np, err := p.normalize(kind)
	if err != nil {
		return nil, err
	}
	s.palette = &np
	s.divergent = kind.Continuous() && np.Divergent()
	return s, nil
}

// Name returns the scale's name.
func (s *Scale) Name() string { return s.name }

// Kind returns the scale's kind.
func (s *Scale) Kind() Kind { return s.kind }

// Domain returns a copy of the canonical domain.
func (s *Scale) Domain() Domain { return s.domain.Clone() }

// Reversed reports whether the domain is reversed.
func (s *Scale) Reversed() bool { return s.reverse }

// =============================================================================
// Contributions
// =============================================================================

// SetDomain stores d as id's partial domain, replacing any earlier one, and
// recomputes. Values the scale's kind cannot fold (NaN, or non-positive on
// a log scale) are kept in the slot but skipped by the fold and reported.
// Writes through an id that is not attached are dropped.
func (s *Scale) SetDomain(d Domain, id ContributorID) {
	if !s.accept(id) {
		return
	}
	s.report(id, s.policy.check(d))
	s.contributions[id] = d.Clone()
	s.UpdateDomain()
}

// DelDomain removes id's slot and recomputes. It is a no-op when id has no
// slot.
func (s *Scale) DelDomain(id ContributorID) {
	if _, ok := s.contributions[id]; !ok {
		return
	}
	delete(s.contributions, id)
	s.UpdateDomain()
}

// ComputeAndSetDomain derives id's partial domain from raw samples and
// stores it: [min, max] for continuous and temporal scales, the distinct
// values in first-seen order for ordinal scales. No samples yields an empty
// partial domain.
func (s *Scale) ComputeAndSetDomain(samples Samples, id ContributorID) {
	if !s.accept(id) {
		return
	}
	d, rejected := s.policy.extent(samples)
	s.report(id, rejected)
	s.contributions[id] = d
	s.UpdateDomain()
}

// UpdateDomain recomputes the canonical domain and emits
// EventDomainChanged if it differs from the previous one. Ordinal domains
// compare as sets. UpdateDomain never fails: a scale with no usable input
// has an empty domain.
func (s *Scale) UpdateDomain() {
	s.recompute(false)
}

// recompute folds the slots. With ordered set, ordinal domains compare
// element-wise so that a reordering alone is reported.
func (s *Scale) recompute(ordered bool) {
	start := time.Now()
	next := s.policy.merge(s.slots(), s.overrides, s.divergent)
	if s.reverse {
		next = next.reversed()
	}

	reordered := !next.equal(s.domain)
	changed := reordered
	if s.kind == KindOrdinal && !ordered {
		changed = !next.sameSet(s.domain)
	}
	observability.Scale().OnDomainRecomputed(s.name, len(s.contributions), changed, time.Since(start))

	s.domain = next
	if !changed {
		// A reordering without a set change only moves the ticks.
		if reordered {
			s.emit(Event{Kind: EventSetTicks, Domain: s.domain.Clone(), Ticks: s.domain.Clone().Categories})
		}
		return
	}
	s.logger.Debug("domain changed", "scale", s.name, "domain", next, "contributors", len(s.contributions))
	s.notifyDomain()
}

func (s *Scale) notifyDomain() {
	s.emit(Event{Kind: EventDomainChanged, Domain: s.domain.Clone()})
	if s.kind == KindOrdinal {
		s.emit(Event{Kind: EventSetTicks, Domain: s.domain.Clone(), Ticks: s.domain.Clone().Categories})
	}
}

// accept reports whether id may write to s, reporting it otherwise.
func (s *Scale) accept(id ContributorID) bool {
	if s.Attached(id) {
		return true
	}
	observability.Scale().OnStaleWrite(s.name, id.String())
	s.logger.Warn("write from detached contributor ignored", "scale", s.name, "contributor", id, "code", errors.ErrCodeStaleContributor)
	return false
}

func (s *Scale) report(id ContributorID, rejected []rejection) {
	for _, r := range rejected {
		observability.Scale().OnSampleExcluded(s.name, id.String(), r.value, string(r.code))
		if r.raw != "" {
			s.logger.Warn("sample excluded from domain", "scale", s.name, "contributor", id, "sample", r.raw, "code", r.code)
			continue
		}
		s.logger.Warn("sample excluded from domain", "scale", s.name, "contributor", id, "value", r.value, "code", r.code)
	}
}

// =============================================================================
// Reversal
// =============================================================================

// Reverse toggles the reverse flag and reorders the current domain. The
// contributions are untouched. EventDomainChanged is always emitted.
func (s *Scale) Reverse() {
	s.reverse = !s.reverse
	s.domain = s.domain.reversed()
	s.logger.Debug("domain reversed", "scale", s.name, "reverse", s.reverse, "domain", s.domain)
	s.notifyDomain()
}

// SetReverse sets the reverse flag, reversing the domain if it changes.
func (s *Scale) SetReverse(reverse bool) {
	if reverse != s.reverse {
		s.Reverse()
	}
}

// =============================================================================
// Explicit overrides
// =============================================================================

// SetMin fixes the lower bound. The upper bound stays data-derived unless
// also set.
func (s *Scale) SetMin(v float64) error {
	return s.setBound(&s.overrides.min, "min", v)
}

// SetMax fixes the upper bound.
func (s *Scale) SetMax(v float64) error {
	return s.setBound(&s.overrides.max, "max", v)
}

// SetMid fixes the midpoint of a divergent scale. It has no effect on the
// domain until the scale is divergent.
func (s *Scale) SetMid(v float64) error {
	return s.setBound(&s.overrides.mid, "mid", v)
}

// SetMinTime fixes the lower bound of a temporal scale.
func (s *Scale) SetMinTime(t time.Time) error {
	if err := s.requireTemporal("min"); err != nil {
		return err
	}
	return s.SetMin(toMillis(t))
}

// SetMaxTime fixes the upper bound of a temporal scale.
func (s *Scale) SetMaxTime(t time.Time) error {
	if err := s.requireTemporal("max"); err != nil {
		return err
	}
	return s.SetMax(toMillis(t))
}

// SetMidTime fixes the midpoint of a divergent temporal scale.
func (s *Scale) SetMidTime(t time.Time) error {
	if err := s.requireTemporal("mid"); err != nil {
		return err
	}
	return s.SetMid(toMillis(t))
}

// ClearMin returns the lower bound to data-derived mode.
func (s *Scale) ClearMin() { s.clearBound(&s.overrides.min) }

// ClearMax returns the upper bound to data-derived mode.
func (s *Scale) ClearMax() { s.clearBound(&s.overrides.max) }

// ClearMid returns the midpoint to data-derived mode.
func (s *Scale) ClearMid() { s.clearBound(&s.overrides.mid) }

// SetCategories fixes the domain of an ordinal scale. The list wins over
// every contribution; duplicates are dropped.
func (s *Scale) SetCategories(categories ...string) error {
	if s.kind != KindOrdinal {
		return errors.New(errors.ErrCodeMismatchedKind, "scale %q: categories require an ordinal scale, got %s", s.name, s.kind)
	}
	s.overrides.categories = dedupe(nil, nil, categories)
	s.overrides.hasCategories = true
	s.recompute(true)
	return nil
}

// ClearCategories returns an ordinal scale to the union of contributions.
func (s *Scale) ClearCategories() {
	if !s.overrides.hasCategories {
		return
	}
	s.overrides.categories = nil
	s.overrides.hasCategories = false
	s.recompute(true)
}

func (s *Scale) setBound(dst **float64, which string, v float64) error {
	if s.kind == KindOrdinal {
		return errors.New(errors.ErrCodeUnsupported, "scale %q: ordinal scales have no %s", s.name, which)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New(errors.ErrCodeInvalidDomain, "scale %q: %s must be finite, got %v", s.name, which, v)
	}
	if s.kind == KindLog && v <= 0 {
		return errors.New(errors.ErrCodeInvalidDomain, "scale %q: log scale %s must be positive, got %v", s.name, which, v)
	}
	*dst = &v
	s.UpdateDomain()
	return nil
}

func (s *Scale) clearBound(dst **float64) {
	if *dst == nil {
		return
	}
	*dst = nil
	s.UpdateDomain()
}

func (s *Scale) requireTemporal(which string) error {
	if s.kind != KindTemporal {
		return errors.New(errors.ErrCodeMismatchedKind, "scale %q: time %s requires a temporal scale, got %s", s.name, which, s.kind)
	}
	return nil
}

// Package scale implements the domain aggregation engine behind scalekit's
// axes and color scales.
//
// # Overview
//
// A [Scale] owns one canonical data domain. Many marks write into it
// independently, each through its own contribution slot keyed by a
// [ContributorID]; the scale folds every slot into a single domain and
// notifies observers when, and only when, that domain actually changes.
//
//	x := scale.New(scale.KindLinear, scale.WithName("x"))
//	a, b := x.Attach(), x.Attach()
//	x.SetDomain(scale.Numeric(2, 10), a)
//	x.SetDomain(scale.Numeric(-5, 8), b)
//	x.Domain() // [-5 10]
//	x.Detach(a)
//	x.Domain() // [-5 8]
//
// # Kinds
//
// The merge behavior depends on the scale's [Kind]:
//
//   - [KindLinear]: plain min/max over contributions
//   - [KindLog]: min/max over strictly positive values; non-positive values
//     are excluded from the fold (and reported) rather than failing it
//   - [KindTemporal]: min/max over time instants, carried as milliseconds
//     since the Unix epoch
//   - [KindOrdinal]: set union of category lists, ordered by first
//     observation over contributors in attach order
//
// Explicit overrides ([Scale.SetMin], [Scale.SetMax], [Scale.SetCategories])
// replace the data-derived parts of the domain. Recomputation is total: bad
// samples are dropped from the fold, an empty domain is a valid result, and
// nothing in [Scale.UpdateDomain] panics or returns an error.
//
// # Color Scales
//
// A scale with a [Palette] is a color scale. A palette with more than two
// explicit colors (or a diverging scheme such as "RdBu") makes a continuous
// scale divergent: its domain becomes [min, mid, max]. [Scale.ColorRange]
// resolves concrete color stops from the current domain. Palette changes
// emit [EventColorRangeChanged], separately from [EventDomainChanged].
//
// # Views
//
// A [View] maps a scale's domain onto a pixel range. It supports forward
// mapping, inversion of single pixels and pixel intervals, and
// [View.ExpandDomain], which re-derives the domain after a resize so that
// existing screen positions keep pointing at the same data. Ordinal views
// partition the range into equal bands.
//
// # Concurrency
//
// Scales and views are not safe for concurrent use. They are designed for a
// single event loop: every mutation runs to completion, including
// recomputation, before any observer is called.
package scale

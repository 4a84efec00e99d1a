// Package pkg provides the core libraries for Scalekit, the scale and
// domain engine of a reactive plotting toolkit.
//
// # Overview
//
// A figure is made of scales, marks and views. Marks hold data and bind
// their channels (x, y, color, ...) to shared scales; each scale merges the
// contributions of every mark bound to it into one domain; views map a
// scale's domain onto a pixel range. The pkg directory is organized as:
//
//  1. [scale] - Scales, domain aggregation, color ranges and views
//  2. [mark] - Data-bearing marks that contribute to scales
//  3. [figure] - TOML figure files and building live figures from them
//  4. [errors] - Structured error codes and validation helpers
//  5. [observability] - Hooks for domain, mark and color events
//  6. [buildinfo] - Build-time version information
//
// # Architecture
//
// The typical data flow through Scalekit:
//
//	figure.toml
//	     ↓
//	[figure] package (decode, validate, build)
//	     ↓
//	[mark] package (SetData → per-channel samples)
//	     ↓
//	[scale] package (per-contributor domains → merged domain → events)
//	     ↓
//	[scale.View] (pixel mapping, inversion, ticks, resizing)
//
// # Quick Start
//
//	x := scale.New(scale.KindLinear, scale.WithName("x"))
//	m := mark.New("scatter")
//	m.Bind(mark.X, x)
//	m.SetData(map[mark.Channel]mark.Column{mark.X: mark.Floats(2, 10, 4)})
//
//	v := scale.NewView(x, scale.WithRange(0, 500))
//	px := v.Map(6) // 250
//
// [scale]: github.com/matzehuels/scalekit/pkg/scale
// [mark]: github.com/matzehuels/scalekit/pkg/mark
// [figure]: github.com/matzehuels/scalekit/pkg/figure
// [errors]: github.com/matzehuels/scalekit/pkg/errors
// [observability]: github.com/matzehuels/scalekit/pkg/observability
// [buildinfo]: github.com/matzehuels/scalekit/pkg/buildinfo
package pkg

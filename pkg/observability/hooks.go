// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about domain recomputation, contained input failures, and
// color range resolution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Unlike the scale engine's own observers (which notify marks and views of
// model changes), hooks are process-wide and intended for instrumentation.
// Hook methods take no context: the scale engine is synchronous and never
// blocks, so there is nothing to cancel or trace across.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScaleHooks(&myScaleHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scale().OnSampleExcluded("y", id.String(), -3, "INVALID_DOMAIN")
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Scale Hooks
// =============================================================================

// ScaleHooks receives events from domain aggregation.
type ScaleHooks interface {
	// OnDomainRecomputed records a domain recomputation and whether it
	// produced a different domain.
	OnDomainRecomputed(scale string, contributors int, changed bool, duration time.Duration)

	// OnSampleExcluded records a value dropped from a domain fold.
	// reason is an error code such as "INVALID_DOMAIN".
	OnSampleExcluded(scale, contributor string, value float64, reason string)

	// OnStaleWrite records a write through a contributor id that is not
	// attached to the scale.
	OnStaleWrite(scale, contributor string)
}

// =============================================================================
// Mark Hooks
// =============================================================================

// MarkHooks receives events from marks feeding data into scales.
type MarkHooks interface {
	// OnSamplesTruncated records paired sample arrays cut to a common length.
	OnSamplesTruncated(mark string, from, to int)

	// OnRedrawRequested records a mark invalidated by a scale change.
	OnRedrawRequested(mark, scale string)
}

// =============================================================================
// Color Hooks
// =============================================================================

// ColorHooks receives events from color range resolution.
type ColorHooks interface {
	// OnColorRangeResolved records a palette resolved into concrete colors.
	OnColorRangeResolved(scale string, colors int, divergent bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScaleHooks is a no-op implementation of ScaleHooks.
type NoopScaleHooks struct{}

func (NoopScaleHooks) OnDomainRecomputed(string, int, bool, time.Duration) {}
func (NoopScaleHooks) OnSampleExcluded(string, string, float64, string)    {}
func (NoopScaleHooks) OnStaleWrite(string, string)                         {}

// NoopMarkHooks is a no-op implementation of MarkHooks.
type NoopMarkHooks struct{}

func (NoopMarkHooks) OnSamplesTruncated(string, int, int) {}
func (NoopMarkHooks) OnRedrawRequested(string, string)    {}

// NoopColorHooks is a no-op implementation of ColorHooks.
type NoopColorHooks struct{}

func (NoopColorHooks) OnColorRangeResolved(string, int, bool) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scaleHooks ScaleHooks = NoopScaleHooks{}
	markHooks  MarkHooks  = NoopMarkHooks{}
	colorHooks ColorHooks = NoopColorHooks{}
	hooksMu    sync.RWMutex
)

// SetScaleHooks registers custom scale hooks.
// This should be called once at application startup before any scale is created.
func SetScaleHooks(h ScaleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scaleHooks = h
	}
}

// SetMarkHooks registers custom mark hooks.
func SetMarkHooks(h MarkHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		markHooks = h
	}
}

// SetColorHooks registers custom color hooks.
func SetColorHooks(h ColorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		colorHooks = h
	}
}

// Scale returns the registered scale hooks.
func Scale() ScaleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scaleHooks
}

// Mark returns the registered mark hooks.
func Mark() MarkHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return markHooks
}

// Color returns the registered color hooks.
func Color() ColorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return colorHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scaleHooks = NoopScaleHooks{}
	markHooks = NoopMarkHooks{}
	colorHooks = NoopColorHooks{}
}

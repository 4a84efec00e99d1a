package scale

import "slices"

// EventKind names a scale notification.
type EventKind string

// Notifications emitted by a Scale.
const (
	// EventDomainChanged fires after a recomputation that produced a
	// different domain, and on every reversal.
	EventDomainChanged EventKind = "domain_changed"

	// EventColorRangeChanged fires when the palette changes.
	EventColorRangeChanged EventKind = "color_scale_range_changed"

	// EventHighlightAxis and EventUnhighlightAxis are pass-through hints
	// for axes bound to the scale.
	EventHighlightAxis   EventKind = "highlight_axis"
	EventUnhighlightAxis EventKind = "unhighlight_axis"

	// EventSetTicks carries the ordinal category list after it changes.
	EventSetTicks EventKind = "set_ticks"
)

// Event is passed to observers. Domain is a copy of the scale's domain at
// emit time; Ticks is set for EventSetTicks only.
type Event struct {
	Kind   EventKind
	Scale  *Scale
	Domain Domain
	Ticks  []string
}

// Handler receives scale notifications.
type Handler func(Event)

type observer struct {
	h Handler
}

// Subscribe registers h for notifications of the given kind and returns a
// function that removes it. Handlers run synchronously, in subscription
// order, after the scale has finished updating.
func (s *Scale) Subscribe(kind EventKind, h Handler) (unsubscribe func()) {
	o := &observer{h: h}
	s.observers[kind] = append(s.observers[kind], o)
	return func() {
		s.observers[kind] = slices.DeleteFunc(s.observers[kind], func(x *observer) bool { return x == o })
	}
}

// emit notifies the observers of ev.Kind. The list is copied first so that
// handlers may subscribe or unsubscribe while running.
func (s *Scale) emit(ev Event) {
	ev.Scale = s
	for _, o := range slices.Clone(s.observers[ev.Kind]) {
		o.h(ev)
	}
}

// HighlightAxis asks axes bound to s to highlight themselves.
func (s *Scale) HighlightAxis() {
	s.emit(Event{Kind: EventHighlightAxis})
}

// UnhighlightAxis clears a previous HighlightAxis.
func (s *Scale) UnhighlightAxis() {
	s.emit(Event{Kind: EventUnhighlightAxis})
}

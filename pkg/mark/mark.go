// Package mark provides a minimal mark: the contributor side of the scale
// engine.
//
// A [Mark] binds data columns to scales by channel (x, y, color, ...). On
// every [Mark.SetData] it truncates the columns to a common length, feeds
// each bound column into its scale through the mark's own contribution slot,
// and counts a redraw whenever a bound scale reports a change. Drawing
// itself is left to the embedding renderer.
//
//	x := scale.New(scale.KindLinear)
//	m := mark.New("scatter")
//	m.Bind(mark.X, x)
//	m.SetData(map[mark.Channel]mark.Column{
//	    mark.X: mark.Floats(1, 2, 3),
//	    mark.Y: mark.Floats(4, 5),
//	})
//	x.Domain() // [1 2], x was truncated to match y
package mark

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/observability"
	"github.com/matzehuels/scalekit/pkg/scale"
)

// Channel names a visual property of a mark.
type Channel string

// Common channels.
const (
	X       Channel = "x"
	Y       Channel = "y"
	Color   Channel = "color"
	Size    Channel = "size"
	Opacity Channel = "opacity"
)

// binding is one channel's link to a scale.
type binding struct {
	scale       *scale.Scale
	id          scale.ContributorID
	unsubscribe []func()
}

// Mark is a data series drawn through one or more scales.
type Mark struct {
	name     string
	logger   *log.Logger
	bindings map[Channel]*binding
	data     map[Channel]Column
	redraws  int
}

// Option configures a Mark.
type Option func(*Mark)

// WithLogger sets the logger. Marks log truncated data at warn level.
func WithLogger(l *log.Logger) Option {
	return func(m *Mark) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates an unbound mark.
func New(name string, opts ...Option) *Mark {
	m := &Mark{
		name:     name,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		bindings: make(map[Channel]*binding),
		data:     make(map[Channel]Column),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the mark's name.
func (m *Mark) Name() string { return m.name }

// Bind attaches the mark to s for channel ch, replacing any previous scale
// on ch. Data already set for ch is contributed immediately.
func (m *Mark) Bind(ch Channel, s *scale.Scale) {
	m.Unbind(ch)
	b := &binding{scale: s, id: s.Attach()}
	redraw := func(scale.Event) { m.requestRedraw(s) }
	b.unsubscribe = []func(){
		s.Subscribe(scale.EventDomainChanged, redraw),
		s.Subscribe(scale.EventColorRangeChanged, redraw),
	}
	m.bindings[ch] = b
	if col, ok := m.data[ch]; ok {
		s.ComputeAndSetDomain(col.samples(), b.id)
	}
}

// Unbind releases ch's contribution slot on its scale.
func (m *Mark) Unbind(ch Channel) {
	b, ok := m.bindings[ch]
	if !ok {
		return
	}
	delete(m.bindings, ch)
	for _, u := range b.unsubscribe {
		u()
	}
	b.scale.Detach(b.id)
}

// Detach unbinds every channel.
func (m *Mark) Detach() {
	for _, ch := range m.Channels() {
		m.Unbind(ch)
	}
}

// Channels returns the bound channels, sorted.
func (m *Mark) Channels() []Channel {
	chs := make([]Channel, 0, len(m.bindings))
	for ch := range m.bindings {
		chs = append(chs, ch)
	}
	slices.Sort(chs)
	return chs
}

// Scale returns the scale bound to ch.
func (m *Mark) Scale(ch Channel) (*scale.Scale, bool) {
	b, ok := m.bindings[ch]
	if !ok {
		return nil, false
	}
	return b.scale, true
}

// Contributor returns the contributor id the mark holds on ch's scale.
func (m *Mark) Contributor(ch Channel) (scale.ContributorID, bool) {
	b, ok := m.bindings[ch]
	if !ok {
		return scale.ContributorID{}, false
	}
	return b.id, true
}

// SetData replaces the mark's data. Columns of unequal length are truncated
// to the shortest one. Each bound channel then contributes its column's
// extent to its scale; a bound channel missing from data contributes an
// empty domain.
func (m *Mark) SetData(data map[Channel]Column) {
	cols, from, to := Truncate(data)
	if from != to {
		observability.Mark().OnSamplesTruncated(m.name, from, to)
		m.logger.Warn("paired columns truncated", "mark", m.name, "from", from, "to", to, "code", errors.ErrCodeMismatchedLength)
	}
	m.data = cols
	for _, ch := range m.Channels() {
		b := m.bindings[ch]
		b.scale.ComputeAndSetDomain(m.data[ch].samples(), b.id)
	}
}

// Data returns the (truncated) column stored for ch.
func (m *Mark) Data(ch Channel) (Column, bool) {
	col, ok := m.data[ch]
	return col, ok
}

// Len returns the common length of the mark's columns.
func (m *Mark) Len() int {
	for _, col := range m.data {
		return col.Len()
	}
	return 0
}

// Redraws returns how many times a bound scale invalidated the mark.
func (m *Mark) Redraws() int { return m.redraws }

func (m *Mark) requestRedraw(s *scale.Scale) {
	m.redraws++
	observability.Mark().OnRedrawRequested(m.name, s.Name())
}

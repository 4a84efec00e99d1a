package mark

import (
	"slices"
	"time"

	"github.com/matzehuels/scalekit/pkg/scale"
)

// Column is one channel's data. Exactly one of the slices is used.
type Column struct {
	Floats  []float64
	Times   []time.Time
	Strings []string
}

// Floats returns a numeric column.
func Floats(v ...float64) Column { return Column{Floats: v} }

// Times returns a temporal column.
func Times(v ...time.Time) Column { return Column{Times: v} }

// Strings returns a categorical column.
func Strings(v ...string) Column { return Column{Strings: v} }

// Len returns the number of rows.
func (c Column) Len() int {
	switch {
	case c.Times != nil:
		return len(c.Times)
	case c.Strings != nil:
		return len(c.Strings)
	}
	return len(c.Floats)
}

// head returns the first n rows. The result has no spare capacity, so an
// append to it never writes into c.
func (c Column) head(n int) Column {
	switch {
	case c.Times != nil:
		return Column{Times: slices.Clip(c.Times[:n])}
	case c.Strings != nil:
		return Column{Strings: slices.Clip(c.Strings[:n])}
	}
	if c.Floats == nil {
		return c
	}
	return Column{Floats: slices.Clip(c.Floats[:n])}
}

func (c Column) samples() scale.Samples {
	switch {
	case c.Times != nil:
		return scale.Times(c.Times)
	case c.Strings != nil:
		return scale.Strings(c.Strings)
	}
	return scale.Floats(c.Floats)
}

// Truncate cuts every column to the length of the shortest one. It returns
// the truncated columns with the longest and the common length; from equals
// to when nothing was cut. The input map is not modified.
func Truncate(cols map[Channel]Column) (out map[Channel]Column, from, to int) {
	out = make(map[Channel]Column, len(cols))
	if len(cols) == 0 {
		return out, 0, 0
	}
	to = -1
	for _, c := range cols {
		n := c.Len()
		if n > from {
			from = n
		}
		if to < 0 || n < to {
			to = n
		}
	}
	for ch, c := range cols {
		out[ch] = c.head(to)
	}
	return out, from, to
}

package scale

import (
	"strconv"
	"strings"
	"time"
)

// Samples is raw mark data passed to [Scale.ComputeAndSetDomain].
// Build it with [Floats], [Times] or [Strings]; nested rows are flattened.
type Samples interface {
	isSamples()
}

type floatSamples [][]float64
type timeSamples [][]time.Time
type stringSamples [][]string

func (floatSamples) isSamples()  {}
func (timeSamples) isSamples()   {}
func (stringSamples) isSamples() {}

// Floats wraps numeric samples. On an ordinal scale the numbers are used as
// category labels.
func Floats(rows ...[]float64) Samples { return floatSamples(rows) }

// Times wraps temporal samples. On an ordinal scale the instants are used as
// RFC 3339 category labels.
func Times(rows ...[]time.Time) Samples { return timeSamples(rows) }

// Strings wraps categorical samples. On a continuous scale each string is
// parsed as a float and unparsable values are excluded.
func Strings(rows ...[]string) Samples { return stringSamples(rows) }

// Len returns the total number of samples across all rows.
func Len(s Samples) int {
	n := 0
	switch s := s.(type) {
	case floatSamples:
		for _, r := range s {
			n += len(r)
		}
	case timeSamples:
		for _, r := range s {
			n += len(r)
		}
	case stringSamples:
		for _, r := range s {
			n += len(r)
		}
	}
	return n
}

// numbers flattens s into float64 values. Strings that do not parse are
// passed to reject.
func numbers(s Samples, reject func(raw string)) []float64 {
	out := make([]float64, 0, Len(s))
	switch s := s.(type) {
	case floatSamples:
		for _, r := range s {
			out = append(out, r...)
		}
	case timeSamples:
		for _, r := range s {
			for _, t := range r {
				out = append(out, toMillis(t))
			}
		}
	case stringSamples:
		for _, r := range s {
			for _, c := range r {
				v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
				if err != nil {
					reject(c)
					continue
				}
				out = append(out, v)
			}
		}
	}
	return out
}

// labels flattens s into category labels.
func labels(s Samples) []string {
	out := make([]string, 0, Len(s))
	switch s := s.(type) {
	case floatSamples:
		for _, r := range s {
			for _, v := range r {
				out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
	case timeSamples:
		for _, r := range s {
			for _, t := range r {
				out = append(out, t.UTC().Format(time.RFC3339Nano))
			}
		}
	case stringSamples:
		for _, r := range s {
			out = append(out, r...)
		}
	}
	return out
}

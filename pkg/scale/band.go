package scale

import "math"

// bands is the partition of a pixel range into equal ordinal bands.
//
// Padding is in units of step: inner padding is the fraction of each step
// left empty between bands, outer padding the number of steps left empty at
// each end. The bands are centred in the range.
type bands struct {
	n       int
	start   float64
	step    float64
	width   float64
	reverse bool
}

func layoutBands(n int, lo, hi, inner, outer float64) bands {
	b := bands{n: n, reverse: hi < lo}
	if n == 0 {
		return b
	}
	a, z := lo, hi
	if b.reverse {
		a, z = hi, lo
	}
	span := z - a
	b.step = span / math.Max(1, float64(n)-inner+2*outer)
	b.start = a + (span-b.step*(float64(n)-inner))*0.5
	b.width = b.step * (1 - inner)
	return b
}

// position returns the start pixel of the i-th band in domain order.
func (b bands) position(i int) float64 {
	if b.reverse {
		i = b.n - 1 - i
	}
	return b.start + b.step*float64(i)
}

// center returns the centre pixel of the i-th band.
func (b bands) center(i int) float64 {
	return b.position(i) + b.width/2
}

// nearest returns the index of the band whose centre is closest to px. Ties
// go to the band first in domain order.
func (b bands) nearest(px float64) int {
	best, bestDist := -1, math.Inf(1)
	for i := 0; i < b.n; i++ {
		if d := math.Abs(b.center(i) - px); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

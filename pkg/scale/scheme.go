package scale

import (
	"image/color"
	"slices"
	"sort"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/scalekit/pkg/errors"
)

// Default schemes used when a color scale is given an empty palette.
const (
	DefaultContinuousScheme = "viridis"
	DefaultOrdinalScheme    = "Set1"
)

// divergingSchemes are the ColorBrewer diverging palettes. A scale using one
// of them without explicit colors is divergent.
var divergingSchemes = map[string]bool{
	"BrBG":     true,
	"PiYG":     true,
	"PRGn":     true,
	"PuOr":     true,
	"RdBu":     true,
	"RdGy":     true,
	"RdYlBu":   true,
	"RdYlGn":   true,
	"Spectral": true,
}

// KnownScheme reports whether name is a recognized scheme.
func KnownScheme(name string) bool {
	if name == DefaultContinuousScheme {
		return true
	}
	_, ok := brewer.ByName[name]
	return ok
}

// Schemes returns the names of all recognized schemes, sorted.
func Schemes() []string {
	names := make([]string, 0, len(brewer.ByName)+1)
	names = append(names, DefaultContinuousScheme)
	for name := range brewer.ByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// schemeVariant returns the colors of the named scheme at the variant sized
// closest to n: the smallest variant with at least n colors, or the largest
// one available. Viridis is sampled at n evenly spaced points.
func schemeVariant(name string, n int) ([]colorful.Color, error) {
	if n < 1 {
		n = 1
	}
	if name == DefaultContinuousScheme {
		out := make([]colorful.Color, n)
		for i := range out {
			t := 0.5
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			out[i] = fromImageColor(palette.Viridis.Map(t))
		}
		return out, nil
	}

	variants, ok := brewer.ByName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScheme, "unknown color scheme: %q", name)
	}
	sizes := make([]int, 0, len(variants))
	for size := range variants {
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)
	if len(sizes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidScheme, "color scheme %q has no variants", name)
	}
	pick := sizes[len(sizes)-1]
	for _, size := range sizes {
		if size >= n {
			pick = size
			break
		}
	}
	cs := variants[pick]
	out := make([]colorful.Color, 0, len(cs))
	for _, c := range cs {
		out = append(out, fromImageColor(c))
	}
	return out, nil
}

// schemeStops samples n colors spread over the full extent of the named
// scheme, using its largest variant.
func schemeStops(name string, n int) ([]colorful.Color, error) {
	if name == DefaultContinuousScheme {
		return schemeVariant(name, n)
	}
	all, err := schemeVariant(name, 1<<10)
	if err != nil {
		return nil, err
	}
	return spread(all, n), nil
}

// spread picks n colors at evenly spaced indices of cs, keeping both ends.
func spread(cs []colorful.Color, n int) []colorful.Color {
	if n >= len(cs) || len(cs) == 0 {
		return cs
	}
	if n == 1 {
		return []colorful.Color{cs[len(cs)/2]}
	}
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = cs[i*(len(cs)-1)/(n-1)]
	}
	return out
}

func fromImageColor(c color.Color) colorful.Color {
	cc, _ := colorful.MakeColor(c)
	return cc
}

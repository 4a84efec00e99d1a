package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a scale, mark or view name from a figure file.
//
// Names are used as map keys and in log output, so the rules are strict:
//   - No empty names
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidConfig, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "name %q contains whitespace or control characters", name)
		}
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a CSS hex color string.
func ValidateHexColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", c)
	}
	return nil
}

// ValidateRange validates a pixel range.
// Both ends must be finite; a zero-width range is rejected because it
// cannot be inverted.
func ValidateRange(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return New(ErrCodeInvalidRange, "range [%g, %g] must be finite", lo, hi)
	}
	if lo == hi {
		return New(ErrCodeInvalidRange, "range [%g, %g] has zero width", lo, hi)
	}
	return nil
}

// ValidatePadding validates band padding for ordinal views.
func ValidatePadding(p float64) error {
	if math.IsNaN(p) || p < 0 || p >= 1 {
		return New(ErrCodeInvalidRange, "padding %g must be in [0, 1)", p)
	}
	return nil
}

// ValidateFigurePath validates a figure file path given on the command line.
func ValidateFigurePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "path contains invalid characters")
	}
	if !strings.HasSuffix(strings.ToLower(path), ".toml") {
		return New(ErrCodeInvalidInput, "figure file %q must have a .toml extension", path)
	}
	return nil
}

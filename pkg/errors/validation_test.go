package errors

import (
	"math"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "x", false},
		{"with dash", "x-axis", false},
		{"with dot", "color.fill", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"space", "x axis", true},
		{"tab", "x\taxis", true},
		{"control char", "x\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("ValidateName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"long form", "#1f77b4", false},
		{"upper case", "#FFAA00", false},
		{"short form", "#fff", false},

		{"empty", "", true},
		{"missing hash", "1f77b4", true},
		{"named color", "red", true},
		{"too long", "#1f77b4ff", true},
		{"bad digit", "#1g77b4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateHexColor(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  float64
		wantErr bool
	}{
		{"ascending", 0, 500, false},
		{"descending", 500, 0, false},
		{"negative", -10, 10, false},

		{"zero width", 10, 10, true},
		{"nan", math.NaN(), 10, true},
		{"inf", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.lo, tt.hi)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%g, %g) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePadding(t *testing.T) {
	tests := []struct {
		input   float64
		wantErr bool
	}{
		{0, false},
		{0.1, false},
		{0.99, false},
		{1, true},
		{-0.1, true},
		{math.NaN(), true},
	}

	for _, tt := range tests {
		if err := ValidatePadding(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePadding(%g) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateFigurePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "figure.toml", false},
		{"nested", "testdata/bars.TOML", false},

		{"empty", "", true},
		{"wrong extension", "figure.json", true},
		{"null byte", "fig\x00.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFigurePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFigurePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidKind,
		ErrCodeInvalidDomain,
		ErrCodeInvalidRange,
		ErrCodeInvalidColor,
		ErrCodeInvalidScheme,
		ErrCodeInvalidConfig,
		ErrCodeMismatchedLength,
		ErrCodeMismatchedKind,
		ErrCodeStaleContributor,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}

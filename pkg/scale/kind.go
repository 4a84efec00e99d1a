package scale

import (
	"strings"

	"github.com/matzehuels/scalekit/pkg/errors"
)

// Kind selects the merge, reversal and mapping policy of a scale.
type Kind int

// Scale kinds.
const (
	KindLinear Kind = iota + 1
	KindLog
	KindTemporal
	KindOrdinal
)

// Kind names as used in figure files and CLI output.
const (
	kindNameLinear   = "linear"
	kindNameLog      = "log"
	kindNameTemporal = "temporal"
	kindNameOrdinal  = "ordinal"
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return kindNameLinear
	case KindLog:
		return kindNameLog
	case KindTemporal:
		return kindNameTemporal
	case KindOrdinal:
		return kindNameOrdinal
	}
	return "unknown"
}

// Continuous reports whether the kind has a numeric [min, max] domain.
func (k Kind) Continuous() bool {
	return k == KindLinear || k == KindLog || k == KindTemporal
}

// ParseKind parses a kind name. "date" is accepted as an alias for
// "temporal" and "category" for "ordinal".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case kindNameLinear:
		return KindLinear, nil
	case kindNameLog:
		return KindLog, nil
	case kindNameTemporal, "date":
		return KindTemporal, nil
	case kindNameOrdinal, "category":
		return KindOrdinal, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidKind, "invalid scale kind: %q (must be one of: linear, log, temporal, ordinal)", s)
}

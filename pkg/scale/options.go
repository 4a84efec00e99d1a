package scale

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a Scale.
type Option func(*Scale)

// WithName sets the name used in logs, hooks and figure files.
func WithName(name string) Option {
	return func(s *Scale) { s.name = name }
}

// WithLogger sets the logger. Scales log at debug level on domain changes
// and at warn level when a value is excluded from a fold.
func WithLogger(l *log.Logger) Option {
	return func(s *Scale) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReverse creates the scale reversed.
func WithReverse(reverse bool) Option {
	return func(s *Scale) { s.reverse = reverse }
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

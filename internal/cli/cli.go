// Package cli implements the scalekit command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scalekit/pkg/buildinfo"
	"github.com/matzehuels/scalekit/pkg/errors"
	"github.com/matzehuels/scalekit/pkg/figure"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "scalekit"

	// defaultMaxTicks is the default upper bound on ticks per axis.
	defaultMaxTicks = 10
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Scalekit inspects the scales of a figure",
		Long: `Scalekit loads a figure description (scales, marks and views written as TOML),
aggregates every scale's domain from the marks bound to it, and answers
questions about the result: domains, color ranges, axis ticks, pixel
inversion and view resizing.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.domainCommand())
	root.AddCommand(c.colorsCommand())
	root.AddCommand(c.ticksCommand())
	root.AddCommand(c.invertCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Figure Loading
// =============================================================================

// loadFigure reads, validates and builds the figure at path. The caller
// must Close the result.
func (c *CLI) loadFigure(ctx context.Context, path string) (*figure.Figure, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := figure.Load(path)
	if err != nil {
		return nil, err
	}
	f, err := figure.Build(cfg, figure.WithLogger(logger))
	if err != nil {
		return nil, errors.Annotate(err, "build figure %s", path)
	}

	prog.done(fmt.Sprintf("Loaded %s: %d scales, %d marks, %d views",
		filepath.Base(path), len(f.Scales()), len(f.Marks()), len(f.Views())))
	return f, nil
}

package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaforge/pkg/buildinfo"
	"github.com/matzehuels/schemaforge/pkg/cache"
	"github.com/matzehuels/schemaforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "schemaforge"

	// defaultProject is read when a command is given no project file.
	defaultProject = "project.toml"
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
		Short: "Schemaforge numbers terminals, resolves PLC channels and traces wiring",
		Long: `Schemaforge builds the wiring documentation of a control cabinet from a
project file: terminal strip reports with bridges, PLC channel assignments,
field device connections and the wiring traced from a schematic drawing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.terminalsCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.plcCommand())
	root.AddCommand(c.stateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Graph renders are scoped
// per project so two projects never share an entry by accident.
func (c *CLI) newRunner(noCache bool, scope string) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if scope != "" {
		keyer = cache.NewScopedKeyer(nil, "project:"+scope+":")
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory, honouring XDG_CACHE_HOME
// (~/.cache/schemaforge/ on Linux).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}

// projectArg returns the project path given on the command line, or the
// default one.
func projectArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultProject
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string renders no graph.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

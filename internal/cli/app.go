// Package cli implements the contactlist command-line interface: global flag
// parsing, command dispatch, and output formatting.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/leeovery/contactlist/internal/config"
	"github.com/leeovery/contactlist/internal/workspace"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// App is the contactlist CLI application.
type App struct {
	stdout io.Writer
	stderr io.Writer
	opts   GlobalOpts

	// Resolved per Run.
	cfg       config.Config
	formatter Formatter
	logger    *VerboseLogger
}

// GlobalOpts holds parsed global flags.
type GlobalOpts struct {
	Quiet      bool
	Verbose    bool
	Toon       bool
	Pretty     bool
	JSON       bool
	ConfigPath string
}

// NewApp creates a new CLI application with the given output writers.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{
		stdout: stdout,
		stderr: stderr,
	}
}

// Run parses arguments and dispatches to the appropriate subcommand.
// workDir is the working directory for the command.
// Returns the exit code (0 for success, 1 for error).
func (a *App) Run(args []string, workDir string) int {
	subcmd, cmdArgs, err := a.parseGlobalFlags(args[1:])
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return 1
	}

	switch subcmd {
	case "", "help":
		a.cmdHelp(cmdArgs)
		return 0
	case "version":
		fmt.Fprintf(a.stdout, "contactlist version %s\n", Version)
		return 0
	}

	handler, ok := a.handlers()[subcmd]
	if !ok {
		fmt.Fprintf(a.stderr, "Error: Unknown command '%s'. Run 'contactlist help' for usage.\n", subcmd)
		return 1
	}

	if err := a.setup(workDir); err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return 1
	}

	if err := handler(workDir, cmdArgs); err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func (a *App) handlers() map[string]func(workDir string, args []string) error {
	return map[string]func(string, []string) error{
		"dedupe": a.cmdDedupe,
		"merge":  a.cmdMerge,
		"count":  a.cmdCount,
		"lookup": a.cmdLookup,
	}
}

// setup resolves the output format, verbose logger and config for a command.
func (a *App) setup(workDir string) error {
	format, err := ResolveFormat(a.opts.Toon, a.opts.Pretty, a.opts.JSON, DetectTTY(a.stdout))
	if err != nil {
		return err
	}
	a.formatter = newFormatter(format)

	if a.opts.Verbose {
		a.logger = NewVerboseLogger(a.stderr)
	}

	cfg, err := config.Load(workDir, a.opts.ConfigPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Log(fmt.Sprintf("config: column %q, format %s", cfg.Column, format))
	return nil
}

// parseGlobalFlags consumes global flags anywhere before the subcommand and
// returns the subcommand with its remaining arguments.
func (a *App) parseGlobalFlags(args []string) (subcmd string, remaining []string, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--quiet", "-q":
			a.opts.Quiet = true
		case "--verbose", "-v":
			a.opts.Verbose = true
		case "--toon":
			a.opts.Toon = true
		case "--pretty":
			a.opts.Pretty = true
		case "--json":
			a.opts.JSON = true
		case "--config":
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("--config requires a file path")
			}
			i++
			a.opts.ConfigPath = args[i]
		case "--help", "-h":
			if subcmd == "" {
				return "help", nil, nil
			}
			return "help", []string{subcmd}, nil
		default:
			if subcmd == "" && !strings.HasPrefix(arg, "-") {
				subcmd = arg
				continue
			}
			if subcmd == "" {
				return "", nil, fmt.Errorf("unknown flag '%s'", arg)
			}
			remaining = append(remaining, arg)
		}
	}
	return subcmd, remaining, nil
}

// openWorkspace opens workDir as a workspace with the configured logger.
func (a *App) openWorkspace(workDir string) (*workspace.Workspace, error) {
	return workspace.Open(workDir, workspace.WithLogger(a.logger))
}

// warn reports a non-fatal problem on stderr.
func (a *App) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if a.logger != nil {
		a.logger.Warn(msg)
		return
	}
	fmt.Fprintf(a.stderr, "Warning: %s\n", msg)
}

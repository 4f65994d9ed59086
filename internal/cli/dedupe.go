package cli

import (
	"fmt"
	"strings"

	"github.com/leeovery/contactlist/internal/dedupe"
	"github.com/leeovery/contactlist/internal/workspace"
)

// parsePatternArgs returns the optional positional pattern and the boolean
// flags found in args. allowed lists the accepted flag names.
func parsePatternArgs(args []string, allowed ...string) (pattern string, flags map[string]bool, err error) {
	flags = make(map[string]bool)
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			known := false
			for _, name := range allowed {
				if arg == name {
					known = true
					break
				}
			}
			if !known {
				return "", nil, fmt.Errorf("unknown flag '%s'", arg)
			}
			flags[arg] = true
			continue
		}
		if pattern != "" {
			return "", nil, fmt.Errorf("unexpected argument '%s'", arg)
		}
		pattern = arg
	}
	return pattern, flags, nil
}

func (a *App) cmdDedupe(workDir string, args []string) error {
	pattern, flags, err := parsePatternArgs(args, "--dry-run")
	if err != nil {
		return err
	}
	if pattern == "" {
		pattern = a.cfg.Dedupe.Pattern
	}
	dryRun := flags["--dry-run"]

	ws, err := a.openWorkspace(workDir)
	if err != nil {
		return err
	}

	paths, err := dedupe.Discover(ws.Root(), pattern)
	if err != nil {
		return err
	}
	a.logger.Log(fmt.Sprintf("dedupe: %d files match %q", len(paths), pattern))

	var store dedupe.Store = dedupe.FileStore{}
	lock := ws.Exclusive
	if dryRun {
		store = dedupe.NewDryRunStore(store)
		lock = ws.Shared
	}

	var report *dedupe.Report
	err = lock(func() error {
		var runErr error
		report, runErr = dedupe.NewEngine(store, a.cfg.Column, a.logger).Run(paths)
		return runErr
	})
	if err != nil {
		return err
	}

	if a.opts.Quiet {
		return nil
	}
	return a.formatter.FormatDedupe(a.stdout, DedupeReport{
		Files:  fileRows(ws, report.Files),
		Total:  report.Total,
		DryRun: dryRun,
	})
}

func (a *App) cmdCount(workDir string, args []string) error {
	pattern, _, err := parsePatternArgs(args)
	if err != nil {
		return err
	}
	if pattern == "" {
		pattern = a.cfg.Dedupe.Pattern
	}

	ws, err := a.openWorkspace(workDir)
	if err != nil {
		return err
	}
	paths, err := dedupe.Discover(ws.Root(), pattern)
	if err != nil {
		return err
	}

	var results []dedupe.FileResult
	var total int
	err = ws.Shared(func() error {
		var countErr error
		results, total, countErr = dedupe.Count(dedupe.FileStore{}, paths)
		return countErr
	})
	if err != nil {
		return err
	}

	if a.opts.Quiet {
		return nil
	}
	return a.formatter.FormatCount(a.stdout, CountReport{Files: fileRows(ws, results), Total: total})
}

// fileRows converts engine results into display rows with workspace-relative names.
func fileRows(ws *workspace.Workspace, results []dedupe.FileResult) []FileRow {
	rows := make([]FileRow, len(results))
	for i, r := range results {
		rows[i] = FileRow{File: ws.Rel(r.Path), Removed: r.Removed, Rows: r.Rows}
	}
	return rows
}

package cli

import (
	"fmt"
	"strings"

	"github.com/leeovery/contactlist/internal/index"
	"github.com/leeovery/contactlist/internal/merge"
	"github.com/leeovery/contactlist/internal/workspace"
)

// mergeFlags holds the parsed merge subcommand arguments.
type mergeFlags struct {
	inputs []string
	output string
	xlsx   string
	index  bool
}

func parseMergeArgs(args []string) (mergeFlags, error) {
	var mf mergeFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--output", "--xlsx":
			if i+1 >= len(args) {
				return mf, fmt.Errorf("%s requires a file path", arg)
			}
			i++
			if arg == "--xlsx" {
				mf.xlsx = args[i]
			} else {
				mf.output = args[i]
			}
		case "--index":
			mf.index = true
		default:
			if strings.HasPrefix(arg, "-") {
				return mf, fmt.Errorf("unknown flag '%s'", arg)
			}
			mf.inputs = append(mf.inputs, arg)
		}
	}
	return mf, nil
}

func (a *App) cmdMerge(workDir string, args []string) error {
	mf, err := parseMergeArgs(args)
	if err != nil {
		return err
	}
	if len(mf.inputs) == 0 {
		mf.inputs = a.cfg.Merge.Inputs
	}
	if mf.output == "" {
		mf.output = a.cfg.Merge.Output
	}
	if mf.xlsx == "" {
		mf.xlsx = a.cfg.Merge.XLSX
	}

	ws, err := a.openWorkspace(workDir)
	if err != nil {
		return err
	}

	inputs := make([]string, len(mf.inputs))
	for i, in := range mf.inputs {
		inputs[i] = ws.Path(in)
	}
	output := ws.Path(mf.output)

	report := MergeReport{Output: ws.Rel(output)}
	err = ws.Exclusive(func() error {
		res, err := merge.NewEngine(a.cfg.Column, a.logger).Collect(inputs)
		if err != nil {
			return err
		}
		for _, in := range res.Inputs {
			report.Inputs = append(report.Inputs, MergeInputRow{File: ws.Rel(in.Path), Rows: in.Rows, Skipped: in.Skipped})
		}
		report.Emails = len(res.Emails)

		if err := merge.WriteMaster(output, a.cfg.Column, res.Emails); err != nil {
			return err
		}
		a.logger.Log(fmt.Sprintf("merge: wrote %d emails to %s", len(res.Emails), output))

		if mf.xlsx != "" {
			xlsx := ws.Path(mf.xlsx)
			if err := merge.WriteMaster(xlsx, a.cfg.Column, res.Emails); err != nil {
				return err
			}
			report.XLSX = ws.Rel(xlsx)
		}

		if mf.index {
			report.IndexedEmails, report.Indexed = a.reindex(ws, output)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if a.opts.Quiet {
		return nil
	}
	return a.formatter.FormatMerge(a.stdout, report)
}

// reindex rebuilds the lookup index from the master list at path and returns
// the number of indexed emails. The merge has already succeeded, so failures
// are reported as warnings.
func (a *App) reindex(ws *workspace.Workspace, path string) (int, bool) {
	emails, raw, err := index.LoadMaster(path, a.cfg.Column)
	if err != nil {
		a.warn("failed to index master list: %v", err)
		return 0, false
	}
	ix, err := index.EnsureFresh(ws.IndexPath(), emails, raw, a.logger)
	if err != nil {
		a.warn("failed to index master list: %v", err)
		return 0, false
	}
	defer ix.Close()

	if err := ix.SetMaster(ws.Rel(path)); err != nil {
		a.warn("failed to index master list: %v", err)
		return 0, false
	}
	n, err := ix.Count()
	if err != nil {
		a.warn("failed to count indexed emails: %v", err)
		return 0, false
	}
	return n, true
}

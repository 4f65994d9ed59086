package cli

import (
	"fmt"
	"strings"

	"github.com/leeovery/contactlist/internal/index"
	"github.com/leeovery/contactlist/internal/workspace"
)

func (a *App) cmdLookup(workDir string, args []string) error {
	var queries []string
	var master string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--master" {
			if i+1 >= len(args) {
				return fmt.Errorf("--master requires a file path")
			}
			i++
			master = args[i]
			continue
		}
		if strings.HasPrefix(arg, "-") {
			return fmt.Errorf("unknown flag '%s'", arg)
		}
		if strings.TrimSpace(arg) == "" {
			continue
		}
		queries = append(queries, arg)
	}
	if len(queries) == 0 {
		return fmt.Errorf("lookup requires at least one email. Usage: contactlist lookup <email>...")
	}

	ws, err := a.openWorkspace(workDir)
	if err != nil {
		return err
	}

	results := make([]LookupResult, 0, len(queries))
	err = ws.Shared(func() error {
		path := a.masterPath(ws, master)
		a.logger.Log(fmt.Sprintf("lookup: master list %s", path))

		emails, raw, err := index.LoadMaster(path, a.cfg.Column)
		if err != nil {
			return fmt.Errorf("%w (run 'contactlist merge' first)", err)
		}
		ix, err := index.EnsureFresh(ws.IndexPath(), emails, raw, a.logger)
		if err != nil {
			return err
		}
		defer ix.Close()
		if err := ix.SetMaster(ws.Rel(path)); err != nil {
			return err
		}

		for _, q := range queries {
			entries, err := ix.Lookup(q)
			if err != nil {
				return err
			}
			res := LookupResult{Query: q}
			for _, e := range entries {
				res.Matches = append(res.Matches, LookupMatch{Position: e.Position, Email: e.Email})
			}
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if a.opts.Quiet {
		return nil
	}
	return a.formatter.FormatLookup(a.stdout, results)
}

// masterPath picks the master list to search: the --master argument, then the
// list the index was last built from, then the configured merge output.
func (a *App) masterPath(ws *workspace.Workspace, flag string) string {
	if flag != "" {
		return ws.Path(flag)
	}
	if recorded := index.RecordedMaster(ws.IndexPath()); recorded != "" {
		return ws.Path(recorded)
	}
	return ws.Path(a.cfg.Merge.Output)
}

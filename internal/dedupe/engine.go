package dedupe

import (
	"errors"
	"fmt"
)

// Logger is an optional interface for verbose/debug logging.
type Logger interface {
	Log(msg string)
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	Removed int // duplicate rows dropped
	Rows    int // rows in the file after the run
}

// Report is the outcome of a run: one FileResult per file in processing
// order and the total row count across them.
type Report struct {
	Files []FileResult
	Total int
}

// Engine runs dedupe passes against a Store.
type Engine struct {
	store  Store
	column string
	logger Logger
}

// NewEngine creates an Engine keyed on column. logger may be nil.
func NewEngine(store Store, column string, logger Logger) *Engine {
	return &Engine{store: store, column: column, logger: logger}
}

func (e *Engine) log(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Log(fmt.Sprintf(format, args...))
	}
}

// Run dedupes paths in the given order, rewriting each file with its
// surviving rows, then re-reads every file to count it. The first error
// aborts the run; files already rewritten stay rewritten.
func (e *Engine) Run(paths []string) (*Report, error) {
	report := &Report{Files: make([]FileResult, 0, len(paths))}

	seen := NewSeenSet()
	for _, path := range paths {
		t, err := e.store.Read(path)
		if err != nil {
			return nil, err
		}
		e.log("dedupe: %s: read %d rows", path, t.Len())

		kept, next, removed, err := Filter(seen, t, e.column)
		if err != nil {
			var mc *MissingColumnError
			if errors.As(err, &mc) {
				mc.Path = path
			}
			return nil, err
		}
		seen = next

		if err := e.store.Write(path, kept); err != nil {
			return nil, fmt.Errorf("failed to rewrite %s: %w", path, err)
		}
		e.log("dedupe: %s: kept %d rows, %d keys seen", path, kept.Len(), seen.Len())

		report.Files = append(report.Files, FileResult{Path: path, Removed: removed})
	}

	counts, total, err := Count(e.store, paths)
	if err != nil {
		return nil, err
	}
	for i := range report.Files {
		report.Files[i].Rows = counts[i].Rows
	}
	report.Total = total

	return report, nil
}

// Count reads every file in paths and returns its row count and the sum.
func Count(store Store, paths []string) ([]FileResult, int, error) {
	results := make([]FileResult, 0, len(paths))
	total := 0
	for _, path := range paths {
		t, err := store.Read(path)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, FileResult{Path: path, Rows: t.Len()})
		total += t.Len()
	}
	return results, total, nil
}

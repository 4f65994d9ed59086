// Package merge combines contact exports into a single-column master list
// holding each email once, at the position of its last occurrence across the
// inputs read in order.
//
// Emails are trimmed but not case-folded, so "A@x.com" and "a@x.com" are
// kept as two entries. dedupe folds case; merge does not.
package merge

import (
	"fmt"

	"github.com/leeovery/contactlist/internal/contact"
	"github.com/leeovery/contactlist/internal/table"
)

// MasterSheet names the worksheet of a workbook export.
const MasterSheet = "master"

// Logger is an optional interface for verbose/debug logging.
type Logger interface {
	Log(msg string)
}

// InputResult describes how one input contributed to the merge.
type InputResult struct {
	Path    string
	Rows    int
	Skipped int // rows with an absent or empty email cell
}

// Result is the outcome of reading every input.
type Result struct {
	Inputs []InputResult
	Emails []string
}

// Engine reads inputs and builds the order list.
type Engine struct {
	column string
	read   func(path string) (*table.Table, error)
	logger Logger
}

// NewEngine creates an Engine keyed on column. logger may be nil.
func NewEngine(column string, logger Logger) *Engine {
	return &Engine{column: column, read: table.Read, logger: logger}
}

func (e *Engine) log(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Log(fmt.Sprintf(format, args...))
	}
}

// Collect reads paths in order and returns the merged emails. Rows without
// the column, or with an empty cell, are skipped. Any unreadable input
// aborts with no result.
func (e *Engine) Collect(paths []string) (*Result, error) {
	order := NewOrderList()
	res := &Result{Inputs: make([]InputResult, 0, len(paths))}

	for _, path := range paths {
		t, err := e.read(path)
		if err != nil {
			return nil, err
		}
		idx := t.Column(e.column)
		in := InputResult{Path: path, Rows: t.Len()}

		for _, rec := range t.Records {
			raw, ok := table.Value(rec, idx)
			if !ok || raw == "" {
				in.Skipped++
				continue
			}
			email := contact.TrimEmail(raw)
			if order.Has(email) {
				e.log("merge: %s: moving %q to the end", path, email)
			}
			order.Touch(email)
		}

		e.log("merge: %s: %d rows, %d skipped, %d distinct so far", path, in.Rows, in.Skipped, order.Len())
		res.Inputs = append(res.Inputs, in)
	}

	res.Emails = order.Emails()
	return res, nil
}

// MasterTable builds the single-column output table for emails.
func MasterTable(column string, emails []string) *table.Table {
	records := make([][]string, len(emails))
	for i, e := range emails {
		records[i] = []string{e}
	}
	return &table.Table{Header: []string{column}, Records: records}
}

// WriteMaster writes emails to path under a single column header. The format
// follows the extension of path; workbooks get a sheet named MasterSheet.
func WriteMaster(path, column string, emails []string) error {
	t := MasterTable(column, emails)
	t.Sheet = MasterSheet
	if err := table.Write(path, t); err != nil {
		return fmt.Errorf("failed to write master list: %w", err)
	}
	return nil
}

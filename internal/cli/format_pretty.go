package cli

import (
	"fmt"
	"io"
	"strings"
)

// PrettyFormatter implements the Formatter interface for human-readable
// terminal output. Dedupe and count lines have the fixed "<file>: <n> rows"
// shape.
type PrettyFormatter struct{}

// FormatDedupe renders one removal line per file, then one row-count line per
// file and the total.
func (f *PrettyFormatter) FormatDedupe(w io.Writer, r DedupeReport) error {
	for _, row := range r.Files {
		fmt.Fprintf(w, "%s: removed %d duplicate rows\n", row.File, row.Removed)
	}
	writeCounts(w, r.Files, r.Total)
	if r.DryRun {
		fmt.Fprintln(w, "Dry run: no files were changed.")
	}
	return nil
}

// FormatCount renders one row-count line per file and the total.
func (f *PrettyFormatter) FormatCount(w io.Writer, r CountReport) error {
	writeCounts(w, r.Files, r.Total)
	return nil
}

func writeCounts(w io.Writer, files []FileRow, total int) {
	for _, row := range files {
		fmt.Fprintf(w, "%s: %d rows\n", row.File, row.Rows)
	}
	fmt.Fprintln(w, "Total rows across all files:", total)
}

// FormatMerge renders a completion line for the master list and any extras.
func (f *PrettyFormatter) FormatMerge(w io.Writer, r MergeReport) error {
	fmt.Fprintf(w, "Wrote %d emails to %s\n", r.Emails, r.Output)
	if r.XLSX != "" {
		fmt.Fprintf(w, "Wrote workbook %s\n", r.XLSX)
	}
	if r.Indexed {
		fmt.Fprintf(w, "Indexed %d emails\n", r.IndexedEmails)
	}
	return nil
}

// FormatLookup renders one line per query listing its matches as
// "#<position> <email>", or "not found".
func (f *PrettyFormatter) FormatLookup(w io.Writer, results []LookupResult) error {
	for _, res := range results {
		if len(res.Matches) == 0 {
			fmt.Fprintf(w, "%s: not found\n", res.Query)
			continue
		}
		parts := make([]string, len(res.Matches))
		for i, m := range res.Matches {
			parts[i] = fmt.Sprintf("#%d %s", m.Position, m.Email)
		}
		fmt.Fprintf(w, "%s: %s\n", res.Query, strings.Join(parts, ", "))
	}
	return nil
}

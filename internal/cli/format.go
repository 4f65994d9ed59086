package cli

import (
	"errors"
	"io"
	"os"
)

// Format represents the output format type.
type Format string

// Format constants for output selection.
const (
	FormatToon   Format = "toon"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// FileRow is one file's line in a dedupe or count report.
type FileRow struct {
	File    string
	Removed int
	Rows    int
}

// DedupeReport holds data for formatting a dedupe run.
type DedupeReport struct {
	Files  []FileRow
	Total  int
	DryRun bool
}

// CountReport holds data for formatting a count run.
type CountReport struct {
	Files []FileRow
	Total int
}

// MergeInputRow is one input's contribution to a merge.
type MergeInputRow struct {
	File    string
	Rows    int
	Skipped int
}

// MergeReport holds data for formatting a merge run.
type MergeReport struct {
	Inputs        []MergeInputRow
	Output        string
	XLSX          string // empty when no workbook was written
	Emails        int
	Indexed       bool
	IndexedEmails int // rows in the rebuilt index
}

// LookupMatch is one master-list entry matching a query.
type LookupMatch struct {
	Position int
	Email    string
}

// LookupResult holds every match for one queried email.
type LookupResult struct {
	Query   string
	Matches []LookupMatch
}

// Formatter defines the interface for rendering command output in different formats.
type Formatter interface {
	// FormatDedupe renders removal counts, final row counts and the total.
	FormatDedupe(w io.Writer, r DedupeReport) error
	// FormatCount renders per-file row counts and the total.
	FormatCount(w io.Writer, r CountReport) error
	// FormatMerge renders the outcome of writing the master list.
	FormatMerge(w io.Writer, r MergeReport) error
	// FormatLookup renders matches for each queried email.
	FormatLookup(w io.Writer, results []LookupResult) error
}

// DetectTTY checks if the given writer is a terminal (TTY).
// Returns false if writer is not an *os.File, if Stat() fails,
// or if the file is not a character device.
func DetectTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// ResolveFormat determines the output format from flags and TTY status.
// Returns error if more than one format flag is set.
// If no flags set, returns Pretty for TTY, Toon for non-TTY.
func ResolveFormat(toonFlag, prettyFlag, jsonFlag, isTTY bool) (Format, error) {
	count := 0
	for _, set := range []bool{toonFlag, prettyFlag, jsonFlag} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", errors.New("cannot specify multiple format flags (--toon, --pretty, --json)")
	}

	switch {
	case toonFlag:
		return FormatToon, nil
	case prettyFlag:
		return FormatPretty, nil
	case jsonFlag:
		return FormatJSON, nil
	case isTTY:
		return FormatPretty, nil
	default:
		return FormatToon, nil
	}
}

// newFormatter returns the Formatter for format.
func newFormatter(format Format) Formatter {
	switch format {
	case FormatPretty:
		return &PrettyFormatter{}
	case FormatJSON:
		return &JSONFormatter{}
	default:
		return &ToonFormatter{}
	}
}

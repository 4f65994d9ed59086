package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter implements the Formatter interface using JSON output.
// All keys use snake_case. Output is 2-space indented via json.MarshalIndent.
// List fields are always arrays, never null.
type JSONFormatter struct{}

type jsonFileRow struct {
	File    string `json:"file"`
	Removed int    `json:"removed"`
	Rows    int    `json:"rows"`
}

type jsonDedupe struct {
	Files  []jsonFileRow `json:"files"`
	Total  int           `json:"total"`
	DryRun bool          `json:"dry_run"`
}

type jsonCountRow struct {
	File string `json:"file"`
	Rows int    `json:"rows"`
}

type jsonCount struct {
	Files []jsonCountRow `json:"files"`
	Total int            `json:"total"`
}

type jsonMergeInput struct {
	File    string `json:"file"`
	Rows    int    `json:"rows"`
	Skipped int    `json:"skipped"`
}

type jsonMerge struct {
	Inputs  []jsonMergeInput `json:"inputs"`
	Output  string           `json:"output"`
	XLSX    string           `json:"xlsx,omitempty"`
	Emails  int              `json:"emails"`
	Indexed bool             `json:"indexed"`
}

type jsonLookupMatch struct {
	Position int    `json:"position"`
	Email    string `json:"email"`
}

type jsonLookup struct {
	Query   string            `json:"query"`
	Found   bool              `json:"found"`
	Matches []jsonLookupMatch `json:"matches"`
}

// FormatDedupe renders the dedupe report as a JSON object.
func (f *JSONFormatter) FormatDedupe(w io.Writer, r DedupeReport) error {
	out := jsonDedupe{Files: make([]jsonFileRow, 0, len(r.Files)), Total: r.Total, DryRun: r.DryRun}
	for _, row := range r.Files {
		out.Files = append(out.Files, jsonFileRow{File: row.File, Removed: row.Removed, Rows: row.Rows})
	}
	return writeJSON(w, out)
}

// FormatCount renders the count report as a JSON object.
func (f *JSONFormatter) FormatCount(w io.Writer, r CountReport) error {
	out := jsonCount{Files: make([]jsonCountRow, 0, len(r.Files)), Total: r.Total}
	for _, row := range r.Files {
		out.Files = append(out.Files, jsonCountRow{File: row.File, Rows: row.Rows})
	}
	return writeJSON(w, out)
}

// FormatMerge renders the merge report as a JSON object.
func (f *JSONFormatter) FormatMerge(w io.Writer, r MergeReport) error {
	out := jsonMerge{
		Inputs:  make([]jsonMergeInput, 0, len(r.Inputs)),
		Output:  r.Output,
		XLSX:    r.XLSX,
		Emails:  r.Emails,
		Indexed: r.Indexed,
	}
	for _, in := range r.Inputs {
		out.Inputs = append(out.Inputs, jsonMergeInput{File: in.File, Rows: in.Rows, Skipped: in.Skipped})
	}
	return writeJSON(w, out)
}

// FormatLookup renders lookup results as a JSON array.
func (f *JSONFormatter) FormatLookup(w io.Writer, results []LookupResult) error {
	out := make([]jsonLookup, 0, len(results))
	for _, res := range results {
		l := jsonLookup{Query: res.Query, Found: len(res.Matches) > 0, Matches: make([]jsonLookupMatch, 0, len(res.Matches))}
		for _, m := range res.Matches {
			l.Matches = append(l.Matches, jsonLookupMatch{Position: m.Position, Email: m.Email})
		}
		out = append(out, l)
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

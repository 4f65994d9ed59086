package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	toon "github.com/toon-format/toon-go"
)

// ToonFormatter implements the Formatter interface using TOON format.
// TOON (Token-Oriented Object Notation) is a compact, schema-headed format
// suited to scripts and agents reading the output.
type ToonFormatter struct{}

// FormatDedupe renders a files[N]{file,removed,rows} table followed by the
// total and the dry-run flag.
func (f *ToonFormatter) FormatDedupe(w io.Writer, r DedupeReport) error {
	objects := make([]toon.Object, len(r.Files))
	for i, row := range r.Files {
		objects[i] = toon.NewObject(
			toon.Field{Key: "file", Value: row.File},
			toon.Field{Key: "removed", Value: row.Removed},
			toon.Field{Key: "rows", Value: row.Rows},
		)
	}
	section, err := toonTable("files", "file,removed,rows", objects)
	if err != nil {
		return err
	}
	fmt.Fprint(w, section)
	fmt.Fprintf(w, "total: %d\n", r.Total)
	fmt.Fprintf(w, "dry_run: %s\n", strconv.FormatBool(r.DryRun))
	return nil
}

// FormatCount renders a files[N]{file,rows} table followed by the total.
func (f *ToonFormatter) FormatCount(w io.Writer, r CountReport) error {
	objects := make([]toon.Object, len(r.Files))
	for i, row := range r.Files {
		objects[i] = toon.NewObject(
			toon.Field{Key: "file", Value: row.File},
			toon.Field{Key: "rows", Value: row.Rows},
		)
	}
	section, err := toonTable("files", "file,rows", objects)
	if err != nil {
		return err
	}
	fmt.Fprint(w, section)
	fmt.Fprintf(w, "total: %d\n", r.Total)
	return nil
}

// FormatMerge renders the per-input table and a merge{...} summary row.
func (f *ToonFormatter) FormatMerge(w io.Writer, r MergeReport) error {
	objects := make([]toon.Object, len(r.Inputs))
	for i, in := range r.Inputs {
		objects[i] = toon.NewObject(
			toon.Field{Key: "file", Value: in.File},
			toon.Field{Key: "rows", Value: in.Rows},
			toon.Field{Key: "skipped", Value: in.Skipped},
		)
	}
	section, err := toonTable("inputs", "file,rows,skipped", objects)
	if err != nil {
		return err
	}
	fmt.Fprint(w, section)

	fields := []string{"output", "emails", "indexed"}
	values := []string{toonEscapeValue(r.Output), strconv.Itoa(r.Emails), strconv.FormatBool(r.Indexed)}
	if r.XLSX != "" {
		fields = append(fields, "xlsx")
		values = append(values, toonEscapeValue(r.XLSX))
	}
	fmt.Fprintf(w, "\nmerge{%s}:\n  %s\n", strings.Join(fields, ","), strings.Join(values, ","))
	return nil
}

// FormatLookup renders a matches[N]{query,position,email} table. A query
// with no match appears as a row with position 0 and an empty email.
func (f *ToonFormatter) FormatLookup(w io.Writer, results []LookupResult) error {
	var objects []toon.Object
	for _, res := range results {
		if len(res.Matches) == 0 {
			objects = append(objects, toon.NewObject(
				toon.Field{Key: "query", Value: res.Query},
				toon.Field{Key: "position", Value: 0},
				toon.Field{Key: "email", Value: ""},
			))
			continue
		}
		for _, m := range res.Matches {
			objects = append(objects, toon.NewObject(
				toon.Field{Key: "query", Value: res.Query},
				toon.Field{Key: "position", Value: m.Position},
				toon.Field{Key: "email", Value: m.Email},
			))
		}
	}
	section, err := toonTable("matches", "query,position,email", objects)
	if err != nil {
		return err
	}
	fmt.Fprint(w, section)
	return nil
}

// toonTable renders objects as a tabular TOON array named name. An empty
// array still carries its schema so readers always see the field list.
func toonTable(name, schema string, objects []toon.Object) (string, error) {
	if len(objects) == 0 {
		return fmt.Sprintf("%s[0]{%s}:\n", name, schema), nil
	}
	doc := toon.NewObject(toon.Field{Key: name, Value: objects})
	result, err := toon.MarshalString(doc)
	if err != nil {
		return "", fmt.Errorf("toon marshal error: %w", err)
	}
	return strings.TrimRight(result, "\n") + "\n", nil
}

// toonEscapeValue uses the toon-go library to properly escape a string value
// for use in TOON array context (comma-delimited).
func toonEscapeValue(s string) string {
	doc := toon.NewObject(
		toon.Field{Key: "a", Value: []toon.Object{
			toon.NewObject(toon.Field{Key: "v", Value: s}),
		}},
	)
	result, err := toon.MarshalString(doc)
	if err != nil {
		return s
	}
	// Result is "a[1]{v}:\n  <value>"; the value is on the second line.
	lines := strings.SplitN(result, "\n", 2)
	if len(lines) == 2 {
		return strings.TrimSpace(lines[1])
	}
	return s
}

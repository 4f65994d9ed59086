// Package dedupe removes rows whose normalized email already appeared in an
// earlier file of an ordered set of contact exports.
//
// Each file is one step of a fold: Filter takes the keys seen so far and a
// table and returns the surviving rows plus the extended key set. Duplicates
// within a single file are kept; only keys from earlier files are removed.
package dedupe

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/leeovery/contactlist/internal/contact"
	"github.com/leeovery/contactlist/internal/table"
)

// MissingColumnError is returned when a file has no email column to key on.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("missing column %q", e.Column)
	}
	return fmt.Sprintf("%s: missing column %q", e.Path, e.Column)
}

// Discover returns the files in dir matching pattern, in lexical order.
// No match is not an error.
func Discover(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Filter normalizes the email column of every record in t and drops the
// records whose key is in seen. It returns the kept rows, the set extended by
// their keys, and the number of rows dropped. t and seen are not modified.
func Filter(seen SeenSet, t *table.Table, column string) (kept *table.Table, next SeenSet, removed int, err error) {
	idx := t.Column(column)
	if idx < 0 {
		return nil, seen, 0, &MissingColumnError{Column: column}
	}

	records := make([][]string, 0, len(t.Records))
	keys := make([]string, 0, len(t.Records))
	for _, rec := range t.Records {
		raw, _ := table.Value(rec, idx)
		key := contact.NormalizeEmail(raw)
		if seen.Has(key) {
			removed++
			continue
		}

		width := len(rec)
		if width <= idx {
			width = idx + 1
		}
		out := make([]string, width)
		copy(out, rec)
		out[idx] = key

		records = append(records, out)
		keys = append(keys, key)
	}

	return t.WithRecords(records), seen.With(keys...), removed, nil
}

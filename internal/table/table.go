// Package table reads and writes the tabular contact exports (CSV and XLSX)
// the dedupe and merge commands operate on. Writes are atomic: the content
// goes to a temp file in the destination directory, is fsynced, then renamed
// over the target.
package table

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// DefaultSheet is the worksheet name used when writing a table that did not
// come from a workbook.
const DefaultSheet = "Sheet1"

var (
	// ErrNoHeader is returned when a file has no header row.
	ErrNoHeader = errors.New("no header row")
	// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Table is a header row plus the data records beneath it, in file order.
// Records may be shorter than the header; missing trailing cells read as "".
type Table struct {
	Header  []string
	Records [][]string
	// Sheet is the worksheet the table was read from; empty for CSV.
	Sheet string
}

// Len returns the number of data records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Column returns the index of the header named name, or -1 when absent.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Value returns record's cell at idx. ok is false when idx is negative or the
// record is too short to hold it.
func Value(record []string, idx int) (value string, ok bool) {
	if idx < 0 || idx >= len(record) {
		return "", false
	}
	return record[idx], true
}

// WithRecords returns a table sharing t's header and sheet but holding records.
func (t *Table) WithRecords(records [][]string) *Table {
	return &Table{Header: t.Header, Records: records, Sheet: t.Sheet}
}

// format identifies a file format by extension.
type format int

const (
	formatCSV format = iota
	formatXLSX
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return formatCSV, nil
	case ".xlsx":
		return formatXLSX, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Read loads the table stored at path, choosing the codec by extension.
// A missing file returns an error.
func Read(path string) (*Table, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	switch f {
	case formatXLSX:
		return readXLSX(path)
	default:
		return readCSVFile(path)
	}
}

// Write replaces the file at path with t using the atomic write pattern.
// Records shorter than the header are padded with empty cells.
func Write(path string, t *Table) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	return writeAtomic(path, func(w io.Writer) error {
		if f == formatXLSX {
			return EncodeXLSX(w, t)
		}
		return EncodeCSV(w, t)
	})
}

// padded returns record extended with empty cells up to width.
func padded(record []string, width int) []string {
	if len(record) >= width {
		return record
	}
	out := make([]string, width)
	copy(out, record)
	return out
}

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func readCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// ParseCSV reads a header row and all records from r. A leading UTF-8 byte
// order mark is dropped so the first header cell matches by name. Records
// may differ in length from the header.
func ParseCSV(r io.Reader) (*Table, error) {
	// Exports from spreadsheet tools often start with a BOM.
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	t := &Table{Header: header}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// EncodeCSV writes t as CSV: the header, then every record padded to the
// header's width. A row holding a single empty cell is written as `""` so it
// does not become a blank line, which readers skip.
func EncodeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := writeCSVRow(w, cw, t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range t.Records {
		if err := writeCSVRow(w, cw, padded(rec, len(t.Header))); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCSVRow(w io.Writer, cw *csv.Writer, row []string) error {
	if len(row) != 1 || row[0] != "" {
		return cw.Write(row)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\"\"\n")
	return err
}

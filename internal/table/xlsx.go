package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readXLSX loads the first worksheet of a workbook. Its first row is the header.
func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("failed to read %s: %w", path, ErrNoHeader)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to read %s: %w", path, ErrNoHeader)
	}

	t := &Table{Header: rows[0], Sheet: sheet}
	for _, row := range rows[1:] {
		// GetRows reports blank rows between data as empty slices.
		if len(row) == 0 {
			continue
		}
		t.Records = append(t.Records, row)
	}
	return t, nil
}

// EncodeXLSX writes t as a single-sheet workbook. The sheet is named after
// t.Sheet, or DefaultSheet when t did not come from a workbook.
func EncodeXLSX(w io.Writer, t *Table) error {
	x := excelize.NewFile()
	defer x.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	if sheet != DefaultSheet {
		if err := x.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	setRow := func(r int, row []string) error {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := x.SetCellStr(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := setRow(0, t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range t.Records {
		if err := setRow(i+1, padded(rec, len(t.Header))); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	if err := x.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

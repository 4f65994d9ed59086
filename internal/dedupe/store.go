package dedupe

import "github.com/leeovery/contactlist/internal/table"

// Store reads and replaces contact files.
type Store interface {
	Read(path string) (*table.Table, error)
	Write(path string, t *table.Table) error
}

// FileStore reads and atomically rewrites files on disk.
type FileStore struct{}

// Compile-time check that FileStore satisfies Store.
var _ Store = FileStore{}

// Read loads the file at path.
func (FileStore) Read(path string) (*table.Table, error) {
	return table.Read(path)
}

// Write replaces the file at path.
func (FileStore) Write(path string, t *table.Table) error {
	return table.Write(path, t)
}

// DryRunStore holds writes in memory instead of touching disk. Reads of a
// path written earlier in the run return the pending table, so later steps
// see what the file would contain.
type DryRunStore struct {
	base    Store
	pending map[string]*table.Table
}

// Compile-time check that DryRunStore satisfies Store.
var _ Store = (*DryRunStore)(nil)

// NewDryRunStore wraps base, which is only ever read.
func NewDryRunStore(base Store) *DryRunStore {
	return &DryRunStore{base: base, pending: make(map[string]*table.Table)}
}

// Read returns the pending table for path, or reads it from base.
func (d *DryRunStore) Read(path string) (*table.Table, error) {
	if t, ok := d.pending[path]; ok {
		return t, nil
	}
	return d.base.Read(path)
}

// Write records t as path's pending content.
func (d *DryRunStore) Write(path string, t *table.Table) error {
	d.pending[path] = t
	return nil
}

package index

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leeovery/contactlist/internal/contact"
)

func TestRebuildAndLookup(t *testing.T) {
	t.Run("it finds every case variant of an email with its position", func(t *testing.T) {
		ix, err := Open(filepath.Join(t.TempDir(), "index.db"))
		if err != nil {
			t.Fatalf("Open() returned error: %v", err)
		}
		defer ix.Close()

		emails := []string{"a@x.com", "B@x.com", "c@x.com", "b@x.com"}
		if err := ix.Rebuild(emails, []byte("v1")); err != nil {
			t.Fatalf("Rebuild() returned error: %v", err)
		}

		got, err := ix.Lookup(" b@X.COM ")
		if err != nil {
			t.Fatalf("Lookup() returned error: %v", err)
		}
		want := []Entry{
			{Position: 2, Email: "B@x.com", Key: "b@x.com"},
			{Position: 4, Email: "b@x.com", Key: "b@x.com"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Lookup() = %+v, want %+v", got, want)
		}
	})

	t.Run("it returns no entries for an unknown email", func(t *testing.T) {
		ix, err := Open(filepath.Join(t.TempDir(), "index.db"))
		if err != nil {
			t.Fatal(err)
		}
		defer ix.Close()
		if err := ix.Rebuild([]string{"a@x.com"}, []byte("v1")); err != nil {
			t.Fatal(err)
		}
		got, err := ix.Lookup("z@x.com")
		if err != nil || len(got) != 0 {
			t.Errorf("Lookup() = %v, %v, want empty, nil", got, err)
		}
	})

	t.Run("it replaces previous contents on rebuild", func(t *testing.T) {
		ix, err := Open(filepath.Join(t.TempDir(), "index.db"))
		if err != nil {
			t.Fatal(err)
		}
		defer ix.Close()
		if err := ix.Rebuild([]string{"a", "b", "c"}, []byte("v1")); err != nil {
			t.Fatal(err)
		}
		if err := ix.Rebuild([]string{"d"}, []byte("v2")); err != nil {
			t.Fatal(err)
		}
		n, err := ix.Count()
		if err != nil || n != 1 {
			t.Errorf("Count() = %d, %v, want 1, nil", n, err)
		}
	})
}

func TestIsFresh(t *testing.T) {
	t.Run("it is stale before the first build and fresh after", func(t *testing.T) {
		ix, err := Open(filepath.Join(t.TempDir(), "index.db"))
		if err != nil {
			t.Fatal(err)
		}
		defer ix.Close()

		fresh, err := ix.IsFresh([]byte("content"))
		if err != nil || fresh {
			t.Errorf("IsFresh() before build = %v, %v, want false, nil", fresh, err)
		}
		if err := ix.Rebuild(nil, []byte("content")); err != nil {
			t.Fatal(err)
		}
		fresh, err = ix.IsFresh([]byte("content"))
		if err != nil || !fresh {
			t.Errorf("IsFresh() after build = %v, %v, want true, nil", fresh, err)
		}
		fresh, _ = ix.IsFresh([]byte("changed"))
		if fresh {
			t.Error("IsFresh() with changed content = true, want false")
		}
	})
}

type recordingLogger struct{ msgs []string }

func (r *recordingLogger) Log(msg string) { r.msgs = append(r.msgs, msg) }

func TestEnsureFresh(t *testing.T) {
	t.Run("it builds a missing index", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.db")
		ix, err := EnsureFresh(path, []string{"a@x.com"}, []byte("v1"), nil)
		if err != nil {
			t.Fatalf("EnsureFresh() returned error: %v", err)
		}
		defer ix.Close()
		if n, _ := ix.Count(); n != 1 {
			t.Errorf("Count() = %d, want 1", n)
		}
	})

	t.Run("it skips the rebuild when content is unchanged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.db")
		ix, err := EnsureFresh(path, []string{"a@x.com"}, []byte("v1"), nil)
		if err != nil {
			t.Fatal(err)
		}
		ix.Close()

		logger := &recordingLogger{}
		// Different emails with the same content hash must not be indexed.
		ix, err = EnsureFresh(path, []string{"x", "y"}, []byte("v1"), logger)
		if err != nil {
			t.Fatalf("EnsureFresh() returned error: %v", err)
		}
		defer ix.Close()
		if n, _ := ix.Count(); n != 1 {
			t.Errorf("Count() = %d, want 1 (no rebuild)", n)
		}
		if len(logger.msgs) != 1 || logger.msgs[0] != "index: up to date" {
			t.Errorf("log = %v", logger.msgs)
		}
	})

	t.Run("it rebuilds when content changes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.db")
		ix, err := EnsureFresh(path, []string{"a"}, []byte("v1"), nil)
		if err != nil {
			t.Fatal(err)
		}
		ix.Close()

		ix, err = EnsureFresh(path, []string{"a", "b"}, []byte("v2"), nil)
		if err != nil {
			t.Fatal(err)
		}
		defer ix.Close()
		if n, _ := ix.Count(); n != 2 {
			t.Errorf("Count() = %d, want 2", n)
		}
	})

	t.Run("it recreates a corrupted database file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.db")
		if err := os.WriteFile(path, []byte("not a sqlite database"), 0644); err != nil {
			t.Fatal(err)
		}
		ix, err := EnsureFresh(path, []string{"a"}, []byte("v1"), nil)
		if err != nil {
			t.Fatalf("EnsureFresh() returned error: %v", err)
		}
		defer ix.Close()
		if n, _ := ix.Count(); n != 1 {
			t.Errorf("Count() = %d, want 1", n)
		}
	})
}

func TestLoadMaster(t *testing.T) {
	t.Run("it returns emails in file order and the raw content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master-2025.csv")
		content := "E-mail 1 - Value\nb@x.com\na@x.com\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		emails, raw, err := LoadMaster(path, contact.EmailColumn)
		if err != nil {
			t.Fatalf("LoadMaster() returned error: %v", err)
		}
		if !reflect.DeepEqual(emails, []string{"b@x.com", "a@x.com"}) {
			t.Errorf("emails = %v", emails)
		}
		if string(raw) != content {
			t.Errorf("raw = %q", raw)
		}
	})

	t.Run("it errors when the master list is missing", func(t *testing.T) {
		_, _, err := LoadMaster(filepath.Join(t.TempDir(), "missing.csv"), contact.EmailColumn)
		if err == nil {
			t.Error("LoadMaster() expected error, got nil")
		}
	})
}

func TestRecordedMaster(t *testing.T) {
	t.Run("it returns the path stored by SetMaster", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.db")
		ix, err := EnsureFresh(path, []string{"a@x.com"}, []byte("v1"), nil)
		if err != nil {
			t.Fatalf("EnsureFresh() returned error: %v", err)
		}
		if err := ix.SetMaster("other.csv"); err != nil {
			t.Fatalf("SetMaster() returned error: %v", err)
		}
		ix.Close()

		if got := RecordedMaster(path); got != "other.csv" {
			t.Errorf("RecordedMaster() = %q, want %q", got, "other.csv")
		}
	})

	t.Run("it keeps the recorded path across a rebuild", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.db")
		ix, err := EnsureFresh(path, []string{"a"}, []byte("v1"), nil)
		if err != nil {
			t.Fatal(err)
		}
		_ = ix.SetMaster("m.csv")
		if err := ix.Rebuild([]string{"b"}, []byte("v2")); err != nil {
			t.Fatalf("Rebuild() returned error: %v", err)
		}
		ix.Close()

		if got := RecordedMaster(path); got != "m.csv" {
			t.Errorf("RecordedMaster() = %q, want %q", got, "m.csv")
		}
	})

	t.Run("it returns empty when no path was recorded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.db")
		ix, err := EnsureFresh(path, nil, []byte("v1"), nil)
		if err != nil {
			t.Fatal(err)
		}
		ix.Close()

		if got := RecordedMaster(path); got != "" {
			t.Errorf("RecordedMaster() = %q, want empty", got)
		}
	})

	t.Run("it returns empty for a missing index without creating it", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "index.db")
		if got := RecordedMaster(path); got != "" {
			t.Errorf("RecordedMaster() = %q, want empty", got)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("index file created: %v", err)
		}
	})
}

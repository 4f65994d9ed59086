package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/leeovery/contactlist/internal/contact"
	"github.com/leeovery/contactlist/internal/testutil"
)

// runApp runs the CLI in dir and returns stdout, stderr and the exit code.
func runApp(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(&stdout, &stderr)
	code := app.Run(append([]string{"contactlist"}, args...), dir)
	return stdout.String(), stderr.String(), code
}

// writeContacts writes a single-column contact file into dir.
func writeContacts(t *testing.T, dir, name string, emails ...string) string {
	t.Helper()
	return testutil.WriteFile(t, dir, name, testutil.CSV(contact.EmailColumn, emails...))
}

func readContacts(t *testing.T, dir, name string) string {
	t.Helper()
	return testutil.ReadFile(t, filepath.Join(dir, name))
}

package cli

import (
	"fmt"
	"io"
)

// flagInfo describes a single command flag for help output.
type flagInfo struct {
	Name string // "--output"
	Arg  string // "<file>", "" for bool
	Desc string
}

// commandInfo describes a command for help output.
type commandInfo struct {
	Name        string
	Summary     string // one-line for top-level listing
	Usage       string
	Description string
	Flags       []flagInfo
}

// commands is the ordered registry of all contactlist commands.
var commands = []commandInfo{
	{
		Name:    "dedupe",
		Summary: "Remove duplicate rows across contact files",
		Usage:   "contactlist dedupe [pattern] [flags]",
		Description: "Processes files matching the pattern (default: ccs-2025-*.csv) in\n" +
			"lexical order. Each file's email column is trimmed and lowercased, and\n" +
			"rows whose email appeared in an earlier file are removed. Files are\n" +
			"rewritten in place, then every file's row count and the total are shown.",
		Flags: []flagInfo{
			{"--dry-run", "", "Report what would change without writing"},
		},
	},
	{
		Name:    "merge",
		Summary: "Merge contact files into one list of emails",
		Usage:   "contactlist merge [file...] [flags]",
		Description: "Reads the input files in order and writes each distinct email once,\n" +
			"at the position of its last occurrence. Emails are trimmed but keep\n" +
			"their case. Rows with no email are skipped. CSV output uses LF (\\n)\n" +
			"line endings, not CRLF.",
		Flags: []flagInfo{
			{"--output", "<file>", "Master list path (default: master-2025.csv)"},
			{"--xlsx", "<file>", "Also export the master list as a workbook"},
			{"--index", "", "Rebuild the lookup index after writing"},
		},
	},
	{
		Name:        "count",
		Summary:     "Show per-file and total row counts",
		Usage:       "contactlist count [pattern]",
		Description: "Counts data rows in every file matching the pattern (default: ccs-2025-*.csv).",
	},
	{
		Name:    "lookup",
		Summary: "Find emails in the master list",
		Usage:   "contactlist lookup <email>... [flags]",
		Description: "Looks up each email in the master list, ignoring case and surrounding\n" +
			"whitespace, and shows every matching entry with its position. The\n" +
			"master list is the one last indexed, or master-2025.csv.",
		Flags: []flagInfo{
			{"--master", "<file>", "Master list to search"},
		},
	},
	{
		Name:        "version",
		Summary:     "Print the version",
		Usage:       "contactlist version",
		Description: "Prints the contactlist version.",
	},
	{
		Name:        "help",
		Summary:     "Show help for a command",
		Usage:       "contactlist help [<command>]",
		Description: "Shows usage information. With no argument, lists all commands.\nWith a command name, shows detailed help for that command.",
	},
}

// findCommand returns the commandInfo for the given name, or nil.
func findCommand(name string) *commandInfo {
	for i := range commands {
		if commands[i].Name == name {
			return &commands[i]
		}
	}
	return nil
}

func (a *App) cmdHelp(args []string) {
	if len(args) > 0 {
		if cmd := findCommand(args[0]); cmd != nil {
			printCommandHelp(a.stdout, cmd)
			return
		}
		fmt.Fprintf(a.stdout, "Unknown command '%s'.\n\n", args[0])
	}
	printTopLevelHelp(a.stdout)
}

// printTopLevelHelp writes the full command listing to w.
func printTopLevelHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: contactlist <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s%s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	fmt.Fprintln(w, "  --quiet, -q        Suppress output")
	fmt.Fprintln(w, "  --verbose, -v      Show debug information")
	fmt.Fprintln(w, "  --toon             Force TOON output format")
	fmt.Fprintln(w, "  --pretty           Force pretty output format")
	fmt.Fprintln(w, "  --json             Force JSON output format")
	fmt.Fprintln(w, "  --config <file>    Read settings from file (default: contactlist.yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'contactlist help <command>' for detailed help on a command.")
}

// printCommandHelp writes detailed help for a single command to w.
func printCommandHelp(w io.Writer, cmd *commandInfo) {
	fmt.Fprintf(w, "Usage: %s\n\n", cmd.Usage)
	fmt.Fprintln(w, cmd.Description)
	if len(cmd.Flags) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	for _, f := range cmd.Flags {
		label := f.Name
		if f.Arg != "" {
			label += " " + f.Arg
		}
		fmt.Fprintf(w, "  %-18s%s\n", label, f.Desc)
	}
}

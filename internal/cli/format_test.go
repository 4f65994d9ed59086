package cli

import (
	"os"
	"strings"
	"testing"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name               string
		toon, pretty, json bool
		tty                bool
		want               Format
	}{
		{"it defaults to toon when not a tty", false, false, false, false, FormatToon},
		{"it defaults to pretty on a tty", false, false, false, true, FormatPretty},
		{"it honours --toon on a tty", true, false, false, true, FormatToon},
		{"it honours --pretty off a tty", false, true, false, false, FormatPretty},
		{"it honours --json", false, false, true, true, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFormat(tt.toon, tt.pretty, tt.json, tt.tty)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("it errors when multiple format flags are set", func(t *testing.T) {
		if _, err := ResolveFormat(true, true, false, false); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestDetectTTY(t *testing.T) {
	t.Run("it returns false for non-file writers", func(t *testing.T) {
		if DetectTTY(&strings.Builder{}) {
			t.Error("DetectTTY(strings.Builder) = true, want false")
		}
	})

	t.Run("it returns false for a regular file", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		if err != nil {
			t.Fatalf("create temp: %v", err)
		}
		defer f.Close()
		if DetectTTY(f) {
			t.Error("DetectTTY(regular file) = true, want false")
		}
	})
}

func TestNewFormatter(t *testing.T) {
	t.Run("it returns the formatter for each format", func(t *testing.T) {
		if _, ok := newFormatter(FormatToon).(*ToonFormatter); !ok {
			t.Error("toon: wrong formatter type")
		}
		if _, ok := newFormatter(FormatPretty).(*PrettyFormatter); !ok {
			t.Error("pretty: wrong formatter type")
		}
		if _, ok := newFormatter(FormatJSON).(*JSONFormatter); !ok {
			t.Error("json: wrong formatter type")
		}
	})
}

var (
	_ Formatter = (*ToonFormatter)(nil)
	_ Formatter = (*PrettyFormatter)(nil)
	_ Formatter = (*JSONFormatter)(nil)
)

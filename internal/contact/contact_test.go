package contact

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"it lowercases mixed case", "X@Y.com", "x@y.com"},
		{"it trims surrounding whitespace", "  x@y.com \t", "x@y.com"},
		{"it trims and lowercases together", " Jane.Doe@Example.ORG ", "jane.doe@example.org"},
		{"it maps an empty cell to the placeholder", "", MissingEmail},
		{"it maps a whitespace-only cell to the empty string", "   ", ""},
		{"it leaves an already normalized email unchanged", "a@b.c", "a@b.c"},
		{"it maps NULL to the placeholder", "NULL", MissingEmail},
		{"it maps N/A to the placeholder", "N/A", MissingEmail},
		{"it maps None to the placeholder", "None", MissingEmail},
		{"it maps #N/A to the placeholder", "#N/A", MissingEmail},
		{"it maps NA to the placeholder", "NA", MissingEmail},
		{"it only matches missing markers exactly", " NULL ", "null"},
		{"it does not treat a similar word as missing", "Nancy@x.com", "nancy@x.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.raw); got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}

	t.Run("it is idempotent", func(t *testing.T) {
		for _, raw := range []string{"X@Y.com ", "", " a@B.c"} {
			once := NormalizeEmail(raw)
			if twice := NormalizeEmail(once); twice != once {
				t.Errorf("NormalizeEmail(NormalizeEmail(%q)) = %q, want %q", raw, twice, once)
			}
		}
	})
}

func TestIsMissing(t *testing.T) {
	t.Run("it recognizes the default missing markers", func(t *testing.T) {
		for _, raw := range []string{"", "NaN", "nan", "null", "<NA>", "n/a", "-1.#IND"} {
			if !IsMissing(raw) {
				t.Errorf("IsMissing(%q) = false, want true", raw)
			}
		}
	})

	t.Run("it treats whitespace and real addresses as present", func(t *testing.T) {
		for _, raw := range []string{" ", "a@x.com", "NA ", "none"} {
			if IsMissing(raw) {
				t.Errorf("IsMissing(%q) = true, want false", raw)
			}
		}
	})
}

func TestTrimEmail(t *testing.T) {
	t.Run("it trims whitespace but keeps case", func(t *testing.T) {
		if got := TrimEmail("  A@X.com "); got != "A@X.com" {
			t.Errorf("TrimEmail() = %q, want %q", got, "A@X.com")
		}
	})

	t.Run("it does not substitute a placeholder for empty input", func(t *testing.T) {
		if got := TrimEmail(""); got != "" {
			t.Errorf("TrimEmail(\"\") = %q, want empty", got)
		}
	})

	t.Run("it disagrees with NormalizeEmail on case", func(t *testing.T) {
		// Merging folds whitespace only; deduping also folds case.
		if TrimEmail("A@x.com") == NormalizeEmail("A@x.com") {
			t.Error("expected TrimEmail and NormalizeEmail to differ for mixed-case input")
		}
	})
}

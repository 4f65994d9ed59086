// Package contact defines the email key used to deduplicate and merge
// contact-list exports.
package contact

import "strings"

// EmailColumn is the header of the column holding a contact's primary email.
const EmailColumn = "E-mail 1 - Value"

// MissingEmail stands in for an absent or empty email cell. Every blank
// email maps to this same key, so blank rows collide with each other.
const MissingEmail = "nan"

// missingMarkers are the cell values read as a missing value, matched
// exactly before any trimming. This is the default NA list of pandas.
var missingMarkers = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true,
	"-1.#IND": true, "-1.#QNAN": true, "-NaN": true, "-nan": true,
	"1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// IsMissing reports whether a raw cell counts as a missing email.
func IsMissing(raw string) bool {
	return missingMarkers[raw]
}

// NormalizeEmail returns the deduplication key for an email cell: trimmed and
// lowercased. A missing cell (see IsMissing) becomes MissingEmail first.
func NormalizeEmail(raw string) string {
	if IsMissing(raw) {
		raw = MissingEmail
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// TrimEmail removes leading and trailing whitespace only. Case is kept, so
// "A@x.com" and "a@x.com" are distinct when merging.
func TrimEmail(raw string) string {
	return strings.TrimSpace(raw)
}

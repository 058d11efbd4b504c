// Package names builds the join keys used to match case reports to
// administrative sectors.
//
// A key is the first whitespace-delimited token of a name, lowercased.
// Source files disagree on locality suffixes ("Kigali Central", "Kigali HC"),
// so keying on the first word raises match recall. Two distinct entities that
// share a first word will collide; that is a known limitation of the key, not
// something callers should paper over.
package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize returns the join key for name. An empty or blank name yields "",
// which never matches anything.
func Normalize(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	// Casers carry state; build one per call so Normalize is safe to share.
	return cases.Lower(language.Und).String(fields[0])
}

// NormalizeNullable is Normalize for values that may be absent.
func NormalizeNullable(name *string) string {
	if name == nil {
		return ""
	}
	return Normalize(*name)
}

// Package textnorm canonicalizes free-text names and emails so that records
// from the registry and the booking platform can be compared.
package textnorm

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Nordic letters that do not decompose under NFD.
var letterFolder = strings.NewReplacer(
	"ø", "o", "Ø", "o",
	"æ", "ae", "Æ", "ae",
	"å", "a", "Å", "a",
	"ö", "o", "Ö", "o",
	"ä", "a", "Ä", "a",
)

// transform.Transformer values are stateful, so each call takes its own chain.
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	},
}

// Normalize folds diacritics and club-locale letters to ASCII, lower-cases
// and trims s. It never fails: input that cannot be transformed is returned
// lower-cased and trimmed.
//
//	Normalize("Åse Østergård") == "ase ostergard"
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// lower-casing first also replaces invalid UTF-8 with U+FFFD
	lowered := strings.ToLower(s)

	t := chainPool.Get().(transform.Transformer)
	defer chainPool.Put(t)
	t.Reset()

	stripped, _, err := transform.String(t, lowered)
	if err != nil {
		stripped = lowered
	}
	// folded after the strip: ǿ and ǽ only reduce to ø and æ under NFD
	return strings.TrimSpace(letterFolder.Replace(stripped))
}

// Email lower-cases and trims an address. Addresses are compared verbatim
// otherwise, since diacritics are not valid in the local part we receive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FirstToken returns the first whitespace separated word of an already
// normalized name.
func FirstToken(normalized string) string {
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// FullName joins first and last name the way the booking platform displays it.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

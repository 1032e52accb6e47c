//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package norm reduces editorial Greek to the standardized majuscule
// alphabet of the plain text standard: accented and lowercase forms fold
// to bare capitals, editorial punctuation is purged, and uncertain
// letters receive a combining dot below.
package norm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/oli-do/PAPYRSER/internal/tbl"
)

// Majuscule - ἡμιόλιον --> ΗΜΙΟΛΙΟΝ, etc.
func Majuscule(s string) string {
	var bld strings.Builder
	bld.Grow(len(s))
	for _, r := range s {
		reduce(&bld, r, true)
	}
	return bld.String()
}

// reduce folds one rune. Runes missing from the reducer table are NFD
// decomposed once so that precomposed forms the table does not list still
// land on their base letter.
func reduce(bld *strings.Builder, r rune, decompose bool) {
	t := tbl.Maps
	if t.Purge[r] {
		return
	}
	if m, ok := t.Reducer[r]; ok {
		bld.WriteRune(m)
		return
	}
	if decompose {
		d := norm.NFD.String(string(r))
		if utf8.RuneCountInString(d) > 1 {
			for _, dr := range d {
				reduce(bld, dr, false)
			}
			return
		}
	}
	bld.WriteRune(unicode.ToUpper(r))
}

// PerLetter attaches a combining mark after every rune of s.
func PerLetter(s string, mark string) string {
	var bld strings.Builder
	for _, r := range s {
		bld.WriteRune(r)
		bld.WriteString(mark)
	}
	return bld.String()
}

// MarkUncertain flags every letter of s as an uncertain reading.
func MarkUncertain(s string) string {
	return PerLetter(s, string(tbl.UNCLEARMARK))
}

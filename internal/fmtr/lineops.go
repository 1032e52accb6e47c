//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package fmtr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oli-do/PAPYRSER/internal/str"
	"github.com/oli-do/PAPYRSER/internal/tbl"
)

//
// LINE NORMALIZATION
//

var (
	leadingvacat  = regexp.MustCompile(`^(?:\? )+`)
	trailingvacat = regexp.MustCompile(`(?: \?)+$`)
	onlybrackets  = regexp.MustCompile(`^[\[\]\-?]+$`)
	bracketdashes = regexp.MustCompile(`\[-+\]`)
	leadingedge   = regexp.MustCompile(`^\]?(?:\[-+\]|\[\?\])+`)
	trailingedge  = regexp.MustCompile(`(?:\[-+\]|\[\?\])+\[?$`)
	adjacentgaps  = regexp.MustCompile(`(?:\[-+\]){2,}`)
	unknownnext   = regexp.MustCompile(`(?:\[-+\])*\[\?\](?:\[-+\])*`)
	multiunknown  = regexp.MustCompile(`(?:\[\?\]){2,}`)
	multiabbrev   = regexp.MustCompile(`℅+`)
	startbrackets = regexp.MustCompile(`^\]+`)
	endbrackets   = regexp.MustCompile(`\[+$`)
)

// formatline cleans one rendered line: trims paddings and vacat markers
// from the edges, collapses adjacent lacunae, folds truncated edges to a
// single bracket, and drops lines that contain nothing but gap notation.
// An empty return means the line does not survive.
func formatline(s string) string {
	s = strings.ReplaceAll(s, "⁩", "")
	s = strings.TrimSpace(s)
	s = leadingvacat.ReplaceAllString(s, "")
	s = trailingvacat.ReplaceAllString(s, "")
	if s != "" && onlybrackets.MatchString(s) {
		if !strings.Contains(bracketdashes.ReplaceAllString(s, ""), "-") {
			return ""
		}
	}
	s = strings.ReplaceAll(s, "[]", "")
	s = startbrackets.ReplaceAllString(s, "]")
	s = endbrackets.ReplaceAllString(s, "[")
	s = leadingedge.ReplaceAllString(s, "]")
	s = trailingedge.ReplaceAllString(s, "[")
	s = adjacentgaps.ReplaceAllStringFunc(s, func(run string) string {
		return "[" + strings.Repeat("-", strings.Count(run, "-")) + "]"
	})
	s = unknownnext.ReplaceAllString(s, "[?]")
	s = multiunknown.ReplaceAllString(s, "[?]")
	s = multiabbrev.ReplaceAllString(s, "℅")
	return strings.ToUpper(s)
}

//
// LINE VALIDATION
//

var latingreek = strings.NewReplacer(
	"A", "Α", "B", "Β", "E", "Ε", "H", "Η", "I", "Ι", "K", "Κ", "M", "Μ",
	"N", "Ν", "O", "Ο", "P", "Ρ", "T", "Τ", "X", "Χ", "Y", "Υ", "Z", "Ζ")

const latintypos = "ABEHIKMNOPTXYZ"

// validateline checks that a finished line is made of vocabulary runes
// in a well-formed shape. On a purely Greek document, stray Latin
// capitals are taken for typos, swapped for their Greek lookalikes and
// reported as changes rather than errors.
func validateline(s string, grc bool) (string, []str.Violation, []string) {
	var vv []str.Violation
	var changes []string
	for {
		if validshape(s) {
			break
		}
		forbidden := forbiddenrunes(s)
		if len(forbidden) == 0 {
			vv = append(vv, str.Violation{Severity: str.SevError,
				Msg: fmt.Sprintf("invalid gap handling: %q", s)})
			break
		}
		fixed := false
		if grc {
			for _, c := range forbidden {
				if strings.ContainsRune(latintypos, c) {
					target := latingreek.Replace(string(c))
					s = strings.ReplaceAll(s, string(c), target)
					changes = append(changes, fmt.Sprintf("changed %q to %q in %q", c, target, s))
					fixed = true
				}
			}
		}
		if fixed {
			// drop findings made obsolete by the correction and recheck
			vv = nil
			continue
		}
		vv = append(vv, str.Violation{Severity: str.SevError,
			Msg: fmt.Sprintf("forbidden character(s) %q found in %q", string(forbidden), s)})
		break
	}
	if strings.Contains(s, "[]") {
		vv = append(vv, str.Violation{Severity: str.SevError, Msg: `contains "[]"`})
	}
	return s, vv, changes
}

// validshape - an optional truncation bracket on each edge, plain
// vocabulary runes at the interior edges, any vocabulary or gap notation
// in between
func validshape(s string) bool {
	rr := []rune(s)
	if len(rr) > 0 && rr[0] == ']' {
		rr = rr[1:]
	}
	if len(rr) > 0 && rr[len(rr)-1] == '[' {
		rr = rr[:len(rr)-1]
	}
	if len(rr) == 0 {
		return false
	}
	if !plainrune(rr[0]) || !plainrune(rr[len(rr)-1]) {
		return false
	}
	for _, r := range rr {
		if !allowedrune(r) {
			return false
		}
	}
	return true
}

// plainrune - vocabulary content including dashes, excluding the gap
// notation runes that may not touch a line's visible edges
func plainrune(r rune) bool {
	if r == '[' || r == ']' || r == '?' {
		return false
	}
	return tbl.Maps.InVocabulary(r)
}

func allowedrune(r rune) bool {
	return tbl.Maps.InVocabulary(r)
}

func forbiddenrunes(s string) []rune {
	var ff []rune
	for _, r := range s {
		if !allowedrune(r) {
			ff = append(ff, r)
		}
	}
	return ff
}

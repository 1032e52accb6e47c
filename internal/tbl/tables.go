//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package tbl holds the symbol tables that drive the conversion: the
// majuscule feeder/reducer pair, the abbreviation prefixes, the glyph,
// milestone and rendition lookups, and the marker runes for scribal
// additions. The tables ship as embedded JSON so the data can be
// audited and extended without touching code.
package tbl

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed tables/*.json
var tablefs embed.FS

const (
	// UNKNOWNABBREV stands in for an abbreviation with no symbol of its own
	UNKNOWNABBREV = '℅'

	// UNCLEARMARK is appended to each rune the editor read but flagged as uncertain
	UNCLEARMARK = '̣'
)

var (
	// built once at startup; all lookups after that are map reads
	Maps = loadtables()
)

// RenditionSpec describes one <hi> rend value: the combining mark and
// whether it attaches to every letter or only to the final one.
type RenditionSpec struct {
	Mark      string `json:"mark"`
	Mode      string `json:"mode"`
	PerLetter bool   `json:"-"`
}

// SymbolTables aggregates every lookup the converter needs.
type SymbolTables struct {
	Feeder        []rune
	Reducer       map[rune]rune
	Purge         map[rune]bool
	Abbreviations map[string]string
	GlyphTypes    map[string]string
	Milestones    map[string]string
	Renditions    map[string]RenditionSpec
	Additions     map[string]string
	Vocabulary    majusculevocab
}

type majusculevocab map[rune]bool

type majusculejson struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Purge  string `json:"purge"`
}

type extrajson struct {
	Other string `json:"other"`
}

// UnsupportedSymbolError reports a TEI symbol attribute with no entry in
// the tables. The converter treats it as a hard failure rather than
// silently dropping the glyph.
type UnsupportedSymbolError struct {
	Element string
	Value   string
}

func (e *UnsupportedSymbolError) Error() string {
	return fmt.Sprintf("unsupported symbol: <%s> has no table entry for %q", e.Element, e.Value)
}

// loadtables builds the SymbolTables from the embedded JSON. A bad table
// is a packaging error and panics at startup.
func loadtables() *SymbolTables {
	const (
		PANIC = "tbl: cannot load %s: %v"
	)

	st := &SymbolTables{}

	var mj majusculejson
	mustload("tables/majuscule.json", &mj)
	fd := []rune(mj.Input)
	rd := []rune(mj.Output)
	if len(fd) != len(rd) {
		panic(fmt.Sprintf(PANIC, "majuscule.json", "feeder and reducer lengths differ"))
	}
	st.Feeder = fd
	st.Reducer = make(map[rune]rune, len(fd))
	for i, r := range fd {
		st.Reducer[r] = rd[i]
	}
	st.Purge = make(map[rune]bool)
	for _, r := range mj.Purge {
		st.Purge[r] = true
	}

	mustload("tables/abbreviations.json", &st.Abbreviations)
	mustload("tables/glyphtypes.json", &st.GlyphTypes)
	mustload("tables/milestones.json", &st.Milestones)
	mustload("tables/renditions.json", &st.Renditions)
	mustload("tables/additions.json", &st.Additions)

	for k, v := range st.Renditions {
		v.PerLetter = v.Mode == "perletter"
		st.Renditions[k] = v
	}

	var ex extrajson
	mustload("tables/extravocab.json", &ex)
	st.Vocabulary = buildvocab(st, ex.Other)

	return st
}

func mustload(name string, into any) {
	b, e := tablefs.ReadFile(name)
	if e != nil {
		panic(fmt.Sprintf("tbl: cannot load %s: %v", name, e))
	}
	if e = json.Unmarshal(b, into); e != nil {
		panic(fmt.Sprintf("tbl: cannot load %s: %v", name, e))
	}
}

// buildvocab assembles the full set of runes a finished line may contain:
// the reduced majuscule alphabet, every symbol the tables can emit, the
// structural characters, and a handful of extras that the tables never
// produce but legitimate transcriptions carry.
func buildvocab(st *SymbolTables, extra string) majusculevocab {
	v := make(majusculevocab)
	add := func(s string) {
		for _, r := range s {
			v[r] = true
		}
	}
	for _, r := range st.Reducer {
		v[r] = true
	}
	for _, s := range st.Abbreviations {
		add(s)
	}
	for _, s := range st.GlyphTypes {
		add(s)
	}
	for _, s := range st.Milestones {
		add(s)
	}
	for _, rs := range st.Renditions {
		add(rs.Mark)
	}
	for _, s := range st.Additions {
		add(s)
	}
	add(extra)
	add("[]-?")
	v[UNKNOWNABBREV] = true
	v[UNCLEARMARK] = true
	return v
}

// Abbreviation resolves an expanded abbreviation by the exact majuscule
// form of its expansion text. The boolean reports whether the key is
// known at all; a known key can still map to an empty symbol, in which
// case UNKNOWNABBREV applies.
func (st *SymbolTables) Abbreviation(majuscule string) (string, bool) {
	s, ok := st.Abbreviations[majuscule]
	if !ok {
		return string(UNKNOWNABBREV), false
	}
	if s == "" {
		return string(UNKNOWNABBREV), true
	}
	return s, true
}

// GlyphType resolves a <g type="..."> value.
func (st *SymbolTables) GlyphType(t string) (string, error) {
	s, ok := st.GlyphTypes[t]
	if !ok {
		return "", &UnsupportedSymbolError{Element: "g", Value: t}
	}
	return s, nil
}

// Milestone resolves a <milestone rend="..."> value.
func (st *SymbolTables) Milestone(rend string) (string, error) {
	s, ok := st.Milestones[rend]
	if !ok {
		return "", &UnsupportedSymbolError{Element: "milestone", Value: rend}
	}
	return s, nil
}

// Rendition resolves a <hi rend="..."> value. Unknown renditions are not
// an error: the original text passes through unmarked.
func (st *SymbolTables) Rendition(rend string) (RenditionSpec, bool) {
	rs, ok := st.Renditions[rend]
	return rs, ok
}

// AdditionMark resolves an <add place="..."> marker.
func (st *SymbolTables) AdditionMark(place string) (string, bool) {
	s, ok := st.Additions[place]
	return s, ok
}

// InVocabulary reports whether a rune may appear in a finished line.
func (st *SymbolTables) InVocabulary(r rune) bool {
	return st.Vocabulary[r]
}

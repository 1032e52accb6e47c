//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package fmtr turns a parsed line/token model into validated plain text.
// Rendering a lacuna is a pure function of its variant, reason, boundary
// position and length; everything position-dependent was already decided
// when the parser froze the line.
package fmtr

import (
	"strings"

	"github.com/oli-do/PAPYRSER/internal/gen"
	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/norm"
	"github.com/oli-do/PAPYRSER/internal/str"
	"github.com/oli-do/PAPYRSER/internal/tbl"
)

// Formatter - validates and serializes one Document at a time; safe to
// reuse across documents, not across goroutines
type Formatter struct {
	Msg    *mm.MessageMaker
	Ignore bool // downgrade validation errors to warnings
	Strict bool // fail on the first error instead of collecting
}

func NewFormatter(msg *mm.MessageMaker, ignore bool, strict bool) *Formatter {
	if msg == nil {
		msg = mm.NewMessageMaker("fmtr", "", "FMT")
	}
	return &Formatter{Msg: msg, Ignore: ignore, Strict: strict}
}

// Format renders, normalizes and validates every line of the document.
// Violations accumulate in the report; output is returned even when the
// report is dirty so that callers configured to tolerate issues can
// still emit text. Strict mode aborts on the first error instead.
func (f *Formatter) Format(d *str.Document) (*str.Output, *str.ValidationReport, error) {
	out := &str.Output{TM: d.TM, Name: d.Name}
	rep := &str.ValidationReport{TM: d.TM, Downgraded: f.Ignore}
	grc := len(d.Languages) == 1 && d.Languages[0] == "grc"

	for pi := range d.Parts {
		var texts []string
		var recs []str.LineRecord
		for _, ln := range d.Parts[pi].Lines {
			text, vv := f.renderline(&ln)
			text = formatline(text)
			if text == "" {
				continue
			}
			text, lvv, changes := validateline(text, grc)
			vv = append(vv, lvv...)
			rep.Changes = append(rep.Changes, changes...)
			for _, v := range vv {
				v.Part = pi + 1
				v.Line = ln.N
				if f.Ignore {
					v.Severity = str.SevWarning
				}
				rep.Violations = append(rep.Violations, v)
				if f.Strict && v.Severity == str.SevError {
					return nil, rep, &tbl.UnsupportedSymbolError{Element: "line", Value: v.Msg}
				}
			}
			if text == "" {
				continue
			}
			texts = append(texts, text)
			recs = append(recs, str.LineRecord{N: ln.N, Text: text})
		}
		if len(texts) > 0 {
			out.Parts = append(out.Parts, texts)
			out.Records = append(out.Records, str.PartRecord{Lines: recs})
		}
	}
	return out, rep, nil
}

//
// TOKEN RENDERING
//

// renderline serializes one frozen line and reports its token-level
// findings: symbols with no table entry and addition tokens that no
// relocation pass resolved.
func (f *Formatter) renderline(ln *str.Line) (string, []str.Violation) {
	var bld strings.Builder
	var vv []str.Violation
	for i := range ln.Tokens {
		bld.WriteString(f.rendertoken(&ln.Tokens[i], &vv))
	}
	return bld.String(), vv
}

func (f *Formatter) rendertoken(t *str.Token, vv *[]str.Violation) string {
	switch t.Kind {
	case str.GlyphTk:
		if t.Uncertain {
			return string(t.Ch) + string(tbl.UNCLEARMARK)
		}
		return string(t.Ch)
	case str.GapTk, str.SuppliedTk:
		return renderlacuna(t)
	case str.SpaceTk:
		if t.Len == str.UnknownLen {
			return " ? "
		}
		return gen.RepeatRune(' ', t.Len)
	case str.MilestoneTk:
		if t.Sym == "" {
			err := &tbl.UnsupportedSymbolError{Element: "milestone", Value: t.Rend}
			*vv = append(*vv, str.Violation{Severity: str.SevError, Msg: err.Error()})
		}
		return t.Sym
	case str.AbbreviationTk:
		return t.Sym
	case str.GlyphTypeTk:
		if t.Sym == "" && t.Attr != "" {
			err := &tbl.UnsupportedSymbolError{Element: "g", Value: t.Attr}
			*vv = append(*vv, str.Violation{Severity: str.SevError, Msg: err.Error()})
		}
		return t.Sym
	case str.RenditionTk:
		return f.renderrendition(t, vv)
	case str.AddedTk:
		if t.Target != str.InPlace {
			*vv = append(*vv, str.Violation{Severity: str.SevError,
				Msg: "addition was never relocated to its target line"})
			return ""
		}
		return t.Sym
	}
	return ""
}

// renderrendition applies a <hi> mark to its rendered content. Nested
// marks attach innermost first, so the combining characters end up in
// canonical order (base, then the inner mark, then the outer). Unknown
// renditions pass the content through untouched.
func (f *Formatter) renderrendition(t *str.Token, vv *[]str.Violation) string {
	var inner strings.Builder
	for i := range t.Inner {
		inner.WriteString(f.rendertoken(&t.Inner[i], vv))
	}
	spec, ok := tbl.Maps.Rendition(t.Rend)
	if !ok {
		return inner.String()
	}
	if spec.PerLetter {
		return norm.PerLetter(inner.String(), spec.Mark)
	}
	return inner.String() + spec.Mark
}

// renderlacuna encodes the boundary rule: truncated edges collapse to a
// single bracket, quantified loss becomes a bracketed dash run, bare
// dashes mean illegible-but-present, and an unquantified mid-line gap
// is an open question.
func renderlacuna(t *str.Token) string {
	if t.Bracketed() {
		switch t.Pos {
		case str.LineStart:
			return "]"
		case str.LineEnd:
			return "["
		}
	}
	if t.Kind == str.GapTk && t.Reason == str.ReasonIllegible && t.Len != str.UnknownLen {
		return gen.RepeatRune('-', t.Len)
	}
	if t.Len == str.UnknownLen {
		return "[?]"
	}
	return "[" + gen.RepeatRune('-', t.Len) + "]"
}

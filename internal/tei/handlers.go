//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tei

import (
	"math"
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/oli-do/PAPYRSER/internal/norm"
	"github.com/oli-do/PAPYRSER/internal/str"
	"github.com/oli-do/PAPYRSER/internal/tbl"
)

//
// ELEMENT DISPATCH
//
// one handler per supported element; generic inline containers simply
// recurse; elements that are deliberately not transcribed are skipped;
// anything else that carries text is a ParseError, never silent loss
//

func (p *Parser) node(n *xmlquery.Node, b *builder, unc bool) error {
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		p.glyphs(b, norm.Majuscule(n.Data), unc)
		return nil
	case xmlquery.ElementNode:
		return p.element(n, b, unc)
	}
	return nil
}

func (p *Parser) children(n *xmlquery.Node, b *builder, unc bool) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if e := p.node(c, b, unc); e != nil {
			return e
		}
	}
	return nil
}

func (p *Parser) element(n *xmlquery.Node, b *builder, unc bool) error {
	switch n.Data {
	case "lb":
		b.boundary(lbnumber(n))
	case "gap":
		p.gap(n, b)
	case "space":
		p.space(n, b)
	case "supplied":
		p.supplied(n, b)
	case "unclear":
		return p.children(n, b, true)
	case "milestone":
		p.milestone(n, b)
	case "expan":
		return p.expan(n, b)
	case "ex":
		// only meaningful inside <expan>; alone it adds nothing
	case "add":
		return p.added(n, b)
	case "subst":
		return p.subst(n, b)
	case "num":
		if e := p.children(n, b, unc); e != nil {
			return e
		}
		if n.SelectAttr("tick") != "" {
			b.push(str.Token{Kind: str.GlyphTk, Ch: '\''})
		}
	case "g":
		typ := n.SelectAttr("type")
		sym, e := tbl.Maps.GlyphType(typ)
		if e != nil {
			p.Msg.FYI("<g> with unmapped type " + typ)
		}
		b.push(str.Token{Kind: str.GlyphTypeTk, Sym: sym, Attr: typ})
	case "hi":
		inner, e := p.collect(n, unc)
		if e != nil {
			return e
		}
		b.push(str.Token{Kind: str.RenditionTk, Rend: n.SelectAttr("rend"), Inner: inner})
	case "lem", "orig", "sic", "surplus", "abbr", "q", "choice", "app",
		"seg", "w", "foreign", "name", "persName", "placeName", "date":
		return p.children(n, b, unc)
	case "reg", "rdg", "corr", "del", "note", "desc", "figDesc",
		"handShift", "certainty", "ref", "figure":
		p.Msg.TMI("skipping <" + n.Data + ">")
	default:
		if hastext(n) {
			return &ParseError{Element: n.Data, Msg: "unhandled element with text content"}
		}
		p.Msg.FYI("skipping empty unhandled <" + n.Data + ">")
	}
	return nil
}

// glyphs turns normalized majuscule text into one token per rune.
func (p *Parser) glyphs(b *builder, s string, unc bool) {
	for _, r := range s {
		b.push(str.Token{Kind: str.GlyphTk, Ch: r, Uncertain: unc})
	}
}

// collect walks an element's children into a detached token run. Line
// boundaries inside the captured content are ignored.
func (p *Parser) collect(n *xmlquery.Node, unc bool) ([]str.Token, error) {
	sub := &builder{capture: true}
	if e := p.children(n, sub, unc); e != nil {
		return nil, e
	}
	return sub.cur, nil
}

//
// LACUNAE
//

// gap maps <gap> attributes onto a Gap token. Quantified gaps carry a
// rune count; atLeast/atMost pairs average out; anything the edition
// leaves open becomes an unknown-length lost gap.
func (p *Parser) gap(n *xmlquery.Node, b *builder) {
	unknown := str.Token{Kind: str.GapTk, Reason: str.ReasonLost, Len: str.UnknownLen}
	unit := n.SelectAttr("unit")
	if unit == "" {
		b.push(unknown)
		return
	}
	if unit == "line" {
		return
	}
	switch n.SelectAttr("reason") {
	case "illegible":
		if q, ok := intattr(n, "quantity"); ok {
			b.push(str.Token{Kind: str.GapTk, Reason: str.ReasonIllegible, Len: q})
		} else if a, ok := rangeavg(n); ok {
			b.push(str.Token{Kind: str.GapTk, Reason: str.ReasonIllegible, Len: a})
		} else {
			b.push(str.Token{Kind: str.GapTk, Reason: str.ReasonIllegible, Len: str.UnknownLen})
		}
	case "":
		b.push(unknown)
	default:
		if q, ok := intattr(n, "quantity"); ok {
			b.push(str.Token{Kind: str.GapTk, Reason: str.ReasonLost, Len: q})
		} else if ext := n.SelectAttr("extent"); ext != "" {
			if ext == "unknown" {
				b.push(unknown)
			}
			// a measured extent in non-character units adds nothing
		} else if a, ok := rangeavg(n); ok {
			b.push(str.Token{Kind: str.GapTk, Reason: str.ReasonLost, Len: a})
		} else {
			b.push(unknown)
		}
	}
}

func (p *Parser) space(n *xmlquery.Node, b *builder) {
	unit := n.SelectAttr("unit")
	if unit == "" {
		b.push(str.Token{Kind: str.SpaceTk, Len: str.UnknownLen})
		return
	}
	if unit == "line" {
		return
	}
	if q, ok := intattr(n, "quantity"); ok {
		b.push(str.Token{Kind: str.SpaceTk, Len: q})
	} else if a, ok := rangeavg(n); ok {
		b.push(str.Token{Kind: str.SpaceTk, Len: a})
	} else if n.SelectAttr("extent") != "" {
		b.push(str.Token{Kind: str.SpaceTk, Len: str.UnknownLen})
	}
}

// supplied emits an editorially restored stretch as a Supplied token
// sized by the restored text. Omitted text was never on the papyrus and
// leaves no trace in the output.
func (p *Parser) supplied(n *xmlquery.Node, b *builder) {
	if n.SelectAttr("reason") == "omitted" {
		return
	}
	ln := suppliedlen(n)
	if ln >= 1 {
		b.push(str.Token{Kind: str.SuppliedTk, Len: ln})
	}
}

// suppliedlen counts the majuscule runes of all restored text, plus the
// extent of any quantified gap nested inside the restoration.
func suppliedlen(n *xmlquery.Node) int {
	ln := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			ln += len([]rune(norm.Majuscule(c.Data)))
		case xmlquery.ElementNode:
			if c.Data == "gap" {
				if q, ok := intattr(c, "quantity"); ok {
					ln += q
				}
				continue
			}
			ln += suppliedlen(c)
		}
	}
	return ln
}

func (p *Parser) milestone(n *xmlquery.Node, b *builder) {
	rend := n.SelectAttr("rend")
	if rend == "" {
		p.Msg.FYI("skipping <milestone> without rend")
		return
	}
	sym, e := tbl.Maps.Milestone(rend)
	if e != nil {
		p.Msg.FYI("<milestone> with unmapped rend " + rend)
	}
	b.boundary(0)
	b.push(str.Token{Kind: str.MilestoneTk, Rend: rend, Sym: sym})
}

//
// ABBREVIATIONS AND SCRIBAL ADDITIONS
//

// expan prefers the literal reading: when anything outside the <ex>
// children produces output, that output stands and the abbreviation
// table is never consulted. Only a bare symbolic expansion falls back
// to the table.
func (p *Parser) expan(n *xmlquery.Node, b *builder) error {
	lit := &builder{capture: true}
	var exs []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == "ex" {
			exs = append(exs, c)
			continue
		}
		if e := p.node(c, lit, false); e != nil {
			return e
		}
	}
	if len(lit.cur) > 0 {
		b.cur = append(b.cur, lit.cur...)
		return nil
	}
	for _, ex := range exs {
		// the table keys on the first five letters of the expansion
		key := norm.Majuscule(ex.InnerText())
		if r := []rune(key); len(r) > 5 {
			key = string(r[:5])
		}
		sym, known := tbl.Maps.Abbreviation(key)
		if !known {
			p.Msg.TMI("abbreviation with no table entry: " + key)
		}
		b.push(str.Token{Kind: str.AbbreviationTk, Sym: sym, Attr: key})
	}
	return nil
}

// subst keeps the scribe's final text: an inline <add> child wins
// outright, otherwise the deleted original is carried. Lacunae inside
// the substitution do not survive into the line.
func (p *Parser) subst(n *xmlquery.Node, b *builder) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == "add" && c.SelectAttr("place") == "inline" {
			p.glyphs(b, norm.Majuscule(c.InnerText()), false)
			return nil
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode || c.Data != "del" {
			continue
		}
		tt, e := p.collect(c, false)
		if e != nil {
			return e
		}
		for _, t := range tt {
			if t.Kind == str.GapTk && t.Reason == str.ReasonLost && t.Len != str.UnknownLen {
				continue
			}
			if t.Kind == str.SuppliedTk && t.Len != str.UnknownLen {
				continue
			}
			b.push(t)
		}
	}
	return nil
}

// added captures <add> content and decides its fate by placement: text
// above or to the left moves to a fresh line before this one, text below
// or to the right to a fresh line after it, each leaving an arrow marker
// in place. Marginal additions keep only their marker.
func (p *Parser) added(n *xmlquery.Node, b *builder) error {
	inner, e := p.collect(n, false)
	if e != nil {
		return e
	}
	place := n.SelectAttr("place")
	mark, _ := tbl.Maps.AdditionMark(place)
	switch place {
	case "above":
		if len(inner) > 1 {
			b.push(str.Token{Kind: str.AddedTk, Target: str.PreviousLine, Sym: mark, Inner: inner})
		} else {
			b.cur = append(b.cur, inner...)
		}
	case "below":
		b.push(str.Token{Kind: str.AddedTk, Target: str.NextLine, Sym: mark, Inner: inner})
	case "left":
		b.push(str.Token{Kind: str.AddedTk, Target: str.PreviousLine, Sym: mark, Inner: inner})
	case "right":
		b.push(str.Token{Kind: str.AddedTk, Target: str.NextLine, Sym: mark, Inner: inner})
	case "margin", "bottom", "top":
		b.push(str.Token{Kind: str.AddedTk, Target: str.InPlace, Sym: mark})
	case "interlinear":
		b.push(str.Token{Kind: str.AddedTk, Target: str.PreviousLine, Inner: inner})
	default:
		b.cur = append(b.cur, inner...)
	}
	return nil
}

//
// ATTRIBUTE HELPERS
//

func intattr(n *xmlquery.Node, name string) (int, bool) {
	v, e := strconv.Atoi(n.SelectAttr(name))
	if e != nil {
		return 0, false
	}
	return v, true
}

// rangeavg averages an atLeast/atMost pair; both bounds must be present.
func rangeavg(n *xmlquery.Node) (int, bool) {
	lo, ok := intattr(n, "atLeast")
	if !ok {
		return 0, false
	}
	hi, ok := intattr(n, "atMost")
	if !ok {
		return 0, false
	}
	return int(math.Round(float64(lo+hi) / 2)), true
}

func hastext(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if norm.Majuscule(c.Data) != "" {
				return true
			}
		case xmlquery.ElementNode:
			if hastext(c) {
				return true
			}
		}
	}
	return false
}

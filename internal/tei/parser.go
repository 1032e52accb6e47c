//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package tei walks a TEI-XML edition and builds the line/token model
// the formatter consumes. One <ab> element yields one text part; inside
// a part the walker buffers tokens until a line boundary, then freezes
// the line and assigns boundary positions to its lacuna tokens.
package tei

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/str"
)

// ParseError - markup structure that prevents building a coherent token
// sequence; fatal for the current document only
type ParseError struct {
	Name    string
	Part    int
	Element string
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s (part %d): <%s>: %s", e.Name, e.Part, e.Element, e.Msg)
}

// Parser - one instance per document; holds no state across Parse calls
type Parser struct {
	Msg *mm.MessageMaker
}

func NewParser(msg *mm.MessageMaker) *Parser {
	if msg == nil {
		msg = mm.NewMessageMaker("tei", "", "TEI")
	}
	return &Parser{Msg: msg}
}

// ParseFile reads and parses a single TEI-XML file.
func (p *Parser) ParseFile(path string) (*str.Document, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	root, e := xmlquery.Parse(f)
	if e != nil {
		return nil, fmt.Errorf("parse %s: %w", path, e)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p.Parse(root, name)
}

// Parse transforms one parsed TEI tree into a Document. Every <ab> that
// contains at least one <lb> becomes a text part; content before the
// first <lb> is outside any line and is skipped, as the editions place
// only metadata there.
func (p *Parser) Parse(root *xmlquery.Node, name string) (*str.Document, error) {
	doc := &str.Document{Name: name}
	doc.TM = findtm(root)
	doc.Languages = findlanguages(root)

	for i, ab := range xmlquery.Find(root, "//ab") {
		first := firstlb(ab)
		if first == nil {
			continue
		}
		b := &builder{}
		b.open(lbnumber(first))
		for sib := first.NextSibling; sib != nil; sib = sib.NextSibling {
			if e := p.node(sib, b, false); e != nil {
				if pe, ok := e.(*ParseError); ok {
					pe.Name = name
					pe.Part = i + 1
				}
				return nil, e
			}
		}
		part := b.close()
		part.Lines = relocate(part.Lines)
		if len(part.Lines) > 0 {
			doc.Parts = append(doc.Parts, part)
		}
	}
	return doc, nil
}

// findtm pulls the Trismegistos number out of the header.
func findtm(root *xmlquery.Node) int {
	n := xmlquery.FindOne(root, "//idno[@type='TM']")
	if n == nil {
		return 0
	}
	tm, e := strconv.Atoi(strings.TrimSpace(n.InnerText()))
	if e != nil {
		return 0
	}
	return tm
}

// findlanguages collects every non-English xml:lang value in the file.
// The typo corrector only runs on purely Greek documents.
func findlanguages(root *xmlquery.Node) []string {
	seen := make(map[string]bool)
	var langs []string
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for _, a := range n.Attr {
			if a.Name.Local == "lang" && a.Value != "en" && !seen[a.Value] {
				seen[a.Value] = true
				langs = append(langs, a.Value)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return langs
}

func firstlb(ab *xmlquery.Node) *xmlquery.Node {
	for c := ab.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == "lb" {
			return c
		}
	}
	return nil
}

func lbnumber(lb *xmlquery.Node) int {
	n, e := strconv.Atoi(strings.TrimSpace(lb.SelectAttr("n")))
	if e != nil {
		return 0
	}
	return n
}

//
// THE PENDING LINE BUFFER
//

// builder accumulates tokens for the line currently being read. Lacuna
// positions depend on where a token sits once the whole line is known,
// so nothing is frozen before a line boundary arrives.
type builder struct {
	lines   []str.Line
	cur     []str.Token
	curn    int
	nextn   int
	capture bool // inner content of <hi>/<add>; line boundaries do not apply
}

func (b *builder) open(n int) {
	if n == 0 {
		n = b.nextn
	}
	b.cur = nil
	b.curn = n
	b.nextn = n + 1
}

func (b *builder) push(t str.Token) {
	b.cur = append(b.cur, t)
}

// boundary freezes the current line and opens the next one. An explicit
// lb number wins over the running count.
func (b *builder) boundary(n int) {
	if b.capture {
		return
	}
	b.freeze()
	b.open(n)
}

func (b *builder) freeze() {
	if len(b.cur) == 0 {
		return
	}
	assignpositions(b.cur)
	b.lines = append(b.lines, str.Line{N: b.curn, Tokens: b.cur})
	b.cur = nil
}

func (b *builder) close() str.TextPart {
	b.freeze()
	return str.TextPart{Lines: b.lines}
}

// assignpositions marks the maximal run of bracket-rendering lacunae at
// each edge of a frozen line. An illegible gap with a known length
// renders as bare dashes and therefore blocks the edge run on its side.
func assignpositions(tt []str.Token) {
	first := 0
	for first < len(tt) && tt[first].Bracketed() {
		tt[first].Pos = str.LineStart
		first++
	}
	last := len(tt) - 1
	for last >= first && tt[last].Bracketed() {
		tt[last].Pos = str.LineEnd
		last--
	}
}

//
// RELOCATION OF <add> CONTENT
//

// relocate runs after a part's lines are all buffered: every Added token
// bound to a neighboring line is spliced out into a fresh inserted line,
// leaving only its marker in place. Inserted lines carry no number.
func relocate(lines []str.Line) []str.Line {
	var out []str.Line
	for _, ln := range lines {
		var before, after []str.Line
		for i := range ln.Tokens {
			t := &ln.Tokens[i]
			if t.Kind != str.AddedTk || t.Target == str.InPlace {
				continue
			}
			moved := str.Line{Tokens: t.Inner, Inserted: true}
			assignpositions(moved.Tokens)
			if t.Target == str.PreviousLine {
				before = append(before, moved)
			} else {
				after = append(after, moved)
			}
			t.Inner = nil
			t.Target = str.InPlace
		}
		out = append(out, before...)
		out = append(out, ln)
		out = append(out, after...)
	}
	return out
}

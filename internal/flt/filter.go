//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package flt selects conversion targets by edition metadata instead of
// TM number: title, place of origin, or DCLP hybrid identifier.
package flt

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"

	"github.com/oli-do/PAPYRSER/internal/idx"
	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/vv"
)

// PapyrusFilter - one metadata query over the corpus files
type PapyrusFilter struct {
	Msg                 *mm.MessageMaker
	IdpDataPath         string
	Target              string // "dclp", "ddb" or "all"
	Title               string
	Place               string
	DCLPHybrid          string
	SingleMatchSuffices bool
	Name                string
}

// Validate normalizes the filter and rejects one that can never match.
func (pf *PapyrusFilter) Validate() error {
	if pf.Msg == nil {
		pf.Msg = mm.NewMessageMaker("flt", "", "FLT")
	}
	if pf.Target == "ddb" {
		// DDB files carry no dclp-hybrid identifier
		pf.DCLPHybrid = ""
	}
	if pf.Title == "" && pf.Place == "" && pf.DCLPHybrid == "" {
		return fmt.Errorf("papyrus filter: title, place, or dclp-hybrid must be set")
	}
	if pf.Name == "" {
		pf.Name = fmt.Sprintf("filter-%s-%s-%s-%s-%t",
			pf.Target, pf.Title, pf.Place, pf.DCLPHybrid, pf.SingleMatchSuffices)
	}
	return nil
}

// Filter scans the corpus with a worker pool and returns the TM numbers
// of every matching file.
func (pf *PapyrusFilter) Filter(workers int) ([]int, error) {
	if e := pf.Validate(); e != nil {
		return nil, e
	}
	var roots []string
	switch pf.Target {
	case "dclp":
		roots = []string{filepath.Join(pf.IdpDataPath, vv.DCLPDIR)}
	case "ddb":
		roots = []string{filepath.Join(pf.IdpDataPath, vv.DDBDIR)}
	default:
		roots = []string{pf.IdpDataPath}
	}
	var files []string
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && strings.HasSuffix(path, ".xml") {
				files = append(files, path)
			}
			return nil
		})
	}

	if workers < 1 {
		workers = 1
	}
	feeder := make(chan string, workers)
	results := make(chan []int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range feeder {
				if pf.matches(path) {
					results <- idx.ExtractTMs(path)
				}
			}
		}()
	}
	go func() {
		defer close(feeder)
		for _, f := range files {
			feeder <- f
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	seen := make(map[int]bool)
	var tms []int
	for rr := range results {
		for _, tm := range rr {
			if !seen[tm] {
				seen[tm] = true
				tms = append(tms, tm)
			}
		}
	}
	pf.Msg.NOTE(fmt.Sprintf("filter %q matched %d tm numbers in %d files", pf.Name, len(tms), len(files)))
	return tms, nil
}

// matches applies the metadata criteria to one file.
func (pf *PapyrusFilter) matches(path string) bool {
	f, e := os.Open(path)
	if e != nil {
		return false
	}
	defer f.Close()
	root, e := xmlquery.Parse(f)
	if e != nil {
		return false
	}

	title := pf.Title != "" && containstext(root, "//titleStmt/title", pf.Title)
	place := pf.Place != "" && containstext(root, "//origin/origPlace", pf.Place)
	hybrid := pf.DCLPHybrid != "" && pf.Target == "dclp" &&
		containstext(root, "//publicationStmt/idno[@type='dclp-hybrid']", pf.DCLPHybrid)

	if pf.SingleMatchSuffices {
		return title || place || hybrid
	}
	return (pf.Title == "" || title) && (pf.Place == "" || place) && (pf.DCLPHybrid == "" || hybrid) &&
		(title || place || hybrid)
}

func containstext(root *xmlquery.Node, expr string, want string) bool {
	n := xmlquery.FindOne(root, expr)
	if n == nil {
		return false
	}
	return strings.Contains(strings.ToLower(n.InnerText()), strings.ToLower(want))
}

//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package cnv drives whole conversions: index lookup, parse, format,
// artifact writing, and the parallel batch loop over many TM numbers.
package cnv

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/oli-do/PAPYRSER/internal/fmtr"
	"github.com/oli-do/PAPYRSER/internal/idx"
	"github.com/oli-do/PAPYRSER/internal/ih"
	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/str"
	"github.com/oli-do/PAPYRSER/internal/tei"
)

// Converter - one conversion pipeline; the batch loop gives each worker
// its own parser and formatter, only the index and tables are shared
type Converter struct {
	Msg   *mm.MessageMaker
	Conf  *str.CurrentConfiguration
	Index *idx.TMIndex
	IO    *ih.IOHandler
}

func NewConverter(msg *mm.MessageMaker, conf *str.CurrentConfiguration, index *idx.TMIndex, io *ih.IOHandler) *Converter {
	if msg == nil {
		msg = mm.NewMessageMaker("cnv", "", "CNV")
	}
	return &Converter{Msg: msg, Conf: conf, Index: index, IO: io}
}

// Result - the outcome for one source file of one TM number
type Result struct {
	TM       int
	Name     string
	Output   *str.Output
	Report   *str.ValidationReport
	TxtPath  string
	JSONPath string
	Skipped  bool
	SkipMsg  string
}

// Convert parses and formats every file carrying the TM number, without
// writing anything. The server and test paths use this directly.
func (c *Converter) Convert(tm int) ([]Result, error) {
	files, e := c.Index.PathsForTM(tm)
	if e != nil {
		return nil, e
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("could not find any XML file(s) associated with TM number %d", tm)
	}
	parser := tei.NewParser(c.Msg)
	former := fmtr.NewFormatter(c.Msg, c.Conf.IgnoreFormatting, c.Conf.Strict)

	var results []Result
	for _, file := range files {
		doc, e := parser.ParseFile(file)
		if e != nil {
			results = append(results, Result{TM: tm, Name: file, Skipped: true, SkipMsg: e.Error()})
			continue
		}
		doc.TM = tm
		out, rep, e := former.Format(doc)
		if e != nil {
			results = append(results, Result{TM: tm, Name: doc.Name, Report: rep, Skipped: true, SkipMsg: e.Error()})
			continue
		}
		r := Result{TM: tm, Name: doc.Name, Output: out, Report: rep}
		if out.TotalLines() == 0 {
			r.Skipped = true
			r.SkipMsg = fmt.Sprintf("TM %d (%s): conversion produced no lines", tm, doc.Name)
		} else if !rep.Clean() && !c.Conf.IgnoreFormatting {
			r.Skipped = true
			r.SkipMsg = fmt.Sprintf("TM %d skipped due to formatting errors: %v", tm, rep.Errs())
		}
		results = append(results, r)
	}
	return results, nil
}

// ProcessTM converts one TM number and writes the configured artifacts.
func (c *Converter) ProcessTM(tm int) []Result {
	results, e := c.Convert(tm)
	if e != nil {
		c.Msg.WARN(e.Error())
		return []Result{{TM: tm, Skipped: true, SkipMsg: e.Error()}}
	}
	for i := range results {
		r := &results[i]
		if r.Skipped {
			c.Msg.WARN(r.SkipMsg)
			continue
		}
		if c.Conf.WriteTXT {
			p, e := c.IO.WriteTxt(r.Output)
			if e != nil {
				c.Msg.Error(e)
				continue
			}
			r.TxtPath = p
		}
		if c.Conf.WriteJSON {
			p, e := c.IO.WriteJSON(r.Output)
			if e != nil {
				c.Msg.Error(e)
				continue
			}
			r.JSONPath = p
		}
	}
	return results
}

// BatchSummary - what a whole run came to
type BatchSummary struct {
	RunID     string
	Total     int
	Converted int
	Skipped   int
}

// Batch converts many TM numbers through a worker pool and feeds the
// progress hub so tickers and websocket clients can watch the run.
func (c *Converter) Batch(tms []int) BatchSummary {
	run := uuid.New().String()
	mm.BatchOpen <- mm.BatchStatus{RunID: run, Total: len(tms)}

	workers := c.Conf.WorkerCount
	if workers < 1 {
		workers = 1
	}
	feeder := make(chan int, workers)
	outcome := make(chan bool, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// each worker owns its pipeline; see Convert
			for tm := range feeder {
				skipped := false
				for _, r := range c.ProcessTM(tm) {
					if r.Skipped {
						skipped = true
					}
				}
				mm.BatchUpdate <- mm.BatchDelta{Skipped: skipped}
				outcome <- skipped
			}
		}()
	}
	go func() {
		defer close(feeder)
		for _, tm := range tms {
			feeder <- tm
		}
	}()
	go func() {
		wg.Wait()
		close(outcome)
	}()

	sum := BatchSummary{RunID: run, Total: len(tms)}
	for skipped := range outcome {
		if skipped {
			sum.Skipped++
		} else {
			sum.Converted++
		}
	}
	return sum
}

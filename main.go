//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/oli-do/PAPYRSER/internal/cnv"
	"github.com/oli-do/PAPYRSER/internal/dl"
	"github.com/oli-do/PAPYRSER/internal/flt"
	"github.com/oli-do/PAPYRSER/internal/gen"
	"github.com/oli-do/PAPYRSER/internal/idx"
	"github.com/oli-do/PAPYRSER/internal/ih"
	"github.com/oli-do/PAPYRSER/internal/lnch"
	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/str"
	"github.com/oli-do/PAPYRSER/internal/vv"
	"github.com/oli-do/PAPYRSER/internal/web"
)

func main() {
	const (
		VERS    = "C5S1%s (v%s)S0C0 [C4%sC0] [loglevel=C3%dC0]"
		NOWORK  = "Nothing to convert. Give me a TM number (C1-tmC0), a collection (C1-clC0), or a filter; C1-hC0 lists the options."
		SUMMARY = "S1%s of %s conversions succeeded in %.1fs (%s skipped)S0"
	)

	msg := mm.NewMessageMaker(vv.MYNAME, vv.VERSION, vv.SHORTNAME)
	lnch.LookForConfigFile(msg)
	cfg := lnch.ConfigAtLaunch(msg)

	msg.LogLevel = cfg.LogLevel
	msg.BW = cfg.BlackAndWhite
	msg.Ticker = cfg.TickerActive

	if !cfg.QuietStart {
		fmt.Println(msg.ColStyle(fmt.Sprintf(VERS, vv.MYNAME, vv.VERSION, vv.SHORTNAME, cfg.LogLevel)))
	}

	if cfg.ProfileCPU {
		defer profile.Start().Stop()
	} else if cfg.ProfileMEM {
		defer profile.Start(profile.MemProfile).Stop()
	}

	go mm.ProgressHub()
	if cfg.TickerActive {
		go msg.TickProgress(vv.TICKERDELAY)
	}

	// [a] the corpus: download on demand or when absent

	if _, e := os.Stat(cfg.IdpDataPath()); cfg.AlwaysUpdate || e != nil {
		d := dl.NewDownloader(msg, cfg.DataPath)
		msg.EC(d.Fetch())
	}

	// [b] the TM index: rebuild on demand or when empty

	index, e := idx.Open(msg, cfg.IndexPath())
	msg.EC(e)
	defer index.Close()

	if cfg.AlwaysIndex || index.Count() == 0 {
		start := time.Now()
		roots := []string{
			filepath.Join(cfg.IdpDataPath(), vv.DCLPDIR),
			filepath.Join(cfg.IdpDataPath(), vv.DDBDIR),
		}
		msg.EC(index.Rebuild(context.Background(), roots, cfg.WorkerCount))
		msg.Timer("I", fmt.Sprintf("indexed %d XML files", index.Count()), start, start)
	}

	iohandler := ih.NewIOHandler(msg, cfg.ExportPath)
	converter := cnv.NewConverter(msg, cfg, index, iohandler)

	// [c] server mode blocks and never returns

	if cfg.Serve {
		web.StartEchoServer(msg, cfg, converter)
		return
	}

	// [d] batch mode: assemble the targets, convert, report

	targets, batchname := assembletargets(msg, cfg, index)
	if len(targets) == 0 {
		msg.MAND(msg.Color(NOWORK))
		msg.ExitOrHang(0)
	}
	iohandler.SetExportDirectory(batchname)

	start := time.Now()
	sum := converter.Batch(targets)

	pr := message.NewPrinter(language.English)
	done := pr.Sprintf("%d", sum.Converted)
	total := pr.Sprintf("%d", sum.Total)
	skipped := pr.Sprintf("%d", sum.Skipped)
	msg.MAND(msg.Styled(fmt.Sprintf(SUMMARY, done, total, time.Since(start).Seconds(), skipped)))
}

// assembletargets - turn the configured TM numbers, collections, and
// filter criteria into one deduplicated list plus an export folder name
func assembletargets(msg *mm.MessageMaker, cfg *str.CurrentConfiguration, index *idx.TMIndex) ([]int, string) {
	var targets []int
	var names []string

	if len(cfg.TMTargets) != 0 {
		targets = append(targets, cfg.TMTargets...)
		lo, hi := cfg.TMTargets[0], cfg.TMTargets[0]
		for _, tm := range cfg.TMTargets {
			lo = min(lo, tm)
			hi = max(hi, tm)
		}
		if lo == hi {
			names = append(names, fmt.Sprintf("%d", lo))
		} else {
			names = append(names, fmt.Sprintf("%d-%d", lo, hi))
		}
	}

	for _, coll := range cfg.Collections {
		tms, e := index.TMsForCollection(coll)
		if e != nil {
			msg.Error(e)
		}
		if len(tms) == 0 {
			msg.WARN(fmt.Sprintf("collection '%s' matched no TM numbers", coll))
			continue
		}
		targets = append(targets, tms...)
		names = append(names, coll)
	}

	if cfg.FilterTitle != "" || cfg.FilterPlace != "" || cfg.FilterHybrid != "" {
		pf := flt.PapyrusFilter{
			Msg:                 msg,
			IdpDataPath:         cfg.IdpDataPath(),
			Target:              cfg.FilterTarget,
			Title:               cfg.FilterTitle,
			Place:               cfg.FilterPlace,
			DCLPHybrid:          cfg.FilterHybrid,
			SingleMatchSuffices: cfg.FilterAny,
		}
		tms, e := pf.Filter(cfg.WorkerCount)
		if e != nil {
			msg.Error(e)
		}
		if len(tms) == 0 {
			msg.WARN("the papyrus filter matched no TM numbers")
		}
		targets = append(targets, tms...)
		names = append(names, pf.Name)
	}

	targets = gen.Unique(targets)
	sort.Ints(targets)
	return targets, strings.Join(names, "_")
}

//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package lnch assembles the running configuration: built-in defaults,
// then the JSON configuration file, then the command line, last writer
// wins.
package lnch

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"text/template"

	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/str"
	"github.com/oli-do/PAPYRSER/internal/vv"
)

// BuildDefaultConfig - a CurrentConfiguration filled out with the stock values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.DataPath = vv.PAPYRIDATADIR
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.ExportPath = vv.EXPORTDIR
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.WorkerCount = runtime.NumCPU()
	c.WriteJSON = true
	c.WriteTXT = true
	return &c
}

// LookForConfigFile - make sure a configuration file exists; a missing
// one is replaced by a minimal default in the user's config directory
func LookForConfigFile(msg *mm.MessageMaker) {
	const (
		FYI = "\tC1Creating configuration directory: 'C3%sC1'C0"
		FNF = "\tC1Generating a simple 'C3%sC1'C0"
	)
	_, a := os.Stat(vv.CONFIGBASIC)
	h, e := os.UserHomeDir()
	if e != nil {
		return
	}
	alt := fmt.Sprintf(vv.CONFIGALTAPTH, h)
	_, b := os.Stat(alt + vv.CONFIGBASIC)
	if a == nil || b == nil {
		return
	}
	if _, e = os.Stat(alt); e != nil {
		fmt.Println(msg.Color(fmt.Sprintf(FYI, alt)))
		if ee := os.MkdirAll(alt, os.FileMode(0700)); ee != nil {
			msg.Error(ee)
			return
		}
	}
	fmt.Println(msg.Color(fmt.Sprintf(FNF, vv.CONFIGBASIC)))
	if e = os.WriteFile(alt+vv.CONFIGBASIC, []byte(strings.TrimSpace(vv.MINCONFIG)+"\n"), vv.WRITEPERMS); e != nil {
		msg.Error(e)
	}
}

// ConfigAtLaunch - defaults, then the JSON file, then the command line
func ConfigAtLaunch(msg *mm.MessageMaker) *str.CurrentConfiguration {
	const (
		FAIL3 = `Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead.`
	)

	cfg := BuildDefaultConfig()

	uh, _ := os.UserHomeDir()
	alt := fmt.Sprintf(vv.CONFIGALTAPTH, uh)
	for _, p := range []string{alt + vv.CONFIGBASIC, vv.CONFIGBASIC} {
		loaded, e := os.Open(p)
		if e != nil {
			continue
		}
		dec := json.NewDecoder(loaded)
		fromfile := *cfg
		if e = dec.Decode(&fromfile); e == nil {
			*cfg = fromfile
			msg.TMI("'" + p + "' loaded")
		} else {
			msg.CRIT(fmt.Sprintf(FAIL3, p))
		}
		_ = loaded.Close()
	}

	args := os.Args[1:]
	for i, a := range args {
		switch a {
		case "-vv":
			printversion(msg, cfg)
			printbuildinfo(msg)
			os.Exit(0)
		case "-v":
			fmt.Println(vv.VERSION)
			os.Exit(0)
		case "-bw":
			cfg.BlackAndWhite = true
		case "-cl":
			cfg.Collections = append(cfg.Collections, args[i+1])
		case "-dd":
			cfg.DataPath = args[i+1]
		case "-dl":
			cfg.AlwaysUpdate = true
		case "-el":
			ll, e := strconv.Atoi(args[i+1])
			msg.EC(e)
			cfg.EchoLog = ll
		case "-ep":
			cfg.ExportPath = args[i+1]
		case "-f1":
			cfg.FilterAny = true
		case "-fc":
			cfg.FilterTarget = args[i+1]
		case "-fh":
			cfg.FilterHybrid = args[i+1]
		case "-fp":
			cfg.FilterPlace = args[i+1]
		case "-ft":
			cfg.FilterTitle = args[i+1]
		case "-gl":
			ll, e := strconv.Atoi(args[i+1])
			msg.EC(e)
			cfg.LogLevel = ll
		case "-h":
			printversion(msg, cfg)
			fmt.Println(helptext(msg, cfg))
			os.Exit(0)
		case "-if":
			cfg.IgnoreFormatting = true
		case "-ix":
			cfg.AlwaysIndex = true
		case "-nj":
			cfg.WriteJSON = false
		case "-nt":
			cfg.WriteTXT = false
		case "-pc":
			cfg.ProfileCPU = true
		case "-pm":
			cfg.ProfileMEM = true
		case "-q":
			cfg.QuietStart = true
		case "-sa":
			cfg.HostIP = args[i+1]
		case "-sp":
			p, e := strconv.Atoi(args[i+1])
			msg.EC(e)
			cfg.HostPort = p
		case "-srv":
			cfg.Serve = true
		case "-st":
			cfg.Strict = true
		case "-tk":
			cfg.TickerActive = true
		case "-tm":
			tm, e := strconv.Atoi(args[i+1])
			msg.EC(e)
			cfg.TMTargets = append(cfg.TMTargets, tm)
		case "-wc":
			wc, e := strconv.Atoi(args[i+1])
			msg.EC(e)
			cfg.WorkerCount = wc
		default:
			// do nothing; probably the argument of a flag above
		}
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return cfg
}

// helptext renders the launch options with live defaults filled in.
func helptext(msg *mm.MessageMaker, cfg *str.CurrentConfiguration) string {
	cwd, _ := os.Getwd()
	t := template.Must(template.New("help").Parse(vv.HELPTEXTTEMPLATE))
	var sb strings.Builder
	_ = t.Execute(&sb, map[string]any{
		"data": cfg.DataPath,
		"host": vv.SERVEDFROMHOST,
		"port": vv.SERVEDFROMPORT,
		"conf": vv.CONFIGBASIC,
		"cwd":  cwd,
	})
	return msg.ColStyle(sb.String())
}

func printversion(msg *mm.MessageMaker, cfg *str.CurrentConfiguration) {
	const SN = " [C4%sC0] "
	v := fmt.Sprintf("C5S1%s (v%s)S0C0", vv.MYNAME, vv.VERSION)
	v += fmt.Sprintf(SN, vv.SHORTNAME)
	if !cfg.QuietStart {
		fmt.Println(msg.Color(v))
	}
}

func printbuildinfo(msg *mm.MessageMaker) {
	const (
		BD = "\tC3Built:C0\tC1%sC0"
		GV = "\tC3Go:C0\tC1%sC0"
	)
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.time" {
				fmt.Println(msg.Color(fmt.Sprintf(BD, s.Value)))
			}
		}
		fmt.Println(msg.Color(fmt.Sprintf(GV, bi.GoVersion)))
	}
}

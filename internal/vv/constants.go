//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Papyrser"
	SHORTNAME = "PPR"
	VERSION   = "1.2.0"
	PROJURL   = "https://github.com/oli-do/PAPYRSER"

	// where the corpus comes from and where it lives on disk
	PAPYRIDATAURL = "https://github.com/papyri/idp.data/archive/refs/heads/master.zip"
	PAPYRIDATADIR = "papyri_data"
	IDPDATADIR    = "idp.data-master"
	DCLPDIR       = "DCLP"
	DDBDIR        = "DDB_EpiDoc_XML"
	TMINDEXDB     = "tm_index.db"
	EXPORTDIR     = "export"
	TXTSUBDIR     = "txt"
	JSONSUBDIR    = "json"
	TEXTSTANDARD  = "D5" // supersedes the retired "D4" conventions
	WRITEPERMS    = 0644
	FOLDERPERMS   = 0755
	DLTIMEOUT     = 10 * time.Minute

	CONFIGLOCATION = "."
	CONFIGALTAPTH  = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC    = "papyrser-conf.json"

	DEFAULTGOLOGLEVEL   = 0
	DEFAULTECHOLOGLEVEL = 0
	SERVEDFROMHOST      = "127.0.0.1"
	SERVEDFROMPORT      = 8065
	TIMEOUTRD           = 15 * time.Second
	TIMEOUTWR           = 120 * time.Second
	TICKERDELAY         = time.Second

	MAXECHOREQPERSECONDPERIP = 60

	MINCONFIG = `
{"DataPath": "./papyri_data"}
`
)

const HELPTEXTTEMPLATE = `S1Command line optionsS0:
   C1-bwC0          disable color output in the console
   C1-clC0 {c}      convert a DDB collection by name, e.g. "C3-cl cprC0"
   C1-ddC0 {d}      directory containing a copy of idp.data (default: "C3{{.data}}C0")
   C1-dlC0          download/refresh the papyri.info corpus before converting
   C1-elC0 {n}      set echo server log level (C30-3C0)
   C1-epC0 {p}      directory to write export artifacts into (default: "C3exportC0")
   C1-f1C0          filtering: any single matching criterion suffices
   C1-fcC0 {c}      filtering: corpus to search, "C3dclpC0", "C3ddbC0" or "C3allC0" (default)
   C1-fhC0 {id}     filtering: select texts by dclp-hybrid identifier, e.g. "C3p.louvre;2;98C0"
   C1-fpC0 {p}      filtering: select texts by place of origin, e.g. "C3SoknopaiuC0"
   C1-ftC0 {t}      filtering: select texts by title, e.g. "C3HomerC0"
   C1-glC0 {n}      set papyrser log level (C30-5C0)
   C1-hC0           print this help information
   C1-ifC0          ignore formatting issues and write output anyway
   C1-ixC0          force a rebuild of the TM index
   C1-njC0          do not write .json artifacts
   C1-ntC0          do not write .txt artifacts
   C1-pcC0          profile cpu use
   C1-pmC0          profile memory use
   C1-qC0           quiet start
   C1-saC0 {a}      server mode: IP address to listen on (default: "C3{{.host}}C0")
   C1-spC0 {n}      server mode: port to listen on (default: "C3{{.port}}C0")
   C1-srvC0         run as a conversion server instead of a batch converter
   C1-stC0          strict validation: abort a document on its first violation
   C1-tkC0          activate the console progress ticker
   C1-tmC0 {n}      convert the text(s) with TM number {n}; repeatable
   C1-vC0           print version and exit
   C1-vvC0          print full version info and exit
   C1-wcC0 {n}      set worker count (default: C3NumCPUC0)
Current configuration file: "C3{{.conf}}C0" (cwd: "C3{{.cwd}}C0")
`

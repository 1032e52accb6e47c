//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import (
	"path/filepath"

	"github.com/oli-do/PAPYRSER/internal/vv"
)

// CurrentConfiguration - the options for the current run; built from defaults + JSON + command line
type CurrentConfiguration struct {
	AlwaysIndex      bool     // rebuild the TM index even if one exists
	AlwaysUpdate     bool     // re-download the corpus even if one exists
	BlackAndWhite    bool     // plain console output
	Collections      []string // DDB collection names to convert
	DataPath         string   // directory holding idp.data
	EchoLog          int
	ExportPath       string // directory to write artifacts into
	FilterAny        bool   // one matching criterion suffices instead of all
	FilterHybrid     string // dclp-hybrid identifier to filter for
	FilterPlace      string // place of origin to filter for
	FilterTarget     string // corpus to filter: "dclp", "ddb" or "all"
	FilterTitle      string // title text to filter for
	HostIP           string
	HostPort         int
	IgnoreFormatting bool // downgrade validation errors to warnings and write anyway
	LogLevel         int
	ProfileCPU       bool
	ProfileMEM       bool
	QuietStart       bool
	Serve            bool // run the echo server instead of a batch conversion
	Strict           bool // abort a document on its first validation issue
	TickerActive     bool
	TMTargets        []int // TM numbers to convert
	WorkerCount      int
	WriteJSON        bool
	WriteTXT         bool
}

// IdpDataPath - where the extracted idp.data corpus lives
func (c *CurrentConfiguration) IdpDataPath() string {
	return filepath.Join(c.DataPath, vv.IDPDATADIR)
}

// IndexPath - where the TM index database lives
func (c *CurrentConfiguration) IndexPath() string {
	return filepath.Join(c.DataPath, vv.TMINDEXDB)
}

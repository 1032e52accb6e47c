//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "fmt"

//
// FORMATTER OUTPUT
//

// Severity - how bad a validation finding is
type Severity int

const (
	SevWarning Severity = iota
	SevError
)

// Violation - one validation finding, located well enough to fix the source or the tables
type Violation struct {
	Part     int
	Line     int
	Severity Severity
	Msg      string
}

func (v Violation) String() string {
	s := "warning"
	if v.Severity == SevError {
		s = "error"
	}
	return fmt.Sprintf("[part %d, line %d] %s: %s", v.Part, v.Line, s, v.Msg)
}

// ValidationReport - everything the formatter noticed about one document
type ValidationReport struct {
	TM         int
	Violations []Violation
	Changes    []string // automatic corrections, e.g. Latin-for-Greek typo fixes
	Downgraded bool     // true when errors were demoted to warnings by configuration
}

// Errs - the subset of Violations that are fatal for output
func (vr *ValidationReport) Errs() []Violation {
	var ee []Violation
	for _, v := range vr.Violations {
		if v.Severity == SevError {
			ee = append(ee, v)
		}
	}
	return ee
}

// Clean - nothing fatal was found
func (vr *ValidationReport) Clean() bool {
	return len(vr.Errs()) == 0
}

// LineRecord - the structured form of one serialized line
type LineRecord struct {
	N    int    `json:"n"`
	Text string `json:"text"`
}

// PartRecord - the structured form of one serialized text part
type PartRecord struct {
	Lines []LineRecord `json:"textpartLines"`
}

// Output - the serialized document: plain lines per part plus structured records
type Output struct {
	TM      int
	Name    string
	Parts   [][]string
	Records []PartRecord
}

// TotalLines - line count over all parts after formatting
func (o *Output) TotalLines() int {
	n := 0
	for i := range o.Parts {
		n += len(o.Parts[i])
	}
	return n
}

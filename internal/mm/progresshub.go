//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"runtime"
	"time"
)

//
// CHANNEL-BASED BATCH PROGRESS REPORTING TO COMMUNICATE STATS BETWEEN ROUTINES
//

// BatchStatus - a snapshot of the current conversion batch
type BatchStatus struct {
	RunID   string `json:"id"`
	Total   int    `json:"total"`
	Done    int    `json:"done"`
	Skipped int    `json:"skipped"`
	Active  bool   `json:"active"`
}

// Remaining - documents not yet attempted
func (b BatchStatus) Remaining() int {
	return b.Total - b.Done - b.Skipped
}

// BatchDelta - one worker's report: a document either converted or skipped
type BatchDelta struct {
	Skipped bool
}

// BatchReply - ProgressHub helper struct for returning the BatchStatus
type BatchReply struct {
	Response chan BatchStatus
}

var (
	BatchOpen    = make(chan BatchStatus)
	BatchUpdate  = make(chan BatchDelta, 2*runtime.NumCPU())
	BatchRequest = make(chan BatchReply)
)

// ProgressHub - own the batch counters; workers feed BatchUpdate, pollers use BatchRequest
func ProgressHub() {
	var current BatchStatus

	// the main loop; it will never exit
	for {
		select {
		case opened := <-BatchOpen:
			current = opened
			current.Active = true
		case upd := <-BatchUpdate:
			if upd.Skipped {
				current.Skipped++
			} else {
				current.Done++
			}
			if current.Remaining() == 0 {
				current.Active = false
			}
		case req := <-BatchRequest:
			req.Response <- current
		}
	}
}

// CurrentBatch - poll the hub for a snapshot
func CurrentBatch() BatchStatus {
	r := BatchReply{Response: make(chan BatchStatus)}
	BatchRequest <- r
	return <-r.Response
}

// TickProgress - requires running with the "-tk" flag; feed batch status to the console until the batch ends
func (m *MessageMaker) TickProgress(wait time.Duration) {
	const (
		CLEAR    = "\033[2K"
		HEAD     = "\r"
		CURSHOME = "\033[1;1H"
		CURSSAVE = "\033[s"
		CURSREST = "\033[u"
		PADDING  = "  -----------------  "
		TICKTMPL = "[S1C6%vC0]  C5S1converting: C1%d of %dC0  (C6skipped: %dC0)"
	)

	// ANSI escape codes do not work in windows
	if !m.Ticker || m.Win {
		return
	}

	m.ResetScreen()

	for {
		b := CurrentBatch()
		tick := fmt.Sprintf(TICKTMPL, time.Now().Format(time.TimeOnly), b.Done, b.Total, b.Skipped)
		tick = m.ColStyle(PADDING + tick + PADDING)
		fmt.Printf(CURSSAVE + CURSHOME + CLEAR + HEAD + tick + CURSREST)
		if !b.Active && b.Total != 0 {
			break
		}
		time.Sleep(wait)
	}
}

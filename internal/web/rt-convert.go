//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/oli-do/PAPYRSER/internal/str"
)

// ConversionJS - what /convert/:tm sends back for one source file
type ConversionJS struct {
	TM         int             `json:"tm"`
	Name       string          `json:"name"`
	Standard   string          `json:"standard"`
	Parts      [][]string      `json:"textparts,omitempty"`
	Violations []str.Violation `json:"violations,omitempty"`
	Skipped    bool            `json:"skipped"`
	SkipMsg    string          `json:"skipmessage,omitempty"`
}

// RtConvert - convert every file carrying a TM number; nothing is written to disk
func RtConvert(c echo.Context) error {
	tm, err := strconv.Atoi(c.Param("tm"))
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("'%s' is not a TM number", c.Param("tm")))
	}

	results, err := conv.Convert(tm)
	if err != nil {
		msg.WARN(err.Error())
		return c.String(http.StatusNotFound, err.Error())
	}

	var reply []ConversionJS
	for _, r := range results {
		j := ConversionJS{TM: tm, Name: r.Name, Standard: "D5", Skipped: r.Skipped, SkipMsg: r.SkipMsg}
		if r.Output != nil {
			j.Parts = r.Output.Parts
		}
		if r.Report != nil {
			j.Violations = r.Report.Violations
		}
		reply = append(reply, j)
	}
	return c.JSONPretty(http.StatusOK, reply, "  ")
}

// RtText - the converted document as plain text, textparts separated by blank lines
func RtText(c echo.Context) error {
	tm, err := strconv.Atoi(c.Param("tm"))
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("'%s' is not a TM number", c.Param("tm")))
	}

	results, err := conv.Convert(tm)
	if err != nil {
		msg.WARN(err.Error())
		return c.String(http.StatusNotFound, err.Error())
	}

	var docs []string
	for _, r := range results {
		if r.Skipped || r.Output == nil {
			continue
		}
		var parts []string
		for _, p := range r.Output.Parts {
			parts = append(parts, strings.Join(p, "\n"))
		}
		docs = append(docs, strings.Join(parts, "\n\n"))
	}
	if len(docs) == 0 {
		return c.String(http.StatusUnprocessableEntity, fmt.Sprintf("TM %d did not yield any convertible text", tm))
	}
	return c.String(http.StatusOK, strings.Join(docs, "\n\n"))
}

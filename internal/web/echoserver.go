//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package web serves conversions over HTTP: request a TM number, get
// the D5 text or the full JSON back; a websocket reports batch progress.
package web

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/oli-do/PAPYRSER/internal/cnv"
	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/str"
	"github.com/oli-do/PAPYRSER/internal/vv"
)

var (
	msg  *mm.MessageMaker
	cfg  *str.CurrentConfiguration
	conv *cnv.Converter
)

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer(m *mm.MessageMaker, c *str.CurrentConfiguration, cv *cnv.Converter) {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "i: ${remote_ip}\t r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
	)

	msg = m
	cfg = c
	conv = cv

	//
	// SETUP
	//

	e := echo.New()

	e.Server.ReadTimeout = vv.TIMEOUTRD
	e.Server.WriteTimeout = vv.TIMEOUTWR

	if cfg.EchoLog == 3 {
		e.Use(middleware.Logger())
	} else if cfg.EchoLog == 2 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT}))
	} else if cfg.EchoLog == 1 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECONDPERIP)))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))

	//
	// ROUTES
	//

	// [a] conversion ("rt-convert.go")

	e.GET("/convert/:tm", RtConvert) // "u: /convert/5015"
	e.GET("/text/:tm", RtText)       // "u: /text/5015"

	// [b] batch progress ("rt-websocket.go")

	e.GET("/status", RtBatchStatus)
	e.GET("/ws", RtWebsocket)

	e.HideBanner = true
	e.Logger.Fatal(e.Start(fmt.Sprintf("%s:%d", cfg.HostIP, cfg.HostPort)))
}

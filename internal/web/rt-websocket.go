//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/vv"
)

var (
	Upgrader = websocket.Upgrader{}
)

// RtBatchStatus - a one-off snapshot of the running batch
func RtBatchStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, mm.CurrentBatch())
}

// RtWebsocket - feed batch progress to the client until the batch ends
func RtWebsocket(c echo.Context) error {
	const (
		FAILCON = "RtWebsocket(): ws connection failed"
		FAILWRT = "RtWebsocket(): ws failed to write: breaking"
	)

	ws, err := Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		msg.NOTE(FAILCON)
		return nil
	}
	defer ws.Close()

	for {
		b := mm.CurrentBatch()
		if e := ws.WriteJSON(b); e != nil {
			msg.PEEK(FAILWRT)
			break
		}
		if !b.Active && b.Total != 0 {
			break
		}
		time.Sleep(vv.TICKERDELAY)
	}
	return nil
}

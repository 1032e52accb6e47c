//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/oli-do/PAPYRSER/internal/cnv"
	"github.com/oli-do/PAPYRSER/internal/idx"
	"github.com/oli-do/PAPYRSER/internal/ih"
	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/str"
)

const edition = `<TEI><teiHeader><fileDesc><publicationStmt>` +
	`<idno type="TM">59001</idno></publicationStmt></fileDesc></teiHeader>` +
	`<text><body><div xml:lang="grc" type="edition">` +
	`<ab><lb n="1"/>αβγ</ab></div></body></text></TEI>`

func setuproutes(t *testing.T) {
	t.Helper()
	corpus := t.TempDir()
	path := filepath.Join(corpus, "DDB_EpiDoc_XML", "test", "59001.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(edition), 0644))

	index, e := idx.Open(nil, filepath.Join(t.TempDir(), "tm_index.db"))
	require.NoError(t, e)
	t.Cleanup(func() { _ = index.Close() })
	require.NoError(t, index.Rebuild(context.Background(), []string{corpus}, 1))

	msg = mm.NewMessageMaker("test", "0.0.0", "TST")
	cfg = &str.CurrentConfiguration{WorkerCount: 1}
	conv = cnv.NewConverter(msg, cfg, index, ih.NewIOHandler(msg, t.TempDir()))
}

func request(t *testing.T, handler echo.HandlerFunc, tm string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("tm")
	c.SetParamValues(tm)
	require.NoError(t, handler(c))
	return rec
}

func TestRtConvert(t *testing.T) {
	setuproutes(t)
	rec := request(t, RtConvert, "59001")
	require.Equal(t, http.StatusOK, rec.Code)

	var reply []ConversionJS
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	require.Len(t, reply, 1)
	require.Equal(t, "D5", reply[0].Standard)
	require.Equal(t, [][]string{{"ΑΒΓ"}}, reply[0].Parts)
}

func TestRtConvertBadParam(t *testing.T) {
	setuproutes(t)
	rec := request(t, RtConvert, "not-a-number")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRtConvertUnknownTM(t *testing.T) {
	setuproutes(t)
	rec := request(t, RtConvert, "99999")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRtText(t *testing.T) {
	setuproutes(t)
	rec := request(t, RtText, "59001")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ΑΒΓ", rec.Body.String())
}

func TestRtBatchStatus(t *testing.T) {
	go mm.ProgressHub()
	setuproutes(t)
	mm.BatchOpen <- mm.BatchStatus{RunID: "run-web", Total: 1}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, RtBatchStatus(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var b mm.BatchStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.Equal(t, "run-web", b.RunID)
	require.True(t, b.Active)
}

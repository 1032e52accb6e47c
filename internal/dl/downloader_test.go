//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dl

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oli-do/PAPYRSER/internal/vv"
)

func corpuszip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"idp.data-master/DCLP/60/59000/59001.xml":          "<TEI/>",
		"idp.data-master/DDB_EpiDoc_XML/cpr/cpr.4.5.xml":   "<TEI/>",
		"idp.data-master/HGV_meta_EpiDoc/HGV1/1.xml":       "ignored",
		"idp.data-master/README.md":                        "ignored",
	}
	for name, body := range entries {
		w, e := zw.Create(name)
		require.NoError(t, e)
		_, e = w.Write([]byte(body))
		require.NoError(t, e)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractKeepsOnlyTranscriptionTrees(t *testing.T) {
	dir := t.TempDir()
	zippath := filepath.Join(dir, "temp.zip")
	require.NoError(t, os.WriteFile(zippath, corpuszip(t), 0644))

	d := NewDownloader(nil, dir)
	n, e := d.extract(zippath)
	require.NoError(t, e)
	require.Equal(t, 2, n)

	_, e = os.Stat(filepath.Join(dir, "idp.data-master", "DCLP", "60", "59000", "59001.xml"))
	require.NoError(t, e)
	_, e = os.Stat(filepath.Join(dir, "idp.data-master", "HGV_meta_EpiDoc", "HGV1", "1.xml"))
	require.True(t, os.IsNotExist(e))
}

func TestFetchEndToEnd(t *testing.T) {
	body := corpuszip(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	// a stale index must not survive a refresh
	stale := filepath.Join(dir, vv.TMINDEXDB)
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	d := NewDownloader(nil, dir)
	d.URL = srv.URL
	require.NoError(t, d.Fetch())

	_, e := os.Stat(filepath.Join(dir, "idp.data-master", "DDB_EpiDoc_XML", "cpr", "cpr.4.5.xml"))
	require.NoError(t, e)
	_, e = os.Stat(stale)
	require.True(t, os.IsNotExist(e))
	_, e = os.Stat(filepath.Join(dir, "temp.zip"))
	require.True(t, os.IsNotExist(e))
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewDownloader(nil, t.TempDir())
	d.URL = srv.URL
	require.Error(t, d.Fetch())
}

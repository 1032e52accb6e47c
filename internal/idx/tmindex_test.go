//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package idx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const docfmt = `<TEI><teiHeader><fileDesc><publicationStmt>` +
	`<idno type="TM">%s</idno>` +
	`</publicationStmt></fileDesc></teiHeader></TEI>`

func writecorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		filepath.Join("DDB_EpiDoc_XML", "cpr", "cpr.4", "cpr.4.5.xml"):   "10301",
		filepath.Join("DDB_EpiDoc_XML", "p.fay", "p.fay.110.xml"):        "10775",
		filepath.Join("DCLP", "60", "59000", "59001.xml"):                "59001 59002",
		filepath.Join("DDB_EpiDoc_XML", "cpr", "cpr.4", "readme.txt"):    "not xml",
	}
	for rel, tm := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		body := tm
		if filepath.Ext(path) == ".xml" {
			body = fmt.Sprintf(docfmt, tm)
		}
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}
	return root
}

func opentestindex(t *testing.T) (*TMIndex, string) {
	t.Helper()
	root := writecorpus(t)
	x, e := Open(nil, filepath.Join(t.TempDir(), "tm_index.db"))
	require.NoError(t, e)
	t.Cleanup(func() { _ = x.Close() })
	require.NoError(t, x.Rebuild(context.Background(), []string{root}, 2))
	return x, root
}

func TestRebuildAndCount(t *testing.T) {
	x, _ := opentestindex(t)
	require.Equal(t, 4, x.Count())
}

func TestPathsForTM(t *testing.T) {
	x, _ := opentestindex(t)

	paths, e := x.PathsForTM(10775)
	require.NoError(t, e)
	require.Len(t, paths, 1)
	require.Equal(t, "p.fay.110.xml", filepath.Base(paths[0]))

	paths, e = x.PathsForTM(99999)
	require.NoError(t, e)
	require.Empty(t, paths)
}

func TestMultipleTMsPerFile(t *testing.T) {
	x, _ := opentestindex(t)
	for _, tm := range []int{59001, 59002} {
		paths, e := x.PathsForTM(tm)
		require.NoError(t, e)
		require.Len(t, paths, 1, tm)
	}
}

func TestTMsForCollection(t *testing.T) {
	x, _ := opentestindex(t)
	tms, e := x.TMsForCollection("cpr")
	require.NoError(t, e)
	require.Equal(t, []int{10301}, tms)
}

func TestRebuildEmptyRoot(t *testing.T) {
	x, e := Open(nil, filepath.Join(t.TempDir(), "tm_index.db"))
	require.NoError(t, e)
	defer x.Close()
	require.Error(t, x.Rebuild(context.Background(), []string{t.TempDir()}, 2))
}

func TestExtractTMs(t *testing.T) {
	_, root := opentestindex(t)
	tms := ExtractTMs(filepath.Join(root, "DCLP", "60", "59000", "59001.xml"))
	require.Equal(t, []int{59001, 59002}, tms)
}

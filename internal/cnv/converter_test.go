//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package cnv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oli-do/PAPYRSER/internal/idx"
	"github.com/oli-do/PAPYRSER/internal/ih"
	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/str"
)

const edition = `<TEI><teiHeader><fileDesc><publicationStmt>` +
	`<idno type="TM">%d</idno></publicationStmt></fileDesc></teiHeader>` +
	`<text><body><div xml:lang="grc" type="edition">` +
	`<ab><lb n="1"/>%s</ab></div></body></text></TEI>`

func testconverter(t *testing.T, docs map[int]string) (*Converter, string) {
	t.Helper()
	corpus := t.TempDir()
	for tm, content := range docs {
		path := filepath.Join(corpus, "DDB_EpiDoc_XML", "test", fmt.Sprintf("%d.xml", tm))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(edition, tm, content)), 0644))
	}

	index, e := idx.Open(nil, filepath.Join(t.TempDir(), "tm_index.db"))
	require.NoError(t, e)
	t.Cleanup(func() { _ = index.Close() })
	require.NoError(t, index.Rebuild(context.Background(), []string{corpus}, 2))

	export := t.TempDir()
	conf := &str.CurrentConfiguration{WorkerCount: 2, WriteJSON: true, WriteTXT: true}
	iohandler := ih.NewIOHandler(nil, export)
	iohandler.SetExportDirectory("test")
	return NewConverter(nil, conf, index, iohandler), export
}

func TestConvert(t *testing.T) {
	c, _ := testconverter(t, map[int]string{59001: `αβγ<gap reason="lost" quantity="2" unit="character"/>`})

	results, e := c.Convert(59001)
	require.NoError(t, e)
	require.Len(t, results, 1)
	require.False(t, results[0].Skipped)
	require.Equal(t, [][]string{{"ΑΒΓ["}}, results[0].Output.Parts)
}

func TestConvertUnknownTM(t *testing.T) {
	c, _ := testconverter(t, map[int]string{59001: "αβγ"})
	_, e := c.Convert(99999)
	require.Error(t, e)
}

func TestConvertSkipsDirtyDocument(t *testing.T) {
	c, _ := testconverter(t, map[int]string{59001: `αβ<g type="chi"/>`})
	results, e := c.Convert(59001)
	require.NoError(t, e)
	require.Len(t, results, 1)
	require.True(t, results[0].Skipped)
}

func TestConvertIgnoreFormatting(t *testing.T) {
	c, _ := testconverter(t, map[int]string{59001: `αβ<g type="chi"/>`})
	c.Conf.IgnoreFormatting = true
	results, e := c.Convert(59001)
	require.NoError(t, e)
	require.False(t, results[0].Skipped)
	require.Equal(t, [][]string{{"ΑΒ"}}, results[0].Output.Parts)
}

func TestProcessTMWritesArtifacts(t *testing.T) {
	c, export := testconverter(t, map[int]string{59001: "αβγ"})
	results := c.ProcessTM(59001)
	require.Len(t, results, 1)
	require.False(t, results[0].Skipped)
	require.FileExists(t, results[0].TxtPath)
	require.FileExists(t, results[0].JSONPath)
	require.Equal(t, filepath.Join(export, "test", "txt", "59001_59001.txt"), results[0].TxtPath)
}

func TestBatch(t *testing.T) {
	go mm.ProgressHub()
	c, _ := testconverter(t, map[int]string{
		59001: "αβγ",
		59002: "δεζ",
		59003: `αβ<g type="chi"/>`,
	})
	sum := c.Batch([]int{59001, 59002, 59003})
	require.Equal(t, 3, sum.Total)
	require.Equal(t, 2, sum.Converted)
	require.Equal(t, 1, sum.Skipped)
	require.NotEmpty(t, sum.RunID)
}

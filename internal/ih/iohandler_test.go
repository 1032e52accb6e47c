//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ih

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oli-do/PAPYRSER/internal/str"
)

func sample() *str.Output {
	return &str.Output{
		TM:    5015,
		Name:  "p.fay.110",
		Parts: [][]string{{"ΑΒΓ", "]ΔΕ["}, {"ΖΗ"}},
		Records: []str.PartRecord{
			{Lines: []str.LineRecord{{N: 1, Text: "ΑΒΓ"}, {N: 2, Text: "]ΔΕ["}}},
			{Lines: []str.LineRecord{{N: 1, Text: "ΖΗ"}}},
		},
	}
}

func TestWriteTxt(t *testing.T) {
	h := NewIOHandler(nil, t.TempDir())
	h.SetExportDirectory("5015")

	path, e := h.WriteTxt(sample())
	require.NoError(t, e)
	require.Equal(t, "5015_p.fay.110.txt", filepath.Base(path))

	b, e := os.ReadFile(path)
	require.NoError(t, e)
	require.Equal(t, "ΑΒΓ\n]ΔΕ[\nΖΗ", string(b))
}

func TestSetExportDirectorySanitizes(t *testing.T) {
	h := NewIOHandler(nil, t.TempDir())
	h.SetExportDirectory(`filter-dclp-Soknopaiu Nesos/..\x`)
	require.Equal(t, "filter-dclp-SoknopaiuNesos..x", h.BatchName)
}

func TestWriteJSON(t *testing.T) {
	h := NewIOHandler(nil, t.TempDir())
	h.SetExportDirectory("5015")

	path, e := h.WriteJSON(sample())
	require.NoError(t, e)
	require.Equal(t, "5015_p.fay.110.json", filepath.Base(path))

	b, e := os.ReadFile(path)
	require.NoError(t, e)

	var got struct {
		Head struct {
			TM       int    `json:"tm"`
			Parts    int    `json:"textparts"`
			Lines    int    `json:"lines"`
			Standard string `json:"standard"`
		} `json:"head"`
		Blocks []str.PartRecord `json:"text_blocks"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, 5015, got.Head.TM)
	require.Equal(t, 2, got.Head.Parts)
	require.Equal(t, 3, got.Head.Lines)
	require.Equal(t, "D5", got.Head.Standard)
	require.Len(t, got.Blocks, 2)
	require.Equal(t, "]ΔΕ[", got.Blocks[0].Lines[1].Text)
}

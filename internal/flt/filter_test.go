//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package flt

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	pf := PapyrusFilter{Target: "dclp"}
	require.Error(t, pf.Validate())

	pf = PapyrusFilter{Target: "dclp", Title: "Homer"}
	require.NoError(t, pf.Validate())
	require.NotEmpty(t, pf.Name)

	// DDB files carry no dclp-hybrid identifier; the criterion is dropped
	pf = PapyrusFilter{Target: "ddb", DCLPHybrid: "p.louvre;2;98"}
	require.Error(t, pf.Validate())
	require.Empty(t, pf.DCLPHybrid)
}

const corpusdoc = `<TEI><teiHeader><fileDesc>
<titleStmt><title>%s</title></titleStmt>
<publicationStmt><idno type="TM">%s</idno><idno type="dclp-hybrid">%s</idno></publicationStmt>
</fileDesc>
<history><origin><origPlace>%s</origPlace></origin></history>
</teiHeader></TEI>`

func writefiltercorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	docs := []struct {
		rel    string
		title  string
		tm     string
		hybrid string
		place  string
	}{
		{filepath.Join("DCLP", "60", "59000", "59001.xml"), "Homerus, Ilias 1", "59001", "p.fay;;110", "Soknopaiu Nesos"},
		{filepath.Join("DCLP", "60", "59000", "59002.xml"), "Receipt", "59002", "p.louvre;2;98", "Tebtynis"},
		{filepath.Join("DDB_EpiDoc_XML", "cpr", "cpr.4", "cpr.4.5.xml"), "Homerus, Odyssea", "10301", "", "Soknopaiu Nesos"},
	}
	for _, d := range docs {
		path := filepath.Join(root, d.rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		body := []byte(fmt.Sprintf(corpusdoc, d.title, d.tm, d.hybrid, d.place))
		require.NoError(t, os.WriteFile(path, body, 0644))
	}
	return root
}

func TestFilterByTitle(t *testing.T) {
	pf := PapyrusFilter{IdpDataPath: writefiltercorpus(t), Target: "all", Title: "Homerus"}
	tms, e := pf.Filter(2)
	require.NoError(t, e)
	require.ElementsMatch(t, []int{59001, 10301}, tms)
}

func TestFilterAllCriteria(t *testing.T) {
	pf := PapyrusFilter{IdpDataPath: writefiltercorpus(t), Target: "dclp",
		Title: "Homerus", Place: "Soknopaiu"}
	tms, e := pf.Filter(2)
	require.NoError(t, e)
	require.Equal(t, []int{59001}, tms)
}

func TestFilterSingleMatchSuffices(t *testing.T) {
	pf := PapyrusFilter{IdpDataPath: writefiltercorpus(t), Target: "dclp",
		Title: "Homerus", DCLPHybrid: "p.louvre;2;98", SingleMatchSuffices: true}
	tms, e := pf.Filter(2)
	require.NoError(t, e)
	require.ElementsMatch(t, []int{59001, 59002}, tms)
}

func TestFilterScopesByCorpus(t *testing.T) {
	pf := PapyrusFilter{IdpDataPath: writefiltercorpus(t), Target: "ddb", Title: "Homerus"}
	tms, e := pf.Filter(2)
	require.NoError(t, e)
	require.Equal(t, []int{10301}, tms)
}

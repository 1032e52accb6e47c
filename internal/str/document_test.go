//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBracketed(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want bool
	}{
		{"supplied", Token{Kind: SuppliedTk, Len: 3}, true},
		{"lost gap", Token{Kind: GapTk, Reason: ReasonLost, Len: 2}, true},
		{"unknown illegible gap", Token{Kind: GapTk, Reason: ReasonIllegible, Len: UnknownLen}, true},
		{"known illegible gap", Token{Kind: GapTk, Reason: ReasonIllegible, Len: 2}, false},
		{"glyph", Token{Kind: GlyphTk, Ch: 'Α'}, false},
		{"space", Token{Kind: SpaceTk, Len: 2}, false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, tc.tok.Bracketed(), tc.name)
	}
}

func TestValidationReport(t *testing.T) {
	rep := ValidationReport{Violations: []Violation{
		{Severity: SevWarning, Msg: "w"},
		{Severity: SevError, Msg: "e"},
	}}
	require.False(t, rep.Clean())
	require.Len(t, rep.Errs(), 1)

	clean := ValidationReport{Violations: []Violation{{Severity: SevWarning, Msg: "w"}}}
	require.True(t, clean.Clean())
}

func TestOutputTotalLines(t *testing.T) {
	o := Output{Parts: [][]string{{"a", "b"}, {"c"}}}
	require.Equal(t, 3, o.TotalLines())
}

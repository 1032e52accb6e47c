//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tbl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTablesLoad(t *testing.T) {
	require.NotNil(t, Maps)
	require.NotEmpty(t, Maps.Feeder)
	require.Equal(t, len(Maps.Feeder), len(Maps.Reducer))
	require.NotEmpty(t, Maps.Purge)
	require.NotEmpty(t, Maps.Abbreviations)
	require.NotEmpty(t, Maps.GlyphTypes)
	require.NotEmpty(t, Maps.Milestones)
	require.NotEmpty(t, Maps.Renditions)
	require.NotEmpty(t, Maps.Additions)
	require.NotEmpty(t, Maps.Vocabulary)
}

func TestAbbreviation(t *testing.T) {
	s, ok := Maps.Abbreviation("ΕΤΟΥΣ")
	require.True(t, ok)
	require.Equal(t, "\U00010179", s)

	// unknown expansions fall back to the placeholder
	s, ok = Maps.Abbreviation("ΟΥΔΑΜΟΥ")
	require.False(t, ok)
	require.Equal(t, string(UNKNOWNABBREV), s)

	// a prefix of a known key is not a match
	_, ok = Maps.Abbreviation("ΕΤΟΥ")
	require.False(t, ok)
}

func TestGlyphType(t *testing.T) {
	s, e := Maps.GlyphType("apostrophe")
	require.NoError(t, e)
	require.Equal(t, "'", s)

	_, e = Maps.GlyphType("chi")
	require.Error(t, e)
	var use *UnsupportedSymbolError
	require.ErrorAs(t, e, &use)
	require.Equal(t, "chi", use.Value)
}

func TestMilestone(t *testing.T) {
	s, e := Maps.Milestone("paragraphos")
	require.NoError(t, e)
	require.Equal(t, "⸏", s)

	_, e = Maps.Milestone("nonsense")
	require.Error(t, e)
}

func TestRendition(t *testing.T) {
	rs, ok := Maps.Rendition("supraline")
	require.True(t, ok)
	require.Equal(t, "̅", rs.Mark)
	require.True(t, rs.PerLetter)

	rs, ok = Maps.Rendition("diaeresis")
	require.True(t, ok)
	require.Equal(t, "̈", rs.Mark)
	require.False(t, rs.PerLetter)

	_, ok = Maps.Rendition("tall")
	require.False(t, ok)
}

func TestAdditionMark(t *testing.T) {
	for place, want := range map[string]string{
		"above": "↑", "below": "↓", "left": "←", "right": "→",
		"margin": "↔", "bottom": "↡", "top": "↟",
	} {
		s, ok := Maps.AdditionMark(place)
		require.True(t, ok, place)
		require.Equal(t, want, s, place)
	}
	_, ok := Maps.AdditionMark("inline")
	require.False(t, ok)
}

func TestInVocabulary(t *testing.T) {
	for _, r := range "ΑΒΓΩ[]-? ℅⸏" {
		require.True(t, Maps.InVocabulary(r), string(r))
	}
	require.True(t, Maps.InVocabulary(UNCLEARMARK))
	for _, r := range "abzAB09α" {
		require.False(t, Maps.InVocabulary(r), string(r))
	}
}

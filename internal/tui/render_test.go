package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRunes(s string) []styledRune {
	out := make([]styledRune, 0, len(s))
	for _, r := range s {
		out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	return out
}

func TestWrapStyledRunes_BreaksAtSpaces(t *testing.T) {
	wrapped := wrapStyledRunes(plainRunes("the quick brown fox"), 10)
	lines := strings.Split(wrapped, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "the quick", lines[0])
	assert.Equal(t, "brown fox", lines[1])
}

func TestWrapStyledRunes_HardBreaksLongWords(t *testing.T) {
	wrapped := wrapStyledRunes(plainRunes("abcdefghij"), 4)
	lines := strings.Split(wrapped, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.LessOrEqual(t, len([]rune(line)), 4)
	}
}

func TestWrapStyledRunes_NoWidthMeansNoWrap(t *testing.T) {
	wrapped := wrapStyledRunes(plainRunes("a b c"), 0)
	assert.Equal(t, "a b c", wrapped)
}

func TestBuildStyledRunes_MarksMistypedSpace(t *testing.T) {
	styled := buildStyledRunes([]rune("a b"), []rune("axb"))
	require.Len(t, styled, 3)
	// A wrong character over a space renders a visible marker.
	assert.Contains(t, styled[1].s, "•")
	assert.True(t, styled[1].isSpace)
}

func TestFooterHints_HidesMuteWithoutSpeechBackend(t *testing.T) {
	silent := &Model{}
	assert.Equal(t, "[r] try again  [ctrl+c] quit",
		silent.footerHints("[r] try again", "[ctrl+c] quit"))
	assert.NotContains(t, silent.viewDifficulty(), "[m] toggle sound")

	voiced := &Model{sound: true}
	assert.Equal(t, "[r] try again  [m] toggle sound  [ctrl+c] quit",
		voiced.footerHints("[r] try again", "[ctrl+c] quit"))
	assert.Contains(t, voiced.viewDifficulty(), "[m] toggle sound")
}

func TestBuildStyledRunes_WidthsFollowTarget(t *testing.T) {
	styled := buildStyledRunes([]rune("ab"), nil)
	require.Len(t, styled, 2)
	assert.Equal(t, 1, styled[0].width)
	assert.False(t, styled[0].isSpace)
}

package board_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/letterboxed/internal/board"
)

func TestLoad_SquareBoard(t *testing.T) {
	b, err := board.Load(strings.NewReader("abc\ndef\nghi\njkl\n"), board.MinSides)
	require.NoError(t, err)

	assert.Equal(t, 4, b.NumSides())
	assert.Equal(t, []string{"abc", "def", "ghi", "jkl"}, b.Sides())
	assert.Equal(t, "abcdefghijkl", b.Letters().String())

	side, ok := b.SideOf('e')
	require.True(t, ok)
	assert.Equal(t, 1, side)

	side, ok = b.SideOf('l')
	require.True(t, ok)
	assert.Equal(t, 3, side)

	_, ok = b.SideOf('z')
	assert.False(t, ok)
	_, ok = b.SideOf('A')
	assert.False(t, ok)
}

func TestLoad_StripsCarriageReturn(t *testing.T) {
	b, err := board.Load(strings.NewReader("ab\r\ncd\r\nef\r\n"), board.MinSides)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "cd", "ef"}, b.Sides())
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"two sides", "ab\ncd\n"},
		{"two longer sides", "abc\ndef\n"},
		{"empty source", ""},
		{"letter on two sides", "abc\ndef\ngha\n"},
		{"letter twice on one side", "aab\ncde\nfgh\n"},
		{"empty side", "abc\n\ndef\n"},
		{"upper case letter", "abc\nDef\nghi\n"},
		{"digit", "abc\nd3f\nghi\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := board.Load(strings.NewReader(tc.input), board.MinSides)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, board.ErrInvalidBoard)
		})
	}
}

func TestNew_MinSidesIsClamped(t *testing.T) {
	_, err := board.New([]string{"ab", "cd"}, 1)
	assert.ErrorIs(t, err, board.ErrInvalidBoard)

	_, err = board.New([]string{"ab", "cd", "ef"}, 4)
	assert.ErrorIs(t, err, board.ErrInvalidBoard)

	_, err = board.New([]string{"ab", "cd", "ef", "gh"}, 4)
	assert.NoError(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.txt")
	require.NoError(t, os.WriteFile(path, []byte("ab\ncd\nef\n"), 0o600))

	first, err := board.LoadFile(path, board.MinSides)
	require.NoError(t, err)
	second, err := board.LoadFile(path, board.MinSides)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = board.LoadFile(filepath.Join(dir, "missing.txt"), board.MinSides)
	require.Error(t, err)
	assert.NotErrorIs(t, err, board.ErrInvalidBoard)
}

func TestLetterSet(t *testing.T) {
	s := board.MakeLetterSet("dog")
	assert.True(t, s.Has('d'))
	assert.False(t, s.Has('a'))
	assert.False(t, s.Has('!'))
	assert.Equal(t, "dgo", s.String())

	all := board.MakeLetterSet("abcdefg")
	assert.False(t, s.Covers(all))
	assert.True(t, all.Covers(board.MakeLetterSet("gab")))
	assert.Equal(t, "abcef", all.Minus(s).String())
	assert.Equal(t, s, s.Add('?'))
}

package game

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/letterboxed/internal/board"
	"github.com/robalobadob/letterboxed/internal/words"
)

// errReader fails every read; used to prove a stream is not read further.
type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read past verdict") }

func triangleBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.New([]string{"ab", "cd", "ef"}, board.MinSides)
	require.NoError(t, err)
	return b
}

func TestCheck_LetterNotOnBoard(t *testing.T) {
	// 'o' is not on the square board.
	v := Check(squareBoard(t), words.New([]string{"dog"}), []string{"dog"})
	assert.Equal(t, StateFailed, v.State)
	assert.Equal(t, ReasonLetterNotOnBoard, v.Reason)
	assert.Equal(t, "dog", v.Word)
	assert.Equal(t, 0, v.Index)
}

func TestCheck_IncompleteCoverage(t *testing.T) {
	v := Check(squareBoard(t), words.New([]string{"beg"}), []string{"beg"})
	assert.Equal(t, StateFailed, v.State)
	assert.Equal(t, ReasonIncompleteCoverage, v.Reason)
	assert.Equal(t, "Not all letters used", v.Message())
	assert.Equal(t, -1, v.Index)
	assert.Equal(t, "beg", v.Used.String())
	assert.Equal(t, "acdfhijkl", v.Missing.String())
}

func TestCheck_SameSideBeforeDictionary(t *testing.T) {
	d := words.New([]string{"bad", "dog"})
	v := Check(squareBoard(t), d, []string{"bad", "dog"})
	assert.Equal(t, ReasonSameSideConsecutive, v.Reason)
	assert.Equal(t, "bad", v.Word)
	assert.Equal(t, 0, v.Index)

	// Not in the dictionary either: the board rule is still what gets reported.
	v = Check(squareBoard(t), words.New(nil), []string{"bad"})
	assert.Equal(t, ReasonSameSideConsecutive, v.Reason)
}

func TestCheck_Succeeds(t *testing.T) {
	d := words.New([]string{"face", "ebd"})
	v := Check(triangleBoard(t), d, []string{"face", "ebd"})
	assert.True(t, v.Succeeded())
	assert.Equal(t, ReasonNone, v.Reason)
	assert.Equal(t, "Correct", v.Message())
	assert.Equal(t, "ebd", v.Word)
	assert.Equal(t, 1, v.Index)
	assert.Equal(t, "abcdef", v.Used.String())
	assert.Zero(t, v.Missing)
}

func TestCheck_NotInDictionary(t *testing.T) {
	v := Check(triangleBoard(t), words.New([]string{"face"}), []string{"face", "ebd"})
	assert.Equal(t, ReasonNotInDictionary, v.Reason)
	assert.Equal(t, "ebd", v.Word)
	assert.Equal(t, 1, v.Index)
	assert.Equal(t, "acef", v.Used.String(), "rejected word adds no letters")
}

func TestCheck_ChainMismatch(t *testing.T) {
	d := words.New([]string{"face", "bed"})
	v := Check(triangleBoard(t), d, []string{"face", "bed"})
	assert.Equal(t, ReasonChainMismatch, v.Reason)
	assert.Equal(t, "bed", v.Word)
}

func TestCheck_EmptyStream(t *testing.T) {
	v := Check(triangleBoard(t), words.New(nil), nil)
	assert.Equal(t, ReasonIncompleteCoverage, v.Reason)
	assert.Equal(t, "abcdef", v.Missing.String())
}

func TestSession_EarlySuccessIgnoresRest(t *testing.T) {
	d := words.New([]string{"face", "ebd"})
	s := New(triangleBoard(t), d)

	state, err := s.Feed("face")
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, state)

	state, err = s.Feed("ebd")
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, state)

	// Would fail every rule, but the session is already decided.
	state, err = s.Feed("zzz")
	assert.ErrorIs(t, err, ErrFinished)
	assert.Equal(t, StateSucceeded, state)

	v := s.Finish()
	assert.True(t, v.Succeeded())
	assert.Equal(t, "ebd", v.Word)
}

func TestSession_FirstFailureWins(t *testing.T) {
	s := New(triangleBoard(t), words.New([]string{"face", "ebd"}))
	state, err := s.Feed("xyz")
	require.NoError(t, err)
	assert.Equal(t, StateFailed, state)

	_, err = s.Feed("face")
	assert.ErrorIs(t, err, ErrFinished)

	v, done := s.Verdict()
	require.True(t, done)
	assert.Equal(t, ReasonLetterNotOnBoard, v.Reason)
	assert.Equal(t, ReasonLetterNotOnBoard, s.Finish().Reason)
}

func TestSession_UsedLettersGrow(t *testing.T) {
	b := squareBoard(t)
	s := New(b, words.New([]string{"beg", "gel", "lid"}))
	assert.Equal(t, StateAwaiting, s.State())

	var prev board.LetterSet
	for _, w := range []string{"beg", "gel", "lid"} {
		_, err := s.Feed(w)
		require.NoError(t, err)
		used := s.Used()
		assert.True(t, used.Covers(prev))
		assert.True(t, used.Covers(board.MakeLetterSet(w)))
		prev = used
	}
	_, done := s.Verdict()
	assert.False(t, done)
	assert.Equal(t, StatePlaying, s.State())
}

func TestSession_Run(t *testing.T) {
	d := words.New([]string{"face", "ebd"})

	t.Run("stops reading at verdict", func(t *testing.T) {
		r := io.MultiReader(strings.NewReader("face\r\nebd\n"), errReader{})
		v, err := New(triangleBoard(t), d).Run(r)
		require.NoError(t, err)
		assert.True(t, v.Succeeded())
	})

	t.Run("stops reading at failure", func(t *testing.T) {
		r := io.MultiReader(strings.NewReader("fade\n"), errReader{})
		v, err := New(triangleBoard(t), d).Run(r)
		require.NoError(t, err)
		assert.Equal(t, ReasonNotInDictionary, v.Reason)
	})

	t.Run("coverage checked at end of stream", func(t *testing.T) {
		v, err := New(triangleBoard(t), d).Run(strings.NewReader("face\n"))
		require.NoError(t, err)
		assert.Equal(t, ReasonIncompleteCoverage, v.Reason)
		assert.Equal(t, "bd", v.Missing.String())
	})

	t.Run("read error without verdict", func(t *testing.T) {
		r := io.MultiReader(strings.NewReader("face\n"), errReader{})
		_, err := New(triangleBoard(t), d).Run(r)
		assert.Error(t, err)
	})
}

func TestSession_IDsDiffer(t *testing.T) {
	b := triangleBoard(t)
	a, c := New(b, words.New(nil)), New(b, words.New(nil))
	assert.Len(t, a.ID, 16)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestSession_EmptyLine(t *testing.T) {
	t.Run("first line, not in dictionary", func(t *testing.T) {
		s := New(triangleBoard(t), words.New([]string{"face"}))
		state, err := s.Feed("")
		require.NoError(t, err)
		assert.Equal(t, StateFailed, state)
		v, _ := s.Verdict()
		assert.Equal(t, ReasonNotInDictionary, v.Reason)
		assert.Equal(t, 0, v.Index)
	})

	t.Run("first line, in dictionary", func(t *testing.T) {
		s := New(triangleBoard(t), words.New([]string{"", "face", "ebd"}))
		state, err := s.Feed("")
		require.NoError(t, err)
		assert.Equal(t, StatePlaying, state)
		assert.Zero(t, s.Used())

		// no cursor was set, so any first letter may follow
		state, err = s.Feed("face")
		require.NoError(t, err)
		assert.Equal(t, StatePlaying, state)
		assert.Equal(t, "acef", s.Used().String())
	})

	t.Run("after a word, in dictionary", func(t *testing.T) {
		s := New(triangleBoard(t), words.New([]string{"", "face", "ebd"}))
		_, err := s.Feed("face")
		require.NoError(t, err)

		state, err := s.Feed("")
		require.NoError(t, err)
		assert.Equal(t, StateFailed, state)
		v, _ := s.Verdict()
		assert.Equal(t, ReasonChainMismatch, v.Reason)
		assert.Equal(t, 1, v.Index)
	})
}

// internal/game/engine.go
//
// Session engine for a single Letter Boxed validation run.
// Responsibilities:
//   - Feed candidate words one at a time through Validate and the dictionary.
//   - Accumulate used letters and the chain cursor.
//   - Track state transitions: awaiting → playing → failed/succeeded.
//
// Notes:
//   - The first failing word ends the session; later words are never looked at.
//   - Full coverage ends the session as a success immediately, even if the
//     stream has more words.
//   - If the stream runs dry first, Finish applies the coverage check.
package game

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/letterboxed/internal/board"
	"github.com/robalobadob/letterboxed/internal/words"
)

// maxWordLen bounds a single line of the word stream.
const maxWordLen = 1 << 20

// Session holds the state of one validation run over one board.
// All methods are safe for concurrent use.
type Session struct {
	ID string // random hex identifier, used by the HTTP session store

	board *board.Board
	dict  *words.Dictionary

	mu      sync.Mutex
	state   State
	last    byte // final letter of the previous accepted word; 0 before the first
	used    board.LetterSet
	fed     int // words consumed so far
	verdict Verdict
}

// New starts a session over b and d. Both are only read.
func New(b *board.Board, d *words.Dictionary) *Session {
	return &Session{
		ID:    randomID(),
		board: b,
		dict:  d,
		state: StateAwaiting,
	}
}

// Feed applies the next word in the stream.
//
// It returns the session state after the word and, once the session is
// terminal, the verdict. Feeding a terminal session returns ErrFinished and
// leaves it untouched.
func (s *Session) Feed(word string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return s.state, ErrFinished
	}
	idx := s.fed
	s.fed++

	next, err := Validate(s.board, word, s.last)
	if err != nil {
		var re *RuleError
		if errors.As(err, &re) {
			s.fail(re.Reason, word, idx)
			return s.state, nil
		}
		return s.state, err
	}
	if !s.dict.Contains(word) {
		s.fail(ReasonNotInDictionary, word, idx)
		return s.state, nil
	}

	s.used |= board.MakeLetterSet(word)
	s.last = next
	s.state = StatePlaying
	log.Debug().Str("session", s.ID).Str("word", word).Str("used", s.used.String()).Msg("word accepted")

	if s.used.Covers(s.board.Letters()) {
		s.decide(StateSucceeded, ReasonNone, word, idx)
	}
	return s.state, nil
}

// Finish marks the end of the word stream and returns the verdict. A session
// that already has a verdict keeps it.
func (s *Session) Finish() Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Terminal() {
		if s.used.Covers(s.board.Letters()) {
			s.decide(StateSucceeded, ReasonNone, "", -1)
		} else {
			s.decide(StateFailed, ReasonIncompleteCoverage, "", -1)
		}
	}
	return s.verdict
}

// Verdict returns the verdict and whether one has been reached.
func (s *Session) Verdict() (Verdict, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verdict, s.state.Terminal()
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Used returns the letters of all accepted words so far.
func (s *Session) Used() board.LetterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

// Run feeds one word per line from r until a verdict is reached or r is
// exhausted. Lines after the deciding word are not read. A read error is
// returned as is, with no verdict.
func (s *Session) Run(r io.Reader) (Verdict, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 128), maxWordLen)
	for sc.Scan() {
		state, err := s.Feed(strings.TrimRight(sc.Text(), "\r"))
		if err != nil {
			return Verdict{}, err
		}
		if state.Terminal() {
			v, _ := s.Verdict()
			return v, nil
		}
	}
	if err := sc.Err(); err != nil {
		return Verdict{}, fmt.Errorf("read words: %w", err)
	}
	return s.Finish(), nil
}

// Check runs a complete session over an in-memory word list.
func Check(b *board.Board, d *words.Dictionary, list []string) Verdict {
	s := New(b, d)
	for _, w := range list {
		state, _ := s.Feed(w)
		if state.Terminal() {
			break
		}
	}
	return s.Finish()
}

func (s *Session) fail(reason Reason, word string, idx int) {
	s.decide(StateFailed, reason, word, idx)
}

// decide records the terminal verdict. Callers hold s.mu.
func (s *Session) decide(state State, reason Reason, word string, idx int) {
	s.state = state
	s.verdict = Verdict{
		State:   state,
		Reason:  reason,
		Word:    word,
		Index:   idx,
		Used:    s.used,
		Missing: s.board.Letters().Minus(s.used),
	}
	log.Debug().Str("session", s.ID).Str("state", string(state)).Str("reason", string(reason)).Msg("verdict")
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

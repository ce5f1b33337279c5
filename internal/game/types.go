// internal/game/types.go
//
// Core type definitions for validating a Letter Boxed chain.
// Defines:
//   - Reason: which rule ended a session (or why it succeeded).
//   - State:  where a session is in its lifecycle.
//   - Verdict: the terminal outcome plus diagnostics.
//   - RuleError: a single word's rule violation.

package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/letterboxed/internal/board"
)

// Reason identifies the rule that decided a verdict.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonInvalidBoard        Reason = "invalid_board"
	ReasonLetterNotOnBoard    Reason = "letter_not_on_board"
	ReasonChainMismatch       Reason = "chain_mismatch"
	ReasonSameSideConsecutive Reason = "same_side_consecutive"
	ReasonNotInDictionary     Reason = "not_in_dictionary"
	ReasonIncompleteCoverage  Reason = "incomplete_coverage"
)

// Message is the one-line, human readable text printed for a reason.
func (r Reason) Message() string {
	switch r {
	case ReasonNone:
		return "Correct"
	case ReasonInvalidBoard:
		return "Invalid board"
	case ReasonLetterNotOnBoard:
		return "Used a letter not present on the board"
	case ReasonChainMismatch:
		return "First letter of word does not match last letter of previous word"
	case ReasonSameSideConsecutive:
		return "Same-side letter used consecutively"
	case ReasonNotInDictionary:
		return "Word not found in dictionary"
	case ReasonIncompleteCoverage:
		return "Not all letters used"
	}
	return string(r)
}

// State is the lifecycle position of a Session.
//   - "awaiting":  no word accepted yet.
//   - "playing":   at least one word accepted, no verdict.
//   - "failed":    a rule was broken or coverage was incomplete at the end.
//   - "succeeded": every board letter was used.
type State string

const (
	StateAwaiting  State = "awaiting"
	StatePlaying   State = "playing"
	StateFailed    State = "failed"
	StateSucceeded State = "succeeded"
)

// Terminal reports whether no further words will be accepted.
func (s State) Terminal() bool {
	return s == StateFailed || s == StateSucceeded
}

// ErrFinished is returned when a word is fed to a session that already has a verdict.
var ErrFinished = errors.New("session finished")

// Verdict is the outcome of a session.
type Verdict struct {
	State   State           // StateFailed or StateSucceeded once decided
	Reason  Reason          // ReasonNone on success
	Word    string          // word that decided the verdict, if any
	Index   int             // 0-based position of Word in the stream, -1 if none
	Used    board.LetterSet // letters of all accepted words
	Missing board.LetterSet // board letters not yet used
}

// Succeeded reports whether the chain solved the puzzle.
func (v Verdict) Succeeded() bool { return v.State == StateSucceeded }

// Message returns the single verdict line.
func (v Verdict) Message() string { return v.Reason.Message() }

// RuleError describes why a single word was rejected.
type RuleError struct {
	Reason Reason
	Word   string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason.Message(), e.Word)
}

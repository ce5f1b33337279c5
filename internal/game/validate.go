package game

import "github.com/robalobadob/letterboxed/internal/board"

// Validate checks a single word against the board and the chain cursor.
//
// last is the final letter of the previous accepted word, or 0 before the
// first word. On success the word's own last letter is returned as the new
// cursor (an empty word leaves the cursor unchanged).
//
// Checks run in a fixed order and the first failure wins:
//  1. every letter is on the board      (ReasonLetterNotOnBoard)
//  2. the word continues the chain      (ReasonChainMismatch)
//  3. no two adjacent letters share a side (ReasonSameSideConsecutive)
//
// The error, when non-nil, is a *RuleError.
func Validate(b *board.Board, word string, last byte) (byte, error) {
	for i := 0; i < len(word); i++ {
		if _, ok := b.SideOf(word[i]); !ok {
			return last, &RuleError{Reason: ReasonLetterNotOnBoard, Word: word}
		}
	}

	if last != 0 && (word == "" || word[0] != last) {
		return last, &RuleError{Reason: ReasonChainMismatch, Word: word}
	}

	// havePrev is false at the start of the word and after any letter whose
	// side is unknown, so an unknown side never matches anything.
	prevSide, havePrev := 0, false
	for i := 0; i < len(word); i++ {
		side, ok := b.SideOf(word[i])
		if !ok {
			havePrev = false
			continue
		}
		if havePrev && side == prevSide {
			return last, &RuleError{Reason: ReasonSameSideConsecutive, Word: word}
		}
		prevSide, havePrev = side, true
	}

	if word == "" {
		return last, nil
	}
	return word[len(word)-1], nil
}

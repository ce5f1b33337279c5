// internal/board/board.go
//
// Letter Boxed board: the letters arranged on the sides of a polygon.
//
// Responsibilities:
//   - Parse a board from a line-oriented source (one side per line).
//   - Reject structurally invalid boards (too few sides, repeated letters).
//   - Answer side lookups for the word validator and expose the full letter
//     set for the coverage check.
//
// A Board is immutable once loaded and safe to share between sessions.

package board

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// MinSides is the smallest polygon a board may describe.
const MinSides = 3

// ErrInvalidBoard is returned for any structural problem with a board.
var ErrInvalidBoard = errors.New("invalid board")

// Board holds the sides of the puzzle and a per-letter side index.
type Board struct {
	sides   []string
	side    [26]int // side index + 1; 0 means the letter is not on the board
	letters LetterSet
}

// Load reads one side per line from r and validates the result.
// minSides below MinSides is raised to MinSides.
func Load(r io.Reader, minSides int) (*Board, error) {
	if minSides < MinSides {
		minSides = MinSides
	}
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	return New(rows, minSides)
}

// LoadFile opens path and loads a board from it. Failure to open or read
// the file is returned unwrapped from ErrInvalidBoard so callers can tell
// I/O problems apart from a bad board.
func LoadFile(path string, minSides int) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := Load(f, minSides)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("sides", b.NumSides()).Str("letters", b.letters.String()).Msg("board loaded")
	return b, nil
}

// New builds a board from already split rows.
//
// Validation happens in two passes like a player would check it: first the
// side count, then the letters themselves. Every letter must be a–z and may
// appear only once on the whole board.
func New(rows []string, minSides int) (*Board, error) {
	if minSides < MinSides {
		minSides = MinSides
	}
	if len(rows) < minSides {
		return nil, fmt.Errorf("%w: %d sides, need at least %d", ErrInvalidBoard, len(rows), minSides)
	}

	b := &Board{sides: make([]string, len(rows))}
	for i, row := range rows {
		if row == "" {
			return nil, fmt.Errorf("%w: side %d is empty", ErrInvalidBoard, i)
		}
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c < 'a' || c > 'z' {
				return nil, fmt.Errorf("%w: side %d has non-letter %q", ErrInvalidBoard, i, c)
			}
			if b.letters.Has(c) {
				return nil, fmt.Errorf("%w: letter %q appears more than once", ErrInvalidBoard, c)
			}
			b.letters = b.letters.Add(c)
			b.side[c-'a'] = i + 1
		}
		b.sides[i] = row
	}
	return b, nil
}

// SideOf returns the index of the side holding c. ok is false when c is not
// on the board.
func (b *Board) SideOf(c byte) (side int, ok bool) {
	if c < 'a' || c > 'z' {
		return 0, false
	}
	s := b.side[c-'a']
	if s == 0 {
		return 0, false
	}
	return s - 1, true
}

// Letters returns every letter present on the board.
func (b *Board) Letters() LetterSet { return b.letters }

// NumSides reports how many sides the board has.
func (b *Board) NumSides() int { return len(b.sides) }

// Sides returns a copy of the sides in load order.
func (b *Board) Sides() []string {
	return append([]string(nil), b.sides...)
}

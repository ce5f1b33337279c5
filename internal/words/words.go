// internal/words/words.go
//
// Dictionary of accepted words for a Letter Boxed run.
//
// Responsibilities:
//   - Load one word per line from a file or reader.
//   - Answer exact membership queries.
//
// Notes:
//   • Words are kept as given; only the line terminator is stripped.
//     No lowercasing, no letter validation (the board check rejects
//     foreign letters before the dictionary is consulted).
//   • Duplicate lines collapse into a single entry.
//   • A Dictionary is immutable after load and safe for concurrent reads.

package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Dictionary is a set of accepted words.
type Dictionary struct {
	set map[string]struct{}
}

// Load reads one word per line from r.
func Load(r io.Reader) (*Dictionary, error) {
	list, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return New(list), nil
}

// LoadFile opens path and loads a dictionary from it.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Load(f)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("words", d.Len()).Msg("dictionary loaded")
	return d, nil
}

// New builds a dictionary from a word list.
func New(list []string) *Dictionary {
	return &Dictionary{set: toSet(list)}
}

// Contains reports whether w is in the dictionary (exact match).
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[w]
	return ok
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.set) }

// readLines returns every line of r with its terminator removed.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, strings.TrimRight(sc.Text(), "\r"))
	}
	return out, sc.Err()
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

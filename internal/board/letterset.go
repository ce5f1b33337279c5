package board

import "strings"

// LetterSet is a bitset over the lowercase ASCII alphabet.
type LetterSet uint32

// MakeLetterSet returns the set of a–z letters in s. Other bytes are ignored.
func MakeLetterSet(s string) LetterSet {
	var set LetterSet
	for i := 0; i < len(s); i++ {
		set = set.Add(s[i])
	}
	return set
}

// Add returns set with c included. Bytes outside a–z are ignored.
func (set LetterSet) Add(c byte) LetterSet {
	if c < 'a' || c > 'z' {
		return set
	}
	return set | 1<<(c-'a')
}

// Has reports whether c is in the set.
func (set LetterSet) Has(c byte) bool {
	if c < 'a' || c > 'z' {
		return false
	}
	return set&(1<<(c-'a')) != 0
}

// Covers reports whether every letter of other is also in set.
func (set LetterSet) Covers(other LetterSet) bool {
	return set&other == other
}

// Minus returns the letters of set not in other.
func (set LetterSet) Minus(other LetterSet) LetterSet {
	return set &^ other
}

// String lists the letters in alphabetical order.
func (set LetterSet) String() string {
	var b strings.Builder
	for c := byte('a'); c <= 'z'; c++ {
		if set.Has(c) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

package accent

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Shape classifies the canonical decomposition of a character.
type Shape int

const (
	// Atomic means the character has no decomposition at all.
	Atomic Shape = iota
	// Pair means the canonical decomposition is exactly base + combining mark.
	Pair
	// Other covers singleton, compatibility-only and multi-mark decompositions.
	Other
)

func (s Shape) String() string {
	switch s {
	case Atomic:
		return "atomic"
	case Pair:
		return "pair"
	case Other:
		return "other"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Decomposition is the result of resolving one character.
type Decomposition struct {
	Rune  rune
	Shape Shape
	// Base and Mark are set only when Shape is Pair.
	Base rune
	Mark rune
	// Parts holds the decomposed runes when Shape is Other (the single
	// canonical equivalent for singletons); nil for compatibility-only
	// decompositions.
	Parts []rune
}

// BaseHex returns the base codepoint as a 4-hex-digit string.
func (d Decomposition) BaseHex() string { return fmt.Sprintf("%04X", d.Base) }

// MarkHex returns the mark codepoint as a 4-hex-digit string.
func (d Decomposition) MarkHex() string { return fmt.Sprintf("%04X", d.Mark) }

// Decompose resolves r to its canonical (NFD) decomposition.
// Singleton decompositions are Other with the single replacement character
// in Parts. Otherwise the full canonical decomposition is used, so
// characters carrying stacked marks ('ǖ' = u + diaeresis + macron) are
// classified as Other.
func Decompose(r rune) Decomposition {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)

	// Singletons ('Å' ANGSTROM SIGN -> 'Å') are replaced by another single
	// character under NFC.
	if c := []rune(norm.NFC.String(string(buf[:n]))); len(c) == 1 && c[0] != r {
		return Decomposition{Rune: r, Shape: Other, Parts: c}
	}

	d := norm.NFD.Properties(buf[:n]).Decomposition()
	if len(d) == 0 {
		if len(norm.NFKD.Properties(buf[:n]).Decomposition()) > 0 {
			return Decomposition{Rune: r, Shape: Other}
		}
		return Decomposition{Rune: r, Shape: Atomic}
	}

	parts := []rune(string(d))
	if len(parts) == 2 {
		return Decomposition{Rune: r, Shape: Pair, Base: parts[0], Mark: parts[1]}
	}
	return Decomposition{Rune: r, Shape: Other, Parts: parts}
}

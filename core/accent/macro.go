package accent

import (
	"strings"

	"github.com/FocuswithJustin/u2t/core/encoding"
	"github.com/FocuswithJustin/u2t/core/errors"
)

// Synthesize builds the TeX accent macro for a Pair decomposition, e.g.
// base 'o' with U+0300 yields "\`{o}".
//
// It fails with a *errors.CharacterError wrapping errors.ErrUnsupportedMark
// when the mark is not in t, errors.ErrUnsupportedBase when the base is not
// printable ASCII, and errors.ErrNotDecomposable for any non-Pair shape.
func (t *Table) Synthesize(d Decomposition) (string, error) {
	if d.Shape != Pair {
		return "", errors.NewCharacter(d.Rune, errors.ErrNotDecomposable, d.Shape.String())
	}
	cmd, ok := t.Lookup(d.Mark)
	if !ok {
		return "", errors.NewCharacter(d.Rune, errors.ErrUnsupportedMark, "mark U+"+d.MarkHex())
	}
	if encoding.IsNonASCII(d.Base) || d.Base <= ' ' {
		return "", errors.NewCharacter(d.Rune, errors.ErrUnsupportedBase, "base U+"+d.BaseHex())
	}

	var sb strings.Builder
	sb.Grow(len(cmd) + 4)
	sb.WriteByte('\\')
	sb.WriteString(cmd)
	sb.WriteByte('{')
	sb.WriteRune(d.Base)
	sb.WriteByte('}')
	return sb.String(), nil
}

// Convert resolves and synthesizes r against t in one step.
func (t *Table) Convert(r rune) (string, error) {
	return t.Synthesize(Decompose(r))
}

// ToLaTeX converts a single character using the default table.
func ToLaTeX(r rune) (string, error) {
	return defaultTable.Convert(r)
}

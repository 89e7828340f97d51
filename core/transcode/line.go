// Package transcode rewrites text so that accented Latin characters become
// TeX accent macros, line by line and file by file.
package transcode

import (
	"strings"

	"github.com/FocuswithJustin/u2t/core/accent"
	"github.com/FocuswithJustin/u2t/core/encoding"
)

// Action says how a TranslationTable entry rewrites its character.
type Action int

const (
	// Substitute replaces the character with Replacement.Text.
	Substitute Action = iota
	// Delete removes the character.
	Delete
	// Keep leaves the character as it is.
	Keep
)

// Replacement is one TranslationTable entry. Cause is set for Delete and
// Keep entries and records why no macro was produced.
type Replacement struct {
	Action Action
	Text   string
	Cause  error
}

// TranslationTable maps each distinct non-ASCII character of a line to its
// replacement. It is built for one line and discarded afterwards.
type TranslationTable map[rune]Replacement

// lineStats counts occurrences rewritten in one line.
type lineStats struct {
	substituted int
	dropped     int
	preserved   int
	// droppedChars lists each distinct deleted character once, in order of appearance.
	droppedChars []droppedChar
}

type droppedChar struct {
	r     rune
	cause error
}

// Apply rewrites line through the table. Characters without an entry are copied.
func (tt TranslationTable) Apply(line string) string {
	out, _ := tt.apply(line)
	return out
}

func (tt TranslationTable) apply(line string) (string, lineStats) {
	var st lineStats
	var sb strings.Builder
	sb.Grow(len(line) + 8*len(tt))
	seenDrop := make(map[rune]bool)

	for _, r := range line {
		rep, ok := tt[r]
		if !ok {
			sb.WriteRune(r)
			continue
		}
		switch rep.Action {
		case Substitute:
			st.substituted++
			sb.WriteString(rep.Text)
		case Keep:
			st.preserved++
			sb.WriteRune(r)
		case Delete:
			st.dropped++
			if !seenDrop[r] {
				seenDrop[r] = true
				st.droppedChars = append(st.droppedChars, droppedChar{r: r, cause: rep.Cause})
			}
		}
	}
	return sb.String(), st
}

// Transcoder converts lines using a mark table and a Policy.
// A Transcoder holds no per-line state and is safe for concurrent use.
type Transcoder struct {
	table  *accent.Table
	policy Policy
}

// Option configures a Transcoder.
type Option func(*Transcoder)

// WithTable sets the mark table. The default is accent.DefaultTable().
func WithTable(table *accent.Table) Option {
	return func(t *Transcoder) {
		if table != nil {
			t.table = table
		}
	}
}

// WithPolicy sets the policy for characters without a macro.
func WithPolicy(p Policy) Option {
	return func(t *Transcoder) {
		t.policy = p
	}
}

// New creates a Transcoder.
func New(opts ...Option) *Transcoder {
	t := &Transcoder{table: accent.DefaultTable(), policy: PolicyDrop}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Policy returns the transcoder's policy.
func (t *Transcoder) Policy() Policy {
	return t.policy
}

// Table builds the translation table for line. Under PolicyFail the first
// character without a macro aborts the build with a *errors.CharacterError.
func (t *Transcoder) Table(line string) (TranslationTable, error) {
	tt := make(TranslationTable)
	for _, r := range line {
		if !encoding.IsNonASCII(r) {
			continue
		}
		if _, done := tt[r]; done {
			continue
		}
		rep, err := t.resolve(r)
		if err != nil {
			return nil, err
		}
		tt[r] = rep
	}
	return tt, nil
}

func (t *Transcoder) resolve(r rune) (Replacement, error) {
	macro, err := t.table.Convert(r)
	if err == nil {
		return Replacement{Action: Substitute, Text: macro}, nil
	}
	switch t.policy {
	case PolicyPreserve:
		return Replacement{Action: Keep, Cause: err}, nil
	case PolicyFail:
		return Replacement{}, err
	default:
		return Replacement{Action: Delete, Cause: err}, nil
	}
}

// Line converts one line. ASCII-only lines are returned unchanged, which
// makes Line idempotent.
func (t *Transcoder) Line(line string) (string, error) {
	out, _, err := t.line(line)
	return out, err
}

func (t *Transcoder) line(line string) (string, lineStats, error) {
	if !encoding.HasNonASCII(line) {
		return line, lineStats{}, nil
	}
	tt, err := t.Table(line)
	if err != nil {
		return "", lineStats{}, err
	}
	out, st := tt.apply(line)
	return out, st, nil
}

var defaultTranscoder = New()

// Line converts one line with the default table, dropping characters that
// have no macro.
func Line(line string) string {
	out, _ := defaultTranscoder.Line(line)
	return out
}

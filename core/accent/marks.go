// Package accent maps precomposed Latin characters to TeX accent macros.
//
// A character such as 'ò' is resolved to its canonical decomposition
// ('o' + U+0300 COMBINING GRAVE ACCENT), the combining mark is looked up in
// a Table to find the TeX accent command ("`"), and the macro "\`{o}" is
// synthesized from the two.
package accent

import (
	"fmt"
	"sort"

	"github.com/FocuswithJustin/u2t/core/errors"
)

// MarkEntry binds a combining mark to the TeX accent command that renders it.
type MarkEntry struct {
	Mark    rune
	Command string
}

// Key returns the 4-hex-digit uppercase codepoint key of the mark (e.g. "0300").
func (e MarkEntry) Key() string {
	return fmt.Sprintf("%04X", e.Mark)
}

// defaultEntries are the marks understood by plain LaTeX text-mode accents.
var defaultEntries = []MarkEntry{
	{0x0300, "`"},  // grave
	{0x0301, "'"},  // acute
	{0x0302, "^"},  // circumflex
	{0x0303, "~"},  // tilde
	{0x0304, "="},  // macron
	{0x0306, "u"},  // breve
	{0x0307, "."},  // dot above
	{0x0308, "\""}, // diaeresis
	{0x030A, "r"},  // ring above
	{0x030B, "H"},  // double acute
	{0x030C, "v"},  // caron
	{0x0327, "c"},  // cedilla
	{0x0328, "k"},  // ogonek
}

// Table is an immutable mapping from combining marks to accent commands.
// A Table is safe for concurrent use; it is never modified after construction.
type Table struct {
	commands map[rune]string
}

var defaultTable = mustTable(defaultEntries)

// DefaultTable returns the process-wide table of the 13 standard accents.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable builds a table from entries. Duplicate marks and invalid commands are rejected.
func NewTable(entries []MarkEntry) (*Table, error) {
	t := &Table{commands: make(map[rune]string, len(entries))}
	if err := t.add(entries); err != nil {
		return nil, err
	}
	return t, nil
}

func mustTable(entries []MarkEntry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Extend returns a new table holding the receiver's entries plus entries.
// The receiver is left unchanged. A mark already present is rejected.
func (t *Table) Extend(entries []MarkEntry) (*Table, error) {
	n := &Table{commands: make(map[rune]string, len(t.commands)+len(entries))}
	for mark, cmd := range t.commands {
		n.commands[mark] = cmd
	}
	if err := n.add(entries); err != nil {
		return nil, err
	}
	return n, nil
}

func (t *Table) add(entries []MarkEntry) error {
	for _, e := range entries {
		if err := validateCommand(e.Command); err != nil {
			return errors.NewValidation("command", fmt.Sprintf("mark %s: %v", e.Key(), err))
		}
		if _, dup := t.commands[e.Mark]; dup {
			return errors.NewValidation("mark", fmt.Sprintf("duplicate mark %s", e.Key()))
		}
		t.commands[e.Mark] = e.Command
	}
	return nil
}

// validateCommand accepts a single ASCII punctuation character or a run of ASCII letters.
func validateCommand(cmd string) error {
	if cmd == "" {
		return fmt.Errorf("empty command")
	}
	if len(cmd) == 1 && isCommandSymbol(cmd[0]) {
		return nil
	}
	for i := 0; i < len(cmd); i++ {
		c := cmd[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return fmt.Errorf("command %q must be one symbol or letters only", cmd)
		}
	}
	return nil
}

func isCommandSymbol(c byte) bool {
	switch c {
	case '{', '}', '\\', '%', '#':
		return false
	}
	return c > ' ' && c < 0x7f && !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// Lookup returns the accent command for mark.
func (t *Table) Lookup(mark rune) (string, bool) {
	cmd, ok := t.commands[mark]
	return cmd, ok
}

// Len returns the number of marks in the table.
func (t *Table) Len() int {
	return len(t.commands)
}

// Entries returns the table's entries ordered by codepoint.
func (t *Table) Entries() []MarkEntry {
	out := make([]MarkEntry, 0, len(t.commands))
	for mark, cmd := range t.commands {
		out = append(out, MarkEntry{Mark: mark, Command: cmd})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mark < out[j].Mark })
	return out
}

package accent

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/u2t/core/errors"
)

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	if table.Len() != 13 {
		t.Fatalf("default table has %d entries, want 13", table.Len())
	}

	want := map[string]string{
		"0300": "`", "0301": "'", "0302": "^", "0303": "~", "0304": "=",
		"0306": "u", "0307": ".", "0308": "\"", "030A": "r", "030B": "H",
		"030C": "v", "0327": "c", "0328": "k",
	}
	for _, e := range table.Entries() {
		if want[e.Key()] != e.Command {
			t.Errorf("entry %s = %q, want %q", e.Key(), e.Command, want[e.Key()])
		}
	}

	if _, ok := table.Lookup(0x0323); ok {
		t.Error("dot below should not be in the default table")
	}
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name  string
		input rune
		want  Decomposition
	}{
		{"ascii", 'a', Decomposition{Rune: 'a', Shape: Atomic}},
		{"sharp s", 'ß', Decomposition{Rune: 'ß', Shape: Atomic}},
		{"o slash", 'ø', Decomposition{Rune: 'ø', Shape: Atomic}},
		{"greek sigma", 'σ', Decomposition{Rune: 'σ', Shape: Atomic}},
		{"o grave", 'ò', Decomposition{Rune: 'ò', Shape: Pair, Base: 'o', Mark: 0x0300}},
		{"S cedilla", 'Ş', Decomposition{Rune: 'Ş', Shape: Pair, Base: 'S', Mark: 0x0327}},
		{"ring above", '\u00C5', Decomposition{Rune: '\u00C5', Shape: Pair, Base: 'A', Mark: 0x030A}},
		{"angstrom sign singleton", '\u212B', Decomposition{Rune: '\u212B', Shape: Other, Parts: []rune{'\u00C5'}}},
		{"ohm sign singleton", '\u2126', Decomposition{Rune: '\u2126', Shape: Other, Parts: []rune{'\u03A9'}}},
		{"kelvin singleton", '\u212A', Decomposition{Rune: '\u212A', Shape: Other, Parts: []rune{'K'}}},
		{"stacked marks", 'ǖ', Decomposition{Rune: 'ǖ', Shape: Other, Parts: []rune{'u', 0x0308, 0x0304}}},
		{"compatibility only", 'ﬁ', Decomposition{Rune: 'ﬁ', Shape: Other}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decompose(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decompose(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecompositionHex(t *testing.T) {
	d := Decompose('ç')
	if d.BaseHex() != "0063" || d.MarkHex() != "0327" {
		t.Errorf("hex = %s %s, want 0063 0327", d.BaseHex(), d.MarkHex())
	}
}

func TestToLaTeX(t *testing.T) {
	tests := []struct {
		input rune
		want  string
	}{
		{'ò', "\\`{o}"},
		{'ó', "\\'{o}"},
		{'ô', "\\^{o}"},
		{'ö', "\\\"{o}"},
		{'ő', "\\H{o}"},
		{'õ', "\\~{o}"},
		{'ō', "\\={o}"},
		{'ȯ', "\\.{o}"},
		{'ŏ', "\\u{o}"},
		{'š', "\\v{s}"},
		{'ç', "\\c{c}"},
		{'å', "\\r{a}"},
		{'ą', "\\k{a}"},
		{'ḩ', "\\c{h}"},
		{'Ş', "\\c{S}"},
		{'ğ', "\\u{g}"},
		{'Å', "\\r{A}"},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			got, err := ToLaTeX(tt.input)
			if err != nil {
				t.Fatalf("ToLaTeX(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ToLaTeX(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToLaTeXFailures(t *testing.T) {
	tests := []struct {
		name  string
		input rune
		want  error
	}{
		{"dot below", 'ạ', errors.ErrUnsupportedMark},
		{"greek tonos", 'ά', errors.ErrUnsupportedBase},
		{"sharp s", 'ß', errors.ErrNotDecomposable},
		{"dotless i", 'ı', errors.ErrNotDecomposable},
		{"stacked", 'ǖ', errors.ErrNotDecomposable},
		{"angstrom sign", '\u212B', errors.ErrNotDecomposable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToLaTeX(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ToLaTeX(%q) error = %v, want %v", tt.input, err, tt.want)
			}
			var cerr *errors.CharacterError
			if !errors.As(err, &cerr) || cerr.Rune != tt.input {
				t.Errorf("expected *CharacterError for %q, got %#v", tt.input, err)
			}
		})
	}
}

func TestExtend(t *testing.T) {
	base := DefaultTable()
	ext, err := base.Extend([]MarkEntry{{Mark: 0x0323, Command: "d"}})
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	if ext.Len() != 14 {
		t.Errorf("extended Len() = %d, want 14", ext.Len())
	}
	if base.Len() != 13 {
		t.Errorf("Extend mutated the receiver: Len() = %d", base.Len())
	}

	got, err := ext.Convert('ạ')
	if err != nil || got != "\\d{a}" {
		t.Errorf("Convert(ạ) = %q, %v; want \\d{a}", got, err)
	}

	if _, err := base.Extend([]MarkEntry{{Mark: 0x0300, Command: "x"}}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("duplicate mark: error = %v, want ErrInvalidInput", err)
	}
}

func TestNewTableRejectsBadCommands(t *testing.T) {
	for _, cmd := range []string{"", "{", "\\", "a1", "ab c", "7"} {
		if _, err := NewTable([]MarkEntry{{Mark: 0x0323, Command: cmd}}); err == nil {
			t.Errorf("NewTable accepted command %q", cmd)
		}
	}
	for _, cmd := range []string{"d", "b", "textsubring", "`", "\""} {
		if _, err := NewTable([]MarkEntry{{Mark: 0x0323, Command: cmd}}); err != nil {
			t.Errorf("NewTable rejected command %q: %v", cmd, err)
		}
	}
}

package transcode

import (
	"testing"

	"github.com/FocuswithJustin/u2t/core/accent"
	"github.com/FocuswithJustin/u2t/core/encoding"
	"github.com/FocuswithJustin/u2t/core/errors"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"ascii", "This is it.", "This is it."},
		{"ascii newline", "This is it.\n", "This is it.\n"},
		{"portuguese", "Amanhã choverá na rua.", "Amanh\\~{a} chover\\'{a} na rua."},
		{"repeated character", "ãã ã", "\\~{a}\\~{a} \\~{a}"},
		{"crlf kept", "naïve café\r\n", "na\\\"{i}ve caf\\'{e}\r\n"},
		{"turkish", "Yarın sokakta yağmur yağacak.", "Yarn sokakta ya\\u{g}mur ya\\u{g}acak."},
		{"german sharp s dropped", "Morgen wird auf der Straße regen.", "Morgen wird auf der Strae regen."},
		// Characters without a Latin base+mark decomposition are removed, not kept.
		{"greek dropped", "στο", ""},
		{"greek sentence dropped", "Αύριο θα βρέξει στο δρόμο", "    "},
		{"tex already escaped", "caf\\'{e}", "caf\\'{e}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Line(tt.input); got != tt.want {
				t.Errorf("Line(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLineIdempotent(t *testing.T) {
	for _, in := range []string{
		"Amanhã choverá na rua.",
		"Ça me plaît, señor Dvořák!\n",
		"Yarın yağmur",
	} {
		once := Line(in)
		if twice := Line(once); twice != once {
			t.Errorf("Line not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestLineRecognizedCharactersBecomeASCII(t *testing.T) {
	in := "òóôöőõōȯŏšçåąḩŞ àèìùÀÉÑüÿžčřń"
	out := Line(in)
	if encoding.HasNonASCII(out) {
		t.Errorf("Line(%q) = %q still has non-ASCII characters", in, out)
	}
}

func TestPolicies(t *testing.T) {
	const in = "Yarın yağmur, Straße"

	t.Run("drop", func(t *testing.T) {
		got, err := New(WithPolicy(PolicyDrop)).Line(in)
		if err != nil {
			t.Fatalf("Line() error: %v", err)
		}
		if want := "Yarn ya\\u{g}mur, Strae"; got != want {
			t.Errorf("Line() = %q, want %q", got, want)
		}
	})

	t.Run("preserve", func(t *testing.T) {
		got, err := New(WithPolicy(PolicyPreserve)).Line(in)
		if err != nil {
			t.Fatalf("Line() error: %v", err)
		}
		if want := "Yarın ya\\u{g}mur, Straße"; got != want {
			t.Errorf("Line() = %q, want %q", got, want)
		}
	})

	t.Run("fail", func(t *testing.T) {
		_, err := New(WithPolicy(PolicyFail)).Line(in)
		if !errors.Is(err, errors.ErrNotDecomposable) {
			t.Fatalf("Line() error = %v, want ErrNotDecomposable", err)
		}
		var cerr *errors.CharacterError
		if !errors.As(err, &cerr) || cerr.Rune != 'ı' {
			t.Errorf("expected CharacterError for 'ı', got %v", err)
		}
	})

	t.Run("fail unsupported mark", func(t *testing.T) {
		_, err := New(WithPolicy(PolicyFail)).Line("Vạn")
		if !errors.Is(err, errors.ErrUnsupportedMark) {
			t.Errorf("Line() error = %v, want ErrUnsupportedMark", err)
		}
	})

	t.Run("fail ascii fast path", func(t *testing.T) {
		got, err := New(WithPolicy(PolicyFail)).Line("plain")
		if err != nil || got != "plain" {
			t.Errorf("Line(plain) = %q, %v", got, err)
		}
	})
}

func TestWithTable(t *testing.T) {
	table, err := accent.DefaultTable().Extend([]accent.MarkEntry{{Mark: 0x0323, Command: "d"}})
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	tr := New(WithTable(table), WithPolicy(PolicyFail))
	got, err := tr.Line("ạ")
	if err != nil {
		t.Fatalf("Line() error: %v", err)
	}
	if got != "\\d{a}" {
		t.Errorf("Line(ạ) = %q, want \\d{a}", got)
	}
	if tr.Policy() != PolicyFail {
		t.Errorf("Policy() = %v, want fail", tr.Policy())
	}

	if New(WithTable(nil)).table != accent.DefaultTable() {
		t.Error("WithTable(nil) should keep the default table")
	}
}

func TestTranslationTable(t *testing.T) {
	tt, err := New().Table("ãáã ß x")
	if err != nil {
		t.Fatalf("Table() error: %v", err)
	}
	if len(tt) != 3 {
		t.Fatalf("table has %d entries, want 3: %v", len(tt), tt)
	}
	if rep := tt['ã']; rep.Action != Substitute || rep.Text != "\\~{a}" {
		t.Errorf("entry ã = %+v", rep)
	}
	if rep := tt['ß']; rep.Action != Delete || !errors.Is(rep.Cause, errors.ErrNotDecomposable) {
		t.Errorf("entry ß = %+v", rep)
	}
	if _, ok := tt['x']; ok {
		t.Error("ASCII characters must not enter the table")
	}

	if got := tt.Apply("ã ß á"); got != "\\~{a}  \\'{a}" {
		t.Errorf("Apply() = %q", got)
	}

	keep := TranslationTable{'ß': {Action: Keep}}
	if got := keep.Apply("Straße"); got != "Straße" {
		t.Errorf("Apply(keep) = %q", got)
	}
}

func TestLineStats(t *testing.T) {
	_, st, err := New().line("ßaßé σ")
	if err != nil {
		t.Fatalf("line() error: %v", err)
	}
	if st.substituted != 1 || st.dropped != 3 || st.preserved != 0 {
		t.Errorf("stats = %+v", st)
	}
	if len(st.droppedChars) != 2 || st.droppedChars[0].r != 'ß' || st.droppedChars[1].r != 'σ' {
		t.Errorf("droppedChars = %+v", st.droppedChars)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"", PolicyDrop, false},
		{"drop", PolicyDrop, false},
		{"Preserve", PolicyPreserve, false},
		{" fail ", PolicyFail, false},
		{"ignore", PolicyDrop, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePolicy(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if PolicyPreserve.String() != "preserve" || Policy(9).String() != "Policy(9)" {
		t.Error("unexpected Policy.String() output")
	}
}

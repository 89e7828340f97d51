package accent

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/u2t/core/errors"
)

// marksGrammar is the participle grammar for mark-table extension files.
// Example:
//
//	# dot below
//	0323 = "d"
//	U+0331 = "b"
//
//nolint:govet // participle grammar tags are not standard struct tags
type marksGrammar struct {
	Entries []*markLine `parser:"@@*"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type markLine struct {
	Pos     lexer.Position
	Code    string `parser:"@Code '='"`
	Command string `parser:"@String"`
}

var marksLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Code", Pattern: `(?:[Uu]\+)?[0-9A-Fa-f]{4,6}`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Punct", Pattern: `=`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var marksParser = participle.MustBuild[marksGrammar](
	participle.Lexer(marksLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
)

// ParseMarks reads mark-table entries from r. Every mark must be a
// nonspacing combining mark (Unicode category Mn).
func ParseMarks(r io.Reader) ([]MarkEntry, error) {
	parsed, err := marksParser.Parse("", r)
	if err != nil {
		return nil, errors.NewParse("marks file", "", err.Error())
	}

	entries := make([]MarkEntry, 0, len(parsed.Entries))
	for _, line := range parsed.Entries {
		code := strings.TrimPrefix(strings.ToUpper(line.Code), "U+")
		v, err := strconv.ParseUint(code, 16, 32)
		if err != nil {
			return nil, errors.NewParse("marks file", "", fmt.Sprintf("%s: bad codepoint %q", line.Pos, line.Code))
		}
		mark := rune(v)
		if !unicode.Is(unicode.Mn, mark) {
			return nil, errors.NewParse("marks file", "", fmt.Sprintf("%s: U+%04X is not a combining mark", line.Pos, mark))
		}
		entries = append(entries, MarkEntry{Mark: mark, Command: line.Command})
	}
	return entries, nil
}

// LoadTable returns the default table extended with the entries of the
// marks file at path.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open marks file: %w", err)
	}
	defer f.Close()

	entries, err := ParseMarks(f)
	if err != nil {
		var perr *errors.ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return DefaultTable().Extend(entries)
}

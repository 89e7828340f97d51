package transcode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/FocuswithJustin/u2t/core/encoding"
	"github.com/FocuswithJustin/u2t/core/errors"
)

// Finding records the distinct non-ASCII characters left on one line.
type Finding struct {
	Line  int
	Chars []rune
}

// Scan reports every line of the file at path that still contains
// non-ASCII characters. A clean file yields no findings.
func Scan(ctx context.Context, path string) ([]Finding, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var findings []Finding
	r := bufio.NewReaderSize(src.r, bufSize)
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return findings, fmt.Errorf("scan %s: %w", path, err)
		}
		line, rerr := r.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return findings, errors.NewSource("read", path, rerr)
		}
		if line == "" {
			return findings, nil
		}
		if !utf8.ValidString(line) {
			return findings, errors.NewSource("decode", path, fmt.Errorf("line %d: invalid UTF-8", n))
		}
		if chars := encoding.NonASCII(line); len(chars) > 0 {
			findings = append(findings, Finding{Line: n, Chars: chars})
		}
		if rerr == io.EOF {
			return findings, nil
		}
	}
}

package transcode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	"github.com/FocuswithJustin/u2t/core/cas"
	"github.com/FocuswithJustin/u2t/core/errors"
	"github.com/FocuswithJustin/u2t/internal/logging"
)

// DefaultSuffix is appended to a source path to name its output when no
// destination is given.
const DefaultSuffix = ".u2t"

// FileStats summarizes one file conversion.
type FileStats struct {
	Lines        int // lines read
	ChangedLines int // lines whose output differs from the input
	Substituted  int // characters replaced by a macro
	Dropped      int // characters removed
	Preserved    int // characters copied unchanged under PolicyPreserve
	// SourceDigest and OutputDigest are BLAKE3 digests of the decoded
	// source text and of the produced text. Set only on success.
	SourceDigest string
	OutputDigest string
}

// Unchanged reports whether the output text is identical to the source text.
func (s FileStats) Unchanged() bool {
	return s.SourceDigest != "" && s.SourceDigest == s.OutputDigest
}

func (s *FileStats) add(st lineStats, changed bool) {
	s.Lines++
	if changed {
		s.ChangedLines++
	}
	s.Substituted += st.substituted
	s.Dropped += st.dropped
	s.Preserved += st.preserved
}

// File converts sourcePath into destinationPath with the default transcoder.
// Passing the same path for both rewrites the file in place.
func File(ctx context.Context, sourcePath, destinationPath string) error {
	_, err := defaultTranscoder.File(ctx, Job{Source: sourcePath, Destination: destinationPath})
	return err
}

// File converts one job line by line.
//
// A distinct destination is created (or truncated) and written directly; if
// the conversion fails midway the lines written so far remain. An in-place
// job writes a temporary sibling file which replaces the source in a single
// rename once every line has been written. On failure the temporary file is
// removed and the source is left untouched.
func (t *Transcoder) File(ctx context.Context, job Job) (FileStats, error) {
	var stats FileStats

	src, err := openSource(job.Source)
	if err != nil {
		return stats, err
	}
	defer src.Close()

	inPlace := job.InPlace()
	var dst *destination
	if inPlace {
		dst, err = createTemp(job.Source, src.perm)
	} else {
		dst, err = createDestination(job.Destination, defaultPerm)
	}
	if err != nil {
		return stats, err
	}

	srcDigest := cas.NewDigest()
	outDigest := cas.NewDigest()
	r := bufio.NewReaderSize(io.TeeReader(src.r, srcDigest), bufSize)
	w := io.MultiWriter(dst, outDigest)

	if err := t.copyLines(ctx, job, r, w, &stats); err != nil {
		if inPlace {
			dst.discard()
		} else {
			// Keep whatever was converted before the failure.
			_ = dst.Close()
		}
		return stats, err
	}

	if err := dst.Close(); err != nil {
		dst.discard()
		return stats, err
	}

	if inPlace {
		// The source must be closed before it can be replaced on Windows.
		src.Close()
		if err := replaceFile(dst.path, job.Source); err != nil {
			dst.discard()
			return stats, errors.NewDestination("replace", job.Source, err)
		}
		_ = syncDir(filepath.Dir(job.Source))
		logging.DebugContext(ctx, "source_replaced", "path", job.Source)
	}

	stats.SourceDigest = srcDigest.Hex()
	stats.OutputDigest = outDigest.Hex()
	return stats, nil
}

func (t *Transcoder) copyLines(ctx context.Context, job Job, r *bufio.Reader, w io.Writer, stats *FileStats) error {
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "transcode %s", job.Source)
		}

		line, rerr := r.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return errors.NewSource("read", job.Source, rerr)
		}
		if line == "" {
			return nil
		}
		if !utf8.ValidString(line) {
			return errors.NewSource("decode", job.Source, fmt.Errorf("line %d: invalid UTF-8", n))
		}

		out, st, err := t.line(line)
		if err != nil {
			var cerr *errors.CharacterError
			if errors.As(err, &cerr) {
				cerr.Line = n
			}
			return errors.Wrap(err, job.Source)
		}
		for _, d := range st.droppedChars {
			logging.CharacterDropped(ctx, job.Source, n, d.r, d.cause)
		}
		stats.add(st, out != line)

		if _, err := io.WriteString(w, out); err != nil {
			return errors.NewDestination("write", job.Destination, err)
		}
		if rerr == io.EOF {
			return nil
		}
	}
}

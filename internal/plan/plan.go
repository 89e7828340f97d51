// Package plan turns command-line file arguments into conversion jobs.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	u2terrors "github.com/FocuswithJustin/u2t/core/errors"
	"github.com/FocuswithJustin/u2t/core/transcode"
	"github.com/FocuswithJustin/u2t/internal/logging"
	"github.com/FocuswithJustin/u2t/internal/validation"
)

// DefaultPattern selects the files converted when no input is named.
const DefaultPattern = "*.tex"

// ErrNoInput is returned when there is nothing to convert.
var ErrNoInput = errors.New("no input files")

// Request describes the files a user asked to convert.
type Request struct {
	Inputs  []string // explicit input files; empty means discover
	Outputs []string // explicit output files, paired with Inputs by position
	InPlace bool     // every output equals its input
	Dir     string   // discovery directory (default ".")
	Pattern string   // discovery glob (default DefaultPattern)
	Suffix  string   // default output suffix (default transcode.DefaultSuffix)
}

// Discover lists the regular files in dir whose names match pattern, sorted.
func Discover(dir, pattern string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, &u2terrors.ValidationError{Field: "pattern", Message: fmt.Sprintf("invalid pattern %q", pattern), Err: err}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, e.Name()); ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Jobs pairs inputs with outputs. Inputs without an output get the default
// suffix; surplus outputs are ignored. Both situations are logged as warnings.
func Jobs(req Request) ([]transcode.Job, error) {
	suffix := req.Suffix
	if suffix == "" {
		suffix = transcode.DefaultSuffix
	}
	if err := validation.ValidateSuffix(suffix); err != nil {
		return nil, &u2terrors.ValidationError{Field: "suffix", Message: err.Error(), Err: err}
	}

	inputs := req.Inputs
	if len(inputs) == 0 {
		found, err := Discover(req.Dir, req.Pattern)
		if err != nil {
			return nil, err
		}
		logging.Debug("discovered input files", "count", len(found), "dir", req.Dir, "pattern", req.Pattern)
		inputs = found
	}
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}

	outputs := req.Outputs
	switch {
	case req.InPlace:
		if len(outputs) > 0 {
			return nil, u2terrors.NewValidation("output-file", "cannot be combined with --in-place")
		}
		outputs = inputs
	case len(outputs) > len(inputs):
		logging.Warn("more output files than input files; extra outputs are ignored",
			"inputs", len(inputs), "outputs", len(outputs))
		outputs = outputs[:len(inputs)]
	case len(outputs) > 0 && len(outputs) < len(inputs):
		logging.Warn("more input files than output files; unmatched inputs get the default suffix",
			"inputs", len(inputs), "outputs", len(outputs), "suffix", suffix)
	}

	jobs := make([]transcode.Job, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		out := in + suffix
		if i < len(outputs) {
			out = outputs[i]
		}
		for _, p := range []string{in, out} {
			if err := validation.ValidatePath(p); err != nil {
				return nil, &u2terrors.ValidationError{Field: "path", Message: fmt.Sprintf("%q: %v", p, err), Err: err}
			}
		}
		key := filepath.Clean(out)
		if prev, dup := seen[key]; dup {
			return nil, u2terrors.NewValidation("output-file",
				fmt.Sprintf("%s is the destination of both %s and %s", out, prev, in))
		}
		seen[key] = in
		jobs[i] = transcode.Job{Source: in, Destination: out}
	}

	// A destination that another job reads would be rewritten while it is
	// being read.
	for i, job := range jobs {
		for j, other := range jobs {
			if i != j && transcode.SamePath(job.Destination, other.Source) {
				return nil, u2terrors.NewValidation("output-file",
					fmt.Sprintf("%s is the destination of %s and an input file", job.Destination, job.Source))
			}
		}
	}
	return jobs, nil
}

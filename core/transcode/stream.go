package transcode

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/u2t/core/errors"
)

const (
	bufSize     = 64 * 1024
	defaultPerm = 0o644
	xzExt       = ".xz"
)

// Injectable functions for testing
var (
	osCreateTemp = os.CreateTemp
	xzNewReader  = xz.NewReader
	xzNewWriter  = xz.NewWriter
)

func isXZ(path string) bool {
	return strings.EqualFold(filepath.Ext(path), xzExt)
}

// source is an open source file, decompressed when its name ends in .xz.
type source struct {
	path string
	f    *os.File
	r    io.Reader
	perm fs.FileMode
}

func openSource(path string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewSource("open", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.NewSource("stat", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.NewSource("open", path, fmt.Errorf("is a directory"))
	}

	var r io.Reader = bufio.NewReaderSize(f, bufSize)
	if isXZ(path) {
		xr, err := xzNewReader(r)
		if err != nil {
			f.Close()
			return nil, errors.NewSource("decompress", path, err)
		}
		r = xr
	}
	return &source{path: path, f: f, r: r, perm: info.Mode().Perm()}, nil
}

// Close is safe to call more than once.
func (s *source) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// destination is an open output file, compressed when its name ends in .xz.
// When temp is set the file is a sibling of the final path and is discarded
// on failure.
type destination struct {
	path string
	temp bool
	f    *os.File
	buf  *bufio.Writer
	xw   *xz.Writer
	w    io.Writer
}

// createDestination creates or truncates path directly.
func createDestination(path string, perm fs.FileMode) (*destination, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return nil, errors.NewDestination("create", path, err)
	}
	return newDestination(f, path, false, isXZ(path))
}

// createTemp creates a temporary sibling of final carrying perm.
func createTemp(final string, perm fs.FileMode) (*destination, error) {
	dir, base := filepath.Split(final)
	if dir == "" {
		dir = "."
	}
	f, err := osCreateTemp(dir, "."+base+".*.u2t-tmp")
	if err != nil {
		return nil, errors.NewDestination("create", final, err)
	}
	if err := f.Chmod(perm); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, errors.NewDestination("chmod", f.Name(), err)
	}
	return newDestination(f, f.Name(), true, isXZ(final))
}

func newDestination(f *os.File, path string, temp, compress bool) (*destination, error) {
	d := &destination{path: path, temp: temp, f: f, buf: bufio.NewWriterSize(f, bufSize)}
	d.w = d.buf
	if compress {
		xw, err := xzNewWriter(d.buf)
		if err != nil {
			d.discard()
			return nil, errors.NewDestination("compress", path, err)
		}
		d.xw = xw
		d.w = xw
	}
	return d, nil
}

func (d *destination) Write(p []byte) (int, error) {
	return d.w.Write(p)
}

// Close flushes all buffered and compressed data and closes the file.
// Temporary files are fsynced so the following rename publishes complete data.
func (d *destination) Close() error {
	if d.f == nil {
		return nil
	}
	var firstErr error
	if d.xw != nil {
		if err := d.xw.Close(); err != nil {
			firstErr = err
		}
	}
	if err := d.buf.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if d.temp && firstErr == nil {
		if err := d.f.Sync(); err != nil {
			firstErr = err
		}
	}
	if err := d.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	d.f = nil
	if firstErr != nil {
		return errors.NewDestination("write", d.path, firstErr)
	}
	return nil
}

// discard closes the file without flushing and removes it if it is temporary.
func (d *destination) discard() {
	if d.f != nil {
		d.f.Close()
		d.f = nil
	}
	if d.temp {
		os.Remove(d.path)
	}
}

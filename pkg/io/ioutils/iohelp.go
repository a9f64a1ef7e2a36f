// Package ioutils opens and creates data files, transparently handling gzip.
package ioutils

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Stdio is the path that selects stdin or stdout.
const Stdio = "-"

// Ext returns the lower-cased format extension of path, ignoring a trailing .gz.
// "admissions.csv.gz" gives ".csv".
func Ext(path string) string {
	p := strings.ToLower(path)
	if strings.HasSuffix(p, ".gz") {
		p = strings.TrimSuffix(p, ".gz")
	}
	return filepath.Ext(p)
}

// OpenMaybeCompressed opens path, or stdin for "-" and "", and returns a
// reader that decompresses gzip input detected by extension or magic bytes.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	if path == Stdio || path == "" {
		return sniffGzip(bufio.NewReader(os.Stdin), nil)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := sniffGzip(bufio.NewReader(f), f.Close)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return rc, nil
}

func sniffGzip(br *bufio.Reader, closeFn func() error) (io.ReadCloser, error) {
	b, err := br.Peek(2)
	if err != nil || b[0] != 0x1f || b[1] != 0x8b {
		return readCloser{Reader: br, closeFn: closeFn}, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return readCloser{Reader: zr, closeFn: func() error {
		_ = zr.Close()
		if closeFn == nil {
			return nil
		}
		return closeFn()
	}}, nil
}

// CreateMaybeCompressed creates path, or writes to stdout for "-" and "".
// Paths ending in .gz are gzip compressed. Output is buffered until Close.
func CreateMaybeCompressed(path string) (io.WriteCloser, error) {
	if path == Stdio || path == "" {
		return writeCloser{w: bufio.NewWriter(os.Stdout)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zw := gzip.NewWriter(f)
		return writeCloser{w: bufio.NewWriter(zw), closers: []io.Closer{zw, f}}, nil
	}
	return writeCloser{w: bufio.NewWriter(f), closers: []io.Closer{f}}, nil
}

type readCloser struct {
	io.Reader
	closeFn func() error
}

func (r readCloser) Close() error {
	if r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}

type writeCloser struct {
	w       *bufio.Writer
	closers []io.Closer
}

func (w writeCloser) Write(p []byte) (int, error) { return w.w.Write(p) }

// Close flushes, then closes the gzip stream and the file in that order.
// The first error wins.
func (w writeCloser) Close() error {
	err := w.w.Flush()
	for _, c := range w.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

package csvio

import (
	"errors"
	"fmt"
	"io"
	"slices"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	iox "github.com/wdm0006/trainkit/pkg/io/ioutils"
)

// StreamReader reads CSV into Frame chunks of up to ChunkSize rows.
type StreamReader struct {
	r         *Reader
	schema    ds.Schema
	chunkSize int
}

// NewStreamReader opens the file, infers schema (respecting options), and returns a StreamReader.
func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, error) {
	rr, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	schema, err := rr.InferSchema()
	if err != nil {
		_ = rr.Close()
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 1024
	}
	return &StreamReader{r: rr, schema: schema, chunkSize: chunkSize}, nil
}

// Next returns the next chunk frame or io.EOF when complete.
func (s *StreamReader) Next() (*ds.Frame, error) {
	f := ds.NewFrame(s.schema)
	for f.Rows() < s.chunkSize {
		rec, err := s.r.next()
		if errors.Is(err, io.EOF) {
			if f.Rows() == 0 {
				return nil, io.EOF
			}
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		if err := s.r.appendRecord(f, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (s *StreamReader) Schema() ds.Schema { return s.schema }

// Warnings reports record repairs seen so far.
func (s *StreamReader) Warnings() string { return s.r.Warnings() }

func (s *StreamReader) Close() error { return s.r.Close() }

// StreamWriter appends frames to a CSV file with a header (written once).
// Every chunk must carry the column names of the first one.
type StreamWriter struct {
	out         io.WriteCloser
	opt         WriterOptions
	header      []string
	wroteHeader bool
}

func NewStreamWriter(path string, opt WriterOptions) (*StreamWriter, error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{out: out, opt: opt}, nil
}

func (s *StreamWriter) Write(fr *ds.Frame) error {
	w := newCSVWriter(s.out, s.opt)
	if !s.wroteHeader {
		s.header = fr.Names()
		if err := w.Write(s.header); err != nil {
			return err
		}
		s.wroteHeader = true
	} else if !slices.Equal(s.header, fr.Names()) {
		return fmt.Errorf("csv stream: chunk columns %v differ from header %v", fr.Names(), s.header)
	}
	if err := writeRows(w, fr); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (s *StreamWriter) Close() error { return s.out.Close() }

package parquetio

import (
	"errors"
	"io"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// StreamReader reads Parquet rows in chunks as Frames.
type StreamReader struct {
	*Reader
	chunkSize int
}

func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, error) {
	r, err := OpenReader(path, opt)
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 8192
	}
	return &StreamReader{Reader: r, chunkSize: chunkSize}, nil
}

// Next returns the next chunk frame or io.EOF when complete.
func (s *StreamReader) Next() (*ds.Frame, error) {
	f := ds.NewFrame(s.schema)
	err := s.fill(f, s.chunkSize)
	if err != nil && (!errors.Is(err, io.EOF) || f.Rows() == 0) {
		return nil, err
	}
	return f, nil
}

// StreamWriter writes Frames to a Parquet file incrementally. The file
// schema is taken from the first chunk.
type StreamWriter struct {
	path string
	w    *Writer
}

func NewStreamWriter(path string) *StreamWriter { return &StreamWriter{path: path} }

func (s *StreamWriter) Write(f *ds.Frame) error {
	if s.w == nil {
		w, err := NewWriter(s.path, f.Schema())
		if err != nil {
			return err
		}
		s.w = w
	}
	return s.w.Write(f)
}

// Close finishes the file. A stream that saw no chunks writes an empty file.
func (s *StreamWriter) Close() error {
	if s.w == nil {
		w, err := NewWriter(s.path, ds.Schema{})
		if err != nil {
			return err
		}
		s.w = w
	}
	return s.w.Close()
}

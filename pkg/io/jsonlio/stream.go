package jsonlio

import (
	"errors"
	"io"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	iox "github.com/wdm0006/trainkit/pkg/io/ioutils"
)

// StreamReader reads JSONL into Frame chunks of up to chunkSize rows.
type StreamReader struct {
	r         *Reader
	schema    ds.Schema
	chunkSize int
}

func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, error) {
	r, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	schema, err := r.InferSchema()
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 1024
	}
	return &StreamReader{r: r, schema: schema, chunkSize: chunkSize}, nil
}

// Next returns the next chunk frame or io.EOF when complete.
func (s *StreamReader) Next() (*ds.Frame, error) {
	f := ds.NewFrame(s.schema)
	for f.Rows() < s.chunkSize {
		m, err := s.r.next()
		if errors.Is(err, io.EOF) {
			if f.Rows() == 0 {
				return nil, io.EOF
			}
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		s.r.appendObject(f, m)
	}
	return f, nil
}

func (s *StreamReader) Schema() ds.Schema { return s.schema }

func (s *StreamReader) Close() error { return s.r.Close() }

type StreamWriter struct {
	out io.WriteCloser
}

func NewStreamWriter(path string) (*StreamWriter, error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{out: out}, nil
}

func (s *StreamWriter) Write(f *ds.Frame) error { return Write(s.out, f) }

func (s *StreamWriter) Close() error { return s.out.Close() }

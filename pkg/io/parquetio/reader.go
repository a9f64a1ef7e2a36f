// Package parquetio reads and writes flat Parquet files as dataset frames.
package parquetio

import (
	"errors"
	"fmt"
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

type ReaderOptions struct {
	SampleRows int // rows sampled for date inference; default 100
	// ParseDates lets inference produce time columns for text that reads as dates.
	ParseDates bool
	DayFirst   bool
}

// Reader walks the row groups of a Parquet file. Only flat schemas of
// primitive columns are supported.
type Reader struct {
	file   *os.File
	pf     *parquet.File
	opt    ReaderOptions
	schema ds.Schema
	// leaf column index -> frame column name
	names []string

	group int
	rows  parquet.Rows
	buf   []parquet.Row
}

func OpenReader(path string, opt ReaderOptions) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("parquet open %s: %w", path, err)
	}
	r := &Reader{file: f, pf: pf, opt: opt, buf: make([]parquet.Row, 256)}
	if err := r.inferSchema(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reader) Close() error {
	if r.rows != nil {
		_ = r.rows.Close()
	}
	return r.file.Close()
}

func (r *Reader) Schema() ds.Schema { return r.schema }

func (r *Reader) inferSchema() error {
	fields := r.pf.Schema().Fields()
	r.names = make([]string, len(fields))
	cols := make([]ds.ColumnSchema, len(fields))
	for i, fd := range fields {
		if !fd.Leaf() {
			return fmt.Errorf("parquet column %s: nested columns are not supported", fd.Name())
		}
		r.names[i] = fd.Name()
		cols[i] = ds.ColumnSchema{Name: fd.Name(), Type: kindOf(fd.Type().Kind()), Nullable: true}
	}
	r.schema = ds.Schema{Columns: cols}
	if !r.opt.ParseDates {
		return nil
	}
	// sample string columns for dates, then rewind
	sample := ds.NewFrame(r.schema)
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	if err := r.fill(sample, max); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	r.rewind()
	for i, cs := range cols {
		if cs.Type == ds.KindString && allDates(sample, cs.Name) {
			r.schema.Columns[i].Type = ds.KindTime
		}
	}
	return nil
}

func kindOf(k parquet.Kind) ds.Kind {
	switch k {
	case parquet.Boolean:
		return ds.KindBool
	case parquet.Int32, parquet.Int64:
		return ds.KindInt
	case parquet.Float, parquet.Double:
		return ds.KindFloat
	default:
		return ds.KindString
	}
}

func allDates(f *ds.Frame, name string) bool {
	c, _ := f.ColumnByName(name)
	seen := 0
	for i := 0; i < f.Rows(); i++ {
		s, ok := ds.StringAt(c, i)
		if !ok {
			continue
		}
		if !ds.LooksLikeTime(s) {
			return false
		}
		seen++
	}
	return seen > 0
}

func (r *Reader) rewind() {
	if r.rows != nil {
		_ = r.rows.Close()
	}
	r.rows = nil
	r.group = 0
}

// fill appends up to max rows to f. It returns io.EOF once every row group is consumed.
func (r *Reader) fill(f *ds.Frame, max int) error {
	groups := r.pf.RowGroups()
	for f.Rows() < max {
		if r.rows == nil {
			if r.group >= len(groups) {
				return io.EOF
			}
			r.rows = groups[r.group].Rows()
			r.group++
		}
		want := max - f.Rows()
		if want > len(r.buf) {
			want = len(r.buf)
		}
		n, err := r.rows.ReadRows(r.buf[:want])
		for _, row := range r.buf[:n] {
			r.appendRow(f, row)
		}
		if errors.Is(err, io.EOF) {
			_ = r.rows.Close()
			r.rows = nil
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadAll loads every remaining row into a Frame.
func (r *Reader) ReadAll() (*ds.Frame, error) {
	f := ds.NewFrame(r.schema)
	for {
		err := r.fill(f, f.Rows()+len(r.buf))
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (r *Reader) appendRow(f *ds.Frame, row parquet.Row) {
	f.AppendNullRow()
	at := f.Rows() - 1
	for _, v := range row {
		if v.IsNull() || v.Column() < 0 || v.Column() >= len(r.names) {
			continue
		}
		name := r.names[v.Column()]
		cs := r.schema.Columns[v.Column()]
		switch v.Kind() {
		case parquet.Boolean:
			_ = f.SetCell(at, name, v.Boolean())
		case parquet.Int32:
			_ = f.SetCell(at, name, int64(v.Int32()))
		case parquet.Int64:
			_ = f.SetCell(at, name, v.Int64())
		case parquet.Float:
			_ = f.SetCell(at, name, float64(v.Float()))
		case parquet.Double:
			_ = f.SetCell(at, name, v.Double())
		default:
			s := string(v.ByteArray())
			if cs.Type == ds.KindTime {
				if t, ok := ds.ParseTime(s, r.opt.DayFirst); ok {
					_ = f.SetCell(at, name, t)
				}
				continue
			}
			_ = f.SetCell(at, name, s)
		}
	}
}

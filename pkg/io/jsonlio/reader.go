// Package jsonlio reads and writes newline-delimited JSON objects as dataset frames.
package jsonlio

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	iox "github.com/wdm0006/trainkit/pkg/io/ioutils"
)

type ReaderOptions struct {
	SampleRows int // default 100
	// ParseDates lets inference produce time columns for strings that read as dates.
	ParseDates bool
	DayFirst   bool
}

type Reader struct {
	rc  io.ReadCloser
	dec *json.Decoder
	opt ReaderOptions
	buf []map[string]any
}

// Open opens a JSONL file, or stdin for "-". Gzip input is detected.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return newReader(rc, opt), nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader.
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	return newReader(io.NopCloser(r), opt)
}

func newReader(rc io.ReadCloser, opt ReaderOptions) *Reader {
	dec := json.NewDecoder(rc)
	dec.UseNumber()
	return &Reader{rc: rc, dec: dec, opt: opt}
}

func (r *Reader) Close() error { return r.rc.Close() }

// InferSchema samples objects to find the columns, ordered by first appearance, and their kinds.
func (r *Reader) InferSchema() (ds.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	var keys []string
	seen := map[string]struct{}{}
	for len(r.buf) < max {
		m, err := r.decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ds.Schema{}, err
		}
		r.buf = append(r.buf, m)
		for _, k := range sortedKeys(m) {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	kinds := r.inferKinds(r.buf, keys)
	schema := ds.Schema{Columns: make([]ds.ColumnSchema, len(keys))}
	for i, k := range keys {
		schema.Columns[i] = ds.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

// ReadAll loads every remaining object into a Frame. Keys outside the schema are ignored.
func (r *Reader) ReadAll(schema ds.Schema) (*ds.Frame, error) {
	f := ds.NewFrame(schema)
	for {
		m, err := r.next()
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		r.appendObject(f, m)
	}
}

func (r *Reader) decode() (map[string]any, error) {
	var m map[string]any
	if err := r.dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Reader) next() (map[string]any, error) {
	if len(r.buf) > 0 {
		m := r.buf[0]
		r.buf = r.buf[1:]
		return m, nil
	}
	return r.decode()
}

func (r *Reader) appendObject(f *ds.Frame, m map[string]any) {
	f.AppendNullRow()
	row := f.Rows() - 1
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		text := cellText(v)
		if cs.Type == ds.KindTime {
			if t, ok := ds.ParseTime(text, r.opt.DayFirst); ok {
				_ = f.SetCell(row, cs.Name, t)
			}
			continue
		}
		// unparseable values stay null
		_ = f.SetCell(row, cs.Name, text)
	}
}

// cellText renders a decoded JSON value as the text a column parses.
// Nested objects and arrays keep their JSON encoding.
func cellText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func (r *Reader) inferKinds(sample []map[string]any, keys []string) []ds.Kind {
	kinds := make([]ds.Kind, len(keys))
	for i, k := range keys {
		nSeen, nNum, nInt, nBool, nTime := 0, 0, 0, 0, 0
		for _, m := range sample {
			v, ok := m[k]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case json.Number:
				nSeen++
				nNum++
				if !strings.ContainsAny(t.String(), ".eE") {
					nInt++
				}
			case bool:
				nSeen++
				nBool++
			case string:
				if strings.TrimSpace(t) == "" {
					continue
				}
				nSeen++
				if r.opt.ParseDates && ds.LooksLikeTime(t) {
					nTime++
				}
			default:
				nSeen++
			}
		}
		switch {
		case nSeen == 0:
			kinds[i] = ds.KindString
		case nBool == nSeen:
			kinds[i] = ds.KindBool
		case nInt == nSeen:
			kinds[i] = ds.KindInt
		case nNum == nSeen:
			kinds[i] = ds.KindFloat
		case nTime == nSeen:
			kinds[i] = ds.KindTime
		default:
			kinds[i] = ds.KindString
		}
	}
	return kinds
}

// Package csvio reads and writes delimited text files as dataset frames.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	iox "github.com/wdm0006/trainkit/pkg/io/ioutils"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff, default ','
	SampleRows int  // for inference; default 100
	Strict     bool // if true, error on short/long records
	// NullValues are read as missing in addition to the empty cell.
	// nil selects DefaultNullValues.
	NullValues []string
	// ParseDates lets inference produce time columns for text that reads as dates.
	ParseDates bool
	// DayFirst reads ambiguous dates such as 03/04/2024 as 3 April.
	DayFirst bool
}

// DefaultNullValues are the missing-value markers recognised when none are configured.
var DefaultNullValues = []string{"NA", "N/A", "NaN", "nan", "null", "NULL", "None"}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

type Reader struct {
	rc    io.ReadCloser
	r     *csv.Reader
	opt   ReaderOptions
	nulls map[string]struct{}
	buf   [][]string
	// repair/warning counters
	shortRecords int
	longRecords  int
}

// Open opens a CSV file, or stdin for "-", and returns a Reader. Gzip input is detected.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	return newReader(rc, opt), nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	return newReader(io.NopCloser(r), opt)
}

func newReader(rc io.ReadCloser, opt ReaderOptions) *Reader {
	br := bufio.NewReader(rc)
	rr := csv.NewReader(br)
	if opt.Delimiter == 0 {
		sample, _ := br.Peek(4096)
		rr.Comma, rr.LazyQuotes = sniffDelimiterAndQuotes(sample)
	} else {
		rr.Comma = opt.Delimiter
	}
	// record lengths are checked against the schema instead
	rr.FieldsPerRecord = -1
	nullValues := opt.NullValues
	if nullValues == nil {
		nullValues = DefaultNullValues
	}
	nulls := make(map[string]struct{}, len(nullValues))
	for _, v := range nullValues {
		nulls[v] = struct{}{}
	}
	return &Reader{rc: rc, r: rr, opt: opt, nulls: nulls}
}

// Close releases the underlying file.
func (r *Reader) Close() error { return r.rc.Close() }

// InferSchema reads the header (if present) and samples rows to determine column kinds.
// Sampled rows are kept and returned first by ReadAll.
func (r *Reader) InferSchema() (ds.Schema, error) {
	rec, err := r.r.Read()
	if err != nil {
		return ds.Schema{}, err
	}
	var names []string
	var sample [][]string
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		}
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		sample = append(sample, rec)
	}

	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for len(sample) < max {
		rr, err := r.r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ds.Schema{}, err
		}
		sample = append(sample, rr)
	}

	kinds := r.inferKinds(sample, len(names))
	schema := ds.Schema{Columns: make([]ds.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = ds.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	r.buf = append(r.buf, sample...)
	return schema, nil
}

// ReadAll loads the rest of the CSV into a Frame with the given schema.
func (r *Reader) ReadAll(schema ds.Schema) (*ds.Frame, error) {
	f := ds.NewFrame(schema)
	for {
		rec, err := r.next()
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, rec); err != nil {
			return nil, err
		}
	}
}

// next drains records buffered during inference before reading new ones.
func (r *Reader) next() ([]string, error) {
	if len(r.buf) > 0 {
		rec := r.buf[0]
		r.buf = r.buf[1:]
		return rec, nil
	}
	return r.r.Read()
}

func (r *Reader) isNull(v string) bool {
	if v == "" {
		return true
	}
	_, ok := r.nulls[v]
	return ok
}

func (r *Reader) appendRecord(f *ds.Frame, rec []string) error {
	schema := f.Schema()
	n := len(schema.Columns)
	switch {
	case len(rec) < n:
		r.shortRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv short record at row %d: need %d fields, got %d", f.Rows()+1, n, len(rec))
		}
	case len(rec) > n:
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv long record at row %d: need %d fields, got %d", f.Rows()+1, n, len(rec))
		}
	}
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			break
		}
		val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if r.isNull(val) {
			continue
		}
		if cs.Type == ds.KindTime {
			if t, ok := ds.ParseTime(val, r.opt.DayFirst); ok {
				_ = f.SetCell(row, cs.Name, t)
			}
			continue
		}
		// unparseable cells stay null
		_ = f.SetCell(row, cs.Name, val)
	}
	return nil
}

// inferKinds picks, per column, the narrowest kind every non-null sampled value fits:
// bool, int, float, then time (when ParseDates is set), falling back to string.
func (r *Reader) inferKinds(rows [][]string, ncol int) []ds.Kind {
	kinds := make([]ds.Kind, ncol)
	for c := 0; c < ncol; c++ {
		seen, num, integer, boolean, dates := 0, 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if r.isNull(v) {
				continue
			}
			seen++
			switch {
			case numre.MatchString(v):
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
			case strings.EqualFold(v, "true") || strings.EqualFold(v, "false"):
				boolean++
			case r.opt.ParseDates && ds.LooksLikeTime(v):
				dates++
			}
		}
		switch {
		case seen == 0:
			kinds[c] = ds.KindString
		case boolean == seen:
			kinds[c] = ds.KindBool
		case integer == seen:
			kinds[c] = ds.KindInt
		case num == seen:
			kinds[c] = ds.KindFloat
		case dates == seen:
			kinds[c] = ds.KindTime
		default:
			kinds[c] = ds.KindString
		}
	}
	return kinds
}

// sniffDelimiterAndQuotes picks the candidate delimiter seen most often on the
// first line and enables lazy quotes when quote characters are unbalanced.
func sniffDelimiterAndQuotes(sample []byte) (rune, bool) {
	if len(sample) == 0 {
		return ',', false
	}
	line := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}
	best, bestCount := byte(','), 0
	for _, c := range []byte{',', '\t', ';', '|'} {
		if cnt := bytes.Count(line, []byte{c}); cnt > bestCount {
			best, bestCount = c, cnt
		}
	}
	lazy := bytes.Count(sample, []byte{'"'})%2 != 0
	return rune(best), lazy
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	var parts []string
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}

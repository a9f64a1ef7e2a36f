// Package datafile picks the reader or writer for a data file from its extension.
package datafile

import (
	"fmt"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	"github.com/wdm0006/trainkit/pkg/io/csvio"
	iox "github.com/wdm0006/trainkit/pkg/io/ioutils"
	"github.com/wdm0006/trainkit/pkg/io/jsonlio"
	"github.com/wdm0006/trainkit/pkg/io/parquetio"
)

// Supported formats.
const (
	CSV     = "csv"
	JSONL   = "jsonl"
	Parquet = "parquet"
)

// Stdio names stdin or stdout, always read and written as CSV.
const Stdio = iox.Stdio

type ReadOptions struct {
	// NoHeader treats the first CSV line as data.
	NoHeader   bool
	Delimiter  rune
	SampleRows int
	ParseDates bool
	DayFirst   bool
}

// Source is a chunked reader over any supported format.
type Source interface {
	ds.ChunkSource
	Schema() ds.Schema
	Close() error
}

// Format reports the format of path from its extension. A trailing .gz is ignored.
func Format(path string) (string, error) {
	if path == iox.Stdio {
		return CSV, nil
	}
	switch iox.Ext(path) {
	case ".csv", ".tsv", ".txt":
		return CSV, nil
	case ".jsonl", ".ndjson", ".json":
		return JSONL, nil
	case ".parquet", ".pq":
		return Parquet, nil
	}
	return "", fmt.Errorf("unsupported data file %q (want .csv, .tsv, .jsonl or .parquet)", path)
}

func (o ReadOptions) csv(path string) csvio.ReaderOptions {
	delim := o.Delimiter
	if delim == 0 && iox.Ext(path) == ".tsv" {
		delim = '\t'
	}
	return csvio.ReaderOptions{HasHeader: !o.NoHeader, Delimiter: delim, SampleRows: o.SampleRows, ParseDates: o.ParseDates, DayFirst: o.DayFirst}
}

func (o ReadOptions) jsonl() jsonlio.ReaderOptions {
	return jsonlio.ReaderOptions{SampleRows: o.SampleRows, ParseDates: o.ParseDates, DayFirst: o.DayFirst}
}

func (o ReadOptions) parquet() parquetio.ReaderOptions {
	return parquetio.ReaderOptions{SampleRows: o.SampleRows, ParseDates: o.ParseDates, DayFirst: o.DayFirst}
}

// Read loads the whole file into a Frame.
func Read(path string, opt ReadOptions) (*ds.Frame, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case CSV:
		r, err := csvio.Open(path, opt.csv(path))
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		schema, err := r.InferSchema()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return r.ReadAll(schema)
	case JSONL:
		r, err := jsonlio.Open(path, opt.jsonl())
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		schema, err := r.InferSchema()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return r.ReadAll(schema)
	default:
		r, err := parquetio.OpenReader(path, opt.parquet())
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return r.ReadAll()
	}
}

// Write stores f at path in the format its extension names.
func Write(path string, f *ds.Frame) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	switch format {
	case CSV:
		return csvio.WriteAll(path, f, csvio.WriterOptions{Delimiter: writeDelimiter(path)})
	case JSONL:
		return jsonlio.WriteAll(path, f)
	default:
		return parquetio.WriteAll(path, f)
	}
}

// OpenSource opens path for chunked reading.
func OpenSource(path string, opt ReadOptions, chunkSize int) (Source, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case CSV:
		return csvio.NewStreamReader(path, opt.csv(path), chunkSize)
	case JSONL:
		return jsonlio.NewStreamReader(path, opt.jsonl(), chunkSize)
	default:
		return parquetio.NewStreamReader(path, opt.parquet(), chunkSize)
	}
}

// CreateSink creates path for chunked writing.
func CreateSink(path string) (ds.ChunkSink, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case CSV:
		return csvio.NewStreamWriter(path, csvio.WriterOptions{Delimiter: writeDelimiter(path)})
	case JSONL:
		return jsonlio.NewStreamWriter(path)
	default:
		return parquetio.NewStreamWriter(path), nil
	}
}

func writeDelimiter(path string) rune {
	if iox.Ext(path) == ".tsv" {
		return '\t'
	}
	return ','
}

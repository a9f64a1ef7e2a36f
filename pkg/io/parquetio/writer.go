package parquetio

import (
	"encoding/json"
	"fmt"
	"strings"

	local "github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	pw "github.com/xitongsys/parquet-go/writer"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// parquetSchemaJSON maps a frame schema to the JSON schema of the parquet-go JSONWriter.
// Every column is optional; time columns are stored as RFC 3339 text.
func parquetSchemaJSON(s ds.Schema) (string, error) {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		if strings.ContainsAny(cs.Name, ",=") {
			return "", fmt.Errorf("parquet column %q: names may not contain ',' or '='", cs.Name)
		}
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case ds.KindFloat:
			tag += "DOUBLE"
		case ds.KindInt:
			tag += "INT64"
		case ds.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, err := json.Marshal(sc)
	return string(b), err
}

// Writer appends frames to a Parquet file through the parquet-go JSONWriter.
type Writer struct {
	fw     source.ParquetFile
	w      *pw.JSONWriter
	schema ds.Schema
}

// NewWriter creates path for frames shaped like schema.
func NewWriter(path string, schema ds.Schema) (*Writer, error) {
	js, err := parquetSchemaJSON(schema)
	if err != nil {
		return nil, err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, err
	}
	w, err := pw.NewJSONWriter(js, fw, 4)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("parquet writer init: %w", err)
	}
	return &Writer{fw: fw, w: w, schema: schema}, nil
}

func (w *Writer) Write(f *ds.Frame) error {
	cols := make([]ds.Column, len(w.schema.Columns))
	for i, cs := range w.schema.Columns {
		c, ok := f.ColumnByName(cs.Name)
		if !ok || c.Kind() != cs.Type {
			return fmt.Errorf("parquet write: column %s missing or retyped", cs.Name)
		}
		cols[i] = c
	}
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(cols))
		for _, c := range cols {
			if c.IsNull(r) {
				continue
			}
			if c.Kind() == ds.KindTime {
				rec[c.Name()], _ = ds.StringAt(c, r)
				continue
			}
			rec[c.Name()], _ = f.Value(r, c.Name())
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := w.w.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return nil
}

// Close flushes the footer and closes the file.
func (w *Writer) Close() error {
	if err := w.w.WriteStop(); err != nil {
		_ = w.fw.Close()
		return fmt.Errorf("parquet write stop: %w", err)
	}
	return w.fw.Close()
}

// WriteAll writes a Frame to a Parquet file.
func WriteAll(path string, f *ds.Frame) error {
	w, err := NewWriter(path, f.Schema())
	if err != nil {
		return err
	}
	if err := w.Write(f); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

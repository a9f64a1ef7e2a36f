package csvio

import (
	"encoding/csv"
	"io"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	iox "github.com/wdm0006/trainkit/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to path with a header row. A .gz suffix compresses the output.
func WriteAll(path string, f *ds.Frame, opt WriterOptions) (err error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(out, f, opt)
}

// Write encodes a Frame as CSV with a header row. Null cells are written empty.
func Write(out io.Writer, f *ds.Frame, opt WriterOptions) error {
	w := newCSVWriter(out, opt)
	if err := w.Write(f.Names()); err != nil {
		return err
	}
	if err := writeRows(w, f); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func newCSVWriter(out io.Writer, opt WriterOptions) *csv.Writer {
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	return w
}

func writeRows(w *csv.Writer, f *ds.Frame) error {
	names := f.Names()
	cols := make([]ds.Column, len(names))
	for i, name := range names {
		cols[i], _ = f.ColumnByName(name)
	}
	row := make([]string, len(cols))
	for r := 0; r < f.Rows(); r++ {
		for c, col := range cols {
			row[c], _ = ds.StringAt(col, r)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

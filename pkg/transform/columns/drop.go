package columns

import (
	"context"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
)

// Drop removes the listed columns; names that are not present are skipped.
type Drop struct{ Columns []string }

func (t *Drop) Name() string { return "drop_columns" }

func (t *Drop) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	for _, name := range t.Columns {
		f.DropColumn(name)
	}
	return f, nil
}

// KeepNumeric drops every column whose kind is not numeric, except those in Keep.
type KeepNumeric struct{ Keep []string }

func (t *KeepNumeric) Name() string { return "keep_numeric" }

func (t *KeepNumeric) Apply(ctx context.Context, f *ds.Frame) (*ds.Frame, error) {
	keep := make(map[string]struct{}, len(t.Keep))
	for _, k := range t.Keep {
		keep[k] = struct{}{}
	}
	for _, cs := range f.Schema().Columns {
		if _, ok := keep[cs.Name]; ok || cs.Type.Numeric() {
			continue
		}
		f.DropColumn(cs.Name)
	}
	return f, nil
}
